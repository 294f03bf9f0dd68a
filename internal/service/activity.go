package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/sakib/vibe-post/internal/apperror"
	"github.com/sakib/vibe-post/internal/crypto"
	"github.com/sakib/vibe-post/internal/github"
	"github.com/sakib/vibe-post/internal/model"
	"github.com/sakib/vibe-post/internal/repository"
)

// Activity relays a user's GitHub event feed using their stored token.
// Every call re-reads the token and re-queries GitHub; there is no caching
// and no retry.
type Activity struct {
	github *github.Client
	tokens repository.TokenRepository
	cipher *crypto.Cipher
	logger *slog.Logger
}

// NewActivity creates an Activity service.
func NewActivity(gh *github.Client, tokens repository.TokenRepository, cipher *crypto.Cipher, logger *slog.Logger) *Activity {
	return &Activity{github: gh, tokens: tokens, cipher: cipher, logger: logger}
}

// Fetch looks up the user's encrypted token, decrypts it, and returns the
// raw upstream activity payload.
//
// A lookup miss or storage read error maps to "Token not found" — absence
// and unreadability are indistinguishable to the caller, who should
// re-authenticate either way.
func (s *Activity) Fetch(ctx context.Context, userID string) (json.RawMessage, error) {
	tok, err := s.tokens.Get(ctx, userID, model.ProviderGitHub)
	if err != nil {
		return nil, apperror.NotFound("Token not found", err.Error())
	}

	accessToken, err := s.cipher.Decrypt(tok.EncryptedToken)
	if err != nil {
		s.logger.Error("stored token failed to decrypt",
			slog.String("userID", userID),
			slog.String("error", err.Error()))
		return nil, apperror.Internal("Internal server error", err.Error())
	}

	activity, err := s.github.FetchActivity(ctx, accessToken)
	if err != nil {
		var apiErr *github.APIError
		if errors.As(err, &apiErr) {
			return nil, apperror.Upstream("Failed to fetch GitHub activity", apiErr.Status)
		}
		return nil, apperror.Internal("Internal server error", err.Error())
	}

	return activity, nil
}
