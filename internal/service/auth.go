// Package service contains the business logic layer: the OAuth callback
// orchestration, the activity relay, and the post generation pipeline.
// Services know nothing about HTTP; handlers translate their apperror
// results into status codes.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"

	"github.com/sakib/vibe-post/internal/apperror"
	"github.com/sakib/vibe-post/internal/crypto"
	"github.com/sakib/vibe-post/internal/github"
	"github.com/sakib/vibe-post/internal/model"
	"github.com/sakib/vibe-post/internal/repository"
)

// Auth orchestrates the GitHub OAuth callback: code exchange, profile fetch,
// token encryption, and persistence.
type Auth struct {
	github *github.Client
	tokens repository.TokenRepository
	cipher *crypto.Cipher
	logger *slog.Logger
}

// NewAuth creates an Auth service.
func NewAuth(gh *github.Client, tokens repository.TokenRepository, cipher *crypto.Cipher, logger *slog.Logger) *Auth {
	return &Auth{github: gh, tokens: tokens, cipher: cipher, logger: logger}
}

// HandleCallback completes the OAuth flow for an authorization code and
// returns the GitHub user ID on success.
//
// Failure mapping, in step order: exchange response without access_token →
// 500-class with the raw body and a config-diagnostic debug block; exchange
// transport failure → generic 500; profile
// fetch non-OK → upstream (502); profile ID 0 → 500-class; encryption or
// storage failure → 500-class. A conflicting upsert means a concurrent or
// repeated callback already stored a token for this user, so it is treated
// as success.
func (s *Auth) HandleCallback(ctx context.Context, code string) (int64, error) {
	accessToken, err := s.github.ExchangeCode(ctx, code)
	if err != nil {
		var exchErr *github.ExchangeError
		if errors.As(err, &exchErr) {
			s.logger.Error("token exchange returned no access_token",
				slog.Int("status", exchErr.Status))
			return 0, apperror.Internal("Failed to get access token", rawOrString(exchErr.Body)).
				WithDebug(map[string]any{
					"status":              exchErr.Status,
					"clientIdPresent":     s.github.ClientIDSet(),
					"clientSecretPresent": s.github.ClientSecretSet(),
					"redirectUri":         s.github.RedirectURI(),
				})
		}
		// Transport-level failure, not a GitHub refusal. No debug block: the
		// configuration diagnostics only make sense for a real exchange
		// response.
		s.logger.Error("token exchange request failed", slog.String("error", err.Error()))
		return 0, apperror.Internal("Internal server error", err.Error())
	}

	user, err := s.github.FetchUser(ctx, accessToken)
	if err != nil {
		s.logger.Error("profile fetch failed", slog.String("error", err.Error()))
		return 0, apperror.Upstream("Failed to fetch GitHub user profile", err.Error())
	}

	// GitHub IDs are positive in practice; 0 here means the field was absent.
	if user.ID == 0 {
		return 0, apperror.Internal("GitHub user ID not found", nil)
	}

	encrypted, err := s.cipher.Encrypt(accessToken)
	if err != nil {
		return 0, apperror.Internal("Failed to store token", err.Error())
	}

	err = s.tokens.Upsert(ctx, &model.UserToken{
		UserID:         strconv.FormatInt(user.ID, 10),
		Provider:       model.ProviderGitHub,
		EncryptedToken: encrypted,
		GitHubUserID:   user.ID,
	})
	if err != nil {
		if errors.Is(err, apperror.ErrConflict) {
			s.logger.Info("user already authenticated, token kept",
				slog.Int64("githubUserID", user.ID))
		} else {
			s.logger.Error("token upsert failed",
				slog.Int64("githubUserID", user.ID),
				slog.String("error", err.Error()))
			return 0, apperror.Internal("Failed to store token", err.Error())
		}
	}

	s.logger.Info("user authenticated via GitHub",
		slog.Int64("githubUserID", user.ID),
		slog.String("login", user.Login))

	return user.ID, nil
}

// rawOrString preserves a JSON upstream body as-is in the details field, and
// falls back to a plain string for anything unparseable.
func rawOrString(body []byte) any {
	if json.Valid(body) {
		return json.RawMessage(body)
	}
	return string(body)
}
