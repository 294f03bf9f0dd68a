package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/sakib/vibe-post/internal/apperror"
	"github.com/sakib/vibe-post/internal/model"
	"github.com/sakib/vibe-post/internal/repository"
)

// compile-time check that *TokenRepo implements repository.TokenRepository
var _ repository.TokenRepository = (*TokenRepo)(nil)

// TokenRepo stores encrypted OAuth tokens in the user_tokens table.
type TokenRepo struct{ db *DB }

// NewTokenRepo constructs a token repository.
func NewTokenRepo(db *DB) *TokenRepo { return &TokenRepo{db: db} }

// Upsert inserts or overwrites the token row for (user_id, provider).
// A concurrent duplicate insert surfaces as apperror.ErrConflict; callers
// may treat that as an idempotent re-auth since the row already holds a
// token for the same user.
func (r *TokenRepo) Upsert(ctx context.Context, token *model.UserToken) error {
	const q = `
INSERT INTO user_tokens (user_id, provider, encrypted_token, github_user_id)
VALUES ($1, $2, $3, $4)
ON CONFLICT (user_id, provider)
DO UPDATE SET encrypted_token = EXCLUDED.encrypted_token, github_user_id = EXCLUDED.github_user_id`
	_, err := r.db.Pool.Exec(ctx, q, token.UserID, token.Provider, token.EncryptedToken, token.GitHubUserID)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %s", apperror.ErrConflict, err.Error())
	}
	if err != nil {
		return fmt.Errorf("postgres: upserting token for user %s: %w", token.UserID, err)
	}
	return nil
}

// Get returns the token row for (user_id, provider), or apperror.ErrNotFound.
func (r *TokenRepo) Get(ctx context.Context, userID, provider string) (*model.UserToken, error) {
	const q = `
SELECT user_id, provider, encrypted_token, github_user_id
FROM user_tokens WHERE user_id = $1 AND provider = $2`
	row := r.db.Pool.QueryRow(ctx, q, userID, provider)

	var t model.UserToken
	if err := row.Scan(&t.UserID, &t.Provider, &t.EncryptedToken, &t.GitHubUserID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: no token for user %s", apperror.ErrNotFound, userID)
		}
		return nil, fmt.Errorf("postgres: reading token for user %s: %w", userID, err)
	}
	return &t, nil
}

// Close releases the underlying pool.
func (r *TokenRepo) Close() error {
	r.db.Pool.Close()
	return nil
}
