package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/sakib/vibe-post/internal/apperror"
	"github.com/sakib/vibe-post/internal/model"
	"github.com/sakib/vibe-post/internal/repository"
)

// compile-time check that *DB implements repository.TokenRepository
var _ repository.TokenRepository = (*DB)(nil)

// Upsert inserts or overwrites the token row for (user_id, provider).
func (db *DB) Upsert(ctx context.Context, token *model.UserToken) error {
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO user_tokens (user_id, provider, encrypted_token, github_user_id)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT (user_id, provider)
		 DO UPDATE SET encrypted_token = excluded.encrypted_token,
		               github_user_id  = excluded.github_user_id`,
		token.UserID,
		token.Provider,
		token.EncryptedToken,
		token.GitHubUserID,
	)
	if err != nil {
		// modernc's unique-violation message mirrors SQLite's
		// "UNIQUE constraint failed" wording.
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("%w: %s", apperror.ErrConflict, err.Error())
		}
		return fmt.Errorf("sqlite: upserting token for user %s: %w", token.UserID, err)
	}
	return nil
}

// Get returns the token row for (user_id, provider), or apperror.ErrNotFound.
func (db *DB) Get(ctx context.Context, userID, provider string) (*model.UserToken, error) {
	var t model.UserToken

	err := db.conn.QueryRowContext(ctx,
		`SELECT user_id, provider, encrypted_token, github_user_id
		 FROM user_tokens WHERE user_id = ? AND provider = ?`,
		userID, provider,
	).Scan(&t.UserID, &t.Provider, &t.EncryptedToken, &t.GitHubUserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: no token for user %s", apperror.ErrNotFound, userID)
		}
		return nil, fmt.Errorf("sqlite: reading token for user %s: %w", userID, err)
	}

	return &t, nil
}
