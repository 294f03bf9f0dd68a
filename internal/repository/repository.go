// Package repository declares the storage interfaces implemented by the
// postgres, sqlite, and memory packages. Services depend on these interfaces
// only; the concrete store is chosen once, in the server wiring.
package repository

import (
	"context"

	"github.com/sakib/vibe-post/internal/model"
)

// TokenRepository persists encrypted per-user OAuth tokens.
//
// Rows are keyed by (user_id, provider); Upsert overwrites the token on
// re-auth. Implementations return apperror.ErrNotFound on a Get miss and
// apperror.ErrConflict on a unique-constraint violation during Upsert.
type TokenRepository interface {
	Upsert(ctx context.Context, token *model.UserToken) error
	Get(ctx context.Context, userID, provider string) (*model.UserToken, error)
	Close() error
}
