// Package memory is an in-memory TokenRepository used as a test double and
// for running the server without any datastore at all.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/sakib/vibe-post/internal/apperror"
	"github.com/sakib/vibe-post/internal/model"
	"github.com/sakib/vibe-post/internal/repository"
)

var _ repository.TokenRepository = (*Store)(nil)

// Store holds tokens keyed by (user_id, provider). Safe for concurrent use.
//
// UpsertErr and GetErr, when set, are returned verbatim by the corresponding
// method — tests use them to simulate datastore failures.
type Store struct {
	mu     sync.RWMutex
	tokens map[string]model.UserToken

	UpsertErr error
	GetErr    error
}

// New creates an empty Store.
func New() *Store {
	return &Store{tokens: make(map[string]model.UserToken)}
}

func key(userID, provider string) string {
	return userID + "/" + provider
}

// Upsert stores a copy of token, overwriting any existing row.
func (s *Store) Upsert(ctx context.Context, token *model.UserToken) error {
	if s.UpsertErr != nil {
		return s.UpsertErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[key(token.UserID, token.Provider)] = *token
	return nil
}

// Get returns the stored token, or apperror.ErrNotFound.
func (s *Store) Get(ctx context.Context, userID, provider string) (*model.UserToken, error) {
	if s.GetErr != nil {
		return nil, s.GetErr
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tokens[key(userID, provider)]
	if !ok {
		return nil, fmt.Errorf("%w: no token for user %s", apperror.ErrNotFound, userID)
	}
	return &t, nil
}

// Close is a no-op.
func (s *Store) Close() error { return nil }

// Len reports how many tokens are stored. Test helper.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tokens)
}
