package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakib/vibe-post/internal/apperror"
	"github.com/sakib/vibe-post/internal/model"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestUpsertAndGet(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	tok := &model.UserToken{
		UserID:         "583231",
		Provider:       model.ProviderGitHub,
		EncryptedToken: "aXY=:Y2lwaGVydGV4dA==",
		GitHubUserID:   583231,
	}
	require.NoError(t, db.Upsert(ctx, tok))

	got, err := db.Get(ctx, "583231", model.ProviderGitHub)
	require.NoError(t, err)
	assert.Equal(t, tok.EncryptedToken, got.EncryptedToken)
	assert.Equal(t, tok.GitHubUserID, got.GitHubUserID)
}

func TestUpsertOverwritesExistingToken(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	first := &model.UserToken{
		UserID: "42", Provider: model.ProviderGitHub,
		EncryptedToken: "old==:old==", GitHubUserID: 42,
	}
	require.NoError(t, db.Upsert(ctx, first))

	second := &model.UserToken{
		UserID: "42", Provider: model.ProviderGitHub,
		EncryptedToken: "new==:new==", GitHubUserID: 42,
	}
	require.NoError(t, db.Upsert(ctx, second))

	got, err := db.Get(ctx, "42", model.ProviderGitHub)
	require.NoError(t, err)
	assert.Equal(t, "new==:new==", got.EncryptedToken)
}

func TestGetMissReturnsNotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.Get(context.Background(), "nope", model.ProviderGitHub)
	require.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestTokensAreKeyedByProvider(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.Upsert(ctx, &model.UserToken{
		UserID: "7", Provider: model.ProviderGitHub,
		EncryptedToken: "enc==:enc==", GitHubUserID: 7,
	}))

	_, err := db.Get(ctx, "7", "gitlab")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
