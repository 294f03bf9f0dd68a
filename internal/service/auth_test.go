package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakib/vibe-post/internal/apperror"
	"github.com/sakib/vibe-post/internal/crypto"
	"github.com/sakib/vibe-post/internal/github"
	"github.com/sakib/vibe-post/internal/model"
	"github.com/sakib/vibe-post/internal/repository/memory"
)

// =========================================================================
// FAKES AND HELPERS
// =========================================================================

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func testCipher(t *testing.T) *crypto.Cipher {
	t.Helper()
	c, err := crypto.New([]byte("0123456789abcdef0123456789abcdef"))
	require.NoError(t, err)
	return c
}

// fakeGitHub spins up an httptest server standing in for both the OAuth
// token endpoint and the REST API, and returns a client pointed at it.
type fakeGitHub struct {
	tokenStatus int
	tokenBody   string
	userStatus  int
	userBody    string
}

func (f *fakeGitHub) client(t *testing.T) *github.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/token":
			w.WriteHeader(f.tokenStatus)
			fmt.Fprint(w, f.tokenBody)
		case "/user":
			w.WriteHeader(f.userStatus)
			fmt.Fprint(w, f.userBody)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)

	return github.New("test-client-id", "test-secret", "http://localhost:8080/api/auth/github").
		WithBaseURLs(srv.URL+"/token", srv.URL)
}

func goodGitHub() *fakeGitHub {
	return &fakeGitHub{
		tokenStatus: http.StatusOK,
		tokenBody:   `{"access_token":"gho_testtoken"}`,
		userStatus:  http.StatusOK,
		userBody:    `{"id":583231,"login":"octocat"}`,
	}
}

// =========================================================================
// HandleCallback TESTS
// =========================================================================

func TestHandleCallback_Success(t *testing.T) {
	store := memory.New()
	svc := NewAuth(goodGitHub().client(t), store, testCipher(t), testLogger())

	id, err := svc.HandleCallback(context.Background(), "good-code")
	require.NoError(t, err)
	assert.Equal(t, int64(583231), id)

	// The stored token must be encrypted, not the raw access token.
	tok, err := store.Get(context.Background(), "583231", model.ProviderGitHub)
	require.NoError(t, err)
	assert.NotEqual(t, "gho_testtoken", tok.EncryptedToken)
	assert.Contains(t, tok.EncryptedToken, ":")
	assert.Equal(t, int64(583231), tok.GitHubUserID)

	plain, err := testCipher(t).Decrypt(tok.EncryptedToken)
	require.NoError(t, err)
	assert.Equal(t, "gho_testtoken", plain)
}

func TestHandleCallback_ExchangeWithoutToken(t *testing.T) {
	gh := goodGitHub()
	gh.tokenBody = `{"error":"bad_verification_code"}`
	svc := NewAuth(gh.client(t), memory.New(), testCipher(t), testLogger())

	_, err := svc.HandleCallback(context.Background(), "bad-code")
	require.Error(t, err)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "Failed to get access token", appErr.Message)
	assert.Equal(t, http.StatusOK, appErr.Debug["status"])
	assert.Equal(t, true, appErr.Debug["clientIdPresent"])
	assert.Equal(t, true, appErr.Debug["clientSecretPresent"])
	assert.Equal(t, "http://localhost:8080/api/auth/github", appErr.Debug["redirectUri"])

	raw, ok := appErr.Details.(json.RawMessage)
	require.True(t, ok, "details should keep the raw JSON body")
	assert.Contains(t, string(raw), "bad_verification_code")
}

func TestHandleCallback_ExchangeTransportFailure(t *testing.T) {
	// Point the client at a server that is already gone so the exchange
	// request itself fails, before any response exists to diagnose.
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	client := github.New("test-client-id", "test-secret", "http://localhost:8080/api/auth/github").
		WithBaseURLs(srv.URL+"/token", srv.URL)
	svc := NewAuth(client, memory.New(), testCipher(t), testLogger())

	_, err := svc.HandleCallback(context.Background(), "good-code")
	require.Error(t, err)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "Internal server error", appErr.Message)
	assert.Nil(t, appErr.Debug, "no exchange response means no config diagnostics")
}

func TestHandleCallback_ProfileFetchFails(t *testing.T) {
	gh := goodGitHub()
	gh.userStatus = http.StatusUnauthorized
	gh.userBody = `{"message":"Bad credentials"}`
	svc := NewAuth(gh.client(t), memory.New(), testCipher(t), testLogger())

	_, err := svc.HandleCallback(context.Background(), "good-code")
	require.ErrorIs(t, err, apperror.ErrUpstream)
	assert.Contains(t, err.Error(), "Failed to fetch GitHub user profile")
}

func TestHandleCallback_MissingUserID(t *testing.T) {
	gh := goodGitHub()
	gh.userBody = `{"login":"ghost"}`
	svc := NewAuth(gh.client(t), memory.New(), testCipher(t), testLogger())

	_, err := svc.HandleCallback(context.Background(), "good-code")
	require.Error(t, err)
	assert.Equal(t, "GitHub user ID not found", err.Error())
}

func TestHandleCallback_DuplicateKeyIsIdempotent(t *testing.T) {
	store := memory.New()
	store.UpsertErr = fmt.Errorf("%w: duplicate key value violates unique constraint", apperror.ErrConflict)
	svc := NewAuth(goodGitHub().client(t), store, testCipher(t), testLogger())

	id, err := svc.HandleCallback(context.Background(), "good-code")
	require.NoError(t, err, "a duplicate-key upsert is a repeated callback, not a failure")
	assert.Equal(t, int64(583231), id)
}

func TestHandleCallback_StoreFailure(t *testing.T) {
	store := memory.New()
	store.UpsertErr = errors.New("connection refused")
	svc := NewAuth(goodGitHub().client(t), store, testCipher(t), testLogger())

	_, err := svc.HandleCallback(context.Background(), "good-code")
	require.Error(t, err)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "Failed to store token", appErr.Message)
	details, _ := appErr.Details.(string)
	assert.True(t, strings.Contains(details, "connection refused"))
}
