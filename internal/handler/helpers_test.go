package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sakib/vibe-post/internal/crypto"
	"github.com/sakib/vibe-post/internal/github"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func testCipher(t *testing.T) *crypto.Cipher {
	t.Helper()
	c, err := crypto.New([]byte("0123456789abcdef0123456789abcdef"))
	require.NoError(t, err)
	return c
}

// fakeGitHub serves the token, profile, and events endpoints the handlers
// reach through the service layer.
type fakeGitHub struct {
	tokenStatus  int
	tokenBody    string
	userStatus   int
	userBody     string
	eventsStatus int
	eventsBody   string
}

func goodGitHub() *fakeGitHub {
	return &fakeGitHub{
		tokenStatus:  http.StatusOK,
		tokenBody:    `{"access_token":"gho_testtoken"}`,
		userStatus:   http.StatusOK,
		userBody:     `{"id":583231,"login":"octocat"}`,
		eventsStatus: http.StatusOK,
		eventsBody:   `[{"type":"PushEvent"}]`,
	}
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
		case "/user/events":
			w.WriteHeader(f.eventsStatus)
			fmt.Fprint(w, f.eventsBody)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)

	return github.New("test-client-id", "test-secret", "http://localhost:8080/api/auth/github").
		WithBaseURLs(srv.URL+"/token", srv.URL)
}
