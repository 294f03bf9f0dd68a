package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/rs/xid"

	"github.com/sakib/vibe-post/internal/apperror"
	"github.com/sakib/vibe-post/internal/github"
	"github.com/sakib/vibe-post/internal/service"
)

// AuthHandler owns the GitHub OAuth flow:
//   - HandleLogin    → redirect the browser to GitHub's authorization page
//   - HandleCallback → exchange the code, persist the encrypted token, redirect
type AuthHandler struct {
	auth   *service.Auth
	github *github.Client
	logger *slog.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(auth *service.Auth, gh *github.Client, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, github: gh, logger: logger}
}

// HandleLogin redirects the user to GitHub's authorization page.
//
// HTTP: GET /api/auth/github/login
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	state := xid.New().String()
	http.Redirect(w, r, h.github.AuthURL(state), http.StatusTemporaryRedirect)
}

// HandleCallback completes the OAuth flow.
//
// HTTP: GET /api/auth/github?code=xxx
//
// On success the browser is redirected to the app root with
// auth=success&user=<github id>; every failure is a JSON error per the
// service's mapping.
func (h *AuthHandler) HandleCallback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		writeError(w, apperror.InvalidInput("Missing code", nil))
		return
	}

	githubUserID, err := h.auth.HandleCallback(r.Context(), code)
	if err != nil {
		writeError(w, err)
		return
	}

	http.Redirect(w, r,
		fmt.Sprintf("/?auth=success&user=%d", githubUserID),
		http.StatusFound)
}
