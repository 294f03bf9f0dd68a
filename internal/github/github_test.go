package github

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(tokenURL, apiBase string) *Client {
	return New("test-client-id", "test-client-secret", "http://localhost:8080/api/auth/github").
		WithBaseURLs(tokenURL, apiBase)
}

func TestExchangeCode(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseForm())
			assert.Equal(t, "test-client-id", r.PostForm.Get("client_id"))
			assert.Equal(t, "test-client-secret", r.PostForm.Get("client_secret"))
			assert.Equal(t, "good-code", r.PostForm.Get("code"))
			assert.Equal(t, "http://localhost:8080/api/auth/github", r.PostForm.Get("redirect_uri"))
			assert.Equal(t, "application/json", r.Header.Get("Accept"))

			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]string{"access_token": "gho_testtoken"})
		}))
		defer srv.Close()

		c := newTestClient(srv.URL, srv.URL)
		token, err := c.ExchangeCode(context.Background(), "good-code")
		require.NoError(t, err)
		assert.Equal(t, "gho_testtoken", token)
	})

	t.Run("error body with 200 status", func(t *testing.T) {
		// GitHub's documented behavior for a bad code: HTTP 200 with an error
		// JSON body and no access_token.
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"error":"bad_verification_code"}`))
		}))
		defer srv.Close()

		c := newTestClient(srv.URL, srv.URL)
		_, err := c.ExchangeCode(context.Background(), "bad-code")

		var exchErr *ExchangeError
		require.ErrorAs(t, err, &exchErr)
		assert.Equal(t, http.StatusOK, exchErr.Status)
		assert.Contains(t, string(exchErr.Body), "bad_verification_code")
	})

	t.Run("non-2xx status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "nope", http.StatusBadGateway)
		}))
		defer srv.Close()

		c := newTestClient(srv.URL, srv.URL)
		_, err := c.ExchangeCode(context.Background(), "any")

		var exchErr *ExchangeError
		require.ErrorAs(t, err, &exchErr)
		assert.Equal(t, http.StatusBadGateway, exchErr.Status)
	})
}

func TestFetchUser(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/user", r.URL.Path)
			assert.Equal(t, "Bearer gho_testtoken", r.Header.Get("Authorization"))
			json.NewEncoder(w).Encode(User{ID: 583231, Login: "octocat"})
		}))
		defer srv.Close()

		c := newTestClient(srv.URL, srv.URL)
		user, err := c.FetchUser(context.Background(), "gho_testtoken")
		require.NoError(t, err)
		assert.Equal(t, int64(583231), user.ID)
		assert.Equal(t, "octocat", user.Login)
	})

	t.Run("unauthorized", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"message":"Bad credentials"}`, http.StatusUnauthorized)
		}))
		defer srv.Close()

		c := newTestClient(srv.URL, srv.URL)
		_, err := c.FetchUser(context.Background(), "bad")

		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	})
}

func TestFetchActivity(t *testing.T) {
	t.Run("passes payload through", func(t *testing.T) {
		payload := `[{"id":"1","type":"PushEvent"}]`
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/user/events", r.URL.Path)
			w.Write([]byte(payload))
		}))
		defer srv.Close()

		c := newTestClient(srv.URL, srv.URL)
		raw, err := c.FetchActivity(context.Background(), "gho_testtoken")
		require.NoError(t, err)
		assert.JSONEq(t, payload, string(raw))
	})

	t.Run("rejects invalid JSON", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("<html>not json</html>"))
		}))
		defer srv.Close()

		c := newTestClient(srv.URL, srv.URL)
		_, err := c.FetchActivity(context.Background(), "gho_testtoken")
		require.Error(t, err)

		var apiErr *APIError
		assert.False(t, errors.As(err, &apiErr), "invalid JSON is not an APIError")
	})

	t.Run("upstream failure", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "down", http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		c := newTestClient(srv.URL, srv.URL)
		_, err := c.FetchActivity(context.Background(), "gho_testtoken")

		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusServiceUnavailable, apiErr.Status)
	})
}

func TestAuthURL(t *testing.T) {
	c := New("test-client-id", "secret", "http://localhost:8080/api/auth/github")
	u := c.AuthURL("state-123")
	assert.Contains(t, u, "github.com/login/oauth/authorize")
	assert.Contains(t, u, "client_id=test-client-id")
	assert.Contains(t, u, "state=state-123")
}
