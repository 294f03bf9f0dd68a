// Package github talks to GitHub: the OAuth code-for-token exchange, the
// authenticated user profile, and the user activity feed.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
	oauth2github "golang.org/x/oauth2/github"
)

// User is the portion of the GitHub /user response we care about. GitHub
// returns a much larger object; only these fields are unmarshalled.
type User struct {
	ID        int64  `json:"id"`
	Login     string `json:"login"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
}

// ExchangeError reports a token-exchange response that carried no
// access_token. GitHub answers 200 with an error JSON body for a bad or
// expired code, so Status alone cannot be trusted — the raw Body is kept for
// diagnostics.
type ExchangeError struct {
	Status int
	Body   []byte
}

func (e *ExchangeError) Error() string {
	return fmt.Sprintf("github: token exchange returned no access_token (status %d)", e.Status)
}

// APIError reports a non-OK response from the GitHub REST API.
type APIError struct {
	Status int
	Path   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("github: %s returned status %d", e.Path, e.Status)
}

// Client performs GitHub OAuth and API calls.
//
// The oauth2.Config supplies the client credentials, scopes, and GitHub's
// endpoint URLs. The code exchange is issued directly against
// Endpoint.TokenURL rather than through oauth2.Config.Exchange: GitHub's
// missing-access_token responses must surface their HTTP status and raw body,
// which Exchange discards.
type Client struct {
	oauth   *oauth2.Config
	apiBase string
	httpc   *http.Client
}

// New creates a Client for the given OAuth app credentials.
func New(clientID, clientSecret, redirectURI string) *Client {
	return &Client{
		oauth: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURI,
			Scopes:       []string{"read:user", "repo"},
			Endpoint:     oauth2github.Endpoint,
		},
		apiBase: "https://api.github.com",
		httpc:   &http.Client{Timeout: 15 * time.Second},
	}
}

// WithBaseURLs overrides the token endpoint and API base. Test hook.
func (c *Client) WithBaseURLs(tokenURL, apiBase string) *Client {
	c.oauth.Endpoint = oauth2.Endpoint{
		AuthURL:  c.oauth.Endpoint.AuthURL,
		TokenURL: tokenURL,
	}
	c.apiBase = strings.TrimSuffix(apiBase, "/")
	return c
}

// AuthURL returns GitHub's authorization page URL for the login redirect.
func (c *Client) AuthURL(state string) string {
	return c.oauth.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// ClientIDSet reports whether a client ID is configured.
func (c *Client) ClientIDSet() bool { return c.oauth.ClientID != "" }

// ClientSecretSet reports whether a client secret is configured.
func (c *Client) ClientSecretSet() bool { return c.oauth.ClientSecret != "" }

// RedirectURI returns the configured callback URI. Safe to expose in debug
// output; it never contains the secret.
func (c *Client) RedirectURI() string { return c.oauth.RedirectURL }

// ExchangeCode trades an authorization code for an access token.
//
// A response whose JSON carries no access_token — whatever its status —
// yields an *ExchangeError with the status and raw body.
func (c *Client) ExchangeCode(ctx context.Context, code string) (string, error) {
	form := url.Values{
		"client_id":     {c.oauth.ClientID},
		"client_secret": {c.oauth.ClientSecret},
		"code":          {code},
		"redirect_uri":  {c.oauth.RedirectURL},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.oauth.Endpoint.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("github: building token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("github: token exchange: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("github: reading token response: %w", err)
	}

	var token struct {
		AccessToken string `json:"access_token"`
	}
	// A non-JSON body (an HTML error page, say) is treated the same as a JSON
	// body without access_token.
	_ = json.Unmarshal(body, &token)

	if token.AccessToken == "" {
		return "", &ExchangeError{Status: resp.StatusCode, Body: body}
	}
	return token.AccessToken, nil
}

// FetchUser returns the profile of the user the token belongs to.
func (c *Client) FetchUser(ctx context.Context, accessToken string) (*User, error) {
	body, err := c.get(ctx, "/user", accessToken)
	if err != nil {
		return nil, err
	}

	var user User
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, fmt.Errorf("github: decoding /user response: %w", err)
	}
	return &user, nil
}

// FetchActivity returns the user's raw event feed. The payload is passed
// through to the caller untouched beyond a JSON well-formedness check.
func (c *Client) FetchActivity(ctx context.Context, accessToken string) (json.RawMessage, error) {
	body, err := c.get(ctx, "/user/events", accessToken)
	if err != nil {
		return nil, err
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("github: /user/events returned invalid JSON")
	}
	return json.RawMessage(body), nil
}

func (c *Client) get(ctx context.Context, path, accessToken string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiBase+path, nil)
	if err != nil {
		return nil, fmt.Errorf("github: building request for %s: %w", path, err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("github: calling %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{Status: resp.StatusCode, Path: path}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("github: reading %s response: %w", path, err)
	}
	return body, nil
}
