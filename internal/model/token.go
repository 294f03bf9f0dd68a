// Package model defines the data structures used throughout the application.
package model

// ProviderGitHub is the only OAuth provider this app talks to. Token rows are
// keyed by (user_id, provider) so a second provider could be added without a
// schema change.
const ProviderGitHub = "github"

// UserToken is a persisted OAuth access token, encrypted at rest.
//
// UserID is the string form of the provider's numeric user ID — the same
// value is stored again as GitHubUserID so the numeric form survives without
// re-parsing. EncryptedToken is the cipher output of the form
// "base64(iv):base64(ciphertext)"; see internal/crypto.
type UserToken struct {
	UserID         string `json:"user_id"          db:"user_id"`
	Provider       string `json:"provider"         db:"provider"`
	EncryptedToken string `json:"encrypted_token"  db:"encrypted_token"`
	GitHubUserID   int64  `json:"github_user_id"   db:"github_user_id"`
}
