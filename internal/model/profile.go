package model

// The types below mirror the client-side domain model. No server component
// implements their lifecycle yet; they exist so the API surface and a future
// drafts/profile feature share one vocabulary.

// GitHubActivity is a single normalized event from a user's GitHub feed.
type GitHubActivity struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Repo      string `json:"repo"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
	URL       string `json:"url"`
}

// UserProfile is a user's Vibe-Post settings.
type UserProfile struct {
	ID                string `json:"id"`
	GitHubUsername    string `json:"github_username"`
	LinkedInConnected bool   `json:"linkedin_connected"`
	PreferredStyle    string `json:"preferred_style"`
	AIProvider        string `json:"ai_provider"`
	APIKeyConfigured  bool   `json:"api_key_configured"`
}

// PostDraft is a saved, possibly scheduled, generated post.
type PostDraft struct {
	ID           string   `json:"id"`
	Content      string   `json:"content"`
	Hashtags     []string `json:"hashtags"`
	Style        string   `json:"style"`
	CreatedAt    string   `json:"created_at"`
	ScheduledFor string   `json:"scheduled_for,omitempty"`
	Published    bool     `json:"published"`
}
