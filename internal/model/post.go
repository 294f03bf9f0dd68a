package model

import "strings"

// AIResponse is the payload returned by POST /api/ai: the generated post and
// its hashtags. It is never persisted.
type AIResponse struct {
	Post     string   `json:"post"`
	Hashtags []string `json:"hashtags"`
}

// PostStyle describes one of the selectable writing styles for generated posts.
type PostStyle struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// PostStyles is the catalog of supported styles. The first entry is the
// default when a request names no recognizable style.
var PostStyles = []PostStyle{
	{ID: "technical", Name: "Technical", Description: "Professional and technical tone with code insights"},
	{ID: "casual", Name: "Casual", Description: "Conversational and approachable"},
	{ID: "inspiring", Name: "Inspiring", Description: "Motivational and thought-provoking"},
	{ID: "educational", Name: "Educational", Description: "Teaching and knowledge-sharing focused"},
}

// DefaultPostStyle is substituted for absent or unrecognized style values.
const DefaultPostStyle = "Technical"

// ResolvePostStyle returns the canonical style name for s, falling back to
// DefaultPostStyle when s matches no catalog entry.
func ResolvePostStyle(s string) string {
	for _, style := range PostStyles {
		if strings.EqualFold(s, style.Name) {
			return style.Name
		}
	}
	return DefaultPostStyle
}

// MaxHashtags bounds how many hashtags a generated post may carry.
const MaxHashtags = 10
