// Package ai defines the post-generation seam. The only implementation today
// is a deterministic mock; a real provider plugs in behind the same
// interface without touching the sanitization pipeline around it.
package ai

import (
	"context"
	"fmt"

	"github.com/sakib/vibe-post/internal/model"
)

// Request carries everything a generator needs. Activity, Context, and Style
// are already sanitized by the caller; Prompt is the assembled instruction
// block a real model would receive.
type Request struct {
	Prompt   string
	Activity string
	Context  string
	Style    string
}

// Generator produces a post with hashtags from a generation request.
type Generator interface {
	Generate(ctx context.Context, req Request) (*model.AIResponse, error)
}

// BuildPrompt assembles the model prompt: a fixed system instruction, the
// sanitized activity and context, the style, and the expected output shape.
func BuildPrompt(activity, context, style string) string {
	return fmt.Sprintf(
		"SYSTEM: You are a LinkedIn post generator. Generate professional posts only.\n"+
			"GITHUB_ACTIVITY: %s\nUSER_CONTEXT: %s\nSTYLE: %s\n\n"+
			`Respond with valid JSON: {"post": "...", "hashtags": ["..."]}`,
		activity, context, style)
}

// Mock is the stand-in generator: a fixed template over the sanitized inputs
// and a static hashtag list. Callers must still treat its output as
// untrusted — the post goes back through sanitization before it is returned,
// exactly as a real model's output would.
type Mock struct{}

var _ Generator = Mock{}

// Generate returns the templated post.
func (Mock) Generate(_ context.Context, req Request) (*model.AIResponse, error) {
	return &model.AIResponse{
		Post:     fmt.Sprintf("Here's a LinkedIn post about: %s (%s) [%s]", req.Activity, req.Context, req.Style),
		Hashtags: []string{"#AI", "#LinkedIn", "#Dev"},
	}, nil
}
