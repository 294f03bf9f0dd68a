package service

import (
	"context"
	"log/slog"

	"github.com/sakib/vibe-post/internal/ai"
	"github.com/sakib/vibe-post/internal/apperror"
	"github.com/sakib/vibe-post/internal/model"
	"github.com/sakib/vibe-post/internal/sanitize"
	"github.com/sakib/vibe-post/internal/validate"
)

// GenerateRequest is the parsed body of POST /api/ai. Absent fields decode
// to "" and are sanitized/validated like any other value.
type GenerateRequest struct {
	Activity string `json:"activity"`
	Context  string `json:"context"`
	Style    string `json:"style"`
}

// Post runs the generation pipeline: sanitize inputs, validate, assemble the
// prompt, generate, then sanitize and validate the output.
type Post struct {
	generator ai.Generator
	logger    *slog.Logger
}

// NewPost creates a Post service.
func NewPost(generator ai.Generator, logger *slog.Logger) *Post {
	return &Post{generator: generator, logger: logger}
}

// Generate produces a post with hashtags for the given request.
//
// The generator's output is treated as untrusted: it is re-sanitized with
// the same keyword and character filters as the inputs before the length
// check. With the mock generator this means the template's apostrophe and
// colon never reach the caller.
func (s *Post) Generate(ctx context.Context, req GenerateRequest) (*model.AIResponse, error) {
	activity := strict(req.Activity)
	contextText := strict(req.Context)
	style := model.ResolvePostStyle(req.Style)

	if v := validate.UserInput(activity); !v.IsValid {
		return nil, apperror.InvalidInput("Invalid activity", v.Error)
	}
	if v := validate.UserInput(contextText); !v.IsValid {
		return nil, apperror.InvalidInput("Invalid context", v.Error)
	}

	genReq := ai.Request{
		Prompt:   ai.BuildPrompt(activity, contextText, style),
		Activity: activity,
		Context:  contextText,
		Style:    style,
	}

	resp, err := s.generator.Generate(ctx, genReq)
	if err != nil {
		s.logger.Error("generation failed", slog.String("error", err.Error()))
		return nil, apperror.Internal("Internal server error", err.Error())
	}
	if resp == nil || resp.Hashtags == nil {
		return nil, apperror.Internal("Invalid hashtags format", nil)
	}

	post := strict(resp.Post)
	if v := validate.PostContent(post); !v.IsValid {
		return nil, apperror.Internal("Generated post invalid", v.Error)
	}

	hashtags := resp.Hashtags
	if len(hashtags) > model.MaxHashtags {
		hashtags = hashtags[:model.MaxHashtags]
	}

	s.logger.Info("post generated",
		slog.String("style", style),
		slog.Int("length", len(post)),
		slog.Int("hashtags", len(hashtags)))

	return &model.AIResponse{Post: post, Hashtags: hashtags}, nil
}

// strict is the AI-route sanitizer: the base pipeline plus case-insensitive
// keyword removal.
func strict(s string) string {
	return sanitize.StripModelKeywords(sanitize.Text(s))
}
