package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/sakib/vibe-post/internal/apperror"
	"github.com/sakib/vibe-post/internal/service"
)

// AIHandler serves post generation.
type AIHandler struct {
	post   *service.Post
	logger *slog.Logger
}

// NewAIHandler creates an AIHandler.
func NewAIHandler(post *service.Post, logger *slog.Logger) *AIHandler {
	return &AIHandler{post: post, logger: logger}
}

// HandleGenerate produces a post with hashtags.
//
// HTTP: POST /api/ai
// BODY: {"activity": "...", "context": "...", "style": "Casual"}
//
// A body that fails to decode maps to a generic 500, matching the
// catch-all contract for this route.
func (h *AIHandler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	var req service.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("unreadable generation request", slog.String("error", err.Error()))
		writeError(w, apperror.Internal("Internal server error", err.Error()))
		return
	}

	resp, err := h.post.Generate(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
