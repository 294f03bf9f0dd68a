package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/sakib/vibe-post/internal/apperror"
	"github.com/sakib/vibe-post/internal/service"
)

// ActivityHandler relays a user's GitHub event feed.
type ActivityHandler struct {
	activity *service.Activity
	logger   *slog.Logger
}

// NewActivityHandler creates an ActivityHandler.
func NewActivityHandler(activity *service.Activity, logger *slog.Logger) *ActivityHandler {
	return &ActivityHandler{activity: activity, logger: logger}
}

// activityResponse wraps the raw upstream payload.
type activityResponse struct {
	Activity json.RawMessage `json:"activity"`
}

// HandleFetch returns the raw GitHub activity for a user.
//
// HTTP: GET /api/github/activity?user_id=xxx
func (h *ActivityHandler) HandleFetch(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		writeError(w, apperror.InvalidInput("Missing user_id", nil))
		return
	}

	activity, err := h.activity.Fetch(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, activityResponse{Activity: activity})
}
