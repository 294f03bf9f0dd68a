package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sakib/vibe-post/internal/apperror"
)

// ErrorResponse is the error body returned by every API endpoint:
// a human-readable error message, optional diagnostic details, and — for
// configuration-class 500s — a debug block that never contains secret
// values.
type ErrorResponse struct {
	Error   string         `json:"error"`
	Details any            `json:"details,omitempty"`
	Debug   map[string]any `json:"debug,omitempty"`
}

// writeJSON sends data with the given status. Headers must be set before the
// first body write.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// writeError maps a domain error onto the wire: sentinel → status, AppError
// fields → body. Services never see HTTP status codes; this is the only
// place the mapping lives.
func writeError(w http.ResponseWriter, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, apperror.ErrInvalidInput):
			status = http.StatusBadRequest
		case errors.Is(err, apperror.ErrNotFound):
			status = http.StatusNotFound
		case errors.Is(err, apperror.ErrUpstream):
			status = http.StatusBadGateway
		}

		writeJSON(w, status, ErrorResponse{
			Error:   appErr.Message,
			Details: appErr.Details,
			Debug:   appErr.Debug,
		})
		return
	}

	// Untyped error: generic 500 with the message as details.
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{
		Error:   "Internal server error",
		Details: err.Error(),
	})
}
