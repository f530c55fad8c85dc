// Package api provides HTTP handlers for the ChatMatch API.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/chatmatch/backend/internal/domain"
	"github.com/chatmatch/backend/internal/engine"
	"github.com/chatmatch/backend/internal/llm"
)

// Handler provides common handler utilities.
type Handler struct {
	engine *engine.Engine
}

// NewHandler creates a new Handler with common dependencies.
func NewHandler(eng *engine.Engine) *Handler {
	return &Handler{engine: eng}
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"error": "failed to encode response"}`, http.StatusInternalServerError)
	}
}

// Error writes a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}

// DomainError maps domain and generation errors onto HTTP status codes and
// writes the response. Unknown errors become a 500 with a generic message.
func DomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidScenario):
		Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrSessionNotFound):
		Error(w, http.StatusNotFound, "session not found")
	case errors.Is(err, domain.ErrTurnBudgetExceeded):
		Error(w, http.StatusConflict, "turn budget exhausted; request an assessment")
	case errors.Is(err, domain.ErrAssessmentNotReady):
		Error(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrSessionTerminal):
		Error(w, http.StatusGone, "session already assessed")
	case errors.Is(err, llm.ErrUnavailable), errors.Is(err, llm.ErrEmpty):
		Error(w, http.StatusServiceUnavailable, "generation temporarily unavailable")
	default:
		Error(w, http.StatusInternalServerError, "internal error")
	}
}
