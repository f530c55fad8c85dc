package api

import (
	"net/http"

	"github.com/chatmatch/backend/internal/store"
)

// HealthHandler reports process and store health.
type HealthHandler struct {
	repo store.Repository
}

// NewHealthHandler creates a health handler over the session store.
func NewHealthHandler(repo store.Repository) *HealthHandler {
	return &HealthHandler{repo: repo}
}

// Health responds 200 when the store answers, 503 otherwise.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.repo.Ping(r.Context()); err != nil {
		JSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "degraded",
			"error":  err.Error(),
		})
		return
	}
	JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
