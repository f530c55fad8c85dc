package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/chatmatch/backend/internal/domain"
)

// SessionHandler handles scenario, chat and assessment endpoints.
type SessionHandler struct {
	*Handler
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(base *Handler) *SessionHandler {
	return &SessionHandler{Handler: base}
}

// RegisterRoutes registers the session lifecycle routes.
func (h *SessionHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/scenario", h.CreateScenario)
		r.Get("/scenario/{scenarioID}", h.GetScenario)
		r.Post("/process_chat", h.ProcessChat)
		r.Post("/conversation/{scenarioID}/assess", h.Assess)
	})
}

type createScenarioRequest struct {
	ConversationType string `json:"conversation_type"`
	Setting          string `json:"setting"`
	Goal             string `json:"goal"`
	SystemArchetype  string `json:"system_archetype"`
	RoastLevel       int    `json:"roast_level"`
	PlayerSex        string `json:"player_sex"`
	SystemSex        string `json:"system_sex"`
}

// CreateScenario validates a scenario and creates its session.
func (h *SessionHandler) CreateScenario(w http.ResponseWriter, r *http.Request) {
	var req createScenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	sess, err := h.engine.CreateSession(r.Context(), domain.Scenario{
		ConversationType: req.ConversationType,
		Setting:          req.Setting,
		Goal:             req.Goal,
		SystemArchetype:  req.SystemArchetype,
		RoastLevel:       req.RoastLevel,
		PlayerSex:        req.PlayerSex,
		SystemSex:        req.SystemSex,
	})
	if err != nil {
		DomainError(w, err)
		return
	}

	JSON(w, http.StatusCreated, map[string]interface{}{
		"id":             sess.ID(),
		"status":         sess.Status,
		"max_user_turns": sess.MaxUserTurns,
		"opening_line":   sess.Transcript[0].Text,
	})
}

// GetScenario returns the session state for a scenario id.
func (h *SessionHandler) GetScenario(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "scenarioID")

	sess, err := h.engine.GetSession(r.Context(), id)
	if err != nil {
		DomainError(w, err)
		return
	}

	JSON(w, http.StatusOK, map[string]interface{}{
		"scenario":        sess.Scenario,
		"status":          sess.Status,
		"turn_count_user": sess.TurnCountUser,
		"max_user_turns":  sess.MaxUserTurns,
		"remaining_turns": sess.RemainingTurns(),
		"transcript":      sess.Transcript,
	})
}

type processChatRequest struct {
	ScenarioID string `json:"scenario_id"`
	UserInput  string `json:"user_input"`
}

// ProcessChat records a user turn and returns the simulated reply.
func (h *SessionHandler) ProcessChat(w http.ResponseWriter, r *http.Request) {
	var req processChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.ScenarioID == "" {
		Error(w, http.StatusBadRequest, "scenario_id is required")
		return
	}

	reply, err := h.engine.SubmitTurn(r.Context(), req.ScenarioID, req.UserInput)
	if err != nil {
		slog.Warn("process_chat rejected", "scenario_id", req.ScenarioID, "error", err)
		DomainError(w, err)
		return
	}

	JSON(w, http.StatusOK, map[string]string{"content": reply})
}

// Assess produces or returns the cached end-of-session report.
func (h *SessionHandler) Assess(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "scenarioID")

	assessment, err := h.engine.Assess(r.Context(), id)
	if err != nil {
		DomainError(w, err)
		return
	}

	JSON(w, http.StatusOK, assessment)
}
