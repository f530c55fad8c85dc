//nolint:revive // "api" package name is intentionally concise for this layer.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/chatmatch/backend/internal/engine"
	"github.com/chatmatch/backend/internal/persona"
	"github.com/chatmatch/backend/internal/store"
)

// stubGenerator returns a fixed reply for every prompt.
type stubGenerator struct {
	text string
}

func (s *stubGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	return s.text, nil
}

func newTestRouter(maxTurns int) (*chi.Mux, *stubGenerator) {
	gen := &stubGenerator{text: "charming, truly"}
	eng := engine.New(store.NewMemory(), persona.NewRegistry(), gen, nil, nil, engine.Options{
		MaxUserTurns:      maxTurns,
		GenerationTimeout: time.Second,
	})

	r := chi.NewRouter()
	NewSessionHandler(NewHandler(eng)).RegisterRoutes(r)
	return r, gen
}

func postJSON(t *testing.T, r http.Handler, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("Failed to marshal body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func validScenarioBody() map[string]interface{} {
	return map[string]interface{}{
		"conversation_type": "first_date",
		"setting":           "coffee shop",
		"goal":              "get a second date",
		"system_archetype":  "The Icy One",
		"roast_level":       3,
		"player_sex":        "male",
		"system_sex":        "female",
	}
}

func createScenario(t *testing.T, r http.Handler) string {
	t.Helper()
	w := postJSON(t, r, "/api/v1/scenario", validScenarioBody())
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var resp map[string]interface{}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	id, _ := resp["id"].(string)
	if id == "" {
		t.Fatal("Expected non-empty scenario id")
	}
	return id
}

func TestCreateScenario(t *testing.T) {
	r, _ := newTestRouter(5)

	w := postJSON(t, r, "/api/v1/scenario", validScenarioBody())
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var resp map[string]interface{}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp["id"] == "" {
		t.Error("Expected an id in the response")
	}
	if resp["opening_line"] == "" {
		t.Error("Expected an opening line in the response")
	}
	if resp["status"] != "active" {
		t.Errorf("Expected status active, got %v", resp["status"])
	}
}

func TestCreateScenario_RoastLevelOutOfRange(t *testing.T) {
	r, _ := newTestRouter(5)

	body := validScenarioBody()
	body["roast_level"] = 6
	w := postJSON(t, r, "/api/v1/scenario", body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestCreateScenario_InvalidBody(t *testing.T) {
	r, _ := newTestRouter(5)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/scenario", bytes.NewReader([]byte("{not json")))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", w.Code)
	}
}

func TestGetScenario(t *testing.T) {
	r, _ := newTestRouter(5)
	id := createScenario(t, r)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/scenario/"+id, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Status         string `json:"status"`
		RemainingTurns int    `json:"remaining_turns"`
		Transcript     []struct {
			Speaker string `json:"speaker"`
		} `json:"transcript"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Status != "active" {
		t.Errorf("Expected status active, got %s", resp.Status)
	}
	if resp.RemainingTurns != 5 {
		t.Errorf("Expected 5 remaining turns, got %d", resp.RemainingTurns)
	}
	if len(resp.Transcript) != 1 || resp.Transcript[0].Speaker != "system" {
		t.Errorf("Expected system opener in transcript, got %+v", resp.Transcript)
	}
}

func TestGetScenario_NotFound(t *testing.T) {
	r, _ := newTestRouter(5)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/scenario/conversation-0-missing", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected 404, got %d", w.Code)
	}
}

func TestProcessChat(t *testing.T) {
	r, _ := newTestRouter(5)
	id := createScenario(t, r)

	w := postJSON(t, r, "/api/v1/process_chat", map[string]string{
		"scenario_id": id,
		"user_input":  "hey, nice scarf",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp map[string]string
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp["content"] != "charming, truly" {
		t.Errorf("Expected generated reply, got %q", resp["content"])
	}
}

func TestProcessChat_MissingScenarioID(t *testing.T) {
	r, _ := newTestRouter(5)

	w := postJSON(t, r, "/api/v1/process_chat", map[string]string{"user_input": "hey"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", w.Code)
	}
}

func TestProcessChat_BudgetExhausted(t *testing.T) {
	r, _ := newTestRouter(1)
	id := createScenario(t, r)

	w := postJSON(t, r, "/api/v1/process_chat", map[string]string{
		"scenario_id": id,
		"user_input":  "hello",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected first turn to pass, got %d", w.Code)
	}

	w = postJSON(t, r, "/api/v1/process_chat", map[string]string{
		"scenario_id": id,
		"user_input":  "one more",
	})
	if w.Code != http.StatusConflict {
		t.Fatalf("Expected 409 after budget, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAssess_FullLifecycle(t *testing.T) {
	r, gen := newTestRouter(1)
	id := createScenario(t, r)

	// Premature assessment is rejected while turns remain.
	w := postJSON(t, r, "/api/v1/conversation/"+id+"/assess", nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("Expected 409 before budget exhausted, got %d", w.Code)
	}

	w = postJSON(t, r, "/api/v1/process_chat", map[string]string{
		"scenario_id": id,
		"user_input":  "hello",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected turn to pass, got %d", w.Code)
	}

	gen.text = `{"primary_archetype": "The Comedian", "strengths": ["quick"]}`
	w = postJSON(t, r, "/api/v1/conversation/"+id+"/assess", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp map[string]interface{}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp["primary_archetype"] != "The Comedian" {
		t.Errorf("Expected primary archetype, got %v", resp["primary_archetype"])
	}

	// A turn after assessment hits the terminal state.
	w = postJSON(t, r, "/api/v1/process_chat", map[string]string{
		"scenario_id": id,
		"user_input":  "wait",
	})
	if w.Code != http.StatusGone {
		t.Fatalf("Expected 410 after assessment, got %d", w.Code)
	}
}

func TestAssess_UnknownSession(t *testing.T) {
	r, _ := newTestRouter(1)

	w := postJSON(t, r, "/api/v1/conversation/conversation-0-missing/assess", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected 404, got %d", w.Code)
	}
}
