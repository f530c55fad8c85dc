// Package engine owns the session lifecycle: creation, the turn loop with
// its budget, and the end-of-session assessment. All session mutation goes
// through here, serialized per session id.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/chatmatch/backend/internal/domain"
	"github.com/chatmatch/backend/internal/exemplar"
	"github.com/chatmatch/backend/internal/llm"
	"github.com/chatmatch/backend/internal/normalize"
	"github.com/chatmatch/backend/internal/persona"
	"github.com/chatmatch/backend/internal/prompt"
	"github.com/chatmatch/backend/internal/store"
)

// Retriever fetches style exemplars for a query. Retrieval failures are
// soft: the engine logs them and generates without grounding.
type Retriever interface {
	Retrieve(ctx context.Context, queryText string, tags []string, k int) ([]domain.Exemplar, error)
}

// Options configures an Engine.
type Options struct {
	MaxUserTurns      int
	ExemplarTopK      int
	GenerationTimeout time.Duration
}

// Engine coordinates the stores, the persona registry, retrieval and
// generation behind the session state machine.
type Engine struct {
	repo      store.Repository
	personas  *persona.Registry
	gen       llm.Generator
	retriever Retriever
	archive   *ArchiveWriter
	opts      Options

	// sessionLocks serializes concurrent operations on the same session.
	sessionLocks sync.Map // session id -> *sync.Mutex
}

// New creates an Engine. retriever and archive may be nil; the engine then
// skips exemplar grounding and assessment archiving respectively.
func New(repo store.Repository, personas *persona.Registry, gen llm.Generator, retriever Retriever, archive *ArchiveWriter, opts Options) *Engine {
	if opts.MaxUserTurns <= 0 {
		opts.MaxUserTurns = 5
	}
	if opts.GenerationTimeout <= 0 {
		opts.GenerationTimeout = 45 * time.Second
	}
	return &Engine{
		repo:      repo,
		personas:  personas,
		gen:       gen,
		retriever: retriever,
		archive:   archive,
		opts:      opts,
	}
}

func (e *Engine) lockSession(id string) *sync.Mutex {
	mu, _ := e.sessionLocks.LoadOrStore(id, &sync.Mutex{})
	lock := mu.(*sync.Mutex)
	lock.Lock()
	return lock
}

// NewScenarioID mints a unique session identifier.
func NewScenarioID() string {
	return fmt.Sprintf("conversation-%d-%s", time.Now().Unix(), uuid.NewString())
}

// CreateSession validates the scenario, resolves its persona and stores a
// fresh session whose transcript already holds the persona's opening line.
func (e *Engine) CreateSession(ctx context.Context, sc domain.Scenario) (*domain.Session, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	p, ok := e.personas.Lookup(sc.SystemArchetype)
	if !ok {
		return nil, fmt.Errorf("%w: unknown system_archetype %q (available: %s)",
			domain.ErrInvalidScenario, sc.SystemArchetype,
			strings.Join(e.personas.SystemArchetypes(), ", "))
	}

	now := time.Now().UTC()
	sc.ID = NewScenarioID()
	sc.CreatedAt = now

	sess := &domain.Session{
		Scenario:     sc,
		Status:       domain.StatusActive,
		MaxUserTurns: e.opts.MaxUserTurns,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	sess.AppendTurn(domain.Turn{
		ID:        uuid.NewString(),
		Speaker:   domain.SpeakerSystem,
		Text:      p.Opener,
		Timestamp: now,
	})

	if err := e.repo.CreateSession(ctx, sess); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	slog.Info("session created",
		"session_id", sess.ID(),
		"archetype", sc.SystemArchetype,
		"roast_level", sc.RoastLevel,
		"max_user_turns", sess.MaxUserTurns)
	return sess, nil
}

// GetSession returns the session for id or ErrSessionNotFound.
func (e *Engine) GetSession(ctx context.Context, id string) (*domain.Session, error) {
	sess, err := e.repo.GetSession(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if sess == nil {
		return nil, domain.ErrSessionNotFound
	}
	return sess, nil
}

// SubmitTurn records one user turn and returns the simulated partner's
// reply. The user turn is persisted before generation starts, so a failed
// generation still consumes budget. Concurrent calls for the same session
// are applied one at a time.
func (e *Engine) SubmitTurn(ctx context.Context, sessionID, userInput string) (string, error) {
	userInput = strings.TrimSpace(userInput)
	if userInput == "" {
		return "", fmt.Errorf("%w: user input is empty", domain.ErrInvalidScenario)
	}

	lock := e.lockSession(sessionID)
	defer lock.Unlock()

	sess, err := e.GetSession(ctx, sessionID)
	if err != nil {
		return "", err
	}
	switch sess.Status {
	case domain.StatusAssessed:
		return "", domain.ErrSessionTerminal
	case domain.StatusLocked:
		return "", domain.ErrTurnBudgetExceeded
	}

	p, ok := e.personas.Lookup(sess.Scenario.SystemArchetype)
	if !ok {
		return "", fmt.Errorf("%w: unknown system_archetype %q",
			domain.ErrInvalidScenario, sess.Scenario.SystemArchetype)
	}

	// Record the user turn before touching the model. Budget accounting
	// must survive a generation failure.
	sess.AppendTurn(domain.Turn{
		ID:        uuid.NewString(),
		Speaker:   domain.SpeakerUser,
		Text:      userInput,
		Timestamp: time.Now().UTC(),
	})
	sess.UpdatedAt = time.Now().UTC()
	if err := e.repo.UpdateSession(ctx, sess); err != nil {
		return "", fmt.Errorf("persist user turn: %w", err)
	}

	exemplars := e.retrieveExemplars(ctx, sess, userInput)

	genCtx, cancel := context.WithTimeout(ctx, e.opts.GenerationTimeout)
	defer cancel()

	raw, err := e.gen.Generate(genCtx, prompt.Chat(prompt.ChatInput{
		Persona:    p,
		Scenario:   sess.Scenario,
		Exemplars:  exemplars,
		Transcript: sess.Transcript,
	}))
	if err != nil {
		slog.Error("turn generation failed",
			"session_id", sessionID,
			"turn_count", sess.TurnCountUser,
			"error", err)
		return "", fmt.Errorf("generate reply: %w", err)
	}

	reply := normalize.Reply(raw)
	if reply == "" {
		return "", fmt.Errorf("generate reply: %w", llm.ErrEmpty)
	}

	sess.AppendTurn(domain.Turn{
		ID:        uuid.NewString(),
		Speaker:   domain.SpeakerSystem,
		Text:      reply,
		Timestamp: time.Now().UTC(),
	})
	sess.UpdatedAt = time.Now().UTC()
	if err := e.repo.UpdateSession(ctx, sess); err != nil {
		return "", fmt.Errorf("persist reply turn: %w", err)
	}

	slog.Info("turn processed",
		"session_id", sessionID,
		"turn_count", sess.TurnCountUser,
		"remaining", sess.RemainingTurns(),
		"status", sess.Status)
	return reply, nil
}

func (e *Engine) retrieveExemplars(ctx context.Context, sess *domain.Session, userInput string) []domain.Exemplar {
	if e.retriever == nil || e.opts.ExemplarTopK <= 0 {
		return nil
	}
	query := exemplar.QueryText(userInput, sess.Transcript, &sess.Scenario)
	tags := []string{archetypeTag(sess.Scenario.SystemArchetype)}
	out, err := e.retriever.Retrieve(ctx, query, tags, e.opts.ExemplarTopK)
	if err != nil {
		slog.Warn("exemplar retrieval failed, generating ungrounded",
			"session_id", sess.ID(),
			"error", err)
		return nil
	}
	return out
}

// Assess produces the end-of-session report. The first successful call
// computes and caches it; later calls return the cached report unchanged.
func (e *Engine) Assess(ctx context.Context, sessionID string) (*domain.Assessment, error) {
	lock := e.lockSession(sessionID)
	defer lock.Unlock()

	sess, err := e.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.Assessment != nil {
		return sess.Assessment, nil
	}
	if sess.Status != domain.StatusLocked {
		return nil, fmt.Errorf("%w: %d of %d turns used",
			domain.ErrAssessmentNotReady, sess.TurnCountUser, sess.MaxUserTurns)
	}

	genCtx, cancel := context.WithTimeout(ctx, e.opts.GenerationTimeout)
	defer cancel()

	raw, err := e.gen.Generate(genCtx, prompt.Assessment(prompt.AssessmentInput{
		ArchetypeDefinitions: e.personas.FormattedUserArchetypes(),
		ConversationAspects:  e.personas.FormattedAspects(),
		Transcript:           sess.Transcript,
	}))
	if err != nil {
		return nil, fmt.Errorf("generate assessment: %w", err)
	}

	assessment, degraded := normalize.Assessment(raw)
	if degraded {
		slog.Warn("assessment fell back to raw text", "session_id", sessionID)
	}

	sess.Assessment = &assessment
	sess.Status = domain.StatusAssessed
	sess.UpdatedAt = time.Now().UTC()
	if err := e.repo.UpdateSession(ctx, sess); err != nil {
		return nil, fmt.Errorf("persist assessment: %w", err)
	}

	if e.archive != nil {
		e.archive.Enqueue(sess)
	}

	slog.Info("session assessed",
		"session_id", sessionID,
		"degraded", degraded,
		"primary_archetype", assessment.PrimaryArchetype)
	return sess.Assessment, nil
}

// DeleteSession removes a session and its lock entry.
func (e *Engine) DeleteSession(ctx context.Context, id string) error {
	if err := e.repo.DeleteSession(ctx, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	e.sessionLocks.Delete(id)
	return nil
}

// archetypeTag turns an archetype display name into a retrieval tag, for
// example "The Certified Baddie" becomes "certified-baddie".
func archetypeTag(name string) string {
	tag := strings.ToLower(strings.TrimSpace(name))
	tag = strings.TrimPrefix(tag, "the ")
	return strings.ReplaceAll(tag, " ", "-")
}
