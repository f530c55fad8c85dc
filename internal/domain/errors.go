package domain

import "errors"

// Error taxonomy for session lifecycle and input validation. Generation
// failures live in the llm package next to the client that produces them.
var (
	// ErrInvalidScenario marks user-correctable bad input (missing fields,
	// roast level out of range, unknown archetype).
	ErrInvalidScenario = errors.New("invalid scenario")

	// ErrSessionNotFound marks a stale or unknown session id.
	ErrSessionNotFound = errors.New("session not found")

	// ErrTurnBudgetExceeded marks a turn submitted after the budget locked
	// the session.
	ErrTurnBudgetExceeded = errors.New("turn budget exceeded")

	// ErrSessionTerminal marks any mutation attempted after assessment.
	ErrSessionTerminal = errors.New("session already assessed")

	// ErrAssessmentNotReady marks an assessment request before the turn
	// budget is exhausted.
	ErrAssessmentNotReady = errors.New("assessment not ready: session still active")
)
