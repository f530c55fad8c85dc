package domain

import (
	"time"
)

// SessionStatus tracks where a session is in its lifecycle.
type SessionStatus string

const (
	// StatusActive accepts further user turns.
	StatusActive SessionStatus = "active"
	// StatusLocked means the turn budget is exhausted; only assessment is valid.
	StatusLocked SessionStatus = "locked"
	// StatusAssessed is terminal; the cached assessment is the only readable state.
	StatusAssessed SessionStatus = "assessed"
)

// Speaker identifies who produced a turn.
type Speaker string

const (
	SpeakerUser   Speaker = "user"
	SpeakerSystem Speaker = "system"
)

// Turn is one utterance in a conversation. Turns are append-only and their
// insertion order is the conversation order.
type Turn struct {
	ID        string    `json:"id"`
	Speaker   Speaker   `json:"speaker"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// Session holds all per-conversation state. One session per scenario id,
// mutated only by the session engine.
type Session struct {
	Scenario      Scenario      `json:"scenario"`
	Transcript    []Turn        `json:"transcript"`
	TurnCountUser int           `json:"turn_count_user"`
	Status        SessionStatus `json:"status"`
	MaxUserTurns  int           `json:"max_user_turns"`
	Assessment    *Assessment   `json:"assessment,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// ID returns the scenario id, which doubles as the session id.
func (s *Session) ID() string {
	return s.Scenario.ID
}

// RemainingTurns returns how many user turns the session still accepts.
func (s *Session) RemainingTurns() int {
	left := s.MaxUserTurns - s.TurnCountUser
	if left < 0 {
		return 0
	}
	return left
}

// AppendTurn records a turn at the end of the transcript and updates the
// user turn count and lock status.
func (s *Session) AppendTurn(t Turn) {
	s.Transcript = append(s.Transcript, t)
	if t.Speaker == SpeakerUser {
		s.TurnCountUser++
		if s.TurnCountUser >= s.MaxUserTurns {
			s.Status = StatusLocked
		}
	}
}
