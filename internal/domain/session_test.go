package domain

import (
	"errors"
	"testing"
	"time"
)

func TestAppendTurn_LocksAtBudget(t *testing.T) {
	s := &Session{
		Scenario:     Scenario{ID: "conversation-1-a"},
		Status:       StatusActive,
		MaxUserTurns: 2,
	}

	s.AppendTurn(Turn{ID: "t0", Speaker: SpeakerSystem, Text: "hey"})
	if s.TurnCountUser != 0 {
		t.Errorf("Expected system turn to leave count at 0, got %d", s.TurnCountUser)
	}
	if s.Status != StatusActive {
		t.Errorf("Expected status active after system turn, got %s", s.Status)
	}

	s.AppendTurn(Turn{ID: "t1", Speaker: SpeakerUser, Text: "hi"})
	if s.Status != StatusActive {
		t.Errorf("Expected status active at 1 of 2 turns, got %s", s.Status)
	}
	if s.RemainingTurns() != 1 {
		t.Errorf("Expected 1 remaining turn, got %d", s.RemainingTurns())
	}

	s.AppendTurn(Turn{ID: "t2", Speaker: SpeakerUser, Text: "hi again"})
	if s.Status != StatusLocked {
		t.Errorf("Expected status locked at budget, got %s", s.Status)
	}
	if s.RemainingTurns() != 0 {
		t.Errorf("Expected 0 remaining turns, got %d", s.RemainingTurns())
	}
	if len(s.Transcript) != 3 {
		t.Errorf("Expected 3 transcript turns, got %d", len(s.Transcript))
	}
}

func TestTranscriptOrderPreserved(t *testing.T) {
	s := &Session{MaxUserTurns: 5}
	want := []struct {
		speaker Speaker
		text    string
	}{
		{SpeakerSystem, "opener"},
		{SpeakerUser, "first"},
		{SpeakerSystem, "reply one"},
		{SpeakerUser, "second"},
	}
	for i, w := range want {
		s.AppendTurn(Turn{ID: string(rune('a' + i)), Speaker: w.speaker, Text: w.text, Timestamp: time.Now()})
	}

	for i, w := range want {
		if s.Transcript[i].Speaker != w.speaker || s.Transcript[i].Text != w.text {
			t.Errorf("Turn %d: expected %s %q, got %s %q",
				i, w.speaker, w.text, s.Transcript[i].Speaker, s.Transcript[i].Text)
		}
	}
}

func TestScenarioValidate(t *testing.T) {
	valid := Scenario{
		ConversationType: "first_date",
		Setting:          "coffee shop",
		Goal:             "get a second date",
		SystemArchetype:  "The Icy One",
		RoastLevel:       3,
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Expected valid scenario, got %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Scenario)
	}{
		{"missing conversation_type", func(s *Scenario) { s.ConversationType = "" }},
		{"missing setting", func(s *Scenario) { s.Setting = "" }},
		{"missing goal", func(s *Scenario) { s.Goal = "" }},
		{"missing archetype", func(s *Scenario) { s.SystemArchetype = "" }},
		{"roast level too low", func(s *Scenario) { s.RoastLevel = 0 }},
		{"roast level too high", func(s *Scenario) { s.RoastLevel = 6 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc := valid
			tt.mutate(&sc)
			err := sc.Validate()
			if err == nil {
				t.Fatal("Expected validation error, got nil")
			}
			if !errors.Is(err, ErrInvalidScenario) {
				t.Errorf("Expected ErrInvalidScenario, got %v", err)
			}
		})
	}
}

func TestAssessmentDegraded(t *testing.T) {
	structured := Assessment{PrimaryArchetype: "The Comedian"}
	if structured.Degraded() {
		t.Error("Expected structured assessment to not be degraded")
	}
	fallback := Assessment{RawTextResponse: "the model rambled"}
	if !fallback.Degraded() {
		t.Error("Expected raw-text assessment to be degraded")
	}
}
