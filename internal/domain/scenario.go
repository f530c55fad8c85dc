// Package domain contains core domain types for the ChatMatch backend.
package domain

import (
	"fmt"
	"time"
)

// RoastLevelMin and RoastLevelMax bound the ordinal bluntness scale.
const (
	RoastLevelMin = 1
	RoastLevelMax = 5
)

// Scenario describes one simulated conversation setup. Immutable once
// created; ownership stays with the session engine for its lifetime.
type Scenario struct {
	ID               string    `json:"id"`
	ConversationType string    `json:"conversation_type"`
	Setting          string    `json:"setting"`
	Goal             string    `json:"goal"`
	SystemArchetype  string    `json:"system_archetype"`
	RoastLevel       int       `json:"roast_level"`
	PlayerSex        string    `json:"player_sex"`
	SystemSex        string    `json:"system_sex"`
	CreatedAt        time.Time `json:"created_at"`
}

// Validate checks required fields and the roast level range.
func (s *Scenario) Validate() error {
	if s.ConversationType == "" {
		return fmt.Errorf("%w: conversation_type is required", ErrInvalidScenario)
	}
	if s.Setting == "" {
		return fmt.Errorf("%w: setting is required", ErrInvalidScenario)
	}
	if s.Goal == "" {
		return fmt.Errorf("%w: goal is required", ErrInvalidScenario)
	}
	if s.SystemArchetype == "" {
		return fmt.Errorf("%w: system_archetype is required", ErrInvalidScenario)
	}
	if s.RoastLevel < RoastLevelMin || s.RoastLevel > RoastLevelMax {
		return fmt.Errorf("%w: roast_level %d outside [%d,%d]",
			ErrInvalidScenario, s.RoastLevel, RoastLevelMin, RoastLevelMax)
	}
	return nil
}

// Descriptor returns a flat "key:value" string of the scenario fields, used
// as part of the exemplar retrieval query text.
func (s *Scenario) Descriptor() string {
	return fmt.Sprintf("type:%s setting:%s goal:%s archetype:%s player_sex:%s system_sex:%s",
		s.ConversationType, s.Setting, s.Goal, s.SystemArchetype, s.PlayerSex, s.SystemSex)
}
