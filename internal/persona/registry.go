// Package persona holds the immutable archetype registry: the simulated
// partner personas, the user classification archetypes used by assessment,
// and the conversation aspects the report scores against. Loaded once at
// process start and never mutated at request time.
package persona

import (
	"fmt"
	"strings"

	"github.com/chatmatch/backend/internal/domain"
)

// Persona defines a simulated partner's identity and behavioral rules.
type Persona struct {
	Name         string // Archetype name as selected by the client
	Tone         string // Overall emotional register
	Quirks       string // Speech habits and verbal tics
	RefusalStyle string // How the persona deflects or shuts things down
	Opener       string // Deterministic first line of every conversation
	// RoastScale maps roast level (1-5, index level-1) to a behavioral
	// profile that replaces the raw number in the prompt.
	RoastScale [domain.RoastLevelMax]string
}

// RoastProfile returns the behavioral profile for the given roast level.
// Out-of-range levels clamp to the nearest bound.
func (p *Persona) RoastProfile(level int) string {
	if level < domain.RoastLevelMin {
		level = domain.RoastLevelMin
	}
	if level > domain.RoastLevelMax {
		level = domain.RoastLevelMax
	}
	return p.RoastScale[level-1]
}

// Aspect describes one conversation dimension the assessment scores.
type Aspect struct {
	Name        string
	Description string
	Good        string
	Bad         string
}

// Registry is the read-only persona lookup shared by all sessions.
type Registry struct {
	systems        map[string]Persona
	systemOrder    []string
	userArchetypes []UserArchetype
	aspects        []Aspect
}

// UserArchetype is one possible classification of the player in the report.
type UserArchetype struct {
	Name        string
	Description string
}

// NewRegistry builds the registry from the built-in tables.
func NewRegistry() *Registry {
	r := &Registry{systems: make(map[string]Persona)}
	for _, p := range systemArchetypes {
		r.systems[p.Name] = p
		r.systemOrder = append(r.systemOrder, p.Name)
	}
	r.userArchetypes = userArchetypes
	r.aspects = conversationAspects
	return r
}

// Lookup returns the persona for an archetype name.
func (r *Registry) Lookup(name string) (Persona, bool) {
	p, ok := r.systems[name]
	return p, ok
}

// SystemArchetypes lists the available partner archetype names in a stable order.
func (r *Registry) SystemArchetypes() []string {
	out := make([]string, len(r.systemOrder))
	copy(out, r.systemOrder)
	return out
}

// FormattedUserArchetypes renders the classification archetypes as a prompt
// fragment, one "- name: description" line per archetype.
func (r *Registry) FormattedUserArchetypes() string {
	var b strings.Builder
	for i, a := range r.userArchetypes {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "- %s: %s", a.Name, a.Description)
	}
	return b.String()
}

// FormattedAspects renders the conversation aspects with their good/bad
// poles for the assessment prompt.
func (r *Registry) FormattedAspects() string {
	var b strings.Builder
	for i, a := range r.aspects {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "- %s: %s\n    - Good: %s\n    - Bad: %s", a.Name, a.Description, a.Good, a.Bad)
	}
	return b.String()
}
