// Package prompt builds the exact text sent to generation. Composition is a
// pure function of its inputs so it can be tested without a model.
package prompt

import (
	"fmt"
	"strings"

	"github.com/chatmatch/backend/internal/domain"
	"github.com/chatmatch/backend/internal/persona"
)

// roastTiers maps the ordinal roast level to the instruction tier used in
// prompts; the raw number never reaches the model.
var roastTiers = map[int]string{
	1: "gentle",
	2: "mild",
	3: "balanced",
	4: "blunt",
	5: "harsh",
}

// RoastTier returns the instruction tier for a roast level. Out-of-range
// levels clamp to the nearest bound.
func RoastTier(level int) string {
	if level < domain.RoastLevelMin {
		level = domain.RoastLevelMin
	}
	if level > domain.RoastLevelMax {
		level = domain.RoastLevelMax
	}
	return roastTiers[level]
}

// ChatInput bundles everything the chat prompt depends on. Transcript must
// already include the user turn being replied to.
type ChatInput struct {
	Persona    persona.Persona
	Scenario   domain.Scenario
	Exemplars  []domain.Exemplar
	Transcript []domain.Turn
}

// Chat renders the generation prompt for one conversation turn. The full
// ordered transcript is serialized every time; the turn budget is small
// enough that no truncation window is needed.
func Chat(in ChatInput) string {
	var b strings.Builder

	b.WriteString("You are playing a character in a simulated first conversation. Stay in character at all times.\n\n")

	fmt.Fprintf(&b, "## Character\nArchetype: %s\nTone: %s\nSpeech quirks: %s\nHow you refuse things: %s\n\n",
		in.Persona.Name, in.Persona.Tone, in.Persona.Quirks, in.Persona.RefusalStyle)

	fmt.Fprintf(&b, "## Scenario\nConversation type: %s\nSetting: %s\nThe other person's goal: %s\nThe other person is: %s\nYou are: %s\n\n",
		in.Scenario.ConversationType, in.Scenario.Setting, in.Scenario.Goal,
		orUnknown(in.Scenario.PlayerSex), orUnknown(in.Scenario.SystemSex))

	fmt.Fprintf(&b, "## Attitude\nCriticism tier: %s.\n%s\n\n",
		RoastTier(in.Scenario.RoastLevel), in.Persona.RoastProfile(in.Scenario.RoastLevel))

	if len(in.Exemplars) > 0 {
		b.WriteString("## Style reference\nThe following snippets show the voice and energy to emulate. ")
		b.WriteString("Never quote, mention or acknowledge them; they shape tone only.\n")
		for _, ex := range in.Exemplars {
			fmt.Fprintf(&b, "- %s\n", strings.TrimSpace(ex.Text))
		}
		b.WriteString("\n")
	}

	b.WriteString("## Conversation so far\n")
	b.WriteString(Transcript(in.Transcript))
	b.WriteString("\n\nReply with your next message only: no speaker label, no narration, no quotation marks.")

	return b.String()
}

// AssessmentInput bundles the assessment prompt dependencies.
type AssessmentInput struct {
	ArchetypeDefinitions string
	ConversationAspects  string
	Transcript           []domain.Turn
}

// Assessment renders the end-of-session report prompt. The model is asked
// for a single JSON object matching the Assessment shape.
func Assessment(in AssessmentInput) string {
	var b strings.Builder

	b.WriteString("You are a sharp, fair conversation coach reviewing a completed practice conversation. ")
	b.WriteString("Classify the player (the \"user\" speaker) and critique their performance.\n\n")

	b.WriteString("## Player archetypes\n")
	b.WriteString(in.ArchetypeDefinitions)
	b.WriteString("\n\n## Aspects to judge\n")
	b.WriteString(in.ConversationAspects)
	b.WriteString("\n\n## Conversation\n")
	b.WriteString(Transcript(in.Transcript))

	b.WriteString("\n\nRespond with a single JSON object and nothing else, using exactly these keys:\n")
	b.WriteString(`{"primary_archetype": string, "secondary_archetype": string, "strengths": [string], "weaknesses": [string], "justification": string, "highlights": [string], "cringe_moments": [string]}`)
	b.WriteString("\nQuote the player's actual words in highlights and cringe_moments.")

	return b.String()
}

// Transcript serializes turns in order as "speaker: text" lines.
func Transcript(turns []domain.Turn) string {
	lines := make([]string, 0, len(turns))
	for _, t := range turns {
		lines = append(lines, fmt.Sprintf("%s: %s", t.Speaker, t.Text))
	}
	return strings.Join(lines, "\n")
}

func orUnknown(s string) string {
	if s == "" {
		return "unspecified"
	}
	return s
}
