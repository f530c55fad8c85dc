package normalize

import (
	"testing"
)

func TestReply(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Hey, you made it.", "Hey, you made it."},
		{"surrounding whitespace", "  \n  sure.\n\n", "sure."},
		{"crlf normalized", "line one\r\nline two", "line one\nline two"},
		{"control chars stripped", "o\x00k\x07 then\x1b", "ok then"},
		{"tabs kept", "left\tright", "left\tright"},
		{"empty", "   \n ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Reply(tt.in); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestAssessment_StrictJSON(t *testing.T) {
	raw := `{"primary_archetype": "The Comedian", "secondary_archetype": "The Genuine Article",
		"strengths": ["funny"], "weaknesses": ["deflects"], "justification": "jokes everywhere",
		"highlights": ["opener"], "cringe_moments": []}`

	a, degraded := Assessment(raw)
	if degraded {
		t.Fatal("Expected structured parse, got degraded")
	}
	if a.PrimaryArchetype != "The Comedian" {
		t.Errorf("Expected primary The Comedian, got %q", a.PrimaryArchetype)
	}
	if len(a.Strengths) != 1 || a.Strengths[0] != "funny" {
		t.Errorf("Expected strengths [funny], got %v", a.Strengths)
	}
	if a.RawTextResponse != "" {
		t.Errorf("Expected empty raw text on structured parse, got %q", a.RawTextResponse)
	}
}

func TestAssessment_FencedJSON(t *testing.T) {
	raw := "```json\n{\"primary_archetype\": \"The Overthinker\"}\n```"

	a, degraded := Assessment(raw)
	if degraded {
		t.Fatal("Expected fenced JSON to parse, got degraded")
	}
	if a.PrimaryArchetype != "The Overthinker" {
		t.Errorf("Expected primary The Overthinker, got %q", a.PrimaryArchetype)
	}
}

func TestAssessment_NonPrintableCorruption(t *testing.T) {
	raw := "{\"primary_archetype\": \"The \x07Ghost\"}"

	a, degraded := Assessment(raw)
	if degraded {
		t.Fatalf("Expected sanitized parse, got degraded with %q", a.RawTextResponse)
	}
	if a.PrimaryArchetype != "The Ghost" {
		t.Errorf("Expected primary The Ghost, got %q", a.PrimaryArchetype)
	}
}

func TestAssessment_FallbackNeverErrors(t *testing.T) {
	raw := "{not json"

	a, degraded := Assessment(raw)
	if !degraded {
		t.Fatal("Expected degraded fallback")
	}
	if a.RawTextResponse != "{not json" {
		t.Errorf("Expected raw text preserved, got %q", a.RawTextResponse)
	}
	if a.PrimaryArchetype != "" || len(a.Strengths) != 0 || len(a.Highlights) != 0 {
		t.Errorf("Expected empty analytic fields on fallback, got %+v", a)
	}
}
