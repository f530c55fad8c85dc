// Package normalize repairs raw model output. Chat replies only need
// whitespace and control-character cleanup; assessment output is expected to
// be a single JSON object and goes through a layered parser that degrades to
// a raw-text fallback instead of ever failing.
package normalize

import (
	"encoding/json"
	"strings"
	"unicode"

	"github.com/chatmatch/backend/internal/domain"
)

// Reply cleans a chat-mode model response: control characters are stripped,
// line endings normalized, surrounding whitespace trimmed. The text is
// otherwise returned verbatim.
func Reply(raw string) string {
	cleaned := strings.ReplaceAll(raw, "\r\n", "\n")
	cleaned = strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, cleaned)
	return strings.TrimSpace(cleaned)
}

// Assessment parses assessment-mode model output. Parsing is layered:
//
//  1. strip optional markdown code fences, strict JSON parse;
//  2. strip non-printable characters, parse again;
//  3. give up and return an Assessment whose only populated field is
//     RawTextResponse, carrying the original text.
//
// The degraded return reports which path was taken. There is no error
// return: the caller always receives a usable Assessment.
func Assessment(raw string) (a domain.Assessment, degraded bool) {
	candidate := stripFences(raw)
	if err := json.Unmarshal([]byte(candidate), &a); err == nil {
		a.RawTextResponse = ""
		return a, false
	}

	sanitized := stripNonPrintable(candidate)
	if err := json.Unmarshal([]byte(sanitized), &a); err == nil {
		a.RawTextResponse = ""
		return a, false
	}

	return domain.Assessment{RawTextResponse: raw}, true
}

// stripFences removes a leading ```json (or bare ```) fence and a trailing
// ``` fence, a common wrapper on structured model output.
func stripFences(raw string) string {
	cleaned := strings.TrimSpace(raw)
	if strings.HasPrefix(cleaned, "```json") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
	} else if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```")
	}
	cleaned = strings.TrimSuffix(strings.TrimSpace(cleaned), "```")
	return strings.TrimSpace(cleaned)
}

// stripNonPrintable removes control and other non-printable runes that
// corrupt otherwise valid JSON. Newlines and tabs survive since they are
// legal JSON whitespace.
func stripNonPrintable(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if !unicode.IsPrint(r) {
			return -1
		}
		return r
	}, s)
}
