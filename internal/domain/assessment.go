package domain

// Assessment is the structured end-of-session report. When the model output
// could not be parsed, RawTextResponse carries the original text and every
// analytic field is empty; the caller still gets a report rather than an
// error.
type Assessment struct {
	PrimaryArchetype   string   `json:"primary_archetype,omitempty"`
	SecondaryArchetype string   `json:"secondary_archetype,omitempty"`
	Strengths          []string `json:"strengths,omitempty"`
	Weaknesses         []string `json:"weaknesses,omitempty"`
	Justification      string   `json:"justification,omitempty"`
	Highlights         []string `json:"highlights,omitempty"`
	CringeMoments      []string `json:"cringe_moments,omitempty"`
	RawTextResponse    string   `json:"raw_text_response,omitempty"`
}

// Degraded reports whether this assessment came from the raw-text fallback
// path instead of a structured parse.
func (a *Assessment) Degraded() bool {
	return a.RawTextResponse != ""
}
