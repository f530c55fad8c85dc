package domain

// Exemplar is a short tone/style snippet produced by the offline ingestion
// pipeline. Read-only to this service; retrieved by embedding similarity and
// injected into prompts as style grounding.
type Exemplar struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Embedding []float32 `json:"embedding,omitempty"`
	Tags      []string  `json:"tags,omitempty"`
}

// HasTag reports whether the exemplar carries the given tag.
func (e *Exemplar) HasTag(tag string) bool {
	for _, t := range e.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
