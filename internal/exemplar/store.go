// Package exemplar retrieves tone/style snippets from a vector index to
// ground reply generation. The index itself is written offline by the
// ingestion pipeline; this package only reads it.
package exemplar

import (
	"context"

	"github.com/chatmatch/backend/internal/domain"
)

// Scored pairs an exemplar with its similarity score to a query vector.
type Scored struct {
	Exemplar domain.Exemplar
	Score    float32
}

// VectorStore is a technology-agnostic interface for vector similarity
// search over exemplars. Implementations: in-memory cosine index, Qdrant.
type VectorStore interface {
	// Search returns up to limit exemplars ranked by similarity to vector,
	// restricted to entries whose tags intersect the given set. An empty
	// tag set means no tag restriction.
	Search(ctx context.Context, vector []float32, tags []string, limit int) ([]Scored, error)

	// Close releases any resources held by the store.
	Close() error
}
