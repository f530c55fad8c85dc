package exemplar

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/chatmatch/backend/internal/domain"
)

// MemoryStore is a brute-force in-memory VectorStore. Used in tests and in
// deployments without a Qdrant endpoint; an empty store simply yields
// ungrounded replies.
type MemoryStore struct {
	mu        sync.RWMutex
	exemplars []domain.Exemplar
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Add inserts exemplars into the index.
func (m *MemoryStore) Add(exemplars ...domain.Exemplar) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.exemplars = append(m.exemplars, exemplars...)
}

// Search implements VectorStore using cosine similarity. Matches are ranked
// before the limit applies, so the result is the true top-k.
func (m *MemoryStore) Search(ctx context.Context, vector []float32, tags []string, limit int) ([]Scored, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var results []Scored
	for _, ex := range m.exemplars {
		if len(tags) > 0 && !tagsIntersect(ex.Tags, tags) {
			continue
		}
		results = append(results, Scored{Exemplar: ex, Score: cosine(vector, ex.Embedding)})
	}
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Exemplar.ID < results[j].Exemplar.ID
	})
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// Close implements VectorStore.
func (m *MemoryStore) Close() error {
	return nil
}

func tagsIntersect(have, want []string) bool {
	for _, w := range want {
		for _, h := range have {
			if h == w {
				return true
			}
		}
	}
	return false
}

func cosine(a, b []float32) float32 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, na, nb float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(na) * math.Sqrt(nb)))
}

var _ VectorStore = (*MemoryStore)(nil)
