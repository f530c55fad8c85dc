package exemplar

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/chatmatch/backend/internal/domain"
	"github.com/chatmatch/backend/internal/llm"
)

// historyWindow is how many trailing transcript turns feed the query text.
const historyWindow = 3

// Retriever embeds a query and searches the vector store with the
// tag-fallback policy: tag-filtered first, untagged global top-k when the
// tag filter matches nothing. Results are ordered by similarity descending
// with ties broken by exemplar id for determinism.
type Retriever struct {
	embed llm.Embedder
	store VectorStore
}

// NewRetriever creates a retriever over the given embedder and store.
func NewRetriever(embed llm.Embedder, store VectorStore) *Retriever {
	return &Retriever{embed: embed, store: store}
}

// Retrieve returns up to k exemplars relevant to the query text. A tag miss
// falls back to the untagged global top-k; only embedding or store failures
// return an error, and callers treat those as soft (reply generation
// proceeds ungrounded).
func (r *Retriever) Retrieve(ctx context.Context, queryText string, tags []string, k int) ([]domain.Exemplar, error) {
	if k <= 0 {
		return nil, nil
	}

	vector, err := r.embed.Embed(ctx, queryText)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	scored, err := r.store.Search(ctx, vector, tags, k)
	if err != nil {
		return nil, fmt.Errorf("search exemplars: %w", err)
	}
	if len(scored) == 0 && len(tags) > 0 {
		scored, err = r.store.Search(ctx, vector, nil, k)
		if err != nil {
			return nil, fmt.Errorf("search exemplars untagged: %w", err)
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Exemplar.ID < scored[j].Exemplar.ID
	})
	if len(scored) > k {
		scored = scored[:k]
	}

	out := make([]domain.Exemplar, 0, len(scored))
	for _, s := range scored {
		out = append(out, s.Exemplar)
	}
	return out, nil
}

// QueryText builds the retrieval query from the current input, the last few
// transcript turns and the scenario descriptor.
func QueryText(userInput string, transcript []domain.Turn, sc *domain.Scenario) string {
	start := len(transcript) - historyWindow
	if start < 0 {
		start = 0
	}
	parts := make([]string, 0, historyWindow)
	for _, t := range transcript[start:] {
		parts = append(parts, t.Text)
	}
	return fmt.Sprintf("%s [History: %s] [Scenario: %s]",
		userInput, strings.Join(parts, " "), sc.Descriptor())
}
