// Package qdrant implements exemplar.VectorStore against a Qdrant
// collection populated by the ingestion pipeline. Expected payload keys:
// "text" (the snippet) and "tags" (keyword list).
package qdrant

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/chatmatch/backend/internal/domain"
	"github.com/chatmatch/backend/internal/exemplar"
	"github.com/qdrant/go-client/qdrant"
)

// Config holds Qdrant connection configuration.
type Config struct {
	// URL is the Qdrant server address (e.g. "https://example.qdrant.io:6334").
	URL string

	// CollectionName is the collection to search.
	CollectionName string

	// APIKey is an optional API key for authentication.
	APIKey string
}

// Store implements exemplar.VectorStore for Qdrant.
type Store struct {
	client         *qdrant.Client
	collectionName string
}

// New creates a new Qdrant-backed exemplar store.
func New(cfg Config) (*Store, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("qdrant url is required")
	}
	if cfg.CollectionName == "" {
		return nil, fmt.Errorf("qdrant collection name is required")
	}

	parsed := cfg.URL
	if !strings.HasPrefix(parsed, "http://") && !strings.HasPrefix(parsed, "https://") {
		parsed = "https://" + parsed
	}
	u, err := url.Parse(parsed)
	if err != nil {
		return nil, fmt.Errorf("parse qdrant url: %w", err)
	}

	host := u.Hostname()
	port := 6334
	if u.Port() != "" {
		p, err := strconv.Atoi(u.Port())
		if err != nil {
			return nil, fmt.Errorf("invalid qdrant port: %w", err)
		}
		port = p
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   host,
		Port:   port,
		APIKey: cfg.APIKey,
		UseTLS: u.Scheme == "https",
	})
	if err != nil {
		return nil, fmt.Errorf("create qdrant client: %w", err)
	}

	return &Store{client: client, collectionName: cfg.CollectionName}, nil
}

// Search implements exemplar.VectorStore.
func (s *Store) Search(ctx context.Context, vector []float32, tags []string, limit int) ([]exemplar.Scored, error) {
	limitUint64 := uint64(limit)
	points, err := s.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: s.collectionName,
		Query:          qdrant.NewQuery(vector...),
		Limit:          &limitUint64,
		Filter:         tagFilter(tags),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("qdrant query failed: %w", err)
	}

	results := make([]exemplar.Scored, 0, len(points))
	for _, point := range points {
		ex := domain.Exemplar{}

		if point.Id != nil {
			if uuid := point.Id.GetUuid(); uuid != "" {
				ex.ID = uuid
			} else {
				ex.ID = fmt.Sprintf("%d", point.Id.GetNum())
			}
		}

		for k, v := range point.Payload {
			switch k {
			case "text":
				ex.Text = v.GetStringValue()
			case "tags":
				if list := v.GetListValue(); list != nil {
					for _, item := range list.Values {
						if tag := item.GetStringValue(); tag != "" {
							ex.Tags = append(ex.Tags, tag)
						}
					}
				}
			}
		}

		results = append(results, exemplar.Scored{Exemplar: ex, Score: point.Score})
	}

	return results, nil
}

// Close implements exemplar.VectorStore.
func (s *Store) Close() error {
	return s.client.Close()
}

// tagFilter builds an any-of keyword match on the "tags" payload key.
func tagFilter(tags []string) *qdrant.Filter {
	if len(tags) == 0 {
		return nil
	}

	var match *qdrant.Match
	if len(tags) == 1 {
		match = &qdrant.Match{MatchValue: &qdrant.Match_Keyword{Keyword: tags[0]}}
	} else {
		keywords := make([]string, len(tags))
		copy(keywords, tags)
		match = &qdrant.Match{
			MatchValue: &qdrant.Match_Keywords{
				Keywords: &qdrant.RepeatedStrings{Strings: keywords},
			},
		}
	}

	return &qdrant.Filter{
		Must: []*qdrant.Condition{
			{
				ConditionOneOf: &qdrant.Condition_Field{
					Field: &qdrant.FieldCondition{
						Key:   "tags",
						Match: match,
					},
				},
			},
		},
	}
}

// Compile-time check that Store implements VectorStore.
var _ exemplar.VectorStore = (*Store)(nil)
