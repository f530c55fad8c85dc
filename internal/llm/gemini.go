package llm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/genai"
)

// GeminiConfig holds Gemini client settings.
type GeminiConfig struct {
	APIKey     string
	Model      string
	EmbedModel string
	Retry      *RetryPolicy
}

// GeminiClient implements Generator and Embedder over the Google GenAI API.
// Safe for concurrent use.
type GeminiClient struct {
	client     *genai.Client
	model      string
	embedModel string
	retry      *RetryPolicy
}

// NewGeminiClient creates a Gemini-backed generation and embedding client.
func NewGeminiClient(ctx context.Context, cfg GeminiConfig) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = "gemini-2.0-flash"
	}
	embedModel := strings.TrimSpace(cfg.EmbedModel)
	if embedModel == "" {
		embedModel = "gemini-embedding-001"
	}
	retry := cfg.Retry
	if retry == nil {
		retry = DefaultRetryPolicy()
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: cfg.APIKey})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &GeminiClient{
		client:     client,
		model:      model,
		embedModel: embedModel,
		retry:      retry,
	}, nil
}

// Generate sends a prompt and returns the model's text. Transient failures
// are retried with bounded backoff; the final error is one of
// ErrUnavailable or ErrEmpty (wrapped with detail) or a context error.
func (c *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	var text string
	err := c.retry.Execute(ctx, func() error {
		resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
		if err != nil {
			slog.Warn("gemini generate failed", "model", c.model, "error", err)
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		text = strings.TrimSpace(resp.Text())
		if text == "" {
			return ErrEmpty
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return text, nil
}

// Embed generates an embedding for a single text using the retrieval-query
// task type. Retrieval is a quality enhancement, not a hard dependency, so
// callers are expected to tolerate failure here.
func (c *GeminiClient) Embed(ctx context.Context, text string) ([]float32, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(text, genai.RoleUser),
	}

	result, err := c.client.Models.EmbedContent(ctx,
		c.embedModel,
		contents,
		&genai.EmbedContentConfig{
			TaskType: "RETRIEVAL_QUERY",
		},
	)
	if err != nil {
		return nil, fmt.Errorf("gemini embed failed: %w", err)
	}
	if len(result.Embeddings) == 0 {
		return nil, fmt.Errorf("gemini embed returned no embeddings")
	}
	return result.Embeddings[0].Values, nil
}

// Close satisfies callers that tear clients down symmetrically. The genai
// client holds no connection state of its own, so there is nothing to
// release.
func (c *GeminiClient) Close() error {
	return nil
}

var (
	_ Generator = (*GeminiClient)(nil)
	_ Embedder  = (*GeminiClient)(nil)
)
