// Package llm wraps the text-generation and embedding capabilities behind
// small interfaces so the engine can be tested without a live model.
package llm

import (
	"context"
	"errors"
)

// Generation failure modes. Both are retried internally by the client before
// being surfaced; callers treat them as retryable upstream failures.
var (
	// ErrUnavailable marks transport, auth or quota failures talking to the
	// generation backend.
	ErrUnavailable = errors.New("generation backend unavailable")

	// ErrEmpty marks a response that contained no usable text.
	ErrEmpty = errors.New("generation returned no usable content")
)

// Generator produces text from a prompt. Implementations must honor ctx
// cancellation and deadlines.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Embedder turns text into a vector for similarity search.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}
