package ai

import (
	"context"

	"github.com/IliasHad/edit-mind-sub003/core"
)

// Embedder generates fixed-dimension vector embeddings from scene fragments.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedTexts generates vector embeddings for multiple fragments in a
	// batch. The returned slice contains embeddings in the same order as
	// the input texts. Returns an error if the batch fails as a whole;
	// a PermanentError marks input the backend can never embed.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)

	// Dim returns the dimensionality of vectors produced by this embedder.
	Dim() int
}

// Generation is the result of a single generation-backend call.
type Generation struct {
	// Text is the generated response body.
	Text string

	// TokensUsed is the total token count reported by the backend,
	// zero when the backend reports none.
	TokensUsed int
}

// Generator produces conversational text responses.
// Implementations must be thread-safe for concurrent use.
type Generator interface {
	// Generate produces a free-form response to the user prompt given a
	// system instruction. Never retried by callers; failures degrade to
	// fallback messages at the chat layer.
	Generate(ctx context.Context, system, prompt string) (*Generation, error)

	// Classify produces a structured (JSON) response at zero temperature,
	// used for intent classification.
	Classify(ctx context.Context, system, prompt string) (*Generation, error)
}

// Provider aggregates the model backends for convenient initialization and
// lifecycle management: one embedder per modality plus a shared generator.
type Provider interface {
	// Embedder returns the embedding service for the given modality.
	// The returned Embedder is safe for concurrent use.
	Embedder(m core.Modality) Embedder

	// Generator returns the chat generation service.
	Generator() Generator

	// Healthy reports whether the embedding backend process is currently
	// reachable. Used by the status broadcaster; a probe failure is a
	// degraded sample, never an error.
	Healthy(ctx context.Context) bool

	// Close releases resources held by the provider and its services.
	Close() error
}
