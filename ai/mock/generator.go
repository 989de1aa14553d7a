package mock

import (
	"context"

	"github.com/IliasHad/edit-mind-sub003/ai"
)

// Generator is a test double for ai.Generator.
// It allows custom behavior injection via function fields.
type Generator struct {
	// GenerateFunc is called by Generate if set.
	GenerateFunc func(ctx context.Context, system, prompt string) (*ai.Generation, error)

	// ClassifyFunc is called by Classify if set.
	ClassifyFunc func(ctx context.Context, system, prompt string) (*ai.Generation, error)

	callCount int
}

// NewGenerator creates a mock generator with canned default responses.
func NewGenerator() *Generator {
	return &Generator{}
}

// Generate returns the injected response, or a canned echo of the prompt.
func (m *Generator) Generate(ctx context.Context, system, prompt string) (*ai.Generation, error) {
	m.callCount++
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, system, prompt)
	}
	return &ai.Generation{Text: "mock response to: " + prompt, TokensUsed: 10}, nil
}

// Classify returns the injected response, or a general-intent JSON document.
func (m *Generator) Classify(ctx context.Context, system, prompt string) (*ai.Generation, error) {
	m.callCount++
	if m.ClassifyFunc != nil {
		return m.ClassifyFunc(ctx, system, prompt)
	}
	return &ai.Generation{Text: `{"type":"general","needsVideoData":false,"keepPrevious":false}`, TokensUsed: 5}, nil
}

// CallCount returns the number of calls to either method.
func (m *Generator) CallCount() int {
	return m.callCount
}
