package mock

import (
	"context"

	"github.com/IliasHad/edit-mind-sub003/ai"
	"github.com/IliasHad/edit-mind-sub003/core"
)

// Provider is a test double for ai.Provider, wiring a deterministic
// embedder per modality and a scripted generator.
type Provider struct {
	Embedders  map[core.Modality]*Embedder
	Gen        *Generator
	Reachable  bool
	closeCount int
}

var _ ai.Provider = (*Provider)(nil)

// NewProvider creates a mock provider with per-modality embedders honoring
// the fixed modality dimensions.
func NewProvider() *Provider {
	embedders := make(map[core.Modality]*Embedder, len(core.Modalities))
	for _, m := range core.Modalities {
		embedders[m] = NewEmbedder(m.Dim())
	}
	return &Provider{
		Embedders: embedders,
		Gen:       NewGenerator(),
		Reachable: true,
	}
}

// Embedder returns the mock embedder for the modality.
func (p *Provider) Embedder(m core.Modality) ai.Embedder {
	return p.Embedders[m]
}

// Generator returns the mock generator.
func (p *Provider) Generator() ai.Generator {
	return p.Gen
}

// Healthy reports the scripted reachability flag.
func (p *Provider) Healthy(ctx context.Context) bool {
	return p.Reachable
}

// Close records the call and returns nil.
func (p *Provider) Close() error {
	p.closeCount++
	return nil
}

// CloseCount returns how many times Close was called.
func (p *Provider) CloseCount() int {
	return p.closeCount
}
