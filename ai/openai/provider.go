// Copyright 2025 Ilias Haddad
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package openai

import (
	"context"
	"log/slog"
	"time"

	"github.com/IliasHad/edit-mind-sub003/ai"
	"github.com/IliasHad/edit-mind-sub003/core"
)

// Provider implements ai.Provider using OpenAI-compatible services.
// It manages one embedder per modality and a shared generator.
type Provider struct {
	config    *ai.Config
	embedders map[core.Modality]*Embedder
	generator *Generator
	logger    *slog.Logger
}

// NewProvider creates a new model-backend provider.
// The config is validated and normalized before use.
//
// Returns ai.Provider interface (not *Provider) to enforce abstraction
// and prevent coupling to OpenAI-specific implementation details.
func NewProvider(config *ai.Config) (ai.Provider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	embedders := make(map[core.Modality]*Embedder, len(core.Modalities))
	for _, m := range core.Modalities {
		embedder, err := newEmbedder(config.EmbeddingHost, config.EmbeddingModels[m], m.Dim())
		if err != nil {
			return nil, err
		}
		embedders[m] = embedder
	}

	generator, err := newGenerator(config.ChatHost, config.ChatModel)
	if err != nil {
		return nil, err
	}

	return &Provider{
		config:    config,
		embedders: embedders,
		generator: generator,
		logger:    slog.Default().With("component", "openai-provider"),
	}, nil
}

// Embedder returns the embedding service for the modality.
func (p *Provider) Embedder(m core.Modality) ai.Embedder {
	return p.embedders[m]
}

// Generator returns the chat generation service.
func (p *Provider) Generator() ai.Generator {
	return p.generator
}

// Healthy probes the embedding backend with a short request.
func (p *Provider) Healthy(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := p.embedders[core.ModalityText].EmbedTexts(ctx, []string{"ping"})
	if err != nil {
		p.logger.Debug("embedding backend unreachable", "err", err)
		return false
	}
	return true
}

// Close releases resources held by the provider.
// Currently a no-op as the underlying clients don't require explicit cleanup.
func (p *Provider) Close() error {
	p.logger.Debug("closing OpenAI provider")
	return nil
}
