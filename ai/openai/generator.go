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
	"errors"
	"log/slog"

	"github.com/IliasHad/edit-mind-sub003/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Generator implements ai.Generator using OpenAI-compatible chat APIs.
type Generator struct {
	client llms.Model
	logger *slog.Logger
}

// newGenerator is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newGenerator(host, model string) (*Generator, error) {
	client, err := openai.New(
		openai.WithBaseURL(host),
		openai.WithToken("none"),
		openai.WithModel(model),
	)
	if err != nil {
		return nil, err
	}

	return &Generator{
		client: client,
		logger: slog.Default().With("component", "openai-generator", "model", model),
	}, nil
}

// Generate produces a free-form response to the prompt.
func (g *Generator) Generate(ctx context.Context, system, prompt string) (*ai.Generation, error) {
	return g.generate(ctx, system, prompt, llms.WithTemperature(0.2))
}

// Classify produces a structured JSON response at zero temperature.
func (g *Generator) Classify(ctx context.Context, system, prompt string) (*ai.Generation, error) {
	return g.generate(ctx, system, prompt, llms.WithTemperature(0.0), llms.WithJSONMode())
}

func (g *Generator) generate(ctx context.Context, system, prompt string, opts ...llms.CallOption) (*ai.Generation, error) {
	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(system),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(prompt),
			},
		},
	}

	response, err := g.client.GenerateContent(ctx, content, opts...)
	if err != nil {
		g.logger.Error("failed to generate content", "err", err)
		return nil, err
	}

	if len(response.Choices) < 1 {
		return nil, errors.New("no choices returned from model")
	}

	choice := response.Choices[0]
	return &ai.Generation{
		Text:       choice.Content,
		TokensUsed: totalTokens(choice.GenerationInfo),
	}, nil
}

// totalTokens extracts the backend-reported token usage, 0 when absent.
func totalTokens(info map[string]any) int {
	if info == nil {
		return 0
	}
	if v, ok := info["TotalTokens"]; ok {
		if tokens, ok := v.(int); ok {
			return tokens
		}
	}
	return 0
}
