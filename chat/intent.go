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


package chat

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/IliasHad/edit-mind-sub003/ai"
	"github.com/IliasHad/edit-mind-sub003/core"
)

// Resolver classifies prompts into intents.
type Resolver struct {
	generator ai.Generator
	logger    *slog.Logger
}

// NewResolver creates an intent resolver.
func NewResolver(generator ai.Generator) (*Resolver, error) {
	if generator == nil {
		return nil, ErrGeneratorRequired
	}
	return &Resolver{
		generator: generator,
		logger:    slog.Default().With("component", "intent_resolver"),
	}, nil
}

// classification mirrors the JSON document the classifier is instructed
// to produce.
type classification struct {
	Type           string `json:"type"`
	NeedsVideoData bool   `json:"needsVideoData"`
	KeepPrevious   bool   `json:"keepPrevious"`
}

// ResolveIntent classifies a prompt given the recent conversation.
// Classification is best-effort: a backend failure or a response that
// cannot be parsed even after repair resolves to the general intent.
// The error return is reserved for a dead context.
func (r *Resolver) ResolveIntent(ctx context.Context, prompt string, recent []*core.ChatMessage) (core.Intent, error) {
	if err := ctx.Err(); err != nil {
		return core.Intent{}, err
	}

	input := prompt
	if history := FormatHistory(recent, HistoryWindow); history != "" {
		input = "Conversation so far:\n" + history + "\n\nMessage to classify: " + prompt
	}

	generation, err := r.generator.Classify(ctx, classifierSystemPrompt, input)
	if err != nil {
		r.logger.Warn("intent classification failed, defaulting to general", "err", err)
		return core.Intent{Type: core.IntentGeneral}, nil
	}

	text := repairJSON(stripFences(generation.Text))

	var parsed classification
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		r.logger.Warn("error parsing classifier response, defaulting to general",
			"response", text, "err", err)
		return core.Intent{Type: core.IntentGeneral}, nil
	}

	intent := core.Intent{
		Type:           core.IntentTypeFromString(parsed.Type),
		NeedsVideoData: parsed.NeedsVideoData,
		KeepPrevious:   parsed.KeepPrevious,
	}
	r.logger.Debug("intent resolved", "type", intent.Type.String(),
		"needsVideoData", intent.NeedsVideoData, "keepPrevious", intent.KeepPrevious)
	return intent, nil
}
