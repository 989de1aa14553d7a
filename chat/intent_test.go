package chat

import (
	"context"
	"errors"
	"testing"

	"github.com/IliasHad/edit-mind-sub003/ai"
	"github.com/IliasHad/edit-mind-sub003/ai/mock"
	"github.com/IliasHad/edit-mind-sub003/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func classifierReturning(text string) *mock.Generator {
	return &mock.Generator{
		ClassifyFunc: func(ctx context.Context, system, prompt string) (*ai.Generation, error) {
			return &ai.Generation{Text: text, TokensUsed: 5}, nil
		},
	}
}

func TestResolveIntent(t *testing.T) {
	tests := []struct {
		name     string
		response string
		expected core.Intent
	}{
		{
			name:     "clean similarity",
			response: `{"type":"similarity","needsVideoData":true,"keepPrevious":false}`,
			expected: core.Intent{Type: core.IntentSimilarity, NeedsVideoData: true},
		},
		{
			name:     "search label maps to similarity",
			response: `{"type":"search","needsVideoData":true,"keepPrevious":false}`,
			expected: core.Intent{Type: core.IntentSimilarity, NeedsVideoData: true},
		},
		{
			name:     "fenced response",
			response: "```json\n{\"type\":\"analytics\",\"needsVideoData\":true,\"keepPrevious\":false}\n```",
			expected: core.Intent{Type: core.IntentAnalytics, NeedsVideoData: true},
		},
		{
			name:     "missing key quote gets repaired",
			response: `{type":"compilation","needsVideoData":true,"keepPrevious":true}`,
			expected: core.Intent{Type: core.IntentCompilation, NeedsVideoData: true, KeepPrevious: true},
		},
		{
			name:     "unknown label falls back to general",
			response: `{"type":"banter","needsVideoData":false,"keepPrevious":false}`,
			expected: core.Intent{Type: core.IntentGeneral},
		},
		{
			name:     "unparseable response falls back to general",
			response: "I think this is a search request",
			expected: core.Intent{Type: core.IntentGeneral},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver, err := NewResolver(classifierReturning(tt.response))
			require.NoError(t, err)

			intent, err := resolver.ResolveIntent(context.Background(), "prompt", nil)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, intent)
		})
	}
}

func TestResolveIntent_BackendFailureFallsBack(t *testing.T) {
	generator := &mock.Generator{
		ClassifyFunc: func(ctx context.Context, system, prompt string) (*ai.Generation, error) {
			return nil, errors.New("model offline")
		},
	}
	resolver, err := NewResolver(generator)
	require.NoError(t, err)

	intent, err := resolver.ResolveIntent(context.Background(), "prompt", nil)
	require.NoError(t, err, "classification failure is never an error")
	assert.Equal(t, core.IntentGeneral, intent.Type)
}

func TestResolveIntent_IncludesHistory(t *testing.T) {
	var seenPrompt string
	generator := &mock.Generator{
		ClassifyFunc: func(ctx context.Context, system, prompt string) (*ai.Generation, error) {
			seenPrompt = prompt
			return &ai.Generation{Text: `{"type":"general"}`}, nil
		},
	}
	resolver, err := NewResolver(generator)
	require.NoError(t, err)

	recent := []*core.ChatMessage{{Sender: core.SenderUser, Text: "earlier question"}}
	_, err = resolver.ResolveIntent(context.Background(), "follow-up", recent)
	require.NoError(t, err)
	assert.Contains(t, seenPrompt, "user: earlier question")
	assert.Contains(t, seenPrompt, "follow-up")
}

func TestNewResolver_Validation(t *testing.T) {
	_, err := NewResolver(nil)
	assert.ErrorIs(t, err, ErrGeneratorRequired)
}
