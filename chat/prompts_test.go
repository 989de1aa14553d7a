package chat

import (
	"testing"

	"github.com/IliasHad/edit-mind-sub003/ai"
	"github.com/stretchr/testify/assert"
)

func TestBuildAnalyticsSystemPrompt(t *testing.T) {
	prompt := buildAnalyticsSystemPrompt()

	for _, shotType := range ai.ShotTypes {
		assert.Contains(t, prompt, shotType)
	}
}
