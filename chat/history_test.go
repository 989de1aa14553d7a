package chat

import (
	"fmt"
	"strings"
	"testing"

	"github.com/IliasHad/edit-mind-sub003/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func messageFixture(n int) []*core.ChatMessage {
	messages := make([]*core.ChatMessage, n)
	for i := range messages {
		sender := core.SenderUser
		if i%2 == 1 {
			sender = core.SenderAssistant
		}
		messages[i] = &core.ChatMessage{Sender: sender, Text: fmt.Sprintf("message %d", i)}
	}
	return messages
}

func TestFormatHistory_WindowKeepsLastN(t *testing.T) {
	formatted := FormatHistory(messageFixture(15), 10)
	lines := strings.Split(formatted, "\n")
	require.Len(t, lines, 10)

	// The 5 oldest messages fall out of the window; order stays oldest-first.
	assert.Equal(t, "assistant: message 5", lines[0])
	assert.Equal(t, "user: message 6", lines[1])
	assert.Equal(t, "user: message 14", lines[9])
}

func TestFormatHistory_FewerThanWindow(t *testing.T) {
	formatted := FormatHistory(messageFixture(3), 10)
	lines := strings.Split(formatted, "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "user: message 0", lines[0])
	assert.Equal(t, "user: message 2", lines[2])
}

func TestFormatHistory_Empty(t *testing.T) {
	assert.Empty(t, FormatHistory(nil, 10))
}

func TestFormatHistory_SenderLabels(t *testing.T) {
	formatted := FormatHistory([]*core.ChatMessage{
		{Sender: core.SenderUser, Text: "hello"},
		{Sender: core.SenderAssistant, Text: "hi there"},
	}, 10)
	assert.Equal(t, "user: hello\nassistant: hi there", formatted)
}
