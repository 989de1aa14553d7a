package chat

import (
	"strings"

	"github.com/IliasHad/edit-mind-sub003/core"
)

// HistoryWindow is how many trailing messages of the conversation a model
// call sees. Older messages are dropped, never summarized.
const HistoryWindow = 10

// FormatHistory renders the last n messages as "sender: text" lines,
// oldest first. The input is expected oldest-first, as RecentMessages
// returns it.
func FormatHistory(messages []*core.ChatMessage, n int) string {
	if n < len(messages) {
		messages = messages[len(messages)-n:]
	}

	lines := make([]string, 0, len(messages))
	for _, message := range messages {
		lines = append(lines, message.Sender.String()+": "+message.Text)
	}
	return strings.Join(lines, "\n")
}
