package chat

import (
	"fmt"
	"strings"

	"github.com/IliasHad/edit-mind-sub003/ai"
)

// System prompts for the intent classifier and the per-intent handlers.
// The classifier must answer with a single JSON object; everything else
// speaks prose.
const (
	classifierSystemPrompt = `You classify a video editor's chat message into an intent.
Answer with exactly one JSON object and nothing else:
{"type": "<general|similarity|analytics|refinement|compilation>", "needsVideoData": <bool>, "keepPrevious": <bool>}

Intent meanings:
- similarity: the user wants to find scenes matching a description
- analytics: the user asks for statistics about their footage
- refinement: the user corrects labels, e.g. renaming a recognized face
- compilation: the user wants an ordered cut list of scenes
- general: anything else

Set needsVideoData when answering requires scene content.
Set keepPrevious when the message refers to the previously selected scenes.`

	generalSystemPrompt = `You are an assistant inside a video editing tool.
Answer the user's message conversationally. Use the conversation history
for context. Keep answers short.`

	similaritySystemPrompt = `You are an assistant inside a video editing tool.
The user searched their footage and the matching scenes are listed below.
Summarize what was found in one or two sentences.`

	analyticsPromptTemplate = `You are an assistant inside a video editing tool.
Below are aggregate statistics about the user's footage. Answer the user's
question using only these numbers. Do not invent data.
Shot type labels come from this vocabulary: %s.`

	compilationSystemPrompt = `You are an assistant inside a video editing tool.
The user asked for a compilation and the selected scenes are listed below
in cut order. Describe the resulting sequence briefly.`
)

// buildAnalyticsSystemPrompt creates the analytics prompt with the shot-type
// vocabulary embedded.
func buildAnalyticsSystemPrompt() string {
	return fmt.Sprintf(analyticsPromptTemplate, strings.Join(ai.ShotTypes, ", "))
}

// Fixed degraded responses. Handlers fall back to these instead of
// returning errors, so a chat turn always produces an answer.
const (
	analyticsFallbackMessage  = "Sorry, I could not generate an analytics response."
	similarityFallbackMessage = "Sorry, I could not search your scenes."
	refinementFallbackMessage = "Sorry, I could not update your scenes."
)
