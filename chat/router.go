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
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/IliasHad/edit-mind-sub003/ai"
	"github.com/IliasHad/edit-mind-sub003/core"
	"github.com/IliasHad/edit-mind-sub003/search"
	"github.com/IliasHad/edit-mind-sub003/storage"
)

// Response is the outcome of one routed chat turn.
type Response struct {
	AssistantText string
	SceneIDs      []string
	TokensUsed    int
}

// Router dispatches classified prompts to intent handlers and keeps the
// conversation history.
type Router struct {
	chatRepository  storage.ChatRepository
	sceneRepository storage.SceneRepository
	searcher        *search.Searcher
	generator       ai.Generator
	resolver        *Resolver
	logger          *slog.Logger

	mu           sync.Mutex
	lastSceneIDs []string
}

// NewRouter creates a chat router.
func NewRouter(
	chatRepository storage.ChatRepository,
	sceneRepository storage.SceneRepository,
	searcher *search.Searcher,
	generator ai.Generator,
) (*Router, error) {
	if chatRepository == nil {
		return nil, ErrChatRepositoryRequired
	}
	if sceneRepository == nil {
		return nil, ErrSceneRepositoryRequired
	}
	if searcher == nil {
		return nil, ErrSearcherRequired
	}
	if generator == nil {
		return nil, ErrGeneratorRequired
	}

	resolver, err := NewResolver(generator)
	if err != nil {
		return nil, err
	}

	return &Router{
		chatRepository:  chatRepository,
		sceneRepository: sceneRepository,
		searcher:        searcher,
		generator:       generator,
		resolver:        resolver,
		logger:          slog.Default().With("component", "chat_router"),
	}, nil
}

// Chat runs one full turn: classify the prompt against the recent
// history, dispatch it, and persist both the prompt and the answer.
func (r *Router) Chat(ctx context.Context, prompt string, videoIDs []string) (*Response, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, ErrEmptyPrompt
	}

	recent, err := r.chatRepository.RecentMessages(ctx, HistoryWindow)
	if err != nil {
		return nil, err
	}

	intent, err := r.resolver.ResolveIntent(ctx, prompt, recent)
	if err != nil {
		return nil, err
	}

	response, err := r.Dispatch(ctx, intent, prompt, recent, videoIDs)
	if err != nil {
		return nil, err
	}

	// Message keys order by microsecond timestamp; stagger the pair so the
	// reply always sorts after the prompt.
	now := time.Now().UTC()
	_, err = r.chatRepository.AddMessages(ctx,
		&core.ChatMessage{Sender: core.SenderUser, Text: prompt, CreatedAt: now},
		&core.ChatMessage{Sender: core.SenderAssistant, Text: response.AssistantText, CreatedAt: now.Add(time.Microsecond)},
	)
	if err != nil {
		return nil, err
	}
	return response, nil
}

// Dispatch routes a classified prompt to its intent handler. The intent
// set is closed; an unknown value is handled as general chat, matching
// the classifier's own fallback.
func (r *Router) Dispatch(ctx context.Context, intent core.Intent, prompt string, recent []*core.ChatMessage, videoIDs []string) (*Response, error) {
	switch intent.Type {
	case core.IntentSimilarity:
		return r.handleSimilarity(ctx, intent, prompt, videoIDs), nil
	case core.IntentAnalytics:
		return r.handleAnalytics(ctx, prompt, videoIDs), nil
	case core.IntentRefinement:
		return r.handleRefinement(ctx, prompt, videoIDs), nil
	case core.IntentCompilation:
		return r.handleSimilarity(ctx, intent, prompt, videoIDs), nil
	default:
		return r.handleGeneral(ctx, prompt, recent), nil
	}
}

// handleGeneral answers over the history window, nothing more.
func (r *Router) handleGeneral(ctx context.Context, prompt string, recent []*core.ChatMessage) *Response {
	input := prompt
	if history := FormatHistory(recent, HistoryWindow); history != "" {
		input = "Conversation so far:\n" + history + "\n\nUser message: " + prompt
	}

	generation, err := r.generator.Generate(ctx, generalSystemPrompt, input)
	if err != nil {
		r.logger.Warn("general chat generation failed", "err", err)
		return &Response{AssistantText: "Sorry, I could not answer that right now."}
	}
	return &Response{AssistantText: generation.Text, TokensUsed: generation.TokensUsed}
}

// handleSimilarity serves both the similarity and compilation intents:
// the only difference is the narration register.
func (r *Router) handleSimilarity(ctx context.Context, intent core.Intent, prompt string, videoIDs []string) *Response {
	scenes, err := r.selectScenes(ctx, intent, prompt, videoIDs)
	if err != nil {
		r.logger.Warn("scene search failed", "err", err)
		return &Response{AssistantText: similarityFallbackMessage}
	}
	if len(scenes) == 0 {
		return &Response{AssistantText: "I could not find any scenes matching that."}
	}

	ids := make([]string, len(scenes))
	for i, scene := range scenes {
		ids[i] = scene.ID
	}
	r.setLastSceneIDs(ids)

	systemPrompt := similaritySystemPrompt
	if intent.Type == core.IntentCompilation {
		systemPrompt = compilationSystemPrompt
	}

	tokens := 0
	text := fmt.Sprintf("Found %d matching scenes.", len(scenes))
	generation, err := r.generator.Generate(ctx, systemPrompt,
		"Request: "+prompt+"\n\nScenes:\n"+formatScenes(scenes))
	if err != nil {
		// Keep the scene list; only the narration degrades.
		r.logger.Warn("scene narration failed", "err", err)
	} else {
		text = generation.Text
		tokens = generation.TokensUsed
	}

	return &Response{AssistantText: text, SceneIDs: ids, TokensUsed: tokens}
}

// handleAnalytics narrates aggregate statistics. Any failure along the
// way collapses into the fixed fallback message.
func (r *Router) handleAnalytics(ctx context.Context, prompt string, videoIDs []string) *Response {
	analytics, err := Analytics(ctx, r.sceneRepository, videoIDs)
	if err != nil {
		r.logger.Warn("analytics computation failed", "err", err)
		return &Response{AssistantText: analyticsFallbackMessage}
	}

	generation, err := r.generator.Generate(ctx, buildAnalyticsSystemPrompt(),
		"Question: "+prompt+"\n\nStatistics:\n"+formatAnalytics(analytics))
	if err != nil {
		r.logger.Warn("analytics narration failed", "err", err)
		return &Response{AssistantText: analyticsFallbackMessage}
	}
	return &Response{AssistantText: generation.Text, TokensUsed: generation.TokensUsed}
}

// renamePattern matches instructions like `rename Alice to Bob`.
var renamePattern = regexp.MustCompile(`(?i)\brename\s+(.+?)\s+to\s+(.+?)\s*$`)

// handleRefinement applies a face rename to the previously selected
// scenes, or to every scene of the given videos when nothing is selected.
// Store failures degrade to the fixed fallback message.
func (r *Router) handleRefinement(ctx context.Context, prompt string, videoIDs []string) *Response {
	match := renamePattern.FindStringSubmatch(strings.TrimSpace(prompt))
	if match == nil {
		return &Response{
			AssistantText: `Tell me what to change, for example "rename Alice to Bob".`,
		}
	}
	from, to := strings.TrimSpace(match[1]), strings.TrimSpace(match[2])

	scenes, err := r.refinementTargets(ctx, videoIDs)
	if err != nil {
		r.logger.Warn("refinement target lookup failed", "err", err)
		return &Response{AssistantText: refinementFallbackMessage}
	}

	changed := make([]*core.Scene, 0, len(scenes))
	for _, scene := range scenes {
		if scene.RenameFace(from, to) {
			changed = append(changed, scene)
		}
	}
	if len(changed) == 0 {
		return &Response{
			AssistantText: fmt.Sprintf("I could not find %q in the selected scenes.", from),
		}
	}

	if _, err := r.sceneRepository.UpdateScenes(ctx, changed...); err != nil {
		r.logger.Warn("refinement update failed", "err", err)
		return &Response{AssistantText: refinementFallbackMessage}
	}

	ids := make([]string, len(changed))
	for i, scene := range changed {
		ids[i] = scene.ID
	}
	return &Response{
		AssistantText: fmt.Sprintf("Renamed %q to %q in %d scenes.", from, to, len(changed)),
		SceneIDs:      ids,
	}
}

// selectScenes reuses the previous selection when the intent asks for it,
// otherwise runs a fresh search.
func (r *Router) selectScenes(ctx context.Context, intent core.Intent, prompt string, videoIDs []string) ([]*core.Scene, error) {
	if intent.KeepPrevious {
		if previous := r.getLastSceneIDs(); len(previous) > 0 {
			return r.sceneRepository.GetScenes(ctx, previous...)
		}
	}

	query := search.SceneQuery{Text: prompt}
	if len(videoIDs) == 1 {
		query.VideoID = videoIDs[0]
	}
	return r.searcher.FindScenes(ctx, query, HistoryWindow)
}

// refinementTargets picks the scenes a rename applies to.
func (r *Router) refinementTargets(ctx context.Context, videoIDs []string) ([]*core.Scene, error) {
	if previous := r.getLastSceneIDs(); len(previous) > 0 {
		return r.sceneRepository.GetScenes(ctx, previous...)
	}

	var scenes []*core.Scene
	for _, videoID := range videoIDs {
		videoScenes, err := r.sceneRepository.GetScenesByVideo(ctx, videoID)
		if err != nil {
			return nil, err
		}
		scenes = append(scenes, videoScenes...)
	}
	return scenes, nil
}

func (r *Router) setLastSceneIDs(ids []string) {
	r.mu.Lock()
	r.lastSceneIDs = ids
	r.mu.Unlock()
}

func (r *Router) getLastSceneIDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastSceneIDs
}

func formatScenes(scenes []*core.Scene) string {
	lines := make([]string, len(scenes))
	for i, scene := range scenes {
		lines[i] = fmt.Sprintf("%d. [%s %.1fs-%.1fs] %s",
			i+1, scene.VideoID, scene.StartTime, scene.EndTime, scene.Document())
	}
	return strings.Join(lines, "\n")
}
