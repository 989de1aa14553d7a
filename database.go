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


package editmind

import (
	"log/slog"

	"github.com/IliasHad/edit-mind-sub003/ai"
	"github.com/IliasHad/edit-mind-sub003/ai/openai"
	"github.com/IliasHad/edit-mind-sub003/chat"
	"github.com/IliasHad/edit-mind-sub003/indexing"
	"github.com/IliasHad/edit-mind-sub003/jobs"
	"github.com/IliasHad/edit-mind-sub003/search"
	"github.com/IliasHad/edit-mind-sub003/status"
	"github.com/IliasHad/edit-mind-sub003/storage"
	"github.com/IliasHad/edit-mind-sub003/storage/badger"
)

// System wires the storage backend, repositories, and AI provider behind
// one handle. The component constructors hang off it so callers assemble
// only what they use.
type System struct {
	backend   *badger.Backend
	sceneRepo storage.SceneRepository
	jobRepo   storage.JobRepository
	chatRepo  storage.ChatRepository
	vectors   storage.VectorStore
	provider  ai.Provider
	logger    *slog.Logger
}

// SystemOption configures a System.
type SystemOption func(*systemOptions)

type systemOptions struct {
	aiConfig *ai.Config
	provider ai.Provider
}

// WithAIConfig sets the AI backend configuration.
// Default is ai.DefaultConfig().
func WithAIConfig(config *ai.Config) SystemOption {
	return func(o *systemOptions) {
		o.aiConfig = config
	}
}

// WithProvider injects a prebuilt AI provider instead of constructing one
// from config. The system takes ownership and closes it.
func WithProvider(provider ai.Provider) SystemOption {
	return func(o *systemOptions) {
		o.provider = provider
	}
}

// NewSystem opens the storage backend at filePath and constructs every
// repository. An empty filePath opens an in-memory backend.
func NewSystem(filePath string, opts ...SystemOption) (*System, error) {
	options := &systemOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, filePath == "")
	if err != nil {
		return nil, err
	}

	sceneRepo, err := badger.NewSceneRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	jobRepo, err := badger.NewJobRepository(backend)
	if err != nil {
		sceneRepo.Close()
		backend.Close()
		return nil, err
	}

	chatRepo, err := badger.NewChatRepository(backend)
	if err != nil {
		jobRepo.Close()
		sceneRepo.Close()
		backend.Close()
		return nil, err
	}

	vectors, err := badger.NewVectorStore(backend)
	if err != nil {
		chatRepo.Close()
		jobRepo.Close()
		sceneRepo.Close()
		backend.Close()
		return nil, err
	}

	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			vectors.Close()
			chatRepo.Close()
			jobRepo.Close()
			sceneRepo.Close()
			backend.Close()
			return nil, err
		}
	}

	return &System{
		backend:   backend,
		sceneRepo: sceneRepo,
		jobRepo:   jobRepo,
		chatRepo:  chatRepo,
		vectors:   vectors,
		provider:  provider,
		logger:    slog.Default(),
	}, nil
}

// Close tears the system down in reverse construction order.
func (s *System) Close() error {
	if err := s.provider.Close(); err != nil {
		s.logger.Error("error closing AI provider", "err", err)
	}

	if err := s.vectors.Close(); err != nil {
		s.logger.Error("error closing vector store", "err", err)
		return err
	}
	if err := s.chatRepo.Close(); err != nil {
		s.logger.Error("error closing chat repository", "err", err)
		return err
	}
	if err := s.jobRepo.Close(); err != nil {
		s.logger.Error("error closing job repository", "err", err)
		return err
	}
	if err := s.sceneRepo.Close(); err != nil {
		s.logger.Error("error closing scene repository", "err", err)
		return err
	}

	if err := s.backend.Close(); err != nil {
		s.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (s *System) SceneRepository() storage.SceneRepository {
	return s.sceneRepo
}

func (s *System) JobRepository() storage.JobRepository {
	return s.jobRepo
}

func (s *System) ChatRepository() storage.ChatRepository {
	return s.chatRepo
}

func (s *System) VectorStore() storage.VectorStore {
	return s.vectors
}

func (s *System) NewIndexingPipeline(opts ...indexing.Option) (*indexing.Pipeline, error) {
	return indexing.NewPipeline(s.sceneRepo, s.jobRepo, s.vectors, s.provider, opts...)
}

func (s *System) NewJobTracker() (*jobs.Tracker, error) {
	return jobs.NewTracker(s.jobRepo)
}

func (s *System) NewSearcher(opts ...search.Option) (*search.Searcher, error) {
	return search.NewSearcher(s.vectors, s.provider, opts...)
}

func (s *System) NewChatRouter() (*chat.Router, error) {
	searcher, err := s.NewSearcher()
	if err != nil {
		return nil, err
	}
	return chat.NewRouter(s.chatRepo, s.sceneRepo, searcher, s.provider.Generator())
}

func (s *System) NewStatusBroadcaster(opts ...status.Option) (*status.Broadcaster, error) {
	return status.NewBroadcaster(s.jobRepo, s.provider, opts...)
}
