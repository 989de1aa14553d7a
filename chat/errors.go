package chat

import "errors"

var (
	// ErrChatRepositoryRequired is returned when a chat repository is not provided.
	ErrChatRepositoryRequired = errors.New("chat repository required")

	// ErrSceneRepositoryRequired is returned when a scene repository is not provided.
	ErrSceneRepositoryRequired = errors.New("scene repository required")

	// ErrSearcherRequired is returned when a searcher is not provided.
	ErrSearcherRequired = errors.New("searcher required")

	// ErrGeneratorRequired is returned when a generator is not provided.
	ErrGeneratorRequired = errors.New("generator required")

	// ErrEmptyPrompt is returned when a chat turn has no text.
	ErrEmptyPrompt = errors.New("prompt must not be empty")
)
