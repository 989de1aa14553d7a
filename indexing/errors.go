package indexing

import "errors"

var (
	// ErrSceneRepositoryRequired is returned when a scene repository is not provided.
	ErrSceneRepositoryRequired = errors.New("scene repository required")

	// ErrJobRepositoryRequired is returned when a job repository is not provided.
	ErrJobRepositoryRequired = errors.New("job repository required")

	// ErrVectorStoreRequired is returned when a vector store is not provided.
	ErrVectorStoreRequired = errors.New("vector store required")

	// ErrProviderRequired is returned when an AI provider is not provided.
	ErrProviderRequired = errors.New("AI provider required")

	// ErrInvalidMaxAttempts is returned when RetryWithBackoff is called with
	// a non-positive attempt count.
	ErrInvalidMaxAttempts = errors.New("max attempts must be greater than zero")

	// ErrDimensionMismatch is returned when vectors of differing lengths are
	// averaged, or when an embedding backend returns a vector whose length
	// does not match the modality's fixed dimension.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")

	// ErrEmbeddingCountMismatch is returned when an embedding backend returns
	// a different number of vectors than texts submitted.
	ErrEmbeddingCountMismatch = errors.New("embedding count mismatch")

	// ErrNoScenes is returned when Index is called with no scenes.
	ErrNoScenes = errors.New("no scenes to index")

	// ErrEmptyIntegrationID is returned when Index is called without an
	// integration identifier for the job record.
	ErrEmptyIntegrationID = errors.New("integration ID required")
)
