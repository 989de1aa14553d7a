package storage

import (
	"context"

	"github.com/IliasHad/edit-mind-sub003/core"
)

// VectorStore upserts (id, vector, metadata) triples into per-modality
// collections and answers nearest-neighbor queries. Implementations must be
// thread-safe; upserts to the same (collection, id) key are last-write-wins.
type VectorStore interface {
	// Upsert stores points in the collection, replacing any existing point
	// with the same ID. Never duplicates.
	Upsert(ctx context.Context, collection string, points ...*core.VectorPoint) error

	// Query returns up to k candidates ordered by decreasing similarity to
	// the query vector. Ties are broken by insertion recency, most recent
	// first, for reproducibility. A non-nil filter restricts results to
	// points whose metadata contains every filter entry.
	Query(ctx context.Context, collection string, vector []float32, k int, filter map[string]string) ([]*core.Candidate, error)

	// Delete removes points by ID. Missing IDs are not an error.
	Delete(ctx context.Context, collection string, ids ...string) error

	// Close closes the store and releases resources.
	Close() error
}

// SceneRepository provides operations for managing scenes.
type SceneRepository interface {
	// AddScenes adds one or more scenes to storage.
	// Sets InsertedAt/UpdatedAt timestamps.
	AddScenes(ctx context.Context, scenes ...*core.Scene) ([]*core.Scene, error)

	// UpdateScenes updates existing scenes (label refinement only; scenes
	// are otherwise immutable once embedded).
	// Returns ErrNotFound if any scene doesn't exist.
	UpdateScenes(ctx context.Context, scenes ...*core.Scene) ([]*core.Scene, error)

	// GetScene retrieves a single scene by ID.
	// Returns ErrNotFound if the scene doesn't exist.
	GetScene(ctx context.Context, id string) (*core.Scene, error)

	// GetScenes retrieves multiple scenes by their IDs.
	// Returns only the scenes that exist (no error for missing scenes).
	GetScenes(ctx context.Context, ids ...string) ([]*core.Scene, error)

	// GetScenesByVideo retrieves all scenes for a video, ordered by start time.
	GetScenesByVideo(ctx context.Context, videoID string) ([]*core.Scene, error)

	// Close closes the repository.
	Close() error
}

// JobRepository is the job queue backend read/write contract.
type JobRepository interface {
	// Enqueue adds a job. A job with an empty ID gets a generated one;
	// CreatedAt is set if zero.
	Enqueue(ctx context.Context, job *core.Job) (*core.Job, error)

	// GetJobs returns jobs in the given states, most recently created
	// first, skipping offset and returning at most limit. When includeData
	// is false the Data map is omitted from the returned jobs.
	GetJobs(ctx context.Context, states []core.JobState, offset, limit int, includeData bool) ([]*core.Job, error)

	// UpdateState transitions a job to a new state.
	// Returns ErrNotFound if the job doesn't exist.
	UpdateState(ctx context.Context, id string, state core.JobState) (*core.Job, error)

	// UpdateData merges entries into a job's Data map.
	// Returns ErrNotFound if the job doesn't exist.
	UpdateData(ctx context.Context, id string, data map[string]string) (*core.Job, error)

	// Close closes the repository.
	Close() error
}

// ChatRepository provides operations for conversation history.
type ChatRepository interface {
	// AddMessages appends messages to the conversation.
	// Messages with an empty ID get a generated one; CreatedAt is set if zero.
	AddMessages(ctx context.Context, messages ...*core.ChatMessage) ([]*core.ChatMessage, error)

	// RecentMessages returns up to limit most recent messages,
	// ordered oldest-first.
	RecentMessages(ctx context.Context, limit int) ([]*core.ChatMessage, error)

	// Close closes the repository.
	Close() error
}
