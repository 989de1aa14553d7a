package jobs

import "errors"

var (
	// ErrJobRepositoryRequired is returned when a job repository is not provided.
	ErrJobRepositoryRequired = errors.New("job repository required")

	// ErrEmptyIntegrationID is returned when a lookup is attempted without
	// an integration identifier.
	ErrEmptyIntegrationID = errors.New("integration ID required")

	// ErrAllStatesUnavailable is returned when every state bucket read
	// failed during a lookup. A partial read failure degrades to the
	// remaining buckets instead.
	ErrAllStatesUnavailable = errors.New("all job state reads failed")

	// ErrNoFailedJob is returned by Retry when the integration has no
	// failed job to retry.
	ErrNoFailedJob = errors.New("no failed job to retry")
)
