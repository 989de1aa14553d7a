package search

import "errors"

var (
	// ErrVectorStoreRequired is returned when a vector store is not provided.
	ErrVectorStoreRequired = errors.New("vector store required")

	// ErrProviderRequired is returned when an AI provider is not provided.
	ErrProviderRequired = errors.New("AI provider required")

	// ErrEmptyQuery is returned when a query has no searchable fields.
	ErrEmptyQuery = errors.New("query has no searchable fields")

	// ErrInvalidMaxHits is returned when maxHits is not positive.
	ErrInvalidMaxHits = errors.New("maxHits must be greater than zero")
)
