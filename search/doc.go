// Package search finds scenes by meaning.
//
// The Searcher decomposes a multi-field query into per-field vector
// lookups against the modality collections, then merges the ranked
// result sets into one deduplicated scene list. Merge order is the
// caller's field priority: earlier fields win duplicate scenes
// regardless of score.
package search
