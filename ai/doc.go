// Package ai defines the model backend abstractions: per-modality vector
// embedders and the chat generation backend. Backends are opaque; they take
// input fragments and return fixed-length vectors or generated text.
//
// The openai subpackage implements these interfaces against any
// OpenAI-compatible API. The mock subpackage provides deterministic test
// doubles.
package ai
