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


// Package storage provides the storage abstraction layer for the indexing
// pipeline.
//
// This package defines repository and vector-store interfaces that decouple
// storage implementation from business logic, allowing different backends
// (BadgerDB, in-memory, remote vector databases) to be used interchangeably.
//
// # Constructor Return Type Pattern
//
// This package follows a strict "return interface" pattern for all public
// constructors to enforce abstraction:
//
//	store, err := badger.NewVectorStore(backend)  // returns storage.VectorStore
//
// Internal package constructors may return concrete types since they're only
// used within the implementation package.
//
// # Interfaces
//
//   - VectorStore: per-modality collections of (id, vector, metadata) points
//   - SceneRepository: scene persistence, read-mostly after embedding
//   - JobRepository: the job queue backend read/write contract
//   - ChatRepository: conversation history, ordered most-recent-last
//
// # Thread Safety
//
// All implementations must be thread-safe and support concurrent access
// from multiple goroutines. Upserts to the same vector key race on
// last-write-wins, which is acceptable because embeddings are derived
// deterministically from the same scene content.
package storage
