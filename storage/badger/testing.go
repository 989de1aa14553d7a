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


package badger

import "github.com/IliasHad/edit-mind-sub003/storage"

// MemoryStores bundles every in-memory repository for tests.
type MemoryStores struct {
	Backend *Backend
	Scenes  storage.SceneRepository
	Jobs    storage.JobRepository
	Chat    storage.ChatRepository
	Vectors storage.VectorStore
}

// NewMemoryStores creates in-memory repositories for testing.
// Caller must call Close when done.
func NewMemoryStores() (*MemoryStores, error) {
	backend, err := OpenBackend("", true)
	if err != nil {
		return nil, err
	}

	scenes, err := NewSceneRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	jobs, err := NewJobRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	chat, err := NewChatRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	vectors, err := NewVectorStore(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	return &MemoryStores{
		Backend: backend,
		Scenes:  scenes,
		Jobs:    jobs,
		Chat:    chat,
		Vectors: vectors,
	}, nil
}

// Close releases every repository and the backend.
func (m *MemoryStores) Close() error {
	m.Vectors.Close()
	m.Chat.Close()
	m.Jobs.Close()
	m.Scenes.Close()
	return m.Backend.Close()
}
