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

import (
	"context"
	"time"

	"github.com/IliasHad/edit-mind-sub003/core"
	"github.com/IliasHad/edit-mind-sub003/storage"
	"github.com/dgraph-io/badger/v4"
)

// SceneRepository implements storage.SceneRepository for BadgerDB.
type SceneRepository struct {
	backend *Backend
}

var _ storage.SceneRepository = (*SceneRepository)(nil)

// NewSceneRepository creates a scene repository on the backend.
//
// Returns storage.SceneRepository interface to enforce abstraction.
func NewSceneRepository(backend *Backend) (storage.SceneRepository, error) {
	if backend == nil {
		return nil, storage.ErrStorageClosed
	}
	return &SceneRepository{backend: backend}, nil
}

// AddScenes adds one or more scenes to storage.
func (r *SceneRepository) AddScenes(ctx context.Context, scenes ...*core.Scene) ([]*core.Scene, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		now := time.Now().UTC()
		for _, scene := range scenes {
			if err := core.ValidateScene(scene); err != nil {
				return err
			}
			scene.InsertedAt = now
			scene.UpdatedAt = now

			if err := tx.Set(makeSceneKey(scene.ID), storage.MarshalScene(scene)); err != nil {
				return err
			}
			videoKey := makeSceneVideoKey(scene.VideoID, scene.StartTime, scene.ID)
			if err := tx.Set(videoKey, []byte(scene.ID)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return scenes, err
}

// UpdateScenes updates existing scenes.
func (r *SceneRepository) UpdateScenes(ctx context.Context, scenes ...*core.Scene) ([]*core.Scene, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, scene := range scenes {
			key := makeSceneKey(scene.ID)
			old, err := r.readScene(tx, key)
			if err != nil {
				return err
			}
			if old == nil {
				return storage.ErrNotFound
			}

			scene.InsertedAt = old.InsertedAt
			scene.UpdatedAt = time.Now().UTC()
			if err := tx.Set(key, storage.MarshalScene(scene)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return scenes, err
}

// GetScene retrieves a single scene by ID.
func (r *SceneRepository) GetScene(ctx context.Context, id string) (*core.Scene, error) {
	var scene *core.Scene
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		scene, err = r.readScene(tx, makeSceneKey(id))
		return err
	}, false)
	if err != nil {
		return nil, err
	}
	if scene == nil {
		return nil, storage.ErrNotFound
	}
	return scene, nil
}

// GetScenes retrieves multiple scenes by their IDs.
// Missing scenes are skipped, not an error.
func (r *SceneRepository) GetScenes(ctx context.Context, ids ...string) ([]*core.Scene, error) {
	scenes := make([]*core.Scene, 0, len(ids))
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			scene, err := r.readScene(tx, makeSceneKey(id))
			if err != nil {
				return err
			}
			if scene != nil {
				scenes = append(scenes, scene)
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return scenes, nil
}

// GetScenesByVideo retrieves all scenes for a video ordered by start time.
func (r *SceneRepository) GetScenesByVideo(ctx context.Context, videoID string) ([]*core.Scene, error) {
	var scenes []*core.Scene
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makePartialSceneVideoKey(videoID)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var sceneID string
			if err := iter.Item().Value(func(val []byte) error {
				sceneID = string(val)
				return nil
			}); err != nil {
				return err
			}

			scene, err := r.readScene(tx, makeSceneKey(sceneID))
			if err != nil {
				return err
			}
			if scene != nil {
				scenes = append(scenes, scene)
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return scenes, nil
}

// Close is a no-op; the shared backend is closed by its owner.
func (r *SceneRepository) Close() error {
	return nil
}

func (r *SceneRepository) readScene(tx *badger.Txn, key []byte) (*core.Scene, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var scene *core.Scene
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		scene, unmarshalErr = storage.UnmarshalScene(val)
		return unmarshalErr
	})
	return scene, err
}
