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
	"bytes"
	"context"
	"time"

	"github.com/IliasHad/edit-mind-sub003/core"
	"github.com/IliasHad/edit-mind-sub003/storage"
	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

// JobRepository implements storage.JobRepository for BadgerDB.
// Jobs are indexed per state so each state bucket can be read most recent
// first without scanning the others.
type JobRepository struct {
	backend *Backend
}

var _ storage.JobRepository = (*JobRepository)(nil)

// NewJobRepository creates a job repository on the backend.
//
// Returns storage.JobRepository interface to enforce abstraction.
func NewJobRepository(backend *Backend) (storage.JobRepository, error) {
	if backend == nil {
		return nil, storage.ErrStorageClosed
	}
	return &JobRepository{backend: backend}, nil
}

// Enqueue adds a job, generating an ID and CreatedAt when absent.
func (r *JobRepository) Enqueue(ctx context.Context, job *core.Job) (*core.Job, error) {
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	if job.CreatedAt.IsZero() {
		job.CreatedAt = time.Now().UTC()
	}
	if job.State == 0 {
		job.State = core.JobStateWaiting
	}
	if err := core.ValidateJob(job); err != nil {
		return nil, err
	}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set(makeJobKey(job.ID), storage.MarshalJob(job)); err != nil {
			return err
		}
		stateKey := makeJobStateKey(job.State, job.CreatedAt, job.ID)
		if err := tx.Set(stateKey, []byte(job.ID)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return nil, err
	}
	return job, nil
}

// GetJobs returns jobs in the given states, most recently created first.
// States are visited in the order supplied by the caller.
func (r *JobRepository) GetJobs(ctx context.Context, states []core.JobState, offset, limit int, includeData bool) ([]*core.Job, error) {
	if limit <= 0 || offset < 0 {
		return nil, storage.ErrInvalidQuery
	}

	var jobs []*core.Job
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		skipped := 0
		for _, state := range states {
			if len(jobs) >= limit {
				break
			}

			opts := badger.DefaultIteratorOptions
			opts.Reverse = true
			iter := tx.NewIterator(opts)

			prefix := makePartialJobStateKey(state)
			// Seek past the end of the bucket; reverse iteration then
			// walks newest to oldest.
			seekKey := append(append([]byte{}, prefix...), 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff)

			for iter.Seek(seekKey); iter.Valid() && len(jobs) < limit; iter.Next() {
				key := iter.Item().Key()
				if !bytes.HasPrefix(key, prefix) {
					break
				}
				if skipped < offset {
					skipped++
					continue
				}

				var jobID string
				if err := iter.Item().Value(func(val []byte) error {
					jobID = string(val)
					return nil
				}); err != nil {
					iter.Close()
					return err
				}

				job, err := r.readJob(tx, jobID)
				if err != nil {
					iter.Close()
					return err
				}
				if job == nil {
					continue
				}
				// Only report jobs still in this bucket; a stale index
				// entry from a racing transition is skipped.
				if job.State != state {
					continue
				}
				if !includeData {
					job.Data = nil
				}
				jobs = append(jobs, job)
			}
			iter.Close()
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return jobs, nil
}

// UpdateState transitions a job to a new state, moving its index entry.
func (r *JobRepository) UpdateState(ctx context.Context, id string, state core.JobState) (*core.Job, error) {
	if err := core.ValidateJobState(state); err != nil {
		return nil, err
	}

	var job *core.Job
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		job, err = r.readJob(tx, id)
		if err != nil {
			return err
		}
		if job == nil {
			return storage.ErrNotFound
		}

		oldKey := makeJobStateKey(job.State, job.CreatedAt, job.ID)
		if err := tx.Delete(oldKey); err != nil && err != badger.ErrKeyNotFound {
			return err
		}

		job.State = state
		if err := tx.Set(makeJobKey(job.ID), storage.MarshalJob(job)); err != nil {
			return err
		}
		newKey := makeJobStateKey(job.State, job.CreatedAt, job.ID)
		if err := tx.Set(newKey, []byte(job.ID)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return nil, err
	}
	return job, nil
}

// UpdateData merges entries into a job's Data map. The state index is
// untouched; Data changes never reorder a bucket.
func (r *JobRepository) UpdateData(ctx context.Context, id string, data map[string]string) (*core.Job, error) {
	var job *core.Job
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		job, err = r.readJob(tx, id)
		if err != nil {
			return err
		}
		if job == nil {
			return storage.ErrNotFound
		}

		if job.Data == nil {
			job.Data = make(map[string]string, len(data))
		}
		for key, value := range data {
			job.Data[key] = value
		}
		if err := tx.Set(makeJobKey(job.ID), storage.MarshalJob(job)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return nil, err
	}
	return job, nil
}

// Close is a no-op; the shared backend is closed by its owner.
func (r *JobRepository) Close() error {
	return nil
}

func (r *JobRepository) readJob(tx *badger.Txn, id string) (*core.Job, error) {
	item, err := tx.Get(makeJobKey(id))
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var job *core.Job
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		job, unmarshalErr = storage.UnmarshalJob(val)
		return unmarshalErr
	})
	return job, err
}
