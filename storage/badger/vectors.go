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
	"encoding/binary"
	"math"
	"slices"

	"github.com/IliasHad/edit-mind-sub003/core"
	"github.com/IliasHad/edit-mind-sub003/storage"
	"github.com/dgraph-io/badger/v4"
)

// VectorStore implements storage.VectorStore on a Badger backend.
// Each stored value carries an insertion sequence number used to break
// similarity ties by recency.
type VectorStore struct {
	backend *Backend
	seq     *badger.Sequence
}

var _ storage.VectorStore = (*VectorStore)(nil)

// NewVectorStore creates a vector store on the backend.
//
// Returns storage.VectorStore interface to enforce abstraction.
func NewVectorStore(backend *Backend) (storage.VectorStore, error) {
	seq, err := backend.GetSequence(vectorSeq)
	if err != nil {
		return nil, err
	}
	return &VectorStore{backend: backend, seq: seq}, nil
}

// Upsert stores points in the collection, replacing existing points with
// the same ID. The replacement receives a fresh sequence number, so a
// rewritten point counts as the most recent for tie-breaking.
func (s *VectorStore) Upsert(ctx context.Context, collection string, points ...*core.VectorPoint) error {
	if collection == "" {
		return storage.ErrUnknownCollection
	}
	return s.backend.WithTx(func(tx *badger.Txn) error {
		for _, point := range points {
			seq, err := s.seq.Next()
			if err != nil {
				return err
			}
			key := makeVectorKey(collection, point.ID)
			if err := tx.Set(key, encodePoint(seq, point)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// Query returns up to k candidates ordered by decreasing cosine similarity,
// ties broken by insertion recency (most recent first).
func (s *VectorStore) Query(ctx context.Context, collection string, vector []float32, k int, filter map[string]string) ([]*core.Candidate, error) {
	if collection == "" {
		return nil, storage.ErrUnknownCollection
	}
	if k <= 0 || len(vector) == 0 {
		return nil, storage.ErrInvalidQuery
	}

	type scored struct {
		candidate *core.Candidate
		seq       uint64
	}
	var results []scored

	err := s.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makePartialVectorKey(collection)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var (
				point *core.VectorPoint
				seq   uint64
			)
			err := iter.Item().Value(func(val []byte) error {
				var err error
				seq, point, err = decodePoint(val)
				return err
			})
			if err != nil {
				return err
			}

			// Rows with a different dimensionality belong to another
			// model generation; they can never score meaningfully.
			if len(point.Vector) != len(vector) {
				continue
			}
			if !matchesFilter(point.Metadata, filter) {
				continue
			}

			results = append(results, scored{
				candidate: &core.Candidate{
					ID:       point.ID,
					Vector:   point.Vector,
					Metadata: point.Metadata,
					Document: point.Document,
					Score:    cosineSimilarity(vector, point.Vector),
				},
				seq: seq,
			})
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	slices.SortFunc(results, func(a, b scored) int {
		if a.candidate.Score > b.candidate.Score {
			return -1
		}
		if a.candidate.Score < b.candidate.Score {
			return 1
		}
		// Equal similarity: most recently inserted first.
		if a.seq > b.seq {
			return -1
		}
		if a.seq < b.seq {
			return 1
		}
		return 0
	})

	if len(results) > k {
		results = results[:k]
	}
	candidates := make([]*core.Candidate, len(results))
	for i, r := range results {
		candidates[i] = r.candidate
	}
	return candidates, nil
}

// Delete removes points by ID. Missing IDs are ignored.
func (s *VectorStore) Delete(ctx context.Context, collection string, ids ...string) error {
	if collection == "" {
		return storage.ErrUnknownCollection
	}
	return s.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			if err := tx.Delete(makeVectorKey(collection, id)); err != nil && err != badger.ErrKeyNotFound {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// Close releases the sequence. The shared backend is closed by its owner.
func (s *VectorStore) Close() error {
	return s.seq.Release()
}

// encodePoint prepends the 8-byte insertion sequence to the serialized point.
func encodePoint(seq uint64, point *core.VectorPoint) []byte {
	body := storage.MarshalVectorPoint(point)
	buf := make([]byte, 8+len(body))
	binary.BigEndian.PutUint64(buf, seq)
	copy(buf[8:], body)
	return buf
}

func decodePoint(data []byte) (uint64, *core.VectorPoint, error) {
	if len(data) < 8 {
		return 0, nil, storage.ErrSerializationFailed
	}
	seq := binary.BigEndian.Uint64(data[:8])
	point, err := storage.UnmarshalVectorPoint(data[8:])
	if err != nil {
		return 0, nil, err
	}
	return seq, point, nil
}

func matchesFilter(metadata, filter map[string]string) bool {
	for key, want := range filter {
		if metadata[key] != want {
			return false
		}
	}
	return true
}

// cosineSimilarity computes the cosine of the angle between two equal-length
// vectors. Zero vectors score 0.
func cosineSimilarity(a, b []float32) float32 {
	var dot, normA, normB float32
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (float32(math.Sqrt(float64(normA))) * float32(math.Sqrt(float64(normB))))
}
