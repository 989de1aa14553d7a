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
	"slices"
	"time"

	"github.com/IliasHad/edit-mind-sub003/core"
	"github.com/IliasHad/edit-mind-sub003/storage"
	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

// ChatRepository implements storage.ChatRepository for BadgerDB.
// Messages are stored under time-ordered keys so recency queries are a
// reverse iteration.
type ChatRepository struct {
	backend *Backend
}

var _ storage.ChatRepository = (*ChatRepository)(nil)

// NewChatRepository creates a chat repository on the backend.
//
// Returns storage.ChatRepository interface to enforce abstraction.
func NewChatRepository(backend *Backend) (storage.ChatRepository, error) {
	if backend == nil {
		return nil, storage.ErrStorageClosed
	}
	return &ChatRepository{backend: backend}, nil
}

// AddMessages appends messages to the conversation.
func (r *ChatRepository) AddMessages(ctx context.Context, messages ...*core.ChatMessage) ([]*core.ChatMessage, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, message := range messages {
			if message.ID == "" {
				message.ID = uuid.NewString()
			}
			if message.CreatedAt.IsZero() {
				message.CreatedAt = time.Now().UTC()
			}
			if err := core.ValidateChatMessage(message); err != nil {
				return err
			}

			key := makeChatMessageKey(message.CreatedAt, message.ID)
			if err := tx.Set(key, storage.MarshalChatMessage(message)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// RecentMessages returns up to limit most recent messages, oldest-first.
func (r *ChatRepository) RecentMessages(ctx context.Context, limit int) ([]*core.ChatMessage, error) {
	if limit <= 0 {
		return nil, storage.ErrInvalidQuery
	}

	var messages []*core.ChatMessage
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		iter := tx.NewIterator(opts)
		defer iter.Close()

		prefix := []byte(chatMsgPrefix + ":")
		seekKey := append(append([]byte{}, prefix...), 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff)

		for iter.Seek(seekKey); iter.Valid() && len(messages) < limit; iter.Next() {
			key := iter.Item().Key()
			if !bytes.HasPrefix(key, prefix) {
				break
			}

			var message *core.ChatMessage
			if err := iter.Item().Value(func(val []byte) error {
				var unmarshalErr error
				message, unmarshalErr = storage.UnmarshalChatMessage(val)
				return unmarshalErr
			}); err != nil {
				return err
			}
			messages = append(messages, message)
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	// Reverse iteration yields newest first; callers want oldest-first.
	slices.Reverse(messages)
	return messages, nil
}

// Close is a no-op; the shared backend is closed by its owner.
func (r *ChatRepository) Close() error {
	return nil
}
