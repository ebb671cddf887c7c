// Copyright 2025 Poiesic Systems
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
	"errors"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/promptclass/storage"
)

// VectorCache implements storage.VectorCache for BadgerDB.
type VectorCache struct {
	backend *Backend
	logger  *slog.Logger
}

var _ storage.VectorCache = (*VectorCache)(nil)

// NewVectorCache creates a vector cache on top of an open backend.
// The cache takes ownership of the backend and closes it on Close.
func NewVectorCache(backend *Backend) (storage.VectorCache, error) {
	return newVectorCache(backend)
}

func newVectorCache(backend *Backend) (*VectorCache, error) {
	if backend == nil {
		return nil, errors.New("badger: backend is required")
	}
	return &VectorCache{
		backend: backend,
		logger:  backend.logger.With("component", "vector-cache"),
	}, nil
}

// GetVectors returns cached vectors index-aligned with texts; misses are nil.
func (c *VectorCache) GetVectors(ctx context.Context, model string, texts []string) ([][]float32, error) {
	if c.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}

	vectors := make([][]float32, len(texts))
	err := c.backend.WithTx(func(tx *badger.Txn) error {
		for i, text := range texts {
			if err := ctx.Err(); err != nil {
				return err
			}
			item, err := tx.Get(makeVectorKey(model, text))
			if err != nil {
				if errors.Is(err, badger.ErrKeyNotFound) {
					continue
				}
				return err
			}

			var entry *storage.VectorEntry
			err = item.Value(func(val []byte) error {
				var unmarshalErr error
				entry, unmarshalErr = storage.UnmarshalVectorEntry(val)
				return unmarshalErr
			})
			if err != nil {
				return err
			}
			if entry.Model != model || entry.Text != text {
				c.logger.Warn("cache key collision", "model", model, "text", text, "stored", entry.Text)
				continue
			}
			vectors[i] = entry.Vector
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return vectors, nil
}

// PutVectors stores vectors[i] under texts[i] for the given model.
func (c *VectorCache) PutVectors(ctx context.Context, model string, texts []string, vectors [][]float32) error {
	if len(texts) != len(vectors) {
		return storage.ErrLengthMismatch
	}
	if c.backend.IsClosed() {
		return storage.ErrStorageClosed
	}

	return c.backend.WithBatch(func(wb *badger.WriteBatch) error {
		for i, text := range texts {
			if err := ctx.Err(); err != nil {
				return err
			}
			entry := &storage.VectorEntry{Model: model, Text: text, Vector: vectors[i]}
			if err := wb.Set(makeVectorKey(model, text), storage.MarshalVectorEntry(entry)); err != nil {
				return err
			}
		}
		c.logger.Debug("cached vectors", "model", model, "count", len(texts))
		return nil
	})
}

// Count returns the number of vectors cached for model.
func (c *VectorCache) Count(ctx context.Context, model string) (int, error) {
	if c.backend.IsClosed() {
		return 0, storage.ErrStorageClosed
	}

	count := 0
	err := c.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = makeModelPrefix(model)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			count++
		}
		return nil
	}, false)
	return count, err
}

// Purge removes every vector cached for model.
func (c *VectorCache) Purge(ctx context.Context, model string) error {
	if c.backend.IsClosed() {
		return storage.ErrStorageClosed
	}
	c.logger.Info("purging cached vectors", "model", model)
	return c.backend.DropPrefix(makeModelPrefix(model))
}

// Close closes the underlying backend.
func (c *VectorCache) Close() error {
	if c.backend.IsClosed() {
		return nil
	}
	return c.backend.Close()
}
