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


// Package storage provides the persistence abstraction for keyword vectors.
//
// Keyword embeddings are deterministic for a given model, so they are computed
// once and kept in a VectorCache keyed by (model, text). The classifier never
// talks to storage directly; the ai/cached embedder and the reembed package do.
//
// # Constructor Return Type Pattern
//
// Public constructors return the interface:
//
//	cache, err := badger.NewVectorCache(backend)  // returns storage.VectorCache
//
// The Backend itself is returned as a concrete type since callers manage its
// lifecycle.
//
// # Serialization
//
// Entries are encoded with mus-go serializers (VectorEntryMUS). Each entry
// carries its model and text so hash collisions on the key are detected.
//
// # Usage
//
//	backend, err := badger.OpenBackend("/path/to/cache", false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	cache, err := badger.NewVectorCache(backend)
//	defer cache.Close()
//
// Use in tests with in-memory storage:
//
//	cache, err := badger.NewMemoryVectorCache()
//
// # Thread Safety
//
// All implementations must be thread-safe and support concurrent access
// from multiple goroutines.
package storage
