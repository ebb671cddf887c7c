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


// Package ai provides abstractions for the embedding services used by promptclass.
//
// This package defines the contract between the classification engine and
// whatever produces text embeddings. The engine depends only on these
// abstractions, never on a concrete model runtime.
//
// # Design Principles
//
// The package is designed around two key interfaces:
//
//   - Embedder: Generates vector embeddings from text
//   - EmbeddingProvider: Owns an Embedder and the resources behind it
//
// It also carries the similarity primitives applied to those vectors
// (CosineSimilarity, CosineSimilarities, NormalizeVector).
//
// # Implementation Packages
//
//   - ai/openai: OpenAI-compatible HTTP APIs (Ollama, vLLM, LocalAI, OpenAI)
//   - ai/fastembed: Local ONNX models, in-process (requires cgo)
//   - ai/cached: Embedder decorator backed by a persistent vector cache
//   - ai/mock: Test doubles for unit testing without external dependencies
//
// # Constructor Return Type Pattern
//
// Public constructors (openai.NewProvider, fastembed.NewProvider, etc.) return
// INTERFACE types to enforce abstraction and prevent accidental coupling to
// concrete implementations.
//
//	provider, err := openai.NewProvider(config)  // returns ai.EmbeddingProvider
//
// Test utility constructors (mock.NewMockEmbedder) return CONCRETE types to
// enable test assertions and behavior injection via the mock's public
// fields and methods (EmbedTextFunc, CallCount, Reset, etc.).
//
//	mockEmbed := mock.NewMockEmbedder()  // returns *mock.MockEmbedder
//	count := mockEmbed.CallCount()       // test assertion
//
// # Usage Example
//
//	config := ai.NewConfig(ai.WithEmbeddingHost("http://localhost:11434"))
//	provider, err := openai.NewProvider(config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	vec, err := provider.Embedder().EmbedText(ctx, "build a docker image for flask")
package ai
