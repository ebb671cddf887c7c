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


package classify

import "errors"

var (
	// ErrEmbedderRequired is returned when an embedder is not provided.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrEmbeddingFailed wraps embedding provider failures.
	// These are infrastructure errors and are never retried by the classifier.
	ErrEmbeddingFailed = errors.New("embedding failed")

	// ErrInvalidSettings indicates unusable classifier settings.
	ErrInvalidSettings = errors.New("invalid classifier settings")

	// ErrEmptyGate is returned when a gate is built with no usable terms or phrases.
	ErrEmptyGate = errors.New("gate requires at least one term or phrase")
)
