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


package reembed

import (
	"context"

	"github.com/poiesic/promptclass/core"
)

const (
	// DefaultBatchSize is the default number of keywords embedded per call
	DefaultBatchSize = 100
)

// Vocabulary returns every keyword of categories once, in configuration order.
func Vocabulary(categories []core.Category) []string {
	seen := make(map[string]bool)
	var out []string
	for _, c := range categories {
		for _, kw := range c.Keywords {
			if seen[kw] {
				continue
			}
			seen[kw] = true
			out = append(out, kw)
		}
	}
	return out
}

// KeywordIterator walks a keyword list in fixed-size batches.
type KeywordIterator struct {
	keywords  []string
	batchSize int
}

// NewKeywordIterator creates a new keyword iterator.
// batchSize: number of keywords per batch (<= 0 selects DefaultBatchSize)
func NewKeywordIterator(keywords []string, batchSize int) *KeywordIterator {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	return &KeywordIterator{
		keywords:  keywords,
		batchSize: batchSize,
	}
}

// ForEach calls fn for each batch.
// Iteration stops on first error from fn or when all keywords are processed.
// Context cancellation is checked between batches.
func (it *KeywordIterator) ForEach(ctx context.Context, fn func([]string) error) error {
	for i := 0; i < len(it.keywords); i += it.batchSize {
		if err := ctx.Err(); err != nil {
			return err
		}

		end := min(i+it.batchSize, len(it.keywords))
		if err := fn(it.keywords[i:end]); err != nil {
			return err
		}
	}
	return nil
}
