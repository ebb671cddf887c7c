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


package core

import (
	"fmt"
	"math"
)

// ValidateCategory validates a Category according to domain rules.
//
// Validation rules:
//   - Name must not be empty
//   - Weight must be finite and non-negative
//
// NOT validated:
//   - Keywords (an empty keyword list is legal and scores 0)
//   - Keyword uniqueness
func ValidateCategory(category *Category) error {
	if category == nil {
		return fmt.Errorf("%w: category is nil", ErrInvalidCategory)
	}

	if category.Name == "" {
		return fmt.Errorf("%w: %w", ErrInvalidCategory, ErrEmptyCategoryName)
	}

	if err := ValidateWeight(category.Weight); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidCategory, category.Name, err)
	}

	return nil
}

// ValidateCategories validates each category and rejects duplicate names.
func ValidateCategories(categories []Category) error {
	seen := make(map[string]bool, len(categories))
	for i := range categories {
		if err := ValidateCategory(&categories[i]); err != nil {
			return err
		}
		if seen[categories[i].Name] {
			return fmt.Errorf("%w: %w: %s", ErrInvalidCategory, ErrDuplicateCategory, categories[i].Name)
		}
		seen[categories[i].Name] = true
	}
	return nil
}

// ValidateWeight checks that a weight is usable as a score multiplier.
func ValidateWeight(weight float64) error {
	if math.IsNaN(weight) || math.IsInf(weight, 0) || weight < 0 {
		return fmt.Errorf("%w: value %v", ErrInvalidWeight, weight)
	}
	return nil
}
