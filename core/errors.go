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

import "errors"

// Query outcome errors. Both are terminal for a query and deterministic in the input.
var (
	// ErrInvalidPrompt indicates the prompt failed the validity gate.
	ErrInvalidPrompt = errors.New("Not a valid prompt. Please include 'docker image' or a programming language like 'python', 'cpp', etc.")

	// ErrNoRelevantKeywords indicates the configuration produced no categories.
	ErrNoRelevantKeywords = errors.New("No relevant keywords found")
)

// Domain validation errors
var (
	// ErrInvalidCategory indicates a Category failed validation.
	ErrInvalidCategory = errors.New("invalid category")

	// ErrEmptyCategoryName indicates the category Name field is empty.
	ErrEmptyCategoryName = errors.New("category name cannot be empty")

	// ErrDuplicateCategory indicates two categories share a name.
	ErrDuplicateCategory = errors.New("duplicate category name")

	// ErrInvalidWeight indicates a weight that is negative, NaN or infinite.
	ErrInvalidWeight = errors.New("weight must be a finite, non-negative number")
)

// Status discriminates the outcome of a classification.
type Status int

const (
	// StatusOK means a QueryResult was produced.
	StatusOK Status = iota
	// StatusInvalidPrompt means the prompt failed the validity gate.
	StatusInvalidPrompt
	// StatusNoRelevantKeywords means no categories were configured.
	StatusNoRelevantKeywords
	// StatusProviderFailure means the embedding provider or another
	// infrastructure dependency failed.
	StatusProviderFailure
)

// String returns a stable, lowercase name for the status.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusInvalidPrompt:
		return "invalid_prompt"
	case StatusNoRelevantKeywords:
		return "no_relevant_keywords"
	case StatusProviderFailure:
		return "provider_failure"
	default:
		return "unknown"
	}
}

// StatusOf maps a classification error onto its Status.
// A nil error is StatusOK; errors that are neither outcome error are
// provider failures.
func StatusOf(err error) Status {
	switch {
	case err == nil:
		return StatusOK
	case errors.Is(err, ErrInvalidPrompt):
		return StatusInvalidPrompt
	case errors.Is(err, ErrNoRelevantKeywords):
		return StatusNoRelevantKeywords
	default:
		return StatusProviderFailure
	}
}
