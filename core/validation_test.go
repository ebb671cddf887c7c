package core

import (
	"errors"
	"fmt"
	"math"
	"testing"
)

func TestValidateCategory(t *testing.T) {
	tests := []struct {
		name     string
		category *Category
		wantErr  error
	}{
		{
			name:     "valid category",
			category: &Category{Name: "python", Keywords: []string{"django", "flask"}, Weight: 1.0},
			wantErr:  nil,
		},
		{
			name:     "valid category with no keywords",
			category: &Category{Name: "go", Weight: 0.5},
			wantErr:  nil,
		},
		{
			name:     "zero weight is allowed",
			category: &Category{Name: "java", Weight: 0},
			wantErr:  nil,
		},
		{
			name:     "nil category",
			category: nil,
			wantErr:  ErrInvalidCategory,
		},
		{
			name:     "empty name",
			category: &Category{Name: "", Weight: 1},
			wantErr:  ErrEmptyCategoryName,
		},
		{
			name:     "negative weight",
			category: &Category{Name: "cpp", Weight: -1},
			wantErr:  ErrInvalidWeight,
		},
		{
			name:     "NaN weight",
			category: &Category{Name: "cpp", Weight: math.NaN()},
			wantErr:  ErrInvalidWeight,
		},
		{
			name:     "infinite weight",
			category: &Category{Name: "cpp", Weight: math.Inf(1)},
			wantErr:  ErrInvalidWeight,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCategory(tt.category)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateCategory() unexpected error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateCategory() error = %v, want %v", err, tt.wantErr)
			}
			if !errors.Is(err, ErrInvalidCategory) {
				t.Errorf("ValidateCategory() error should wrap ErrInvalidCategory, got %v", err)
			}
		})
	}
}

func TestValidateCategories_Duplicate(t *testing.T) {
	categories := []Category{
		{Name: "python", Weight: 1},
		{Name: "cpp", Weight: 1},
		{Name: "python", Weight: 2},
	}
	err := ValidateCategories(categories)
	if !errors.Is(err, ErrDuplicateCategory) {
		t.Errorf("ValidateCategories() error = %v, want %v", err, ErrDuplicateCategory)
	}
}

func TestValidateCategories_Empty(t *testing.T) {
	if err := ValidateCategories(nil); err != nil {
		t.Errorf("ValidateCategories(nil) unexpected error = %v", err)
	}
}

func TestStatusOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Status
	}{
		{name: "nil", err: nil, want: StatusOK},
		{name: "invalid prompt", err: ErrInvalidPrompt, want: StatusInvalidPrompt},
		{name: "wrapped invalid prompt", err: fmt.Errorf("classify: %w", ErrInvalidPrompt), want: StatusInvalidPrompt},
		{name: "no relevant keywords", err: ErrNoRelevantKeywords, want: StatusNoRelevantKeywords},
		{name: "other", err: errors.New("connection refused"), want: StatusProviderFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusOf(tt.err); got != tt.want {
				t.Errorf("StatusOf() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOutcomeMessages(t *testing.T) {
	if ErrInvalidPrompt.Error() != "Not a valid prompt. Please include 'docker image' or a programming language like 'python', 'cpp', etc." {
		t.Errorf("unexpected invalid prompt message: %q", ErrInvalidPrompt.Error())
	}
	if ErrNoRelevantKeywords.Error() != "No relevant keywords found" {
		t.Errorf("unexpected no keywords message: %q", ErrNoRelevantKeywords.Error())
	}
}

func TestStatus_String(t *testing.T) {
	if StatusProviderFailure.String() != "provider_failure" {
		t.Errorf("String() = %q", StatusProviderFailure.String())
	}
	if Status(99).String() != "unknown" {
		t.Errorf("String() = %q", Status(99).String())
	}
}
