package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorTaxonomy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		sentinel error
		others   []error
	}{
		{
			name:     "validation",
			err:      NewValidationError("title", "cannot be empty", ErrEmptyTitle),
			sentinel: ErrValidation,
			others:   []error{ErrNotFound, ErrConflict},
		},
		{
			name:     "not found",
			err:      NewNotFoundError("category", 42),
			sentinel: ErrNotFound,
			others:   []error{ErrValidation, ErrConflict},
		},
		{
			name:     "conflict",
			err:      NewVersionConflictError("task", 1, 0, 1),
			sentinel: ErrConflict,
			others:   []error{ErrValidation, ErrNotFound},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("service call: %w", tt.err)
			if !errors.Is(wrapped, tt.sentinel) {
				t.Errorf("Expected %v to match %v", wrapped, tt.sentinel)
			}
			for _, other := range tt.others {
				if errors.Is(wrapped, other) {
					t.Errorf("Did not expect %v to match %v", wrapped, other)
				}
			}
		})
	}
}

func TestErrorMessages(t *testing.T) {
	t.Parallel()

	if got := NewNotFoundError("task", 9).Error(); got != "task not found with id: 9" {
		t.Errorf("Unexpected message %q", got)
	}

	if got := NewVersionConflictError("task", 1, 0, 2).Error(); got != "task 1: version mismatch: expected 0, current 2" {
		t.Errorf("Unexpected message %q", got)
	}

	if got := NewValidationError("email", "already exists", nil).Error(); got != "validation failed: email already exists" {
		t.Errorf("Unexpected message %q", got)
	}

	var ve *ValidationError
	if !errors.As(fmt.Errorf("wrap: %w", NewValidationError("name", "cannot be empty", ErrEmptyName)), &ve) {
		t.Fatal("Expected errors.As to find ValidationError")
	}
	if ve.Field != "name" {
		t.Errorf("Expected field name, got %q", ve.Field)
	}
}
