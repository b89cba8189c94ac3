// Package domain defines the core business entities and errors.
package domain

import (
	"errors"
	"fmt"
)

// Error categories shared by every service. Handlers and tools map these to
// transport status codes with errors.Is.
var (
	// ErrValidation is returned when caller input is rejected.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound is returned when a referenced entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when a write loses against a concurrent write
	// or would break a referential constraint.
	ErrConflict = errors.New("conflict")
)

// Field-level validation errors. They are wrapped into a ValidationError
// by the constructors and services so callers only need the category.
var (
	ErrEmptyTitle    = errors.New("title cannot be empty")
	ErrInvalidStatus = errors.New("invalid task status")
	ErrEmptyName     = errors.New("name cannot be empty")
	ErrEmptyEmail    = errors.New("email cannot be empty")
	ErrInvalidEmail  = errors.New("invalid email format")
	ErrInvalidDate   = errors.New("invalid date, expected YYYY-MM-DD")
)

// ValidationError reports input that was rejected before anything was persisted.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError builds a ValidationError for field. err may be nil.
func NewValidationError(field, message string, err error) *ValidationError {
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation failed: %s", e.Message)
	}
	return fmt.Sprintf("validation failed: %s %s", e.Field, e.Message)
}

// Is makes errors.Is(err, ErrValidation) hold for every ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NotFoundError reports a missing entity, identified by kind and id.
type NotFoundError struct {
	Entity string
	ID     int64
}

// NewNotFoundError builds a NotFoundError for the entity kind and id.
func NewNotFoundError(entity string, id int64) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found with id: %d", e.Entity, e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// ConflictError reports a write that was refused because the stored state
// moved on (version mismatch) or because other rows still depend on it.
type ConflictError struct {
	Entity  string
	ID      int64
	Message string
}

// NewConflictError builds a ConflictError.
func NewConflictError(entity string, id int64, message string) *ConflictError {
	return &ConflictError{Entity: entity, ID: id, Message: message}
}

// NewVersionConflictError reports a stale optimistic-lock token.
func NewVersionConflictError(entity string, id int64, expected, actual int) *ConflictError {
	return &ConflictError{
		Entity:  entity,
		ID:      id,
		Message: fmt.Sprintf("version mismatch: expected %d, current %d", expected, actual),
	}
}

func (e *ConflictError) Error() string {
	if e.ID == 0 {
		return fmt.Sprintf("%s: %s", e.Entity, e.Message)
	}
	return fmt.Sprintf("%s %d: %s", e.Entity, e.ID, e.Message)
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}
