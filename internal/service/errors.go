package service

import (
	"errors"
	"fmt"

	"github.com/phrazzld/todolist-api/internal/domain"
	"github.com/phrazzld/todolist-api/internal/store"
)

// Error handling principles:
//  1. Expected conditions are returned as domain.ValidationError,
//     domain.NotFoundError or domain.ConflictError
//  2. Unexpected errors are wrapped with the failed operation
//  3. Callers use errors.Is/errors.As against the domain sentinels
//  4. The API layer maps the domain sentinels to HTTP status codes

// ErrEmailTaken is wrapped by the ValidationError returned for a duplicate email.
var ErrEmailTaken = errors.New("email is already registered")

// translateStoreError maps store errors for the entity identified by kind
// and id into the domain taxonomy. Domain errors pass through unchanged.
func translateStoreError(err error, kind string, id int64, op string) error {
	if err == nil {
		return nil
	}

	var (
		validationErr *domain.ValidationError
		notFoundErr   *domain.NotFoundError
		conflictErr   *domain.ConflictError
		versionErr    *store.VersionConflictError
	)
	switch {
	case errors.As(err, &validationErr), errors.As(err, &notFoundErr), errors.As(err, &conflictErr):
		return err
	case errors.As(err, &versionErr):
		return domain.NewVersionConflictError(kind, id, versionErr.Expected, versionErr.Actual)
	case errors.Is(err, store.ErrNotFound):
		return domain.NewNotFoundError(kind, id)
	case errors.Is(err, store.ErrReferenced):
		return domain.NewConflictError(kind, id, "conflicts with related records")
	case errors.Is(err, store.ErrInvalidEntity):
		return domain.NewValidationError("", "rejected by the store", err)
	}

	return fmt.Errorf("failed to %s: %w", op, err)
}

// emailTakenError is the ValidationError for a normalized email that already
// belongs to another user.
func emailTakenError() error {
	return domain.NewValidationError("email", "is already registered", ErrEmailTaken)
}
