package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/phrazzld/todolist-api/internal/domain"
	"github.com/phrazzld/todolist-api/internal/platform/logger"
	"github.com/phrazzld/todolist-api/internal/store"
)

// UpdateUserInput is a partial user update; nil fields are left unchanged.
type UpdateUserInput struct {
	Name  *string
	Email *string
}

// UserService provides user-related operations
type UserService interface {
	// CreateUser creates a user with a trimmed name and a normalized email.
	// A duplicate email is a ValidationError.
	CreateUser(ctx context.Context, name, email string) (*domain.User, error)

	// GetUser retrieves a user by ID
	GetUser(ctx context.Context, id int64) (*domain.User, error)

	// ListUsers returns every user ordered by id.
	ListUsers(ctx context.Context) ([]*domain.User, error)

	// UpdateUser applies the present fields of input.
	// Note: This uses the pattern of first retrieving the full user, then updating the specific fields,
	// and finally passing the complete user object back to the store layer
	UpdateUser(ctx context.Context, id int64, input UpdateUserInput) (*domain.User, error)

	// DeleteUser deletes a user. Users who created tasks cannot be deleted.
	DeleteUser(ctx context.Context, id int64) error
}

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	users  store.UserStore
	logger *slog.Logger
}

// NewUserService creates a new UserService
func NewUserService(users store.UserStore, logger *slog.Logger) UserService {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserServiceImpl{
		users:  users,
		logger: logger.With("component", "user_service"),
	}
}

// CreateUser implements UserService.CreateUser.
func (s *UserServiceImpl) CreateUser(ctx context.Context, name, email string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := domain.NewUser(name, email)
	if err != nil {
		return nil, err
	}

	if err := s.ensureEmailAvailable(ctx, user.Email, 0); err != nil {
		return nil, err
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			log.Debug("email registered concurrently")
			return nil, emailTakenError()
		}
		log.Error("failed to save user", "error", err)
		return nil, translateStoreError(err, "user", 0, "create user")
	}

	log.Info("user created", "user_id", user.ID)
	return user, nil
}

// GetUser implements UserService.GetUser.
func (s *UserServiceImpl) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, translateStoreError(err, "user", id, "get user")
	}
	return user, nil
}

// ListUsers implements UserService.ListUsers.
func (s *UserServiceImpl) ListUsers(ctx context.Context) ([]*domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, translateStoreError(err, "user", 0, "list users")
	}
	return users, nil
}

// UpdateUser implements UserService.UpdateUser.
func (s *UserServiceImpl) UpdateUser(ctx context.Context, id int64, input UpdateUserInput) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger).With("user_id", id)

	current, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, translateStoreError(err, "user", id, "load user")
	}

	updated := *current
	if input.Name != nil {
		updated.Name = strings.TrimSpace(*input.Name)
	}
	if input.Email != nil {
		updated.Email = domain.NormalizeEmail(*input.Email)
	}
	if err := updated.Validate(); err != nil {
		return nil, err
	}

	if updated.Email != current.Email {
		if err := s.ensureEmailAvailable(ctx, updated.Email, id); err != nil {
			return nil, err
		}
	}

	if err := s.users.Update(ctx, &updated); err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			return nil, emailTakenError()
		}
		log.Error("failed to update user", "error", err)
		return nil, translateStoreError(err, "user", id, "update user")
	}

	log.Info("user updated")
	return &updated, nil
}

// DeleteUser implements UserService.DeleteUser.
func (s *UserServiceImpl) DeleteUser(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger).With("user_id", id)

	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrReferenced) {
			log.Info("refused to delete user who created tasks")
			return domain.NewConflictError("user", id, "user has created tasks and cannot be deleted")
		}
		return translateStoreError(err, "user", id, "delete user")
	}

	log.Info("user deleted")
	return nil
}

// ensureEmailAvailable returns a ValidationError when email belongs to a
// user other than selfID. Pass 0 when there is no current user.
func (s *UserServiceImpl) ensureEmailAvailable(ctx context.Context, email string, selfID int64) error {
	existing, err := s.users.GetByEmail(ctx, email)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return nil
	case err != nil:
		return translateStoreError(err, "user", selfID, "look up email")
	case existing.ID != selfID:
		return emailTakenError()
	}
	return nil
}
