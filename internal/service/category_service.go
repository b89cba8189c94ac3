package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/phrazzld/todolist-api/internal/domain"
	"github.com/phrazzld/todolist-api/internal/platform/logger"
	"github.com/phrazzld/todolist-api/internal/store"
)

// CategoryService provides category operations.
type CategoryService interface {
	// CreateCategory returns the category whose name matches name
	// case-insensitively after trimming, creating it when none exists.
	CreateCategory(ctx context.Context, name string) (*domain.Category, error)

	// ListCategories returns every category ordered by id.
	ListCategories(ctx context.Context) ([]*domain.Category, error)

	// DeleteCategory removes a category. Tasks that referenced it keep
	// existing without a category.
	DeleteCategory(ctx context.Context, id int64) error
}

// CategoryServiceImpl implements the CategoryService interface
type CategoryServiceImpl struct {
	categories store.CategoryStore
	logger     *slog.Logger
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categories store.CategoryStore, logger *slog.Logger) CategoryService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CategoryServiceImpl{
		categories: categories,
		logger:     logger.With("component", "category_service"),
	}
}

// CreateCategory implements CategoryService.CreateCategory.
//
// The lookup and the insert are separate statements. Two concurrent creates
// of the same new name can both miss the lookup; the unique index rejects
// the second insert, which is reported as a ConflictError.
func (s *CategoryServiceImpl) CreateCategory(ctx context.Context, name string) (*domain.Category, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	category, err := domain.NewCategory(name)
	if err != nil {
		return nil, err
	}

	existing, err := s.categories.GetByName(ctx, category.Name)
	if err == nil {
		log.Debug("category already exists", "category_id", existing.ID, "name", existing.Name)
		return existing, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		log.Error("failed to look up category", "error", err, "name", category.Name)
		return nil, translateStoreError(err, "category", 0, "look up category")
	}

	if err := s.categories.Create(ctx, category); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			log.Info("category created concurrently", "name", category.Name)
			return nil, domain.NewConflictError("category", 0, "a category named "+category.Name+" was created concurrently")
		}
		log.Error("failed to create category", "error", err, "name", category.Name)
		return nil, translateStoreError(err, "category", 0, "create category")
	}

	log.Info("category created", "category_id", category.ID, "name", category.Name)
	return category, nil
}

// ListCategories implements CategoryService.ListCategories.
func (s *CategoryServiceImpl) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, translateStoreError(err, "category", 0, "list categories")
	}
	return categories, nil
}

// DeleteCategory implements CategoryService.DeleteCategory.
func (s *CategoryServiceImpl) DeleteCategory(ctx context.Context, id int64) error {
	if err := s.categories.Delete(ctx, id); err != nil {
		return translateStoreError(err, "category", id, "delete category")
	}
	logger.FromContextOrDefault(ctx, s.logger).Info("category deleted", "category_id", id)
	return nil
}
