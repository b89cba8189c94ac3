package sqlstore

import (
	"context"
	"log/slog"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/todolist-api/internal/domain"
	"github.com/phrazzld/todolist-api/internal/platform/logger"
	"github.com/phrazzld/todolist-api/internal/store"
)

// CategoryStore implements store.CategoryStore on top of sqlx.
type CategoryStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewCategoryStore creates a CategoryStore. db may be a *sqlx.DB or a *sqlx.Tx.
// If logger is nil, the default logger is used.
func NewCategoryStore(db store.DBTX, logger *slog.Logger) *CategoryStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CategoryStore{
		db:     db,
		logger: logger.With(slog.String("component", "category_store")),
	}
}

var _ store.CategoryStore = (*CategoryStore)(nil)

// WithTx implements store.CategoryStore.WithTx.
func (s *CategoryStore) WithTx(tx *sqlx.Tx) store.CategoryStore {
	return &CategoryStore{db: tx, logger: s.logger}
}

// Create implements store.CategoryStore.Create.
func (s *CategoryStore) Create(ctx context.Context, category *domain.Category) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := category.Validate(); err != nil {
		return err
	}

	query := s.db.Rebind(`INSERT INTO categories (name) VALUES (?) RETURNING id`)
	if err := s.db.QueryRowxContext(ctx, query, category.Name).Scan(&category.ID); err != nil {
		mapped := mapEntityError(err, nil, store.ErrCategoryNameExists)
		if !store.IsDuplicateError(mapped) {
			log.Error("failed to create category", slog.String("error", err.Error()))
		}
		return mapped
	}

	log.Debug("category created",
		slog.Int64("category_id", category.ID),
		slog.String("name", category.Name))
	return nil
}

// GetByID implements store.CategoryStore.GetByID.
func (s *CategoryStore) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	var category domain.Category
	query := s.db.Rebind(`SELECT id, name FROM categories WHERE id = ?`)
	if err := sqlx.GetContext(ctx, s.db, &category, query, id); err != nil {
		return nil, s.readError(ctx, err, "get category by id")
	}
	return &category, nil
}

// GetByName implements store.CategoryStore.GetByName.
func (s *CategoryStore) GetByName(ctx context.Context, name string) (*domain.Category, error) {
	var category domain.Category
	query := s.db.Rebind(`SELECT id, name FROM categories WHERE lower(name) = lower(?)`)
	if err := sqlx.GetContext(ctx, s.db, &category, query, strings.TrimSpace(name)); err != nil {
		return nil, s.readError(ctx, err, "get category by name")
	}
	return &category, nil
}

// List implements store.CategoryStore.List.
func (s *CategoryStore) List(ctx context.Context) ([]*domain.Category, error) {
	categories := []*domain.Category{}
	if err := sqlx.SelectContext(ctx, s.db, &categories, `SELECT id, name FROM categories ORDER BY id`); err != nil {
		return nil, s.readError(ctx, err, "list categories")
	}
	return categories, nil
}

// Delete implements store.CategoryStore.Delete.
func (s *CategoryStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := s.db.Rebind(`DELETE FROM categories WHERE id = ?`)
	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		log.Error("failed to delete category",
			slog.String("error", err.Error()),
			slog.Int64("category_id", id))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrCategoryNotFound); err != nil {
		return err
	}

	log.Debug("category deleted", slog.Int64("category_id", id))
	return nil
}

func (s *CategoryStore) readError(ctx context.Context, err error, op string) error {
	mapped := mapEntityError(err, store.ErrCategoryNotFound, nil)
	if !store.IsNotFoundError(mapped) {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to "+op,
			slog.String("error", err.Error()))
	}
	return mapped
}
