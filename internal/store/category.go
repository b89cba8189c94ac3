package store

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/todolist-api/internal/domain"
)

// CategoryStore defines the interface for category data persistence.
type CategoryStore interface {
	// Create inserts the category and sets its ID.
	// Returns ErrCategoryNameExists if the name is already taken.
	Create(ctx context.Context, category *domain.Category) error

	// GetByID retrieves a category by ID.
	// Returns ErrCategoryNotFound if it does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Category, error)

	// GetByName retrieves a category by name, compared case-insensitively.
	// Returns ErrCategoryNotFound if no category has that name.
	GetByName(ctx context.Context, name string) (*domain.Category, error)

	// List returns all categories ordered by ID.
	List(ctx context.Context) ([]*domain.Category, error)

	// Delete removes a category. Tasks that referenced it keep existing
	// with no category. Returns ErrCategoryNotFound if it does not exist.
	Delete(ctx context.Context, id int64) error

	// WithTx returns a CategoryStore that runs on the provided transaction.
	WithTx(tx *sqlx.Tx) CategoryStore
}
