package store

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/todolist-api/internal/domain"
)

// TaskFilter narrows List. Nil fields do not filter.
type TaskFilter struct {
	Status     *domain.TaskStatus
	AssigneeID *int64
}

// TaskStore defines the interface for task data persistence.
type TaskStore interface {
	// Create inserts the task and sets its ID. The task's Version is stored
	// as given (new tasks start at 0).
	// Returns ErrReferenced if a category, assignee or creator id does not exist.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by ID.
	// Returns ErrTaskNotFound if it does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Task, error)

	// List returns the tasks matching filter, ordered by ID.
	List(ctx context.Context, filter TaskFilter) ([]*domain.Task, error)

	// Update writes every mutable field of task in a single conditional
	// statement that only applies while the stored version equals
	// expectedVersion. On success the stored version is incremented by one,
	// updated_at is refreshed, and task.Version and task.UpdatedAt are set
	// to the stored values.
	//
	// Returns ErrTaskNotFound if the task does not exist, a
	// *VersionConflictError (unwrapping to ErrVersionConflict) if the version
	// moved on, and ErrReferenced if a referenced row does not exist.
	Update(ctx context.Context, task *domain.Task, expectedVersion int) error

	// WithTx returns a TaskStore that runs on the provided transaction.
	WithTx(tx *sqlx.Tx) TaskStore
}
