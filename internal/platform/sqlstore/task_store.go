package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/todolist-api/internal/domain"
	"github.com/phrazzld/todolist-api/internal/platform/logger"
	"github.com/phrazzld/todolist-api/internal/store"
)

const taskColumns = `id, title, description, status, category_id, assignee_id, created_by_id,
	due_date, completed_at, version, created_at, updated_at`

// TaskStore implements store.TaskStore on top of sqlx.
type TaskStore struct {
	db     store.DBTX
	logger *slog.Logger
	now    func() time.Time
}

// NewTaskStore creates a TaskStore. db may be a *sqlx.DB or a *sqlx.Tx.
// If logger is nil, the default logger is used.
func NewTaskStore(db store.DBTX, logger *slog.Logger) *TaskStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

var _ store.TaskStore = (*TaskStore)(nil)

// WithTx implements store.TaskStore.WithTx.
func (s *TaskStore) WithTx(tx *sqlx.Tx) store.TaskStore {
	return &TaskStore{db: tx, logger: s.logger, now: s.now}
}

// Create implements store.TaskStore.Create.
func (s *TaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		return err
	}

	if task.CreatedAt.IsZero() {
		task.CreatedAt = s.now()
	}
	if task.UpdatedAt.IsZero() {
		task.UpdatedAt = task.CreatedAt
	}

	query := s.db.Rebind(`
		INSERT INTO tasks (title, description, status, category_id, assignee_id, created_by_id,
			due_date, completed_at, version, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`)

	err := s.db.QueryRowxContext(ctx, query,
		task.Title,
		task.Description,
		string(task.Status),
		task.CategoryID,
		task.AssigneeID,
		task.CreatedByID,
		dateArg(task.DueDate),
		task.CompletedAt,
		task.Version,
		task.CreatedAt,
		task.UpdatedAt,
	).Scan(&task.ID)
	if err != nil {
		mapped := MapError(err)
		if errors.Is(mapped, store.ErrReferenced) {
			log.Warn("task references a missing row",
				slog.String("error", err.Error()),
				slog.Int64("created_by_id", task.CreatedByID))
		} else {
			log.Error("failed to create task", slog.String("error", err.Error()))
		}
		return mapped
	}

	log.Debug("task created",
		slog.Int64("task_id", task.ID),
		slog.Int64("created_by_id", task.CreatedByID))
	return nil
}

// GetByID implements store.TaskStore.GetByID.
func (s *TaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	var task domain.Task
	query := s.db.Rebind(`SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`)
	if err := sqlx.GetContext(ctx, s.db, &task, query, id); err != nil {
		mapped := mapEntityError(err, store.ErrTaskNotFound, nil)
		if !store.IsNotFoundError(mapped) {
			logger.FromContextOrDefault(ctx, s.logger).Error("failed to get task",
				slog.String("error", err.Error()),
				slog.Int64("task_id", id))
		}
		return nil, mapped
	}
	return &task, nil
}

// List implements store.TaskStore.List.
func (s *TaskStore) List(ctx context.Context, filter store.TaskFilter) ([]*domain.Task, error) {
	var (
		conditions []string
		args       []any
	)
	if filter.Status != nil {
		conditions = append(conditions, "status = ?")
		args = append(args, string(*filter.Status))
	}
	if filter.AssigneeID != nil {
		conditions = append(conditions, "assignee_id = ?")
		args = append(args, *filter.AssigneeID)
	}

	query := `SELECT ` + taskColumns + ` FROM tasks`
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY id`

	tasks := []*domain.Task{}
	if err := sqlx.SelectContext(ctx, s.db, &tasks, s.db.Rebind(query), args...); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list tasks",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	return tasks, nil
}

// Update implements store.TaskStore.Update.
//
// The version check and increment happen in one conditional UPDATE, so two
// writers holding the same expectedVersion cannot both succeed.
func (s *TaskStore) Update(ctx context.Context, task *domain.Task, expectedVersion int) error {
	log := logger.FromContextOrDefault(ctx, s.logger).With(
		slog.Int64("task_id", task.ID),
		slog.Int("expected_version", expectedVersion))

	if err := task.Validate(); err != nil {
		return err
	}

	updatedAt := s.now()
	query := s.db.Rebind(`
		UPDATE tasks
		SET title = ?, description = ?, status = ?, category_id = ?, assignee_id = ?,
			due_date = ?, completed_at = ?, version = version + 1, updated_at = ?
		WHERE id = ? AND version = ?
		RETURNING version
	`)

	var newVersion int
	err := s.db.QueryRowxContext(ctx, query,
		task.Title,
		task.Description,
		string(task.Status),
		task.CategoryID,
		task.AssigneeID,
		dateArg(task.DueDate),
		task.CompletedAt,
		updatedAt,
		task.ID,
		expectedVersion,
	).Scan(&newVersion)

	if errors.Is(err, sql.ErrNoRows) {
		return s.explainMissedUpdate(ctx, log, task.ID, expectedVersion)
	}
	if err != nil {
		mapped := MapError(err)
		if errors.Is(mapped, store.ErrReferenced) {
			log.Warn("task update references a missing row", slog.String("error", err.Error()))
		} else {
			log.Error("failed to update task", slog.String("error", err.Error()))
		}
		return mapped
	}

	task.Version = newVersion
	task.UpdatedAt = updatedAt

	log.Debug("task updated", slog.Int("version", newVersion))
	return nil
}

// explainMissedUpdate tells a missing task apart from a stale version after
// the conditional UPDATE matched no row.
func (s *TaskStore) explainMissedUpdate(ctx context.Context, log *slog.Logger, id int64, expected int) error {
	var current int
	query := s.db.Rebind(`SELECT version FROM tasks WHERE id = ?`)
	err := s.db.QueryRowxContext(ctx, query, id).Scan(&current)
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrTaskNotFound
	}
	if err != nil {
		log.Error("failed to read task version", slog.String("error", err.Error()))
		return MapError(err)
	}

	log.Info("task update rejected, version moved on", slog.Int("current_version", current))
	return &store.VersionConflictError{Entity: "task", ID: id, Expected: expected, Actual: current}
}

// dateArg converts an optional date to a driver value.
func dateArg(d *domain.Date) any {
	if d == nil {
		return nil
	}
	return d.Time()
}
