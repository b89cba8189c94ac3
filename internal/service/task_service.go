package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/phrazzld/todolist-api/internal/domain"
	"github.com/phrazzld/todolist-api/internal/events"
	"github.com/phrazzld/todolist-api/internal/platform/logger"
	"github.com/phrazzld/todolist-api/internal/store"
)

// CreateTaskInput carries the fields accepted when creating a task.
// A nil CreatorID falls back to the configured default creator.
type CreateTaskInput struct {
	Title       string
	Description *string
	CategoryID  *int64
	AssigneeID  *int64
	DueDate     *domain.Date
	CreatorID   *int64
}

// TaskPatch is a partial update. Version is the optimistic-lock token and
// is required; every other nil field leaves the stored value unchanged.
type TaskPatch struct {
	Version     *int
	Title       *string
	Description *string
	CategoryID  *int64
	AssigneeID  *int64
	Status      *domain.TaskStatus
	DueDate     *domain.Date
}

// TaskDetails is a task together with the names of the rows it references.
type TaskDetails struct {
	*domain.Task
	CategoryName  *string
	AssigneeName  *string
	CreatedByName *string
}

// TaskService manages the task lifecycle.
type TaskService interface {
	// CreateTask validates input, resolves every referenced row and stores
	// a PENDING task at version 0.
	CreateTask(ctx context.Context, input CreateTaskInput) (*TaskDetails, error)

	// UpdateTask applies patch to the task with id if patch.Version equals
	// the stored version. The stored version is incremented by one. A stale
	// token yields a domain.ConflictError and nothing is written.
	UpdateTask(ctx context.Context, id int64, patch TaskPatch) (*TaskDetails, error)

	// GetTask returns a single task.
	GetTask(ctx context.Context, id int64) (*TaskDetails, error)

	// ListTasks returns every task, or only those with the given status.
	ListTasks(ctx context.Context, status *domain.TaskStatus) ([]*TaskDetails, error)

	// ListTasksByAssignee returns the tasks assigned to an existing user.
	ListTasksByAssignee(ctx context.Context, userID int64) ([]*TaskDetails, error)
}

// TaskServiceImpl implements the TaskService interface
type TaskServiceImpl struct {
	tasks            store.TaskStore
	users            store.UserStore
	categories       store.CategoryStore
	resolver         *EntityResolver
	emitter          events.EventEmitter
	defaultCreatorID int64
	logger           *slog.Logger
	now              func() time.Time
}

// NewTaskService creates a TaskService. emitter may be nil, in which case
// events are discarded.
func NewTaskService(
	tasks store.TaskStore,
	users store.UserStore,
	categories store.CategoryStore,
	emitter events.EventEmitter,
	defaultCreatorID int64,
	logger *slog.Logger,
) TaskService {
	if logger == nil {
		logger = slog.Default()
	}
	if emitter == nil {
		emitter = events.NopEmitter{}
	}
	return &TaskServiceImpl{
		tasks:            tasks,
		users:            users,
		categories:       categories,
		resolver:         NewEntityResolver(users, categories),
		emitter:          emitter,
		defaultCreatorID: defaultCreatorID,
		logger:           logger.With("component", "task_service"),
		now:              func() time.Time { return time.Now().UTC() },
	}
}

// CreateTask implements TaskService.CreateTask.
func (s *TaskServiceImpl) CreateTask(ctx context.Context, input CreateTaskInput) (*TaskDetails, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	creatorID := s.defaultCreatorID
	if input.CreatorID != nil {
		creatorID = *input.CreatorID
	}

	task, err := domain.NewTask(input.Title, input.Description, creatorID)
	if err != nil {
		log.Debug("rejected task input", "error", err)
		return nil, err
	}

	creator, err := s.resolver.ResolveUser(ctx, creatorID)
	if err != nil {
		return nil, err
	}
	details := &TaskDetails{Task: task, CreatedByName: &creator.Name}

	if input.CategoryID != nil {
		category, err := s.resolver.ResolveCategory(ctx, *input.CategoryID)
		if err != nil {
			return nil, err
		}
		task.CategoryID = &category.ID
		details.CategoryName = &category.Name
	}

	if input.AssigneeID != nil {
		assignee, err := s.resolver.ResolveUser(ctx, *input.AssigneeID)
		if err != nil {
			return nil, err
		}
		task.AssigneeID = &assignee.ID
		details.AssigneeName = &assignee.Name
	}

	task.DueDate = input.DueDate

	if err := s.tasks.Create(ctx, task); err != nil {
		log.Error("failed to save task", "error", err, "created_by_id", creatorID)
		return nil, translateStoreError(err, "task", task.ID, "create task")
	}

	log.Info("task created",
		"task_id", task.ID,
		"created_by_id", creatorID)
	s.emit(ctx, events.TaskCreated, task)

	return details, nil
}

// UpdateTask implements TaskService.UpdateTask.
//
// The patch is applied to a copy of the loaded row. Nothing is written
// unless every field validates and resolves, and the write itself only
// succeeds while the stored version still equals the token.
func (s *TaskServiceImpl) UpdateTask(ctx context.Context, id int64, patch TaskPatch) (*TaskDetails, error) {
	log := logger.FromContextOrDefault(ctx, s.logger).With("task_id", id)

	if patch.Version == nil {
		return nil, domain.NewValidationError("version", "is required", nil)
	}
	expected := *patch.Version

	current, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, translateStoreError(err, "task", id, "load task")
	}

	if current.Version != expected {
		log.Info("rejected update with stale version",
			"expected_version", expected,
			"current_version", current.Version)
		return nil, domain.NewVersionConflictError("task", id, expected, current.Version)
	}

	next, err := s.applyPatch(ctx, current, patch)
	if err != nil {
		return nil, err
	}

	if err := s.tasks.Update(ctx, next, expected); err != nil {
		if errors.Is(err, store.ErrVersionConflict) {
			log.Info("concurrent update won the race", "expected_version", expected)
		} else if !errors.Is(err, store.ErrNotFound) {
			log.Error("failed to update task", "error", err)
		}
		return nil, translateStoreError(err, "task", id, "update task")
	}

	log.Info("task updated", "version", next.Version)

	eventType := events.TaskUpdated
	if patch.Status != nil && *patch.Status == domain.TaskStatusCompleted {
		eventType = events.TaskCompleted
	}
	s.emit(ctx, eventType, next)

	return s.describe(ctx, next, newNameCache())
}

// applyPatch returns a copy of current with every present field of patch applied.
func (s *TaskServiceImpl) applyPatch(ctx context.Context, current *domain.Task, patch TaskPatch) (*domain.Task, error) {
	next := current.Clone()

	if patch.Title != nil {
		if err := next.SetTitle(*patch.Title); err != nil {
			return nil, err
		}
	}

	if patch.Description != nil {
		description := *patch.Description
		next.Description = &description
	}

	if patch.CategoryID != nil {
		category, err := s.resolver.ResolveCategory(ctx, *patch.CategoryID)
		if err != nil {
			return nil, err
		}
		next.CategoryID = &category.ID
	}

	if patch.AssigneeID != nil {
		assignee, err := s.resolver.ResolveUser(ctx, *patch.AssigneeID)
		if err != nil {
			return nil, err
		}
		next.AssigneeID = &assignee.ID
	}

	if patch.Status != nil {
		if err := next.SetStatus(*patch.Status, s.now()); err != nil {
			return nil, err
		}
	}

	if patch.DueDate != nil {
		due := *patch.DueDate
		next.DueDate = &due
	}

	return next, nil
}

// GetTask implements TaskService.GetTask.
func (s *TaskServiceImpl) GetTask(ctx context.Context, id int64) (*TaskDetails, error) {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, translateStoreError(err, "task", id, "get task")
	}
	return s.describe(ctx, task, newNameCache())
}

// ListTasks implements TaskService.ListTasks.
func (s *TaskServiceImpl) ListTasks(ctx context.Context, status *domain.TaskStatus) ([]*TaskDetails, error) {
	if status != nil && !status.Valid() {
		return nil, domain.NewValidationError("status", "must be one of PENDING, IN_PROGRESS, COMPLETED", domain.ErrInvalidStatus)
	}
	return s.list(ctx, store.TaskFilter{Status: status})
}

// ListTasksByAssignee implements TaskService.ListTasksByAssignee.
func (s *TaskServiceImpl) ListTasksByAssignee(ctx context.Context, userID int64) ([]*TaskDetails, error) {
	if _, err := s.resolver.ResolveUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.list(ctx, store.TaskFilter{AssigneeID: &userID})
}

func (s *TaskServiceImpl) list(ctx context.Context, filter store.TaskFilter) ([]*TaskDetails, error) {
	tasks, err := s.tasks.List(ctx, filter)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list tasks", "error", err)
		return nil, translateStoreError(err, "task", 0, "list tasks")
	}

	names := newNameCache()
	views := make([]*TaskDetails, 0, len(tasks))
	for _, task := range tasks {
		view, err := s.describe(ctx, task, names)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

// nameCache memoizes name lookups within one call. A nil entry records a
// row that no longer exists.
type nameCache struct {
	users      map[int64]*string
	categories map[int64]*string
}

func newNameCache() *nameCache {
	return &nameCache{users: map[int64]*string{}, categories: map[int64]*string{}}
}

// describe resolves the names a task view shows.
func (s *TaskServiceImpl) describe(ctx context.Context, task *domain.Task, names *nameCache) (*TaskDetails, error) {
	details := &TaskDetails{Task: task}

	var err error
	if details.CreatedByName, err = s.userName(ctx, task.CreatedByID, names); err != nil {
		return nil, err
	}
	if task.AssigneeID != nil {
		if details.AssigneeName, err = s.userName(ctx, *task.AssigneeID, names); err != nil {
			return nil, err
		}
	}
	if task.CategoryID != nil {
		if details.CategoryName, err = s.categoryName(ctx, *task.CategoryID, names); err != nil {
			return nil, err
		}
	}
	return details, nil
}

func (s *TaskServiceImpl) userName(ctx context.Context, id int64, names *nameCache) (*string, error) {
	if name, ok := names.users[id]; ok {
		return name, nil
	}
	user, err := s.users.GetByID(ctx, id)
	switch {
	case errors.Is(err, store.ErrNotFound):
		names.users[id] = nil
		return nil, nil
	case err != nil:
		return nil, translateStoreError(err, "user", id, "load user name")
	}
	names.users[id] = &user.Name
	return &user.Name, nil
}

func (s *TaskServiceImpl) categoryName(ctx context.Context, id int64, names *nameCache) (*string, error) {
	if name, ok := names.categories[id]; ok {
		return name, nil
	}
	category, err := s.categories.GetByID(ctx, id)
	switch {
	case errors.Is(err, store.ErrNotFound):
		names.categories[id] = nil
		return nil, nil
	case err != nil:
		return nil, translateStoreError(err, "category", id, "load category name")
	}
	names.categories[id] = &category.Name
	return &category.Name, nil
}

// emit publishes an event for a committed change. Handler failures are
// logged and never undo the change.
func (s *TaskServiceImpl) emit(ctx context.Context, eventType string, task *domain.Task) {
	if err := s.emitter.EmitEvent(ctx, events.NewTaskEvent(eventType, task)); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Warn("failed to emit task event",
			"error", err,
			"event_type", eventType,
			"task_id", task.ID)
	}
}
