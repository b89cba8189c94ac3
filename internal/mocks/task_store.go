package mocks

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/todolist-api/internal/domain"
	"github.com/phrazzld/todolist-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// TaskStore is a mock of store.TaskStore.
type TaskStore struct {
	mock.Mock
}

var _ store.TaskStore = (*TaskStore)(nil)

// Create sets task.ID from the optional second return value.
func (m *TaskStore) Create(ctx context.Context, task *domain.Task) error {
	args := m.Called(ctx, task)
	if len(args) > 1 {
		if id, ok := args.Get(1).(int64); ok {
			task.ID = id
		}
	}
	return args.Error(0)
}

func (m *TaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	args := m.Called(ctx, id)
	if task, ok := args.Get(0).(*domain.Task); ok {
		return task, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TaskStore) List(ctx context.Context, filter store.TaskFilter) ([]*domain.Task, error) {
	args := m.Called(ctx, filter)
	if tasks, ok := args.Get(0).([]*domain.Task); ok {
		return tasks, args.Error(1)
	}
	return nil, args.Error(1)
}

// Update bumps task.Version like the real store when the expectation
// returns nil.
func (m *TaskStore) Update(ctx context.Context, task *domain.Task, expectedVersion int) error {
	args := m.Called(ctx, task, expectedVersion)
	if err := args.Error(0); err != nil {
		return err
	}
	task.Version = expectedVersion + 1
	return nil
}

func (m *TaskStore) WithTx(tx *sqlx.Tx) store.TaskStore {
	if !hasExpectation(&m.Mock, "WithTx") {
		return m
	}
	args := m.Called(tx)
	if ret, ok := args.Get(0).(store.TaskStore); ok {
		return ret
	}
	return m
}
