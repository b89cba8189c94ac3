package mocks

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/todolist-api/internal/domain"
	"github.com/phrazzld/todolist-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// CategoryStore is a mock of store.CategoryStore.
type CategoryStore struct {
	mock.Mock
}

var _ store.CategoryStore = (*CategoryStore)(nil)

// Create sets category.ID from the optional second return value.
func (m *CategoryStore) Create(ctx context.Context, category *domain.Category) error {
	args := m.Called(ctx, category)
	if len(args) > 1 {
		if id, ok := args.Get(1).(int64); ok {
			category.ID = id
		}
	}
	return args.Error(0)
}

func (m *CategoryStore) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	args := m.Called(ctx, id)
	if category, ok := args.Get(0).(*domain.Category); ok {
		return category, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CategoryStore) GetByName(ctx context.Context, name string) (*domain.Category, error) {
	args := m.Called(ctx, name)
	if category, ok := args.Get(0).(*domain.Category); ok {
		return category, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CategoryStore) List(ctx context.Context) ([]*domain.Category, error) {
	args := m.Called(ctx)
	if categories, ok := args.Get(0).([]*domain.Category); ok {
		return categories, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CategoryStore) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *CategoryStore) WithTx(tx *sqlx.Tx) store.CategoryStore {
	if !hasExpectation(&m.Mock, "WithTx") {
		return m
	}
	args := m.Called(tx)
	if ret, ok := args.Get(0).(store.CategoryStore); ok {
		return ret
	}
	return m
}
