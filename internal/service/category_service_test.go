package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/phrazzld/todolist-api/internal/domain"
	"github.com/phrazzld/todolist-api/internal/mocks"
	"github.com/phrazzld/todolist-api/internal/service"
	"github.com/phrazzld/todolist-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCategoryService_CreateCategory(t *testing.T) {
	ctx := context.Background()

	t.Run("new name", func(t *testing.T) {
		categories := new(mocks.CategoryStore)
		categories.On("GetByName", mock.Anything, "Work").Return(nil, store.ErrCategoryNotFound)
		categories.On("Create", mock.Anything, mock.MatchedBy(func(c *domain.Category) bool {
			return c.Name == "Work"
		})).Return(nil, int64(1))

		svc := service.NewCategoryService(categories, discardLogger())
		got, err := svc.CreateCategory(ctx, "  Work ")
		require.NoError(t, err)
		assert.Equal(t, &domain.Category{ID: 1, Name: "Work"}, got)
		categories.AssertExpectations(t)
	})

	t.Run("existing name is returned", func(t *testing.T) {
		categories := new(mocks.CategoryStore)
		categories.On("GetByName", mock.Anything, "work").Return(&domain.Category{ID: 1, Name: "Work"}, nil)

		svc := service.NewCategoryService(categories, discardLogger())
		got, err := svc.CreateCategory(ctx, "work ")
		require.NoError(t, err)
		assert.Equal(t, int64(1), got.ID)
		assert.Equal(t, "Work", got.Name)
		categories.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("blank name", func(t *testing.T) {
		svc := service.NewCategoryService(new(mocks.CategoryStore), discardLogger())
		_, err := svc.CreateCategory(ctx, " \t ")
		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.ErrorIs(t, err, domain.ErrEmptyName)
	})

	// Both callers miss the lookup; the loser hits the unique index.
	t.Run("concurrent create of the same name", func(t *testing.T) {
		categories := new(mocks.CategoryStore)
		categories.On("GetByName", mock.Anything, "Work").Return(nil, store.ErrCategoryNotFound)
		categories.On("Create", mock.Anything, mock.Anything).Return(store.ErrCategoryNameExists)

		svc := service.NewCategoryService(categories, discardLogger())
		_, err := svc.CreateCategory(ctx, "Work")
		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("lookup failure", func(t *testing.T) {
		categories := new(mocks.CategoryStore)
		dbErr := errors.New("timeout")
		categories.On("GetByName", mock.Anything, "Work").Return(nil, dbErr)

		svc := service.NewCategoryService(categories, discardLogger())
		_, err := svc.CreateCategory(ctx, "Work")
		assert.ErrorIs(t, err, dbErr)
	})
}

func TestCategoryService_ListAndDelete(t *testing.T) {
	ctx := context.Background()
	categories := new(mocks.CategoryStore)
	svc := service.NewCategoryService(categories, discardLogger())

	all := []*domain.Category{{ID: 1, Name: "Work"}, {ID: 2, Name: "Home"}}
	categories.On("List", mock.Anything).Return(all, nil)
	categories.On("Delete", mock.Anything, int64(1)).Return(nil)
	categories.On("Delete", mock.Anything, int64(9)).Return(store.ErrCategoryNotFound)

	got, err := svc.ListCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, all, got)

	require.NoError(t, svc.DeleteCategory(ctx, 1))

	err = svc.DeleteCategory(ctx, 9)
	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "category", nf.Entity)
	assert.Equal(t, int64(9), nf.ID)

	categories.AssertExpectations(t)
}
