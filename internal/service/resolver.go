package service

import (
	"context"

	"github.com/phrazzld/todolist-api/internal/domain"
	"github.com/phrazzld/todolist-api/internal/store"
)

// EntityResolver turns user and category ids into entities, reporting
// domain.NotFoundError for ids that do not exist.
type EntityResolver struct {
	users      store.UserStore
	categories store.CategoryStore
}

// NewEntityResolver creates an EntityResolver over the given stores.
func NewEntityResolver(users store.UserStore, categories store.CategoryStore) *EntityResolver {
	return &EntityResolver{users: users, categories: categories}
}

// ResolveUser returns the user with id.
func (r *EntityResolver) ResolveUser(ctx context.Context, id int64) (*domain.User, error) {
	user, err := r.users.GetByID(ctx, id)
	if err != nil {
		return nil, translateStoreError(err, "user", id, "resolve user")
	}
	return user, nil
}

// ResolveCategory returns the category with id.
func (r *EntityResolver) ResolveCategory(ctx context.Context, id int64) (*domain.Category, error) {
	category, err := r.categories.GetByID(ctx, id)
	if err != nil {
		return nil, translateStoreError(err, "category", id, "resolve category")
	}
	return category, nil
}
