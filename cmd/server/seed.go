package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/todolist-api/internal/domain"
	"github.com/phrazzld/todolist-api/internal/platform/logger"
	"github.com/phrazzld/todolist-api/internal/platform/sqlstore"
	"github.com/phrazzld/todolist-api/internal/store"
)

// Seed data. On an empty database the seeded user gets id 1, which is the
// default task creator.
const (
	seedUserName  = "Demo User"
	seedUserEmail = "demo@example.com"
)

var seedCategories = []string{"Work", "Personal"}

// seedDatabase creates the demo user and starter categories. Rows that
// already exist are left alone, so running it twice is harmless.
func seedDatabase(ctx context.Context, db *sqlx.DB, log *slog.Logger) error {
	ctx = logger.WithLogger(ctx, log)

	return store.RunInTransaction(ctx, db, func(ctx context.Context, tx *sqlx.Tx) error {
		users := sqlstore.NewUserStore(tx, log)
		categories := sqlstore.NewCategoryStore(tx, log)

		if err := seedUser(ctx, users, log); err != nil {
			return err
		}
		for _, name := range seedCategories {
			if err := seedCategory(ctx, categories, name, log); err != nil {
				return err
			}
		}
		return nil
	})
}

func seedUser(ctx context.Context, users store.UserStore, log *slog.Logger) error {
	existing, err := users.GetByEmail(ctx, seedUserEmail)
	if err == nil {
		log.Info("seed user already present", "user_id", existing.ID)
		return nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("look up seed user: %w", err)
	}

	user, err := domain.NewUser(seedUserName, seedUserEmail)
	if err != nil {
		return err
	}
	if err := users.Create(ctx, user); err != nil {
		return fmt.Errorf("create seed user: %w", err)
	}
	log.Info("seeded user", "user_id", user.ID)
	return nil
}

func seedCategory(ctx context.Context, categories store.CategoryStore, name string, log *slog.Logger) error {
	if _, err := categories.GetByName(ctx, name); err == nil {
		return nil
	} else if !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("look up category %q: %w", name, err)
	}

	category, err := domain.NewCategory(name)
	if err != nil {
		return err
	}
	if err := categories.Create(ctx, category); err != nil {
		return fmt.Errorf("create category %q: %w", name, err)
	}
	log.Info("seeded category", "category_id", category.ID, "name", name)
	return nil
}
