package sqlstore

import (
	"context"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/todolist-api/internal/domain"
	"github.com/phrazzld/todolist-api/internal/platform/logger"
	"github.com/phrazzld/todolist-api/internal/store"
)

const userColumns = `id, name, email, created_at`

// UserStore implements store.UserStore on top of sqlx.
type UserStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewUserStore creates a UserStore. db may be a *sqlx.DB or a *sqlx.Tx.
// If logger is nil, the default logger is used.
func NewUserStore(db store.DBTX, logger *slog.Logger) *UserStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &UserStore{
		db:     db,
		logger: logger.With(slog.String("component", "user_store")),
	}
}

var _ store.UserStore = (*UserStore)(nil)

// WithTx implements store.UserStore.WithTx.
func (s *UserStore) WithTx(tx *sqlx.Tx) store.UserStore {
	return &UserStore{db: tx, logger: s.logger}
}

// Create implements store.UserStore.Create.
func (s *UserStore) Create(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := user.Validate(); err != nil {
		return err
	}

	query := s.db.Rebind(`
		INSERT INTO users (name, email, created_at)
		VALUES (?, ?, ?)
		RETURNING id
	`)

	err := s.db.QueryRowxContext(ctx, query, user.Name, user.Email, user.CreatedAt).Scan(&user.ID)
	if err != nil {
		mapped := mapEntityError(err, nil, store.ErrEmailExists)
		if store.IsDuplicateError(mapped) {
			log.Debug("user email already exists", slog.String("email", user.Email))
		} else {
			log.Error("failed to create user", slog.String("error", err.Error()))
		}
		return mapped
	}

	log.Debug("user created", slog.Int64("user_id", user.ID))
	return nil
}

// GetByID implements store.UserStore.GetByID.
func (s *UserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var user domain.User
	query := s.db.Rebind(`SELECT ` + userColumns + ` FROM users WHERE id = ?`)
	if err := sqlx.GetContext(ctx, s.db, &user, query, id); err != nil {
		return nil, s.readError(ctx, err, "get user by id")
	}
	return &user, nil
}

// GetByEmail implements store.UserStore.GetByEmail.
func (s *UserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	query := s.db.Rebind(`SELECT ` + userColumns + ` FROM users WHERE email = ?`)
	if err := sqlx.GetContext(ctx, s.db, &user, query, domain.NormalizeEmail(email)); err != nil {
		return nil, s.readError(ctx, err, "get user by email")
	}
	return &user, nil
}

// List implements store.UserStore.List.
func (s *UserStore) List(ctx context.Context) ([]*domain.User, error) {
	users := []*domain.User{}
	query := `SELECT ` + userColumns + ` FROM users ORDER BY id`
	if err := sqlx.SelectContext(ctx, s.db, &users, query); err != nil {
		return nil, s.readError(ctx, err, "list users")
	}
	return users, nil
}

// Update implements store.UserStore.Update.
func (s *UserStore) Update(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := user.Validate(); err != nil {
		return err
	}

	query := s.db.Rebind(`UPDATE users SET name = ?, email = ? WHERE id = ?`)
	result, err := s.db.ExecContext(ctx, query, user.Name, user.Email, user.ID)
	if err != nil {
		mapped := mapEntityError(err, nil, store.ErrEmailExists)
		if !store.IsDuplicateError(mapped) {
			log.Error("failed to update user",
				slog.String("error", err.Error()),
				slog.Int64("user_id", user.ID))
		}
		return mapped
	}

	return CheckRowsAffected(result, store.ErrUserNotFound)
}

// Delete implements store.UserStore.Delete.
func (s *UserStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := s.db.Rebind(`DELETE FROM users WHERE id = ?`)
	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		mapped := MapError(err)
		log.Warn("failed to delete user",
			slog.String("error", err.Error()),
			slog.Int64("user_id", id))
		return mapped
	}

	if err := CheckRowsAffected(result, store.ErrUserNotFound); err != nil {
		return err
	}

	log.Debug("user deleted", slog.Int64("user_id", id))
	return nil
}

func (s *UserStore) readError(ctx context.Context, err error, op string) error {
	mapped := mapEntityError(err, store.ErrUserNotFound, nil)
	if !store.IsNotFoundError(mapped) {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to "+op,
			slog.String("error", err.Error()))
	}
	return mapped
}
