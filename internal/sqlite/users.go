package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mesh-intelligence/taskdesk/pkg/types"
)

// Compile-time interface check: Users must implement UserStore.
var _ types.UserStore = (*Users)(nil)

const userColumns = "id, email, password_hash, created_at, updated_at"

// Users implements UserStore over the SQLite backend. Unlike tasks, user
// writes are not staged; account creation is a single-row insert.
type Users struct {
	backend *Backend
}

// CreateUser inserts a new user. A duplicate email fails with
// ErrConstraintViolation. The existence check and the insert run in one
// transaction so a concurrent registration of the same email cannot slip
// between them.
func (s *Users) CreateUser(ctx context.Context, u *types.User) error {
	db, err := s.backend.conn()
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w: %w", types.ErrStorageUnavailable, err)
	}
	defer tx.Rollback()

	var one int
	err = tx.QueryRowContext(ctx,
		"SELECT 1 FROM users WHERE email = ?", u.Email).Scan(&one)
	if err == nil {
		return fmt.Errorf("email %s already registered: %w", u.Email, types.ErrConstraintViolation)
	}
	if err != sql.ErrNoRows {
		return fmt.Errorf("checking email: %w: %w", types.ErrStorageUnavailable, err)
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO users ("+userColumns+") VALUES (?, ?, ?, ?, ?)",
		u.ID, u.Email, u.PasswordHash, formatTime(u.CreatedAt), formatTime(u.UpdatedAt))
	if err != nil {
		return fmt.Errorf("inserting user: %w: %w", types.ErrStorageUnavailable, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing user: %w: %w", types.ErrStorageUnavailable, err)
	}
	return nil
}

// UserByEmail returns the user with the given email, or ErrNotFound.
func (s *Users) UserByEmail(ctx context.Context, email string) (*types.User, error) {
	return s.userWhere(ctx, "email = ?", email)
}

// UserByID returns the user with the given ID, or ErrNotFound.
func (s *Users) UserByID(ctx context.Context, id string) (*types.User, error) {
	return s.userWhere(ctx, "id = ?", id)
}

func (s *Users) userWhere(ctx context.Context, cond string, arg any) (*types.User, error) {
	db, err := s.backend.conn()
	if err != nil {
		return nil, err
	}

	var (
		u         types.User
		createdAt string
		updatedAt string
	)
	err = db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE "+cond, arg).
		Scan(&u.ID, &u.Email, &u.PasswordHash, &createdAt, &updatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting user: %w", err)
	}
	if u.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if u.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &u, nil
}
