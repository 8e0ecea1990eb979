package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/medcamp/mcms/internal/model"
)

const userColumns = `id, email, name, photo_url, phone, role, created_at`

// UserRepository handles persistence for user accounts.
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository constructs a UserRepository.
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

func scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.PhotoURL, &u.Phone,
		&u.Role, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a new account and returns its generated identifier. The
// role defaults to participant when none is supplied. A duplicate email
// surfaces as a unique violation.
func (r *UserRepository) Create(ctx context.Context, user *model.User) (string, error) {
	user.ID = uuid.New().String()
	if user.Role == "" {
		user.Role = model.RoleParticipant
	}
	user.CreatedAt = time.Now().UTC()

	_, err := r.db.Exec(ctx,
		`INSERT INTO users (id, email, name, photo_url, phone, role, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		user.ID, user.Email, user.Name, user.PhotoURL, user.Phone,
		user.Role, user.CreatedAt,
	)
	if err != nil {
		return "", fmt.Errorf("insert user: %w", err)
	}
	return user.ID, nil
}

// GetByEmail returns the account owning an email or ErrNotFound.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return readWithRetry(ctx, func(ctx context.Context) (*model.User, error) {
		u, err := scanUser(r.db.QueryRow(ctx,
			`SELECT `+userColumns+` FROM users WHERE email = $1`, email))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, ErrNotFound
			}
			return nil, fmt.Errorf("get user: %w", err)
		}
		return u, nil
	})
}

// GetByID returns a single account or ErrNotFound.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	return readWithRetry(ctx, func(ctx context.Context) (*model.User, error) {
		u, err := scanUser(r.db.QueryRow(ctx,
			`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, ErrNotFound
			}
			return nil, fmt.Errorf("get user: %w", err)
		}
		return u, nil
	})
}

// List returns all accounts ordered by creation time descending.
func (r *UserRepository) List(ctx context.Context) ([]model.User, error) {
	return readWithRetry(ctx, func(ctx context.Context) ([]model.User, error) {
		rows, err := r.db.Query(ctx,
			`SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
		if err != nil {
			return nil, fmt.Errorf("list users: %w", err)
		}
		defer rows.Close()

		var users []model.User
		for rows.Next() {
			u, err := scanUser(rows)
			if err != nil {
				return nil, fmt.Errorf("scan user: %w", err)
			}
			users = append(users, *u)
		}
		return users, rows.Err()
	})
}

// SetRole changes an account's role.
func (r *UserRepository) SetRole(ctx context.Context, id string, role model.Role) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE users SET role = $1 WHERE id = $2`, role, id)
	if err != nil {
		return fmt.Errorf("set user role: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
