package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/willyyyaj/medical-system/internal/app/model"
)

// CreateUser inserts a new account and fills user.ID and user.CreatedAt.
func (s *Store) CreateUser(ctx context.Context, user *model.User) error {
	user.CreatedAt = s.now().UTC()

	query := fmt.Sprintf(
		`INSERT INTO users (username, hashed_password, role, created_at)
		 VALUES (%s)`,
		s.params(4),
	)

	return s.insertReturningID(ctx, query, &user.ID,
		user.Username, user.HashedPassword, string(user.Role), user.CreatedAt)
}

// GetUserByUsername looks up an account by its unique username.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	query := fmt.Sprintf(
		`SELECT id, username, hashed_password, role, created_at
		 FROM users WHERE username = %s`,
		s.placeholders(1),
	)
	return s.scanUser(s.db.QueryRowContext(ctx, query, username))
}

// GetUserByID looks up an account by primary key.
func (s *Store) GetUserByID(ctx context.Context, id int) (*model.User, error) {
	query := fmt.Sprintf(
		`SELECT id, username, hashed_password, role, created_at
		 FROM users WHERE id = %s`,
		s.placeholders(1),
	)
	return s.scanUser(s.db.QueryRowContext(ctx, query, id))
}

func (s *Store) scanUser(row *sql.Row) (*model.User, error) {
	var u model.User
	var role string
	err := row.Scan(&u.ID, &u.Username, &u.HashedPassword, &role, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	u.Role = model.Role(role)
	return &u, nil
}
