package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// PlaceholderFunc generates parameter placeholders for different SQL dialects
type PlaceholderFunc func(n int) string

// Store implements every repository interface over a single database/sql
// connection. Queries are written once and parameterized per dialect.
type Store struct {
	db           *sql.DB
	driverName   string
	placeholders PlaceholderFunc
	now          func() time.Time
}

// NewStore creates a Store for the given driver ("sqlite3" or "postgres").
func NewStore(db *sql.DB, driverName string) *Store {
	var placeholders PlaceholderFunc

	switch driverName {
	case "postgres":
		placeholders = func(n int) string { return fmt.Sprintf("$%d", n) }
	default:
		placeholders = func(n int) string { return "?" }
	}

	return &Store{
		db:           db,
		driverName:   driverName,
		placeholders: placeholders,
		now:          time.Now,
	}
}

// params renders count placeholders starting at 1, comma separated.
func (s *Store) params(count int) string {
	parts := make([]string, count)
	for i := 0; i < count; i++ {
		parts[i] = s.placeholders(i + 1)
	}
	return strings.Join(parts, ", ")
}

// insertReturningID runs an INSERT and fills *id. lib/pq does not support
// LastInsertId, so the postgres path appends RETURNING id.
func (s *Store) insertReturningID(ctx context.Context, query string, id *int, args ...interface{}) error {
	if s.driverName == "postgres" {
		if err := s.db.QueryRowContext(ctx, query+" RETURNING id", args...).Scan(id); err != nil {
			return fmt.Errorf("insert failed: %w", err)
		}
		return nil
	}

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("insert failed: %w", err)
	}
	lastID, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read inserted id: %w", err)
	}
	*id = int(lastID)
	return nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// DB returns the underlying database connection.
func (s *Store) DB() *sql.DB {
	return s.db
}
