// Package pg opens PostgreSQL connections from a DATABASE_URL DSN.
package pg

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/willyyyaj/medical-system/internal/app/repository"
)

// Open connects to PostgreSQL, verifies the connection, and initializes the
// schema. The caller falls back to SQLite when this fails.
func Open(ctx context.Context, databaseURL string) (*sql.DB, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("database unreachable: %w", err)
	}

	if err := repository.InitSchema(ctx, db, "postgres"); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}
