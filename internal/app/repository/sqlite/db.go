// Package sqlite opens the default local database file.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/willyyyaj/medical-system/internal/app/repository"
)

// DefaultDBPath is the local database file used when DATABASE_URL is unset.
const DefaultDBPath = "data/medical.db"

// Open opens (creating if needed) the SQLite database at dbPath and
// initializes the schema. Foreign keys are enabled so appointment deletion
// cascades to tasks and prescriptions.
func Open(ctx context.Context, dbPath string) (*sql.DB, error) {
	if dbPath == "" {
		dbPath = DefaultDBPath
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?cache=shared&mode=rwc&_foreign_keys=on", dbPath))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := repository.InitSchema(ctx, db, "sqlite3"); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}
