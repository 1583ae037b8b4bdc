// Package migrate copies a local SQLite database into PostgreSQL.
package migrate

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/willyyyaj/medical-system/internal/app/repository/pg"
	"github.com/willyyyaj/medical-system/internal/app/repository/sqlite"
)

const batchSize = 1000

// tableOrder respects foreign keys: parents before children.
var tableOrder = []struct {
	name    string
	columns []string
}{
	{"users", []string{"id", "username", "hashed_password", "role", "created_at"}},
	{"patients", []string{"id", "name", "birth_date", "gender", "user_id", "created_at", "updated_at"}},
	{"doctors", []string{"id", "name", "specialty", "user_id", "created_at", "updated_at"}},
	{"appointments", []string{"id", "appointment_date", "reason", "summary", "tags", "patient_id", "doctor_id", "appointment_type", "created_at", "updated_at"}},
	{"tasks", []string{"id", "description", "due_date", "is_completed", "patient_id", "appointment_id", "created_at"}},
	{"prescriptions", []string{"id", "medication_name", "medication_code", "dosage", "frequency", "prescribed_on", "patient_id", "doctor_id", "appointment_id", "created_at"}},
}

// ToPostgres copies every table from the SQLite file into the PostgreSQL
// database at databaseURL, batched by id. Rows whose id already exists on
// the target are skipped, so the migration can be re-run.
func ToPostgres(ctx context.Context, logger *zap.Logger, sqlitePath, databaseURL string) error {
	sqliteDB, err := sqlite.Open(ctx, sqlitePath)
	if err != nil {
		return fmt.Errorf("failed to open sqlite source: %w", err)
	}
	defer sqliteDB.Close()

	postgresDB, err := pg.Open(ctx, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to open postgres target: %w", err)
	}
	defer postgresDB.Close()

	for _, table := range tableOrder {
		copied, err := copyTable(ctx, sqliteDB, postgresDB, table.name, table.columns)
		if err != nil {
			return fmt.Errorf("failed to migrate %s: %w", table.name, err)
		}
		logger.Info("table migrated",
			zap.String("table", table.name),
			zap.Int("rows", copied))
	}

	// SERIAL sequences lag behind explicitly inserted ids.
	for _, table := range tableOrder {
		seqFix := fmt.Sprintf(
			`SELECT setval(pg_get_serial_sequence('%s', 'id'), COALESCE(MAX(id), 1)) FROM %s`,
			table.name, table.name,
		)
		if _, err := postgresDB.ExecContext(ctx, seqFix); err != nil {
			return fmt.Errorf("failed to reset %s id sequence: %w", table.name, err)
		}
	}

	return nil
}

func copyTable(ctx context.Context, src, dst *sql.DB, table string, columns []string) (int, error) {
	insertPlaceholders := make([]string, len(columns))
	for i := range columns {
		insertPlaceholders[i] = fmt.Sprintf("$%d", i+1)
	}
	insertQuery := fmt.Sprintf(
		`INSERT INTO %s (%s) VALUES (%s) ON CONFLICT (id) DO NOTHING`,
		table, strings.Join(columns, ", "), strings.Join(insertPlaceholders, ", "),
	)

	total := 0
	lastID := 0

	for {
		selectQuery := fmt.Sprintf(
			`SELECT %s FROM %s WHERE id > ? ORDER BY id LIMIT %d`,
			strings.Join(columns, ", "), table, batchSize,
		)

		rows, err := src.QueryContext(ctx, selectQuery, lastID)
		if err != nil {
			return total, fmt.Errorf("source query failed: %w", err)
		}

		batch, maxID, err := readBatch(rows, len(columns))
		rows.Close()
		if err != nil {
			return total, err
		}
		if len(batch) == 0 {
			return total, nil
		}

		tx, err := dst.BeginTx(ctx, nil)
		if err != nil {
			return total, fmt.Errorf("failed to begin transaction: %w", err)
		}
		stmt, err := tx.PrepareContext(ctx, insertQuery)
		if err != nil {
			tx.Rollback()
			return total, fmt.Errorf("failed to prepare insert: %w", err)
		}

		for _, values := range batch {
			// A failed statement aborts the whole postgres transaction, so
			// there is no skipping individual rows: fail the batch.
			if _, err := stmt.ExecContext(ctx, values...); err != nil {
				stmt.Close()
				tx.Rollback()
				return total, fmt.Errorf("failed to insert row into %s: %w", table, err)
			}
			total++
		}

		stmt.Close()
		if err := tx.Commit(); err != nil {
			return total, fmt.Errorf("failed to commit batch: %w", err)
		}

		lastID = maxID
	}
}

// readBatch drains rows into value slices, tracking the max id. The id is
// always the first selected column.
func readBatch(rows *sql.Rows, columnCount int) ([][]interface{}, int, error) {
	var batch [][]interface{}
	maxID := 0

	for rows.Next() {
		values := make([]interface{}, columnCount)
		scanTargets := make([]interface{}, columnCount)
		for i := range values {
			scanTargets[i] = &values[i]
		}
		if err := rows.Scan(scanTargets...); err != nil {
			return nil, 0, fmt.Errorf("scan failed: %w", err)
		}

		if id, ok := values[0].(int64); ok && int(id) > maxID {
			maxID = int(id)
		}
		batch = append(batch, values)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows error: %w", err)
	}
	return batch, maxID, nil
}
