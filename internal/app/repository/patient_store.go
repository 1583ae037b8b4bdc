package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/willyyyaj/medical-system/internal/app/model"
)

const patientColumns = "id, name, birth_date, gender, user_id, created_at, updated_at"

// CreatePatient inserts a patient profile and fills patient.ID.
func (s *Store) CreatePatient(ctx context.Context, patient *model.Patient) error {
	now := s.now().UTC()
	patient.CreatedAt = now
	patient.UpdatedAt = now

	query := fmt.Sprintf(
		`INSERT INTO patients (name, birth_date, gender, user_id, created_at, updated_at)
		 VALUES (%s)`,
		s.params(6),
	)

	return s.insertReturningID(ctx, query, &patient.ID,
		patient.Name, patient.BirthDate, patient.Gender, patient.UserID,
		patient.CreatedAt, patient.UpdatedAt)
}

// GetPatientByID looks up a patient by primary key.
func (s *Store) GetPatientByID(ctx context.Context, id int) (*model.Patient, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM patients WHERE id = %s`,
		patientColumns, s.placeholders(1),
	)
	return s.scanPatient(s.db.QueryRowContext(ctx, query, id))
}

// GetPatientByUserID looks up the patient profile tied to a user account.
func (s *Store) GetPatientByUserID(ctx context.Context, userID int) (*model.Patient, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM patients WHERE user_id = %s`,
		patientColumns, s.placeholders(1),
	)
	return s.scanPatient(s.db.QueryRowContext(ctx, query, userID))
}

// ListPatients returns patients ordered by id with offset/limit paging.
func (s *Store) ListPatients(ctx context.Context, offset, limit int) ([]model.Patient, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM patients ORDER BY id LIMIT %s OFFSET %s`,
		patientColumns, s.placeholders(1), s.placeholders(2),
	)

	rows, err := s.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	return s.collectPatients(rows)
}

// ListPatientsByIDs returns the patients whose ids are in the given set.
func (s *Store) ListPatientsByIDs(ctx context.Context, ids []int) ([]model.Patient, error) {
	if len(ids) == 0 {
		return []model.Patient{}, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		placeholders[i] = s.placeholders(i + 1)
		args[i] = id
	}

	query := fmt.Sprintf(
		`SELECT %s FROM patients WHERE id IN (%s) ORDER BY id`,
		patientColumns, strings.Join(placeholders, ", "),
	)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	return s.collectPatients(rows)
}

func (s *Store) scanPatient(row *sql.Row) (*model.Patient, error) {
	var p model.Patient
	err := row.Scan(&p.ID, &p.Name, &p.BirthDate, &p.Gender, &p.UserID, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return &p, nil
}

func (s *Store) collectPatients(rows *sql.Rows) ([]model.Patient, error) {
	patients := []model.Patient{}
	for rows.Next() {
		var p model.Patient
		err := rows.Scan(&p.ID, &p.Name, &p.BirthDate, &p.Gender, &p.UserID, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		patients = append(patients, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return patients, nil
}
