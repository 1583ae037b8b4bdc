package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/willyyyaj/medical-system/internal/app/model"
)

const doctorColumns = "id, name, specialty, user_id, created_at, updated_at"

// CreateDoctor inserts a doctor profile and fills doctor.ID.
func (s *Store) CreateDoctor(ctx context.Context, doctor *model.Doctor) error {
	now := s.now().UTC()
	doctor.CreatedAt = now
	doctor.UpdatedAt = now

	query := fmt.Sprintf(
		`INSERT INTO doctors (name, specialty, user_id, created_at, updated_at)
		 VALUES (%s)`,
		s.params(5),
	)

	return s.insertReturningID(ctx, query, &doctor.ID,
		doctor.Name, doctor.Specialty, doctor.UserID,
		doctor.CreatedAt, doctor.UpdatedAt)
}

// GetDoctorByID looks up a doctor by primary key.
func (s *Store) GetDoctorByID(ctx context.Context, id int) (*model.Doctor, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM doctors WHERE id = %s`,
		doctorColumns, s.placeholders(1),
	)
	return s.scanDoctor(s.db.QueryRowContext(ctx, query, id))
}

// GetDoctorByUserID looks up the doctor profile tied to a user account.
func (s *Store) GetDoctorByUserID(ctx context.Context, userID int) (*model.Doctor, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM doctors WHERE user_id = %s`,
		doctorColumns, s.placeholders(1),
	)
	return s.scanDoctor(s.db.QueryRowContext(ctx, query, userID))
}

// ListDoctors returns doctors ordered by id with offset/limit paging.
func (s *Store) ListDoctors(ctx context.Context, offset, limit int) ([]model.Doctor, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM doctors ORDER BY id LIMIT %s OFFSET %s`,
		doctorColumns, s.placeholders(1), s.placeholders(2),
	)

	rows, err := s.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	doctors := []model.Doctor{}
	for rows.Next() {
		var d model.Doctor
		err := rows.Scan(&d.ID, &d.Name, &d.Specialty, &d.UserID, &d.CreatedAt, &d.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		doctors = append(doctors, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return doctors, nil
}

func (s *Store) scanDoctor(row *sql.Row) (*model.Doctor, error) {
	var d model.Doctor
	err := row.Scan(&d.ID, &d.Name, &d.Specialty, &d.UserID, &d.CreatedAt, &d.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return &d, nil
}
