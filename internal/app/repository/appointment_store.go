package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/willyyyaj/medical-system/internal/app/model"
)

const appointmentColumns = `id, appointment_date, reason, summary, tags,
	patient_id, doctor_id, appointment_type, created_at, updated_at`

// CreateAppointment inserts a visit and fills appt.ID.
func (s *Store) CreateAppointment(ctx context.Context, appt *model.Appointment) error {
	now := s.now().UTC()
	appt.CreatedAt = now
	appt.UpdatedAt = now
	if appt.AppointmentType == "" {
		appt.AppointmentType = model.AppointmentScheduled
	}

	query := fmt.Sprintf(
		`INSERT INTO appointments (appointment_date, reason, summary, tags,
			patient_id, doctor_id, appointment_type, created_at, updated_at)
		 VALUES (%s)`,
		s.params(9),
	)

	return s.insertReturningID(ctx, query, &appt.ID,
		appt.AppointmentDate, appt.Reason, appt.Summary, appt.Tags,
		appt.PatientID, appt.DoctorID, appt.AppointmentType,
		appt.CreatedAt, appt.UpdatedAt)
}

// GetAppointmentByID looks up a visit by primary key.
func (s *Store) GetAppointmentByID(ctx context.Context, id int) (*model.Appointment, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM appointments WHERE id = %s`,
		appointmentColumns, s.placeholders(1),
	)

	var a model.Appointment
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&a.ID, &a.AppointmentDate, &a.Reason, &a.Summary, &a.Tags,
		&a.PatientID, &a.DoctorID, &a.AppointmentType, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return &a, nil
}

// DeleteAppointment removes a visit. Linked tasks and prescriptions go with
// it via FK cascade.
func (s *Store) DeleteAppointment(ctx context.Context, id int) error {
	query := fmt.Sprintf(`DELETE FROM appointments WHERE id = %s`, s.placeholders(1))

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete failed: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete failed: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListAppointmentsByPatient returns a patient's visits, newest first.
func (s *Store) ListAppointmentsByPatient(ctx context.Context, patientID int) ([]model.Appointment, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM appointments WHERE patient_id = %s ORDER BY appointment_date DESC`,
		appointmentColumns, s.placeholders(1),
	)
	return s.queryAppointments(ctx, query, patientID)
}

// ListAppointmentsByDoctor returns a doctor's visits, newest first.
func (s *Store) ListAppointmentsByDoctor(ctx context.Context, doctorID int) ([]model.Appointment, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM appointments WHERE doctor_id = %s ORDER BY appointment_date DESC`,
		appointmentColumns, s.placeholders(1),
	)
	return s.queryAppointments(ctx, query, doctorID)
}

// DistinctPatientIDsByDoctor returns the ids of every patient the doctor
// has had an appointment with.
func (s *Store) DistinctPatientIDsByDoctor(ctx context.Context, doctorID int) ([]int, error) {
	query := fmt.Sprintf(
		`SELECT DISTINCT patient_id FROM appointments WHERE doctor_id = %s ORDER BY patient_id`,
		s.placeholders(1),
	)

	rows, err := s.db.QueryContext(ctx, query, doctorID)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return ids, nil
}

// NextUpcomingForPatient returns the patient's earliest appointment dated
// on or after the given cutoff, or ErrNotFound when none exists. Dates are
// ISO strings, so lexical comparison orders them correctly.
func (s *Store) NextUpcomingForPatient(ctx context.Context, patientID int, after string) (*model.Appointment, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM appointments
		 WHERE patient_id = %s AND appointment_date >= %s
		 ORDER BY appointment_date ASC LIMIT 1`,
		appointmentColumns, s.placeholders(1), s.placeholders(2),
	)

	var a model.Appointment
	err := s.db.QueryRowContext(ctx, query, patientID, after).Scan(
		&a.ID, &a.AppointmentDate, &a.Reason, &a.Summary, &a.Tags,
		&a.PatientID, &a.DoctorID, &a.AppointmentType, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return &a, nil
}

// UpdateSummaryAndTags stores a visit summary and its education keyword
// tags. A nil tags value clears the column.
func (s *Store) UpdateSummaryAndTags(ctx context.Context, id int, summary string, tags *string) error {
	query := fmt.Sprintf(
		`UPDATE appointments SET summary = %s, tags = %s, updated_at = %s WHERE id = %s`,
		s.placeholders(1), s.placeholders(2), s.placeholders(3), s.placeholders(4),
	)

	result, err := s.db.ExecContext(ctx, query, summary, tags, s.now().UTC(), id)
	if err != nil {
		return fmt.Errorf("update failed: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update failed: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) queryAppointments(ctx context.Context, query string, args ...interface{}) ([]model.Appointment, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	appointments := []model.Appointment{}
	for rows.Next() {
		var a model.Appointment
		err := rows.Scan(
			&a.ID, &a.AppointmentDate, &a.Reason, &a.Summary, &a.Tags,
			&a.PatientID, &a.DoctorID, &a.AppointmentType, &a.CreatedAt, &a.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		appointments = append(appointments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return appointments, nil
}
