package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/willyyyaj/medical-system/internal/app/model"
)

const prescriptionColumns = `id, medication_name, medication_code, dosage, frequency,
	prescribed_on, patient_id, doctor_id, appointment_id, created_at`

// CreatePrescription inserts a prescription and fills p.ID.
func (s *Store) CreatePrescription(ctx context.Context, p *model.Prescription) error {
	p.CreatedAt = s.now().UTC()

	query := fmt.Sprintf(
		`INSERT INTO prescriptions (medication_name, medication_code, dosage, frequency,
			prescribed_on, patient_id, doctor_id, appointment_id, created_at)
		 VALUES (%s)`,
		s.params(9),
	)

	return s.insertReturningID(ctx, query, &p.ID,
		p.MedicationName, p.MedicationCode, p.Dosage, p.Frequency,
		p.PrescribedOn, p.PatientID, p.DoctorID, p.AppointmentID, p.CreatedAt)
}

// GetPrescriptionByID looks up a prescription by primary key.
func (s *Store) GetPrescriptionByID(ctx context.Context, id int) (*model.Prescription, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM prescriptions WHERE id = %s`,
		prescriptionColumns, s.placeholders(1),
	)

	var p model.Prescription
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.MedicationName, &p.MedicationCode, &p.Dosage, &p.Frequency,
		&p.PrescribedOn, &p.PatientID, &p.DoctorID, &p.AppointmentID, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return &p, nil
}

// DeletePrescription removes a prescription.
func (s *Store) DeletePrescription(ctx context.Context, id int) error {
	query := fmt.Sprintf(`DELETE FROM prescriptions WHERE id = %s`, s.placeholders(1))

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

// ListPrescriptionsByPatient returns a patient's prescriptions, newest first.
func (s *Store) ListPrescriptionsByPatient(ctx context.Context, patientID int) ([]model.Prescription, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM prescriptions WHERE patient_id = %s ORDER BY prescribed_on DESC, id DESC`,
		prescriptionColumns, s.placeholders(1),
	)

	rows, err := s.db.QueryContext(ctx, query, patientID)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	prescriptions := []model.Prescription{}
	for rows.Next() {
		var p model.Prescription
		err := rows.Scan(
			&p.ID, &p.MedicationName, &p.MedicationCode, &p.Dosage, &p.Frequency,
			&p.PrescribedOn, &p.PatientID, &p.DoctorID, &p.AppointmentID, &p.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		prescriptions = append(prescriptions, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return prescriptions, nil
}
