package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/willyyyaj/medical-system/internal/app/model"
)

const taskColumns = "id, description, due_date, is_completed, patient_id, appointment_id, created_at"

// CreateTask inserts a follow-up task and fills task.ID.
func (s *Store) CreateTask(ctx context.Context, task *model.Task) error {
	task.CreatedAt = s.now().UTC()

	query := fmt.Sprintf(
		`INSERT INTO tasks (description, due_date, is_completed, patient_id, appointment_id, created_at)
		 VALUES (%s)`,
		s.params(6),
	)

	return s.insertReturningID(ctx, query, &task.ID,
		task.Description, task.DueDate, task.IsCompleted,
		task.PatientID, task.AppointmentID, task.CreatedAt)
}

// GetTaskByID looks up a task by primary key.
func (s *Store) GetTaskByID(ctx context.Context, id int) (*model.Task, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM tasks WHERE id = %s`,
		taskColumns, s.placeholders(1),
	)

	var t model.Task
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&t.ID, &t.Description, &t.DueDate, &t.IsCompleted,
		&t.PatientID, &t.AppointmentID, &t.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return &t, nil
}

// UpdateTask rewrites a task's mutable fields.
func (s *Store) UpdateTask(ctx context.Context, task *model.Task) error {
	query := fmt.Sprintf(
		`UPDATE tasks SET description = %s, due_date = %s, is_completed = %s WHERE id = %s`,
		s.placeholders(1), s.placeholders(2), s.placeholders(3), s.placeholders(4),
	)

	result, err := s.db.ExecContext(ctx, query,
		task.Description, task.DueDate, task.IsCompleted, task.ID)
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

// ListTasksByPatient returns all of a patient's tasks, oldest first.
func (s *Store) ListTasksByPatient(ctx context.Context, patientID int) ([]model.Task, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM tasks WHERE patient_id = %s ORDER BY id`,
		taskColumns, s.placeholders(1),
	)
	return s.queryTasks(ctx, query, patientID)
}

// ListTasksByAppointment returns the tasks linked to one appointment.
func (s *Store) ListTasksByAppointment(ctx context.Context, appointmentID int) ([]model.Task, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM tasks WHERE appointment_id = %s ORDER BY id`,
		taskColumns, s.placeholders(1),
	)
	return s.queryTasks(ctx, query, appointmentID)
}

// ListPendingTasksByPatient returns the patient's incomplete tasks ordered
// by due date.
func (s *Store) ListPendingTasksByPatient(ctx context.Context, patientID int) ([]model.Task, error) {
	falseLiteral := "0"
	if s.driverName == "postgres" {
		falseLiteral = "FALSE"
	}
	query := fmt.Sprintf(
		`SELECT %s FROM tasks WHERE patient_id = %s AND is_completed = %s ORDER BY due_date`,
		taskColumns, s.placeholders(1), falseLiteral,
	)
	return s.queryTasks(ctx, query, patientID)
}

func (s *Store) queryTasks(ctx context.Context, query string, args ...interface{}) ([]model.Task, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	tasks := []model.Task{}
	for rows.Next() {
		var t model.Task
		err := rows.Scan(
			&t.ID, &t.Description, &t.DueDate, &t.IsCompleted,
			&t.PatientID, &t.AppointmentID, &t.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return tasks, nil
}
