// Package repository defines the persistence interfaces and the shared
// database/sql implementation behind them. SQLite is the default backend;
// PostgreSQL is used when DATABASE_URL is set.
package repository

import (
	"context"
	"errors"

	"github.com/willyyyaj/medical-system/internal/app/model"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("record not found")

// UserRepository persists login accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	GetUserByID(ctx context.Context, id int) (*model.User, error)
}

// PatientRepository persists patient profiles.
type PatientRepository interface {
	CreatePatient(ctx context.Context, patient *model.Patient) error
	GetPatientByID(ctx context.Context, id int) (*model.Patient, error)
	GetPatientByUserID(ctx context.Context, userID int) (*model.Patient, error)
	ListPatients(ctx context.Context, offset, limit int) ([]model.Patient, error)
	ListPatientsByIDs(ctx context.Context, ids []int) ([]model.Patient, error)
}

// DoctorRepository persists doctor profiles.
type DoctorRepository interface {
	CreateDoctor(ctx context.Context, doctor *model.Doctor) error
	GetDoctorByID(ctx context.Context, id int) (*model.Doctor, error)
	GetDoctorByUserID(ctx context.Context, userID int) (*model.Doctor, error)
	ListDoctors(ctx context.Context, offset, limit int) ([]model.Doctor, error)
}

// AppointmentRepository persists visits and their AI summaries.
type AppointmentRepository interface {
	CreateAppointment(ctx context.Context, appt *model.Appointment) error
	GetAppointmentByID(ctx context.Context, id int) (*model.Appointment, error)
	DeleteAppointment(ctx context.Context, id int) error
	ListAppointmentsByPatient(ctx context.Context, patientID int) ([]model.Appointment, error)
	ListAppointmentsByDoctor(ctx context.Context, doctorID int) ([]model.Appointment, error)
	DistinctPatientIDsByDoctor(ctx context.Context, doctorID int) ([]int, error)
	NextUpcomingForPatient(ctx context.Context, patientID int, after string) (*model.Appointment, error)
	UpdateSummaryAndTags(ctx context.Context, id int, summary string, tags *string) error
}

// TaskRepository persists patient follow-up tasks.
type TaskRepository interface {
	CreateTask(ctx context.Context, task *model.Task) error
	GetTaskByID(ctx context.Context, id int) (*model.Task, error)
	UpdateTask(ctx context.Context, task *model.Task) error
	ListTasksByPatient(ctx context.Context, patientID int) ([]model.Task, error)
	ListTasksByAppointment(ctx context.Context, appointmentID int) ([]model.Task, error)
	ListPendingTasksByPatient(ctx context.Context, patientID int) ([]model.Task, error)
}

// PrescriptionRepository persists issued prescriptions.
type PrescriptionRepository interface {
	CreatePrescription(ctx context.Context, p *model.Prescription) error
	GetPrescriptionByID(ctx context.Context, id int) (*model.Prescription, error)
	DeletePrescription(ctx context.Context, id int) error
	ListPrescriptionsByPatient(ctx context.Context, patientID int) ([]model.Prescription, error)
}
