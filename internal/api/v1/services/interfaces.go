package services

import (
	"context"

	"github.com/willyyyaj/medical-system/internal/api/v1/dto"
	"github.com/willyyyaj/medical-system/internal/app/ai/validator"
	"github.com/willyyyaj/medical-system/internal/app/model"
)

// AuthService issues access tokens.
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
}

// PatientService covers patient registration and the patient's own views.
type PatientService interface {
	CreatePatient(ctx context.Context, req *dto.CreatePatientRequest) (*model.Patient, error)
	GetMyProfile(ctx context.Context, user model.User) (*model.Patient, error)
	ListPatients(ctx context.Context, user model.User) ([]model.Patient, error)
	MyAppointments(ctx context.Context, user model.User) ([]dto.AppointmentForPatientResponse, error)
	MyPrescriptions(ctx context.Context, user model.User) ([]model.Prescription, error)
	PatientPrescriptions(ctx context.Context, user model.User, patientID int) ([]model.Prescription, error)
}

// DoctorService covers doctor registration and the doctor's worklist views.
type DoctorService interface {
	CreateDoctor(ctx context.Context, req *dto.CreateDoctorRequest) (*model.Doctor, error)
	GetMyProfile(ctx context.Context, user model.User) (*model.Doctor, error)
	ListDoctors(ctx context.Context) ([]model.Doctor, error)
	MyPatients(ctx context.Context, user model.User) ([]model.Patient, error)
	MyAppointments(ctx context.Context, user model.User) ([]dto.AppointmentForDoctorResponse, error)
}

// AppointmentService manages visits, their summaries and preparation tasks.
type AppointmentService interface {
	Create(ctx context.Context, user model.User, req *dto.CreateAppointmentRequest) (*model.Appointment, error)
	CreateWalkIn(ctx context.Context, user model.User, req *dto.WalkInAppointmentRequest) (*model.Appointment, error)
	Delete(ctx context.Context, id int) error
	GetSummary(ctx context.Context, user model.User, id int) (*dto.AppointmentDetailResponse, error)
	ApproveSummary(ctx context.Context, user model.User, id int, summary string) error
	CreateTask(ctx context.Context, user model.User, appointmentID int, req *dto.AppointmentTaskRequest) (*model.Task, error)
}

// TaskService manages the patient to-do list.
type TaskService interface {
	Create(ctx context.Context, user model.User, req *dto.CreateTaskRequest) (*model.Task, error)
	Update(ctx context.Context, user model.User, id int, req *dto.UpdateTaskRequest) (*model.Task, error)
	ListForPatient(ctx context.Context, user model.User, patientID int) ([]model.Task, error)
}

// PrescriptionService issues and revokes prescriptions.
type PrescriptionService interface {
	Create(ctx context.Context, user model.User, req *dto.CreatePrescriptionRequest) (*model.Prescription, error)
	Delete(ctx context.Context, user model.User, id int) error
}

// DashboardService builds the patient home view.
type DashboardService interface {
	Dashboard(ctx context.Context, user model.User) (*dto.DashboardResponse, error)
}

// AIService runs summary generation and speech-to-text.
type AIService interface {
	Summarize(ctx context.Context, user model.User, text string) (string, error)
	GenerateSOAP(ctx context.Context, user model.User, transcript string) (*dto.SOAPResponse, error)
	Transcribe(ctx context.Context, audioPath, originalName string) (string, error)
}

// ValidationService runs the summary QA agent.
type ValidationService interface {
	ValidateSummary(ctx context.Context, user model.User, req *dto.ValidateSummaryRequest) (*dto.ValidateSummaryResponse, error)
	SmartModify(ctx context.Context, user model.User, req *dto.SmartModifyRequest) (*validator.ModifyResult, error)
	Stats(user model.User) (*dto.ValidationStatsResponse, error)
}

// MedicationService resolves medication codes to reference records.
type MedicationService interface {
	Lookup(ctx context.Context, code string) (*model.MedicationInfo, error)
}
