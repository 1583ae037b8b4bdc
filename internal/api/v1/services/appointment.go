package services

import (
	"context"
	stderrors "errors"
	"log/slog"
	"time"

	"github.com/willyyyaj/medical-system/internal/api/errors"
	"github.com/willyyyaj/medical-system/internal/api/v1/dto"
	"github.com/willyyyaj/medical-system/internal/app/ai"
	"github.com/willyyyaj/medical-system/internal/app/model"
	"github.com/willyyyaj/medical-system/internal/app/notify"
	"github.com/willyyyaj/medical-system/internal/app/repository"
)

// summaryPlaceholder is shown when the doctor has not approved a summary yet.
const summaryPlaceholder = "醫生尚未批准或撰寫本次看診的摘要。"

// AppointmentServiceImpl implements AppointmentService
type AppointmentServiceImpl struct {
	patients     repository.PatientRepository
	doctors      repository.DoctorRepository
	appointments repository.AppointmentRepository
	tasks        repository.TaskRepository
	assistant    *ai.Assistant
	hub          *notify.Hub
	now          func() time.Time
}

// NewAppointmentService creates a new appointment service. assistant may be
// nil when no AI key is configured; summaries are then stored without tags.
func NewAppointmentService(
	patients repository.PatientRepository,
	doctors repository.DoctorRepository,
	appointments repository.AppointmentRepository,
	tasks repository.TaskRepository,
	assistant *ai.Assistant,
	hub *notify.Hub,
) AppointmentService {
	return &AppointmentServiceImpl{
		patients:     patients,
		doctors:      doctors,
		appointments: appointments,
		tasks:        tasks,
		assistant:    assistant,
		hub:          hub,
		now:          time.Now,
	}
}

// Create books a future visit for the acting doctor.
func (s *AppointmentServiceImpl) Create(ctx context.Context, user model.User, req *dto.CreateAppointmentRequest) (*model.Appointment, error) {
	doctor, err := s.requireDoctor(ctx, user)
	if err != nil {
		return nil, err
	}
	if _, err := s.patients.GetPatientByID(ctx, req.PatientID); err != nil {
		return nil, errors.NewNotFoundError("Patient")
	}

	appt := &model.Appointment{
		AppointmentDate: req.AppointmentDate,
		Reason:          req.Reason,
		PatientID:       req.PatientID,
		DoctorID:        doctor.ID,
		AppointmentType: model.AppointmentScheduled,
	}
	if err := s.appointments.CreateAppointment(ctx, appt); err != nil {
		return nil, errors.NewInternalError("Failed to create appointment")
	}
	return appt, nil
}

// CreateWalkIn records a same-day visit stamped with the current UTC time.
func (s *AppointmentServiceImpl) CreateWalkIn(ctx context.Context, user model.User, req *dto.WalkInAppointmentRequest) (*model.Appointment, error) {
	doctor, err := s.requireDoctor(ctx, user)
	if err != nil {
		return nil, err
	}
	if _, err := s.patients.GetPatientByID(ctx, req.PatientID); err != nil {
		return nil, errors.NewNotFoundError("Patient")
	}

	appt := &model.Appointment{
		AppointmentDate: s.now().UTC().Format("2006-01-02T15:04:05.999999") + "Z",
		Reason:          req.Reason,
		PatientID:       req.PatientID,
		DoctorID:        doctor.ID,
		AppointmentType: model.AppointmentWalkIn,
	}
	if err := s.appointments.CreateAppointment(ctx, appt); err != nil {
		return nil, errors.NewInternalError("Failed to create appointment")
	}
	return appt, nil
}

// Delete removes a visit and, via cascade, its tasks and prescriptions.
func (s *AppointmentServiceImpl) Delete(ctx context.Context, id int) error {
	if err := s.appointments.DeleteAppointment(ctx, id); err != nil {
		if stderrors.Is(err, repository.ErrNotFound) {
			return errors.NewNotFoundError("Appointment")
		}
		return errors.NewInternalError("Failed to delete appointment")
	}
	return nil
}

// GetSummary returns one visit's detail. Patients may only read their own
// visits; an unapproved summary is replaced by a placeholder message.
func (s *AppointmentServiceImpl) GetSummary(ctx context.Context, user model.User, id int) (*dto.AppointmentDetailResponse, error) {
	appt, err := s.appointments.GetAppointmentByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, repository.ErrNotFound) {
			return nil, errors.NewNotFoundError("Appointment")
		}
		return nil, errors.NewInternalError("Failed to load appointment")
	}

	if user.Role == model.RolePatient {
		patient, err := s.patients.GetPatientByUserID(ctx, user.ID)
		if err != nil || patient.ID != appt.PatientID {
			return nil, errors.NewForbiddenError("Cannot read another patient's appointment")
		}
	}

	doctorRef := dto.DoctorRef{}
	if doctor, err := s.doctors.GetDoctorByID(ctx, appt.DoctorID); err == nil {
		doctorRef = dto.DoctorRef{Name: doctor.Name, Specialty: doctor.Specialty}
	}

	tasks, err := s.tasks.ListTasksByAppointment(ctx, appt.ID)
	if err != nil {
		return nil, errors.NewInternalError("Failed to list appointment tasks")
	}
	briefs := make([]dto.TaskBrief, 0, len(tasks))
	for _, t := range tasks {
		briefs = append(briefs, dto.TaskBrief{Description: t.Description, IsCompleted: t.IsCompleted})
	}

	summary := summaryPlaceholder
	if appt.Summary != nil && *appt.Summary != "" {
		summary = *appt.Summary
	}

	return &dto.AppointmentDetailResponse{
		ID:              appt.ID,
		AppointmentDate: appt.AppointmentDate,
		Reason:          appt.Reason,
		Doctor:          doctorRef,
		Tasks:           briefs,
		Summary:         summary,
	}, nil
}

// ApproveSummary stores the doctor-approved summary, derives education
// keyword tags from it, and notifies the patient. Tag generation failures
// leave the tags empty; the summary is saved regardless.
func (s *AppointmentServiceImpl) ApproveSummary(ctx context.Context, user model.User, id int, summary string) error {
	doctor, err := s.requireDoctor(ctx, user)
	if err != nil {
		return err
	}

	appt, err := s.appointments.GetAppointmentByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, repository.ErrNotFound) {
			return errors.NewNotFoundError("Appointment")
		}
		return errors.NewInternalError("Failed to load appointment")
	}
	if appt.DoctorID != doctor.ID {
		return errors.NewForbiddenError("Cannot modify another doctor's appointment")
	}

	var tags *string
	if s.assistant != nil && summary != "" {
		generated, err := s.assistant.GenerateEducationTags(ctx, summary)
		if err != nil {
			slog.Error("failed to generate education tags", "appointment_id", id, "error", err)
		} else {
			tags = &generated
		}
	}

	if err := s.appointments.UpdateSummaryAndTags(ctx, id, summary, tags); err != nil {
		return errors.NewInternalError("Failed to store summary")
	}

	patient, err := s.patients.GetPatientByID(ctx, appt.PatientID)
	if err == nil && patient.UserID != nil {
		s.hub.SendToUser(*patient.UserID, notify.Message{
			Type: notify.EventNewSummary,
			Payload: map[string]string{
				"appointment_date": appt.AppointmentDate,
				"doctor_name":      doctor.Name,
			},
		})
	}
	return nil
}

// CreateTask adds a preparation task to one of the patient's own visits.
func (s *AppointmentServiceImpl) CreateTask(ctx context.Context, user model.User, appointmentID int, req *dto.AppointmentTaskRequest) (*model.Task, error) {
	if user.Role != model.RolePatient {
		return nil, errors.NewForbiddenError("Patients only")
	}
	patient, err := s.patients.GetPatientByUserID(ctx, user.ID)
	if err != nil {
		return nil, errors.NewNotFoundError("Patient profile")
	}

	appt, err := s.appointments.GetAppointmentByID(ctx, appointmentID)
	if err != nil || appt.PatientID != patient.ID {
		return nil, errors.NewNotFoundError("Appointment")
	}

	task := &model.Task{
		Description:   req.Description,
		DueDate:       req.DueDate,
		PatientID:     patient.ID,
		AppointmentID: &appt.ID,
	}
	if err := s.tasks.CreateTask(ctx, task); err != nil {
		return nil, errors.NewInternalError("Failed to create task")
	}
	return task, nil
}

func (s *AppointmentServiceImpl) requireDoctor(ctx context.Context, user model.User) (*model.Doctor, error) {
	if user.Role != model.RoleDoctor {
		return nil, errors.NewForbiddenError("Doctors only")
	}
	doctor, err := s.doctors.GetDoctorByUserID(ctx, user.ID)
	if err != nil {
		if stderrors.Is(err, repository.ErrNotFound) {
			return nil, errors.NewNotFoundError("Doctor profile")
		}
		return nil, errors.NewInternalError("Failed to load doctor profile")
	}
	return doctor, nil
}
