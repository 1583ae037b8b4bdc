package services

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/willyyyaj/medical-system/internal/api/errors"
	"github.com/willyyyaj/medical-system/internal/api/v1/dto"
	"github.com/willyyyaj/medical-system/internal/app/model"
	"github.com/willyyyaj/medical-system/internal/app/repository"
)

// DashboardServiceImpl implements DashboardService
type DashboardServiceImpl struct {
	patients     repository.PatientRepository
	appointments repository.AppointmentRepository
	tasks        repository.TaskRepository
	now          func() time.Time
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	patients repository.PatientRepository,
	appointments repository.AppointmentRepository,
	tasks repository.TaskRepository,
) DashboardService {
	return &DashboardServiceImpl{
		patients:     patients,
		appointments: appointments,
		tasks:        tasks,
		now:          time.Now,
	}
}

// Dashboard returns the patient's next upcoming visit (today or later) and
// their open tasks.
func (s *DashboardServiceImpl) Dashboard(ctx context.Context, user model.User) (*dto.DashboardResponse, error) {
	if user.Role != model.RolePatient {
		return nil, errors.NewForbiddenError("Patients only")
	}
	patient, err := s.patients.GetPatientByUserID(ctx, user.ID)
	if err != nil {
		if stderrors.Is(err, repository.ErrNotFound) {
			return nil, errors.NewNotFoundError("Patient profile")
		}
		return nil, errors.NewInternalError("Failed to load patient profile")
	}

	today := s.now().Format("2006-01-02")
	next, err := s.appointments.NextUpcomingForPatient(ctx, patient.ID, today)
	if err != nil && !stderrors.Is(err, repository.ErrNotFound) {
		return nil, errors.NewInternalError("Failed to load next appointment")
	}

	pending, err := s.tasks.ListPendingTasksByPatient(ctx, patient.ID)
	if err != nil {
		return nil, errors.NewInternalError("Failed to list pending tasks")
	}

	return &dto.DashboardResponse{NextAppointment: next, PendingTasks: pending}, nil
}
