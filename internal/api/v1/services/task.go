package services

import (
	"context"
	stderrors "errors"

	"github.com/willyyyaj/medical-system/internal/api/errors"
	"github.com/willyyyaj/medical-system/internal/api/v1/dto"
	"github.com/willyyyaj/medical-system/internal/app/model"
	"github.com/willyyyaj/medical-system/internal/app/repository"
)

// TaskServiceImpl implements TaskService
type TaskServiceImpl struct {
	patients     repository.PatientRepository
	appointments repository.AppointmentRepository
	tasks        repository.TaskRepository
}

// NewTaskService creates a new task service
func NewTaskService(
	patients repository.PatientRepository,
	appointments repository.AppointmentRepository,
	tasks repository.TaskRepository,
) TaskService {
	return &TaskServiceImpl{patients: patients, appointments: appointments, tasks: tasks}
}

// Create adds a to-do item for the authenticated patient. A linked
// appointment must belong to the same patient.
func (s *TaskServiceImpl) Create(ctx context.Context, user model.User, req *dto.CreateTaskRequest) (*model.Task, error) {
	if user.Role != model.RolePatient {
		return nil, errors.NewForbiddenError("Patients only")
	}
	patient, err := s.patients.GetPatientByUserID(ctx, user.ID)
	if err != nil {
		return nil, errors.NewNotFoundError("Patient profile")
	}

	if req.AppointmentID != nil {
		appt, err := s.appointments.GetAppointmentByID(ctx, *req.AppointmentID)
		if err != nil || appt.PatientID != patient.ID {
			return nil, errors.NewNotFoundError("Appointment")
		}
	}

	task := &model.Task{
		Description:   req.Description,
		DueDate:       req.DueDate,
		PatientID:     patient.ID,
		AppointmentID: req.AppointmentID,
	}
	if err := s.tasks.CreateTask(ctx, task); err != nil {
		return nil, errors.NewInternalError("Failed to create task")
	}
	return task, nil
}

// Update toggles the completion flag on the patient's own task.
func (s *TaskServiceImpl) Update(ctx context.Context, user model.User, id int, req *dto.UpdateTaskRequest) (*model.Task, error) {
	if user.Role != model.RolePatient {
		return nil, errors.NewForbiddenError("Patients only")
	}
	patient, err := s.patients.GetPatientByUserID(ctx, user.ID)
	if err != nil {
		return nil, errors.NewNotFoundError("Patient profile")
	}

	task, err := s.tasks.GetTaskByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, repository.ErrNotFound) {
			return nil, errors.NewNotFoundError("Task")
		}
		return nil, errors.NewInternalError("Failed to load task")
	}
	if task.PatientID != patient.ID {
		return nil, errors.NewForbiddenError("Cannot modify another patient's task")
	}

	task.IsCompleted = *req.IsCompleted
	if err := s.tasks.UpdateTask(ctx, task); err != nil {
		return nil, errors.NewInternalError("Failed to update task")
	}
	return task, nil
}

// ListForPatient returns a patient's tasks. Doctors may read any patient;
// a patient may only read their own.
func (s *TaskServiceImpl) ListForPatient(ctx context.Context, user model.User, patientID int) ([]model.Task, error) {
	if user.Role == model.RolePatient {
		patient, err := s.patients.GetPatientByUserID(ctx, user.ID)
		if err != nil || patient.ID != patientID {
			return nil, errors.NewForbiddenError("Cannot read another patient's tasks")
		}
	}

	tasks, err := s.tasks.ListTasksByPatient(ctx, patientID)
	if err != nil {
		return nil, errors.NewInternalError("Failed to list tasks")
	}
	return tasks, nil
}
