package services

import (
	"context"
	stderrors "errors"

	"github.com/samber/lo"

	"github.com/willyyyaj/medical-system/internal/api/errors"
	"github.com/willyyyaj/medical-system/internal/api/v1/dto"
	"github.com/willyyyaj/medical-system/internal/app/auth"
	"github.com/willyyyaj/medical-system/internal/app/model"
	"github.com/willyyyaj/medical-system/internal/app/repository"
)

// DoctorServiceImpl implements DoctorService
type DoctorServiceImpl struct {
	users        repository.UserRepository
	patients     repository.PatientRepository
	doctors      repository.DoctorRepository
	appointments repository.AppointmentRepository
	tasks        repository.TaskRepository
}

// NewDoctorService creates a new doctor service
func NewDoctorService(
	users repository.UserRepository,
	patients repository.PatientRepository,
	doctors repository.DoctorRepository,
	appointments repository.AppointmentRepository,
	tasks repository.TaskRepository,
) DoctorService {
	return &DoctorServiceImpl{
		users:        users,
		patients:     patients,
		doctors:      doctors,
		appointments: appointments,
		tasks:        tasks,
	}
}

// CreateDoctor registers a login account and its doctor profile.
func (s *DoctorServiceImpl) CreateDoctor(ctx context.Context, req *dto.CreateDoctorRequest) (*model.Doctor, error) {
	if _, err := s.users.GetUserByUsername(ctx, req.Credentials.Username); err == nil {
		return nil, errors.NewBadRequestError("Username is already registered")
	}

	hashed, err := auth.HashPassword(req.Credentials.Password)
	if err != nil {
		return nil, errors.NewInternalError("Failed to hash password")
	}

	user := &model.User{
		Username:       req.Credentials.Username,
		HashedPassword: hashed,
		Role:           model.RoleDoctor,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, errors.NewInternalError("Failed to create user account")
	}

	doctor := &model.Doctor{
		Name:      req.Name,
		Specialty: req.Specialty,
		UserID:    &user.ID,
	}
	if err := s.doctors.CreateDoctor(ctx, doctor); err != nil {
		return nil, errors.NewInternalError("Failed to create doctor profile")
	}
	return doctor, nil
}

// GetMyProfile returns the doctor profile of the authenticated user.
func (s *DoctorServiceImpl) GetMyProfile(ctx context.Context, user model.User) (*model.Doctor, error) {
	return s.requireDoctorProfile(ctx, user)
}

// ListDoctors returns all doctors. Publicly readable so patients can browse
// the roster before booking.
func (s *DoctorServiceImpl) ListDoctors(ctx context.Context) ([]model.Doctor, error) {
	doctors, err := s.doctors.ListDoctors(ctx, 0, listPageSize)
	if err != nil {
		return nil, errors.NewInternalError("Failed to list doctors")
	}
	return doctors, nil
}

// MyPatients returns the distinct patients the doctor has seen through
// appointments.
func (s *DoctorServiceImpl) MyPatients(ctx context.Context, user model.User) ([]model.Patient, error) {
	doctor, err := s.requireDoctorProfile(ctx, user)
	if err != nil {
		return nil, err
	}

	patientIDs, err := s.appointments.DistinctPatientIDsByDoctor(ctx, doctor.ID)
	if err != nil {
		return nil, errors.NewInternalError("Failed to resolve patients")
	}
	if len(patientIDs) == 0 {
		return []model.Patient{}, nil
	}

	patients, err := s.patients.ListPatientsByIDs(ctx, patientIDs)
	if err != nil {
		return nil, errors.NewInternalError("Failed to list patients")
	}
	return patients, nil
}

// MyAppointments returns the doctor's worklist with patient records and
// preparation tasks embedded.
func (s *DoctorServiceImpl) MyAppointments(ctx context.Context, user model.User) ([]dto.AppointmentForDoctorResponse, error) {
	doctor, err := s.requireDoctorProfile(ctx, user)
	if err != nil {
		return nil, err
	}

	appointments, err := s.appointments.ListAppointmentsByDoctor(ctx, doctor.ID)
	if err != nil {
		return nil, errors.NewInternalError("Failed to list appointments")
	}

	patientIDs := lo.Uniq(lo.Map(appointments, func(a model.Appointment, _ int) int { return a.PatientID }))
	patients, err := s.patients.ListPatientsByIDs(ctx, patientIDs)
	if err != nil {
		return nil, errors.NewInternalError("Failed to load patients")
	}
	patientsByID := lo.KeyBy(patients, func(p model.Patient) int { return p.ID })

	result := []dto.AppointmentForDoctorResponse{}
	for _, appt := range appointments {
		patient, ok := patientsByID[appt.PatientID]
		if !ok {
			continue
		}

		tasks, err := s.tasks.ListTasksByAppointment(ctx, appt.ID)
		if err != nil {
			return nil, errors.NewInternalError("Failed to list appointment tasks")
		}

		result = append(result, dto.AppointmentForDoctorResponse{
			ID:              appt.ID,
			AppointmentDate: appt.AppointmentDate,
			Reason:          appt.Reason,
			Patient:         patient,
			AppointmentType: appt.AppointmentType,
			CreatedAt:       appt.CreatedAt,
			Tasks:           tasks,
			Summary:         appt.Summary,
		})
	}
	return result, nil
}

func (s *DoctorServiceImpl) requireDoctorProfile(ctx context.Context, user model.User) (*model.Doctor, error) {
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
