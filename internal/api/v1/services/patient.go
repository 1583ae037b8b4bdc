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

// listPageSize caps unpaginated listings. The clinic's record counts stay
// well below this.
const listPageSize = 1000

// PatientServiceImpl implements PatientService
type PatientServiceImpl struct {
	users         repository.UserRepository
	patients      repository.PatientRepository
	doctors       repository.DoctorRepository
	appointments  repository.AppointmentRepository
	tasks         repository.TaskRepository
	prescriptions repository.PrescriptionRepository
}

// NewPatientService creates a new patient service
func NewPatientService(
	users repository.UserRepository,
	patients repository.PatientRepository,
	doctors repository.DoctorRepository,
	appointments repository.AppointmentRepository,
	tasks repository.TaskRepository,
	prescriptions repository.PrescriptionRepository,
) PatientService {
	return &PatientServiceImpl{
		users:         users,
		patients:      patients,
		doctors:       doctors,
		appointments:  appointments,
		tasks:         tasks,
		prescriptions: prescriptions,
	}
}

// CreatePatient registers a login account and its patient profile.
func (s *PatientServiceImpl) CreatePatient(ctx context.Context, req *dto.CreatePatientRequest) (*model.Patient, error) {
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
		Role:           model.RolePatient,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, errors.NewInternalError("Failed to create user account")
	}

	patient := &model.Patient{
		Name:      req.Name,
		BirthDate: req.BirthDate,
		Gender:    req.Gender,
		UserID:    &user.ID,
	}
	if err := s.patients.CreatePatient(ctx, patient); err != nil {
		return nil, errors.NewInternalError("Failed to create patient profile")
	}
	return patient, nil
}

// GetMyProfile returns the patient profile of the authenticated user.
func (s *PatientServiceImpl) GetMyProfile(ctx context.Context, user model.User) (*model.Patient, error) {
	return s.requirePatientProfile(ctx, user)
}

// ListPatients returns all patients. Doctors use it to book visits; patients
// can read it to find their own record.
func (s *PatientServiceImpl) ListPatients(ctx context.Context, user model.User) ([]model.Patient, error) {
	patients, err := s.patients.ListPatients(ctx, 0, listPageSize)
	if err != nil {
		return nil, errors.NewInternalError("Failed to list patients")
	}
	return patients, nil
}

// MyAppointments returns the patient's visit history with doctor info,
// preparation tasks, and any approved summary.
func (s *PatientServiceImpl) MyAppointments(ctx context.Context, user model.User) ([]dto.AppointmentForPatientResponse, error) {
	patient, err := s.requirePatientProfile(ctx, user)
	if err != nil {
		return nil, err
	}

	appointments, err := s.appointments.ListAppointmentsByPatient(ctx, patient.ID)
	if err != nil {
		return nil, errors.NewInternalError("Failed to list appointments")
	}

	doctorIDs := lo.Uniq(lo.Map(appointments, func(a model.Appointment, _ int) int { return a.DoctorID }))
	doctorsByID := make(map[int]*model.Doctor, len(doctorIDs))
	for _, id := range doctorIDs {
		doctor, err := s.doctors.GetDoctorByID(ctx, id)
		if err != nil {
			continue
		}
		doctorsByID[id] = doctor
	}

	result := []dto.AppointmentForPatientResponse{}
	for _, appt := range appointments {
		doctorRef := dto.DoctorRef{}
		if doctor, ok := doctorsByID[appt.DoctorID]; ok {
			doctorRef = dto.DoctorRef{Name: doctor.Name, Specialty: doctor.Specialty}
		}

		tasks, err := s.tasks.ListTasksByAppointment(ctx, appt.ID)
		if err != nil {
			return nil, errors.NewInternalError("Failed to list appointment tasks")
		}

		result = append(result, dto.AppointmentForPatientResponse{
			ID:              appt.ID,
			AppointmentDate: appt.AppointmentDate,
			Reason:          appt.Reason,
			Doctor:          doctorRef,
			Tasks:           tasks,
			Summary:         appt.Summary,
			Tags:            appt.Tags,
			AppointmentType: appt.AppointmentType,
			CreatedAt:       appt.CreatedAt,
		})
	}
	return result, nil
}

// MyPrescriptions returns the authenticated patient's prescriptions.
func (s *PatientServiceImpl) MyPrescriptions(ctx context.Context, user model.User) ([]model.Prescription, error) {
	patient, err := s.requirePatientProfile(ctx, user)
	if err != nil {
		return nil, err
	}
	prescriptions, err := s.prescriptions.ListPrescriptionsByPatient(ctx, patient.ID)
	if err != nil {
		return nil, errors.NewInternalError("Failed to list prescriptions")
	}
	return prescriptions, nil
}

// PatientPrescriptions returns a patient's prescriptions. Doctors may read
// any patient; a patient may only read their own.
func (s *PatientServiceImpl) PatientPrescriptions(ctx context.Context, user model.User, patientID int) ([]model.Prescription, error) {
	if user.Role == model.RolePatient {
		patient, err := s.patients.GetPatientByUserID(ctx, user.ID)
		if err != nil || patient.ID != patientID {
			return nil, errors.NewForbiddenError("Cannot read another patient's prescriptions")
		}
	}

	prescriptions, err := s.prescriptions.ListPrescriptionsByPatient(ctx, patientID)
	if err != nil {
		return nil, errors.NewInternalError("Failed to list prescriptions")
	}
	return prescriptions, nil
}

func (s *PatientServiceImpl) requirePatientProfile(ctx context.Context, user model.User) (*model.Patient, error) {
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
	return patient, nil
}
