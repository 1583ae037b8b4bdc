package services

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/willyyyaj/medical-system/internal/api/errors"
	"github.com/willyyyaj/medical-system/internal/api/v1/dto"
	"github.com/willyyyaj/medical-system/internal/app/model"
	"github.com/willyyyaj/medical-system/internal/app/notify"
	"github.com/willyyyaj/medical-system/internal/app/repository"
)

// PrescriptionServiceImpl implements PrescriptionService
type PrescriptionServiceImpl struct {
	patients      repository.PatientRepository
	doctors       repository.DoctorRepository
	appointments  repository.AppointmentRepository
	prescriptions repository.PrescriptionRepository
	hub           *notify.Hub
	now           func() time.Time
}

// NewPrescriptionService creates a new prescription service
func NewPrescriptionService(
	patients repository.PatientRepository,
	doctors repository.DoctorRepository,
	appointments repository.AppointmentRepository,
	prescriptions repository.PrescriptionRepository,
	hub *notify.Hub,
) PrescriptionService {
	return &PrescriptionServiceImpl{
		patients:      patients,
		doctors:       doctors,
		appointments:  appointments,
		prescriptions: prescriptions,
		hub:           hub,
		now:           time.Now,
	}
}

// Create issues a prescription. prescribed_on is the linked visit's date when
// an appointment is given, otherwise today. The patient is notified over
// WebSocket if connected.
func (s *PrescriptionServiceImpl) Create(ctx context.Context, user model.User, req *dto.CreatePrescriptionRequest) (*model.Prescription, error) {
	if user.Role != model.RoleDoctor {
		return nil, errors.NewForbiddenError("Doctors only")
	}
	doctor, err := s.doctors.GetDoctorByUserID(ctx, user.ID)
	if err != nil {
		return nil, errors.NewNotFoundError("Doctor profile")
	}

	patient, err := s.patients.GetPatientByID(ctx, req.PatientID)
	if err != nil {
		return nil, errors.NewNotFoundError("Patient")
	}

	prescribedOn := s.now().Format("2006-01-02")
	if req.AppointmentID != nil {
		appt, err := s.appointments.GetAppointmentByID(ctx, *req.AppointmentID)
		if err != nil {
			return nil, errors.NewNotFoundError("Appointment")
		}
		prescribedOn = appt.AppointmentDate
	}

	prescription := &model.Prescription{
		MedicationName: req.MedicationName,
		MedicationCode: req.MedicationCode,
		Dosage:         req.Dosage,
		Frequency:      req.Frequency,
		PrescribedOn:   prescribedOn,
		PatientID:      req.PatientID,
		DoctorID:       doctor.ID,
		AppointmentID:  req.AppointmentID,
	}
	if err := s.prescriptions.CreatePrescription(ctx, prescription); err != nil {
		return nil, errors.NewInternalError("Failed to create prescription")
	}

	if patient.UserID != nil {
		s.hub.SendToUser(*patient.UserID, notify.Message{
			Type: notify.EventNewPrescription,
			Payload: map[string]string{
				"medication_name": prescription.MedicationName,
				"doctor_name":     doctor.Name,
			},
		})
	}
	return prescription, nil
}

// Delete revokes a prescription.
func (s *PrescriptionServiceImpl) Delete(ctx context.Context, user model.User, id int) error {
	if user.Role != model.RoleDoctor {
		return errors.NewForbiddenError("Doctors only")
	}
	if err := s.prescriptions.DeletePrescription(ctx, id); err != nil {
		if stderrors.Is(err, repository.ErrNotFound) {
			return errors.NewNotFoundError("Prescription")
		}
		return errors.NewInternalError("Failed to delete prescription")
	}
	return nil
}
