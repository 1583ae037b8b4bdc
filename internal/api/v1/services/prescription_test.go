package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "github.com/willyyyaj/medical-system/internal/api/errors"
	"github.com/willyyyaj/medical-system/internal/api/v1/dto"
	"github.com/willyyyaj/medical-system/internal/app/model"
	"github.com/willyyyaj/medical-system/internal/app/notify"
	"github.com/willyyyaj/medical-system/internal/app/testutil"
)

func newPrescriptionService(repo *testutil.MemRepo) *PrescriptionServiceImpl {
	service := NewPrescriptionService(repo, repo, repo, repo, notify.NewHub())
	return service.(*PrescriptionServiceImpl)
}

func TestCreatePrescription_DatedToday(t *testing.T) {
	repo := testutil.NewMemRepo()
	ctx := context.Background()
	doctorUser, doctor := seedDoctor(t, repo, "dr_wang")
	_, patient := seedPatient(t, repo, "meiling")

	service := newPrescriptionService(repo)
	service.now = func() time.Time {
		return time.Date(2025, 6, 15, 14, 0, 0, 0, time.UTC)
	}

	prescription, err := service.Create(ctx, doctorUser, &dto.CreatePrescriptionRequest{
		MedicationName: "普拿疼",
		Dosage:         "500mg",
		Frequency:      "每日三次",
		PatientID:      patient.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, "2025-06-15", prescription.PrescribedOn)
	assert.Equal(t, doctor.ID, prescription.DoctorID)
	assert.Nil(t, prescription.AppointmentID)
}

func TestCreatePrescription_DatedToLinkedVisit(t *testing.T) {
	repo := testutil.NewMemRepo()
	ctx := context.Background()
	doctorUser, doctor := seedDoctor(t, repo, "dr_wang")
	_, patient := seedPatient(t, repo, "meiling")

	appt := &model.Appointment{AppointmentDate: "2025-05-02", PatientID: patient.ID, DoctorID: doctor.ID}
	require.NoError(t, repo.CreateAppointment(ctx, appt))

	service := newPrescriptionService(repo)

	prescription, err := service.Create(ctx, doctorUser, &dto.CreatePrescriptionRequest{
		MedicationName: "普拿疼",
		Dosage:         "500mg",
		Frequency:      "每日三次",
		PatientID:      patient.ID,
		AppointmentID:  &appt.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, "2025-05-02", prescription.PrescribedOn)
	require.NotNil(t, prescription.AppointmentID)
	assert.Equal(t, appt.ID, *prescription.AppointmentID)
}

func TestCreatePrescription_Errors(t *testing.T) {
	repo := testutil.NewMemRepo()
	doctorUser, _ := seedDoctor(t, repo, "dr_wang")
	patientUser, patient := seedPatient(t, repo, "meiling")
	missing := 999

	service := newPrescriptionService(repo)

	tests := []struct {
		name string
		user model.User
		req  *dto.CreatePrescriptionRequest
		kind apierrors.ErrorKind
	}{
		{
			name: "patient cannot prescribe",
			user: patientUser,
			req:  &dto.CreatePrescriptionRequest{MedicationName: "普拿疼", Dosage: "500mg", Frequency: "每日三次", PatientID: patient.ID},
			kind: apierrors.KindForbidden,
		},
		{
			name: "unknown patient",
			user: doctorUser,
			req:  &dto.CreatePrescriptionRequest{MedicationName: "普拿疼", Dosage: "500mg", Frequency: "每日三次", PatientID: missing},
			kind: apierrors.KindNotFound,
		},
		{
			name: "unknown appointment",
			user: doctorUser,
			req:  &dto.CreatePrescriptionRequest{MedicationName: "普拿疼", Dosage: "500mg", Frequency: "每日三次", PatientID: patient.ID, AppointmentID: &missing},
			kind: apierrors.KindNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Create(context.Background(), tt.user, tt.req)
			requireAPIError(t, err, tt.kind)
		})
	}
}

func TestDeletePrescription(t *testing.T) {
	repo := testutil.NewMemRepo()
	ctx := context.Background()
	doctorUser, doctor := seedDoctor(t, repo, "dr_wang")
	patientUser, patient := seedPatient(t, repo, "meiling")

	prescription := &model.Prescription{MedicationName: "普拿疼", PatientID: patient.ID, DoctorID: doctor.ID}
	require.NoError(t, repo.CreatePrescription(ctx, prescription))

	service := newPrescriptionService(repo)

	err := service.Delete(ctx, patientUser, prescription.ID)
	requireAPIError(t, err, apierrors.KindForbidden)

	require.NoError(t, service.Delete(ctx, doctorUser, prescription.ID))

	err = service.Delete(ctx, doctorUser, prescription.ID)
	requireAPIError(t, err, apierrors.KindNotFound)
}
