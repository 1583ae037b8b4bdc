package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "github.com/willyyyaj/medical-system/internal/api/errors"
	"github.com/willyyyaj/medical-system/internal/api/v1/dto"
	"github.com/willyyyaj/medical-system/internal/app/ai"
	"github.com/willyyyaj/medical-system/internal/app/model"
	"github.com/willyyyaj/medical-system/internal/app/notify"
	"github.com/willyyyaj/medical-system/internal/app/testutil"
)

// fixedGenerator returns one canned text for every prompt.
type fixedGenerator struct {
	text string
	err  error
}

func (g *fixedGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	return g.text, g.err
}

func newAppointmentService(repo *testutil.MemRepo, assistant *ai.Assistant) *AppointmentServiceImpl {
	service := NewAppointmentService(repo, repo, repo, repo, assistant, notify.NewHub())
	return service.(*AppointmentServiceImpl)
}

func TestCreateAppointment(t *testing.T) {
	repo := testutil.NewMemRepo()
	ctx := context.Background()
	doctorUser, doctor := seedDoctor(t, repo, "dr_wang")
	_, patient := seedPatient(t, repo, "meiling")

	service := newAppointmentService(repo, nil)

	appt, err := service.Create(ctx, doctorUser, &dto.CreateAppointmentRequest{
		AppointmentDate: "2025-07-01",
		Reason:          "回診",
		PatientID:       patient.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, doctor.ID, appt.DoctorID)
	assert.Equal(t, model.AppointmentScheduled, appt.AppointmentType)
}

func TestCreateAppointment_PatientForbidden(t *testing.T) {
	repo := testutil.NewMemRepo()
	patientUser, patient := seedPatient(t, repo, "meiling")

	service := newAppointmentService(repo, nil)

	_, err := service.Create(context.Background(), patientUser, &dto.CreateAppointmentRequest{
		AppointmentDate: "2025-07-01",
		Reason:          "回診",
		PatientID:       patient.ID,
	})
	requireAPIError(t, err, apierrors.KindForbidden)
}

func TestCreateAppointment_UnknownPatient(t *testing.T) {
	repo := testutil.NewMemRepo()
	doctorUser, _ := seedDoctor(t, repo, "dr_wang")

	service := newAppointmentService(repo, nil)

	_, err := service.Create(context.Background(), doctorUser, &dto.CreateAppointmentRequest{
		AppointmentDate: "2025-07-01",
		Reason:          "回診",
		PatientID:       999,
	})
	requireAPIError(t, err, apierrors.KindNotFound)
}

func TestCreateWalkIn_StampsCurrentTime(t *testing.T) {
	repo := testutil.NewMemRepo()
	ctx := context.Background()
	doctorUser, _ := seedDoctor(t, repo, "dr_wang")
	_, patient := seedPatient(t, repo, "meiling")

	service := newAppointmentService(repo, nil)
	service.now = func() time.Time {
		return time.Date(2025, 6, 1, 9, 30, 15, 123456000, time.UTC)
	}

	appt, err := service.CreateWalkIn(ctx, doctorUser, &dto.WalkInAppointmentRequest{
		Reason:    "急性腹痛",
		PatientID: patient.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, "2025-06-01T09:30:15.123456Z", appt.AppointmentDate)
	assert.Equal(t, model.AppointmentWalkIn, appt.AppointmentType)
}

func TestGetSummary_PlaceholderWhenUnapproved(t *testing.T) {
	repo := testutil.NewMemRepo()
	ctx := context.Background()
	patientUser, patient := seedPatient(t, repo, "meiling")
	_, doctor := seedDoctor(t, repo, "dr_wang")

	appt := &model.Appointment{AppointmentDate: "2025-06-10", PatientID: patient.ID, DoctorID: doctor.ID}
	require.NoError(t, repo.CreateAppointment(ctx, appt))

	service := newAppointmentService(repo, nil)

	detail, err := service.GetSummary(ctx, patientUser, appt.ID)
	require.NoError(t, err)

	assert.Equal(t, summaryPlaceholder, detail.Summary)
	assert.Equal(t, doctor.Name, detail.Doctor.Name)
}

func TestGetSummary_OtherPatientForbidden(t *testing.T) {
	repo := testutil.NewMemRepo()
	ctx := context.Background()
	_, patient := seedPatient(t, repo, "meiling")
	otherUser, _ := seedPatient(t, repo, "other")
	_, doctor := seedDoctor(t, repo, "dr_wang")

	appt := &model.Appointment{AppointmentDate: "2025-06-10", PatientID: patient.ID, DoctorID: doctor.ID}
	require.NoError(t, repo.CreateAppointment(ctx, appt))

	service := newAppointmentService(repo, nil)

	_, err := service.GetSummary(ctx, otherUser, appt.ID)
	requireAPIError(t, err, apierrors.KindForbidden)
}

func TestApproveSummary_StoresTagsFromAssistant(t *testing.T) {
	repo := testutil.NewMemRepo()
	ctx := context.Background()
	doctorUser, doctor := seedDoctor(t, repo, "dr_wang")
	_, patient := seedPatient(t, repo, "meiling")

	appt := &model.Appointment{AppointmentDate: "2025-06-10", PatientID: patient.ID, DoctorID: doctor.ID}
	require.NoError(t, repo.CreateAppointment(ctx, appt))

	assistant := ai.NewAssistant(&fixedGenerator{text: "高血壓,少鹽飲食"})
	service := newAppointmentService(repo, assistant)

	require.NoError(t, service.ApproveSummary(ctx, doctorUser, appt.ID, "## 看診重點摘要\n\n內容"))

	stored, err := repo.GetAppointmentByID(ctx, appt.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.Summary)
	assert.Equal(t, "## 看診重點摘要\n\n內容", *stored.Summary)
	require.NotNil(t, stored.Tags)
	assert.Equal(t, "高血壓,少鹽飲食", *stored.Tags)
}

func TestApproveSummary_TagFailureStillStoresSummary(t *testing.T) {
	repo := testutil.NewMemRepo()
	ctx := context.Background()
	doctorUser, doctor := seedDoctor(t, repo, "dr_wang")
	_, patient := seedPatient(t, repo, "meiling")

	appt := &model.Appointment{AppointmentDate: "2025-06-10", PatientID: patient.ID, DoctorID: doctor.ID}
	require.NoError(t, repo.CreateAppointment(ctx, appt))

	assistant := ai.NewAssistant(&fixedGenerator{err: errors.New("quota exceeded")})
	service := newAppointmentService(repo, assistant)

	require.NoError(t, service.ApproveSummary(ctx, doctorUser, appt.ID, "summary"))

	stored, err := repo.GetAppointmentByID(ctx, appt.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.Summary)
	assert.Nil(t, stored.Tags)
}

func TestApproveSummary_OtherDoctorForbidden(t *testing.T) {
	repo := testutil.NewMemRepo()
	ctx := context.Background()
	_, owner := seedDoctor(t, repo, "dr_wang")
	intruderUser, _ := seedDoctor(t, repo, "dr_lee")
	_, patient := seedPatient(t, repo, "meiling")

	appt := &model.Appointment{AppointmentDate: "2025-06-10", PatientID: patient.ID, DoctorID: owner.ID}
	require.NoError(t, repo.CreateAppointment(ctx, appt))

	service := newAppointmentService(repo, nil)

	err := service.ApproveSummary(ctx, intruderUser, appt.ID, "summary")
	requireAPIError(t, err, apierrors.KindForbidden)
}

func TestAppointmentCreateTask_OwnershipRequired(t *testing.T) {
	repo := testutil.NewMemRepo()
	ctx := context.Background()
	_, doctor := seedDoctor(t, repo, "dr_wang")
	patientUser, patient := seedPatient(t, repo, "meiling")
	otherUser, _ := seedPatient(t, repo, "other")

	appt := &model.Appointment{AppointmentDate: "2025-06-10", PatientID: patient.ID, DoctorID: doctor.ID}
	require.NoError(t, repo.CreateAppointment(ctx, appt))

	service := newAppointmentService(repo, nil)

	task, err := service.CreateTask(ctx, patientUser, appt.ID, &dto.AppointmentTaskRequest{
		Description: "禁食八小時",
		DueDate:     "2025-06-09",
	})
	require.NoError(t, err)
	assert.Equal(t, patient.ID, task.PatientID)
	require.NotNil(t, task.AppointmentID)
	assert.Equal(t, appt.ID, *task.AppointmentID)

	// Someone else's appointment reads as missing, not forbidden.
	_, err = service.CreateTask(ctx, otherUser, appt.ID, &dto.AppointmentTaskRequest{
		Description: "x",
		DueDate:     "2025-06-09",
	})
	requireAPIError(t, err, apierrors.KindNotFound)
}

func TestDeleteAppointment_Missing(t *testing.T) {
	repo := testutil.NewMemRepo()
	service := newAppointmentService(repo, nil)

	err := service.Delete(context.Background(), 404)
	requireAPIError(t, err, apierrors.KindNotFound)
}
