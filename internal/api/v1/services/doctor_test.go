package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "github.com/willyyyaj/medical-system/internal/api/errors"
	"github.com/willyyyaj/medical-system/internal/api/v1/dto"
	"github.com/willyyyaj/medical-system/internal/app/model"
	"github.com/willyyyaj/medical-system/internal/app/testutil"
)

func newDoctorService(repo *testutil.MemRepo) DoctorService {
	return NewDoctorService(repo, repo, repo, repo, repo)
}

func TestCreateDoctor(t *testing.T) {
	repo := testutil.NewMemRepo()
	service := newDoctorService(repo)

	doctor, err := service.CreateDoctor(context.Background(), &dto.CreateDoctorRequest{
		Name:      "王志明",
		Specialty: "心臟內科",
		Credentials: dto.Credentials{
			Username: "dr_wang",
			Password: "secret-password",
		},
	})
	require.NoError(t, err)

	assert.NotZero(t, doctor.ID)
	require.NotNil(t, doctor.UserID)

	user, err := repo.GetUserByUsername(context.Background(), "dr_wang")
	require.NoError(t, err)
	assert.Equal(t, model.RoleDoctor, user.Role)
	assert.NotEqual(t, "secret-password", user.HashedPassword)
}

func TestCreateDoctor_DuplicateUsername(t *testing.T) {
	repo := testutil.NewMemRepo()
	seedDoctor(t, repo, "dr_wang")
	service := newDoctorService(repo)

	_, err := service.CreateDoctor(context.Background(), &dto.CreateDoctorRequest{
		Name:      "另一位醫師",
		Specialty: "皮膚科",
		Credentials: dto.Credentials{
			Username: "dr_wang",
			Password: "another-password",
		},
	})

	apiErr := requireAPIError(t, err, apierrors.KindBadRequest)
	assert.Equal(t, "Username is already registered", apiErr.Message)
}

func TestDoctorGetMyProfile(t *testing.T) {
	repo := testutil.NewMemRepo()
	doctorUser, doctor := seedDoctor(t, repo, "dr_wang")
	patientUser, _ := seedPatient(t, repo, "meiling")
	service := newDoctorService(repo)

	got, err := service.GetMyProfile(context.Background(), doctorUser)
	require.NoError(t, err)
	assert.Equal(t, doctor.ID, got.ID)

	_, err = service.GetMyProfile(context.Background(), patientUser)
	requireAPIError(t, err, apierrors.KindForbidden)
}

func TestListDoctors(t *testing.T) {
	repo := testutil.NewMemRepo()
	seedDoctor(t, repo, "dr_wang")
	seedDoctor(t, repo, "dr_lee")
	service := newDoctorService(repo)

	doctors, err := service.ListDoctors(context.Background())
	require.NoError(t, err)
	assert.Len(t, doctors, 2)
}

func TestMyPatients(t *testing.T) {
	repo := testutil.NewMemRepo()
	ctx := context.Background()
	doctorUser, doctor := seedDoctor(t, repo, "dr_wang")
	_, first := seedPatient(t, repo, "meiling")
	_, second := seedPatient(t, repo, "chunhua")
	seedPatient(t, repo, "never_seen")

	// Two visits for the first patient must not duplicate them.
	for _, patientID := range []int{first.ID, first.ID, second.ID} {
		appt := &model.Appointment{AppointmentDate: "2025-06-10", PatientID: patientID, DoctorID: doctor.ID}
		require.NoError(t, repo.CreateAppointment(ctx, appt))
	}

	service := newDoctorService(repo)

	patients, err := service.MyPatients(ctx, doctorUser)
	require.NoError(t, err)

	require.Len(t, patients, 2)
	ids := []int{patients[0].ID, patients[1].ID}
	assert.ElementsMatch(t, []int{first.ID, second.ID}, ids)
}

func TestMyPatients_NoneSeen(t *testing.T) {
	repo := testutil.NewMemRepo()
	doctorUser, _ := seedDoctor(t, repo, "dr_wang")
	service := newDoctorService(repo)

	patients, err := service.MyPatients(context.Background(), doctorUser)
	require.NoError(t, err)
	assert.NotNil(t, patients)
	assert.Empty(t, patients)
}

func TestDoctorMyAppointments(t *testing.T) {
	repo := testutil.NewMemRepo()
	ctx := context.Background()
	doctorUser, doctor := seedDoctor(t, repo, "dr_wang")
	_, patient := seedPatient(t, repo, "meiling")

	appt := &model.Appointment{
		AppointmentDate: "2025-06-10",
		Reason:          "頭痛",
		PatientID:       patient.ID,
		DoctorID:        doctor.ID,
	}
	require.NoError(t, repo.CreateAppointment(ctx, appt))
	require.NoError(t, repo.CreateTask(ctx, &model.Task{
		Description:   "攜帶血壓紀錄",
		PatientID:     patient.ID,
		AppointmentID: &appt.ID,
	}))

	service := newDoctorService(repo)

	result, err := service.MyAppointments(ctx, doctorUser)
	require.NoError(t, err)

	require.Len(t, result, 1)
	assert.Equal(t, appt.ID, result[0].ID)
	assert.Equal(t, patient.ID, result[0].Patient.ID)
	require.Len(t, result[0].Tasks, 1)
	assert.Equal(t, "攜帶血壓紀錄", result[0].Tasks[0].Description)
}

func TestDoctorMyAppointments_EmptyIsNotNil(t *testing.T) {
	repo := testutil.NewMemRepo()
	doctorUser, _ := seedDoctor(t, repo, "dr_wang")
	service := newDoctorService(repo)

	result, err := service.MyAppointments(context.Background(), doctorUser)
	require.NoError(t, err)
	assert.NotNil(t, result)
	assert.Empty(t, result)
}
