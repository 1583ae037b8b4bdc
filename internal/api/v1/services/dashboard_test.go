package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "github.com/willyyyaj/medical-system/internal/api/errors"
	"github.com/willyyyaj/medical-system/internal/app/model"
	"github.com/willyyyaj/medical-system/internal/app/testutil"
)

func newDashboardService(repo *testutil.MemRepo, today string) DashboardService {
	service := NewDashboardService(repo, repo, repo).(*DashboardServiceImpl)
	service.now = func() time.Time {
		parsed, _ := time.Parse("2006-01-02", today)
		return parsed
	}
	return service
}

func TestDashboard(t *testing.T) {
	repo := testutil.NewMemRepo()
	ctx := context.Background()
	patientUser, patient := seedPatient(t, repo, "meiling")
	_, doctor := seedDoctor(t, repo, "dr_wang")

	// Past visits never count as the next appointment.
	past := &model.Appointment{AppointmentDate: "2025-05-01", PatientID: patient.ID, DoctorID: doctor.ID}
	require.NoError(t, repo.CreateAppointment(ctx, past))
	soon := &model.Appointment{AppointmentDate: "2025-06-20", PatientID: patient.ID, DoctorID: doctor.ID}
	require.NoError(t, repo.CreateAppointment(ctx, soon))
	later := &model.Appointment{AppointmentDate: "2025-07-01", PatientID: patient.ID, DoctorID: doctor.ID}
	require.NoError(t, repo.CreateAppointment(ctx, later))

	require.NoError(t, repo.CreateTask(ctx, &model.Task{Description: "open", DueDate: "2025-06-18", PatientID: patient.ID}))
	require.NoError(t, repo.CreateTask(ctx, &model.Task{Description: "done", DueDate: "2025-06-18", PatientID: patient.ID, IsCompleted: true}))

	service := newDashboardService(repo, "2025-06-15")

	resp, err := service.Dashboard(ctx, patientUser)
	require.NoError(t, err)

	require.NotNil(t, resp.NextAppointment)
	assert.Equal(t, soon.ID, resp.NextAppointment.ID)
	require.Len(t, resp.PendingTasks, 1)
	assert.Equal(t, "open", resp.PendingTasks[0].Description)
}

func TestDashboard_SameDayVisitCounts(t *testing.T) {
	repo := testutil.NewMemRepo()
	ctx := context.Background()
	patientUser, patient := seedPatient(t, repo, "meiling")
	_, doctor := seedDoctor(t, repo, "dr_wang")

	today := &model.Appointment{AppointmentDate: "2025-06-15", PatientID: patient.ID, DoctorID: doctor.ID}
	require.NoError(t, repo.CreateAppointment(ctx, today))

	service := newDashboardService(repo, "2025-06-15")

	resp, err := service.Dashboard(ctx, patientUser)
	require.NoError(t, err)
	require.NotNil(t, resp.NextAppointment)
	assert.Equal(t, today.ID, resp.NextAppointment.ID)
}

func TestDashboard_NoUpcomingVisit(t *testing.T) {
	repo := testutil.NewMemRepo()
	patientUser, _ := seedPatient(t, repo, "meiling")

	service := newDashboardService(repo, "2025-06-15")

	resp, err := service.Dashboard(context.Background(), patientUser)
	require.NoError(t, err)
	assert.Nil(t, resp.NextAppointment)
	assert.Empty(t, resp.PendingTasks)
}

func TestDashboard_DoctorForbidden(t *testing.T) {
	repo := testutil.NewMemRepo()
	doctorUser, _ := seedDoctor(t, repo, "dr_wang")

	service := newDashboardService(repo, "2025-06-15")

	_, err := service.Dashboard(context.Background(), doctorUser)
	requireAPIError(t, err, apierrors.KindForbidden)
}
