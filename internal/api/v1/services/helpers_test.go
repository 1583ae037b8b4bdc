package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/willyyyaj/medical-system/internal/api/errors"
	"github.com/willyyyaj/medical-system/internal/app/auth"
	"github.com/willyyyaj/medical-system/internal/app/model"
	"github.com/willyyyaj/medical-system/internal/app/testutil"
)

// seedDoctor registers a doctor account plus profile and returns both.
func seedDoctor(t *testing.T, repo *testutil.MemRepo, username string) (model.User, model.Doctor) {
	t.Helper()
	ctx := context.Background()

	hashed, err := auth.HashPassword("password-" + username)
	require.NoError(t, err)

	user := &model.User{Username: username, HashedPassword: hashed, Role: model.RoleDoctor}
	require.NoError(t, repo.CreateUser(ctx, user))

	doctor := &model.Doctor{Name: "Dr. " + username, Specialty: "家庭醫學科", UserID: &user.ID}
	require.NoError(t, repo.CreateDoctor(ctx, doctor))
	return *user, *doctor
}

// seedPatient registers a patient account plus profile and returns both.
func seedPatient(t *testing.T, repo *testutil.MemRepo, username string) (model.User, model.Patient) {
	t.Helper()
	ctx := context.Background()

	hashed, err := auth.HashPassword("password-" + username)
	require.NoError(t, err)

	user := &model.User{Username: username, HashedPassword: hashed, Role: model.RolePatient}
	require.NoError(t, repo.CreateUser(ctx, user))

	patient := &model.Patient{Name: username, BirthDate: "1990-01-01", Gender: "女性", UserID: &user.ID}
	require.NoError(t, repo.CreatePatient(ctx, patient))
	return *user, *patient
}

// requireAPIError asserts err is an APIError of the given kind.
func requireAPIError(t *testing.T, err error, kind errors.ErrorKind) *errors.APIError {
	t.Helper()
	require.Error(t, err)
	apiErr, ok := err.(*errors.APIError)
	require.True(t, ok, "expected *errors.APIError, got %T: %v", err, err)
	require.Equal(t, kind, apiErr.Kind)
	return apiErr
}
