package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/willyyyaj/medical-system/internal/api/errors"
	"github.com/willyyyaj/medical-system/internal/api/v1/dto"
	"github.com/willyyyaj/medical-system/internal/app/auth"
	"github.com/willyyyaj/medical-system/internal/app/testutil"
)

func TestLogin(t *testing.T) {
	repo := testutil.NewMemRepo()
	issuer := auth.NewTokenIssuer("unit-test-key")
	seedDoctor(t, repo, "dr_wang")

	service := NewAuthService(repo, issuer)

	resp, err := service.Login(context.Background(), &dto.LoginRequest{
		Username: "dr_wang",
		Password: "password-dr_wang",
	})
	require.NoError(t, err)

	assert.Equal(t, "bearer", resp.TokenType)

	username, err := issuer.ParseToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "dr_wang", username)
}

func TestLogin_BadCredentials(t *testing.T) {
	repo := testutil.NewMemRepo()
	issuer := auth.NewTokenIssuer("unit-test-key")
	seedDoctor(t, repo, "dr_wang")

	service := NewAuthService(repo, issuer)

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"unknown user", "nobody", "whatever"},
		{"wrong password", "dr_wang", "wrong"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Login(context.Background(), &dto.LoginRequest{
				Username: tt.username,
				Password: tt.password,
			})

			apiErr := requireAPIError(t, err, errors.KindUnauthorized)
			// Identical message for both cases so the endpoint does not
			// reveal which usernames exist.
			assert.Equal(t, "Incorrect username or password", apiErr.Message)
		})
	}
}
