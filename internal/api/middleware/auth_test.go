package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/willyyyaj/medical-system/internal/app/auth"
	"github.com/willyyyaj/medical-system/internal/app/model"
	"github.com/willyyyaj/medical-system/internal/app/testutil"
)

func authRouter(t *testing.T) (*gin.Engine, *auth.TokenIssuer) {
	t.Helper()

	repo := testutil.NewMemRepo()
	require.NoError(t, repo.CreateUser(context.Background(), &model.User{
		Username:       "dr_wang",
		HashedPassword: "irrelevant",
		Role:           model.RoleDoctor,
	}))

	issuer := auth.NewTokenIssuer("middleware-test-key")

	router := gin.New()
	router.GET("/whoami", RequireAuth(issuer, repo), func(c *gin.Context) {
		user, ok := CurrentUser(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"username": user.Username, "role": user.Role})
	})
	router.GET("/patients-only", RequireAuth(issuer, repo), RequireRole(model.RolePatient), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router, issuer
}

func TestRequireAuth(t *testing.T) {
	router, issuer := authRouter(t)

	token, err := issuer.IssueToken("dr_wang")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"username":"dr_wang"`)
	assert.Contains(t, rec.Body.String(), `"role":"Doctor"`)
}

func TestRequireAuth_Rejections(t *testing.T) {
	router, issuer := authRouter(t)

	unknownUserToken, err := issuer.IssueToken("ghost")
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"not bearer", "Basic abc"},
		{"garbage token", "Bearer not-a-jwt"},
		{"token for deleted user", "Bearer " + unknownUserToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
			assert.Contains(t, rec.Body.String(), "Could not validate credentials")
		})
	}
}

func TestRequireRole(t *testing.T) {
	router, issuer := authRouter(t)

	token, err := issuer.IssueToken("dr_wang")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/patients-only", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "Operation not permitted for this role")
}
