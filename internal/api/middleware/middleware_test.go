package middleware

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/willyyyaj/medical-system/internal/api/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type loginBody struct {
	Username string `json:"username" binding:"required,min=3"`
	Password string `json:"password" binding:"required"`
}

func TestValidateRequest(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantErr    bool
		wantKind   errors.ErrorKind
		wantDetail string
	}{
		{
			name: "valid body",
			body: `{"username":"alice","password":"secret"}`,
		},
		{
			name:       "missing required field",
			body:       `{"username":"alice"}`,
			wantErr:    true,
			wantKind:   errors.KindValidation,
			wantDetail: "This field is required",
		},
		{
			name:       "too short",
			body:       `{"username":"al","password":"secret"}`,
			wantErr:    true,
			wantKind:   errors.KindValidation,
			wantDetail: "Must be at least 3 characters",
		},
		{
			name:     "malformed json",
			body:     `{"username":`,
			wantErr:  true,
			wantKind: errors.KindBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			c.Request.Header.Set("Content-Type", "application/json")

			var obj loginBody
			err := ValidateRequest(c, &obj)

			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			apiErr, ok := err.(*errors.APIError)
			require.True(t, ok)
			assert.Equal(t, tt.wantKind, apiErr.Kind)
			if tt.wantDetail != "" {
				found := false
				for _, msg := range apiErr.Details {
					if msg == tt.wantDetail {
						found = true
					}
				}
				assert.True(t, found, "details: %v", apiErr.Details)
			}
		})
	}
}

func TestHandleError_APIError(t *testing.T) {
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Set("request_id", "req-123")

	HandleError(c, errors.NewForbiddenError("Doctors only"))

	assert.Equal(t, http.StatusForbidden, recorder.Code)

	var body errors.APIError
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "Doctors only", body.Message)
	assert.Equal(t, "req-123", body.RequestID)
}

func TestHandleError_NilIsNoop(t *testing.T) {
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)

	HandleError(c, nil)

	assert.False(t, c.IsAborted())
}

func TestErrorHandler_RecoversPanics(t *testing.T) {
	tests := []struct {
		name       string
		panicValue interface{}
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "api error panic keeps its status",
			panicValue: errors.NewNotFoundError("Patient"),
			wantStatus: http.StatusNotFound,
			wantMsg:    "Patient not found",
		},
		{
			name:       "plain error becomes 500",
			panicValue: io.ErrUnexpectedEOF,
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "Internal server error",
		},
		{
			name:       "arbitrary panic becomes 500",
			panicValue: "boom",
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(ErrorHandler(discardLogger()))
			router.GET("/boom", func(c *gin.Context) {
				panic(tt.panicValue)
			})

			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/boom", nil))

			assert.Equal(t, tt.wantStatus, recorder.Code)

			var body errors.APIError
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
			assert.Equal(t, tt.wantMsg, body.Message)
		})
	}
}

func TestRequestID_GeneratedAndEchoed(t *testing.T) {
	router := gin.New()
	router.Use(RequestID())
	router.GET("/", func(c *gin.Context) {
		assert.NotEmpty(t, c.GetString("request_id"))
		c.Status(http.StatusOK)
	})

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.NotEmpty(t, recorder.Header().Get("X-Request-ID"))
}

func TestRequestID_PreservesIncoming(t *testing.T) {
	router := gin.New()
	router.Use(RequestID())
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "caller-supplied")

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, "caller-supplied", recorder.Header().Get("X-Request-ID"))
}

func TestCORS_PreflightShortCircuits(t *testing.T) {
	router := gin.New()
	router.Use(CORS(DefaultCORSConfig([]string{"http://localhost:5173"})))
	router.POST("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "http://localhost:5173")

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusNoContent, recorder.Code)
	assert.Equal(t, "http://localhost:5173", recorder.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, recorder.Header().Get("Access-Control-Allow-Headers"), "Authorization")
}
