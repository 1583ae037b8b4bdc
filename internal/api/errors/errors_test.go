package errors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		kind   ErrorKind
		status int
	}{
		{KindValidation, http.StatusUnprocessableEntity},
		{KindBadRequest, http.StatusBadRequest},
		{KindNotFound, http.StatusNotFound},
		{KindUnauthorized, http.StatusUnauthorized},
		{KindForbidden, http.StatusForbidden},
		{KindConflict, http.StatusConflict},
		{KindServiceUnavailable, http.StatusServiceUnavailable},
		{KindInternal, http.StatusInternalServerError},
		{ErrorKind("made-up"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			apiErr := &APIError{Kind: tt.kind}
			assert.Equal(t, tt.status, apiErr.HTTPStatus())
		})
	}
}

func TestNewNotFoundError(t *testing.T) {
	err := NewNotFoundError("Appointment")

	assert.Equal(t, "Appointment not found", err.Error())
	assert.Equal(t, KindNotFound, err.Kind)
}

func TestAsAPIError(t *testing.T) {
	apiErr := NewForbiddenError("Doctors only")
	assert.Same(t, apiErr, AsAPIError(apiErr))

	wrapped := AsAPIError(errors.New("pq: connection refused"))
	assert.Equal(t, KindInternal, wrapped.Kind)
	// Raw driver errors must never reach the client.
	assert.NotContains(t, wrapped.Message, "pq:")

	assert.Nil(t, AsAPIError(nil))
}
