package dto

import (
	"time"

	"github.com/willyyyaj/medical-system/internal/api/errors"
)

// CreateTaskRequest adds an item to the patient's to-do list, optionally
// linked to one of their appointments.
type CreateTaskRequest struct {
	Description   string `json:"description" binding:"required"`
	DueDate       string `json:"due_date" binding:"required"`
	AppointmentID *int   `json:"appointment_id,omitempty"`
}

// Validate performs domain-specific validation
func (r *CreateTaskRequest) Validate() error {
	validationErrors := make(map[string]string)

	if !validDate(r.DueDate) {
		validationErrors["due_date"] = "must be a YYYY-MM-DD date"
	}
	if r.AppointmentID != nil && *r.AppointmentID <= 0 {
		validationErrors["appointment_id"] = "must be a positive ID"
	}

	if len(validationErrors) > 0 {
		return errors.NewValidationError("Invalid task request", validationErrors)
	}
	return nil
}

// AppointmentTaskRequest creates a preparation task under a specific
// appointment; the appointment ID comes from the path.
type AppointmentTaskRequest struct {
	Description string `json:"description" binding:"required"`
	DueDate     string `json:"due_date" binding:"required"`
}

// UpdateTaskRequest toggles the completion flag. Pointer so that an explicit
// false still binds.
type UpdateTaskRequest struct {
	IsCompleted *bool `json:"is_completed" binding:"required"`
}

func validDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}
