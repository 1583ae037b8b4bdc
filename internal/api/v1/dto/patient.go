package dto

import (
	"github.com/willyyyaj/medical-system/internal/api/errors"
)

// CreatePatientRequest registers a patient profile together with its login
// account. The birthDate key matches the frontend's camelCase contract.
type CreatePatientRequest struct {
	Name        string      `json:"name" binding:"required,max=128"`
	BirthDate   string      `json:"birthDate" binding:"required"`
	Gender      string      `json:"gender" binding:"required"`
	Credentials Credentials `json:"credentials" binding:"required"`
}

// Validate performs domain-specific validation
func (r *CreatePatientRequest) Validate() error {
	validationErrors := make(map[string]string)

	if !validDate(r.BirthDate) {
		validationErrors["birthDate"] = "must be a YYYY-MM-DD date"
	}

	if len(validationErrors) > 0 {
		return errors.NewValidationError("Invalid patient request", validationErrors)
	}
	return nil
}
