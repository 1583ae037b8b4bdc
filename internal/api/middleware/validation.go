package middleware

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/willyyyaj/medical-system/internal/api/errors"
)

// Validator lets request DTOs add checks beyond struct tags.
type Validator interface {
	Validate() error
}

// ValidateRequest binds the JSON body into obj and reports field-level
// validation errors in a consistent shape.
func ValidateRequest(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindJSON(obj); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			fields := make(map[string]string)
			for _, fieldError := range validationErrors {
				fields[fieldName(fieldError)] = validationMessage(fieldError)
			}
			return errors.NewValidationError("Request validation failed", fields)
		}
		return errors.NewBadRequestError(fmt.Sprintf("Invalid request body: %v", err))
	}

	if v, ok := obj.(Validator); ok {
		if err := v.Validate(); err != nil {
			if apiErr, ok := err.(*errors.APIError); ok {
				return apiErr
			}
			return errors.NewValidationError(err.Error(), nil)
		}
	}

	return nil
}

// ValidateQuery binds query parameters into obj.
func ValidateQuery(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindQuery(obj); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			fields := make(map[string]string)
			for _, fieldError := range validationErrors {
				fields[fieldName(fieldError)] = validationMessage(fieldError)
			}
			return errors.NewValidationError("Query validation failed", fields)
		}
		return errors.NewBadRequestError(fmt.Sprintf("Invalid query parameters: %v", err))
	}
	return nil
}

func fieldName(fe validator.FieldError) string {
	return strings.ToLower(fe.Field())
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "min":
		return fmt.Sprintf("Must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("Must be at most %s characters", fe.Param())
	case "email":
		return "Must be a valid email address"
	case "oneof":
		return fmt.Sprintf("Must be one of: %s", fe.Param())
	case "gt":
		return fmt.Sprintf("Must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("Must be at least %s", fe.Param())
	case "datetime":
		return fmt.Sprintf("Must match the format %s", fe.Param())
	default:
		return fmt.Sprintf("Failed validation: %s", fe.Tag())
	}
}
