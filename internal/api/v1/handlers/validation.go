package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/willyyyaj/medical-system/internal/api/middleware"
	"github.com/willyyyaj/medical-system/internal/api/v1/dto"
	"github.com/willyyyaj/medical-system/internal/api/v1/services"
)

// ValidationHandler handles summary QA endpoints
type ValidationHandler struct {
	service services.ValidationService
}

// NewValidationHandler creates a new validation handler
func NewValidationHandler(service services.ValidationService) *ValidationHandler {
	return &ValidationHandler{service: service}
}

// ValidateSummary handles POST /api/v1/validation/validate-summary
func (h *ValidationHandler) ValidateSummary(c *gin.Context) {
	var req dto.ValidateSummaryRequest
	if err := middleware.ValidateRequest(c, &req); err != nil {
		middleware.HandleError(c, err)
		return
	}

	user, _ := middleware.CurrentUser(c)

	report, err := h.service.ValidateSummary(c.Request.Context(), user, &req)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// SmartModify handles POST /api/v1/validation/smart-modify
func (h *ValidationHandler) SmartModify(c *gin.Context) {
	var req dto.SmartModifyRequest
	if err := middleware.ValidateRequest(c, &req); err != nil {
		middleware.HandleError(c, err)
		return
	}

	user, _ := middleware.CurrentUser(c)

	result, err := h.service.SmartModify(c.Request.Context(), user, &req)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Stats handles GET /api/v1/validation/validation-stats
func (h *ValidationHandler) Stats(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	stats, err := h.service.Stats(user)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
