package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/willyyyaj/medical-system/internal/api/middleware"
	"github.com/willyyyaj/medical-system/internal/api/v1/services"
)

// MedicationHandler handles drug reference lookups
type MedicationHandler struct {
	service services.MedicationService
}

// NewMedicationHandler creates a new medication handler
func NewMedicationHandler(service services.MedicationService) *MedicationHandler {
	return &MedicationHandler{service: service}
}

// Get handles GET /api/v1/medication-info/:code
func (h *MedicationHandler) Get(c *gin.Context) {
	info, err := h.service.Lookup(c.Request.Context(), c.Param("code"))
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, info)
}
