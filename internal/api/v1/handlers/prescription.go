package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/willyyyaj/medical-system/internal/api/errors"
	"github.com/willyyyaj/medical-system/internal/api/middleware"
	"github.com/willyyyaj/medical-system/internal/api/v1/dto"
	"github.com/willyyyaj/medical-system/internal/api/v1/services"
)

// PrescriptionHandler handles prescription-related API endpoints
type PrescriptionHandler struct {
	service services.PrescriptionService
}

// NewPrescriptionHandler creates a new prescription handler
func NewPrescriptionHandler(service services.PrescriptionService) *PrescriptionHandler {
	return &PrescriptionHandler{service: service}
}

// Create handles POST /api/v1/prescriptions
// Issues medication and notifies the patient over WebSocket.
func (h *PrescriptionHandler) Create(c *gin.Context) {
	var req dto.CreatePrescriptionRequest
	if err := middleware.ValidateRequest(c, &req); err != nil {
		middleware.HandleError(c, err)
		return
	}

	user, _ := middleware.CurrentUser(c)

	prescription, err := h.service.Create(c.Request.Context(), user, &req)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, prescription)
}

// Delete handles DELETE /api/v1/prescriptions/:id
func (h *PrescriptionHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		middleware.HandleError(c, errors.NewBadRequestError("Invalid prescription ID"))
		return
	}

	user, _ := middleware.CurrentUser(c)

	if err := h.service.Delete(c.Request.Context(), user, id); err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
