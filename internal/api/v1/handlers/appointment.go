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

// AppointmentHandler handles appointment-related API endpoints
type AppointmentHandler struct {
	service services.AppointmentService
}

// NewAppointmentHandler creates a new appointment handler
func NewAppointmentHandler(service services.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{service: service}
}

// Create handles POST /api/v1/appointments
// Books a future visit for the acting doctor.
func (h *AppointmentHandler) Create(c *gin.Context) {
	var req dto.CreateAppointmentRequest
	if err := middleware.ValidateRequest(c, &req); err != nil {
		middleware.HandleError(c, err)
		return
	}

	user, _ := middleware.CurrentUser(c)

	appt, err := h.service.Create(c.Request.Context(), user, &req)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, appt)
}

// CreateWalkIn handles POST /api/v1/appointments/walk-in
// Records a same-day visit stamped with the current time.
func (h *AppointmentHandler) CreateWalkIn(c *gin.Context) {
	var req dto.WalkInAppointmentRequest
	if err := middleware.ValidateRequest(c, &req); err != nil {
		middleware.HandleError(c, err)
		return
	}

	user, _ := middleware.CurrentUser(c)

	appt, err := h.service.CreateWalkIn(c.Request.Context(), user, &req)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, appt)
}

// Delete handles DELETE /api/v1/appointments/:id
func (h *AppointmentHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		middleware.HandleError(c, errors.NewBadRequestError("Invalid appointment ID"))
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetSummary handles GET /api/v1/appointments/:id/summary
func (h *AppointmentHandler) GetSummary(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		middleware.HandleError(c, errors.NewBadRequestError("Invalid appointment ID"))
		return
	}

	user, _ := middleware.CurrentUser(c)

	detail, err := h.service.GetSummary(c.Request.Context(), user, id)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

// ApproveSummary handles POST /api/v1/appointments/:id/summary
// Stores the approved summary, derives education tags and notifies the
// patient.
func (h *AppointmentHandler) ApproveSummary(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		middleware.HandleError(c, errors.NewBadRequestError("Invalid appointment ID"))
		return
	}

	var req dto.UpdateSummaryRequest
	if err := middleware.ValidateRequest(c, &req); err != nil {
		middleware.HandleError(c, err)
		return
	}

	user, _ := middleware.CurrentUser(c)

	if err := h.service.ApproveSummary(c.Request.Context(), user, id, req.Summary); err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Summary and education tags stored"})
}

// CreateTask handles POST /api/v1/appointments/:id/tasks
// Adds a preparation task to one of the patient's own visits.
func (h *AppointmentHandler) CreateTask(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		middleware.HandleError(c, errors.NewBadRequestError("Invalid appointment ID"))
		return
	}

	var req dto.AppointmentTaskRequest
	if err := middleware.ValidateRequest(c, &req); err != nil {
		middleware.HandleError(c, err)
		return
	}

	user, _ := middleware.CurrentUser(c)

	task, err := h.service.CreateTask(c.Request.Context(), user, id, &req)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, task)
}
