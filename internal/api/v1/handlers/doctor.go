package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/willyyyaj/medical-system/internal/api/middleware"
	"github.com/willyyyaj/medical-system/internal/api/v1/dto"
	"github.com/willyyyaj/medical-system/internal/api/v1/services"
)

// DoctorHandler handles doctor-related API endpoints
type DoctorHandler struct {
	service services.DoctorService
}

// NewDoctorHandler creates a new doctor handler
func NewDoctorHandler(service services.DoctorService) *DoctorHandler {
	return &DoctorHandler{service: service}
}

// Create handles POST /api/v1/doctors
func (h *DoctorHandler) Create(c *gin.Context) {
	var req dto.CreateDoctorRequest
	if err := middleware.ValidateRequest(c, &req); err != nil {
		middleware.HandleError(c, err)
		return
	}

	doctor, err := h.service.CreateDoctor(c.Request.Context(), &req)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, doctor)
}

// List handles GET /api/v1/doctors
func (h *DoctorHandler) List(c *gin.Context) {
	doctors, err := h.service.ListDoctors(c.Request.Context())
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, doctors)
}

// Me handles GET /api/v1/doctors/me
func (h *DoctorHandler) Me(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	doctor, err := h.service.GetMyProfile(c.Request.Context(), user)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, doctor)
}

// MyPatients handles GET /api/v1/doctors/me/patients
// Returns the distinct patients seen through the doctor's appointments.
func (h *DoctorHandler) MyPatients(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	patients, err := h.service.MyPatients(c.Request.Context(), user)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, patients)
}

// MyAppointments handles GET /api/v1/doctors/me/appointments
func (h *DoctorHandler) MyAppointments(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	appointments, err := h.service.MyAppointments(c.Request.Context(), user)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, appointments)
}
