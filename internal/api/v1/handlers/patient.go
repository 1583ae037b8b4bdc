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

// PatientHandler handles patient-related API endpoints
type PatientHandler struct {
	service services.PatientService
}

// NewPatientHandler creates a new patient handler
func NewPatientHandler(service services.PatientService) *PatientHandler {
	return &PatientHandler{service: service}
}

// Create handles POST /api/v1/patients
// Registers a patient profile together with a login account.
func (h *PatientHandler) Create(c *gin.Context) {
	var req dto.CreatePatientRequest
	if err := middleware.ValidateRequest(c, &req); err != nil {
		middleware.HandleError(c, err)
		return
	}

	patient, err := h.service.CreatePatient(c.Request.Context(), &req)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, patient)
}

// List handles GET /api/v1/patients
func (h *PatientHandler) List(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	patients, err := h.service.ListPatients(c.Request.Context(), user)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, patients)
}

// Me handles GET /api/v1/patients/me
func (h *PatientHandler) Me(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	patient, err := h.service.GetMyProfile(c.Request.Context(), user)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, patient)
}

// MyAppointments handles GET /api/v1/patients/me/appointments
func (h *PatientHandler) MyAppointments(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	appointments, err := h.service.MyAppointments(c.Request.Context(), user)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, appointments)
}

// MyPrescriptions handles GET /api/v1/patients/me/prescriptions
func (h *PatientHandler) MyPrescriptions(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	prescriptions, err := h.service.MyPrescriptions(c.Request.Context(), user)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, prescriptions)
}

// Prescriptions handles GET /api/v1/patients/:id/prescriptions
// Doctors may read any patient's prescriptions; patients only their own.
func (h *PatientHandler) Prescriptions(c *gin.Context) {
	patientID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		middleware.HandleError(c, errors.NewBadRequestError("Invalid patient ID"))
		return
	}

	user, _ := middleware.CurrentUser(c)

	prescriptions, err := h.service.PatientPrescriptions(c.Request.Context(), user, patientID)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, prescriptions)
}
