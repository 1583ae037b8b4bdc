package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/willyyyaj/medical-system/internal/api/middleware"
	"github.com/willyyyaj/medical-system/internal/api/v1/handlers"
	"github.com/willyyyaj/medical-system/internal/api/v1/services"
	"github.com/willyyyaj/medical-system/internal/app/auth"
	"github.com/willyyyaj/medical-system/internal/app/notify"
	"github.com/willyyyaj/medical-system/internal/app/repository"
)

// ServiceContainer holds everything the route tree needs
type ServiceContainer struct {
	AuthService         services.AuthService
	PatientService      services.PatientService
	DoctorService       services.DoctorService
	AppointmentService  services.AppointmentService
	TaskService         services.TaskService
	PrescriptionService services.PrescriptionService
	DashboardService    services.DashboardService
	AIService           services.AIService
	ValidationService   services.ValidationService
	MedicationService   services.MedicationService

	TokenIssuer *auth.TokenIssuer
	Users       repository.UserRepository
	Hub         *notify.Hub
}

// RegisterRoutes registers all v1 API routes
func RegisterRoutes(router *gin.RouterGroup, container *ServiceContainer) {
	requireAuth := middleware.RequireAuth(container.TokenIssuer, container.Users)

	authHandler := handlers.NewAuthHandler(container.AuthService)
	router.POST("/token", authHandler.Login)

	patientHandler := handlers.NewPatientHandler(container.PatientService)
	patients := router.Group("/patients")
	{
		patients.POST("", patientHandler.Create)
		patients.GET("", requireAuth, patientHandler.List)
		patients.GET("/me", requireAuth, patientHandler.Me)
		patients.GET("/me/appointments", requireAuth, patientHandler.MyAppointments)
		patients.GET("/me/prescriptions", requireAuth, patientHandler.MyPrescriptions)
		patients.GET("/:id/prescriptions", requireAuth, patientHandler.Prescriptions)
	}

	doctorHandler := handlers.NewDoctorHandler(container.DoctorService)
	doctors := router.Group("/doctors")
	{
		doctors.POST("", doctorHandler.Create)
		doctors.GET("", doctorHandler.List)
		doctors.GET("/me", requireAuth, doctorHandler.Me)
		doctors.GET("/me/patients", requireAuth, doctorHandler.MyPatients)
		doctors.GET("/me/appointments", requireAuth, doctorHandler.MyAppointments)
	}

	appointmentHandler := handlers.NewAppointmentHandler(container.AppointmentService)
	appointments := router.Group("/appointments", requireAuth)
	{
		appointments.POST("", appointmentHandler.Create)
		appointments.POST("/walk-in", appointmentHandler.CreateWalkIn)
		appointments.DELETE("/:id", appointmentHandler.Delete)
		appointments.GET("/:id/summary", appointmentHandler.GetSummary)
		appointments.POST("/:id/summary", appointmentHandler.ApproveSummary)
		appointments.POST("/:id/tasks", appointmentHandler.CreateTask)
	}

	taskHandler := handlers.NewTaskHandler(container.TaskService)
	tasks := router.Group("/tasks", requireAuth)
	{
		tasks.POST("", taskHandler.Create)
		tasks.PUT("/:id", taskHandler.Update)
		tasks.GET("/patient/:id", taskHandler.ListForPatient)
	}

	prescriptionHandler := handlers.NewPrescriptionHandler(container.PrescriptionService)
	prescriptions := router.Group("/prescriptions", requireAuth)
	{
		prescriptions.POST("", prescriptionHandler.Create)
		prescriptions.DELETE("/:id", prescriptionHandler.Delete)
	}

	dashboardHandler := handlers.NewDashboardHandler(container.DashboardService)
	router.GET("/dashboard", requireAuth, dashboardHandler.Get)

	aiHandler := handlers.NewAIHandler(container.AIService)
	router.POST("/summarize", requireAuth, aiHandler.Summarize)
	router.POST("/soap-summary", requireAuth, aiHandler.SOAPSummary)
	router.POST("/transcribe", aiHandler.Transcribe)

	validationHandler := handlers.NewValidationHandler(container.ValidationService)
	validation := router.Group("/validation", requireAuth)
	{
		validation.POST("/validate-summary", validationHandler.ValidateSummary)
		validation.POST("/smart-modify", validationHandler.SmartModify)
		validation.GET("/validation-stats", validationHandler.Stats)
	}

	medicationHandler := handlers.NewMedicationHandler(container.MedicationService)
	router.GET("/medication-info/:code", medicationHandler.Get)
}
