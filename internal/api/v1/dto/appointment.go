package dto

import (
	"time"

	"github.com/willyyyaj/medical-system/internal/app/model"
)

// CreateAppointmentRequest books a future visit. The acting doctor is taken
// from the access token.
type CreateAppointmentRequest struct {
	AppointmentDate string `json:"appointment_date" binding:"required"`
	Reason          string `json:"reason" binding:"required"`
	PatientID       int    `json:"patient_id" binding:"required,gt=0"`
}

// WalkInAppointmentRequest records a same-day visit. The appointment date is
// stamped server-side.
type WalkInAppointmentRequest struct {
	PatientID int    `json:"patient_id" binding:"required,gt=0"`
	Reason    string `json:"reason" binding:"required"`
}

// UpdateSummaryRequest stores the doctor-approved visit summary.
type UpdateSummaryRequest struct {
	Summary string `json:"summary" binding:"required"`
}

// DoctorRef is the doctor info embedded in appointment detail responses.
type DoctorRef struct {
	Name      string `json:"name"`
	Specialty string `json:"specialty"`
}

// TaskBrief is the trimmed-down task shape embedded in summary details.
type TaskBrief struct {
	Description string `json:"description"`
	IsCompleted bool   `json:"is_completed"`
}

// AppointmentDetailResponse is one visit with its doctor, preparation tasks
// and summary text.
type AppointmentDetailResponse struct {
	ID              int         `json:"id"`
	AppointmentDate string      `json:"appointment_date"`
	Reason          string      `json:"reason"`
	Doctor          DoctorRef   `json:"doctor"`
	Tasks           []TaskBrief `json:"tasks"`
	Summary         string      `json:"summary"`
}

// AppointmentForDoctorResponse is a visit as shown on the doctor's worklist,
// with the patient record embedded.
type AppointmentForDoctorResponse struct {
	ID              int           `json:"id"`
	AppointmentDate string        `json:"appointment_date"`
	Reason          string        `json:"reason"`
	Patient         model.Patient `json:"patient"`
	AppointmentType string        `json:"appointment_type"`
	CreatedAt       time.Time     `json:"created_at"`
	Tasks           []model.Task  `json:"tasks"`
	Summary         *string       `json:"summary,omitempty"`
}

// AppointmentForPatientResponse is a visit as shown in the patient's own
// history, with education tags once the summary is approved.
type AppointmentForPatientResponse struct {
	ID              int          `json:"id"`
	AppointmentDate string       `json:"appointment_date"`
	Reason          string       `json:"reason"`
	Doctor          DoctorRef    `json:"doctor"`
	Tasks           []model.Task `json:"tasks"`
	Summary         *string      `json:"summary,omitempty"`
	Tags            *string      `json:"tags,omitempty"`
	AppointmentType string       `json:"appointment_type"`
	CreatedAt       time.Time    `json:"created_at"`
}

// MessageResponse is a plain confirmation body.
type MessageResponse struct {
	Message string `json:"message"`
}
