package model

import "time"

// Role labels an account as either a practitioner or a patient.
type Role string

const (
	RoleDoctor  Role = "Doctor"
	RolePatient Role = "Patient"
)

// Appointment types. Walk-ins are stamped with the current time on creation.
const (
	AppointmentScheduled = "scheduled"
	AppointmentWalkIn    = "walk-in"
)

// User is a login account. Exactly one Patient or Doctor profile may
// reference it depending on Role.
type User struct {
	ID             int       `json:"id"`
	Username       string    `json:"username"`
	HashedPassword string    `json:"-"`
	Role           Role      `json:"role"`
	CreatedAt      time.Time `json:"created_at"`
}

// Patient is the clinical profile of a patient. UserID is nil for records
// imported in bulk that have no login account yet.
type Patient struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	BirthDate string    `json:"birthDate"`
	Gender    string    `json:"gender"`
	UserID    *int      `json:"user_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Doctor is the practitioner profile tied to a doctor account.
type Doctor struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Specialty string    `json:"specialty"`
	UserID    *int      `json:"user_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Appointment is a visit between a patient and a doctor. Summary and Tags
// are filled in after the visit; Tags is a comma-separated keyword list.
type Appointment struct {
	ID              int       `json:"id"`
	AppointmentDate string    `json:"appointment_date"`
	Reason          string    `json:"reason"`
	Summary         *string   `json:"summary,omitempty"`
	Tags            *string   `json:"tags,omitempty"`
	PatientID       int       `json:"patient_id"`
	DoctorID        int       `json:"doctor_id"`
	AppointmentType string    `json:"appointment_type"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Task is a follow-up item on a patient's to-do list, optionally linked to
// the appointment it came out of.
type Task struct {
	ID            int       `json:"id"`
	Description   string    `json:"description"`
	DueDate       string    `json:"due_date"`
	IsCompleted   bool      `json:"is_completed"`
	PatientID     int       `json:"patient_id"`
	AppointmentID *int      `json:"appointment_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// Prescription records medication issued to a patient by a doctor.
type Prescription struct {
	ID             int       `json:"id"`
	MedicationName string    `json:"medication_name"`
	MedicationCode *string   `json:"medication_code,omitempty"`
	Dosage         string    `json:"dosage"`
	Frequency      string    `json:"frequency"`
	PrescribedOn   string    `json:"prescribed_on"`
	PatientID      int       `json:"patient_id"`
	DoctorID       int       `json:"doctor_id"`
	AppointmentID  *int      `json:"appointment_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// MedicationInfo is the drug reference record returned by medication lookup.
type MedicationInfo struct {
	Name        string `json:"name"`
	ImageURL    string `json:"image_url,omitempty"`
	SideEffects string `json:"side_effects"`
}
