package dto

// CreatePrescriptionRequest issues medication to a patient. When linked to an
// appointment, prescribed_on is taken from that visit's date.
type CreatePrescriptionRequest struct {
	MedicationName string  `json:"medication_name" binding:"required"`
	MedicationCode *string `json:"medication_code,omitempty"`
	Dosage         string  `json:"dosage" binding:"required"`
	Frequency      string  `json:"frequency" binding:"required"`
	PatientID      int     `json:"patient_id" binding:"required,gt=0"`
	AppointmentID  *int    `json:"appointment_id,omitempty"`
}
