package dto

// CreateDoctorRequest registers a doctor profile together with its login
// account.
type CreateDoctorRequest struct {
	Name        string      `json:"name" binding:"required,max=128"`
	Specialty   string      `json:"specialty" binding:"required,max=128"`
	Credentials Credentials `json:"credentials" binding:"required"`
}
