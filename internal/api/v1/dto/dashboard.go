package dto

import "github.com/willyyyaj/medical-system/internal/app/model"

// DashboardResponse is the patient home view: their next upcoming visit and
// the tasks still open.
type DashboardResponse struct {
	NextAppointment *model.Appointment `json:"next_appointment"`
	PendingTasks    []model.Task       `json:"pending_tasks"`
}
