package models

// ReminderPayload is the body of an appointment reminder task.
type ReminderPayload struct {
	AppointmentID string `json:"appointmentId"`
	ParentID      string `json:"parentId"`
	Title         string `json:"title"`
	Body          string `json:"body"`
	FireDate      string `json:"fireDate"`
}
