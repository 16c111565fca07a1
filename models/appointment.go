package models

import "time"

const (
	AppointmentPending   = "pending"
	AppointmentConfirmed = "confirmed"
	AppointmentCancelled = "cancelled"
	AppointmentCompleted = "completed"
)

// Appointment is a consultation a parent booked with a school nurse.
type Appointment struct {
	ID          string    `bson:"id" json:"id"`
	ParentID    string    `bson:"parentId" json:"parentId"`
	StudentID   string    `bson:"studentId" json:"studentId"`
	NurseID     string    `bson:"nurseId" json:"nurseId"`
	ScheduledAt time.Time `bson:"scheduledAt" json:"scheduledAt"`
	Date        string    `bson:"date" json:"date"`                     // "2006-01-02" in the school's timezone
	Slot        string    `bson:"slot,omitempty" json:"slot,omitempty"` // set when booked from the slot list
	Reason      string    `bson:"reason,omitempty" json:"reason,omitempty"`
	Status      string    `bson:"status" json:"status"`
	Reminded    bool      `bson:"reminded" json:"reminded"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}

// AppointmentInput carries either DateTime or the Date+Slot pair.
type AppointmentInput struct {
	StudentID string `json:"studentId"`
	NurseID   string `json:"nurseId"`
	Reason    string `json:"reason"`
	DateTime  string `json:"dateTime,omitempty"`
	Date      string `json:"date,omitempty"`
	Slot      string `json:"slot,omitempty"`
}

// ValidationResponse is the window check result returned to the app.
type ValidationResponse struct {
	IsValid      bool       `json:"isValid"`
	Code         string     `json:"code,omitempty"`
	ErrorMessage string     `json:"errorMessage,omitempty"`
	ScheduledAt  *time.Time `json:"scheduledAt,omitempty"`
}

// SlotAvailability describes one offered slot on a given date.
type SlotAvailability struct {
	Slot      string    `json:"slot"`
	Start     time.Time `json:"start"`
	Available bool      `json:"available"`
	Code      string    `json:"code,omitempty"`
	Message   string    `json:"message,omitempty"`
}
