package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups the endpoint handlers registered by routes.
type HandlerBundle struct {
	// Public appointment endpoints
	ValidateAppointmentHandler gin.HandlerFunc
	GetSlotsHandler            gin.HandlerFunc
	GetHolidaysHandler         gin.HandlerFunc

	// Parent endpoints
	CreateAppointmentHandler gin.HandlerFunc
	ListAppointmentsHandler  gin.HandlerFunc
	CancelAppointmentHandler gin.HandlerFunc

	// Middleware
	ParentAuth gin.HandlerFunc
}

// NewHandlerBundle wires an AppointmentHandler into a bundle.
func NewHandlerBundle(h *AppointmentHandler, parentAuth gin.HandlerFunc) *HandlerBundle {
	return &HandlerBundle{
		ValidateAppointmentHandler: h.ValidateAppointment,
		GetSlotsHandler:            h.GetSlots,
		GetHolidaysHandler:         h.GetHolidays,
		CreateAppointmentHandler:   h.CreateAppointment,
		ListAppointmentsHandler:    h.ListAppointments,
		CancelAppointmentHandler:   h.CancelAppointment,
		ParentAuth:                 parentAuth,
	}
}
