package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	appointmentRepo "schoolhealth/database/repository/appointment"
	"schoolhealth/middleware"
	"schoolhealth/models"
	"schoolhealth/services/appointment"
	"schoolhealth/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	idempotencyHeader       = "Idempotency-Key"
	idempotencyTTL          = 24 * time.Hour
	codeIdempotencyConflict = "idempotency_conflict"
)

type AppointmentHandler struct {
	Service appointment.AppointmentService
	Cache   *redis.Client // optional; enables Idempotency-Key replay
	Logger  *zap.Logger
}

func NewAppointmentHandler(svc appointment.AppointmentService, cache *redis.Client, logger *zap.Logger) *AppointmentHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AppointmentHandler{Service: svc, Cache: cache, Logger: logger}
}

// statusFor maps service errors to HTTP statuses.
func statusFor(err error) int {
	var windowErr *appointment.WindowError
	switch {
	case errors.As(err, &windowErr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, appointment.ErrInvalidInput),
		errors.Is(err, appointment.ErrMissingCandidate),
		errors.Is(err, appointment.ErrAmbiguousCandidate),
		errors.Is(err, appointment.ErrInvalidDate),
		errors.Is(err, appointment.ErrInvalidSlot),
		errors.Is(err, appointment.ErrInvalidFormat),
		errors.Is(err, appointment.ErrUnknownSlot):
		return http.StatusBadRequest
	case errors.Is(err, appointmentRepo.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, appointment.ErrNotOwner):
		return http.StatusForbidden
	case errors.Is(err, appointment.ErrSlotTaken), errors.Is(err, appointment.ErrNotCancellable):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (h *AppointmentHandler) respondError(c *gin.Context, err error) {
	status := statusFor(err)

	var windowErr *appointment.WindowError
	if errors.As(err, &windowErr) {
		utils.JSONError(c, status, windowErr.Code, windowErr.Message)
		return
	}
	if status == http.StatusInternalServerError {
		middleware.LoggerFrom(c, h.Logger).Error("appointment request failed", zap.String("path", c.FullPath()), zap.Error(err))
		utils.JSONError(c, status, utils.CodeInternal, "Internal Server Error")
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func parentIDFrom(c *gin.Context) (string, bool) {
	v, exists := c.Get("parentID")
	if !exists {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}

// ValidateAppointment checks a candidate date-time without booking it.
func (h *AppointmentHandler) ValidateAppointment(c *gin.Context) {
	var input models.AppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}

	res, err := h.Service.Check(c.Request.Context(), input)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// GetSlots lists the offered slots of a day with their availability.
func (h *AppointmentHandler) GetSlots(c *gin.Context) {
	date := strings.TrimSpace(c.Query("date"))
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing date query parameter"})
		return
	}

	slots, err := h.Service.Slots(c.Request.Context(), date)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": date, "slots": slots})
}

// CreateAppointment books an appointment for the authenticated parent. A
// repeated Idempotency-Key with the same body returns the appointment created
// the first time; with a different body it is a 409.
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	parentID, ok := parentIDFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Parent not authenticated"})
		return
	}

	var input models.AppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}

	cacheKey, reqPrint := "", fingerprint(input)
	if key := strings.TrimSpace(c.GetHeader(idempotencyHeader)); key != "" && h.Cache != nil {
		cacheKey = idempotencyCacheKey(parentID, key)
		var prior idempotentBooking
		found, err := utils.GetJSON(c.Request.Context(), h.Cache, cacheKey, &prior)
		if err != nil {
			h.Logger.Warn("idempotency lookup failed", zap.Error(err))
		}
		if found {
			if prior.Fingerprint != reqPrint {
				utils.JSONError(c, http.StatusConflict, codeIdempotencyConflict,
					"Idempotency-Key was already used for a different appointment request")
				return
			}
			c.JSON(http.StatusOK, gin.H{"appointment": prior.Appointment})
			return
		}
	}

	appt, err := h.Service.Book(c.Request.Context(), parentID, input)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if cacheKey != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		stored := idempotentBooking{Fingerprint: reqPrint, Appointment: *appt}
		if err := utils.SetJSON(ctx, h.Cache, cacheKey, stored, idempotencyTTL); err != nil {
			h.Logger.Warn("failed to store idempotency key", zap.Error(err))
		}
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Appointment requested",
		"appointment": appt,
	})
}

func (h *AppointmentHandler) ListAppointments(c *gin.Context) {
	parentID, ok := parentIDFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Parent not authenticated"})
		return
	}

	appts, err := h.Service.ListForParent(c.Request.Context(), parentID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": appts})
}

func (h *AppointmentHandler) CancelAppointment(c *gin.Context) {
	parentID, ok := parentIDFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Parent not authenticated"})
		return
	}

	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing appointment ID in path"})
		return
	}

	if err := h.Service.Cancel(c.Request.Context(), parentID, id); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Appointment cancelled"})
}

// GetHolidays returns the active holiday table.
func (h *AppointmentHandler) GetHolidays(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"holidays": h.Service.Holidays()})
}
