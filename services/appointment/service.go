package appointment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	appointmentRepo "schoolhealth/database/repository/appointment"
	"schoolhealth/models"

	"go.uber.org/zap"
)

var (
	ErrInvalidInput       = errors.New("invalid appointment input")
	ErrMissingCandidate   = errors.New("either dateTime or date and slot are required")
	ErrAmbiguousCandidate = errors.New("dateTime cannot be combined with date or slot")
	ErrSlotTaken          = errors.New("the nurse already has an appointment at this time")
	ErrNotOwner           = errors.New("appointment belongs to another parent")
	ErrNotCancellable     = errors.New("appointment can no longer be cancelled")
)

// ReminderScheduler queues a reminder for a booked appointment.
type ReminderScheduler interface {
	ScheduleReminder(ctx context.Context, appt models.Appointment) error
}

// AppointmentService is the parent-facing appointment API.
type AppointmentService interface {
	Check(ctx context.Context, input models.AppointmentInput) (models.ValidationResponse, error)
	Slots(ctx context.Context, date string) ([]models.SlotAvailability, error)
	Book(ctx context.Context, parentID string, input models.AppointmentInput) (*models.Appointment, error)
	ListForParent(ctx context.Context, parentID string) ([]models.Appointment, error)
	Cancel(ctx context.Context, parentID, appointmentID string) error
	Holidays() HolidayCalendar
}

// DefaultAppointmentService implements AppointmentService.
type DefaultAppointmentService struct {
	Repo         appointmentRepo.AppointmentRepository
	Validator    *Validator
	Reminders    ReminderScheduler // optional
	OfferedSlots []Slot            // defaults to DefaultSlots
	Messages     Catalog           // defaults to the Vietnamese catalog
	Now          func() time.Time  // defaults to time.Now
	Logger       *zap.Logger
}

func (s *DefaultAppointmentService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultAppointmentService) offered() []Slot {
	if len(s.OfferedSlots) > 0 {
		return s.OfferedSlots
	}
	return DefaultSlots
}

// catalog binds the configured messages to the validator's hours.
func (s *DefaultAppointmentService) catalog() Catalog {
	c := s.Messages
	if c == nil {
		c = Messages(DefaultLocale)
	}
	return c.ForRules(s.Validator.Rules)
}

func (s *DefaultAppointmentService) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return zap.NewNop()
}

// evaluate routes the input to the free-form or slot entry point.
func (s *DefaultAppointmentService) evaluate(input models.AppointmentInput) (Result, time.Time, error) {
	dateTime := strings.TrimSpace(input.DateTime)
	date := strings.TrimSpace(input.Date)
	slot := strings.TrimSpace(input.Slot)

	var (
		r   Result
		at  time.Time
		err error
	)
	switch {
	case dateTime != "" && (date != "" || slot != ""):
		return Result{}, time.Time{}, ErrAmbiguousCandidate
	case dateTime != "":
		r, at, err = s.Validator.ValidateISO(dateTime, s.now())
	case date != "" && slot != "":
		r, at, err = s.Validator.ValidateSlot(date, Slot(slot), s.offered(), s.now())
	default:
		return Result{}, time.Time{}, ErrMissingCandidate
	}
	if err != nil {
		return Result{}, time.Time{}, err
	}
	observe(r)
	return r, at, nil
}

func (s *DefaultAppointmentService) Check(_ context.Context, input models.AppointmentInput) (models.ValidationResponse, error) {
	r, at, err := s.evaluate(input)
	if err != nil {
		return models.ValidationResponse{}, err
	}
	if !r.Valid() {
		return models.ValidationResponse{
			Code:         r.Violation.String(),
			ErrorMessage: s.catalog().Render(r),
		}, nil
	}
	return models.ValidationResponse{IsValid: true, ScheduledAt: &at}, nil
}

func (s *DefaultAppointmentService) Slots(_ context.Context, date string) ([]models.SlotAvailability, error) {
	statuses, err := s.Validator.SlotsForDate(date, s.offered(), s.now())
	if err != nil {
		return nil, err
	}
	catalog := s.catalog()
	out := make([]models.SlotAvailability, 0, len(statuses))
	for _, st := range statuses {
		sa := models.SlotAvailability{
			Slot:      string(st.Slot),
			Start:     st.At,
			Available: st.Result.Valid(),
		}
		if !sa.Available {
			sa.Code = st.Result.Violation.String()
			sa.Message = catalog.Render(st.Result)
		}
		out = append(out, sa)
	}
	return out, nil
}

// Book validates the requested time, rejects double-booking of the nurse,
// stores the appointment and queues its reminder.
func (s *DefaultAppointmentService) Book(ctx context.Context, parentID string, input models.AppointmentInput) (*models.Appointment, error) {
	if parentID == "" {
		return nil, fmt.Errorf("%w: parent is required", ErrInvalidInput)
	}
	if strings.TrimSpace(input.StudentID) == "" {
		return nil, fmt.Errorf("%w: studentId is required", ErrInvalidInput)
	}
	if strings.TrimSpace(input.NurseID) == "" {
		return nil, fmt.Errorf("%w: nurseId is required", ErrInvalidInput)
	}

	r, at, err := s.evaluate(input)
	if err != nil {
		return nil, err
	}
	if !r.Valid() {
		return nil, NewWindowError(r, s.catalog())
	}

	taken, err := s.Repo.ExistsForNurseAt(ctx, input.NurseID, at)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrSlotTaken
	}

	appt := &models.Appointment{
		ParentID:    parentID,
		StudentID:   strings.TrimSpace(input.StudentID),
		NurseID:     strings.TrimSpace(input.NurseID),
		ScheduledAt: at,
		Date:        at.Format("2006-01-02"),
		Slot:        strings.TrimSpace(input.Slot),
		Reason:      strings.TrimSpace(input.Reason),
		Status:      models.AppointmentPending,
	}
	if err := s.Repo.Create(ctx, appt); err != nil {
		return nil, err
	}

	if s.Reminders != nil {
		if err := s.Reminders.ScheduleReminder(ctx, *appt); err != nil {
			s.logger().Warn("failed to schedule appointment reminder",
				zap.String("appointmentID", appt.ID), zap.Error(err))
		}
	}

	s.logger().Info("appointment booked",
		zap.String("appointmentID", appt.ID),
		zap.String("nurseID", appt.NurseID),
		zap.Time("scheduledAt", appt.ScheduledAt))
	return appt, nil
}

func (s *DefaultAppointmentService) ListForParent(ctx context.Context, parentID string) ([]models.Appointment, error) {
	return s.Repo.ListByParent(ctx, parentID)
}

func (s *DefaultAppointmentService) Cancel(ctx context.Context, parentID, appointmentID string) error {
	appt, err := s.Repo.GetByID(ctx, appointmentID)
	if err != nil {
		return err
	}
	if appt.ParentID != parentID {
		return ErrNotOwner
	}
	switch appt.Status {
	case models.AppointmentPending, models.AppointmentConfirmed:
	default:
		return ErrNotCancellable
	}
	if err := s.Repo.UpdateStatus(ctx, appointmentID, models.AppointmentCancelled); err != nil {
		return err
	}
	s.logger().Info("appointment cancelled", zap.String("appointmentID", appointmentID))
	return nil
}

// Holidays returns a copy of the active holiday table.
func (s *DefaultAppointmentService) Holidays() HolidayCalendar {
	out := make(HolidayCalendar, len(s.Validator.Holidays))
	copy(out, s.Validator.Holidays)
	return out
}
