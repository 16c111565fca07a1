package appointment

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrUnknownSlot   = errors.New("slot is not offered")
	ErrInvalidDate   = errors.New("date must be YYYY-MM-DD")
	ErrInvalidSlot   = errors.New("slot must be HH:MM")
	ErrInvalidFormat = errors.New("unrecognized date-time format")
)

// Slot is a time of day in "HH:MM" form.
type Slot string

// DefaultSlots is the consultation slot list shown by the parent app.
var DefaultSlots = []Slot{
	"08:00", "08:30", "09:00", "09:30", "10:00", "10:30", "11:00",
	"13:30", "14:00", "14:30", "15:00", "15:30", "16:00", "16:30",
}

// SlotStatus pairs an offered slot with its validation result on a given day.
type SlotStatus struct {
	Slot   Slot
	At     time.Time
	Result Result
}

// Clock returns the hour and minute of the slot.
func (s Slot) Clock() (int, int, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(string(s)))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidSlot, string(s))
	}
	return t.Hour(), t.Minute(), nil
}

func containsSlot(allowed []Slot, s Slot) bool {
	for _, a := range allowed {
		if a == s {
			return true
		}
	}
	return false
}

// At combines a YYYY-MM-DD date with the slot in loc.
func (s Slot) At(date string, loc *time.Location) (time.Time, error) {
	day, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(date), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	h, m, err := s.Clock()
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.Year(), day.Month(), day.Day(), h, m, 0, 0, loc), nil
}

// ValidateSlot validates a slot picked from allowed on the given date.
func (v *Validator) ValidateSlot(date string, slot Slot, allowed []Slot, now time.Time) (Result, time.Time, error) {
	if !containsSlot(allowed, slot) {
		return Result{}, time.Time{}, fmt.Errorf("%w: %q", ErrUnknownSlot, string(slot))
	}
	at, err := slot.At(date, v.location(now))
	if err != nil {
		return Result{}, time.Time{}, err
	}
	return v.Validate(at, now), at, nil
}

// SlotsForDate reports every allowed slot on date with its result.
func (v *Validator) SlotsForDate(date string, allowed []Slot, now time.Time) ([]SlotStatus, error) {
	out := make([]SlotStatus, 0, len(allowed))
	for _, s := range allowed {
		at, err := s.At(date, v.location(now))
		if err != nil {
			return nil, err
		}
		out = append(out, SlotStatus{Slot: s, At: at, Result: v.Validate(at, now)})
	}
	return out, nil
}

var zonedLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
}

var localLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// ParseCandidate reads a user supplied date-time. Zone-less values are taken
// in loc; zoned values are converted to it.
func ParseCandidate(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.In(loc), nil
		}
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
}

// ValidateISO parses and validates a free-form date-time.
func (v *Validator) ValidateISO(s string, now time.Time) (Result, time.Time, error) {
	at, err := ParseCandidate(s, v.location(now))
	if err != nil {
		return Result{}, time.Time{}, err
	}
	return v.Validate(at, now), at, nil
}
