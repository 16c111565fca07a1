package appointment

import (
	"fmt"
	"strings"
)

// Catalog maps each violation to its user-facing text. The OnHoliday entry
// takes the holiday name as its only verb. {open}, {close}, {lunchStart} and
// {lunchEnd} are filled from the window rules by ForRules.
type Catalog map[Violation]string

const DefaultLocale = "vi"

var catalogs = map[string]Catalog{
	"vi": {
		LeadTimeTooShort:     "Lịch hẹn phải được đặt trước ít nhất một ngày",
		OnWeekend:            "Không thể đặt lịch hẹn vào thứ Bảy hoặc Chủ nhật",
		OnHoliday:            "Không thể đặt lịch hẹn vào ngày lễ (%s)",
		OutsideBusinessHours: "Lịch hẹn phải nằm trong giờ làm việc ({open} - {close})",
		DuringLunchBreak:     "Không thể đặt lịch hẹn trong giờ nghỉ trưa ({lunchStart} - {lunchEnd})",
	},
	"en": {
		LeadTimeTooShort:     "Appointments must be booked at least one day in advance",
		OnWeekend:            "Appointments cannot be booked on Saturday or Sunday",
		OnHoliday:            "Appointments cannot be booked on a holiday (%s)",
		OutsideBusinessHours: "Appointments must be within business hours ({open} - {close})",
		DuringLunchBreak:     "Appointments cannot be booked during the lunch break ({lunchStart} - {lunchEnd})",
	},
}

func clock(minuteOfDay int) string {
	return fmt.Sprintf("%d:%02d", minuteOfDay/60, minuteOfDay%60)
}

func hoursReplacer(rules Rules) *strings.Replacer {
	return strings.NewReplacer(
		"{open}", clock(rules.OpenHour*60),
		"{close}", clock(rules.CloseHour*60),
		"{lunchStart}", clock(rules.LunchStart),
		"{lunchEnd}", clock(rules.LunchEnd),
	)
}

// ForRules returns a copy of c with the opening and lunch hours of rules
// written into the texts.
func (c Catalog) ForRules(rules Rules) Catalog {
	r := hoursReplacer(rules)
	out := make(Catalog, len(c))
	for v, msg := range c {
		out[v] = r.Replace(msg)
	}
	return out
}

// Messages returns a copy of the catalog for locale, falling back to Vietnamese.
func Messages(locale string) Catalog {
	c, ok := catalogs[strings.ToLower(strings.TrimSpace(locale))]
	if !ok {
		c = catalogs[DefaultLocale]
	}
	out := make(Catalog, len(c))
	for v, msg := range c {
		out[v] = msg
	}
	return out
}

// Render returns the text for r, or "" when r is valid.
func (c Catalog) Render(r Result) string {
	if r.Valid() {
		return ""
	}
	msg, ok := c[r.Violation]
	if !ok {
		msg, ok = catalogs[DefaultLocale][r.Violation]
	}
	if !ok || msg == "" {
		return r.Violation.String()
	}
	if r.Violation == OnHoliday {
		return fmt.Sprintf(msg, r.Holiday)
	}
	// Catalogs that were not bound with ForRules show the default hours.
	return hoursReplacer(DefaultRules()).Replace(msg)
}

// WindowError is returned when a booking falls outside the scheduling window.
type WindowError struct {
	Code    string
	Message string
}

func (e *WindowError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewWindowError(r Result, c Catalog) error {
	return &WindowError{
		Code:    r.Violation.String(),
		Message: c.Render(r),
	}
}
