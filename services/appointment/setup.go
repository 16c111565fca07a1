package appointment

import (
	"fmt"
	"time"

	"schoolhealth/config"
)

// NewValidatorFromConfig builds the window validator from application config.
func NewValidatorFromConfig(cfg config.Config) (*Validator, error) {
	rules := DefaultRules()

	if cfg.ScheduleTimezone != "" {
		loc, err := time.LoadLocation(cfg.ScheduleTimezone)
		if err != nil {
			return nil, fmt.Errorf("SCHEDULE_TIMEZONE: %w", err)
		}
		rules.Location = loc
	}
	if cfg.LeadDays < 0 {
		return nil, fmt.Errorf("LEAD_DAYS must be >= 0")
	}
	rules.LeadDays = cfg.LeadDays

	if cfg.OpenHour < 0 || cfg.CloseHour > 23 || cfg.OpenHour > cfg.CloseHour {
		return nil, fmt.Errorf("OPEN_HOUR/CLOSE_HOUR must satisfy 0 <= open <= close <= 23")
	}
	rules.OpenHour = cfg.OpenHour
	rules.CloseHour = cfg.CloseHour

	var err error
	if cfg.LunchStart != "" {
		if rules.LunchStart, err = minuteOfDay(cfg.LunchStart); err != nil {
			return nil, fmt.Errorf("LUNCH_START: %w", err)
		}
	}
	if cfg.LunchEnd != "" {
		if rules.LunchEnd, err = minuteOfDay(cfg.LunchEnd); err != nil {
			return nil, fmt.Errorf("LUNCH_END: %w", err)
		}
	}
	if rules.LunchEnd < rules.LunchStart {
		return nil, fmt.Errorf("LUNCH_END must not precede LUNCH_START")
	}

	holidays := DefaultCalendar()
	if len(cfg.Holidays) > 0 {
		if holidays, err = ParseHolidays(cfg.Holidays); err != nil {
			return nil, fmt.Errorf("HOLIDAYS: %w", err)
		}
	}

	return NewValidator(rules, holidays), nil
}

func minuteOfDay(hhmm string) (int, error) {
	h, m, err := Slot(hhmm).Clock()
	if err != nil {
		return 0, err
	}
	return h*60 + m, nil
}
