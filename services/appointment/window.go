package appointment

import "time"

// Violation identifies the first scheduling rule a candidate failed.
type Violation int

const (
	NoViolation Violation = iota
	LeadTimeTooShort
	OnWeekend
	OnHoliday
	OutsideBusinessHours
	DuringLunchBreak
)

var violationCodes = map[Violation]string{
	NoViolation:          "valid",
	LeadTimeTooShort:     "lead_time",
	OnWeekend:            "weekend",
	OnHoliday:            "holiday",
	OutsideBusinessHours: "business_hours",
	DuringLunchBreak:     "lunch_break",
}

func (v Violation) String() string {
	if code, ok := violationCodes[v]; ok {
		return code
	}
	return "unknown"
}

// Result is the outcome of a window validation. Holiday is only set for
// OnHoliday.
type Result struct {
	Violation Violation
	Holiday   string
}

// Valid reports whether no rule rejected the candidate.
func (r Result) Valid() bool {
	return r.Violation == NoViolation
}

// vietnamZone is Asia/Ho_Chi_Minh without a tzdata lookup; Vietnam has no DST.
var vietnamZone = time.FixedZone("Asia/Ho_Chi_Minh", 7*60*60)

// Rules holds the tunable parts of the scheduling window. Lunch bounds are
// minutes from midnight, like the provider timeslots.
type Rules struct {
	Location   *time.Location
	LeadDays   int
	OpenHour   int
	CloseHour  int
	LunchStart int
	LunchEnd   int
}

// DefaultRules are the school clinic hours: 08:00–17:00 with lunch 11:30–13:00,
// booked at least one day ahead.
func DefaultRules() Rules {
	return Rules{
		Location:   vietnamZone,
		LeadDays:   1,
		OpenHour:   8,
		CloseHour:  17,
		LunchStart: 11*60 + 30,
		LunchEnd:   13 * 60,
	}
}

// Validator decides whether an appointment instant is bookable. It holds no
// mutable state and is safe for concurrent use.
type Validator struct {
	Rules    Rules
	Holidays HolidayCalendar
}

func NewValidator(rules Rules, holidays HolidayCalendar) *Validator {
	return &Validator{Rules: rules, Holidays: holidays}
}

func (v *Validator) location(now time.Time) *time.Location {
	if v.Rules.Location != nil {
		return v.Rules.Location
	}
	return now.Location()
}

// Validate checks candidate against the window rules in order and reports the
// first failure. Both instants are read in the rules' location.
func (v *Validator) Validate(candidate, now time.Time) Result {
	loc := v.location(now)
	candidate = candidate.In(loc)
	now = now.In(loc)

	y, m, d := now.Date()
	earliest := time.Date(y, m, d+v.Rules.LeadDays, 0, 0, 0, 0, loc)
	if candidate.Before(earliest) {
		return Result{Violation: LeadTimeTooShort}
	}

	if IsWeekend(candidate) {
		return Result{Violation: OnWeekend}
	}

	if name, ok := v.Holidays.HolidayName(candidate); ok {
		return Result{Violation: OnHoliday, Holiday: name}
	}

	// Any minute of the closing hour passes; 17:45 is accepted.
	hour := candidate.Hour()
	if hour < v.Rules.OpenHour || hour > v.Rules.CloseHour {
		return Result{Violation: OutsideBusinessHours}
	}

	// Minute granularity with an inclusive end: 13:00 is rejected, 13:01 is not.
	minute := hour*60 + candidate.Minute()
	if minute >= v.Rules.LunchStart && minute <= v.Rules.LunchEnd {
		return Result{Violation: DuringLunchBreak}
	}

	return Result{}
}
