package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func parse(isoDatetime string) time.Time {
	tm, err := time.Parse(time.RFC3339, isoDatetime)
	if err != nil {
		panic(err)
	}
	return tm
}

// Monday 2024-06-10 09:00 in Ho Chi Minh City.
var monday = parse("2024-06-10T09:00:00+07:00")

func defaultValidator() *Validator {
	return NewValidator(DefaultRules(), DefaultCalendar())
}

func TestValidateScenarios(t *testing.T) {
	v := defaultValidator()
	for _, c := range []struct {
		Name      string
		Candidate time.Time
		Expected  Result
	}{
		{
			Name:      "tuesday morning",
			Candidate: parse("2024-06-11T10:00:00+07:00"),
			Expected:  Result{},
		},
		{
			Name:      "saturday",
			Candidate: parse("2024-06-15T10:00:00+07:00"),
			Expected:  Result{Violation: OnWeekend},
		},
		{
			Name:      "national day",
			Candidate: parse("2024-09-02T10:00:00+07:00"),
			Expected:  Result{Violation: OnHoliday, Holiday: "Quốc khánh"},
		},
		{
			Name:      "lunch",
			Candidate: parse("2024-06-11T12:15:00+07:00"),
			Expected:  Result{Violation: DuringLunchBreak},
		},
	} {
		t.Run(c.Name, func(t *testing.T) {
			assert.Equal(t, c.Expected, v.Validate(c.Candidate, monday))
		})
	}
}

func TestValidateLeadTime(t *testing.T) {
	assert := assert.New(t)
	v := defaultValidator()

	assert.Equal(LeadTimeTooShort, v.Validate(monday, monday).Violation)
	assert.Equal(LeadTimeTooShort, v.Validate(monday.Add(-48*time.Hour), monday).Violation)
	assert.Equal(LeadTimeTooShort, v.Validate(parse("2024-06-10T23:59:00+07:00"), monday).Violation)
	assert.True(v.Validate(monday.Add(25*time.Hour), monday).Valid())

	// Midnight tomorrow clears the lead time and fails on hours instead.
	assert.Equal(OutsideBusinessHours, v.Validate(parse("2024-06-11T00:00:00+07:00"), monday).Violation)
}

func TestValidateLeadTimeUsesSchoolDay(t *testing.T) {
	v := defaultValidator()
	// 2024-06-10T18:00Z is already Tuesday 01:00 in Vietnam.
	now := parse("2024-06-10T18:00:00Z")
	assert.Equal(t, LeadTimeTooShort, v.Validate(parse("2024-06-11T10:00:00+07:00"), now).Violation)
	assert.True(t, v.Validate(parse("2024-06-12T10:00:00+07:00"), now).Valid())
}

func TestValidateZeroLeadDays(t *testing.T) {
	rules := DefaultRules()
	rules.LeadDays = 0
	v := NewValidator(rules, DefaultCalendar())

	assert.True(t, v.Validate(parse("2024-06-10T15:00:00+07:00"), monday).Valid())
	assert.Equal(t, LeadTimeTooShort, v.Validate(parse("2024-06-09T15:00:00+07:00"), monday).Violation)
}

func TestValidateWeekendAnyTime(t *testing.T) {
	v := defaultValidator()
	for _, day := range []string{"2024-06-15", "2024-06-16", "2024-06-22", "2024-06-23"} {
		for hour := 0; hour < 24; hour++ {
			d, _ := time.ParseInLocation("2006-01-02", day, vietnamZone)
			candidate := d.Add(time.Duration(hour) * time.Hour)
			assert.Equal(t, OnWeekend, v.Validate(candidate, monday).Violation, "%s", candidate)
		}
	}
}

func TestValidateEveryHoliday(t *testing.T) {
	v := defaultValidator()
	for _, h := range DefaultHolidays {
		var candidate time.Time
		for year := 2025; year < 2040; year++ {
			c := time.Date(year, h.Month, h.Day, 10, 0, 0, 0, vietnamZone)
			if !IsWeekend(c) {
				candidate = c
				break
			}
		}
		if !assert.False(t, candidate.IsZero(), "no weekday occurrence for %s", h.Name) {
			continue
		}
		assert.Equal(t, Result{Violation: OnHoliday, Holiday: h.Name}, v.Validate(candidate, monday), "%s", candidate)
	}
}

func TestValidateWeekendBeforeHoliday(t *testing.T) {
	v := defaultValidator()
	// 2025-02-01 is both a Saturday and a Tết day.
	assert.Equal(t, OnWeekend, v.Validate(parse("2025-02-01T10:00:00+07:00"), monday).Violation)
}

func TestValidateHourBoundaries(t *testing.T) {
	v := defaultValidator()
	for _, c := range []struct {
		Clock    string
		Expected Violation
	}{
		{"07:59", OutsideBusinessHours},
		{"08:00", NoViolation},
		{"11:29", NoViolation},
		{"11:30", DuringLunchBreak},
		{"12:00", DuringLunchBreak},
		{"12:30", DuringLunchBreak},
		{"12:59", DuringLunchBreak},
		// 13:00 sits inside the inclusive lunch end; 13:01 does not.
		{"13:00", DuringLunchBreak},
		{"13:01", NoViolation},
		{"16:59", NoViolation},
		{"17:00", NoViolation},
		// The whole closing hour is accepted.
		{"17:59", NoViolation},
		{"18:00", OutsideBusinessHours},
		{"23:59", OutsideBusinessHours},
	} {
		candidate := parse("2024-06-11T" + c.Clock + ":00+07:00")
		assert.Equal(t, c.Expected, v.Validate(candidate, monday).Violation, c.Clock)
	}
}

func TestValidateConvertsToSchoolZone(t *testing.T) {
	v := defaultValidator()
	// 03:00Z is 10:00 in Vietnam.
	assert.True(t, v.Validate(parse("2024-06-11T03:00:00Z"), monday).Valid())
	// 05:00Z is 12:00 in Vietnam.
	assert.Equal(t, DuringLunchBreak, v.Validate(parse("2024-06-11T05:00:00Z"), monday).Violation)
}

func TestValidateIsDeterministic(t *testing.T) {
	v := defaultValidator()
	candidate := parse("2024-06-11T12:15:00+07:00")
	assert.Equal(t, v.Validate(candidate, monday), v.Validate(candidate, monday))
}

func TestValidateNilLocationUsesNow(t *testing.T) {
	rules := DefaultRules()
	rules.Location = nil
	v := NewValidator(rules, nil)

	now := parse("2024-06-10T09:00:00Z")
	assert.True(t, v.Validate(parse("2024-06-11T10:00:00Z"), now).Valid())
	assert.Equal(t, OutsideBusinessHours, v.Validate(parse("2024-06-11T10:00:00+07:00"), now).Violation)
}

func TestViolationString(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("valid", NoViolation.String())
	assert.Equal("lead_time", LeadTimeTooShort.String())
	assert.Equal("weekend", OnWeekend.String())
	assert.Equal("holiday", OnHoliday.String())
	assert.Equal("business_hours", OutsideBusinessHours.String())
	assert.Equal("lunch_break", DuringLunchBreak.String())
}
