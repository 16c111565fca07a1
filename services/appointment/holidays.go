package appointment

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Holiday is a fixed-date annual holiday. The year is never part of the match.
type Holiday struct {
	Month time.Month `json:"month"`
	Day   int        `json:"day"`
	Name  string     `json:"name"`
}

// HolidayCalendar is an ordered holiday table.
type HolidayCalendar []Holiday

// DefaultHolidays are the Vietnamese public holidays observed by the school.
// Tết and Giỗ Tổ follow the lunar calendar; the Gregorian dates below are the
// 2025 ones and have to be refreshed every year (or overridden via HOLIDAYS).
var DefaultHolidays = HolidayCalendar{
	{Month: time.January, Day: 1, Name: "Tết Dương lịch"},
	{Month: time.January, Day: 28, Name: "Tết Nguyên Đán"},
	{Month: time.January, Day: 29, Name: "Tết Nguyên Đán"},
	{Month: time.January, Day: 30, Name: "Tết Nguyên Đán"},
	{Month: time.January, Day: 31, Name: "Tết Nguyên Đán"},
	{Month: time.February, Day: 1, Name: "Tết Nguyên Đán"},
	{Month: time.April, Day: 7, Name: "Giỗ Tổ Hùng Vương"},
	{Month: time.April, Day: 30, Name: "Ngày Giải phóng miền Nam"},
	{Month: time.May, Day: 1, Name: "Quốc tế Lao động"},
	{Month: time.September, Day: 2, Name: "Quốc khánh"},
}

// DefaultCalendar returns a copy of DefaultHolidays.
func DefaultCalendar() HolidayCalendar {
	out := make(HolidayCalendar, len(DefaultHolidays))
	copy(out, DefaultHolidays)
	return out
}

// IsWeekend reports whether t falls on a Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	switch t.Weekday() {
	case time.Saturday, time.Sunday:
		return true
	default:
		return false
	}
}

// IsHoliday reports whether t's month and day match an entry of the calendar.
func (hc HolidayCalendar) IsHoliday(t time.Time) bool {
	_, ok := hc.HolidayName(t)
	return ok
}

// HolidayName returns the name of the first entry matching t.
func (hc HolidayCalendar) HolidayName(t time.Time) (string, bool) {
	_, month, day := t.Date()
	for _, h := range hc {
		if h.Month == month && h.Day == day {
			return h.Name, true
		}
	}
	return "", false
}

// ParseHolidays builds a calendar from "MM-DD=Name" entries, keeping their order.
func ParseHolidays(entries []string) (HolidayCalendar, error) {
	hc := make(HolidayCalendar, 0, len(entries))
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		date, name, ok := strings.Cut(entry, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("holiday %q: want MM-DD=Name", entry)
		}
		mm, dd, ok := strings.Cut(strings.TrimSpace(date), "-")
		if !ok {
			return nil, fmt.Errorf("holiday %q: want MM-DD=Name", entry)
		}
		month, err := strconv.Atoi(mm)
		if err != nil || month < 1 || month > 12 {
			return nil, fmt.Errorf("holiday %q: invalid month", entry)
		}
		day, err := strconv.Atoi(dd)
		if err != nil || day < 1 || day > daysIn(time.Month(month)) {
			return nil, fmt.Errorf("holiday %q: invalid day", entry)
		}
		hc = append(hc, Holiday{Month: time.Month(month), Day: day, Name: name})
	}
	return hc, nil
}

// daysIn uses a leap year so 02-29 stays expressible.
func daysIn(m time.Month) int {
	return time.Date(2024, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
