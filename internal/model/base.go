package model

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the canonical yyyy-mm-dd layout used for holiday and follow-up dates.
const DateLayout = "2006-01-02"

// DateRangeFilter names the relative date windows offered by the list screens.
type DateRangeFilter string

const (
	DateFilterAll         DateRangeFilter = "all"
	DateFilterToday       DateRangeFilter = "today"
	DateFilterYesterday   DateRangeFilter = "yesterday"
	DateFilterTomorrow    DateRangeFilter = "tomorrow"
	DateFilterThisWeek    DateRangeFilter = "this_week"
	DateFilterThisMonth   DateRangeFilter = "this_month"
	DateFilterCustomDate  DateRangeFilter = "custom_date"
	DateFilterCustom      DateRangeFilter = "custom"
	DateFilterCustomMonth DateRangeFilter = "custom_month"
)

// ParseDate parses a yyyy-mm-dd or dd/mm/yyyy date at local midnight in loc.
func ParseDate(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	if strings.Contains(value, "/") {
		return time.ParseInLocation("02/01/2006", value, loc)
	}
	if len(value) > len(DateLayout) {
		// ISO timestamps carry a date prefix
		value = value[:len(DateLayout)]
	}
	return time.ParseInLocation(DateLayout, value, loc)
}

// StartOfDay truncates t to 00:00 in its own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// EndOfDay returns 23:59:59.999 on the day of t.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), t.Location())
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// WeekBounds returns the Sunday-to-Saturday week containing t.
func WeekBounds(t time.Time) (time.Time, time.Time) {
	start := StartOfDay(t).AddDate(0, 0, -int(t.Weekday()))
	return start, EndOfDay(start.AddDate(0, 0, 6))
}

var indonesianDays = [...]string{"Minggu", "Senin", "Selasa", "Rabu", "Kamis", "Jumat", "Sabtu"}

var indonesianMonths = [...]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// IndonesianDayName returns the weekday name of t in Indonesian.
func IndonesianDayName(t time.Time) string {
	return indonesianDays[t.Weekday()]
}

// IndonesianMonthName returns the month name of m in Indonesian.
func IndonesianMonthName(m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}
	return indonesianMonths[m-1]
}
