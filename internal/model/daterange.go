package model

import (
	"fmt"
	"strings"
	"time"
)

// DateRange is an inclusive window of whole days.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls within the window.
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// ResolveDateRange turns a relative filter into a concrete window around now.
// It returns false for "all" and for an empty filter. Custom windows accept
// either bound alone.
func ResolveDateRange(filter DateRangeFilter, from, to, month string, now time.Time) (DateRange, bool, error) {
	today := StartOfDay(now)
	loc := now.Location()

	switch filter {
	case "", DateFilterAll:
		return DateRange{}, false, nil
	case DateFilterToday:
		return DateRange{today, EndOfDay(today)}, true, nil
	case DateFilterYesterday:
		d := today.AddDate(0, 0, -1)
		return DateRange{d, EndOfDay(d)}, true, nil
	case DateFilterTomorrow:
		d := today.AddDate(0, 0, 1)
		return DateRange{d, EndOfDay(d)}, true, nil
	case DateFilterThisWeek:
		start, end := WeekBounds(now)
		return DateRange{start, end}, true, nil
	case DateFilterThisMonth:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
		return DateRange{start, EndOfDay(start.AddDate(0, 1, -1))}, true, nil
	case DateFilterCustomDate, DateFilterCustom:
		r := DateRange{Start: time.Time{}, End: time.Date(9999, 12, 31, 0, 0, 0, 0, loc)}
		if strings.TrimSpace(from) == "" && strings.TrimSpace(to) == "" {
			return DateRange{}, false, nil
		}
		if strings.TrimSpace(from) != "" {
			start, err := ParseDate(from, loc)
			if err != nil {
				return DateRange{}, false, fmt.Errorf("invalid date_from %q", from)
			}
			r.Start = start
		}
		if strings.TrimSpace(to) != "" {
			end, err := ParseDate(to, loc)
			if err != nil {
				return DateRange{}, false, fmt.Errorf("invalid date_to %q", to)
			}
			r.End = EndOfDay(end)
		}
		return r, true, nil
	case DateFilterCustomMonth:
		m, err := time.ParseInLocation("2006-01", strings.TrimSpace(month), loc)
		if err != nil {
			return DateRange{}, false, fmt.Errorf("invalid month %q", month)
		}
		return DateRange{m, EndOfDay(m.AddDate(0, 1, -1))}, true, nil
	}
	return DateRange{}, false, fmt.Errorf("unknown date filter %q", filter)
}
