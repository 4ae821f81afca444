package domain

import "time"

// DayOf returns the calendar date of t as UTC midnight. Accounting dates are
// compared at day granularity only.
func DayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Date builds an accounting date.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// EndOfDay returns 23:59:59 on t's calendar date, in t's location.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, 0, t.Location())
}

// OnOrBefore reports whether the calendar date of a is not after that of b.
func OnOrBefore(a, b time.Time) bool {
	return !DayOf(a).After(DayOf(b))
}

// DaysBetween returns the number of calendar days from a to b.
func DaysBetween(a, b time.Time) int {
	return int(DayOf(b).Sub(DayOf(a)).Hours() / 24)
}

// DateRange is an inclusive range of calendar dates.
type DateRange struct {
	From time.Time
	To   time.Time
}

// NewDateRange validates that from is not after to.
func NewDateRange(from, to time.Time) (DateRange, error) {
	if DayOf(from).After(DayOf(to)) {
		return DateRange{}, ErrInvalidDateRange
	}
	return DateRange{From: DayOf(from), To: DayOf(to)}, nil
}

// Contains reports whether t falls within the range, boundaries included.
func (r DateRange) Contains(t time.Time) bool {
	day := DayOf(t)
	return !day.Before(DayOf(r.From)) && !day.After(DayOf(r.To))
}
