package entity

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidDateRange is returned when end date falls before start date.
var ErrInvalidDateRange = errors.New("end_date must not be before start_date")

const dateLayout = "2006-01-02"

// DateRange is a closed, inclusive span of calendar days. Both bounds are
// normalized to midnight UTC so comparisons ignore any time component.
type DateRange struct {
	StartDate time.Time `db:"start_date"`
	EndDate   time.Time `db:"end_date"`
}

// NewDateRange builds a validated DateRange.
func NewDateRange(start, end time.Time) (DateRange, error) {
	start = NormalizeDate(start)
	end = NormalizeDate(end)

	if end.Before(start) {
		return DateRange{}, fmt.Errorf("range %s to %s: %w",
			start.Format(dateLayout), end.Format(dateLayout), ErrInvalidDateRange)
	}

	return DateRange{StartDate: start, EndDate: end}, nil
}

// ParseDateRange parses ISO 8601 dates (YYYY-MM-DD) into a DateRange.
func ParseDateRange(start, end string) (DateRange, error) {
	s, err := time.Parse(dateLayout, start)
	if err != nil {
		return DateRange{}, fmt.Errorf("invalid start_date %q: %w", start, err)
	}

	e, err := time.Parse(dateLayout, end)
	if err != nil {
		return DateRange{}, fmt.Errorf("invalid end_date %q: %w", end, err)
	}

	return NewDateRange(s, e)
}

// NormalizeDate strips the time component, keeping the calendar day in UTC.
func NormalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Overlaps reports whether the two closed intervals share at least one day.
// A booking ending on day D conflicts with a request starting on day D.
func (r DateRange) Overlaps(other DateRange) bool {
	return !r.StartDate.After(other.EndDate) && !other.StartDate.After(r.EndDate)
}

// Contains reports whether the given day falls inside the range.
func (r DateRange) Contains(day time.Time) bool {
	day = NormalizeDate(day)
	return !day.Before(r.StartDate) && !day.After(r.EndDate)
}

// Days returns every calendar day in the range inclusive, ascending.
// A fresh slice is allocated on each call.
func (r DateRange) Days() []time.Time {
	days := make([]time.Time, 0, r.TotalDays())
	for d := r.StartDate; !d.After(r.EndDate); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// TotalDays counts the days in the range, both bounds inclusive.
func (r DateRange) TotalDays() int {
	return int(r.EndDate.Sub(r.StartDate).Hours()/24) + 1
}

// Intersect returns the overlapping portion of the two ranges, if any.
func (r DateRange) Intersect(other DateRange) (DateRange, bool) {
	if !r.Overlaps(other) {
		return DateRange{}, false
	}

	start := r.StartDate
	if other.StartDate.After(start) {
		start = other.StartDate
	}
	end := r.EndDate
	if other.EndDate.Before(end) {
		end = other.EndDate
	}

	return DateRange{StartDate: start, EndDate: end}, true
}

func (r DateRange) String() string {
	return r.StartDate.Format(dateLayout) + ".." + r.EndDate.Format(dateLayout)
}

// FormatDate renders a day as ISO 8601 (YYYY-MM-DD).
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}
