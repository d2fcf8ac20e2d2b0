package valueobject

import (
	"errors"
	"fmt"
	"time"
)

// DateRange is a value object for a rental window bounded by a collection
// date and a return date. Both bounds are dates, not instants; times are
// normalized to midnight UTC so comparisons are calendar-based.
type DateRange struct {
	start time.Time
	end   time.Time
}

// NewDateRange creates a DateRange. The end date must not precede the start.
func NewDateRange(start, end time.Time) (DateRange, error) {
	s := truncateToDate(start)
	e := truncateToDate(end)
	if e.Before(s) {
		return DateRange{}, errors.New("return date cannot precede collection date")
	}
	return DateRange{start: s, end: e}, nil
}

// Start returns the collection date
func (r DateRange) Start() time.Time {
	return r.start
}

// End returns the return date
func (r DateRange) End() time.Time {
	return r.end
}

// Days returns the number of calendar days in the range, inclusive
func (r DateRange) Days() int {
	return int(r.end.Sub(r.start).Hours()/24) + 1
}

// Contains reports whether the given date falls inside the range, inclusive
func (r DateRange) Contains(date time.Time) bool {
	d := truncateToDate(date)
	return !d.Before(r.start) && !d.After(r.end)
}

// Overlaps reports whether two ranges overlap. Boundaries are inclusive on
// both ends: a dress cannot be returned and collected again on the same day,
// so touching windows count as a conflict.
func (r DateRange) Overlaps(other DateRange) bool {
	return !r.start.After(other.end) && !other.start.After(r.end)
}

// String returns a string representation of the range
func (r DateRange) String() string {
	return fmt.Sprintf("%s..%s", r.start.Format("2006-01-02"), r.end.Format("2006-01-02"))
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
