package domain

import (
	"fmt"
	"strings"
	"time"
)

const dateRangeSeparator = ".."

// DateRange is an inclusive range of calendar dates, parsed from the wire format
// "{startDate}..{endDate}" with ISO dates on both sides.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// ParseDateRange parses "2006-01-02..2006-01-02" into a DateRange. Both ends are
// required and the end must not precede the start.
func ParseDateRange(s string) (DateRange, error) {
	parts := strings.SplitN(s, dateRangeSeparator, 2)
	if len(parts) != 2 {
		return DateRange{}, fmt.Errorf("date range %q is not in start..end format", s)
	}
	start, err := time.Parse(time.DateOnly, parts[0])
	if err != nil {
		return DateRange{}, fmt.Errorf("invalid start date %q: %w", parts[0], err)
	}
	end, err := time.Parse(time.DateOnly, parts[1])
	if err != nil {
		return DateRange{}, fmt.Errorf("invalid end date %q: %w", parts[1], err)
	}
	if end.Before(start) {
		return DateRange{}, fmt.Errorf("date range end %s precedes start %s", parts[1], parts[0])
	}
	return DateRange{Start: start, End: end}, nil
}

// Days enumerates every calendar date in the range, inclusive on both ends. The
// enumeration bounds date-bucketed store scans.
func (r DateRange) Days() []time.Time {
	days := make([]time.Time, 0, int(r.End.Sub(r.Start).Hours()/24)+1)
	for d := r.Start; !d.After(r.End); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// Contains reports whether t falls on a date within the range.
func (r DateRange) Contains(t time.Time) bool {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return !day.Before(r.Start) && !day.After(r.End)
}

func (r DateRange) String() string {
	return r.Start.Format(time.DateOnly) + dateRangeSeparator + r.End.Format(time.DateOnly)
}
