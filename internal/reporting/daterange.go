package reporting

import (
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// ParseRange builds a Range from YYYY-MM-DD bounds evaluated in loc. An empty
// bound defaults to today.
func ParseRange(from, to string, loc *time.Location, maxDays int, now time.Time) (Range, error) {
	if loc == nil {
		loc = time.UTC
	}
	today := now.In(loc).Format(dateLayout)
	from, to = strings.TrimSpace(from), strings.TrimSpace(to)
	if from == "" {
		from = today
	}
	if to == "" {
		to = today
	}

	fd, err := time.ParseInLocation(dateLayout, from, loc)
	if err != nil {
		return Range{}, fmt.Errorf("%w: from must be YYYY-MM-DD", ErrInvalidRequest)
	}
	td, err := time.ParseInLocation(dateLayout, to, loc)
	if err != nil {
		return Range{}, fmt.Errorf("%w: to must be YYYY-MM-DD", ErrInvalidRequest)
	}
	if td.Before(fd) {
		return Range{}, fmt.Errorf("%w: to is before from", ErrInvalidRequest)
	}

	// Count days on the civil calendar so DST transitions do not skew the span.
	days := civilDays(fd, td) + 1
	if maxDays > 0 && days > maxDays {
		return Range{}, fmt.Errorf("%w: range spans %d days, at most %d allowed", ErrInvalidRequest, days, maxDays)
	}

	return Range{
		From:  from,
		To:    to,
		Start: fd,
		End:   time.Date(td.Year(), td.Month(), td.Day()+1, 0, 0, 0, 0, loc),
	}, nil
}

// Contains reports whether t falls within the range.
func (r Range) Contains(t time.Time) bool {
	return !t.Before(r.Start) && t.Before(r.End)
}

func civilDays(a, b time.Time) int {
	ua := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	ub := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua) / (24 * time.Hour))
}
