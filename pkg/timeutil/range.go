package timeutil

import (
	"fmt"
	"strings"
	"time"
)

// Range is a relative date window used to filter entries.
type Range string

const (
	All   Range = "all"
	Week  Range = "week"
	Month Range = "month"
	Year  Range = "year"
)

// Ranges lists the supported ranges in display order.
func Ranges() []string {
	return []string{string(All), string(Week), string(Month), string(Year)}
}

// ParseRange parses a range name. An empty input means All.
func ParseRange(input string) (Range, error) {
	switch r := Range(strings.ToLower(strings.TrimSpace(input))); r {
	case "":
		return All, nil
	case All, Week, Month, Year:
		return r, nil
	default:
		return "", fmt.Errorf("unsupported date range %q (want one of %s)", input, strings.Join(Ranges(), ", "))
	}
}

// Cutoff returns the earliest calendar date, as UTC midnight, that falls
// inside the range relative to now. The bool is false for All, which has no
// lower bound.
func (r Range) Cutoff(now time.Time) (time.Time, bool) {
	var from time.Time
	switch r {
	case Week:
		from = now.AddDate(0, 0, -7)
	case Month:
		from = now.AddDate(0, -1, 0)
	case Year:
		from = now.AddDate(-1, 0, 0)
	default:
		return time.Time{}, false
	}
	y, m, d := from.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), true
}

// Label is a human friendly description of the range.
func (r Range) Label() string {
	switch r {
	case Week:
		return "past week"
	case Month:
		return "past month"
	case Year:
		return "past year"
	default:
		return "all time"
	}
}
