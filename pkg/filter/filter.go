// Package filter narrows a journal collection by search text, mood and date
// range.
package filter

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"tableflip.dev/devo/pkg/entry"
	"tableflip.dev/devo/pkg/timeutil"
)

// Criteria are combined with AND. Zero values match everything.
type Criteria struct {
	Search string
	Mood   entry.Mood
	Range  timeutil.Range
}

// IsZero reports whether c matches every entry.
func (c Criteria) IsZero() bool {
	return strings.TrimSpace(c.Search) == "" && c.Mood == "" && (c.Range == "" || c.Range == timeutil.All)
}

// ParseCriteria builds criteria from raw control values. An empty mood or
// range means no constraint.
func ParseCriteria(search, mood, dateRange string) (Criteria, error) {
	c := Criteria{Search: search}
	if strings.TrimSpace(mood) != "" {
		m, err := entry.ParseMood(mood)
		if err != nil {
			return Criteria{}, err
		}
		c.Mood = m
	}
	r, err := timeutil.ParseRange(dateRange)
	if err != nil {
		return Criteria{}, err
	}
	c.Range = r
	return c, nil
}

// FromQuery reads search, mood and date parameters.
func FromQuery(q url.Values) (Criteria, error) {
	c, err := ParseCriteria(q.Get("search"), q.Get("mood"), q.Get("date"))
	if err != nil {
		return Criteria{}, fmt.Errorf("filter: %w", err)
	}
	return c, nil
}

// Apply returns the entries matching c, preserving order.
func Apply(entries []*entry.Entry, c Criteria, now time.Time) []*entry.Entry {
	needle := strings.ToLower(strings.TrimSpace(c.Search))
	cutoff, bounded := c.Range.Cutoff(now)

	out := make([]*entry.Entry, 0, len(entries))
	for _, e := range entries {
		if e == nil {
			continue
		}
		if needle != "" && !matchesSearch(e, needle) {
			continue
		}
		if c.Mood != "" && e.Mood != c.Mood {
			continue
		}
		if bounded && e.Date.Time.Before(cutoff) {
			continue
		}
		out = append(out, e)
	}
	return out
}

func matchesSearch(e *entry.Entry, needle string) bool {
	if strings.Contains(strings.ToLower(e.Title), needle) ||
		strings.Contains(strings.ToLower(e.Content), needle) {
		return true
	}
	for _, tag := range e.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}
