// Package report groups journal entries in a date window by mood.
package report

import (
	"tableflip.dev/devo/pkg/entry"
)

// Section holds the entries recorded with one mood.
type Section struct {
	Mood    entry.Mood     `json:"mood"`
	Entries []*entry.Entry `json:"entries"`
}

// Result is a mood report for an inclusive date window.
type Result struct {
	Since    entry.Date `json:"since"`
	Until    entry.Date `json:"until"`
	Sections []Section  `json:"sections"`
	Total    int        `json:"total"`
}

// Build returns the entries dated between since and until, inclusive,
// grouped by mood in legend order. Entries keep their input order inside a
// section and moods without entries are left out.
func Build(entries []*entry.Entry, since, until entry.Date) Result {
	if until.Before(since) {
		since, until = until, since
	}

	grouped := make(map[entry.Mood][]*entry.Entry)
	total := 0
	for _, e := range entries {
		if e == nil {
			continue
		}
		if e.Date.Before(since) || until.Before(e.Date) {
			continue
		}
		grouped[e.Mood] = append(grouped[e.Mood], e)
		total++
	}

	r := Result{Since: since, Until: until, Total: total}
	for _, m := range entry.Moods() {
		if es, ok := grouped[m]; ok {
			r.Sections = append(r.Sections, Section{Mood: m, Entries: es})
		}
	}
	return r
}
