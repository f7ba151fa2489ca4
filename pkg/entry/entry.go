package entry

import (
	"fmt"
	"strings"
	"time"
)

// Entry is a single journal entry as persisted in the collection.
type Entry struct {
	ID                 string    `json:"id"`
	Title              string    `json:"title"`
	Date               Date      `json:"date"`
	Mood               Mood      `json:"mood"`
	Content            string    `json:"content"`
	PrayerRequests     string    `json:"prayerRequests,omitempty"`
	ScriptureReference string    `json:"scriptureReference,omitempty"`
	Tags               []string  `json:"tags"`
	CreatedAt          Timestamp `json:"createdAt"`
	UpdatedAt          Timestamp `json:"updatedAt"`
}

// Draft is the set of raw field values submitted by the user before
// validation.
type Draft struct {
	Title              string `json:"title"`
	Date               string `json:"date"`
	Mood               string `json:"mood"`
	Content            string `json:"content"`
	PrayerRequests     string `json:"prayerRequests"`
	ScriptureReference string `json:"scriptureReference"`
	Tags               string `json:"tags"`
}

// New builds an entry from a validated draft. The caller assigns the id and
// the timestamps.
func New(d Draft, date Date, mood Mood) *Entry {
	return &Entry{
		Title:              strings.TrimSpace(d.Title),
		Date:               date,
		Mood:               mood,
		Content:            strings.TrimSpace(d.Content),
		PrayerRequests:     strings.TrimSpace(d.PrayerRequests),
		ScriptureReference: strings.TrimSpace(d.ScriptureReference),
		Tags:               ParseTags(d.Tags),
	}
}

// Clone returns a deep copy so callers can hand entries out without sharing
// the tag slice.
func (e *Entry) Clone() *Entry {
	if e == nil {
		return nil
	}
	cp := *e
	if e.Tags != nil {
		cp.Tags = append([]string(nil), e.Tags...)
	}
	return &cp
}

// Draft converts the entry back into form values, used to pre-populate the
// form when editing.
func (e *Entry) Draft() Draft {
	return Draft{
		Title:              e.Title,
		Date:               e.Date.String(),
		Mood:               string(e.Mood),
		Content:            e.Content,
		PrayerRequests:     e.PrayerRequests,
		ScriptureReference: e.ScriptureReference,
		Tags:               strings.Join(e.Tags, ", "),
	}
}

// Announcement composes the text read aloud for the entry.
func (e *Entry) Announcement() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Journal entry: %s. ", e.Title)
	fmt.Fprintf(&b, "Date: %s. ", e.Date.Format(layoutSpoken))
	fmt.Fprintf(&b, "Mood: %s. ", e.Mood)
	b.WriteString(strings.TrimSpace(e.Content))
	if !strings.HasSuffix(b.String(), ".") {
		b.WriteString(".")
	}
	if e.ScriptureReference != "" {
		fmt.Fprintf(&b, " Scripture reference: %s.", e.ScriptureReference)
	}
	if e.PrayerRequests != "" {
		fmt.Fprintf(&b, " Prayer requests: %s", strings.TrimSpace(e.PrayerRequests))
	}
	return b.String()
}

func (e *Entry) String() string {
	return fmt.Sprintf("%s %s  %s", e.Date, e.Mood.Emoji(), e.Title)
}

// ParseTags splits a comma separated tag input into distinct, trimmed,
// non-empty tags in first-seen order.
func ParseTags(raw string) []string {
	tags := make([]string, 0)
	seen := make(map[string]struct{})
	for _, part := range strings.Split(raw, ",") {
		tag := strings.TrimSpace(part)
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}
	return tags
}

// Today returns the calendar date for now in the local time zone.
func Today(now time.Time) Date {
	return DateOf(now)
}
