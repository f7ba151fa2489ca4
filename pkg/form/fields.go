package form

import (
	"fmt"
	"sync"

	"tableflip.dev/devo/pkg/entry"
)

// Stable field identifiers shared by the form, the voice buttons and the
// HTTP/MCP surfaces.
const (
	FieldTitle     = "journal-title"
	FieldDate      = "journal-date"
	FieldContent   = "journal-content"
	FieldPrayer    = "prayer-requests"
	FieldScripture = "scripture-reference"
	FieldTags      = "journal-tags"
)

var fieldIDs = []string{FieldTitle, FieldDate, FieldContent, FieldPrayer, FieldScripture, FieldTags}

var multiline = map[string]bool{
	FieldContent: true,
	FieldPrayer:  true,
}

// FieldIDs lists every text field in form order.
func FieldIDs() []string {
	out := make([]string, len(fieldIDs))
	copy(out, fieldIDs)
	return out
}

// Fields holds the current form values. It is safe for concurrent use so
// dictation callbacks can write into it.
type Fields struct {
	mu     sync.RWMutex
	values map[string]string
	mood   entry.Mood
}

func NewFields() *Fields {
	return &Fields{values: make(map[string]string, len(fieldIDs))}
}

func known(id string) bool {
	for _, f := range fieldIDs {
		if f == id {
			return true
		}
	}
	return false
}

// Set assigns a field value, rejecting unknown ids.
func (f *Fields) Set(id, value string) error {
	if !known(id) {
		return fmt.Errorf("form: unknown field %q", id)
	}
	f.mu.Lock()
	f.values[id] = value
	f.mu.Unlock()
	return nil
}

// Value returns the value of a field, empty for unknown ids.
func (f *Fields) Value(id string) string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.values[id]
}

// SetValue is the dictation sink entry point. Unknown ids are ignored.
func (f *Fields) SetValue(id, value string) {
	_ = f.Set(id, value)
}

// Multiline reports whether dictation appends to the field rather than
// replacing it.
func (f *Fields) Multiline(id string) bool {
	return multiline[id]
}

func (f *Fields) SelectMood(m entry.Mood) {
	f.mu.Lock()
	f.mood = m
	f.mu.Unlock()
}

func (f *Fields) Mood() entry.Mood {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.mood
}

// Draft captures the current values for submission.
func (f *Fields) Draft() entry.Draft {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return entry.Draft{
		Title:              f.values[FieldTitle],
		Date:               f.values[FieldDate],
		Mood:               string(f.mood),
		Content:            f.values[FieldContent],
		PrayerRequests:     f.values[FieldPrayer],
		ScriptureReference: f.values[FieldScripture],
		Tags:               f.values[FieldTags],
	}
}

// Fill replaces every value, including the mood, from d.
func (f *Fields) Fill(d entry.Draft) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values = map[string]string{
		FieldTitle:     d.Title,
		FieldDate:      d.Date,
		FieldContent:   d.Content,
		FieldPrayer:    d.PrayerRequests,
		FieldScripture: d.ScriptureReference,
		FieldTags:      d.Tags,
	}
	f.mood = entry.Mood(d.Mood)
}

// Clear empties every field and the mood selection.
func (f *Fields) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values = make(map[string]string, len(fieldIDs))
	f.mood = ""
}
