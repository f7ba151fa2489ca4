// Package mcp provides the Model Context Protocol server integration for devo.
package mcp

import (
	"context"
	"errors"
	"strings"
	"time"

	"tableflip.dev/devo/pkg/assistant"
	"tableflip.dev/devo/pkg/entry"
	"tableflip.dev/devo/pkg/filter"
	"tableflip.dev/devo/pkg/journal"
)

// Service coordinates journal operations that are shared by the MCP server.
type Service struct {
	Journal   *journal.Store
	Assistant assistant.Service

	now func() time.Time
}

// ErrNoAssistant is returned by the assistant tools when none is configured.
var ErrNoAssistant = errors.New("assistant is not configured")

// EntryPatch holds the fields to change on update. Nil fields keep their
// current value.
type EntryPatch struct {
	Title              *string
	Date               *string
	Mood               *string
	Content            *string
	PrayerRequests     *string
	ScriptureReference *string
	Tags               *string
}

// MoodSummary counts entries per mood.
type MoodSummary struct {
	Mood  string `json:"mood"`
	Label string `json:"label"`
	Emoji string `json:"emoji"`
	Count int    `json:"count"`
}

// EntryDTO is a transport-friendly projection of an entry.
type EntryDTO struct {
	ID                 string   `json:"id"`
	Title              string   `json:"title"`
	Date               string   `json:"date"`
	DateLong           string   `json:"dateLong"`
	Mood               string   `json:"mood"`
	MoodEmoji          string   `json:"moodEmoji"`
	Content            string   `json:"content"`
	PrayerRequests     string   `json:"prayerRequests,omitempty"`
	ScriptureReference string   `json:"scriptureReference,omitempty"`
	Tags               []string `json:"tags"`
	CreatedISO         string   `json:"createdAt"`
	UpdatedISO         string   `json:"updatedAt"`
}

// NewService builds a service wrapper around the journal. a may be nil.
func NewService(j *journal.Store, a assistant.Service) *Service {
	return &Service{Journal: j, Assistant: a, now: time.Now}
}

// ListEntries returns the entries matching the filter values, newest first.
func (s *Service) ListEntries(_ context.Context, search, mood, dateRange string) ([]EntryDTO, error) {
	if s.Journal == nil {
		return nil, errors.New("journal is not configured")
	}
	c, err := filter.ParseCriteria(search, mood, dateRange)
	if err != nil {
		return nil, err
	}
	return toDTOs(filter.Apply(s.Journal.Entries(), c, s.now())), nil
}

// EntryByID locates an entry by id and returns the DTO representation.
func (s *Service) EntryByID(_ context.Context, id string) (*EntryDTO, error) {
	if s.Journal == nil {
		return nil, errors.New("journal is not configured")
	}
	if id == "" {
		return nil, errors.New("id is required")
	}
	e, err := s.Journal.Get(id)
	if err != nil {
		return nil, err
	}
	dto := toDTO(e)
	return &dto, nil
}

// CreateEntry validates and stores a new entry.
func (s *Service) CreateEntry(ctx context.Context, d entry.Draft) (*EntryDTO, error) {
	if s.Journal == nil {
		return nil, errors.New("journal is not configured")
	}
	e, err := s.Journal.Create(ctx, d)
	if err != nil {
		return nil, err
	}
	dto := toDTO(e)
	return &dto, nil
}

// UpdateEntry applies patch on top of the stored entry.
func (s *Service) UpdateEntry(ctx context.Context, id string, patch EntryPatch) (*EntryDTO, error) {
	if s.Journal == nil {
		return nil, errors.New("journal is not configured")
	}
	current, err := s.Journal.Get(id)
	if err != nil {
		return nil, err
	}
	d := current.Draft()
	apply(&d.Title, patch.Title)
	apply(&d.Date, patch.Date)
	apply(&d.Mood, patch.Mood)
	apply(&d.Content, patch.Content)
	apply(&d.PrayerRequests, patch.PrayerRequests)
	apply(&d.ScriptureReference, patch.ScriptureReference)
	apply(&d.Tags, patch.Tags)

	e, err := s.Journal.Update(ctx, id, d)
	if err != nil {
		return nil, err
	}
	dto := toDTO(e)
	return &dto, nil
}

// DeleteEntry removes an entry. Deleting an unknown id is not an error.
func (s *Service) DeleteEntry(ctx context.Context, id string) error {
	if s.Journal == nil {
		return errors.New("journal is not configured")
	}
	return s.Journal.Delete(ctx, id)
}

// Moods counts entries per mood in the canonical mood order.
func (s *Service) Moods(_ context.Context) []MoodSummary {
	counts := map[entry.Mood]int{}
	if s.Journal != nil {
		for _, e := range s.Journal.Entries() {
			counts[e.Mood]++
		}
	}
	out := make([]MoodSummary, 0, len(entry.Moods()))
	for _, m := range entry.Moods() {
		out = append(out, MoodSummary{
			Mood:  string(m),
			Label: m.Label(),
			Emoji: m.Emoji(),
			Count: counts[m],
		})
	}
	return out
}

func (s *Service) assistant() (assistant.Service, error) {
	if s.Assistant == nil {
		return nil, ErrNoAssistant
	}
	return s.Assistant, nil
}

func apply(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func toDTOs(entries []*entry.Entry) []EntryDTO {
	out := make([]EntryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, toDTO(e))
	}
	return out
}

func toDTO(e *entry.Entry) EntryDTO {
	tags := e.Tags
	if tags == nil {
		tags = []string{}
	}
	return EntryDTO{
		ID:                 e.ID,
		Title:              e.Title,
		Date:               e.Date.String(),
		DateLong:           e.Date.Format("Monday, January 2, 2006"),
		Mood:               string(e.Mood),
		MoodEmoji:          e.Mood.Emoji(),
		Content:            e.Content,
		PrayerRequests:     e.PrayerRequests,
		ScriptureReference: e.ScriptureReference,
		Tags:               tags,
		CreatedISO:         entry.FormatTime(e.CreatedAt.Time),
		UpdatedISO:         entry.FormatTime(e.UpdatedAt.Time),
	}
}

// optional returns a pointer to v when the caller supplied it.
func optional(args map[string]any, key string) *string {
	raw, ok := args[key]
	if !ok || raw == nil {
		return nil
	}
	v, ok := raw.(string)
	if !ok {
		return nil
	}
	v = strings.TrimRight(v, "\n")
	return &v
}
