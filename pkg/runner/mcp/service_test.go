package mcp

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"tableflip.dev/devo/pkg/assistant"
	"tableflip.dev/devo/pkg/entry"
	"tableflip.dev/devo/pkg/journal"
	"tableflip.dev/devo/pkg/store"
)

type memoryStore struct {
	entries []*entry.Entry
}

func (m *memoryStore) Load(context.Context) ([]*entry.Entry, error) {
	if m.entries == nil {
		return nil, store.ErrNotFound
	}
	return m.entries, nil
}

func (m *memoryStore) Save(_ context.Context, entries []*entry.Entry) error {
	m.entries = entries
	return nil
}

func (m *memoryStore) Watch(context.Context) (<-chan store.Event, error) {
	ch := make(chan store.Event)
	close(ch)
	return ch, nil
}

func (m *memoryStore) Close() error { return nil }

type echoAssistant struct{}

func (echoAssistant) QuietTime(_ context.Context, req assistant.QuietTimeRequest) (string, error) {
	return "quiet", nil
}
func (echoAssistant) Books(context.Context, assistant.BookRequest) (string, error) {
	return "", errors.New("upstream down")
}
func (echoAssistant) Study(_ context.Context, req assistant.StudyRequest) (string, error) {
	return "study " + req.Passage, nil
}
func (echoAssistant) Answer(context.Context, assistant.QuestionRequest) (string, error) {
	return "answer", nil
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	j, err := journal.Open(context.Background(), &memoryStore{})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	svc := NewService(j, echoAssistant{})
	svc.now = func() time.Time { return time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC) }
	return svc
}

func TestServiceCreateEntry(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	dto, err := svc.CreateEntry(ctx, entry.Draft{
		Title:   "Morning",
		Date:    "2024-03-09",
		Mood:    "Grateful",
		Content: "Thankful.",
		Tags:    "rest, rest, psalms",
	})
	if err != nil {
		t.Fatalf("CreateEntry failed: %v", err)
	}
	if dto.ID == "" {
		t.Fatalf("expected generated id")
	}
	if dto.Mood != "grateful" {
		t.Fatalf("expected grateful mood, got %s", dto.Mood)
	}
	if dto.DateLong != "Saturday, March 9, 2024" {
		t.Fatalf("unexpected long date %q", dto.DateLong)
	}
	if strings.Join(dto.Tags, ",") != "rest,psalms" {
		t.Fatalf("unexpected tags %v", dto.Tags)
	}
}

func TestServiceCreateEntryValidation(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.CreateEntry(context.Background(), entry.Draft{Title: "x"})
	if !errors.Is(err, journal.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	res := toolError(err)
	if !res.IsError {
		t.Fatalf("expected tool error result")
	}
}

func TestServiceUpdateEntryPatch(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	dto, err := svc.CreateEntry(ctx, entry.Draft{Title: "Morning", Mood: "sad", Content: "Heavy day.", ScriptureReference: "Psalm 42"})
	if err != nil {
		t.Fatalf("CreateEntry failed: %v", err)
	}

	args := map[string]any{"mood": "peaceful", "unused": 3}
	updated, err := svc.UpdateEntry(ctx, dto.ID, EntryPatch{
		Mood:  optional(args, "mood"),
		Title: optional(args, "title"),
	})
	if err != nil {
		t.Fatalf("UpdateEntry failed: %v", err)
	}
	if updated.Mood != "peaceful" {
		t.Fatalf("expected peaceful, got %s", updated.Mood)
	}
	if updated.Title != "Morning" || updated.ScriptureReference != "Psalm 42" {
		t.Fatalf("untouched fields changed: %+v", updated)
	}
	if updated.CreatedISO != dto.CreatedISO {
		t.Fatalf("createdAt changed from %s to %s", dto.CreatedISO, updated.CreatedISO)
	}

	if _, err := svc.UpdateEntry(ctx, "missing", EntryPatch{}); !errors.Is(err, journal.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestServiceDeleteEntry(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	dto, err := svc.CreateEntry(ctx, entry.Draft{Title: "t", Mood: "joyful", Content: "c"})
	if err != nil {
		t.Fatalf("CreateEntry failed: %v", err)
	}
	if err := svc.DeleteEntry(ctx, dto.ID); err != nil {
		t.Fatalf("DeleteEntry failed: %v", err)
	}
	if err := svc.DeleteEntry(ctx, dto.ID); err != nil {
		t.Fatalf("second DeleteEntry should be a no-op, got %v", err)
	}
	if err := svc.DeleteEntry(ctx, "never-existed"); err != nil {
		t.Fatalf("DeleteEntry of unknown id should be a no-op, got %v", err)
	}
	if _, err := svc.EntryByID(ctx, dto.ID); !errors.Is(err, journal.ErrNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}

func TestServiceListAndMoods(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	for _, d := range []entry.Draft{
		{Title: "Old", Date: "2023-01-01", Mood: "anxious", Content: "Worried."},
		{Title: "Recent", Date: "2024-03-09", Mood: "joyful", Content: "Praise!", Tags: "worship"},
	} {
		if _, err := svc.CreateEntry(ctx, d); err != nil {
			t.Fatalf("CreateEntry failed: %v", err)
		}
	}

	all, err := svc.ListEntries(ctx, "", "", "")
	if err != nil {
		t.Fatalf("ListEntries failed: %v", err)
	}
	if len(all) != 2 || all[0].Title != "Recent" {
		t.Fatalf("expected newest first, got %+v", all)
	}

	week, err := svc.ListEntries(ctx, "", "", "week")
	if err != nil {
		t.Fatalf("ListEntries failed: %v", err)
	}
	if len(week) != 1 || week[0].Title != "Recent" {
		t.Fatalf("expected only the recent entry, got %+v", week)
	}

	tagged, err := svc.ListEntries(ctx, "WORSHIP", "", "")
	if err != nil || len(tagged) != 1 {
		t.Fatalf("expected tag search hit, got %v %v", tagged, err)
	}

	if _, err := svc.ListEntries(ctx, "", "elated", ""); err == nil {
		t.Fatalf("expected unknown mood error")
	}

	moods := svc.Moods(ctx)
	if len(moods) != len(entry.Moods()) {
		t.Fatalf("expected %d moods, got %d", len(entry.Moods()), len(moods))
	}
	for _, m := range moods {
		want := 0
		if m.Mood == "anxious" || m.Mood == "joyful" {
			want = 1
		}
		if m.Count != want {
			t.Fatalf("mood %s count = %d, want %d", m.Mood, m.Count, want)
		}
	}
}

func TestAsk(t *testing.T) {
	svc := newTestService(t)

	res, err := ask(svc, func(a assistant.Service) (string, error) {
		return a.Books(context.Background(), assistant.BookRequest{})
	})
	if err != nil {
		t.Fatalf("ask returned error: %v", err)
	}
	if !res.IsError {
		t.Fatalf("expected tool error result for upstream failure")
	}

	svc.Assistant = nil
	res, _ = ask(svc, func(a assistant.Service) (string, error) { return "", nil })
	if !res.IsError {
		t.Fatalf("expected tool error without assistant")
	}
}

func TestTemplateArg(t *testing.T) {
	if templateArg("abc") != "abc" {
		t.Fatalf("string arg not unwrapped")
	}
	if templateArg([]string{"xyz"}) != "xyz" {
		t.Fatalf("slice arg not unwrapped")
	}
	if templateArg(nil) != "" {
		t.Fatalf("nil arg should be empty")
	}
}

func TestNewServer(t *testing.T) {
	if srv := newServer("devo", "test", newTestService(t)); srv == nil {
		t.Fatalf("newServer returned nil")
	}
}
