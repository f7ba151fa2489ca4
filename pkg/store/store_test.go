package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"tableflip.dev/devo/pkg/entry"
)

func sampleEntries(t *testing.T) []*entry.Entry {
	t.Helper()
	d1, _ := entry.ParseDate("2024-05-02")
	d2, _ := entry.ParseDate("2024-05-01")
	created := time.Date(2024, 5, 2, 7, 0, 0, 42, time.UTC)
	return []*entry.Entry{
		{
			ID:        "second",
			Title:     "Evening",
			Date:      d1,
			Mood:      entry.Grateful,
			Content:   "Thankful",
			Tags:      []string{"rest", "family"},
			CreatedAt: entry.Timestamp{Time: created},
			UpdatedAt: entry.Timestamp{Time: created.Add(time.Millisecond)},
		},
		{
			ID:                 "first",
			Title:              "Morning",
			Date:               d2,
			Mood:               entry.Peaceful,
			Content:            "Quiet",
			ScriptureReference: "Psalm 23",
			Tags:               []string{},
			CreatedAt:          entry.Timestamp{Time: created.Add(-time.Hour)},
			UpdatedAt:          entry.Timestamp{Time: created.Add(-time.Hour)},
		},
	}
}

func openBackends(t *testing.T) map[string]Persistence {
	t.Helper()
	mr := miniredis.RunT(t)

	out := make(map[string]Persistence)
	for _, cfg := range []testConfig{
		{path: t.TempDir(), backend: "diskv"},
		{path: t.TempDir(), backend: "sqlite"},
		{backend: "redis", redis: "redis://" + mr.Addr()},
		{backend: "memory"},
	} {
		p, err := Load(cfg)
		if err != nil {
			t.Fatalf("load %s: %v", cfg.backend, err)
		}
		t.Cleanup(func() { _ = p.Close() })
		out[cfg.backend] = p
	}
	return out
}

func TestLoadMissingIsNotFound(t *testing.T) {
	for name, p := range openBackends(t) {
		if _, err := p.Load(context.Background()); !errors.Is(err, ErrNotFound) {
			t.Fatalf("%s: expected ErrNotFound, got %v", name, err)
		}
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, p := range openBackends(t) {
		want := sampleEntries(t)
		if err := p.Save(ctx, want); err != nil {
			t.Fatalf("%s: save: %v", name, err)
		}
		got, err := p.Load(ctx)
		if err != nil {
			t.Fatalf("%s: load: %v", name, err)
		}
		if len(got) != len(want) {
			t.Fatalf("%s: expected %d entries, got %d", name, len(want), len(got))
		}
		for i := range want {
			if got[i].ID != want[i].ID || got[i].Title != want[i].Title || got[i].Mood != want[i].Mood {
				t.Fatalf("%s: entry %d mismatch: %+v", name, i, got[i])
			}
			if !got[i].CreatedAt.Equal(want[i].CreatedAt.Time) || !got[i].UpdatedAt.Equal(want[i].UpdatedAt.Time) {
				t.Fatalf("%s: entry %d timestamps changed", name, i)
			}
			if got[i].Date.String() != want[i].Date.String() {
				t.Fatalf("%s: entry %d date changed", name, i)
			}
		}

		// Saving again replaces the blob rather than appending to it.
		if err := p.Save(ctx, want[:1]); err != nil {
			t.Fatalf("%s: save: %v", name, err)
		}
		got, err = p.Load(ctx)
		if err != nil {
			t.Fatalf("%s: load: %v", name, err)
		}
		if len(got) != 1 || got[0].ID != "second" {
			t.Fatalf("%s: expected replaced collection, got %+v", name, got)
		}
	}
}

func TestDiskvCorruptBlob(t *testing.T) {
	base := t.TempDir()
	p, err := Load(testConfig{path: base, backend: "diskv"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := os.WriteFile(filepath.Join(base, "journalEntries"), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := p.Load(context.Background()); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("expected ErrCorrupt, got %v", err)
	}
}

func TestRedisCorruptBlob(t *testing.T) {
	mr := miniredis.RunT(t)
	if err := mr.Set("journalEntries", "[{"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	p, err := Load(testConfig{backend: "redis", redis: "redis://" + mr.Addr()})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	defer p.Close()
	if _, err := p.Load(context.Background()); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("expected ErrCorrupt, got %v", err)
	}
}

func TestRedisWatchIsClosed(t *testing.T) {
	mr := miniredis.RunT(t)
	p, err := Load(testConfig{backend: "redis", redis: "redis://" + mr.Addr()})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	defer p.Close()
	ch, err := p.Watch(context.Background())
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	if _, ok := <-ch; ok {
		t.Fatal("expected closed channel")
	}
}

func TestUnknownBackend(t *testing.T) {
	if _, err := Load(testConfig{path: t.TempDir(), backend: "mongo"}); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}

func TestMemorySeedAndFailSave(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(sampleEntries(t)...)
	got, err := m.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 seeded entries, got %d", len(got))
	}

	// Loaded entries are copies.
	got[0].Title = "changed"
	again, _ := m.Load(ctx)
	if again[0].Title != "Evening" {
		t.Fatalf("expected stored title to be unchanged, got %q", again[0].Title)
	}

	m.FailSave = errors.New("disk full")
	if err := m.Save(ctx, nil); err == nil {
		t.Fatal("expected save failure")
	}
}
