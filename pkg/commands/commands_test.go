package commands

import (
	"testing"
)

func TestCommandTree(t *testing.T) {
	root := New()
	for _, name := range []string{
		"add", "edit", "delete", "list", "show", "moods", "report",
		"speak", "dictate", "ask", "serve", "mcp", "info", "key", "version", "completion",
	} {
		if c, _, err := root.Find([]string{name}); err != nil || c.Name() != name {
			t.Errorf("missing command %q", name)
		}
	}

	for _, path := range [][]string{
		{"ask", "quiet-time"}, {"ask", "books"}, {"ask", "study"}, {"ask", "question"},
		{"key", "set"}, {"key", "get"}, {"key", "delete"},
	} {
		if c, _, err := root.Find(path); err != nil || c.Name() != path[1] {
			t.Errorf("missing command %v", path)
		}
	}

	if c, _, err := root.Find([]string{"ls"}); err != nil || c.Name() != "list" {
		t.Error("expected ls alias for list")
	}
}

func TestMask(t *testing.T) {
	tests := map[string]string{
		"":            "",
		"abc":         "***",
		"gsk_1234567": "*******4567",
	}
	for in, want := range tests {
		if got := mask(in); got != want {
			t.Errorf("mask(%q) = %q, want %q", in, got, want)
		}
	}
}
