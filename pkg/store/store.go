package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"tableflip.dev/devo/pkg/config"
	"tableflip.dev/devo/pkg/entry"
)

var (
	// ErrNotFound is returned by Load when nothing has been saved under the
	// collection key yet.
	ErrNotFound = errors.New("store: collection not found")
	// ErrCorrupt wraps decode failures of a persisted collection.
	ErrCorrupt = errors.New("store: collection is corrupt")
)

// Config is the subset of configuration the persistence layer needs.
type Config interface {
	BasePath() string
	StorageBackend() string
	StorageKey() string
	RedisAddr() string
}

// Persistence stores the whole journal collection as one blob under a fixed
// key. Save replaces the blob atomically.
type Persistence interface {
	Load(ctx context.Context) ([]*entry.Entry, error)
	Save(ctx context.Context, entries []*entry.Entry) error
	Watch(ctx context.Context) (<-chan Event, error)
	Close() error
}

// Load creates the Persistence selected by cfg. A nil cfg loads the
// configuration from the environment.
func Load(cfg Config) (Persistence, error) {
	if cfg == nil {
		c, err := config.Load()
		if err != nil {
			return nil, err
		}
		cfg = c
	}

	switch cfg.StorageBackend() {
	case "", "diskv":
		return newDiskv(cfg.BasePath(), cfg.StorageKey())
	case "redis":
		return newRedis(cfg.RedisAddr(), cfg.StorageKey())
	case "sqlite":
		return newSQLite(cfg.BasePath(), cfg.StorageKey())
	case "memory":
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("store: unknown backend %q", cfg.StorageBackend())
	}
}

func encode(entries []*entry.Entry) ([]byte, error) {
	if entries == nil {
		entries = []*entry.Entry{}
	}
	return json.Marshal(entries)
}

func decode(data []byte) ([]*entry.Entry, error) {
	var entries []*entry.Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	out := entries[:0]
	for _, e := range entries {
		if e != nil {
			out = append(out, e)
		}
	}
	return out, nil
}
