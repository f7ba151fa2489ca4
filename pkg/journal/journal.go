package journal

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"tableflip.dev/devo/pkg/entry"
	"tableflip.dev/devo/pkg/logger"
	"tableflip.dev/devo/pkg/store"
)

// Store holds the journal collection in memory and writes the whole
// collection through to persistence on every mutation. Entries are ordered
// newest first by creation; updates keep their position.
type Store struct {
	mu       sync.RWMutex
	p        store.Persistence
	entries  []*entry.Entry
	now      func() time.Time
	newID    func() string
	validate *validator.Validate
}

type Option func(*Store)

// WithClock overrides the time source used for dates and timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDs overrides entry id generation.
func WithIDs(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

// Open creates a Store over p and loads the persisted collection.
func Open(ctx context.Context, p store.Persistence, opts ...Option) (*Store, error) {
	if p == nil {
		return nil, errors.New("journal: no persistence configured")
	}
	s := &Store{
		p:        p,
		now:      time.Now,
		newID:    uuid.NewString,
		validate: newValidator(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Load(ctx)
	return s, nil
}

// Load reads the persisted collection into memory and returns a snapshot.
// Missing or unreadable data yields an empty collection.
func (s *Store) Load(ctx context.Context) []*entry.Entry {
	entries, err := s.p.Load(ctx)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			logger.Warn("journal: starting with an empty collection", "err", err)
		}
		entries = []*entry.Entry{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = entries
	return cloneAll(s.entries)
}

// Reload re-reads storage after an external change. Unlike Load, a read
// failure other than a missing collection keeps the current memory. The read
// holds the write lock so a concurrent commit can never be swapped out by an
// older blob.
func (s *Store) Reload(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.p.Load(ctx)
	switch {
	case errors.Is(err, store.ErrNotFound):
		entries = []*entry.Entry{}
	case err != nil:
		return &StorageError{Op: "reload", Err: err}
	}

	if reflect.DeepEqual(entries, s.entries) {
		logger.Debug("journal: storage unchanged, skipping reload")
		return nil
	}
	s.entries = entries
	return nil
}

// Watch reloads the collection whenever persistence reports a change, until
// ctx is done.
func (s *Store) Watch(ctx context.Context) error {
	events, err := s.p.Watch(ctx)
	if err != nil {
		return err
	}
	go func() {
		for range events {
			if err := s.Reload(ctx); err != nil {
				logger.Warn("journal: reload failed", "err", err)
				continue
			}
			logger.Debug("journal: reloaded after storage change")
		}
	}()
	return nil
}

// Entries returns a snapshot of the collection.
func (s *Store) Entries() []*entry.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneAll(s.entries)
}

// Len is the number of entries in memory.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *Store) Get(id string) (*entry.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(id); i >= 0 {
		return s.entries[i].Clone(), nil
	}
	return nil, &NotFoundError{ID: id}
}

// Create validates d and prepends a new entry with a fresh id.
func (s *Store) Create(ctx context.Context, d entry.Draft) (*entry.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	date, mood, err := s.check(d)
	if err != nil {
		return nil, err
	}

	e := entry.New(d, date, mood)
	e.ID = s.uniqueID()
	stamp := s.stamp()
	e.CreatedAt = entry.Timestamp{Time: stamp}
	e.UpdatedAt = entry.Timestamp{Time: stamp}

	next := make([]*entry.Entry, 0, len(s.entries)+1)
	next = append(next, e)
	next = append(next, s.entries...)
	if err := s.commit(ctx, "create", next); err != nil {
		return nil, err
	}
	logger.Debug("journal: created entry", "id", e.ID)
	return e.Clone(), nil
}

// Update replaces every user field of the entry with id, keeping its id,
// creation time and position.
func (s *Store) Update(ctx context.Context, id string, d entry.Draft) (*entry.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, &NotFoundError{ID: id}
	}
	date, mood, err := s.check(d)
	if err != nil {
		return nil, err
	}

	prev := s.entries[i]
	e := entry.New(d, date, mood)
	e.ID = prev.ID
	e.CreatedAt = prev.CreatedAt
	stamp := s.stamp()
	if !stamp.After(prev.UpdatedAt.Time) {
		stamp = prev.UpdatedAt.Add(time.Millisecond)
	}
	e.UpdatedAt = entry.Timestamp{Time: stamp}

	next := make([]*entry.Entry, len(s.entries))
	copy(next, s.entries)
	next[i] = e
	if err := s.commit(ctx, "update", next); err != nil {
		return nil, err
	}
	logger.Debug("journal: updated entry", "id", e.ID)
	return e.Clone(), nil
}

// Delete removes the entry with id. Deleting an absent id does nothing.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil
	}
	next := make([]*entry.Entry, 0, len(s.entries)-1)
	next = append(next, s.entries[:i]...)
	next = append(next, s.entries[i+1:]...)
	if err := s.commit(ctx, "delete", next); err != nil {
		return err
	}
	logger.Debug("journal: deleted entry", "id", id)
	return nil
}

// commit persists next and only then swaps it in, so a failed write leaves
// memory matching storage.
func (s *Store) commit(ctx context.Context, op string, next []*entry.Entry) error {
	if err := s.p.Save(ctx, next); err != nil {
		logger.Error("journal: persist failed", "op", op, "err", err)
		return &StorageError{Op: op, Err: err}
	}
	s.entries = next
	return nil
}

func (s *Store) indexOf(id string) int {
	for i, e := range s.entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) uniqueID() string {
	for {
		id := s.newID()
		if id != "" && s.indexOf(id) < 0 {
			return id
		}
	}
}

func (s *Store) stamp() time.Time {
	return s.now().Round(0).UTC()
}

func cloneAll(entries []*entry.Entry) []*entry.Entry {
	out := make([]*entry.Entry, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Clone())
	}
	return out
}
