package form

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"tableflip.dev/devo/pkg/entry"
	"tableflip.dev/devo/pkg/journal"
	"tableflip.dev/devo/pkg/store"
)

type blobPersistence struct {
	mu   sync.Mutex
	blob []byte
	fail error
}

func (b *blobPersistence) Load(context.Context) ([]*entry.Entry, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.blob == nil {
		return nil, store.ErrNotFound
	}
	var out []*entry.Entry
	err := json.Unmarshal(b.blob, &out)
	return out, err
}

func (b *blobPersistence) Save(_ context.Context, entries []*entry.Entry) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.fail != nil {
		return b.fail
	}
	data, err := json.Marshal(entries)
	b.blob = data
	return err
}

func (b *blobPersistence) Watch(context.Context) (<-chan store.Event, error) {
	return make(chan store.Event), nil
}

func (b *blobPersistence) Close() error { return nil }

type mockPrompter struct {
	mock.Mock
}

func (m *mockPrompter) Alert(msg string) {
	m.Called(msg)
}

func (m *mockPrompter) Confirm(msg string) bool {
	return m.Called(msg).Bool(0)
}

func setup(t *testing.T) (*Controller, *journal.Store, *blobPersistence, *mockPrompter) {
	t.Helper()
	p := &blobPersistence{}
	s, err := journal.Open(context.Background(), p)
	require.NoError(t, err)
	prompt := &mockPrompter{}
	return New(s, nil, prompt), s, p, prompt
}

func fill(c *Controller, title string) {
	f := c.Fields()
	_ = f.Set(FieldTitle, title)
	_ = f.Set(FieldContent, "Content for "+title)
	_ = f.Set(FieldTags, "a, b")
	f.SelectMood(entry.Grateful)
}

func TestSubmitCreates(t *testing.T) {
	c, s, _, _ := setup(t)
	ctx := context.Background()

	assert.Equal(t, LabelSave, c.SubmitLabel())
	fill(c, "First")
	e, err := c.Submit(ctx)
	require.NoError(t, err)
	require.NotNil(t, e)

	mode, _ := c.State()
	assert.Equal(t, Create, mode)
	assert.Empty(t, c.Fields().Value(FieldTitle))
	assert.Empty(t, c.Fields().Mood())
	assert.Equal(t, 1, s.Len())
}

func TestEditThenSubmitUpdatesInPlace(t *testing.T) {
	c, s, _, _ := setup(t)
	ctx := context.Background()

	fill(c, "One")
	one, err := c.Submit(ctx)
	require.NoError(t, err)
	fill(c, "Two")
	_, err = c.Submit(ctx)
	require.NoError(t, err)

	require.NoError(t, c.BeginEdit(one.ID))
	mode, id := c.State()
	assert.Equal(t, Editing, mode)
	assert.Equal(t, one.ID, id)
	assert.Equal(t, LabelUpdate, c.SubmitLabel())
	assert.Equal(t, "One", c.Fields().Value(FieldTitle))
	assert.Equal(t, "a, b", c.Fields().Value(FieldTags))
	assert.Equal(t, entry.Grateful, c.Fields().Mood())

	require.NoError(t, c.Fields().Set(FieldTitle, "One (edited)"))
	updated, err := c.Submit(ctx)
	require.NoError(t, err)
	assert.Equal(t, one.ID, updated.ID)

	entries := s.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "One (edited)", entries[1].Title)

	mode, _ = c.State()
	assert.Equal(t, Create, mode)
	assert.Equal(t, LabelSave, c.SubmitLabel())

	// The same dispatch now creates again.
	fill(c, "Three")
	_, err = c.Submit(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, s.Len())
}

func TestSubmitValidationAlertsAndKeepsState(t *testing.T) {
	c, s, _, prompt := setup(t)
	prompt.On("Alert", mock.AnythingOfType("string")).Once()

	_ = c.Fields().Set(FieldTitle, "Only a title")
	_, err := c.Submit(context.Background())
	assert.True(t, errors.Is(err, journal.ErrValidation))
	assert.Equal(t, "Only a title", c.Fields().Value(FieldTitle))
	assert.Zero(t, s.Len())
	prompt.AssertExpectations(t)
}

func TestSubmitUpdateOfVanishedEntryResets(t *testing.T) {
	c, s, _, _ := setup(t)
	ctx := context.Background()

	fill(c, "Gone soon")
	e, err := c.Submit(ctx)
	require.NoError(t, err)
	require.NoError(t, c.BeginEdit(e.ID))

	// Removed behind the form's back.
	require.NoError(t, s.Delete(ctx, e.ID))

	got, err := c.Submit(ctx)
	assert.NoError(t, err)
	assert.Nil(t, got)
	mode, _ := c.State()
	assert.Equal(t, Create, mode)
	assert.Zero(t, s.Len())
}

func TestSubmitStorageFailureKeepsDraft(t *testing.T) {
	c, _, p, _ := setup(t)
	p.fail = errors.New("quota")

	fill(c, "Unsaved")
	_, err := c.Submit(context.Background())
	assert.True(t, errors.Is(err, journal.ErrStorage))
	assert.Equal(t, "Unsaved", c.Fields().Value(FieldTitle))
}

func TestCancelReturnsToCreate(t *testing.T) {
	c, _, _, _ := setup(t)
	fill(c, "Draft")
	e, err := c.Submit(context.Background())
	require.NoError(t, err)

	require.NoError(t, c.BeginEdit(e.ID))
	c.Cancel()
	mode, id := c.State()
	assert.Equal(t, Create, mode)
	assert.Empty(t, id)
	assert.Empty(t, c.Fields().Value(FieldTitle))
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	c, s, _, prompt := setup(t)
	ctx := context.Background()
	fill(c, "Keep me")
	e, err := c.Submit(ctx)
	require.NoError(t, err)

	prompt.On("Confirm", ConfirmDelete).Return(false).Once()
	deleted, err := c.Delete(ctx, e.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.Equal(t, 1, s.Len())

	prompt.On("Confirm", ConfirmDelete).Return(true).Once()
	deleted, err = c.Delete(ctx, e.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Zero(t, s.Len())
	prompt.AssertExpectations(t)
}

func TestDeleteWithoutPrompterKeepsEntry(t *testing.T) {
	p := &blobPersistence{}
	s, err := journal.Open(context.Background(), p)
	require.NoError(t, err)
	e, err := s.Create(context.Background(), entry.Draft{Title: "Stay", Mood: "peaceful", Content: "Still waters."})
	require.NoError(t, err)

	deleted, err := New(s, nil, nil).Delete(context.Background(), e.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.Equal(t, 1, s.Len())
}

func TestDeleteOfEditedEntryResetsForm(t *testing.T) {
	c, _, _, prompt := setup(t)
	ctx := context.Background()
	fill(c, "Editing")
	e, err := c.Submit(ctx)
	require.NoError(t, err)
	require.NoError(t, c.BeginEdit(e.ID))

	prompt.On("Confirm", ConfirmDelete).Return(true)
	_, err = c.Delete(ctx, e.ID)
	require.NoError(t, err)

	mode, _ := c.State()
	assert.Equal(t, Create, mode)
	assert.Empty(t, c.Fields().Value(FieldTitle))
}

func TestFieldsRejectUnknownIDs(t *testing.T) {
	f := NewFields()
	assert.Error(t, f.Set("nope", "x"))
	f.SetValue("nope", "x")
	assert.Empty(t, f.Value("nope"))
	assert.True(t, f.Multiline(FieldContent))
	assert.False(t, f.Multiline(FieldTitle))
}
