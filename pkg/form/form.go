// Package form drives the journal entry form: one submit action that
// creates or updates depending on the current mode.
package form

import (
	"context"
	"errors"
	"sync"

	"tableflip.dev/devo/pkg/entry"
	"tableflip.dev/devo/pkg/journal"
	"tableflip.dev/devo/pkg/logger"
)

// Mode is the form state.
type Mode int

const (
	Create Mode = iota
	Editing
)

func (m Mode) String() string {
	if m == Editing {
		return "editing"
	}
	return "create"
}

const (
	LabelSave   = "Save Entry"
	LabelUpdate = "Update Entry"

	ConfirmDelete = "Are you sure you want to delete this journal entry?"
)

// Entries is the part of journal.Store the form needs.
type Entries interface {
	Get(id string) (*entry.Entry, error)
	Create(ctx context.Context, d entry.Draft) (*entry.Entry, error)
	Update(ctx context.Context, id string, d entry.Draft) (*entry.Entry, error)
	Delete(ctx context.Context, id string) error
}

// Prompter shows blocking messages to the user.
type Prompter interface {
	Alert(msg string)
	Confirm(msg string) bool
}

type Controller struct {
	mu      sync.Mutex
	entries Entries
	fields  *Fields
	prompt  Prompter
	mode    Mode
	editID  string
}

// New returns a controller in Create mode. A nil fields allocates a fresh
// set.
func New(entries Entries, fields *Fields, prompt Prompter) *Controller {
	if fields == nil {
		fields = NewFields()
	}
	return &Controller{entries: entries, fields: fields, prompt: prompt}
}

func (c *Controller) Fields() *Fields { return c.fields }

// State returns the mode and, when editing, the bound entry id.
func (c *Controller) State() (Mode, string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode, c.editID
}

func (c *Controller) SubmitLabel() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mode == Editing {
		return LabelUpdate
	}
	return LabelSave
}

// Submit is the form's only submit handler. It reads the mode at call time
// and either creates a new entry or updates the one being edited.
//
// A nil entry with a nil error means the edited entry vanished and the form
// was reset.
func (c *Controller) Submit(ctx context.Context) (*entry.Entry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	d := c.fields.Draft()

	var (
		e   *entry.Entry
		err error
	)
	switch c.mode {
	case Editing:
		e, err = c.entries.Update(ctx, c.editID, d)
	default:
		e, err = c.entries.Create(ctx, d)
	}

	var verr *journal.ValidationError
	switch {
	case err == nil:
		c.resetLocked()
		return e, nil
	case errors.As(err, &verr):
		if c.prompt != nil {
			c.prompt.Alert(verr.Message())
		}
		return nil, err
	case errors.Is(err, journal.ErrNotFound):
		logger.Info("form: edited entry no longer exists", "id", c.editID)
		c.resetLocked()
		return nil, nil
	default:
		return nil, err
	}
}

// BeginEdit binds the form to id and fills every field from the entry.
func (c *Controller) BeginEdit(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, err := c.entries.Get(id)
	if err != nil {
		return err
	}
	c.fields.Fill(e.Draft())
	c.mode = Editing
	c.editID = e.ID
	return nil
}

// Cancel abandons the current input and returns to Create.
func (c *Controller) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetLocked()
}

// Delete asks for confirmation and removes id. It reports whether the
// entry was deleted. Without a prompter nothing is deleted.
func (c *Controller) Delete(ctx context.Context, id string) (bool, error) {
	if c.prompt == nil || !c.prompt.Confirm(ConfirmDelete) {
		return false, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.entries.Delete(ctx, id); err != nil {
		return false, err
	}
	if c.mode == Editing && c.editID == id {
		c.resetLocked()
	}
	return true, nil
}

func (c *Controller) resetLocked() {
	c.fields.Clear()
	c.mode = Create
	c.editID = ""
}
