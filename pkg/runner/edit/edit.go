// Package edit updates an existing journal entry.
package edit

import (
	"context"
	"errors"
	"fmt"
	"io"

	"tableflip.dev/devo/pkg/entry"
	"tableflip.dev/devo/pkg/form"
	"tableflip.dev/devo/pkg/journal"
	"tableflip.dev/devo/pkg/printers"
)

type Edit struct {
	ID string
	// Changes maps form field ids to new values. Fields not listed keep
	// their stored value.
	Changes map[string]string
	Mood    string

	Interactive bool
	EntryForm   func(*entry.Draft) error
	Prompt      form.Prompter
	ShowID      bool
	Out         io.Writer

	Journal *journal.Store
}

func (n *Edit) Do(ctx context.Context) error {
	if n.Journal == nil {
		return errors.New("can not edit, no journal")
	}

	c := form.New(n.Journal, nil, n.Prompt)
	if err := c.BeginEdit(n.ID); err != nil {
		return err
	}

	fields := c.Fields()
	for id, v := range n.Changes {
		if err := fields.Set(id, v); err != nil {
			return err
		}
	}
	if n.Mood != "" {
		m, err := entry.ParseMood(n.Mood)
		if err != nil {
			return err
		}
		fields.SelectMood(m)
	}

	if n.Interactive && n.EntryForm != nil {
		d := fields.Draft()
		if err := n.EntryForm(&d); err != nil {
			c.Cancel()
			return err
		}
		fields.Fill(d)
	}

	e, err := c.Submit(ctx)
	if err != nil {
		return err
	}
	if e == nil {
		return fmt.Errorf("entry %q was removed while editing", n.ID)
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out}
	pp.Title("Journal entry updated")
	pp.Entry(e)
	return nil
}
