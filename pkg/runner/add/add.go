// Package add creates journal entries from the command line.
package add

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/devo/pkg/entry"
	"tableflip.dev/devo/pkg/form"
	"tableflip.dev/devo/pkg/journal"
	"tableflip.dev/devo/pkg/printers"
)

// MoodPicker asks for a mood when none was given.
type MoodPicker interface {
	SelectMood(label string) (entry.Mood, error)
}

type Add struct {
	Draft entry.Draft
	// Interactive fills the draft with a form before submitting.
	Interactive bool
	EntryForm   func(*entry.Draft) error
	Prompt      form.Prompter
	Moods       MoodPicker
	ShowID      bool
	Out         io.Writer

	Journal *journal.Store
}

func (n *Add) Do(ctx context.Context) error {
	if n.Journal == nil {
		return errors.New("can not add, no journal")
	}

	if n.Interactive && n.EntryForm != nil {
		if err := n.EntryForm(&n.Draft); err != nil {
			return err
		}
	} else if n.Draft.Mood == "" && n.Moods != nil {
		m, err := n.Moods.SelectMood("How are you feeling")
		if err != nil {
			return err
		}
		n.Draft.Mood = string(m)
	}

	c := form.New(n.Journal, nil, n.Prompt)
	c.Fields().Fill(n.Draft)
	e, err := c.Submit(ctx)
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out}
	pp.Title("Journal entry saved")
	pp.Entry(e)
	return nil
}
