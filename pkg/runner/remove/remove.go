// Package remove deletes a journal entry after confirmation.
package remove

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/devo/pkg/form"
	"tableflip.dev/devo/pkg/journal"
)

type Remove struct {
	ID     string
	Prompt form.Prompter
	Out    io.Writer

	Journal *journal.Store
}

func (n *Remove) Do(ctx context.Context) error {
	if n.Journal == nil {
		return errors.New("can not delete, no journal")
	}
	out := n.Out
	if out == nil {
		out = color.Output
	}

	e, err := n.Journal.Get(n.ID)
	if err != nil {
		return err
	}

	c := form.New(n.Journal, nil, n.Prompt)
	deleted, err := c.Delete(ctx, e.ID)
	if err != nil {
		return err
	}
	if !deleted {
		_, _ = fmt.Fprintln(out, "Kept", e.Title)
		return nil
	}
	_, _ = fmt.Fprintln(out, "Deleted", e.Title)
	return nil
}
