// Package get lists and shows journal entries.
package get

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/devo/pkg/filter"
	"tableflip.dev/devo/pkg/journal"
	"tableflip.dev/devo/pkg/printers"
	"tableflip.dev/devo/pkg/timeutil"
)

type Get struct {
	ShowID bool
	// ID shows a single entry instead of a list.
	ID       string
	Criteria filter.Criteria
	// Calendar prints the month of Now with journaled days highlighted.
	Calendar bool
	JSON     bool
	Out      io.Writer
	Now      func() time.Time

	Journal *journal.Store
}

func (n *Get) Do(ctx context.Context) error {
	if n.Journal == nil {
		return errors.New("can not get, no journal")
	}
	if n.Out == nil {
		n.Out = color.Output
	}
	now := time.Now
	if n.Now != nil {
		now = n.Now
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out}

	if n.ID != "" {
		e, err := n.Journal.Get(n.ID)
		if err != nil {
			return err
		}
		if n.JSON {
			return n.encode(e)
		}
		pp.Entry(e)
		return nil
	}

	all := filter.Apply(n.Journal.Entries(), n.Criteria, now())
	if n.JSON {
		return n.encode(all)
	}

	if n.Calendar {
		pp.Calendar(now(), all...)
		return nil
	}

	_, _ = fmt.Fprintln(n.Out, "")
	pp.TitleWithCount(title(n.Criteria), len(all))
	pp.Entries(all...)
	return nil
}

func (n *Get) encode(v any) error {
	enc := json.NewEncoder(n.Out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func title(c filter.Criteria) string {
	t := "Journal"
	if c.Mood != "" {
		t = fmt.Sprintf("%s %s", c.Mood.Emoji(), c.Mood.Label())
	}
	if c.Range != "" && c.Range != timeutil.All {
		t += " · " + c.Range.Label()
	}
	return t
}
