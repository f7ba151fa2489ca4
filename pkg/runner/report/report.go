// Package report prints the mood report for a date window.
package report

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/devo/pkg/entry"
	"tableflip.dev/devo/pkg/journal"
	"tableflip.dev/devo/pkg/printers"
	"tableflip.dev/devo/pkg/report"
)

// DefaultWindow is the span covered when Since is empty.
const DefaultWindow = 7 * 24 * time.Hour

type Report struct {
	// Since and Until are YYYY-MM-DD. Until defaults to today and Since to
	// a week before Until.
	Since  string
	Until  string
	ShowID bool
	JSON   bool
	Out    io.Writer
	Now    func() time.Time

	Journal *journal.Store
}

func (n *Report) Do(_ context.Context) error {
	if n.Journal == nil {
		return errors.New("can not report, no journal")
	}
	if n.Out == nil {
		n.Out = color.Output
	}
	now := time.Now
	if n.Now != nil {
		now = n.Now
	}

	until := entry.Today(now())
	if n.Until != "" {
		d, err := entry.ParseDate(n.Until)
		if err != nil {
			return err
		}
		until = d
	}
	since := entry.DateOf(until.Add(-DefaultWindow))
	if n.Since != "" {
		d, err := entry.ParseDate(n.Since)
		if err != nil {
			return err
		}
		since = d
	}

	r := report.Build(n.Journal.Entries(), since, until)
	if n.JSON {
		enc := json.NewEncoder(n.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out}
	_, _ = fmt.Fprintln(n.Out, "")
	pp.TitleWithCount(fmt.Sprintf("%s to %s", r.Since, r.Until), r.Total)
	if r.Total == 0 {
		pp.Entries()
		return nil
	}
	for _, s := range r.Sections {
		pp.NewLine()
		pp.TitleWithCount(s.Mood.Emoji()+" "+s.Mood.Label(), len(s.Entries))
		pp.Entries(s.Entries...)
	}
	return nil
}
