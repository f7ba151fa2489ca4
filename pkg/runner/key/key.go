// Package key provides CLI helpers to display the mood legend.
package key

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/devo/pkg/entry"
	"tableflip.dev/devo/pkg/journal"
)

// Key prints every mood with its emoji and, when a journal is set, how many
// entries carry it.
type Key struct {
	Journal *journal.Store
	Out     io.Writer
}

// Do renders the mood legend.
func (k *Key) Do(_ context.Context) error {
	out := k.Out
	if out == nil {
		out = color.Output
	}
	bold := color.New(color.Bold)

	counts := map[entry.Mood]int{}
	if k.Journal != nil {
		for _, e := range k.Journal.Entries() {
			counts[e.Mood]++
		}
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	if k.Journal != nil {
		tbl.AddRow(bold.Sprint("   "), bold.Sprint("Mood"), bold.Sprint("Name"), bold.Sprint("Entries"))
	} else {
		tbl.AddRow(bold.Sprint("   "), bold.Sprint("Mood"), bold.Sprint("Name"))
	}
	for _, m := range entry.Moods() {
		if k.Journal != nil {
			tbl.AddRow(m.Emoji(), m.Label(), string(m), counts[m])
		} else {
			tbl.AddRow(m.Emoji(), m.Label(), string(m))
		}
	}
	tbl.RightAlign(0)

	_, _ = fmt.Fprintln(out, "")
	_, _ = fmt.Fprintln(out, tbl)
	_, _ = fmt.Fprintln(out, "")
	return nil
}
