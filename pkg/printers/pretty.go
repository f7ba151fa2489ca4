package printers

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/devo/pkg/entry"
)

type PrettyPrint struct {
	ShowID bool
	Out    io.Writer
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " entry")
	default:
		_, _ = c.Fprintln(pp.out(), " entries")
	}
}

// Entries prints one row per entry, newest first as given.
func (pp *PrettyPrint) Entries(entries ...*entry.Entry) {
	if len(entries) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprint(pp.out(), " No journal entries found.\n\n")
		return
	}

	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	faint := color.New(color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60
	for _, e := range entries {
		row := []interface{}{
			e.Date.Format("Jan 02 2006"),
			e.Mood.Emoji(),
			e.Title,
			faint.Sprint(tagList(e.Tags)),
		}
		if pp.ShowID {
			row = append([]interface{}{y.Sprint(e.ID)}, row...)
		}
		tbl.AddRow(row...)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	_, _ = fmt.Fprintln(pp.out(), "")
}

// Entry prints every field of e.
func (pp *PrettyPrint) Entry(e *entry.Entry) {
	b := color.New(color.Bold)
	faint := color.New(color.Faint)
	w := pp.out()

	_, _ = b.Fprintln(w, e.Title)
	_, _ = faint.Fprintf(w, "%s  %s %s\n", e.Date.Format("Monday, January 2, 2006"), e.Mood.Emoji(), e.Mood.Label())
	if pp.ShowID {
		_, _ = faint.Fprintf(w, "id %s\n", e.ID)
	}
	_, _ = fmt.Fprintf(w, "\n%s\n", e.Content)

	if e.ScriptureReference != "" {
		_, _ = b.Fprint(w, "\nScripture: ")
		_, _ = fmt.Fprintln(w, e.ScriptureReference)
	}
	if e.PrayerRequests != "" {
		_, _ = b.Fprintln(w, "\nPrayer requests")
		_, _ = fmt.Fprintln(w, e.PrayerRequests)
	}
	if len(e.Tags) > 0 {
		_, _ = faint.Fprintf(w, "\n%s\n", tagList(e.Tags))
	}
	_, _ = fmt.Fprintln(w, "")
}

func tagList(tags []string) string {
	if len(tags) == 0 {
		return ""
	}
	return "#" + strings.Join(tags, " #")
}
