// Package dictate captures spoken or typed lines into a journal field and
// saves the result.
package dictate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/devo/pkg/entry"
	"tableflip.dev/devo/pkg/form"
	"tableflip.dev/devo/pkg/journal"
	"tableflip.dev/devo/pkg/printers"
	"tableflip.dev/devo/pkg/voice"
)

const pollInterval = 50 * time.Millisecond

type Dictate struct {
	// ID edits an existing entry. Empty creates a new one from Draft.
	ID     string
	Draft  entry.Draft
	Field  string
	Source voice.Recognizer
	Locale string
	Prompt form.Prompter
	Out    io.Writer

	Journal *journal.Store
}

func (n *Dictate) Do(ctx context.Context) error {
	if n.Journal == nil {
		return errors.New("can not dictate, no journal")
	}
	if n.Out == nil {
		n.Out = color.Output
	}
	field := n.Field
	if field == "" {
		field = voice.JournalField
	}

	c := form.New(n.Journal, nil, n.Prompt)
	if n.ID != "" {
		if err := c.BeginEdit(n.ID); err != nil {
			return err
		}
	} else {
		c.Fields().Fill(n.Draft)
	}

	v := &view{out: n.Out}
	d, err := voice.SetupDictation(n.Source, c.Fields(), v, voice.WithDictationLocale(n.Locale))
	if err != nil {
		return err
	}
	_, _ = color.New(color.Faint).Fprintln(n.Out, "Dictating into", field+". Enter an empty line to finish.")
	if err := d.Start(field); err != nil {
		return err
	}

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
wait:
	for {
		select {
		case <-ctx.Done():
			d.Stop()
			c.Cancel()
			return ctx.Err()
		case <-ticker.C:
			if state, _ := d.State(); state == voice.DictationIdle {
				break wait
			}
		}
	}
	if msg := v.lastStatus(); strings.HasPrefix(msg, "Error:") {
		return errors.New(msg)
	}

	e, err := c.Submit(ctx)
	if err != nil {
		return err
	}
	if e == nil {
		return fmt.Errorf("entry %q was removed while dictating", n.ID)
	}
	pp := printers.PrettyPrint{Out: n.Out}
	pp.Title("Journal entry saved")
	pp.Entry(e)
	return nil
}

type view struct {
	out io.Writer

	mu     sync.Mutex
	status string
}

func (v *view) SetStatus(text string) {
	v.mu.Lock()
	v.status = text
	v.mu.Unlock()
	if text != "" {
		_, _ = color.New(color.Faint, color.Italic).Fprintln(v.out, text)
	}
}

func (v *view) SetPreview(text string) {
	if text != "" {
		_, _ = color.New(color.Faint).Fprintf(v.out, "… %s\n", text)
	}
}

func (v *view) SetActive(string, bool) {}

func (v *view) SetPaused(bool) {}

func (v *view) HideVoiceControls() {}

func (v *view) lastStatus() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.status
}
