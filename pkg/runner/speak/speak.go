// Package speak reads journal entries aloud.
package speak

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/devo/pkg/journal"
	"tableflip.dev/devo/pkg/voice"
)

const pollInterval = 50 * time.Millisecond

type Speak struct {
	// ID selects the entry to read. Text is spoken instead when set.
	ID     string
	Text   string
	Synth  voice.Synthesizer
	Locale string
	Hints  []string
	Out    io.Writer

	Journal *journal.Store
}

// Do speaks and blocks until speech ends or ctx is cancelled.
func (n *Speak) Do(ctx context.Context) error {
	if n.Out == nil {
		n.Out = color.Output
	}
	if n.Synth == nil {
		return voice.ErrUnavailable
	}

	opts := []voice.PlaybackOption{voice.WithPlaybackLocale(n.Locale)}
	if len(n.Hints) > 0 {
		opts = append(opts, voice.WithVoiceHints(n.Hints...))
	}
	p, err := voice.NewPlayback(n.Synth, &view{out: n.Out}, opts...)
	if err != nil {
		return err
	}

	switch {
	case n.Text != "":
		err = p.Speak("text", n.Text)
	case n.ID != "":
		if n.Journal == nil {
			return errors.New("can not speak, no journal")
		}
		e, gerr := n.Journal.Get(n.ID)
		if gerr != nil {
			return gerr
		}
		err = p.SpeakEntry(e)
	default:
		return errors.New("nothing to speak")
	}
	if err != nil {
		return err
	}

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			p.Stop()
			return nil
		case <-ticker.C:
			if state, _ := p.State(); state == voice.PlaybackIdle {
				return nil
			}
		}
	}
}

type view struct {
	out io.Writer
}

func (v *view) SetPlaying(source string, playing bool) {
	faint := color.New(color.Faint)
	if playing {
		_, _ = faint.Fprintf(v.out, "▶ speaking %s\n", source)
		return
	}
	_, _ = faint.Fprintln(v.out, "■ done")
}

func (v *view) SetPaused(_ string, paused bool) {
	if paused {
		_, _ = fmt.Fprintln(v.out, "⏸ paused")
	}
}
