package voice

import (
	"sync"

	"tableflip.dev/devo/pkg/entry"
	"tableflip.dev/devo/pkg/logger"
)

type PlaybackState int

const (
	PlaybackIdle PlaybackState = iota
	Speaking
	PlaybackPaused
)

func (s PlaybackState) String() string {
	switch s {
	case Speaking:
		return "speaking"
	case PlaybackPaused:
		return "paused"
	default:
		return "idle"
	}
}

// Utterance is one unit of synthesized speech.
type Utterance struct {
	Text   string
	Voice  string
	Locale string
	Rate   float64
	Pitch  float64
	Volume float64
}

// UtteranceCallbacks receive utterance lifecycle events.
type UtteranceCallbacks struct {
	OnEnd   func()
	OnError func(error)
}

// Synthesizer is a text-to-speech service with a single output channel.
type Synthesizer interface {
	Voices() []VoiceInfo
	Speak(u Utterance, cb UtteranceCallbacks) error
	Pause()
	Resume()
	Cancel()
}

// PlaybackView renders the play/pause control of the source being spoken.
type PlaybackView interface {
	SetPlaying(source string, playing bool)
	SetPaused(source string, paused bool)
}

type Playback struct {
	mu     sync.Mutex
	svc    Synthesizer
	view   PlaybackView
	locale string
	hints  []string
	state  PlaybackState
	source string
	token  uint64
}

type PlaybackOption func(*Playback)

func WithPlaybackLocale(locale string) PlaybackOption {
	return func(p *Playback) {
		if locale != "" {
			p.locale = locale
		}
	}
}

// WithVoiceHints sets the substrings PickVoice looks for, in priority order.
func WithVoiceHints(hints ...string) PlaybackOption {
	return func(p *Playback) { p.hints = hints }
}

func NewPlayback(svc Synthesizer, view PlaybackView, opts ...PlaybackOption) (*Playback, error) {
	if svc == nil {
		return nil, ErrUnavailable
	}
	if view == nil {
		view = nopPlaybackView{}
	}
	p := &Playback{
		svc:    svc,
		view:   view,
		locale: DefaultLocale,
		hints:  []string{"female", "Google"},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

func (p *Playback) State() (PlaybackState, string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state, p.source
}

// Speak cancels whatever is playing and speaks text. source identifies the
// control that started it.
func (p *Playback) Speak(source, text string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state != PlaybackIdle {
		p.cancelLocked()
	}

	p.token++
	tok := p.token
	u := Utterance{
		Text:   text,
		Voice:  PickVoice(p.svc.Voices(), p.locale, p.hints),
		Locale: p.locale,
		Rate:   1.0,
		Pitch:  1.0,
		Volume: 1.0,
	}
	err := p.svc.Speak(u, UtteranceCallbacks{
		OnEnd:   func() { p.onEnd(tok) },
		OnError: func(err error) { p.onError(tok, err) },
	})
	if err != nil {
		return &ServiceError{Op: "speak", Err: err}
	}
	p.state = Speaking
	p.source = source
	p.view.SetPlaying(source, true)
	logger.Debug("voice: speaking", "source", source, "voice", u.Voice)
	return nil
}

// SpeakEntry reads an entry's announcement aloud.
func (p *Playback) SpeakEntry(e *entry.Entry) error {
	return p.Speak(e.ID, e.Announcement())
}

// TogglePause switches between Speaking and Paused. It does nothing when
// idle.
func (p *Playback) TogglePause() {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch p.state {
	case Speaking:
		p.svc.Pause()
		p.state = PlaybackPaused
		p.view.SetPaused(p.source, true)
	case PlaybackPaused:
		p.svc.Resume()
		p.state = Speaking
		p.view.SetPaused(p.source, false)
	}
}

// Stop cancels the active utterance. It does nothing when idle.
func (p *Playback) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state == PlaybackIdle {
		return
	}
	p.cancelLocked()
}

func (p *Playback) cancelLocked() {
	p.token++
	p.svc.Cancel()
	p.resetLocked()
}

func (p *Playback) resetLocked() {
	if p.source != "" || p.state != PlaybackIdle {
		p.view.SetPlaying(p.source, false)
	}
	p.state = PlaybackIdle
	p.source = ""
}

func (p *Playback) onEnd(tok uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if tok != p.token {
		return
	}
	p.resetLocked()
}

func (p *Playback) onError(tok uint64, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if tok != p.token {
		return
	}
	logger.Warn("voice: synthesis error", "source", p.source, "err", err)
	p.token++
	p.resetLocked()
}

type nopPlaybackView struct{}

func (nopPlaybackView) SetPlaying(string, bool) {}
func (nopPlaybackView) SetPaused(string, bool)  {}
