package voice

import (
	"errors"
	"strings"
	"sync"
	"unicode"

	"tableflip.dev/devo/pkg/logger"
)

// JournalField is the multi-line field that gets a live preview and can be
// paused.
const JournalField = "journal-content"

const (
	statusListening = "Listening..."
	statusPaused    = "Paused. Resume to continue dictating."
)

var ErrNotPausable = errors.New("voice: only journal dictation can be paused")

type DictationState int

const (
	DictationIdle DictationState = iota
	Listening
	DictationPaused
)

func (s DictationState) String() string {
	switch s {
	case Listening:
		return "listening"
	case DictationPaused:
		return "paused"
	default:
		return "idle"
	}
}

// RecognitionOptions configure one recognition session.
type RecognitionOptions struct {
	Locale         string
	InterimResults bool
	Continuous     bool
}

// Result is one incremental recognition event.
type Result struct {
	Finals  []string
	Interim string
}

// RecognitionCallbacks receive session events.
type RecognitionCallbacks struct {
	OnResult func(Result)
	OnEnd    func()
	OnError  func(error)
}

// Session is a running recognition session.
type Session interface {
	Stop()
}

// Recognizer is a speech-to-text service.
type Recognizer interface {
	Available() bool
	Start(opts RecognitionOptions, cb RecognitionCallbacks) (Session, error)
}

// FieldSink is where dictated text lands.
type FieldSink interface {
	Value(field string) string
	SetValue(field, value string)
	Multiline(field string) bool
}

// DictationView renders dictation state.
type DictationView interface {
	SetStatus(text string)
	SetPreview(text string)
	SetActive(field string, active bool)
	SetPaused(paused bool)
	HideVoiceControls()
}

type Dictation struct {
	mu      sync.Mutex
	svc     Recognizer
	sink    FieldSink
	view    DictationView
	locale  string
	state   DictationState
	target  string
	session Session
	// token identifies the current session; events carrying an older token
	// are dropped.
	token uint64
}

type DictationOption func(*Dictation)

func WithDictationLocale(locale string) DictationOption {
	return func(d *Dictation) {
		if locale != "" {
			d.locale = locale
		}
	}
}

// NewDictation returns ErrUnavailable when svc is missing or unsupported.
func NewDictation(svc Recognizer, sink FieldSink, view DictationView, opts ...DictationOption) (*Dictation, error) {
	if svc == nil || !svc.Available() {
		return nil, ErrUnavailable
	}
	if view == nil {
		view = nopView{}
	}
	d := &Dictation{svc: svc, sink: sink, view: view, locale: DefaultLocale}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// SetupDictation is NewDictation that also disables the voice controls when
// recognition is unavailable.
func SetupDictation(svc Recognizer, sink FieldSink, view DictationView, opts ...DictationOption) (*Dictation, error) {
	d, err := NewDictation(svc, sink, view, opts...)
	if errors.Is(err, ErrUnavailable) && view != nil {
		view.HideVoiceControls()
		view.SetStatus(UnavailableStatus)
	}
	return d, err
}

func (d *Dictation) State() (DictationState, string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state, d.target
}

// Toggle handles a voice button press: it stops dictation into the button's
// field when active, and starts it otherwise.
func (d *Dictation) Toggle(buttonID string) error {
	field, err := FieldForButton(buttonID)
	if err != nil {
		return err
	}
	d.mu.Lock()
	active := d.state != DictationIdle && d.target == field
	d.mu.Unlock()
	if active {
		d.Stop()
		return nil
	}
	return d.Start(field)
}

// Start begins dictation into field, stopping a session that targets a
// different field first.
func (d *Dictation) Start(field string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state != DictationIdle {
		if d.target == field && d.state == Listening {
			return nil
		}
		d.stopLocked()
	}
	d.target = field
	return d.openLocked()
}

// Pause stops capture while keeping the target.
func (d *Dictation) Pause() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state != Listening {
		return nil
	}
	if d.target != JournalField {
		return ErrNotPausable
	}
	d.detachLocked()
	d.state = DictationPaused
	d.view.SetPreview("")
	d.view.SetPaused(true)
	d.view.SetStatus(statusPaused)
	return nil
}

// Resume restarts capture for the paused target.
func (d *Dictation) Resume() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state != DictationPaused {
		return nil
	}
	d.view.SetPaused(false)
	return d.openLocked()
}

// Stop ends any session and resets the visual state.
func (d *Dictation) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopLocked()
}

func (d *Dictation) openLocked() error {
	d.token++
	tok := d.token
	sess, err := d.svc.Start(RecognitionOptions{
		Locale:         d.locale,
		InterimResults: true,
		Continuous:     true,
	}, RecognitionCallbacks{
		OnResult: func(r Result) { d.onResult(tok, r) },
		OnEnd:    func() { d.onEnd(tok) },
		OnError:  func(err error) { d.onError(tok, err) },
	})
	if err != nil {
		serr := &ServiceError{Op: "start recognition", Err: err}
		d.resetLocked()
		d.view.SetStatus("Error: " + err.Error())
		return serr
	}
	d.session = sess
	d.state = Listening
	d.view.SetActive(d.target, true)
	d.view.SetStatus(statusListening)
	logger.Debug("voice: dictation started", "field", d.target)
	return nil
}

// detachLocked stops the running session so its late events are ignored.
func (d *Dictation) detachLocked() {
	d.token++
	if d.session != nil {
		d.session.Stop()
		d.session = nil
	}
}

func (d *Dictation) stopLocked() {
	if d.state == DictationIdle {
		return
	}
	d.detachLocked()
	d.resetLocked()
	d.view.SetStatus("")
}

func (d *Dictation) resetLocked() {
	if d.target != "" {
		d.view.SetActive(d.target, false)
	}
	d.view.SetPreview("")
	d.view.SetPaused(false)
	d.state = DictationIdle
	d.target = ""
	d.session = nil
}

func (d *Dictation) onResult(tok uint64, r Result) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if tok != d.token || d.state != Listening {
		return
	}

	if d.sink.Multiline(d.target) {
		value := d.sink.Value(d.target)
		for _, final := range r.Finals {
			value = appendFinal(value, final)
		}
		if len(r.Finals) > 0 {
			d.sink.SetValue(d.target, value)
		}
	} else {
		var parts []string
		for _, final := range r.Finals {
			if f := strings.TrimSpace(final); f != "" {
				parts = append(parts, f)
			}
		}
		if len(parts) > 0 {
			d.sink.SetValue(d.target, strings.Join(parts, " "))
		}
	}

	if d.target == JournalField {
		d.view.SetPreview(r.Interim)
	}
}

func (d *Dictation) onEnd(tok uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if tok != d.token {
		return
	}
	logger.Debug("voice: recognition ended", "field", d.target)
	d.resetLocked()
	d.view.SetStatus("")
}

func (d *Dictation) onError(tok uint64, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if tok != d.token {
		return
	}
	d.token++
	logger.Warn("voice: recognition error", "field", d.target, "err", err)
	d.resetLocked()
	d.view.SetStatus("Error: " + err.Error())
}

// appendFinal appends one final segment followed by a space, inserting a
// separator when the existing text does not already end in whitespace.
func appendFinal(value, final string) string {
	f := strings.TrimSpace(final)
	if f == "" {
		return value
	}
	if value != "" && !unicode.IsSpace(rune(value[len(value)-1])) {
		value += " "
	}
	return value + f + " "
}

type nopView struct{}

func (nopView) SetStatus(string)       {}
func (nopView) SetPreview(string)      {}
func (nopView) SetActive(string, bool) {}
func (nopView) SetPaused(bool)         {}
func (nopView) HideVoiceControls()     {}
