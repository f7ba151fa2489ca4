package voice

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSession struct {
	cb      RecognitionCallbacks
	opts    RecognitionOptions
	stopped bool
}

func (s *fakeSession) Stop() { s.stopped = true }

type fakeRecognizer struct {
	unavailable bool
	startErr    error
	sessions    []*fakeSession
}

func (f *fakeRecognizer) Available() bool { return !f.unavailable }

func (f *fakeRecognizer) Start(opts RecognitionOptions, cb RecognitionCallbacks) (Session, error) {
	if f.startErr != nil {
		return nil, f.startErr
	}
	s := &fakeSession{cb: cb, opts: opts}
	f.sessions = append(f.sessions, s)
	return s, nil
}

func (f *fakeRecognizer) last() *fakeSession { return f.sessions[len(f.sessions)-1] }

type memSink struct {
	mu     sync.Mutex
	values map[string]string
}

func newSink() *memSink { return &memSink{values: map[string]string{}} }

func (m *memSink) Value(f string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.values[f]
}

func (m *memSink) SetValue(f, v string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[f] = v
}

func (m *memSink) Multiline(f string) bool {
	return f == JournalField || f == "prayer-requests"
}

type recordingView struct {
	status  string
	preview string
	active  map[string]bool
	paused  bool
	hidden  bool
}

func newView() *recordingView { return &recordingView{active: map[string]bool{}} }

func (v *recordingView) SetStatus(s string)         { v.status = s }
func (v *recordingView) SetPreview(s string)        { v.preview = s }
func (v *recordingView) SetActive(f string, a bool) { v.active[f] = a }
func (v *recordingView) SetPaused(p bool)           { v.paused = p }
func (v *recordingView) HideVoiceControls()         { v.hidden = true }

func newDictation(t *testing.T) (*Dictation, *fakeRecognizer, *memSink, *recordingView) {
	t.Helper()
	rec := &fakeRecognizer{}
	sink := newSink()
	view := newView()
	d, err := NewDictation(rec, sink, view)
	require.NoError(t, err)
	return d, rec, sink, view
}

func TestButtonFieldMapping(t *testing.T) {
	f, err := FieldForButton("journal-content-voice-btn")
	require.NoError(t, err)
	assert.Equal(t, "journal-content", f)
	assert.Equal(t, "journal-title-voice-btn", ButtonForField("journal-title"))

	_, err = FieldForButton("journal-content")
	assert.Error(t, err)
	_, err = FieldForButton("-voice-btn")
	assert.Error(t, err)
}

func TestSetupDictationUnavailable(t *testing.T) {
	view := newView()
	d, err := SetupDictation(&fakeRecognizer{unavailable: true}, newSink(), view)
	assert.Nil(t, d)
	assert.True(t, errors.Is(err, ErrUnavailable))
	assert.True(t, view.hidden)
	assert.Equal(t, UnavailableStatus, view.status)

	_, err = SetupDictation(nil, newSink(), newView())
	assert.True(t, errors.Is(err, ErrUnavailable))
}

func TestDictationAppendsFinals(t *testing.T) {
	d, rec, sink, view := newDictation(t)

	require.NoError(t, d.Toggle(ButtonForField(JournalField)))
	state, target := d.State()
	assert.Equal(t, Listening, state)
	assert.Equal(t, JournalField, target)
	assert.True(t, view.active[JournalField])
	assert.True(t, rec.last().opts.InterimResults)
	assert.Equal(t, DefaultLocale, rec.last().opts.Locale)

	cb := rec.last().cb
	cb.OnResult(Result{Finals: []string{"Today "}, Interim: "I am"})
	assert.Equal(t, "I am", view.preview)
	cb.OnResult(Result{Finals: []string{"I am grateful. "}})
	cb.OnResult(Result{Finals: []string{"Amen."}})

	assert.Equal(t, "Today I am grateful. Amen. ", sink.Value(JournalField))
}

func TestDictationAddsSeparatorToExistingText(t *testing.T) {
	d, rec, sink, _ := newDictation(t)
	sink.SetValue(JournalField, "Already here.")

	require.NoError(t, d.Start(JournalField))
	rec.last().cb.OnResult(Result{Finals: []string{"More"}})
	assert.Equal(t, "Already here. More ", sink.Value(JournalField))
}

func TestDictationReplacesSingleLine(t *testing.T) {
	d, rec, sink, view := newDictation(t)
	sink.SetValue("journal-title", "Old title")

	require.NoError(t, d.Start("journal-title"))
	rec.last().cb.OnResult(Result{Finals: []string{" Morning ", "prayer"}, Interim: "ignored"})
	assert.Equal(t, "Morning prayer", sink.Value("journal-title"))
	assert.Empty(t, view.preview)
}

func TestDictationSwitchingFieldsStopsPrevious(t *testing.T) {
	d, rec, _, view := newDictation(t)

	require.NoError(t, d.Start(JournalField))
	first := rec.last()
	require.NoError(t, d.Start("journal-title"))

	assert.True(t, first.stopped)
	assert.False(t, view.active[JournalField])
	assert.True(t, view.active["journal-title"])
	_, target := d.State()
	assert.Equal(t, "journal-title", target)

	// Late events from the first session are dropped.
	first.cb.OnEnd()
	state, _ := d.State()
	assert.Equal(t, Listening, state)
}

func TestDictationToggleStops(t *testing.T) {
	d, rec, _, view := newDictation(t)
	btn := ButtonForField(JournalField)

	require.NoError(t, d.Toggle(btn))
	rec.last().cb.OnResult(Result{Interim: "half"})
	require.NoError(t, d.Toggle(btn))

	state, target := d.State()
	assert.Equal(t, DictationIdle, state)
	assert.Empty(t, target)
	assert.True(t, rec.last().stopped)
	assert.Empty(t, view.preview)
	assert.False(t, view.active[JournalField])
}

func TestDictationPauseResume(t *testing.T) {
	d, rec, sink, view := newDictation(t)

	require.NoError(t, d.Start(JournalField))
	first := rec.last()
	require.NoError(t, d.Pause())

	state, target := d.State()
	assert.Equal(t, DictationPaused, state)
	assert.Equal(t, JournalField, target)
	assert.True(t, first.stopped)
	assert.True(t, view.paused)

	// The paused session ending must not reset the controller.
	first.cb.OnEnd()
	state, _ = d.State()
	assert.Equal(t, DictationPaused, state)

	require.NoError(t, d.Resume())
	require.Len(t, rec.sessions, 2)
	state, _ = d.State()
	assert.Equal(t, Listening, state)
	assert.False(t, view.paused)

	rec.last().cb.OnResult(Result{Finals: []string{"after pause"}})
	assert.Equal(t, "after pause ", sink.Value(JournalField))
}

func TestDictationPauseOnlyForJournal(t *testing.T) {
	d, _, _, _ := newDictation(t)
	require.NoError(t, d.Start("prayer-requests"))
	assert.ErrorIs(t, d.Pause(), ErrNotPausable)

	d.Stop()
	assert.NoError(t, d.Pause())
}

func TestDictationServiceEnd(t *testing.T) {
	d, rec, _, view := newDictation(t)
	require.NoError(t, d.Start(JournalField))
	rec.last().cb.OnResult(Result{Interim: "partial"})
	rec.last().cb.OnEnd()

	state, _ := d.State()
	assert.Equal(t, DictationIdle, state)
	assert.Empty(t, view.preview)
	assert.False(t, view.active[JournalField])
}

func TestDictationServiceError(t *testing.T) {
	d, rec, _, view := newDictation(t)
	require.NoError(t, d.Start(JournalField))
	cb := rec.last().cb
	cb.OnError(errors.New("no-speech"))
	cb.OnEnd()

	state, _ := d.State()
	assert.Equal(t, DictationIdle, state)
	assert.Equal(t, "Error: no-speech", view.status)
	assert.Len(t, rec.sessions, 1)
}

func TestDictationStartFailure(t *testing.T) {
	rec := &fakeRecognizer{startErr: errors.New("not-allowed")}
	view := newView()
	d, err := NewDictation(rec, newSink(), view)
	require.NoError(t, err)

	err = d.Start(JournalField)
	var serr *ServiceError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "Error: not-allowed", view.status)
	state, _ := d.State()
	assert.Equal(t, DictationIdle, state)
}

func TestPickVoice(t *testing.T) {
	voices := []VoiceInfo{
		{Name: "Daniel", Lang: "en-GB"},
		{Name: "Google français", Lang: "fr-FR"},
		{Name: "Google US English", Lang: "en-US"},
		{Name: "Microsoft Zira", Lang: "en-US"},
	}
	assert.Equal(t, "Microsoft Zira", PickVoice(voices, "en-US", []string{"zira", "google"}))
	assert.Equal(t, "Google US English", PickVoice(voices, "en-US", []string{"female", "google"}))
	assert.Equal(t, "Google français", PickVoice(voices, "fr-FR", []string{"google"}))
	assert.Equal(t, "", PickVoice(voices, "en-US", []string{"female"}))
	assert.Equal(t, "", PickVoice(nil, "en-US", []string{"google"}))
}
