package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/devo/pkg/assistant"
	"tableflip.dev/devo/pkg/entry"
	"tableflip.dev/devo/pkg/journal"
	"tableflip.dev/devo/pkg/store"
)

type memPersistence struct {
	mu      sync.Mutex
	entries []*entry.Entry
	failErr error
}

func (m *memPersistence) Load(context.Context) ([]*entry.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.entries == nil {
		return nil, store.ErrNotFound
	}
	return m.entries, nil
}

func (m *memPersistence) Save(_ context.Context, entries []*entry.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return m.failErr
	}
	m.entries = entries
	return nil
}

func (m *memPersistence) Watch(context.Context) (<-chan store.Event, error) {
	ch := make(chan store.Event)
	close(ch)
	return ch, nil
}

func (m *memPersistence) Close() error { return nil }

type fakeAssistant struct {
	err      error
	lastBook assistant.BookRequest
}

func (f *fakeAssistant) QuietTime(_ context.Context, req assistant.QuietTimeRequest) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "quiet " + req.FocusArea, nil
}

func (f *fakeAssistant) Books(_ context.Context, req assistant.BookRequest) (string, error) {
	f.lastBook = req
	return "books", f.err
}

func (f *fakeAssistant) Study(ctx context.Context, req assistant.StudyRequest) (string, error) {
	if strings.TrimSpace(req.Passage) == "" {
		return "", assistant.ErrEmptyPassage
	}
	return "study " + req.Passage, f.err
}

func (f *fakeAssistant) Answer(_ context.Context, req assistant.QuestionRequest) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "answer", nil
}

func newTestServer(t *testing.T, a assistant.Service, rate string) (*Server, *memPersistence) {
	t.Helper()
	p := &memPersistence{}
	j, err := journal.Open(context.Background(), p)
	require.NoError(t, err)
	s, err := New(j, a, Options{Rate: rate})
	require.NoError(t, err)
	return s, p
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) assistant.Response {
	t.Helper()
	var out assistant.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestNewRejectsBadRate(t *testing.T) {
	p := &memPersistence{}
	j, err := journal.Open(context.Background(), p)
	require.NoError(t, err)
	_, err = New(j, &fakeAssistant{}, Options{Rate: "lots"})
	assert.Error(t, err)
	_, err = New(nil, &fakeAssistant{}, Options{})
	assert.Error(t, err)
}

func TestHealthz(t *testing.T) {
	s, _ := newTestServer(t, &fakeAssistant{}, "")
	rec := do(t, s, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(requestIDHeader))
}

func TestAssistantRoutes(t *testing.T) {
	fa := &fakeAssistant{}
	s, _ := newTestServer(t, fa, "")

	rec := do(t, s, http.MethodPost, assistant.PathQuietTime, `{"duration":10,"focus_area":"hope"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "quiet hope", decodeResponse(t, rec).Result)

	rec = do(t, s, http.MethodPost, assistant.PathBooks, `{"topic":"prayer"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, assistant.DefaultCount, fa.lastBook.Count)
	assert.Equal(t, assistant.DefaultLevel, fa.lastBook.SpiritualLevel)

	rec = do(t, s, http.MethodPost, assistant.PathStudy, `{"passage":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodPost, assistant.PathStudy, `{"passage":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodPost, assistant.PathQuestion, `{"question":"Who is Jesus?"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "answer", decodeResponse(t, rec).Result)
}

func TestAssistantFailuresStayOK(t *testing.T) {
	s, _ := newTestServer(t, &fakeAssistant{err: errors.New("upstream down")}, "")

	rec := do(t, s, http.MethodPost, assistant.PathQuietTime, `{}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Error communicating with the API: upstream down", decodeResponse(t, rec).Result)

	rec = do(t, s, http.MethodPost, assistant.PathQuestion, `{"question":"why?"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Error communicating with the API: upstream down", decodeResponse(t, rec).Result)
}

type panickyAssistant struct {
	fakeAssistant
}

func (panickyAssistant) Answer(context.Context, assistant.QuestionRequest) (string, error) {
	panic("unexpected shape")
}

func TestAnswerPanicApologizes(t *testing.T) {
	s, _ := newTestServer(t, &panickyAssistant{}, "")

	rec := do(t, s, http.MethodPost, assistant.PathQuestion, `{"question":"why?"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, assistant.QuestionApology, decodeResponse(t, rec).Result)
}

func TestRateLimit(t *testing.T) {
	s, _ := newTestServer(t, &fakeAssistant{}, "2-M")

	for i := 0; i < 2; i++ {
		rec := do(t, s, http.MethodPost, assistant.PathQuestion, `{"question":"q"}`)
		require.Equal(t, http.StatusOK, rec.Code)
	}
	rec := do(t, s, http.MethodPost, assistant.PathQuestion, `{"question":"q"}`)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))

	// Journal routes are not limited.
	rec = do(t, s, http.MethodGet, "/api/entries", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestEntryLifecycle(t *testing.T) {
	s, p := newTestServer(t, &fakeAssistant{}, "")

	rec := do(t, s, http.MethodGet, "/api/entries", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = do(t, s, http.MethodPost, "/api/entries", `{"title":"Morning","mood":"grateful","content":"Thankful for rest.","tags":"rest, sabbath","date":"2024-03-05"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created entry.Entry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, []string{"rest", "sabbath"}, created.Tags)
	assert.Len(t, p.entries, 1)

	rec = do(t, s, http.MethodGet, "/api/entries/"+created.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, s, http.MethodGet, "/api/entries?mood=sad", "")
	assert.JSONEq(t, `[]`, rec.Body.String())
	rec = do(t, s, http.MethodGet, "/api/entries?search=THANKFUL", "")
	var found []entry.Entry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &found))
	assert.Len(t, found, 1)
	rec = do(t, s, http.MethodGet, "/api/entries?mood=elated", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodPut, "/api/entries/"+created.ID, `{"title":"Evening","mood":"peaceful","content":"Quiet."}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var updated entry.Entry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Evening", updated.Title)

	rec = do(t, s, http.MethodDelete, "/api/entries/"+created.ID, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Len(t, p.entries, 1)

	rec = do(t, s, http.MethodDelete, "/api/entries/"+created.ID+"?confirm=true", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, p.entries)

	rec = do(t, s, http.MethodGet, "/api/entries/"+created.ID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEntryErrors(t *testing.T) {
	s, p := newTestServer(t, &fakeAssistant{}, "")

	rec := do(t, s, http.MethodPost, "/api/entries", `{"title":"","mood":"","content":""}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body.Fields)

	rec = do(t, s, http.MethodPut, "/api/entries/missing", `{"title":"t","mood":"sad","content":"c"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	p.failErr = errors.New("disk full")
	rec = do(t, s, http.MethodPost, "/api/entries", `{"title":"t","mood":"sad","content":"c"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
