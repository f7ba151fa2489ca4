package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"tableflip.dev/devo/pkg/entry"
	"tableflip.dev/devo/pkg/filter"
	"tableflip.dev/devo/pkg/form"
	"tableflip.dev/devo/pkg/journal"
	"tableflip.dev/devo/pkg/logger"
)

type errorBody struct {
	Error  string               `json:"error"`
	Fields []journal.FieldError `json:"fields,omitempty"`
}

func (s *Server) listEntries(w http.ResponseWriter, r *http.Request) {
	c, err := filter.FromQuery(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, filter.Apply(s.journal.Entries(), c, s.now()))
}

func (s *Server) getEntry(w http.ResponseWriter, r *http.Request) {
	e, err := s.journal.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeJournalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (s *Server) createEntry(w http.ResponseWriter, r *http.Request) {
	var d entry.Draft
	if !decode(w, r, &d) {
		return
	}
	e, err := s.journal.Create(r.Context(), d)
	if err != nil {
		writeJournalError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

func (s *Server) updateEntry(w http.ResponseWriter, r *http.Request) {
	var d entry.Draft
	if !decode(w, r, &d) {
		return
	}
	e, err := s.journal.Update(r.Context(), chi.URLParam(r, "id"), d)
	if err != nil {
		writeJournalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

// deleteEntry requires confirm=true, the HTTP form of the delete prompt.
func (s *Server) deleteEntry(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("confirm") != "true" {
		writeError(w, http.StatusBadRequest, form.ConfirmDelete+" Repeat the request with confirm=true.")
		return
	}
	if err := s.journal.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeJournalError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJournalError(w http.ResponseWriter, err error) {
	var verr *journal.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: verr.Message(), Fields: verr.Fields})
	case errors.Is(err, journal.ErrNotFound):
		writeError(w, http.StatusNotFound, "entry not found")
	default:
		logger.Error("journal operation failed", "err", err)
		writeError(w, http.StatusInternalServerError, "Could not save the journal. Please try again.")
	}
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if r.Body == nil {
		return true
	}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return true
		}
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	return true
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("encode response", "err", err)
	}
}
