package server

import (
	"errors"
	"net/http"

	"tableflip.dev/devo/pkg/assistant"
	"tableflip.dev/devo/pkg/logger"
)

// upstreamFailure is the result text for a failed model call. The HTTP
// status stays 200 so the page shows it in the response panel.
func upstreamFailure(err error) assistant.Response {
	return assistant.Response{Result: "Error communicating with the API: " + err.Error()}
}

func (s *Server) quietTime(w http.ResponseWriter, r *http.Request) {
	req := assistant.QuietTimeRequest{Duration: assistant.DefaultDuration}
	if !decode(w, r, &req) {
		return
	}
	out, err := s.assistant.QuietTime(r.Context(), req)
	s.reply(w, "quiet-time", out, err)
}

func (s *Server) books(w http.ResponseWriter, r *http.Request) {
	req := assistant.BookRequest{SpiritualLevel: assistant.DefaultLevel, Count: assistant.DefaultCount}
	if !decode(w, r, &req) {
		return
	}
	out, err := s.assistant.Books(r.Context(), req)
	s.reply(w, "recommend-books", out, err)
}

func (s *Server) study(w http.ResponseWriter, r *http.Request) {
	var req assistant.StudyRequest
	if !decode(w, r, &req) {
		return
	}
	out, err := s.assistant.Study(r.Context(), req)
	if errors.Is(err, assistant.ErrEmptyPassage) {
		writeError(w, http.StatusBadRequest, "passage is required")
		return
	}
	s.reply(w, "bible-study", out, err)
}

func (s *Server) answer(w http.ResponseWriter, r *http.Request) {
	var req assistant.QuestionRequest
	if !decode(w, r, &req) {
		return
	}
	defer func() {
		if v := recover(); v != nil {
			logger.Error("assistant panicked", "feature", "answer-question", "panic", v)
			writeJSON(w, http.StatusOK, assistant.Response{Result: assistant.QuestionApology})
		}
	}()
	out, err := s.assistant.Answer(r.Context(), req)
	s.reply(w, "answer-question", out, err)
}

func (s *Server) reply(w http.ResponseWriter, feature, out string, err error) {
	if err != nil {
		logger.Error("assistant failed", "feature", feature, "err", err)
		writeJSON(w, http.StatusOK, upstreamFailure(err))
		return
	}
	writeJSON(w, http.StatusOK, assistant.Response{Result: out})
}
