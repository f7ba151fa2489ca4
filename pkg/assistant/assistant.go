// Package assistant implements the devotional helper features: quiet time
// plans, book recommendations, Bible study guides and question answering.
package assistant

import (
	"context"
	"errors"
	"strings"
	"time"
)

const (
	EmptyQuestion   = "Please provide a specific question about Christianity."
	QuestionApology = "I apologize, but there was an issue processing your question. Please try again later."
)

var ErrEmptyPassage = errors.New("assistant: passage is required")

// Service is implemented by the local Assistant and by Remote.
type Service interface {
	QuietTime(ctx context.Context, req QuietTimeRequest) (string, error)
	Books(ctx context.Context, req BookRequest) (string, error)
	Study(ctx context.Context, req StudyRequest) (string, error)
	Answer(ctx context.Context, req QuestionRequest) (string, error)
}

// Assistant builds prompts and sends them to a Completer.
type Assistant struct {
	c   Completer
	now func() time.Time
}

func New(c Completer) *Assistant {
	return &Assistant{c: c, now: time.Now}
}

func (a *Assistant) QuietTime(ctx context.Context, req QuietTimeRequest) (string, error) {
	return a.c.Complete(ctx, systemPrompt, quietTimePrompt(req, a.now()))
}

func (a *Assistant) Books(ctx context.Context, req BookRequest) (string, error) {
	return a.c.Complete(ctx, systemPrompt, booksPrompt(req))
}

func (a *Assistant) Study(ctx context.Context, req StudyRequest) (string, error) {
	if strings.TrimSpace(req.Passage) == "" {
		return "", ErrEmptyPassage
	}
	return a.c.Complete(ctx, systemPrompt, studyPrompt(req))
}

// Answer replies with EmptyQuestion, without calling the model, when the
// question is blank.
func (a *Assistant) Answer(ctx context.Context, req QuestionRequest) (string, error) {
	if strings.TrimSpace(req.Question) == "" {
		return EmptyQuestion, nil
	}
	return a.c.Complete(ctx, systemPrompt, questionPrompt(req))
}
