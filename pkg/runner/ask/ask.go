// Package ask runs one devotional assistant request and prints the reply.
package ask

import (
	"context"
	"errors"
	"fmt"
	"io"

	"tableflip.dev/devo/pkg/assistant"
	"tableflip.dev/devo/pkg/logger"
	"tableflip.dev/devo/pkg/printers"
)

type Feature string

const (
	QuietTime Feature = "quiet-time"
	Books     Feature = "books"
	Study     Feature = "study"
	Question  Feature = "question"
)

type Ask struct {
	Feature Feature

	QuietTime assistant.QuietTimeRequest
	Books     assistant.BookRequest
	Study     assistant.StudyRequest
	Question  assistant.QuestionRequest

	Service assistant.Service
	// Raw prints the reply without markdown rendering.
	Raw bool
	Out io.Writer
}

// Do sends the request. A failed exchange is printed as the failure text
// and also returned.
func (n *Ask) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not ask, no assistant")
	}
	pp := printers.PrettyPrint{Out: n.Out}

	var (
		out string
		err error
	)
	switch n.Feature {
	case QuietTime:
		out, err = n.Service.QuietTime(ctx, n.QuietTime)
	case Books:
		out, err = n.Service.Books(ctx, n.Books)
	case Study:
		out, err = n.Service.Study(ctx, n.Study)
	case Question:
		out, err = n.Service.Answer(ctx, n.Question)
	default:
		return fmt.Errorf("unknown feature %q", n.Feature)
	}
	if err != nil {
		logger.Error("assistant request failed", "feature", string(n.Feature), "err", err)
		pp.Markdown(assistant.FailureText(err), true)
		return err
	}

	pp.Markdown(out, n.Raw)
	return nil
}
