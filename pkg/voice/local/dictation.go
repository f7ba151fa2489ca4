package local

import (
	"bufio"
	"io"
	"strings"
	"sync"

	"tableflip.dev/devo/pkg/voice"
)

// LineDictation is a recognizer fed by typed lines. Each non-empty line is a
// finalized phrase; an empty line or end of input ends the session.
type LineDictation struct {
	lines chan string
	once  sync.Once
	r     io.Reader
}

func NewLineDictation(r io.Reader) *LineDictation {
	return &LineDictation{r: r, lines: make(chan string)}
}

func (l *LineDictation) Available() bool { return l != nil && l.r != nil }

// pump reads the input once for the lifetime of the recognizer so that a
// stopped session never swallows a line meant for the next one.
func (l *LineDictation) pump() {
	go func() {
		defer close(l.lines)
		sc := bufio.NewScanner(l.r)
		for sc.Scan() {
			l.lines <- sc.Text()
		}
	}()
}

func (l *LineDictation) Start(_ voice.RecognitionOptions, cb voice.RecognitionCallbacks) (voice.Session, error) {
	l.once.Do(l.pump)

	s := &lineSession{done: make(chan struct{})}
	go func() {
		for {
			select {
			case <-s.done:
				return
			case line, ok := <-l.lines:
				if !ok || strings.TrimSpace(line) == "" {
					if cb.OnEnd != nil {
						cb.OnEnd()
					}
					return
				}
				if cb.OnResult != nil {
					cb.OnResult(voice.Result{Finals: []string{line}})
				}
			}
		}
	}()
	return s, nil
}

type lineSession struct {
	once sync.Once
	done chan struct{}
}

func (s *lineSession) Stop() {
	s.once.Do(func() { close(s.done) })
}
