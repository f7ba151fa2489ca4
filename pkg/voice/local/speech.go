// Package local provides terminal implementations of the voice services: a
// synthesizer that shells out to a speech command and a recognizer that
// treats typed lines as finalized phrases.
package local

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"tableflip.dev/devo/pkg/logger"
	"tableflip.dev/devo/pkg/voice"
)

// baseWPM is the words per minute spoken at rate 1.0.
const baseWPM = 175

// Speech speaks utterances through espeak, espeak-ng or macOS say.
type Speech struct {
	command string

	mu  sync.Mutex
	cmd *exec.Cmd
}

// DetectCommand returns the first supported speech command on PATH.
func DetectCommand() string {
	for _, c := range []string{"say", "espeak-ng", "espeak"} {
		if p, err := exec.LookPath(c); err == nil {
			return p
		}
	}
	return ""
}

// NewSpeech uses command, or a detected one when command is empty.
func NewSpeech(command string) (*Speech, error) {
	if command == "" {
		command = DetectCommand()
	}
	if command == "" {
		return nil, voice.ErrUnavailable
	}
	return &Speech{command: command}, nil
}

func (s *Speech) flavor() string {
	base := filepath.Base(s.command)
	if strings.HasPrefix(base, "say") {
		return "say"
	}
	return "espeak"
}

// Voices lists the voices reported by the speech command.
func (s *Speech) Voices() []voice.VoiceInfo {
	var args []string
	if s.flavor() == "say" {
		args = []string{"-v", "?"}
	} else {
		args = []string{"--voices"}
	}
	out, err := exec.Command(s.command, args...).Output()
	if err != nil {
		logger.Debug("voice: list voices failed", "command", s.command, "err", err)
		return nil
	}
	if s.flavor() == "say" {
		return parseSayVoices(out)
	}
	return parseEspeakVoices(out)
}

// parseSayVoices reads lines like "Samantha   en_US   # Hello, my name is Samantha."
func parseSayVoices(out []byte) []voice.VoiceInfo {
	var voices []voice.VoiceInfo
	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		line, _, _ := strings.Cut(sc.Text(), "#")
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		lang := fields[len(fields)-1]
		name := strings.Join(fields[:len(fields)-1], " ")
		voices = append(voices, voice.VoiceInfo{Name: name, Lang: strings.ReplaceAll(lang, "_", "-")})
	}
	return voices
}

// parseEspeakVoices reads the espeak --voices table:
// "Pty Language Age/Gender VoiceName File Other Languages".
func parseEspeakVoices(out []byte) []voice.VoiceInfo {
	var voices []voice.VoiceInfo
	sc := bufio.NewScanner(bytes.NewReader(out))
	header := true
	for sc.Scan() {
		if header {
			header = false
			continue
		}
		fields := strings.Fields(sc.Text())
		if len(fields) < 4 {
			continue
		}
		name := fields[3]
		if gender := fields[2]; strings.HasSuffix(gender, "F") {
			name += " (female)"
		}
		voices = append(voices, voice.VoiceInfo{Name: name, Lang: fields[1]})
	}
	return voices
}

func (s *Speech) args(u voice.Utterance) []string {
	rate := u.Rate
	if rate <= 0 {
		rate = 1
	}
	wpm := strconv.Itoa(int(baseWPM * rate))
	name := strings.TrimSuffix(u.Voice, " (female)")

	if s.flavor() == "say" {
		args := []string{"-r", wpm}
		if name != "" {
			args = append(args, "-v", name)
		}
		return append(args, u.Text)
	}

	args := []string{"-s", wpm, "-a", strconv.Itoa(int(100 * u.Volume))}
	switch {
	case name != "":
		args = append(args, "-v", name)
	case u.Locale != "":
		args = append(args, "-v", strings.ToLower(u.Locale))
	}
	return append(args, u.Text)
}

// Speak starts the speech process. Completion is reported from a separate
// goroutine.
func (s *Speech) Speak(u voice.Utterance, cb voice.UtteranceCallbacks) error {
	cmd := exec.Command(s.command, s.args(u)...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", filepath.Base(s.command), err)
	}

	s.mu.Lock()
	s.cmd = cmd
	s.mu.Unlock()

	go func() {
		err := cmd.Wait()

		s.mu.Lock()
		if s.cmd == cmd {
			s.cmd = nil
		}
		s.mu.Unlock()

		if err != nil {
			if msg := strings.TrimSpace(stderr.String()); msg != "" {
				err = errors.New(msg)
			}
			if cb.OnError != nil {
				cb.OnError(err)
			}
			return
		}
		if cb.OnEnd != nil {
			cb.OnEnd()
		}
	}()
	return nil
}

func (s *Speech) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cmd != nil && s.cmd.Process != nil {
		if err := suspend(s.cmd.Process); err != nil {
			logger.Warn("voice: pause failed", "err", err)
		}
	}
}

func (s *Speech) Resume() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cmd != nil && s.cmd.Process != nil {
		if err := resume(s.cmd.Process); err != nil {
			logger.Warn("voice: resume failed", "err", err)
		}
	}
}

func (s *Speech) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cmd != nil && s.cmd.Process != nil {
		// A stopped process must be continued before it can exit.
		_ = resume(s.cmd.Process)
		_ = s.cmd.Process.Kill()
		s.cmd = nil
	}
}
