// Package voice holds the dictation and playback state machines. Speech
// recognition and synthesis are injected services; they must deliver their
// callbacks asynchronously, never from inside Start, Stop, Speak or Cancel.
package voice

import (
	"errors"
	"fmt"
	"strings"
)

const ButtonSuffix = "-voice-btn"

// DefaultLocale is the recognition and synthesis language.
const DefaultLocale = "en-US"

// UnavailableStatus is shown permanently when recognition is not supported.
const UnavailableStatus = "Voice input is not available on this device."

var ErrUnavailable = errors.New("voice: speech service unavailable")

// ServiceError wraps a failure reported by a recognition or synthesis
// service.
type ServiceError struct {
	Op  string
	Err error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("voice: %s: %v", e.Op, e.Err)
}

func (e *ServiceError) Unwrap() error { return e.Err }

// FieldForButton derives the controlled field id from a voice button id.
func FieldForButton(buttonID string) (string, error) {
	field, ok := strings.CutSuffix(buttonID, ButtonSuffix)
	if !ok || field == "" {
		return "", fmt.Errorf("voice: %q is not a voice button", buttonID)
	}
	return field, nil
}

// ButtonForField is the inverse of FieldForButton.
func ButtonForField(field string) string {
	return field + ButtonSuffix
}

// VoiceInfo describes a synthesis voice offered by the platform.
type VoiceInfo struct {
	Name    string
	Lang    string
	Default bool
}

// PickVoice chooses a voice by the first hint that matches a voice name,
// preferring voices in locale. It returns "" to use the platform default.
func PickVoice(voices []VoiceInfo, locale string, hints []string) string {
	lang := strings.ToLower(strings.SplitN(locale, "-", 2)[0])
	inLocale := func(v VoiceInfo) bool {
		return lang == "" || strings.HasPrefix(strings.ToLower(v.Lang), lang)
	}
	for _, pass := range []func(VoiceInfo) bool{inLocale, func(VoiceInfo) bool { return true }} {
		for _, hint := range hints {
			h := strings.ToLower(strings.TrimSpace(hint))
			if h == "" {
				continue
			}
			for _, v := range voices {
				if pass(v) && strings.Contains(strings.ToLower(v.Name), h) {
					return v.Name
				}
			}
		}
	}
	return ""
}
