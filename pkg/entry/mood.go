package entry

import (
	"fmt"
	"strings"
)

// Mood tags the emotional tone of an entry.
type Mood string

const (
	Joyful   Mood = "joyful"
	Peaceful Mood = "peaceful"
	Anxious  Mood = "anxious"
	Sad      Mood = "sad"
	Confused Mood = "confused"
	Grateful Mood = "grateful"
)

var moods = []Mood{Joyful, Peaceful, Anxious, Sad, Confused, Grateful}

var moodEmoji = map[Mood]string{
	Joyful:   "😊",
	Peaceful: "😌",
	Anxious:  "😟",
	Sad:      "😢",
	Confused: "😕",
	Grateful: "🙏",
}

// Moods returns every mood in display order.
func Moods() []Mood {
	out := make([]Mood, len(moods))
	copy(out, moods)
	return out
}

// MoodNames returns the moods as plain strings, handy for flag help and
// enum declarations.
func MoodNames() []string {
	out := make([]string, 0, len(moods))
	for _, m := range moods {
		out = append(out, string(m))
	}
	return out
}

// ParseMood resolves a mood name case-insensitively.
func ParseMood(v string) (Mood, error) {
	lower := Mood(strings.ToLower(strings.TrimSpace(v)))
	for _, m := range moods {
		if m == lower {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown mood %q", v)
}

// Valid reports whether m is one of the known moods.
func (m Mood) Valid() bool {
	for _, known := range moods {
		if m == known {
			return true
		}
	}
	return false
}

func (m Mood) Emoji() string {
	if e, ok := moodEmoji[m]; ok {
		return e
	}
	return "·"
}

// Label is the capitalized mood name.
func (m Mood) Label() string {
	if m == "" {
		return ""
	}
	s := string(m)
	return strings.ToUpper(s[:1]) + s[1:]
}
