// Package prompt asks the user for input on the terminal.
package prompt

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"

	"tableflip.dev/devo/pkg/entry"
)

// Terminal implements form.Prompter with promptui.
type Terminal struct {
	In  io.ReadCloser
	Out io.WriteCloser
	// Yes answers every confirmation with yes without prompting.
	Yes bool
}

func (t *Terminal) stdout() io.Writer {
	if t.Out == nil {
		return os.Stdout
	}
	return t.Out
}

// Alert prints msg in red.
func (t *Terminal) Alert(msg string) {
	red := color.New(color.FgRed, color.Bold)
	_, _ = red.Fprintln(t.stdout(), msg)
}

// Confirm asks a yes/no question. Any prompt failure counts as no.
func (t *Terminal) Confirm(msg string) bool {
	if t.Yes {
		return true
	}
	p := promptui.Prompt{
		Label:     msg,
		IsConfirm: true,
		Stdin:     t.In,
		Stdout:    t.Out,
	}
	result, err := p.Run()
	if err != nil {
		return false
	}
	yes, err := ParseBool(strings.TrimSpace(result))
	return err == nil && yes
}

// SelectMood lets the user pick a mood from the list.
func (t *Terminal) SelectMood(label string) (entry.Mood, error) {
	moods := entry.Moods()

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}?",
		Active:   "➜  {{ .Emoji }} {{ .Label | bold }}",
		Inactive: "   {{ .Emoji }} {{ .Label }}",
		Selected: "{{ .Emoji }} {{ .Label | bold }}",
	}

	items := make([]moodItem, 0, len(moods))
	for _, m := range moods {
		items = append(items, moodItem{Mood: m, Emoji: m.Emoji(), Label: m.Label()})
	}

	searcher := func(input string, index int) bool {
		name := strings.ToLower(items[index].Label)
		input = strings.ReplaceAll(strings.ToLower(input), " ", "")
		return strings.Contains(name, input)
	}

	p := promptui.Select{
		HideHelp:  true,
		Label:     label,
		Items:     items,
		Templates: templates,
		Size:      len(items),
		Searcher:  searcher,
		Stdin:     t.In,
		Stdout:    t.Out,
	}
	i, _, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("prompt failed: %w", err)
	}
	return items[i].Mood, nil
}

// Secret reads a value without echoing it.
func (t *Terminal) Secret(label string) (string, error) {
	p := promptui.Prompt{
		Label:  label,
		Mask:   '*',
		Stdin:  t.In,
		Stdout: t.Out,
		Validate: func(v string) error {
			if strings.TrimSpace(v) == "" {
				return errors.New("value must not be empty")
			}
			return nil
		},
	}
	v, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("prompt failed: %w", err)
	}
	return strings.TrimSpace(v), nil
}

type moodItem struct {
	Mood  entry.Mood
	Emoji string
	Label string
}

// ErrAborted is returned when the user cancels an interactive form.
var ErrAborted = errors.New("prompt: aborted")

// ParseBool is strconv.ParseBool with the addition of Yes/No parsing.
func ParseBool(str string) (bool, error) {
	switch str {
	case "1", "t", "T", "true", "TRUE", "True", "y", "Y", "yes", "YES", "Yes":
		return true, nil
	case "0", "f", "F", "false", "FALSE", "False", "n", "N", "no", "NO", "No":
		return false, nil
	}
	return false, &strconv.NumError{Func: "ParseBool", Num: str, Err: strconv.ErrSyntax}
}
