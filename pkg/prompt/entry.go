package prompt

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"

	"tableflip.dev/devo/pkg/entry"
)

// EntryForm fills d interactively. Fields already set are shown as
// defaults.
func EntryForm(d *entry.Draft) error {
	moods := make([]huh.Option[string], 0, len(entry.Moods()))
	for _, m := range entry.Moods() {
		moods = append(moods, huh.NewOption(m.Emoji()+" "+m.Label(), string(m)))
	}
	if d.Mood != "" {
		if m, err := entry.ParseMood(d.Mood); err == nil {
			d.Mood = string(m)
		}
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&d.Title).
				Validate(required("Please enter a title.")),
			huh.NewInput().
				Title("Date").
				Description("YYYY-MM-DD, leave empty for today").
				Value(&d.Date).
				Validate(validDate),
			huh.NewSelect[string]().
				Title("Mood").
				Options(moods...).
				Value(&d.Mood),
		),
		huh.NewGroup(
			huh.NewText().
				Title("Reflection").
				Value(&d.Content).
				Validate(required("Please write your reflection.")),
			huh.NewInput().
				Title("Scripture reference").
				Value(&d.ScriptureReference),
			huh.NewText().
				Title("Prayer requests").
				Value(&d.PrayerRequests),
			huh.NewInput().
				Title("Tags").
				Description("comma separated").
				Value(&d.Tags),
		),
	)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return ErrAborted
		}
		return err
	}
	return nil
}

func required(msg string) func(string) error {
	return func(v string) error {
		if strings.TrimSpace(v) == "" {
			return errors.New(msg)
		}
		return nil
	}
}

func validDate(v string) error {
	if strings.TrimSpace(v) == "" {
		return nil
	}
	_, err := entry.ParseDate(strings.TrimSpace(v))
	return err
}
