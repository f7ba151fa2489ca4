package printers

import (
	"fmt"

	"github.com/charmbracelet/glamour"
)

const wrapWidth = 80

// Markdown renders an assistant reply for the terminal. When raw is set or
// rendering fails the text is printed as is.
func (pp *PrettyPrint) Markdown(text string, raw bool) {
	if raw {
		_, _ = fmt.Fprintln(pp.out(), text)
		return
	}
	out, err := RenderMarkdown(text)
	if err != nil {
		_, _ = fmt.Fprintln(pp.out(), text)
		return
	}
	_, _ = fmt.Fprint(pp.out(), out)
}

func RenderMarkdown(text string) (string, error) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(wrapWidth),
	)
	if err != nil {
		return "", err
	}
	return renderer.Render(text)
}
