package render

import (
	"github.com/charmbracelet/glamour"
)

// Terminal renders sections as styled terminal output through glamour.
// style is a glamour standard style name ("dark", "light", "notty"); an empty
// style detects the terminal background.
func Terminal(sections []Section, style string, width int) (string, error) {
	if width <= 0 {
		width = 80
	}

	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if style == "" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}

	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", err
	}
	return r.Render(Markdown(sections))
}
