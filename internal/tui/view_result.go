package tui

import (
	"fmt"
	"strings"
)

func (a *App) renderResult() string {
	s := a.state
	out := s.outcome
	var b strings.Builder

	title := "Generated Copy"
	if s.showRaw {
		title = "Raw Output"
	}
	a.viewTitle(&b, title)

	resultBox := styleBox.Copy().
		Width(min(80, a.width-4)).
		BorderForeground(colorPrimary).
		Render(s.viewport.View())
	a.centered(&b, resultBox)

	if out != nil {
		a.centered(&b, styleNote.Render(fmt.Sprintf("Using model: %s", out.Label)))
		if n := len(out.Warnings); n > 0 {
			a.centered(&b, styleWarning.Render(fmt.Sprintf("%d schema warning(s): %s", n, truncate(out.Warnings[0], 60))))
		}
	}
	b.WriteString("\n")

	a.centered(&b, styleStatusBar.Render("[Up/Down] Scroll  [r] Regenerate  [e] Edit  [w] Raw  [n] New  [Esc] Quit"))

	return b.String()
}
