package tui

import (
	"strings"
)

func (a *App) renderHelp() string {
	var b strings.Builder
	a.viewTitle(&b, "Help")

	steps := []string{
		"  1. Pick a client, then a category",
		"  2. Adjust features, tags, limits and language",
		"  3. Ctrl+G generates the copy",
		"",
		"  Edits only last for this session.",
		"  Use `copysmith limits set` to save limits.",
	}

	stepsBox := styleBox.Copy().
		Width(56).
		Render(strings.Join(steps, "\n"))
	a.centered(&b, stepsBox)
	b.WriteString("\n")

	// Keyboard shortcuts
	shortcuts := []string{
		"  Up/Down        Move in lists",
		"  Tab            Next field (edit view)",
		"  Left/Right     Change language",
		"  Ctrl+G         Generate",
		"  r              Regenerate / retry",
		"  e              Back to the edit view",
		"  w              Toggle raw model output",
		"  n              Choose another product",
		"  s              Settings (from the client list)",
		"  Esc            Go back / Quit",
	}

	a.centered(&b, styleSubtitle.Render("Keyboard Shortcuts"))
	b.WriteString("\n")

	shortcutsBox := styleBox.Copy().
		Width(56).
		Render(strings.Join(shortcuts, "\n"))
	a.centered(&b, shortcutsBox)
	b.WriteString("\n")

	a.centered(&b, styleStatusBar.Render("[Esc] Back"))

	return a.centerVertically(b.String())
}
