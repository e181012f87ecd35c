package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sant0-9/copysmith/internal/catalog"
)

const logo = `
 ┏━╸┏━┓┏━┓╻ ╻┏━┓┏┳┓╻╺┳╸╻ ╻
 ┃  ┃ ┃┣━┛┗┳┛┗━┓┃┃┃┃ ┃ ┣━┫
 ┗━╸┗━┛╹   ╹ ┗━┛╹ ╹╹ ╹ ╹ ╹
`

func (a *App) renderWelcome() string {
	s := a.state

	logoRendered := styleLogo.Render(logo)
	subtitle := styleSubtitle.Render("Product copy from your catalog")

	var body string
	switch {
	case s.catalogError != nil:
		body = styleWarning.Render(s.catalogError.Error()) + "\n" +
			styleSubtitle.Render("Add products to "+a.deps.Catalog.Path())
	case s.selectStep == 0:
		body = a.renderPicker("Client", s.clients, s.selClient, nil)
	default:
		client := s.clients[s.selClient]
		body = a.renderPicker("Category for "+client, s.categories, s.selCategory, catalog.TitleCase)
	}

	box := styleBox.Copy().
		Width(min(50, a.width-4)).
		Render(body)

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		logoRendered,
		subtitle,
		"",
		box,
	)

	// Center content on screen (leave room for status bar)
	mainArea := lipgloss.Place(
		a.width,
		a.height-2,
		lipgloss.Center,
		lipgloss.Center,
		content,
	)

	status := "[Up/Down] Navigate  [Enter] Select  [s] Settings  [?] Help  [Esc] Quit"
	if s.selectStep == 1 {
		status = "[Up/Down] Navigate  [Enter] Open  [Esc] Back"
	}
	statusLine := lipgloss.PlaceHorizontal(a.width, lipgloss.Center, styleStatusBar.Render(status))

	return lipgloss.JoinVertical(lipgloss.Left, mainArea, statusLine)
}

func (a *App) renderPicker(title string, items []string, selected int, label func(string) string) string {
	lines := []string{styleLabel.Render(title), ""}
	if len(items) == 0 {
		lines = append(lines, styleSubtitle.Render("  nothing to choose from"))
	}
	for i, item := range items {
		if label != nil {
			item = label(item)
		}
		cursor := "  "
		if i == selected {
			cursor = "> "
		}
		line := fmt.Sprintf("%s%s", cursor, truncate(item, 40))
		if i == selected {
			line = styleSelected.Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (a *App) centerVertically(content string) string {
	lines := strings.Count(content, "\n") + 1
	padding := (a.height - lines) / 2
	if padding < 0 {
		padding = 0
	}
	return strings.Repeat("\n", padding) + content
}

// viewTitle renders a centered view heading followed by a blank line.
func (a *App) viewTitle(b *strings.Builder, text string) {
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, styleTitle.Render(text)))
	b.WriteString("\n\n")
}

func (a *App) centered(b *strings.Builder, text string) {
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, text))
	b.WriteString("\n")
}
