package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sant0-9/copysmith/internal/catalog"
	"github.com/sant0-9/copysmith/internal/generator"
)

func (a *App) renderProcessing() string {
	s := a.state
	var b strings.Builder

	a.viewTitle(&b, "Generating")

	if s.product != nil {
		info := fmt.Sprintf("%s / %s / %s", s.product.Client, catalog.TitleCase(s.product.Category), s.product.Language)
		a.centered(&b, styleSubtitle.Render(truncate(info, 60)))
		b.WriteString("\n")
	}

	currentStage := 0
	if s.progress != nil {
		currentStage = s.progress.StageIndex
	}

	var stageLines []string
	for i, stage := range generator.Stages {
		var icon string
		var style lipgloss.Style

		if i < currentStage {
			// Completed
			icon = "[x]"
			style = lipgloss.NewStyle().Foreground(colorSuccess)
		} else if i == currentStage {
			// Current
			icon = "[" + s.spinner.View() + "]"
			style = lipgloss.NewStyle().Foreground(colorSecondary).Bold(true)
		} else {
			// Pending
			icon = "[ ]"
			style = lipgloss.NewStyle().Foreground(colorMuted)
		}

		stageLines = append(stageLines, style.Render(fmt.Sprintf("  %s  %-12s", icon, stage)))
	}

	stagesBox := styleBox.Copy().
		Width(min(60, a.width-4)).
		Render(strings.Join(stageLines, "\n"))
	a.centered(&b, stagesBox)
	b.WriteString("\n")

	if s.progress != nil && s.progress.Message != "" {
		a.centered(&b, styleSubtitle.Render(truncate(s.progress.Message, 60)))
	}

	return a.centerVertically(b.String())
}
