package tui

import (
	"fmt"
	"strings"

	"github.com/sant0-9/copysmith/internal/config"
)

func (a *App) renderSettings() string {
	var b strings.Builder
	a.viewTitle(&b, "Settings")

	cfg := a.deps.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	lines := []string{}
	for _, t := range cfg.Tracks() {
		name := t.Provider
		if p := config.GetProvider(t.Provider); p != nil {
			name = p.Name
			if t.Model == "" {
				t.Model = p.DefaultModel
			}
			lines = append(lines,
				fmt.Sprintf("  %s", t.Label),
				fmt.Sprintf("    Provider: %s", name),
				fmt.Sprintf("    Model:    %s", t.Model),
				fmt.Sprintf("    API Key:  %s", a.keyStatus(p.EnvKey)),
				"",
			)
		}
	}
	alignMode := cfg.AlignMode
	if alignMode == "" {
		alignMode = "per client"
	}
	lines = append(lines,
		fmt.Sprintf("  Temperature: %.2f", cfg.Temperature),
		fmt.Sprintf("  Timeout:     %s", cfg.Timeout),
		fmt.Sprintf("  Align mode:  %s", alignMode),
		fmt.Sprintf("  Data dir:    %s", cfg.DataDir),
	)

	box := styleBox.Copy().
		Width(min(60, a.width-4)).
		Render(strings.Join(lines, "\n"))
	a.centered(&b, box)
	b.WriteString("\n")

	if path, err := config.ConfigPath(); err == nil {
		a.centered(&b, styleSubtitle.Render("Edit "+path+" to change these"))
		b.WriteString("\n")
	}

	if a.state.startupError != nil {
		a.centered(&b, styleWarning.Render("Generation disabled: "+truncate(a.state.startupError.Error(), 60)))
		b.WriteString("\n")
	}

	a.centered(&b, styleStatusBar.Render("[Esc] Back"))

	return a.centerVertically(b.String())
}

// keyStatus names where a credential came from, never its value.
func (a *App) keyStatus(envKey string) string {
	if src := a.deps.Credentials.Source(envKey); src != "" {
		return "set (" + src + ")"
	}
	return "Not set"
}
