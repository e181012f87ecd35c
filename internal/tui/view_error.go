package tui

import (
	"errors"
	"strings"

	"github.com/sant0-9/copysmith/internal/apperrors"
	"github.com/sant0-9/copysmith/internal/parser"
)

func (a *App) renderError() string {
	var b strings.Builder
	boxWidth := min(70, a.width-4)

	err := a.state.processingError
	if err == nil {
		err = errors.New("unknown error")
	}

	var pe *parser.ParseError
	if errors.As(err, &pe) {
		a.viewTitle(&b, parser.ErrInvalidJSON.Message)

		raw := pe.Raw
		if raw == "" {
			raw = "(empty response)"
		}
		lines := strings.Split(raw, "\n")
		if limit := a.height - 12; limit > 3 && len(lines) > limit {
			lines = append(lines[:limit], "...")
		}
		rawBox := styleBox.Copy().
			Width(boxWidth).
			BorderForeground(colorError).
			Render(strings.Join(lines, "\n"))
		a.centered(&b, rawBox)
		b.WriteString("\n")
	} else {
		a.viewTitle(&b, "Something went wrong")

		errBox := styleBox.Copy().
			Width(boxWidth).
			BorderForeground(colorError).
			Render(err.Error())
		a.centered(&b, errBox)
		b.WriteString("\n")
	}

	if suggestions := suggestionsFor(err); len(suggestions) > 0 {
		suggBox := styleBox.Copy().
			Width(boxWidth).
			Render("Suggestions:\n" + strings.Join(suggestions, "\n"))
		a.centered(&b, suggBox)
		b.WriteString("\n")
	}

	status := "[n] New  [s] Settings  [Esc] Quit"
	if a.state.product != nil && a.deps.Generator != nil {
		status = "[r] Retry  [e] Edit  [n] New  [s] Settings  [Esc] Back"
	}
	a.centered(&b, styleStatusBar.Render(status))

	return a.centerVertically(b.String())
}

// suggestionsFor maps an error code to next steps for the user.
func suggestionsFor(err error) []string {
	switch apperrors.CodeOf(err) {
	case apperrors.CodeCredentialMissing:
		return []string{
			"Set the key in .streamlit/secrets.toml, the environment or .env",
			"Then restart copysmith",
		}
	case apperrors.CodeConfigNotFound:
		return []string{"Add config/<client>.json (or .yaml) under the data directory"}
	case apperrors.CodeAlignment:
		return []string{
			"Give every content field one entry in \"sections\"",
			"Or set \"align_mode\": \"truncate\" in the client config",
		}
	case apperrors.CodeInvalidConfig:
		return []string{"Fix the value and try again"}
	case apperrors.CodeParse:
		return []string{"Press [r] to ask the model again"}
	case apperrors.CodeEmptyResponse:
		return []string{"The model answered with no text", "Press [r] to try again"}
	case apperrors.CodeTransport:
		msg := strings.ToLower(err.Error())
		switch {
		case strings.Contains(msg, "401") || strings.Contains(msg, "403") || strings.Contains(msg, "api key"):
			return []string{"Check the API key for this backend"}
		case strings.Contains(msg, "429") || strings.Contains(msg, "rate limit"):
			return []string{"You've hit the API rate limit", "Wait a moment and press [r]"}
		default:
			return []string{"Check your internet connection", "Press [r] to try again"}
		}
	}
	return nil
}
