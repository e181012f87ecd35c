package tui

import (
	"fmt"
	"strings"

	"github.com/sant0-9/copysmith/internal/catalog"
	"github.com/sant0-9/copysmith/internal/generator"
)

func (a *App) renderEdit() string {
	s := a.state
	var b strings.Builder
	boxWidth := min(80, a.width-4)

	a.viewTitle(&b, "Edit Product")

	// Metadata shown before generation
	meta := []string{
		fmt.Sprintf("Client:   %s", s.product.Client),
		fmt.Sprintf("Category: %s", catalog.TitleCase(s.product.Category)),
	}
	if s.product.Name != "" {
		meta = append(meta, fmt.Sprintf("Product:  %s", s.product.Name))
	}
	if tone := s.product.BrandTone(); tone != "" {
		meta = append(meta, fmt.Sprintf("Tone:     %s", tone))
	}
	if len(s.product.Features) > 0 {
		meta = append(meta, "Features:")
		for _, f := range s.product.Features {
			meta = append(meta, fmt.Sprintf("  • %s: %s", f.Key, f.Value))
		}
	}
	metaBox := styleBox.Copy().Width(boxWidth).Render(styleText.Render(strings.Join(meta, "\n")))
	a.centered(&b, metaBox)
	b.WriteString("\n")

	var form []string
	form = append(form, a.fieldLabel("Features", focusFeatures), s.featuresArea.View(), "")
	form = append(form, a.fieldLabel("Tags", focusTags), s.tagsInput.View(), "")
	form = append(form, a.fieldLabel("Limits", focusLimits), s.limitsInput.View(), "")
	form = append(form, a.fieldLabel("Language", focusLanguage), a.renderLanguages())
	if r := a.router(); r != nil {
		form = append(form, styleNote.Render(languageNote(r, catalog.Languages[s.language])))
	}

	formBox := styleBox.Copy().Width(boxWidth).BorderForeground(colorPrimary).Render(strings.Join(form, "\n"))
	a.centered(&b, formBox)
	b.WriteString("\n")

	if s.editError != nil {
		a.centered(&b, styleWarning.Render(truncate(s.editError.Error(), boxWidth)))
		b.WriteString("\n")
	}

	a.centered(&b, styleStatusBar.Render("[Tab] Next field  [Ctrl+G] Generate  [Esc] Back"))

	return a.centerVertically(b.String())
}

func (a *App) fieldLabel(name string, focus int) string {
	if a.state.focus == focus {
		return styleLabel.Render("> " + name)
	}
	return styleSubtitle.Render("  " + name)
}

func (a *App) renderLanguages() string {
	parts := make([]string, len(catalog.Languages))
	for i, l := range catalog.Languages {
		if i == a.state.language {
			parts[i] = styleSelected.Render("(•) " + l)
		} else {
			parts[i] = styleSubtitle.Render("( ) " + l)
		}
	}
	return "  " + strings.Join(parts, "   ")
}

func (a *App) router() *generator.Router {
	if a.deps.Generator == nil {
		return nil
	}
	return a.deps.Generator.Router()
}
