package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sant0-9/copysmith/internal/apperrors"
	"github.com/sant0-9/copysmith/internal/catalog"
	"github.com/sant0-9/copysmith/internal/generator"
	"github.com/sant0-9/copysmith/internal/schema"
)

// formatLimits renders limits as "key=n" pairs in config order.
func formatLimits(limits schema.Limits) string {
	parts := make([]string, len(limits))
	for i, l := range limits {
		parts[i] = fmt.Sprintf("%s=%d", l.Key, l.Value)
	}
	return strings.Join(parts, ", ")
}

// parseLimits reads "key=n" pairs separated by commas. A colon works in place
// of "=" too.
func parseLimits(input string) (schema.Limits, error) {
	var out schema.Limits
	for _, part := range strings.Split(input, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		k, v, ok := strings.Cut(part, "=")
		if !ok {
			k, v, ok = strings.Cut(part, ":")
		}
		k, v = strings.TrimSpace(k), strings.TrimSpace(v)
		if !ok || k == "" {
			return nil, apperrors.NewInvalidConfigError(fmt.Sprintf("limit %q should look like field=number", part))
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, apperrors.NewInvalidConfigError(fmt.Sprintf("limit for %s is not a number: %q", k, v))
		}
		out.Set(k, n)
	}
	return out, nil
}

// languageIndex finds lang in catalog.Languages, defaulting to English.
func languageIndex(lang string) int {
	for i, l := range catalog.Languages {
		if strings.EqualFold(l, strings.TrimSpace(lang)) {
			return i
		}
	}
	return 0
}

// languageNote tells the user which backend a language is routed to.
func languageNote(r *generator.Router, lang string) string {
	if r == nil {
		return ""
	}
	b := r.Select(lang)
	return fmt.Sprintf("↳ This language will use: %s (%s)", b.Label, b.Model)
}

// fillForm loads the session product and config into the edit inputs.
func (s *state) fillForm() {
	s.featuresArea.SetValue(catalog.FormatFeatureLines(s.product.Features))
	s.tagsInput.SetValue(strings.Join(s.product.Tags, ", "))
	s.limitsInput.SetValue(formatLimits(s.clientCfg.Limits))
	s.language = languageIndex(s.product.Language)
	s.focus = focusFeatures
	s.editError = nil
}

// applyForm writes the edit inputs back into the session copies. The limits
// input replaces the config's limits, so a removed entry means no limit. Each
// value is checked first and a bad one leaves the config untouched.
func (s *state) applyForm() error {
	limits, err := parseLimits(s.limitsInput.Value())
	if err != nil {
		return err
	}
	cfg := s.clientCfg.Clone()
	cfg.Limits = nil
	for _, l := range limits {
		if err := cfg.SetLimit(l.Key, l.Value); err != nil {
			return err
		}
	}

	s.clientCfg = cfg
	s.product.Features = catalog.ParseFeatureLines(s.featuresArea.Value())
	s.product.Tags = catalog.ParseTags(s.tagsInput.Value())
	s.product.Language = catalog.Languages[s.language]
	return nil
}
