package catalog

import (
	"strings"

	"github.com/sant0-9/copysmith/internal/schema"
)

// Product is one catalog entry, edited in place for the current session only.
type Product struct {
	Client     string       `json:"client"`
	Name       string       `json:"name,omitempty"`
	Category   string       `json:"category"`
	Tags       []string     `json:"tags,omitempty"`
	Features   schema.Pairs `json:"features,omitempty"`
	BrandTones []string     `json:"brand_tones,omitempty"`
	Language   string       `json:"language,omitempty"`
}

// BrandTone returns the authoritative tone, the first in the list.
func (p *Product) BrandTone() string {
	if len(p.BrandTones) == 0 {
		return ""
	}
	return p.BrandTones[0]
}

// Clone copies the product so edits stay local to one session.
func (p *Product) Clone() *Product {
	out := *p
	out.Tags = append([]string(nil), p.Tags...)
	out.Features = append(schema.Pairs(nil), p.Features...)
	out.BrandTones = append([]string(nil), p.BrandTones...)
	return &out
}

const (
	English   = "english"
	Icelandic = "icelandic"
)

// Languages lists the selectable output languages, default first.
var Languages = []string{"English", "Icelandic"}

// DefaultLanguage is used when a product does not name one.
const DefaultLanguage = English

// IsDefaultLanguage reports whether lang is English, ignoring case. An empty
// language counts as the default.
func IsDefaultLanguage(lang string) bool {
	lang = strings.TrimSpace(lang)
	return lang == "" || strings.EqualFold(lang, DefaultLanguage)
}

// IsSupported reports whether lang is one of Languages.
func IsSupported(lang string) bool {
	for _, l := range Languages {
		if strings.EqualFold(l, strings.TrimSpace(lang)) {
			return true
		}
	}
	return false
}

// ParseFeatureLines reads "key:value" lines. Lines without a colon are
// ignored and a repeated key overwrites the earlier value in place.
func ParseFeatureLines(text string) schema.Pairs {
	var out schema.Pairs
	for _, line := range strings.Split(text, "\n") {
		k, v, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		out.Set(strings.TrimSpace(k), strings.TrimSpace(v))
	}
	return out
}

// FormatFeatureLines is the inverse of ParseFeatureLines.
func FormatFeatureLines(features schema.Pairs) string {
	lines := make([]string, len(features))
	for i, f := range features {
		lines[i] = f.Key + ":" + f.Value
	}
	return strings.Join(lines, "\n")
}

// NormalizeTags trims tags, drops empty ones and removes duplicates, keeping
// first-seen order.
func NormalizeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

// ParseTags splits comma-separated input into normalized tags.
func ParseTags(input string) []string {
	return NormalizeTags(strings.Split(input, ","))
}
