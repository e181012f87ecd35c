// Package render lays a generated result out as ordered display sections:
// the title, an optional subtitle, then one section per schema field under
// the client's section heading.
package render

import (
	"strings"

	"github.com/sant0-9/copysmith/internal/schema"
)

// Style says how a section's body should be displayed.
type Style int

const (
	StyleTitle Style = iota
	StyleSubtitle
	StyleParagraph
	StyleList
	StyleMapping
)

func (s Style) String() string {
	switch s {
	case StyleTitle:
		return "title"
	case StyleSubtitle:
		return "subtitle"
	case StyleList:
		return "list"
	case StyleMapping:
		return "mapping"
	default:
		return "paragraph"
	}
}

// Section is one rendered block. Heading is empty for the title and subtitle.
// List bodies carry their "- " bullet, mapping bodies are "key: value" lines.
type Section struct {
	Key     string
	Heading string
	Body    []string
	Style   Style
}

// Render maps result onto cfg's section layout. The title always comes first,
// even when empty; the subtitle and every content field are omitted when
// falsy. Values are laid out by their actual shape, not the declared kind.
// The only error is a misaligned layout under AlignValidate.
func Render(result schema.Result, cfg *schema.ClientConfig) ([]Section, error) {
	slots, err := cfg.Layout("")
	if err != nil {
		return nil, err
	}

	out := make([]Section, 0, len(slots)+2)

	title := Section{Key: schema.TitleKey, Style: StyleTitle}
	if v, ok := result.Get(schema.TitleKey); ok && !v.IsZero() {
		title.Body = []string{inline(v)}
	}
	out = append(out, title)

	if v, ok := result.Get(schema.SubtitleKey); ok && !v.IsZero() {
		out = append(out, Section{Key: schema.SubtitleKey, Body: []string{inline(v)}, Style: StyleSubtitle})
	}

	for _, slot := range slots {
		v, ok := result.Get(slot.Key)
		if !ok || v.IsZero() {
			continue
		}
		out = append(out, block(slot, v))
	}
	return out, nil
}

func block(slot schema.Slot, v schema.Value) Section {
	s := Section{Key: slot.Key, Heading: slot.Section}
	switch v.Kind() {
	case schema.KindMapping:
		s.Style = StyleMapping
		for _, p := range v.Pairs() {
			s.Body = append(s.Body, p.Key+": "+p.Value)
		}
	case schema.KindList:
		s.Style = StyleList
		for _, item := range v.Items() {
			s.Body = append(s.Body, "- "+item)
		}
	default:
		s.Style = StyleParagraph
		s.Body = []string{v.Text()}
	}
	return s
}

// inline flattens a value onto one line for the title and subtitle.
func inline(v schema.Value) string {
	switch v.Kind() {
	case schema.KindList:
		return strings.Join(v.Items(), ", ")
	case schema.KindMapping:
		parts := make([]string, len(v.Pairs()))
		for i, p := range v.Pairs() {
			parts[i] = p.Key + ": " + p.Value
		}
		return strings.Join(parts, "; ")
	default:
		return v.Text()
	}
}

// Markdown writes sections as markdown: a bold title, the subtitle as plain
// text and a level three heading per section.
func Markdown(sections []Section) string {
	var blocks []string
	for _, s := range sections {
		switch s.Style {
		case StyleTitle:
			if len(s.Body) > 0 && s.Body[0] != "" {
				blocks = append(blocks, "**"+s.Body[0]+"**")
			}
		case StyleSubtitle:
			blocks = append(blocks, strings.Join(s.Body, " "))
		case StyleList:
			blocks = append(blocks, "### "+s.Heading, strings.Join(s.Body, "\n"))
		default:
			blocks = append(blocks, "### "+s.Heading)
			blocks = append(blocks, s.Body...)
		}
	}
	return strings.Join(blocks, "\n\n") + "\n"
}

// PlainText writes sections without markup, for piping and plain terminals.
func PlainText(sections []Section) string {
	var b strings.Builder
	for i, s := range sections {
		if s.Heading != "" {
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString(s.Heading)
			b.WriteString("\n")
		}
		for _, line := range s.Body {
			b.WriteString(line)
			b.WriteString("\n")
		}
		if s.Style == StyleTitle && len(s.Body) == 0 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
