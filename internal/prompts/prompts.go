// Package prompts builds the generation prompt for one product. Build is pure:
// the same product, config and example always give the same text.
package prompts

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/sant0-9/copysmith/internal/catalog"
	"github.com/sant0-9/copysmith/internal/schema"
)

//go:embed language_rules.md
var LanguageRules string

const (
	roleLine     = "You are an e-commerce copywriter. Output only valid JSON, no extra text."
	featuresLine = "Use the product type and all of the feature/attribute pairs below as creative input. Leave out only the pairs that do not fit the copy."
)

// Build composes the prompt for product under cfg. example may be nil.
func Build(product *catalog.Product, cfg *schema.ClientConfig, example json.RawMessage) string {
	var blocks []string

	if s := strings.TrimSpace(cfg.BrandDescription); s != "" {
		blocks = append(blocks, s)
	}

	role := roleLine
	if cfg.ClientName != "" {
		role = fmt.Sprintf("You are an e-commerce copywriter for %s. Output only valid JSON, no extra text.", cfg.ClientName)
	}
	blocks = append(blocks, role)

	if rules := BuildLanguageRules(product.Language); rules != "" {
		if s := strings.TrimSpace(cfg.LanguageInstructions); s != "" {
			rules += "\n" + s
		}
		blocks = append(blocks, rules)
	}

	usage := featuresLine
	if s := strings.TrimSpace(cfg.GlobalInstructions); s != "" {
		usage += "\n" + s
	}
	blocks = append(blocks, usage)

	blocks = append(blocks, buildMetadata(product))
	blocks = append(blocks, buildConstraints(cfg))
	blocks = append(blocks, buildOutputFormat(cfg.Schema))

	if ex := indent(example); ex != "" {
		blocks = append(blocks, "EXAMPLE OUTPUT:\n"+ex)
	}

	return strings.Join(blocks, "\n\n") + "\n"
}

// BuildLanguageRules returns the style rules for a supported language other
// than English, or "" when none apply.
func BuildLanguageRules(language string) string {
	if catalog.IsDefaultLanguage(language) || !catalog.IsSupported(language) {
		return ""
	}
	return strings.ReplaceAll(strings.TrimSpace(LanguageRules), "{language}", catalog.TitleCase(language))
}

func buildMetadata(p *catalog.Product) string {
	var b strings.Builder
	b.WriteString("INPUT METADATA:\n")
	fmt.Fprintf(&b, "Category: %s\n", p.Category)
	for _, f := range p.Features {
		fmt.Fprintf(&b, "%s: %s\n", f.Key, f.Value)
	}
	if tone := p.BrandTone(); tone != "" {
		fmt.Fprintf(&b, "Tone: %s\n", tone)
	}
	if tags := catalog.NormalizeTags(p.Tags); len(tags) > 0 {
		fmt.Fprintf(&b, "Tags: %s\n", strings.Join(tags, ", "))
	}
	return strings.TrimRight(b.String(), "\n")
}

// constraint is one line of the CONTENT CONSTRAINTS block. key is empty when
// the entry names no schema field.
type constraint struct {
	name string
	key  string
}

// constraintOrder resolves every sections entry to a schema field. Entries
// take the content key at their position, the same pairing the renderer uses;
// entries past the content keys fall back to a schema key of the same name.
// Schema keys no entry claimed are appended.
func constraintOrder(cfg *schema.ClientConfig) []constraint {
	// Truncate never fails; it pairs exactly the positions a valid layout has.
	slots, _ := cfg.Layout(schema.AlignTruncate)
	claimed := map[string]bool{}
	for _, s := range slots {
		claimed[s.Key] = true
	}

	out := make([]constraint, 0, len(cfg.Sections)+2)
	for i, section := range cfg.Sections {
		c := constraint{name: section}
		switch {
		case i < len(slots):
			c.key = slots[i].Key
		case cfg.Schema.Has(section) && !claimed[section]:
			c.key = section
			claimed[section] = true
		}
		out = append(out, c)
	}

	for _, key := range cfg.Schema.Keys() {
		if !claimed[key] {
			out = append(out, constraint{name: key, key: key})
		}
	}
	return out
}

func buildConstraints(cfg *schema.ClientConfig) string {
	var b strings.Builder
	b.WriteString("CONTENT CONSTRAINTS:")
	for _, c := range constraintOrder(cfg) {
		if line := constraintLine(cfg, c); line != "" {
			b.WriteString("\n- ")
			b.WriteString(line)
		}
	}
	return b.String()
}

func constraintLine(cfg *schema.ClientConfig, c constraint) string {
	instruction := cfg.Instruction(c.key)
	if instruction == "" && !cfg.Schema.Has(c.name) {
		instruction = cfg.Instruction(c.name)
	}
	instruction = substituteLimits(instruction, cfg.Limits)

	field, ok := cfg.Schema.Field(c.key)
	if !ok || field.Kind == schema.KindUnknown {
		return instruction
	}

	limit, hasLimit := cfg.Limit(c.key)
	if field.Kind == schema.KindScalar && !hasLimit {
		return instruction
	}

	var unit string
	switch field.Kind {
	case schema.KindList:
		unit = "items"
	case schema.KindMapping:
		unit = "key-value pairs"
	default:
		unit = "words"
	}

	head := fmt.Sprintf("**%s**", c.key)
	if hasLimit {
		head += fmt.Sprintf(" (≤ %d %s)", limit, unit)
	} else {
		head += fmt.Sprintf(" (%s)", unit)
	}

	if instruction == "" {
		return head
	}
	return head + ": " + instruction
}

var limitRef = regexp.MustCompile(`\{limits(?:\[([^\]]+)\])?\}`)

// substituteLimits expands {limits} to the whole mapping and {limits[key]} to
// one limit. References to unknown keys are left as written.
func substituteLimits(text string, limits schema.Limits) string {
	if !strings.Contains(text, "{limits") {
		return text
	}
	return limitRef.ReplaceAllStringFunc(text, func(m string) string {
		sub := limitRef.FindStringSubmatch(m)
		if sub[1] == "" {
			data, err := json.Marshal(limits)
			if err != nil {
				return m
			}
			return string(data)
		}
		key := strings.Trim(sub[1], `'"`)
		if n, ok := limits.Get(key); ok {
			return strconv.Itoa(n)
		}
		return m
	})
}

func buildOutputFormat(s schema.Schema) string {
	return fmt.Sprintf("OUTPUT FORMAT:\nReturn one JSON object with these keys: %s\nIt must follow this schema exactly:\n%s",
		strings.Join(s.Keys(), ", "),
		s.IndentedJSON(),
	)
}

func indent(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || string(trimmed) == "null" || string(trimmed) == "{}" {
		return ""
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, trimmed, "", "  "); err != nil {
		return string(trimmed)
	}
	return buf.String()
}
