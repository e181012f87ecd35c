package schema

import (
	"fmt"
	"strings"

	"github.com/sant0-9/copysmith/internal/apperrors"
)

// AlignMode decides what happens when sections and content fields differ in length.
type AlignMode string

const (
	// AlignValidate rejects a mismatched layout with an alignment error.
	AlignValidate AlignMode = "validate"
	// AlignTruncate pairs sections and fields by position and drops the
	// unpaired tail of the longer list.
	AlignTruncate AlignMode = "truncate"
)

// ParseAlignMode accepts "", "validate" or "truncate" in any case.
func ParseAlignMode(s string) (AlignMode, error) {
	switch AlignMode(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return "", nil
	case AlignValidate:
		return AlignValidate, nil
	case AlignTruncate:
		return AlignTruncate, nil
	}
	return "", apperrors.NewInvalidConfigError(fmt.Sprintf("unknown align mode %q (want validate or truncate)", s))
}

// ClientConfig is everything a client declares about its generated copy.
type ClientConfig struct {
	ClientName           string       `json:"client_name" yaml:"client_name"`
	Schema               Schema       `json:"schema" yaml:"schema"`
	Sections             []string     `json:"sections" yaml:"sections"`
	Limits               Limits       `json:"limits,omitempty" yaml:"limits,omitempty"`
	Instructions         Instructions `json:"instructions,omitempty" yaml:"instructions,omitempty"`
	GlobalInstructions   string       `json:"global_instructions,omitempty" yaml:"global_instructions,omitempty"`
	BrandDescription     string       `json:"brand_description,omitempty" yaml:"brand_description,omitempty"`
	LanguageInstructions string       `json:"language_instructions,omitempty" yaml:"language_instructions,omitempty"`
	AlignMode            AlignMode    `json:"align_mode,omitempty" yaml:"align_mode,omitempty"`
}

// Slot pairs a content field with the display heading it renders under.
type Slot struct {
	Key     string
	Section string
}

func (c *ClientConfig) effectiveMode(mode AlignMode) AlignMode {
	if mode != "" {
		return mode
	}
	if c.AlignMode != "" {
		return c.AlignMode
	}
	return AlignValidate
}

// Layout pairs Sections with the schema's content keys by position. mode
// overrides the config's own AlignMode when set.
func (c *ClientConfig) Layout(mode AlignMode) ([]Slot, error) {
	keys := c.Schema.ContentKeys()

	if len(keys) != len(c.Sections) && c.effectiveMode(mode) == AlignValidate {
		return nil, apperrors.NewAlignmentError(c.Sections, keys)
	}

	n := min(len(keys), len(c.Sections))
	slots := make([]Slot, n)
	for i := 0; i < n; i++ {
		slots[i] = Slot{Key: keys[i], Section: c.Sections[i]}
	}
	return slots, nil
}

func (c *ClientConfig) Limit(key string) (int, bool) {
	return c.Limits.Get(key)
}

func (c *ClientConfig) Instruction(key string) string {
	s, _ := c.Instructions.Get(key)
	return s
}

// SetLimit changes one field's limit. Title needs at least one word; other
// fields accept zero.
func (c *ClientConfig) SetLimit(key string, n int) error {
	if err := checkLimit(key, n); err != nil {
		return err
	}
	c.Limits.Set(key, n)
	return nil
}

func checkLimit(key string, n int) error {
	minimum := 0
	if key == TitleKey {
		minimum = 1
	}
	if n < minimum {
		return apperrors.NewInvalidConfigError(fmt.Sprintf("limit for %s must be >= %d, got %d", key, minimum, n))
	}
	return nil
}

// Validate checks the config is usable: a non-empty schema, limits in range,
// a known align mode and, in validate mode, aligned sections.
func (c *ClientConfig) Validate() error {
	return c.ValidateMode("")
}

// ValidateMode is Validate with the layout checked under mode, which
// overrides the config's own align mode when set.
func (c *ClientConfig) ValidateMode(mode AlignMode) error {
	if len(c.Schema) == 0 {
		return apperrors.NewInvalidConfigError(fmt.Sprintf("client %q has an empty schema", c.ClientName))
	}
	for _, l := range c.Limits {
		if err := checkLimit(l.Key, l.Value); err != nil {
			return err
		}
	}
	if _, err := ParseAlignMode(string(c.AlignMode)); err != nil {
		return err
	}
	_, err := c.Layout(mode)
	return err
}

// Clone returns a deep copy so session edits never leak into a shared config.
func (c *ClientConfig) Clone() *ClientConfig {
	out := *c
	out.Schema = append(Schema(nil), c.Schema...)
	out.Sections = append([]string(nil), c.Sections...)
	out.Limits = append(Limits(nil), c.Limits...)
	out.Instructions = append(Instructions(nil), c.Instructions...)
	return &out
}
