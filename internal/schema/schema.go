// Package schema models a client's desired output: the ordered field schema,
// per-field limits and instructions, and the tagged values a backend returns.
// The prompt builder and the section renderer both read this one structure.
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	TitleKey    = "title"
	SubtitleKey = "subtitle"
)

// IsHeaderKey reports whether key is rendered ahead of the section layout.
func IsHeaderKey(key string) bool {
	return key == TitleKey || key == SubtitleKey
}

// Kind is the value shape of a field.
type Kind int

const (
	KindUnknown Kind = iota
	KindScalar
	KindList
	KindMapping
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindList:
		return "list"
	case KindMapping:
		return "mapping"
	default:
		return "unknown"
	}
}

// Field is one schema entry. Shape is the value the client wrote for the
// field (for example "string" or {"<key>": "<value>"}) and is echoed verbatim
// to the backend; Kind is derived from it.
type Field struct {
	Key   string
	Kind  Kind
	Shape json.RawMessage
}

// NewField builds a field with the conventional shape for its kind.
func NewField(key string, kind Kind) Field {
	var shape string
	switch kind {
	case KindList:
		shape = `["string"]`
	case KindMapping:
		shape = `{"<key>":"<value>"}`
	default:
		shape = `"string"`
	}
	return Field{Key: key, Kind: kind, Shape: json.RawMessage(shape)}
}

// kindOf classifies a shape. Strings naming a kind are honoured so a schema
// can be written as {"bullets": "list"}; any other string is a scalar.
func kindOf(shape json.RawMessage) Kind {
	trimmed := bytes.TrimSpace(shape)
	if len(trimmed) == 0 {
		return KindUnknown
	}
	switch trimmed[0] {
	case '{':
		return KindMapping
	case '[':
		return KindList
	case 'n':
		return KindUnknown
	case '"':
		switch strings.ToLower(rawText(trimmed)) {
		case "list", "array":
			return KindList
		case "mapping", "map", "object", "dict":
			return KindMapping
		}
	}
	return KindScalar
}

// Schema is the ordered list of fields a client expects back.
type Schema []Field

func (s Schema) Keys() []string {
	keys := make([]string, len(s))
	for i, f := range s {
		keys[i] = f.Key
	}
	return keys
}

func (s Schema) Field(key string) (Field, bool) {
	for _, f := range s {
		if f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}

func (s Schema) Has(key string) bool {
	_, ok := s.Field(key)
	return ok
}

// ContentKeys returns the schema keys that are laid out under section
// headings, i.e. everything except title and subtitle, in schema order.
func (s Schema) ContentKeys() []string {
	var keys []string
	for _, f := range s {
		if !IsHeaderKey(f.Key) {
			keys = append(keys, f.Key)
		}
	}
	return keys
}

func (s Schema) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		shape := f.Shape
		if len(shape) == 0 {
			shape = NewField(f.Key, f.Kind).Shape
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(shape)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// IndentedJSON renders the schema as two-space indented JSON in field order.
func (s Schema) IndentedJSON() string {
	data, err := s.MarshalJSON()
	if err != nil {
		return "{}"
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return string(data)
	}
	return buf.String()
}

func (s *Schema) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		return nil
	}
	var out Schema
	err := decodeObject(data, func(key string, raw json.RawMessage) error {
		f, err := newFieldFromShape(key, raw)
		if err != nil {
			return err
		}
		out = out.with(f)
		return nil
	})
	if err != nil {
		return fmt.Errorf("schema: %w", err)
	}
	*s = out
	return nil
}

func (s *Schema) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("schema: line %d: expected a mapping", node.Line)
	}
	var out Schema
	for i := 0; i+1 < len(node.Content); i += 2 {
		raw, err := nodeToJSON(node.Content[i+1])
		if err != nil {
			return fmt.Errorf("schema: %s: %w", node.Content[i].Value, err)
		}
		f, err := newFieldFromShape(node.Content[i].Value, raw)
		if err != nil {
			return err
		}
		out = out.with(f)
	}
	*s = out
	return nil
}

func (s Schema) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, f := range s {
		shape := f.Shape
		if len(shape) == 0 {
			shape = NewField(f.Key, f.Kind).Shape
		}
		v, err := jsonToNode(shape)
		if err != nil {
			return nil, fmt.Errorf("schema: %s: %w", f.Key, err)
		}
		node.Content = append(node.Content, keyNode(f.Key), v)
	}
	return node, nil
}

func newFieldFromShape(key string, raw json.RawMessage) (Field, error) {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return Field{}, fmt.Errorf("schema: %s: %w", key, err)
	}
	shape := json.RawMessage(buf.Bytes())
	return Field{Key: key, Kind: kindOf(shape), Shape: shape}, nil
}

// with replaces a field of the same key in place or appends it.
func (s Schema) with(f Field) Schema {
	for i := range s {
		if s[i].Key == f.Key {
			s[i] = f
			return s
		}
	}
	return append(s, f)
}
