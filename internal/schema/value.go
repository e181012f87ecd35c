package schema

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Value is one field of a generated result. Exactly one of the scalar text,
// the item list or the pairs is meaningful, as reported by Kind. A JSON null
// has KindUnknown.
type Value struct {
	kind  Kind
	text  string
	items []string
	pairs Pairs
	falsy bool
	raw   json.RawMessage
}

func Scalar(s string) Value {
	return Value{kind: KindScalar, text: s, falsy: s == ""}
}

func List(items ...string) Value {
	return Value{kind: KindList, items: items, falsy: len(items) == 0}
}

func Mapping(p Pairs) Value {
	return Value{kind: KindMapping, pairs: p, falsy: len(p) == 0}
}

func (v Value) Kind() Kind      { return v.kind }
func (v Value) Text() string    { return v.text }
func (v Value) Items() []string { return v.items }
func (v Value) Pairs() Pairs    { return v.pairs }

// IsZero reports whether the value counts as empty for display: null, "",
// [], {}, false and 0 are all empty.
func (v Value) IsZero() bool {
	return v.falsy
}

// ValueFromJSON classifies a raw JSON value by its runtime shape.
func ValueFromJSON(raw json.RawMessage) (Value, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return Value{falsy: true}, nil
	}

	keep := append(json.RawMessage(nil), trimmed...)

	switch trimmed[0] {
	case 'n':
		return Value{falsy: true, raw: keep}, nil

	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return Value{}, err
		}
		v := Scalar(s)
		v.raw = keep
		return v, nil

	case '[':
		var elems []json.RawMessage
		if err := json.Unmarshal(trimmed, &elems); err != nil {
			return Value{}, err
		}
		items := make([]string, len(elems))
		for i, e := range elems {
			items[i] = rawText(e)
		}
		v := List(items...)
		v.raw = keep
		return v, nil

	case '{':
		var p Pairs
		if err := p.decode(trimmed); err != nil {
			return Value{}, err
		}
		v := Mapping(p)
		v.raw = keep
		return v, nil

	case 't', 'f':
		var b bool
		if err := json.Unmarshal(trimmed, &b); err != nil {
			return Value{}, err
		}
		return Value{kind: KindScalar, text: strconv.FormatBool(b), falsy: !b, raw: keep}, nil

	default:
		var n json.Number
		if err := json.Unmarshal(trimmed, &n); err != nil {
			return Value{}, err
		}
		return Value{kind: KindScalar, text: n.String(), falsy: isZeroNumber(n.String()), raw: keep}, nil
	}
}

// isZeroNumber reports whether a JSON number literal is zero. Only the
// mantissa decides, so literals too large for a float64 still classify.
func isZeroNumber(lit string) bool {
	if i := strings.IndexAny(lit, "eE"); i >= 0 {
		lit = lit[:i]
	}
	for _, r := range lit {
		if r != '0' && r != '.' && r != '-' {
			return false
		}
	}
	return true
}

func (v Value) MarshalJSON() ([]byte, error) {
	if len(v.raw) > 0 {
		return v.raw, nil
	}
	switch v.kind {
	case KindScalar:
		return json.Marshal(v.text)
	case KindList:
		if v.items == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.items)
	case KindMapping:
		return v.pairs.MarshalJSON()
	default:
		return []byte("null"), nil
	}
}

func (v *Value) UnmarshalJSON(data []byte) error {
	val, err := ValueFromJSON(data)
	if err != nil {
		return err
	}
	*v = val
	return nil
}

func (v Value) MarshalYAML() (interface{}, error) {
	data, err := v.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return jsonToNode(data)
}

func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	raw, err := nodeToJSON(node)
	if err != nil {
		return err
	}
	return v.UnmarshalJSON(raw)
}

// Result is a parsed backend response in document order. Its keys may be a
// subset or a superset of the client's schema.
type Result = Ordered[Value]

// DecodeResult parses exactly one JSON object into a Result.
func DecodeResult(data []byte) (Result, error) {
	var r Result
	if err := r.decode(data); err != nil {
		return nil, err
	}
	return r, nil
}
