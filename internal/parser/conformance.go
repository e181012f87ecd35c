package parser

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/xeipuuv/gojsonschema"

	"github.com/sant0-9/copysmith/internal/schema"
)

// JSONSchema derives a JSON Schema document from a client schema. Every field
// is required and typed by its declared kind.
func JSONSchema(s schema.Schema) map[string]interface{} {
	props := make(map[string]interface{}, len(s))
	required := make([]interface{}, 0, len(s))

	for _, f := range s {
		var prop map[string]interface{}
		switch f.Kind {
		case schema.KindScalar:
			prop = map[string]interface{}{"type": []interface{}{"string", "number", "boolean"}}
		case schema.KindList:
			prop = map[string]interface{}{"type": "array"}
		case schema.KindMapping:
			prop = map[string]interface{}{"type": "object"}
		default:
			prop = map[string]interface{}{}
		}
		props[f.Key] = prop
		required = append(required, f.Key)
	}

	return map[string]interface{}{
		"type":       "object",
		"properties": props,
		"required":   required,
	}
}

// Conformance checks result against the client schema and returns one warning
// per violation. The backend's adherence is advisory, so callers log and show
// these and still render.
func Conformance(result schema.Result, cfg *schema.ClientConfig) ([]string, error) {
	if len(cfg.Schema) == 0 {
		return nil, nil
	}

	data, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}

	schemaLoader := gojsonschema.NewGoLoader(JSONSchema(cfg.Schema))
	documentLoader := gojsonschema.NewBytesLoader(data)

	res, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}
	if res.Valid() {
		return nil, nil
	}

	warnings := make([]string, len(res.Errors()))
	for i, desc := range res.Errors() {
		warnings[i] = desc.String()
	}
	sort.Strings(warnings)
	return warnings, nil
}
