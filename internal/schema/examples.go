package schema

import (
	"encoding/json"
	"strings"
)

// Examples maps a category name to a sample output object used as a one-shot
// exemplar.
type Examples struct {
	Ordered[json.RawMessage]
}

// Lookup finds the example for category. An exact match wins over a
// case-insensitive one.
func (e Examples) Lookup(category string) (json.RawMessage, bool) {
	if ex, ok := e.Get(category); ok {
		return ex, true
	}
	for _, entry := range e.Ordered {
		if strings.EqualFold(entry.Key, category) {
			return entry.Value, true
		}
	}
	return nil, false
}
