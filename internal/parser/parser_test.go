package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sant0-9/copysmith/internal/apperrors"
	"github.com/sant0-9/copysmith/internal/schema"
)

func TestStripFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"clean", `{"title":"T"}`, `{"title":"T"}`},
		{"clean keeps whitespace", "  {\"a\":1}\n", "  {\"a\":1}\n"},
		{"json tag", "```json\n{\"title\":\"T\"}\n```", `{"title":"T"}`},
		{"no tag", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"surrounding whitespace", "\n  ```json\n{\"a\":1}\n```  \n", `{"a":1}`},
		{"missing close", "```json\n{\"a\":1}", `{"a":1}`},
		{"close on last line", "```json\n{\"a\":1}```", `{"a":1}`},
		{"multiline body", "```json\n{\n  \"a\": 1\n}\n```", "{\n  \"a\": 1\n}"},
		{"single line", "```json {\"a\":1}```", `{"a":1}`},
		{"only fences", "```json\n```", ""},
		{"fence later in text", "here you go:\n```json\n{}\n```", "here you go:\n```json\n{}\n```"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripFences(tt.in))
		})
	}
}

func TestStripFencesIdempotent(t *testing.T) {
	inputs := []string{
		`{"title":"T"}`,
		"```json\n{\"title\":\"T\"}\n```",
		"```\n[1,2]\n```",
		"plain text",
		"",
	}
	for _, in := range inputs {
		once := StripFences(in)
		assert.Equal(t, once, StripFences(once), in)
	}
}

func TestParseFenced(t *testing.T) {
	result, err := Parse("```json\n{\"title\":\"T\"}\n```")
	require.NoError(t, err)
	assert.Equal(t, []string{"title"}, result.Keys())
	title, _ := result.Get("title")
	assert.Equal(t, "T", title.Text())
}

func TestParseKeepsOrderAndKinds(t *testing.T) {
	result, err := Parse(`{"title":"T","specs":{"b":"2","a":"1"},"bullets":["x","y"],"subtitle":""}`)
	require.NoError(t, err)
	assert.Equal(t, []string{"title", "specs", "bullets", "subtitle"}, result.Keys())

	specs, _ := result.Get("specs")
	assert.Equal(t, schema.KindMapping, specs.Kind())
	assert.Equal(t, []string{"b", "a"}, specs.Pairs().Keys())

	bullets, _ := result.Get("bullets")
	assert.Equal(t, []string{"x", "y"}, bullets.Items())
}

func TestParseAcceptsOutOfRangeNumbers(t *testing.T) {
	result, err := Parse(`{"title":"T","weight":1e400}`)
	require.NoError(t, err)

	weight, _ := result.Get("weight")
	assert.Equal(t, "1e400", weight.Text())
	assert.False(t, weight.IsZero())
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"prose", "Sure! Here is your copy."},
		{"empty", ""},
		{"empty fence", "```json\n```"},
		{"truncated", "```json\n{\"title\": \"T\""},
		{"array", `["title"]`},
		{"two objects", `{"a":1}{"b":2}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.raw)
			require.Error(t, err)

			var pe *ParseError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, tt.raw, pe.Raw)
			assert.True(t, errors.Is(err, ErrInvalidJSON))
			assert.Equal(t, apperrors.CodeParse, apperrors.CodeOf(err))
			assert.True(t, strings.HasPrefix(err.Error(), "LLM did not return valid JSON"))
		})
	}
}

func TestConformance(t *testing.T) {
	cfg := &schema.ClientConfig{
		Schema: schema.Schema{
			schema.NewField("title", schema.KindScalar),
			schema.NewField("bullets", schema.KindList),
			schema.NewField("specs", schema.KindMapping),
		},
	}

	t.Run("conforming", func(t *testing.T) {
		result, err := Parse(`{"title":"T","bullets":["a"],"specs":{"k":"v"},"extra":1}`)
		require.NoError(t, err)
		warnings, err := Conformance(result, cfg)
		require.NoError(t, err)
		assert.Empty(t, warnings)
	})

	t.Run("violations", func(t *testing.T) {
		result, err := Parse(`{"title":"T","bullets":"not a list"}`)
		require.NoError(t, err)
		warnings, err := Conformance(result, cfg)
		require.NoError(t, err)
		require.Len(t, warnings, 2)
		assert.Contains(t, strings.Join(warnings, "\n"), "specs")
		assert.Contains(t, strings.Join(warnings, "\n"), "bullets")
	})

	t.Run("empty schema", func(t *testing.T) {
		warnings, err := Conformance(schema.Result{}, &schema.ClientConfig{})
		require.NoError(t, err)
		assert.Nil(t, warnings)
	})
}
