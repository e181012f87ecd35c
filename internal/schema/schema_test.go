package schema

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/sant0-9/copysmith/internal/apperrors"
)

const acmeJSON = `{
  "client_name": "Acme",
  "schema": {
    "title": "string",
    "subtitle": "string",
    "description": "string",
    "features": {"<key>": "<value>"},
    "highlights": ["string"]
  },
  "sections": ["Description", "Features", "Highlights"],
  "limits": {"title": 8, "subtitle": 0, "description": 60, "highlights": 4},
  "instructions": {"description": "Keep it under {limits[description]} words."},
  "brand_description": "Acme makes tools."
}`

func TestClientConfigUnmarshalJSONKeepsOrder(t *testing.T) {
	var cfg ClientConfig
	require.NoError(t, json.Unmarshal([]byte(acmeJSON), &cfg))

	assert.Equal(t, "Acme", cfg.ClientName)
	if diff := cmp.Diff([]string{"title", "subtitle", "description", "features", "highlights"}, cfg.Schema.Keys()); diff != "" {
		t.Errorf("schema keys mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"title", "subtitle", "description", "highlights"}, cfg.Limits.Keys()); diff != "" {
		t.Errorf("limit keys mismatch (-want +got):\n%s", diff)
	}

	kinds := map[string]Kind{}
	for _, f := range cfg.Schema {
		kinds[f.Key] = f.Kind
	}
	assert.Equal(t, KindScalar, kinds["title"])
	assert.Equal(t, KindMapping, kinds["features"])
	assert.Equal(t, KindList, kinds["highlights"])

	n, ok := cfg.Limit("subtitle")
	assert.True(t, ok)
	assert.Equal(t, 0, n)
	_, ok = cfg.Limit("features")
	assert.False(t, ok)
	assert.Equal(t, "Keep it under {limits[description]} words.", cfg.Instruction("description"))
	assert.Empty(t, cfg.Instruction("title"))
}

func TestClientConfigUnmarshalYAMLKeepsOrder(t *testing.T) {
	src := `
client_name: Acme
schema:
  title: string
  bullets: list
  specs:
    "<key>": "<value>"
sections: [Bullets, Specs]
limits:
  title: 5
  bullets: 3
`
	var cfg ClientConfig
	require.NoError(t, yaml.Unmarshal([]byte(src), &cfg))

	assert.Equal(t, []string{"title", "bullets", "specs"}, cfg.Schema.Keys())
	assert.Equal(t, KindList, cfg.Schema[1].Kind)
	assert.Equal(t, KindMapping, cfg.Schema[2].Kind)
	assert.JSONEq(t, `{"<key>":"<value>"}`, string(cfg.Schema[2].Shape))
	assert.Equal(t, []string{"title", "bullets"}, cfg.Limits.Keys())
	require.NoError(t, cfg.Validate())
}

func TestSchemaMarshalRoundTrip(t *testing.T) {
	var cfg ClientConfig
	require.NoError(t, json.Unmarshal([]byte(acmeJSON), &cfg))

	var back Schema
	require.NoError(t, json.Unmarshal([]byte(cfg.Schema.IndentedJSON()), &back))
	if diff := cmp.Diff(cfg.Schema, back); diff != "" {
		t.Errorf("schema round trip mismatch (-want +got):\n%s", diff)
	}
	assert.Contains(t, cfg.Schema.IndentedJSON(), "\n  \"title\": \"string\"")
}

func TestLayout(t *testing.T) {
	base := func(sections ...string) *ClientConfig {
		return &ClientConfig{
			Schema: Schema{
				NewField("title", KindScalar),
				NewField("description", KindScalar),
				NewField("features", KindMapping),
			},
			Sections: sections,
		}
	}

	tests := []struct {
		name    string
		cfg     *ClientConfig
		mode    AlignMode
		want    []Slot
		wantErr bool
	}{
		{
			name: "aligned",
			cfg:  base("Description", "Features"),
			want: []Slot{{Key: "description", Section: "Description"}, {Key: "features", Section: "Features"}},
		},
		{
			name:    "short sections fail by default",
			cfg:     base("Description"),
			wantErr: true,
		},
		{
			name: "truncate keeps the prefix",
			cfg:  base("Description"),
			mode: AlignTruncate,
			want: []Slot{{Key: "description", Section: "Description"}},
		},
		{
			name: "truncate drops extra sections",
			cfg:  base("Description", "Features", "Extra"),
			mode: AlignTruncate,
			want: []Slot{{Key: "description", Section: "Description"}, {Key: "features", Section: "Features"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.cfg.Layout(tt.mode)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, apperrors.CodeAlignment, apperrors.CodeOf(err))
				return
			}
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Layout() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLayoutUsesConfigMode(t *testing.T) {
	cfg := &ClientConfig{
		Schema:    Schema{NewField("title", KindScalar), NewField("a", KindScalar), NewField("b", KindScalar)},
		Sections:  []string{"A"},
		AlignMode: AlignTruncate,
	}
	slots, err := cfg.Layout("")
	require.NoError(t, err)
	assert.Len(t, slots, 1)

	_, err = cfg.Layout(AlignValidate)
	assert.Error(t, err)
}

func TestSetLimit(t *testing.T) {
	cfg := &ClientConfig{Schema: Schema{NewField("title", KindScalar)}}

	assert.Error(t, cfg.SetLimit("title", 0))
	assert.Error(t, cfg.SetLimit("description", -1))
	require.NoError(t, cfg.SetLimit("subtitle", 0))
	require.NoError(t, cfg.SetLimit("title", 6))
	require.NoError(t, cfg.SetLimit("title", 7))

	assert.Equal(t, []string{"subtitle", "title"}, cfg.Limits.Keys())
	n, _ := cfg.Limit("title")
	assert.Equal(t, 7, n)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  ClientConfig
		code apperrors.ErrorCode
	}{
		{
			name: "empty schema",
			cfg:  ClientConfig{ClientName: "x"},
			code: apperrors.CodeInvalidConfig,
		},
		{
			name: "zero title limit",
			cfg: ClientConfig{
				Schema: Schema{NewField("title", KindScalar)},
				Limits: Limits{{Key: "title", Value: 0}},
			},
			code: apperrors.CodeInvalidConfig,
		},
		{
			name: "unknown align mode",
			cfg: ClientConfig{
				Schema:    Schema{NewField("title", KindScalar)},
				AlignMode: "sideways",
			},
			code: apperrors.CodeInvalidConfig,
		},
		{
			name: "misaligned",
			cfg: ClientConfig{
				Schema: Schema{NewField("title", KindScalar), NewField("body", KindScalar)},
			},
			code: apperrors.CodeAlignment,
		},
		{
			name: "ok",
			cfg: ClientConfig{
				Schema:   Schema{NewField("title", KindScalar), NewField("body", KindScalar)},
				Sections: []string{"Body"},
				Limits:   Limits{{Key: "title", Value: 1}, {Key: "body", Value: 0}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.code == "" {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tt.code, apperrors.CodeOf(err))
		})
	}
}

func TestValidateModeOverridesConfig(t *testing.T) {
	cfg := &ClientConfig{
		Schema:   Schema{NewField("title", KindScalar), NewField("a", KindScalar), NewField("b", KindScalar)},
		Sections: []string{"A"},
	}
	assert.Equal(t, apperrors.CodeAlignment, apperrors.CodeOf(cfg.Validate()))
	assert.NoError(t, cfg.ValidateMode(AlignTruncate))

	cfg.AlignMode = AlignTruncate
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, apperrors.CodeAlignment, apperrors.CodeOf(cfg.ValidateMode(AlignValidate)))
}

func TestClone(t *testing.T) {
	var cfg ClientConfig
	require.NoError(t, json.Unmarshal([]byte(acmeJSON), &cfg))

	cp := cfg.Clone()
	require.NoError(t, cp.SetLimit("title", 3))
	cp.Sections[0] = "Changed"

	n, _ := cfg.Limit("title")
	assert.Equal(t, 8, n)
	assert.Equal(t, "Description", cfg.Sections[0])
}

func TestParseAlignMode(t *testing.T) {
	for in, want := range map[string]AlignMode{
		"":          "",
		"validate":  AlignValidate,
		" TRUNCATE": AlignTruncate,
	} {
		got, err := ParseAlignMode(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := ParseAlignMode("zip")
	assert.Error(t, err)
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		shape string
		want  Kind
	}{
		{`"string"`, KindScalar},
		{`"text"`, KindScalar},
		{`"List"`, KindList},
		{`"mapping"`, KindMapping},
		{`"object"`, KindMapping},
		{`["string"]`, KindList},
		{`{"<key>":"<value>"}`, KindMapping},
		{`null`, KindUnknown},
		{`12`, KindScalar},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, kindOf(json.RawMessage(tt.shape)), tt.shape)
	}
}

func TestExamplesLookup(t *testing.T) {
	var ex Examples
	require.NoError(t, json.Unmarshal([]byte(`{
		"Shoes": {"title": "folded"},
		"shoes": {"title": "exact"},
		"Hats": {"title": "hat"}
	}`), &ex))

	got, ok := ex.Lookup("shoes")
	require.True(t, ok)
	assert.JSONEq(t, `{"title":"exact"}`, string(got))

	got, ok = ex.Lookup("HATS")
	require.True(t, ok)
	assert.JSONEq(t, `{"title":"hat"}`, string(got))

	_, ok = ex.Lookup("gloves")
	assert.False(t, ok)
}
