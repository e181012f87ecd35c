package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sant0-9/copysmith/internal/apperrors"
)

func TestLoadFromMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, "groq", cfg.Primary.Provider)
	assert.Equal(t, "openai", cfg.Secondary.Provider)
	assert.Equal(t, 0.7, cfg.Temperature)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
}

func TestLoadFromMergesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
data_dir: /srv/copy
secondary:
  provider: gemini
  model: gemini-2.5-pro
  label: secondary-LLM
timeout: 45s
`), 0600))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "/srv/copy", cfg.DataDir)
	assert.Equal(t, "gemini", cfg.Secondary.Provider)
	assert.Equal(t, "groq", cfg.Primary.Provider)
	assert.Equal(t, 45*time.Second, cfg.Timeout)
	assert.Equal(t, 0.7, cfg.Temperature)
}

func TestLoadFromRejectsInvalid(t *testing.T) {
	tests := map[string]string{
		"unknown provider": "primary:\n  provider: acme\n  label: p\n",
		"bad temperature":  "temperature: 3\n",
		"bad align mode":   "align_mode: sideways\n",
		"zero timeout":     "timeout: 0s\n",
		"missing label":    "primary:\n  provider: groq\n  label: \"\"\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(body), 0600))
			_, err := LoadFrom(path)
			require.Error(t, err)
			assert.Equal(t, apperrors.CodeInvalidConfig, apperrors.CodeOf(err))
		})
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.Secondary.Model = "gpt-4o-mini"
	cfg.Timeout = time.Minute
	require.NoError(t, cfg.SaveTo(path))

	back, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, back)
}

func TestRequiredKeys(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, []string{"GROQ_API_KEY", "OPENAI_API_KEY"}, cfg.RequiredKeys())

	cfg.Secondary.Provider = "groq"
	assert.Equal(t, []string{"GROQ_API_KEY"}, cfg.RequiredKeys())
}

func TestGetProvider(t *testing.T) {
	assert.Equal(t, "GEMINI_API_KEY", GetProvider("gemini").EnvKey)
	assert.Nil(t, GetProvider("anthropic"))
	assert.Equal(t, []string{"groq", "openai", "gemini"}, ProviderIDs())
}

func TestLoadCredentialsOrder(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".streamlit"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".streamlit", "secrets.toml"),
		[]byte("GROQ_API_KEY = \"from-secrets\"\n"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("GROQ_API_KEY=from-dotenv\nOPENAI_API_KEY=from-dotenv\nGEMINI_API_KEY=from-dotenv\n"), 0600))
	t.Setenv("GROQ_API_KEY", "from-env")
	t.Setenv("OPENAI_API_KEY", "from-env")
	t.Setenv("GEMINI_API_KEY", "")

	creds, err := LoadCredentials(dir, []string{"GROQ_API_KEY", "OPENAI_API_KEY", "GEMINI_API_KEY"})
	require.NoError(t, err)

	assert.Equal(t, "from-secrets", creds.Get("GROQ_API_KEY"))
	assert.Equal(t, filepath.Join(dir, ".streamlit", "secrets.toml"), creds.Source("GROQ_API_KEY"))
	assert.Equal(t, "from-env", creds.Get("OPENAI_API_KEY"))
	assert.Equal(t, "environment", creds.Source("OPENAI_API_KEY"))
	assert.Equal(t, "from-dotenv", creds.Get("GEMINI_API_KEY"))
	assert.Equal(t, ".env", creds.Source("GEMINI_API_KEY"))
}

func TestLoadCredentialsPlainSecretsFile(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "secrets.toml"),
		[]byte("OPENAI_API_KEY = \"sk-test\"\n"), 0600))

	creds, err := LoadCredentials(dir, []string{"OPENAI_API_KEY"})
	require.NoError(t, err)
	key, err := creds.For("openai")
	require.NoError(t, err)
	assert.Equal(t, "sk-test", key)
}

func TestLoadCredentialsMissing(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "")

	_, err := LoadCredentials(t.TempDir(), []string{"GROQ_API_KEY"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCredentialMissing))
	assert.Contains(t, err.Error(), "GROQ_API_KEY not set")
}

func TestCredentialsFor(t *testing.T) {
	creds := NewCredentials(map[string]string{"GROQ_API_KEY": "gsk"})

	key, err := creds.For("groq")
	require.NoError(t, err)
	assert.Equal(t, "gsk", key)

	_, err = creds.For("openai")
	assert.True(t, errors.Is(err, ErrCredentialMissing))

	_, err = creds.For("acme")
	assert.Error(t, err)
}
