package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/sant0-9/copysmith/internal/apperrors"
)

// ErrCredentialMissing matches every missing-credential error under errors.Is.
var ErrCredentialMissing = apperrors.New(apperrors.CodeCredentialMissing, "credential missing")

// Credentials holds the API keys resolved once at startup.
type Credentials struct {
	keys    map[string]string
	sources map[string]string
}

// NewCredentials builds credentials from a fixed map, mostly for tests.
func NewCredentials(keys map[string]string) *Credentials {
	c := &Credentials{keys: map[string]string{}, sources: map[string]string{}}
	for k, v := range keys {
		c.keys[k] = v
		c.sources[k] = "static"
	}
	return c
}

// Get returns the value of an environment-style key such as GROQ_API_KEY.
func (c *Credentials) Get(key string) string {
	if c == nil {
		return ""
	}
	return c.keys[key]
}

// Source names where key was found, never its value.
func (c *Credentials) Source(key string) string {
	if c == nil {
		return ""
	}
	return c.sources[key]
}

// For returns the API key of a provider from the catalogue.
func (c *Credentials) For(providerID string) (string, error) {
	p := GetProvider(providerID)
	if p == nil {
		return "", fmt.Errorf("unknown provider: %s", providerID)
	}
	if v := c.Get(p.EnvKey); v != "" {
		return v, nil
	}
	return "", apperrors.NewCredentialMissingError(p.EnvKey, []string{"secrets.toml", "environment", ".env"})
}

// secretsFiles are checked in order; the first that exists is used.
func secretsFiles(dir string) []string {
	return []string{
		filepath.Join(dir, ".streamlit", "secrets.toml"),
		filepath.Join(dir, "secrets.toml"),
	}
}

// CredentialSources describes, in lookup order, where keys are read from.
func CredentialSources(dir string) []string {
	return append(secretsFiles(dir), "environment", filepath.Join(dir, ".env"))
}

// LoadCredentials resolves every key in required, looking in a secrets file
// under dir, then the process environment, then dir/.env. As with dotenv
// loading, a variable already set in the environment wins over .env. A key none of them
// provides is an ErrCredentialMissing error naming it.
func LoadCredentials(dir string, required []string) (*Credentials, error) {
	creds := &Credentials{keys: map[string]string{}, sources: map[string]string{}}

	secrets, secretsPath, err := readSecrets(dir)
	if err != nil {
		return nil, err
	}

	dotenv, err := godotenv.Read(filepath.Join(dir, ".env"))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("read .env: %w", err)
	}

	for _, key := range required {
		switch {
		case secrets != nil && secrets.GetString(key) != "":
			creds.keys[key] = secrets.GetString(key)
			creds.sources[key] = secretsPath
		case os.Getenv(key) != "":
			creds.keys[key] = os.Getenv(key)
			creds.sources[key] = "environment"
		case dotenv[key] != "":
			creds.keys[key] = dotenv[key]
			creds.sources[key] = ".env"
		default:
			return nil, apperrors.NewCredentialMissingError(key, CredentialSources(dir))
		}
	}
	return creds, nil
}

func readSecrets(dir string) (*viper.Viper, string, error) {
	for _, path := range secretsFiles(dir) {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		v := viper.New()
		v.SetConfigFile(path)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return nil, "", fmt.Errorf("read %s: %w", path, err)
		}
		return v, path, nil
	}
	return nil, "", nil
}

// RequiredKeys lists the credential keys the configured tracks need.
func (c *Config) RequiredKeys() []string {
	var keys []string
	seen := map[string]bool{}
	for _, t := range c.Tracks() {
		p := GetProvider(t.Provider)
		if p == nil || seen[p.EnvKey] {
			continue
		}
		seen[p.EnvKey] = true
		keys = append(keys, p.EnvKey)
	}
	return keys
}
