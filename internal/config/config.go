package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sant0-9/copysmith/internal/apperrors"
	"github.com/sant0-9/copysmith/internal/schema"
)

const (
	PrimaryLabel   = "primary-LLM"
	SecondaryLabel = "secondary-LLM"
)

type Config struct {
	DataDir     string        `yaml:"data_dir"`
	Primary     Track         `yaml:"primary"`
	Secondary   Track         `yaml:"secondary"`
	Temperature float64       `yaml:"temperature"`
	Timeout     time.Duration `yaml:"timeout"`
	Log         LogConfig     `yaml:"log"`

	// AlignMode, when set, overrides the align mode of every client config.
	AlignMode string `yaml:"align_mode,omitempty"`
}

// Track is one generation backend: the provider, its model and the label
// shown to the user.
type Track struct {
	Provider string `yaml:"provider"`
	Model    string `yaml:"model,omitempty"`
	Label    string `yaml:"label"`
	BaseURL  string `yaml:"base_url,omitempty"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		DataDir: ".",
		Primary: Track{
			Provider: "groq",
			Model:    "llama-3.3-70b-versatile",
			Label:    PrimaryLabel,
		},
		Secondary: Track{
			Provider: "openai",
			Model:    "gpt-4o",
			Label:    SecondaryLabel,
		},
		Temperature: 0.7,
		Timeout:     30 * time.Second,
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "copysmith"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// LogPath is where the terminal UI writes its log.
func LogPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "copysmith.log"), nil
}

func Exists() bool {
	path, err := ConfigPath()
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

// Load reads the settings file at the default path.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads settings from path. Fields the file leaves out keep their
// defaults, and a missing file yields DefaultConfig.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks provider IDs, labels and ranges.
func (c *Config) Validate() error {
	for name, t := range map[string]Track{"primary": c.Primary, "secondary": c.Secondary} {
		if GetProvider(t.Provider) == nil {
			return apperrors.NewInvalidConfigError(fmt.Sprintf("%s provider %q is not one of %v", name, t.Provider, ProviderIDs()))
		}
		if t.Label == "" {
			return apperrors.NewInvalidConfigError(fmt.Sprintf("%s track needs a label", name))
		}
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return apperrors.NewInvalidConfigError(fmt.Sprintf("temperature %.2f is outside 0..2", c.Temperature))
	}
	if c.Timeout <= 0 {
		return apperrors.NewInvalidConfigError("timeout must be positive")
	}
	if _, err := schema.ParseAlignMode(c.AlignMode); err != nil {
		return err
	}
	return nil
}

// Tracks returns both tracks, primary first.
func (c *Config) Tracks() []Track {
	return []Track{c.Primary, c.Secondary}
}

func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}
