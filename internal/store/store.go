// Package store reads and writes the per-client files under the data
// directory: config/<client>.json (or .yaml/.yml) and
// examples/<client>_examples.json.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sant0-9/copysmith/internal/apperrors"
	"github.com/sant0-9/copysmith/internal/logger"
	"github.com/sant0-9/copysmith/internal/schema"
)

// ErrConfigNotFound matches every missing-config error under errors.Is.
var ErrConfigNotFound = apperrors.New(apperrors.CodeConfigNotFound, "config not found")

var configExts = []string{".json", ".yaml", ".yml"}

// ConfigStore loads client configurations from <dataDir>/config.
type ConfigStore struct {
	dir       string
	alignMode schema.AlignMode
}

func NewConfigStore(dataDir string) *ConfigStore {
	return &ConfigStore{dir: filepath.Join(dataDir, "config")}
}

// SetAlignMode validates every config under mode instead of its own align
// mode. The files themselves are left as written.
func (s *ConfigStore) SetAlignMode(mode schema.AlignMode) {
	s.alignMode = mode
}

func (s *ConfigStore) Dir() string {
	return s.dir
}

// path returns the first existing config file for client.
func (s *ConfigStore) path(client string) (string, bool) {
	base := filepath.Join(s.dir, strings.ToLower(client))
	for _, ext := range configExts {
		if _, err := os.Stat(base + ext); err == nil {
			return base + ext, true
		}
	}
	return "", false
}

// LoadClientConfig reads and validates the config of client. A client
// without a file fails with ErrConfigNotFound.
func (s *ConfigStore) LoadClientConfig(client string) (*schema.ClientConfig, error) {
	path, ok := s.path(client)
	if !ok {
		return nil, apperrors.NewConfigNotFoundError(client, filepath.Join(s.dir, strings.ToLower(client)+".{json,yaml,yml}"))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg schema.ClientConfig
	if filepath.Ext(path) == ".json" {
		err = json.Unmarshal(data, &cfg)
	} else {
		err = yaml.Unmarshal(data, &cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if cfg.ClientName == "" {
		cfg.ClientName = client
	}
	if err := cfg.ValidateMode(s.alignMode); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

// SaveClientConfig writes cfg back to its existing file, keeping the file's
// format, or to config/<client>.json for a new client.
func (s *ConfigStore) SaveClientConfig(cfg *schema.ClientConfig) error {
	if err := cfg.ValidateMode(s.alignMode); err != nil {
		return err
	}

	path, ok := s.path(cfg.ClientName)
	if !ok {
		path = filepath.Join(s.dir, strings.ToLower(cfg.ClientName)+".json")
	}

	var (
		data []byte
		err  error
	)
	if filepath.Ext(path) == ".json" {
		data, err = json.MarshalIndent(cfg, "", "  ")
		data = append(data, '\n')
	} else {
		data, err = yaml.Marshal(cfg)
	}
	if err != nil {
		return err
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ExampleStore loads one-shot examples from <dataDir>/examples.
type ExampleStore struct {
	dir string
	log logger.Logger
}

func NewExampleStore(dataDir string, log logger.Logger) *ExampleStore {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &ExampleStore{dir: filepath.Join(dataDir, "examples"), log: log}
}

// LoadClientExamples never fails: a missing file gives no examples, and an
// unreadable or malformed one is logged and skipped.
func (s *ExampleStore) LoadClientExamples(client string) schema.Examples {
	path := filepath.Join(s.dir, strings.ToLower(client)+"_examples.json")

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.log.Warn("cannot read examples", map[string]interface{}{"path": path, "error": err.Error()})
		}
		return schema.Examples{}
	}

	var ex schema.Examples
	if err := json.Unmarshal(data, &ex); err != nil {
		s.log.Warn("ignoring malformed examples", map[string]interface{}{"path": path, "error": err.Error()})
		return schema.Examples{}
	}
	return ex
}
