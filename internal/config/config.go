// Package config loads the YAML configuration with environment expansion.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"
)

// Storage backends.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// DefaultNamespace is the dataset name used when none is configured.
// Changing it starts from an empty list.
const DefaultNamespace = "matters"

var namespacePattern = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// Config represents the application configuration.
type Config struct {
	App     AppConfig     `yaml:"app"`
	Storage StorageConfig `yaml:"storage"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return fmt.Errorf("app: %w", err)
	}
	if err := c.Storage.Validate(); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	return nil
}

// AppConfig holds presentation and logging settings.
type AppConfig struct {
	LogLevel      slog.Level `yaml:"log_level"`
	Theme         string     `yaml:"theme"`
	MarkdownStyle string     `yaml:"markdown_style"`
}

// Validate validates the application configuration.
func (c *AppConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Theme, validation.In("classic", "neon", "mono")),
		validation.Field(&c.MarkdownStyle, validation.In("dark", "light", "notty", "ascii", "dracula", "pink", "tokyo-night")),
	)
}

// StorageConfig selects where matters are persisted.
type StorageConfig struct {
	Backend   string `yaml:"backend"`
	Dir       string `yaml:"dir"`
	Namespace string `yaml:"namespace"`
}

// Validate validates the storage configuration.
func (c *StorageConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Backend, validation.Required, validation.In(BackendJSON, BackendSQLite)),
		validation.Field(&c.Dir, validation.Required),
		validation.Field(&c.Namespace, validation.Required, validation.Match(namespacePattern)),
	)
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: AppConfig{
			LogLevel:      slog.LevelInfo,
			Theme:         "classic",
			MarkdownStyle: "dark",
		},
		Storage: StorageConfig{
			Backend:   BackendJSON,
			Dir:       defaultDataDir(),
			Namespace: DefaultNamespace,
		},
	}
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".matters"
	}
	return filepath.Join(home, ".matters")
}

// Load reads filename into target and validates the result.
func Load(filename string, target *Config) error {
	if err := Read(filename, target); err != nil {
		return err
	}
	if err := target.Validate(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

// Read merges filename into target, expanding ${VAR} references first.
// A missing file leaves target untouched. Nothing is validated, so callers
// can apply overrides before calling Validate.
func Read(filename string, target *Config) error {
	data, err := os.ReadFile(filename)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return nil
	case err != nil:
		return fmt.Errorf("failed to read config file %s: %w", filename, err)
	}
	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), target); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", filename, err)
	}
	return nil
}
