// Package config loads swiftreduce's YAML configuration: the subject
// binaries, optional plugins, optional reproducer predicate, scratch
// directory root, and logging/cache settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all swiftreduce configuration.
type Config struct {
	// Subject describes the binaries under reduction.
	Subject SubjectConfig `yaml:"subject"`

	// ScratchRoot is the parent directory under which the Oracle creates
	// its per-instance scratch directories. Defaults to os.TempDir().
	ScratchRoot string `yaml:"scratch_root"`

	// Logging configures the per-category file logs and audit trail.
	Logging LoggingConfig `yaml:"logging"`

	// Cache configures the session-history SQLite database.
	Cache CacheConfig `yaml:"cache"`
}

// SubjectConfig names the binaries and plugins the Oracle spawns.
type SubjectConfig struct {
	// SourcekitdPath is the path to the sourcekitd shared library consumed
	// by the in-tree language-service helper. Required for sourcekitd-mode
	// reduction; unused in front-end mode.
	SourcekitdPath string `yaml:"sourcekitd_path"`

	// FrontendPath is the path to the swift-frontend binary. Required for
	// front-end-mode reduction; unused in sourcekitd mode.
	FrontendPath string `yaml:"frontend_path"`

	// HelperPath is the path to the in-tree sourcekitd helper binary (see
	// spec.md §6, "Oracle helper command line").
	HelperPath string `yaml:"helper_path"`

	// PluginPath and ClientPluginPath must both be set or both empty.
	PluginPath       string `yaml:"plugin_path"`
	ClientPluginPath string `yaml:"client_plugin_path"`

	// Predicate is a reproducer-predicate expression (internal/predicate
	// syntax). Empty means "use the default verdict rule".
	Predicate string `yaml:"predicate"`

	// Timeout bounds a whole `swiftreduce reduce` run, all oracle
	// invocations included. The core itself imposes no timeout; this is
	// the caller-supplied outer timeout. Zero means no timeout.
	Timeout time.Duration `yaml:"timeout"`
}

// LoggingConfig configures swiftreduce's structured logging.
type LoggingConfig struct {
	Level      string          `yaml:"level"`       // debug, info, warn, error
	DebugMode  bool            `yaml:"debug_mode"`  // master toggle; false = no file logs
	JSONFormat bool            `yaml:"json_format"` // structured JSON lines instead of text
	Categories map[string]bool `yaml:"categories"`  // per-category override
}

// CacheConfig configures the session-history store.
type CacheConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// DefaultConfig returns a fully populated, ready-to-use configuration.
func DefaultConfig() *Config {
	return &Config{
		Subject: SubjectConfig{
			Timeout: 10 * time.Minute,
		},
		ScratchRoot: os.TempDir(),
		Logging: LoggingConfig{
			Level:      "info",
			DebugMode:  false,
			JSONFormat: false,
		},
		Cache: CacheConfig{
			Enabled: true,
			Path:    filepath.Join(defaultStateDir(), "history.db"),
		},
	}
}

func defaultStateDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".swiftreduce")
	}
	return ".swiftreduce"
}

// Load reads configuration from a YAML file, falling back to defaults (with
// environment overrides applied) when the file does not exist.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		cfg.applyEnvOverrides()
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes configuration to a YAML file, creating parent directories as
// needed.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides applies SWIFTREDUCE_-prefixed environment overrides.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("SWIFTREDUCE_SOURCEKITD_PATH"); v != "" {
		c.Subject.SourcekitdPath = v
	}
	if v := os.Getenv("SWIFTREDUCE_FRONTEND_PATH"); v != "" {
		c.Subject.FrontendPath = v
	}
	if v := os.Getenv("SWIFTREDUCE_HELPER_PATH"); v != "" {
		c.Subject.HelperPath = v
	}
	if v := os.Getenv("SWIFTREDUCE_PREDICATE"); v != "" {
		c.Subject.Predicate = v
	}
	if v := os.Getenv("SWIFTREDUCE_SCRATCH_ROOT"); v != "" {
		c.ScratchRoot = v
	}
	if v := os.Getenv("SWIFTREDUCE_DEBUG"); v == "1" || v == "true" {
		c.Logging.DebugMode = true
	}
}

// ValidForFrontend reports whether enough subject configuration is present
// to run the front-end (compiler-only) reduction path.
func (c *Config) ValidForFrontend() bool {
	return c.Subject.FrontendPath != ""
}

// ValidForSourcekitd reports whether enough subject configuration is
// present to run the language-service reduction path.
func (c *Config) ValidForSourcekitd() bool {
	return c.Subject.SourcekitdPath != "" && c.Subject.HelperPath != ""
}
