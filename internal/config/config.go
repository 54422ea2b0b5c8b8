package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.yaml.in/yaml/v3"
)

// Config represents the jjt configuration
type Config struct {
	Version string  `yaml:"version"`
	Jj      Jj      `yaml:"jj,omitempty"`
	Logging Logging `yaml:"logging,omitempty"`
	Push    Push    `yaml:"push,omitempty"`
	Fetch   Fetch   `yaml:"fetch,omitempty"`
	UI      UI      `yaml:"ui,omitempty"`
}

// Jj configures how the jj binary is invoked
type Jj struct {
	Binary string            `yaml:"binary,omitempty"`
	Env    map[string]string `yaml:"env,omitempty"`
}

// Logging configures diagnostic output
type Logging struct {
	Level string `yaml:"level,omitempty"` // trace, debug, info, warn, error, disabled
	File  string `yaml:"file,omitempty"`  // empty logs to stderr
}

// Push holds defaults for jjt push
type Push struct {
	AllowNew bool `yaml:"allow_new,omitempty"`
}

// Fetch holds defaults for jjt fetch
type Fetch struct {
	AllRemotes bool `yaml:"all_remotes,omitempty"`
}

// UI configures the interactive front-end
type UI struct {
	Watch           *bool         `yaml:"watch,omitempty"` // nil = enabled
	RefreshInterval time.Duration `yaml:"refresh_interval,omitempty"`
	HighlightColor  string        `yaml:"highlight_color,omitempty"`
}

const (
	ConfigFileName         = ".jjt.yml"
	CurrentVersion         = "1.0"
	DefaultBinary          = "jj"
	DefaultLogLevel        = "warn"
	DefaultRefreshInterval = 5 * time.Second
	DefaultHighlightColor  = "#3b4261"
	configFilePermissions  = 0o600
)

var validLogLevels = map[string]bool{
	"trace": true, "debug": true, "info": true, "warn": true, "error": true, "disabled": true,
}

// Default returns the configuration used when no file exists
func Default() *Config {
	config := &Config{Version: CurrentVersion}
	_ = config.Validate()
	return config
}

// LoadConfig loads configuration from .jjt.yml in the repository root
func LoadConfig(repoRoot string) (*Config, error) {
	return LoadConfigFile(filepath.Join(repoRoot, ConfigFileName))
}

// LoadConfigFile loads configuration from an explicit path.
// A missing file yields the defaults.
func LoadConfigFile(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return Default(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// SaveConfig saves configuration to .jjt.yml in the repository root
func SaveConfig(repoRoot string, config *Config) error {
	if err := config.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	configPath := filepath.Join(repoRoot, ConfigFileName)

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, configFilePermissions); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate fills in defaults and validates the configuration
func (c *Config) Validate() error {
	if c.Version == "" {
		c.Version = CurrentVersion
	}
	if c.Jj.Binary == "" {
		c.Jj.Binary = DefaultBinary
	}
	if c.Logging.Level == "" {
		c.Logging.Level = DefaultLogLevel
	}
	if c.UI.HighlightColor == "" {
		c.UI.HighlightColor = DefaultHighlightColor
	}
	if c.UI.RefreshInterval == 0 {
		c.UI.RefreshInterval = DefaultRefreshInterval
	}

	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("unknown log level '%s'", c.Logging.Level)
	}
	if c.UI.RefreshInterval < 0 {
		return fmt.Errorf("ui.refresh_interval must be positive, got %s", c.UI.RefreshInterval)
	}

	return nil
}

// Environ returns jj.env as KEY=VALUE entries for the subprocess environment
func (c *Config) Environ() []string {
	if len(c.Jj.Env) == 0 {
		return nil
	}

	env := make([]string, 0, len(c.Jj.Env))
	for key, value := range c.Jj.Env {
		env = append(env, key+"="+value)
	}
	return env
}

// ShouldWatch returns whether the UI refreshes on repository changes
func (c *Config) ShouldWatch() bool {
	if c.UI.Watch != nil {
		return *c.UI.Watch
	}
	return true
}
