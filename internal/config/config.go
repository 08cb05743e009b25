// Package config loads the operator's mirava settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	appName = "mirava"

	// DefaultMaxEntries caps the operation log when the config leaves it unset.
	DefaultMaxEntries = 1000
)

// Config is the on-disk settings file. Every field is optional.
type Config struct {
	Probe ProbeConfig `yaml:"probe,omitempty"`
	Scan  ScanConfig  `yaml:"scan,omitempty"`
	Log   LogConfig   `yaml:"log,omitempty"`
	Oplog OplogConfig `yaml:"oplog,omitempty"`
}

type ProbeConfig struct {
	FFprobeBin string `yaml:"ffprobe_bin,omitempty"`
	// Timeout is a Go duration string, e.g. "10s".
	Timeout string `yaml:"timeout,omitempty"`
}

type ScanConfig struct {
	ExtraExtensions []string `yaml:"extra_extensions,omitempty"`
	SniffContent    *bool    `yaml:"sniff_content,omitempty"`
	SkipHidden      bool     `yaml:"skip_hidden,omitempty"`
	// Exclude lists course-relative directories that are never walked.
	Exclude []string `yaml:"exclude,omitempty"`
}

type LogConfig struct {
	Level string `yaml:"level,omitempty"`
}

type OplogConfig struct {
	MaxEntries int `yaml:"max_entries,omitempty"`
}

// ConfigPath returns the settings file location.
// $MIRAVA_CONFIG wins, then $XDG_CONFIG_HOME/mirava/config.yaml.
func ConfigPath() string {
	if p := strings.TrimSpace(os.Getenv("MIRAVA_CONFIG")); p != "" {
		return p
	}
	return filepath.Join(BaseDir(), "config.yaml")
}

// BaseDir returns the mirava config directory.
func BaseDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", appName)
}

// StateDir returns the directory for operation logs.
func StateDir() string {
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "state", appName)
}

// LogsDir returns the operation log directory under StateDir.
func LogsDir() string {
	return filepath.Join(StateDir(), "logs")
}

// Load reads the config from ConfigPath.
func Load() (*Config, error) {
	return LoadFrom(ConfigPath())
}

// LoadFrom reads the config at path. A missing file yields defaults.
func LoadFrom(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg.applyEnv()
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv("MIRAVA_FFPROBE_BIN")); v != "" {
		c.Probe.FFprobeBin = v
	}
	if v := strings.TrimSpace(os.Getenv("MIRAVA_LOG_LEVEL")); v != "" {
		c.Log.Level = v
	}
}

func (c *Config) validate() error {
	if _, err := c.ProbeTimeout(); err != nil {
		return err
	}
	if c.Oplog.MaxEntries < 0 {
		return fmt.Errorf("oplog.max_entries must not be negative")
	}
	for _, ex := range c.Scan.Exclude {
		if filepath.IsAbs(ex) {
			return fmt.Errorf("scan.exclude entry %q must be relative to the course root", ex)
		}
	}
	return nil
}

// ProbeTimeout parses probe.timeout. Zero means the prober's default.
func (c *Config) ProbeTimeout() (time.Duration, error) {
	raw := strings.TrimSpace(c.Probe.Timeout)
	if raw == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("probe.timeout: %w", err)
	}
	if d < 0 {
		return 0, fmt.Errorf("probe.timeout must not be negative")
	}
	return d, nil
}

// SniffContent reports whether unknown extensions get a content check.
func (c *Config) SniffContent() bool {
	return c.Scan.SniffContent == nil || *c.Scan.SniffContent
}

// MaxLogEntries returns the operation log cap.
func (c *Config) MaxLogEntries() int {
	if c.Oplog.MaxEntries > 0 {
		return c.Oplog.MaxEntries
	}
	return DefaultMaxEntries
}
