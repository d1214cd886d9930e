// Package config holds the presage configuration: where the compiled
// knowledge artifact lives, how long a SAT fallback may run, and how
// the CLI logs. Configuration is YAML with environment overrides, and
// a missing file means defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration is a time.Duration that reads and writes the "250ms" form
// in YAML.
type Duration time.Duration

// UnmarshalYAML decodes either a duration string or a bare number of
// nanoseconds.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err == nil {
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("config: duration %q: %w", s, err)
		}
		*d = Duration(parsed)
		return nil
	}
	var n int64
	if err := value.Decode(&n); err != nil {
		return fmt.Errorf("config: duration: %w", err)
	}
	*d = Duration(n)
	return nil
}

// MarshalYAML encodes the duration string form.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Std returns the standard library value.
func (d Duration) Std() time.Duration { return time.Duration(d) }

func (d Duration) String() string { return time.Duration(d).String() }

// Config holds all presage configuration.
type Config struct {
	// Artifact is the path of the compiled knowledge base. Empty
	// means compile in process on first use.
	Artifact string `yaml:"artifact"`

	// SolveTimeout caps each SAT fallback run. Zero means unbounded.
	SolveTimeout Duration `yaml:"solve_timeout"`

	// Logging configures the CLI logger.
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig configures the zap logger built by the CLI.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	JSON  bool   `yaml:"json"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		SolveTimeout: Duration(5 * time.Second),
		Logging: LoggingConfig{
			Level: "info",
			JSON:  false,
		},
	}
}

// Load reads path over the defaults. A missing file yields the
// defaults; a present but malformed one is an error. PRESAGE_ARTIFACT
// and PRESAGE_SOLVE_TIMEOUT override the file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration as YAML, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: create directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("PRESAGE_ARTIFACT"); v != "" {
		c.Artifact = v
	}
	if v := os.Getenv("PRESAGE_SOLVE_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: PRESAGE_SOLVE_TIMEOUT: %w", err)
		}
		c.SolveTimeout = Duration(d)
	}
	return nil
}

// Validate rejects values the CLI cannot act on.
func (c *Config) Validate() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: invalid log level %q", c.Logging.Level)
	}
	if c.SolveTimeout < 0 {
		return fmt.Errorf("config: negative solve timeout %s", c.SolveTimeout)
	}
	return nil
}
