// Package config loads the daemon's runtime settings from a YAML file,
// following the teacher's "zero-value if missing" convention: a
// missing file is not an error, callers just get defaults.
package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds knnd's tunables. Zero values fall back to the package
// defaults through the Pool, AcceptTimeoutDuration and Level accessors.
type Config struct {
	BindIP   string `yaml:"bind_ip,omitempty"`
	BindPort int    `yaml:"bind_port,omitempty"`

	PoolSize      int    `yaml:"pool_size,omitempty"`
	AcceptTimeout string `yaml:"accept_timeout,omitempty"`

	SharedTrainPath string `yaml:"shared_train_path,omitempty"`

	LogLevel string `yaml:"log_level,omitempty"`
	LogFile  string `yaml:"log_file,omitempty"`
}

const (
	DefaultPoolSize      = 50
	DefaultAcceptTimeout = 5 * time.Minute
	DefaultLogLevel      = "info"
)

// Load reads path as YAML. A missing file returns a zero-value Config
// and no error, matching the rest of the daemon's config handling.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// AcceptTimeoutDuration parses AcceptTimeout, falling back to
// DefaultAcceptTimeout when it is empty or unparsable.
func (c *Config) AcceptTimeoutDuration() time.Duration {
	if c.AcceptTimeout == "" {
		return DefaultAcceptTimeout
	}
	d, err := time.ParseDuration(c.AcceptTimeout)
	if err != nil {
		return DefaultAcceptTimeout
	}
	return d
}

// Pool returns PoolSize, falling back to DefaultPoolSize when unset.
func (c *Config) Pool() int {
	if c.PoolSize <= 0 {
		return DefaultPoolSize
	}
	return c.PoolSize
}

// Level returns LogLevel, falling back to DefaultLogLevel when unset.
func (c *Config) Level() string {
	if c.LogLevel == "" {
		return DefaultLogLevel
	}
	return c.LogLevel
}
