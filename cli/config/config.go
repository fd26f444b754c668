// Package config handles CLI configuration loading.
package config

import (
	"os"
	"path/filepath"
	"runtime"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the CLI configuration.
type Config struct {
	// BaseURL overrides the service endpoint.
	BaseURL string `yaml:"base_url,omitempty"`
	// TimeoutSeconds bounds each request attempt.
	TimeoutSeconds int `yaml:"timeout_seconds,omitempty"`
	// Concurrency is the default batch fan-out width.
	Concurrency int `yaml:"concurrency,omitempty"`
	// APIKeyRef names the keystore entry holding the API key.
	APIKeyRef string `yaml:"api_key_ref,omitempty"`
}

// DefaultConfigPath returns the default configuration file path for the current platform.
// - macOS/Linux: ~/.weco/config.yaml
// - Windows: %USERPROFILE%\.weco\config.yaml
func DefaultConfigPath() string {
	var homeDir string

	if runtime.GOOS == "windows" {
		homeDir = os.Getenv("USERPROFILE")
	} else {
		homeDir = os.Getenv("HOME")
	}

	if homeDir == "" {
		return "config.yaml"
	}

	return filepath.Join(homeDir, ".weco", "config.yaml")
}

// LoadConfig loads configuration from the specified path.
// A missing file is not an error; it yields an empty config.
func LoadConfig(path string) (*Config, error) {
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

// Timeout returns the configured attempt timeout, or zero when unset.
func (c *Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}
