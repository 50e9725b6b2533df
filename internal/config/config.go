// FormFlow - Terminal Registration Wizard
// Copyright (C) 2026 FormFlow Labs
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package config holds the formflow configuration (config.yaml) and paths.
package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level formflow configuration (config.yaml).
type Config struct {
	Version int `yaml:"version"`
	// Endpoint is the registration submission URL.
	Endpoint string `yaml:"endpoint"`
	// SubmitTimeoutSeconds bounds a single submission attempt.
	SubmitTimeoutSeconds int         `yaml:"submit_timeout_seconds"`
	Serve                ServeConfig `yaml:"serve"`
	// DraftDir overrides the default draft store location.
	DraftDir string `yaml:"draft_dir,omitempty"`
}

// ServeConfig configures the bundled reference endpoint.
type ServeConfig struct {
	Addr string `yaml:"addr"`
	// DelayMS simulates backend processing time per accepted record.
	DelayMS int `yaml:"delay_ms,omitempty"`
}

// DefaultConfig returns the configuration used when no config.yaml exists.
func DefaultConfig() *Config {
	return &Config{
		Version:              1,
		Endpoint:             "http://localhost:8080/api/submit",
		SubmitTimeoutSeconds: 30,
		Serve: ServeConfig{
			Addr:    ":8080",
			DelayMS: 1000,
		},
	}
}

// SubmitTimeout returns the submission timeout as a duration.
func (c *Config) SubmitTimeout() time.Duration {
	if c.SubmitTimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.SubmitTimeoutSeconds) * time.Second
}

// DraftPath returns the draft store directory, honoring the override.
func (c *Config) DraftPath() string {
	if c.DraftDir != "" {
		return c.DraftDir
	}
	return DraftDir()
}

// ServeDelay returns the simulated processing delay as a duration.
func (c *Config) ServeDelay() time.Duration {
	if c.Serve.DelayMS <= 0 {
		return 0
	}
	return time.Duration(c.Serve.DelayMS) * time.Millisecond
}

// LoadConfig reads and parses config.yaml.
func LoadConfig() (*Config, error) {
	return LoadConfigFrom(ConfigFile())
}

// LoadConfigFrom reads config from a specific path.
func LoadConfigFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SaveConfig writes config to config.yaml.
func SaveConfig(cfg *Config) error {
	return SaveConfigTo(cfg, ConfigFile())
}

// SaveConfigTo writes config to a specific path.
func SaveConfigTo(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadOrDefault loads config or returns defaults if the file doesn't exist.
func LoadOrDefault() *Config {
	cfg, err := LoadConfig()
	if err != nil {
		return DefaultConfig()
	}
	return cfg
}

// ConfigExists returns true if config.yaml exists.
func ConfigExists() bool {
	_, err := os.Stat(ConfigFile())
	return err == nil
}

// WriteDefaults writes the default config if none exists.
func WriteDefaults() error {
	if ConfigExists() {
		return nil
	}
	return SaveConfig(DefaultConfig())
}

// EnsureDirs creates the formflow directory structure if it doesn't exist.
func EnsureDirs() {
	for _, d := range []string{Home, Data, DraftDir()} {
		os.MkdirAll(d, 0755)
	}
}
