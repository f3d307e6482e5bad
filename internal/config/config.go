// Package config loads the CLI configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/ambiyansyah-risyal/dragonball"
)

// Config is the on-disk CLI configuration. Flags override every field.
type Config struct {
	Host        string `yaml:"host"`
	Username    string `yaml:"username"`
	Password    string `yaml:"password"`
	MetricsAddr string `yaml:"metrics_addr"`
	LogLevel    string `yaml:"log_level"`
	Insecure    bool   `yaml:"insecure"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Host:     dragonball.DefaultHost,
		LogLevel: "info",
	}
}

// Load reads path on top of Default. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("reading config %q: %w", path, err)
	}

	if err := Parse(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %q: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML into cfg, keeping fields the document leaves out.
func Parse(data []byte, cfg *Config) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return err
	}
	return cfg.Validate()
}

// Validate checks the values a client cannot start without.
func (c Config) Validate() error {
	var problems []string
	if strings.TrimSpace(c.Host) == "" {
		problems = append(problems, "host cannot be empty")
	}
	switch c.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		problems = append(problems, fmt.Sprintf("unknown log level %q", c.LogLevel))
	}
	if len(problems) > 0 {
		return &dragonball.ConfigError{Problems: problems}
	}
	return nil
}

// Merge returns c with every non-empty field of override applied.
func (c Config) Merge(override Config) Config {
	if override.Host != "" {
		c.Host = override.Host
	}
	if override.Username != "" {
		c.Username = override.Username
	}
	if override.Password != "" {
		c.Password = override.Password
	}
	if override.MetricsAddr != "" {
		c.MetricsAddr = override.MetricsAddr
	}
	if override.LogLevel != "" {
		c.LogLevel = override.LogLevel
	}
	if override.Insecure {
		c.Insecure = true
	}
	return c
}
