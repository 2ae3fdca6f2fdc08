// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides unified configuration loading for sahayak.
//
// Configuration comes from TOML with sensible defaults and environment
// variable overrides, in order of precedence:
//   - SAHAYAK_* environment variables
//   - ~/.sahayak/config.toml
//   - Built-in defaults
package config

import (
	"bytes"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"

	"github.com/krishisetu/sahayak-tui/internal/locale"
	"github.com/krishisetu/sahayak-tui/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete sahayak configuration.
type Config struct {
	Service ServiceConfig `toml:"service"`
	Geo     GeoConfig     `toml:"geo"`
	Audio   AudioConfig   `toml:"audio"`
	UI      UIConfig      `toml:"ui"`
}

// ServiceConfig locates the assistant backend.
type ServiceConfig struct {
	// BaseURL is the root URL of the assistant service.
	BaseURL string `toml:"base_url" env:"SAHAYAK_SERVICE_URL"`
	// TimeoutSecs bounds each request to the service.
	TimeoutSecs int `toml:"timeout_secs" env:"SAHAYAK_SERVICE_TIMEOUT_SECS"`
}

// GeoConfig locates the geolocation source for location sharing.
type GeoConfig struct {
	// Endpoint is an HTTP endpoint returning coordinates as JSON.
	Endpoint string `toml:"endpoint" env:"SAHAYAK_GEO_ENDPOINT"`
	// TimeoutSecs bounds the position lookup.
	TimeoutSecs int `toml:"timeout_secs" env:"SAHAYAK_GEO_TIMEOUT_SECS"`
}

// AudioConfig names the external recorder and player commands. The tokens
// {output} and {url} in the argument lists are replaced at run time.
type AudioConfig struct {
	RecordCommand []string `toml:"record_command" env:"SAHAYAK_RECORD_COMMAND" envSeparator:" "`
	PlayCommand   []string `toml:"play_command" env:"SAHAYAK_PLAY_COMMAND" envSeparator:" "`
}

// UIConfig contains presentation settings.
type UIConfig struct {
	// Language is the conversation language code, e.g. "hi".
	Language string `toml:"language" env:"SAHAYAK_LANGUAGE"`
	// Theme selects the color theme: "dark" or "light".
	Theme string `toml:"theme" env:"SAHAYAK_THEME"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Service: ServiceConfig{
			BaseURL:     "http://127.0.0.1:8000",
			TimeoutSecs: 60,
		},
		Geo: GeoConfig{
			Endpoint:    "http://ip-api.com/json",
			TimeoutSecs: 10,
		},
		UI: UIConfig{
			Language: string(locale.Default),
			Theme:    "dark",
		},
	}
}

// =============================================================================
// PATHS
// =============================================================================

// ConfigDir returns the sahayak config directory.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".sahayak"), nil
}

// ConfigPath returns the path to the TOML config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the config file, falling back to defaults
// when no file exists. Environment overrides are applied last, and the
// result is always validated.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	if _, statErr := os.Stat(path); statErr != nil {
		cfg := Default()
		if err := cfg.ApplyEnvOverrides(); err != nil {
			return nil, err
		}
		cfg.fillDefaults()
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("invalid config: %w", err)
		}
		return cfg, nil
	}
	return LoadFromPath(path)
}

// LoadFromPath loads configuration from a specific TOML file with env
// overrides and full validation.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode TOML file: %w", err)
	}
	if err := cfg.ApplyEnvOverrides(); err != nil {
		return nil, err
	}
	cfg.fillDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// ApplyEnvOverrides overlays SAHAYAK_* environment variables onto c.
func (c *Config) ApplyEnvOverrides() error {
	if err := env.Parse(c); err != nil {
		return fmt.Errorf("failed to apply environment overrides: %w", err)
	}
	return nil
}

// fillDefaults backfills zero values a partial config file left unset.
func (c *Config) fillDefaults() {
	def := Default()
	if c.Service.BaseURL == "" {
		c.Service.BaseURL = def.Service.BaseURL
	}
	if c.Service.TimeoutSecs == 0 {
		c.Service.TimeoutSecs = def.Service.TimeoutSecs
	}
	if c.Geo.Endpoint == "" {
		c.Geo.Endpoint = def.Geo.Endpoint
	}
	if c.Geo.TimeoutSecs == 0 {
		c.Geo.TimeoutSecs = def.Geo.TimeoutSecs
	}
	if c.UI.Language == "" {
		c.UI.Language = def.UI.Language
	}
	if c.UI.Theme == "" {
		c.UI.Theme = def.UI.Theme
	}
}

// Save writes cfg to the config file as TOML, creating the directory if
// needed.
func Save(cfg *Config) error {
	if err := EnsureConfigDir(); err != nil {
		return err
	}
	path, err := ConfigPath()
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return util.AtomicWriteFile(path, buf.Bytes(), 0600)
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError describes a single invalid field.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors aggregates all validation failures for one config.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	msgs := make([]string, len(e))
	for i, v := range e {
		msgs[i] = v.Error()
	}
	return strings.Join(msgs, "; ")
}

// Validate checks c for values the application cannot run with.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if u, err := url.Parse(c.Service.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, ValidationError{"service.base_url", fmt.Sprintf("not a valid URL: %q", c.Service.BaseURL)})
	}
	if c.Service.TimeoutSecs < 1 {
		errs = append(errs, ValidationError{"service.timeout_secs", "must be at least 1"})
	}
	if u, err := url.Parse(c.Geo.Endpoint); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, ValidationError{"geo.endpoint", fmt.Sprintf("not a valid URL: %q", c.Geo.Endpoint)})
	}
	if c.Geo.TimeoutSecs < 1 {
		errs = append(errs, ValidationError{"geo.timeout_secs", "must be at least 1"})
	}
	if _, ok := locale.Parse(c.UI.Language); !ok {
		errs = append(errs, ValidationError{"ui.language", fmt.Sprintf("unsupported language %q", c.UI.Language)})
	}
	if c.UI.Theme != "dark" && c.UI.Theme != "light" {
		errs = append(errs, ValidationError{"ui.theme", fmt.Sprintf("must be \"dark\" or \"light\", got %q", c.UI.Theme)})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Language returns the parsed conversation language. Validate has already
// rejected unparseable values.
func (c *Config) Language() locale.Language {
	lang, ok := locale.Parse(c.UI.Language)
	if !ok {
		return locale.Default
	}
	return lang
}
