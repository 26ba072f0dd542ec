// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for datamock.
//
// Configuration comes from three layers, later layers winning:
//   - Built-in defaults
//   - ~/.datamock/config.toml
//   - DATAMOCK_* environment variables
//
// The file can also be watched for changes, so a running TUI picks up edits
// without a restart.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/datamock-tui/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete datamock configuration.
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Storage StorageConfig `toml:"storage"`
	Export  ExportConfig  `toml:"export"`
	UI      UIConfig      `toml:"ui"`
}

// ServerConfig locates the backend.
type ServerConfig struct {
	// BaseURL is the backend root, e.g. "http://127.0.0.1:8000/api".
	BaseURL string `toml:"base_url"`
	// TimeoutSecs bounds non-streaming requests. Streaming requests are
	// bounded only by cancellation.
	TimeoutSecs int `toml:"timeout_secs"`
}

// StorageConfig selects where sessions are persisted.
type StorageConfig struct {
	// Backend is "file" or "sqlite".
	Backend string `toml:"backend"`
	// Dir is the data directory. Empty means ~/.datamock.
	Dir string `toml:"dir"`
}

// ExportConfig controls where exported files land.
type ExportConfig struct {
	// Dir receives exported files. Empty means the current directory.
	Dir string `toml:"dir"`
}

// UIConfig contains presentation settings.
type UIConfig struct {
	// Theme is "dark" or "light".
	Theme string `toml:"theme"`
	// SidebarWidth is the session sidebar width in columns.
	SidebarWidth int `toml:"sidebar_width"`
	// MouseEnabled turns on terminal mouse support.
	MouseEnabled bool `toml:"mouse_enabled"`
}

// Storage backend names accepted in StorageConfig.Backend.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// =============================================================================
// DEFAULTS AND PATHS
// =============================================================================

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			BaseURL:     "http://127.0.0.1:8000/api",
			TimeoutSecs: 30,
		},
		Storage: StorageConfig{
			Backend: BackendFile,
		},
		UI: UIConfig{
			Theme:        "dark",
			SidebarWidth: 32,
			MouseEnabled: true,
		},
	}
}

// Dir returns the datamock configuration directory (~/.datamock).
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".datamock"), nil
}

// Path returns the configuration file path (~/.datamock/config.toml).
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// DataDir resolves the storage directory, honoring the configured override.
func (c *Config) DataDir() (string, error) {
	if c.Storage.Dir != "" {
		return c.Storage.Dir, nil
	}
	return Dir()
}

// ExportDir resolves the export target directory.
func (c *Config) ExportDir() string {
	if c.Export.Dir != "" {
		return c.Export.Dir
	}
	return "."
}

// =============================================================================
// LOADING AND SAVING
// =============================================================================

// Load builds the configuration: defaults, then the config file if present,
// then environment overrides. A missing file is not an error.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath is Load with an explicit file location, used by tests and
// the --config flag.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg to the default config path atomically.
func Save(cfg *Config) error {
	path, err := Path()
	if err != nil {
		return err
	}
	return SaveToPath(cfg, path)
}

// SaveToPath writes cfg as TOML to path.
func SaveToPath(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := util.AtomicWriteFile(path, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// =============================================================================
// OVERRIDES AND VALIDATION
// =============================================================================

// ApplyEnvOverrides applies DATAMOCK_* environment variables over cfg.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("DATAMOCK_SERVER_URL"); v != "" {
		c.Server.BaseURL = v
	}
	if v := os.Getenv("DATAMOCK_TIMEOUT_SECS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			c.Server.TimeoutSecs = secs
		}
	}
	if v := os.Getenv("DATAMOCK_STORAGE_BACKEND"); v != "" {
		c.Storage.Backend = v
	}
	if v := os.Getenv("DATAMOCK_DATA_DIR"); v != "" {
		c.Storage.Dir = v
	}
	if v := os.Getenv("DATAMOCK_EXPORT_DIR"); v != "" {
		c.Export.Dir = v
	}
	if v := os.Getenv("DATAMOCK_THEME"); v != "" {
		c.UI.Theme = v
	}
}

// Validate checks cfg for values that cannot work at runtime.
func (c *Config) Validate() error {
	var errs []error
	if c.Server.BaseURL == "" {
		errs = append(errs, errors.New("server.base_url must not be empty"))
	}
	if c.Server.TimeoutSecs <= 0 {
		errs = append(errs, fmt.Errorf("server.timeout_secs must be positive, got %d", c.Server.TimeoutSecs))
	}
	switch c.Storage.Backend {
	case BackendFile, BackendSQLite:
	default:
		errs = append(errs, fmt.Errorf("storage.backend must be %q or %q, got %q",
			BackendFile, BackendSQLite, c.Storage.Backend))
	}
	switch c.UI.Theme {
	case "dark", "light":
	default:
		errs = append(errs, fmt.Errorf("ui.theme must be \"dark\" or \"light\", got %q", c.UI.Theme))
	}
	if c.UI.SidebarWidth < 16 || c.UI.SidebarWidth > 80 {
		errs = append(errs, fmt.Errorf("ui.sidebar_width must be between 16 and 80, got %d", c.UI.SidebarWidth))
	}
	return errors.Join(errs...)
}
