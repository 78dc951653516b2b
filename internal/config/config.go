// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides TOML configuration loading for the picker,
// with sensible defaults and environment variable overrides.
//
// Locations, in order of precedence:
//   - path passed on the command line
//   - ~/.librechat/config.toml
//   - built-in defaults
//
// Environment overrides use the LIBRECHAT_ prefix, e.g. LIBRECHAT_LOG_LEVEL.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config is the complete application configuration.
type Config struct {
	// CatalogPath is the selectable-target catalog file.
	CatalogPath string `toml:"catalog_path"`

	// Access is the permission level used for the agents-list query:
	// "viewer", "editor", or "admin".
	Access string `toml:"access"`

	// Language is the BCP 47 tag for announcement localization.
	Language string `toml:"language"`

	// LogLevel is one of trace/debug/info/warn/error/silent.
	LogLevel string `toml:"log_level"`

	// Storage configures the persisted-default tiers.
	Storage StorageConfig `toml:"storage"`

	// UI configures the picker surface.
	UI UIConfig `toml:"ui"`
}

// StorageConfig locates the two persistence tiers.
type StorageConfig struct {
	// KVPath is the SQLite key-value store file.
	KVPath string `toml:"kv_path"`

	// CookiePath is the cookie jar file.
	CookiePath string `toml:"cookie_path"`
}

// UIConfig holds picker display settings.
type UIConfig struct {
	// MaxResults caps the rows shown in the result list.
	MaxResults int `toml:"max_results"`

	// DebounceMs overrides the search debounce interval.
	DebounceMs int `toml:"debounce_ms"`
}

// =============================================================================
// LOADING
// =============================================================================

// Dir returns the application data directory (~/.librechat).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".librechat"
	}
	return filepath.Join(home, ".librechat")
}

// Default returns the built-in configuration.
func Default() *Config {
	dir := Dir()
	return &Config{
		CatalogPath: filepath.Join(dir, "catalog.toml"),
		Access:      "viewer",
		Language:    "en",
		LogLevel:    "info",
		Storage: StorageConfig{
			KVPath:     filepath.Join(dir, "store.db"),
			CookiePath: filepath.Join(dir, "cookies.txt"),
		},
		UI: UIConfig{
			MaxResults: 10,
		},
	}
}

// Load reads configuration from path, layered over the defaults. An
// empty path tries the standard location; a missing file there is not an
// error, but an explicitly-passed missing path is.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if path == "" {
		path = filepath.Join(Dir(), "config.toml")
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case os.IsNotExist(err) && !explicit:
		// Fall through to defaults.
	default:
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg.applyEnv()
	return cfg, nil
}

// applyEnv layers LIBRECHAT_* environment overrides on top.
func (c *Config) applyEnv() {
	if v := os.Getenv("LIBRECHAT_CATALOG"); v != "" {
		c.CatalogPath = v
	}
	if v := os.Getenv("LIBRECHAT_ACCESS"); v != "" {
		c.Access = v
	}
	if v := os.Getenv("LIBRECHAT_LANGUAGE"); v != "" {
		c.Language = v
	}
	if v := os.Getenv("LIBRECHAT_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("LIBRECHAT_KV_PATH"); v != "" {
		c.Storage.KVPath = v
	}
	if v := os.Getenv("LIBRECHAT_COOKIE_PATH"); v != "" {
		c.Storage.CookiePath = v
	}
}
