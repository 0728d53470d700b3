// Package config loads the fitsync client configuration.
// The file lives at ~/.config/fitsync/config.toml; every field has a
// default so a missing file yields a working local-only client.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	defaultConfigPath       = "~/.config/fitsync/config.toml"
	defaultDataDir          = "~/.local/share/fitsync"
	defaultAutosaveInterval = 3 * time.Minute
	defaultAutosaveDebounce = 5 * time.Second
)

// Config captures everything the client needs at startup.
type Config struct {
	BackendURL       string
	BackendAPIKey    string
	DataDir          string
	AutosaveInterval time.Duration
	AutosaveDebounce time.Duration
}

// Load locates and parses the config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AutosaveInterval: defaultAutosaveInterval,
		AutosaveDebounce: defaultAutosaveDebounce,
	}

	raw := struct {
		Backend struct {
			URL    string `toml:"url"`
			APIKey string `toml:"api_key"`
		} `toml:"backend"`
		Autosave struct {
			IntervalMinutes int `toml:"interval_minutes"`
			DebounceSeconds int `toml:"debounce_seconds"`
		} `toml:"autosave"`
		Data struct {
			Dir string `toml:"dir"`
		} `toml:"data"`
	}{}

	bytes, err := os.ReadFile(resolved)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		// No file: defaults only.
	} else if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.BackendURL = strings.TrimSpace(raw.Backend.URL)
	cfg.BackendAPIKey = strings.TrimSpace(raw.Backend.APIKey)

	if raw.Autosave.IntervalMinutes > 0 {
		cfg.AutosaveInterval = time.Duration(raw.Autosave.IntervalMinutes) * time.Minute
	}
	if raw.Autosave.DebounceSeconds > 0 {
		cfg.AutosaveDebounce = time.Duration(raw.Autosave.DebounceSeconds) * time.Second
	}

	dataDir := strings.TrimSpace(raw.Data.Dir)
	if dataDir == "" {
		dataDir = defaultDataDir
	}
	cfg.DataDir = mustExpand(dataDir)

	return cfg, nil
}

// BackendConfigured reports whether cloud mode is even possible.
func (c Config) BackendConfigured() bool {
	return c.BackendURL != "" && c.BackendAPIKey != ""
}

// DBPath returns the durable local store location.
func (c Config) DBPath() string {
	return filepath.Join(c.DataDir, "fitsync.db")
}

// SessionPath returns the persisted session file location.
func (c Config) SessionPath() string {
	return filepath.Join(c.DataDir, "session.json")
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
