package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.BackendConfigured() {
		t.Fatal("missing config must not be backend-configured")
	}
	if cfg.AutosaveInterval != 3*time.Minute {
		t.Fatalf("AutosaveInterval = %v", cfg.AutosaveInterval)
	}
	if cfg.AutosaveDebounce != 5*time.Second {
		t.Fatalf("AutosaveDebounce = %v", cfg.AutosaveDebounce)
	}
	if cfg.DataDir == "" {
		t.Fatal("empty data dir")
	}
}

func TestLoadReadsExplicitFile(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "config.toml")
	body := `
[backend]
url = "https://abc.supabase.example"
api_key = "anon-key"

[autosave]
interval_minutes = 10
debounce_seconds = 2

[data]
dir = "` + tmp + `"
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !cfg.BackendConfigured() {
		t.Fatal("expected backend configured")
	}
	if cfg.BackendURL != "https://abc.supabase.example" {
		t.Fatalf("BackendURL = %q", cfg.BackendURL)
	}
	if cfg.AutosaveInterval != 10*time.Minute || cfg.AutosaveDebounce != 2*time.Second {
		t.Fatalf("autosave durations = %v / %v", cfg.AutosaveInterval, cfg.AutosaveDebounce)
	}
	if cfg.DBPath() != filepath.Join(tmp, "fitsync.db") {
		t.Fatalf("DBPath = %q", cfg.DBPath())
	}
	if cfg.SessionPath() != filepath.Join(tmp, "session.json") {
		t.Fatalf("SessionPath = %q", cfg.SessionPath())
	}
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "config.toml")
	if err := os.WriteFile(path, []byte("backend = {"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}
