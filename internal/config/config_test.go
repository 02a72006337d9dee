package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Page.Content != nil || cfg.Page.ReducedMotion != nil {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestLoadConfigPageTable(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.toml", `
[page]
content = "/tmp/me.yaml"
reduced-motion = true
typing-speed-ms = 40

[inbox]
limit = 5
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Page.Content == nil || *cfg.Page.Content != "/tmp/me.yaml" {
		t.Fatalf("unexpected content path: %v", cfg.Page.Content)
	}
	if cfg.Page.ReducedMotion == nil || !*cfg.Page.ReducedMotion {
		t.Fatalf("expected reduced motion")
	}
	if cfg.Page.TypingSpeedMs == nil || *cfg.Page.TypingSpeedMs != 40 {
		t.Fatalf("unexpected typing speed: %v", cfg.Page.TypingSpeedMs)
	}
	if cfg.Page.TypingDelayMs != nil {
		t.Fatalf("expected unset typing delay")
	}
	if cfg.Inbox.Limit == nil || *cfg.Inbox.Limit != 5 {
		t.Fatalf("unexpected inbox limit: %v", cfg.Inbox.Limit)
	}
}

func TestLoadConfigRejectsUnknownKey(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.toml", "[page]\nspeed = 3\n")
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected unknown key error")
	}
}

func TestLoadConfigEmptyPath(t *testing.T) {
	if _, err := LoadConfig(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestLoadEnvPrefersProcessEnvironment(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, ".env", "FOLIO_DB=/from/file.db\nFOLIO_LOG=/from/file.log\n")
	t.Setenv("FOLIO_LOG", "/from/env.log")
	t.Setenv("FOLIO_REDUCED_MOTION", "true")

	got, err := LoadEnv(path)
	if err != nil {
		t.Fatalf("load env: %v", err)
	}
	if got.DBPath != "/from/file.db" {
		t.Fatalf("expected db path from dotenv, got %q", got.DBPath)
	}
	if got.LogPath != "/from/env.log" {
		t.Fatalf("expected log path from environment, got %q", got.LogPath)
	}
	if !got.ReducedMotion {
		t.Fatalf("expected reduced motion")
	}
}

func TestLoadEnvMissingDotenv(t *testing.T) {
	if _, err := LoadEnv(filepath.Join(t.TempDir(), ".env")); err != nil {
		t.Fatalf("expected missing dotenv to be ignored, got %v", err)
	}
}

func TestLoadEnvInvalidValue(t *testing.T) {
	t.Setenv("FOLIO_REDUCED_MOTION", "sometimes")
	if _, err := LoadEnv(""); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestDefaultPathsUseXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	t.Setenv("XDG_DATA_HOME", "/data")
	if got := DefaultConfigPath(); got != filepath.Join("/cfg", "folio", "config.toml") {
		t.Fatalf("unexpected config path %q", got)
	}
	if got := DefaultContentPath(); got != filepath.Join("/cfg", "folio", "content.toml") {
		t.Fatalf("unexpected content path %q", got)
	}
	if got := DefaultDBPath(); got != filepath.Join("/data", "folio", "folio.db") {
		t.Fatalf("unexpected db path %q", got)
	}
}
