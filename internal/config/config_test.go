package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bhartiamulya/EduToon/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 8087 {
		t.Errorf("expected default port 8087, got %d", cfg.Server.Port)
	}
	if cfg.Synthesis.Engine != "auto" {
		t.Errorf("expected engine auto, got %q", cfg.Synthesis.Engine)
	}
	if cfg.Synthesis.Rate != 150 || cfg.Synthesis.Pitch != 60 || cfg.Synthesis.Volume != 180 {
		t.Errorf("unexpected voice profile defaults: %+v", cfg.Synthesis)
	}
	if !cfg.Audio.Enabled {
		t.Error("audio should be enabled by default")
	}
	if !cfg.Audio.StartLocked {
		t.Error("playback should start locked by default")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected info level, got %q", cfg.Logging.Level)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "edutoon.yaml")
	yaml := `
server:
  port: 9001
synthesis:
  engine: espeak
  voice: en+f4
audio:
  start_locked: false
logging:
  level: debug
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 9001 {
		t.Errorf("expected port 9001, got %d", cfg.Server.Port)
	}
	if cfg.Synthesis.Engine != "espeak" {
		t.Errorf("expected espeak, got %q", cfg.Synthesis.Engine)
	}
	if cfg.Synthesis.Voice != "en+f4" {
		t.Errorf("expected voice en+f4, got %q", cfg.Synthesis.Voice)
	}
	if cfg.Audio.StartLocked {
		t.Error("start_locked should be overridden to false")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected debug, got %q", cfg.Logging.Level)
	}

	// Untouched values keep their defaults.
	if cfg.Synthesis.Rate != 150 {
		t.Errorf("expected default rate 150, got %d", cfg.Synthesis.Rate)
	}
}
