package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFromPath(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if !cfg.Capture || !cfg.ApplyPrimary || !cfg.ApplySecondary {
		t.Error("default phases not all enabled")
	}
	if len(cfg.TrackedKeys) == 0 {
		t.Error("default tracked keys empty")
	}
	if cfg.SpawnTimeout != 10*time.Second {
		t.Errorf("default spawn timeout = %v", cfg.SpawnTimeout)
	}
	if !strings.HasSuffix(cfg.SnapshotPath, filepath.Join("framekeep", "frames.json")) {
		t.Errorf("default snapshot path = %q", cfg.SnapshotPath)
	}
}

func TestLoadFullFile(t *testing.T) {
	path := writeConfig(t, `
snapshot_path: /tmp/fk/frames.json
tracked_keys: [left, top, maximized]
capture: true
apply_primary: false
apply_secondary: true
frame_command: ["ghostty", "--class=scratch"]
spawn_timeout: 3s
logging:
  level: debug
`)
	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if cfg.SnapshotPath != "/tmp/fk/frames.json" {
		t.Errorf("snapshot path = %q", cfg.SnapshotPath)
	}
	if len(cfg.TrackedKeys) != 3 || cfg.TrackedKeys[2] != "maximized" {
		t.Errorf("tracked keys = %v", cfg.TrackedKeys)
	}
	if cfg.ApplyPrimary {
		t.Error("apply_primary should be disabled")
	}
	if len(cfg.FrameCommand) != 2 || cfg.FrameCommand[0] != "ghostty" {
		t.Errorf("frame command = %v", cfg.FrameCommand)
	}
	if cfg.SpawnTimeout != 3*time.Second {
		t.Errorf("spawn timeout = %v", cfg.SpawnTimeout)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("log level = %v", cfg.LogLevel)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown tracked key", "tracked_keys: [left, opacity]"},
		{"empty tracked keys", "tracked_keys: []"},
		{"bad spawn timeout", `spawn_timeout: "soon"`},
		{"negative spawn timeout", `spawn_timeout: "-1s"`},
		{"bad log level", "logging:\n  level: loud"},
		{"not yaml", ": ["},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadFromPath(writeConfig(t, tt.content)); err == nil {
				t.Error("LoadFromPath succeeded, want error")
			}
		})
	}
}

func TestFrameCommandDefaultOnlyWhenSecondaryEnabled(t *testing.T) {
	cfg, err := LoadFromPath(writeConfig(t, "apply_secondary: false"))
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.FrameCommand) != 0 {
		t.Errorf("frame command defaulted to %v with apply_secondary disabled", cfg.FrameCommand)
	}

	cfg, err = LoadFromPath(writeConfig(t, "apply_secondary: true"))
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.FrameCommand) == 0 {
		t.Error("frame command not defaulted with apply_secondary enabled")
	}
}
