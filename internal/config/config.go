// Package config loads the framekeep configuration file.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/1broseidon/framekeep/internal/frame"
	"github.com/1broseidon/framekeep/internal/snapshot"
)

// Config is the effective framekeep configuration.
type Config struct {
	// SnapshotPath is where the captured frame sequence is written.
	SnapshotPath string
	// TrackedKeys is the set of window attributes that survive capture.
	TrackedKeys []string
	// Capture, ApplyPrimary and ApplySecondary independently enable the
	// three restore phases.
	Capture        bool
	ApplyPrimary   bool
	ApplySecondary bool
	// FrameCommand is the command the X11 adapter runs to open one new
	// window when recreating secondary frames.
	FrameCommand []string
	// SpawnTimeout bounds the wait for a spawned window to map.
	SpawnTimeout time.Duration
	// LogLevel is the daemon log level.
	LogLevel slog.Level
}

// rawConfig mirrors the YAML file. Pointer fields distinguish "absent" from
// zero values so defaults only fill what the file left out.
type rawConfig struct {
	SnapshotPath   *string  `yaml:"snapshot_path"`
	TrackedKeys    []string `yaml:"tracked_keys"`
	Capture        *bool    `yaml:"capture"`
	ApplyPrimary   *bool    `yaml:"apply_primary"`
	ApplySecondary *bool    `yaml:"apply_secondary"`
	FrameCommand   []string `yaml:"frame_command"`
	SpawnTimeout   *string  `yaml:"spawn_timeout"`
	Logging        struct {
		Level *string `yaml:"level"`
	} `yaml:"logging"`
}

const defaultSpawnTimeout = 10 * time.Second

// DefaultTrackedKeys is the attribute set captured when the file does not
// list tracked_keys.
var DefaultTrackedKeys = []string{
	frame.KeyLeft,
	frame.KeyTop,
	frame.KeyWidth,
	frame.KeyHeight,
	frame.KeyMaximized,
	frame.KeyFullscreen,
}

// DefaultConfigPath returns the standard config file location.
func DefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "framekeep", "config.yaml"), nil
}

// Load reads the configuration from the standard location. A missing file
// yields the defaults.
func Load() (*Config, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath reads the configuration from an explicit path. A missing file
// yields the defaults.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return defaults()
		}
		return nil, fmt.Errorf("failed to read config %q: %w", path, err)
	}

	var raw rawConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse config %q: %w", path, err)
	}
	cfg, err := effective(&raw)
	if err != nil {
		return nil, fmt.Errorf("invalid config %q: %w", path, err)
	}
	return cfg, nil
}

func defaults() (*Config, error) {
	return effective(&rawConfig{})
}

// effective resolves a raw file into a validated Config.
func effective(raw *rawConfig) (*Config, error) {
	cfg := &Config{
		TrackedKeys:    DefaultTrackedKeys,
		Capture:        true,
		ApplyPrimary:   true,
		ApplySecondary: true,
		SpawnTimeout:   defaultSpawnTimeout,
		LogLevel:       slog.LevelInfo,
	}

	if raw.SnapshotPath != nil && strings.TrimSpace(*raw.SnapshotPath) != "" {
		cfg.SnapshotPath = *raw.SnapshotPath
	} else {
		path, err := snapshot.DefaultPath()
		if err != nil {
			return nil, err
		}
		cfg.SnapshotPath = path
	}

	if raw.TrackedKeys != nil {
		if len(raw.TrackedKeys) == 0 {
			return nil, fmt.Errorf("tracked_keys must not be empty")
		}
		for _, k := range raw.TrackedKeys {
			if !frame.KnownKey(k) {
				return nil, fmt.Errorf("unknown tracked key %q (known: %s)",
					k, strings.Join(frame.KnownKeys, ", "))
			}
		}
		cfg.TrackedKeys = raw.TrackedKeys
	}

	if raw.Capture != nil {
		cfg.Capture = *raw.Capture
	}
	if raw.ApplyPrimary != nil {
		cfg.ApplyPrimary = *raw.ApplyPrimary
	}
	if raw.ApplySecondary != nil {
		cfg.ApplySecondary = *raw.ApplySecondary
	}

	cfg.FrameCommand = raw.FrameCommand
	if cfg.ApplySecondary && len(cfg.FrameCommand) == 0 {
		// Recreation needs a command that opens exactly one window.
		cfg.FrameCommand = []string{"xterm"}
	}

	if raw.SpawnTimeout != nil {
		d, err := time.ParseDuration(*raw.SpawnTimeout)
		if err != nil {
			return nil, fmt.Errorf("invalid spawn_timeout: %w", err)
		}
		if d <= 0 {
			return nil, fmt.Errorf("spawn_timeout must be positive")
		}
		cfg.SpawnTimeout = d
	}

	if raw.Logging.Level != nil {
		level, err := parseLogLevel(*raw.Logging.Level)
		if err != nil {
			return nil, err
		}
		cfg.LogLevel = level
	}

	return cfg, nil
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", s)
	}
}
