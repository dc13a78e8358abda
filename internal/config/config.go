package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const appName = "mp3tagger"

type Config struct {
	Log   LogConfig   `koanf:"log"`
	Cover CoverConfig `koanf:"cover"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `koanf:"level"`  // "debug", "info", "warn", "error" (default: "info")
	Format string `koanf:"format"` // "console" or "json" (default: "console")
}

// CoverConfig holds cover art settings.
type CoverConfig struct {
	WarnOnMismatch *bool `koanf:"warn_on_mismatch"` // warn when image content disagrees with its extension (default: true)
}

// Load reads the configuration files in order of priority (last wins).
// explicitPath, when not empty, is loaded last and must exist.
func Load(explicitPath string) (*Config, error) {
	paths := getConfigPaths()
	if explicitPath != "" {
		explicitPath = expandPath(explicitPath)
		if _, err := os.Stat(explicitPath); err != nil {
			return nil, fmt.Errorf("config file: %w", err)
		}
		paths = append(paths, explicitPath)
	}
	return loadFrom(paths)
}

func loadFrom(paths []string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, fmt.Errorf("load %s: %w", path, err)
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	cfg.Log.Format = strings.ToLower(strings.TrimSpace(cfg.Log.Format))

	return cfg, nil
}

func getConfigPaths() []string {
	return []string{
		// 1. $XDG_CONFIG_HOME/mp3tagger/config.toml
		filepath.Join(xdg.ConfigHome, appName, "config.toml"),
		// 2. ./config.toml (pwd, highest priority)
		"config.toml",
	}
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// GetLogConfig returns the logging configuration with defaults applied.
func (c *Config) GetLogConfig() LogConfig {
	cfg := c.Log

	switch cfg.Level {
	case "debug", "info", "warn", "error":
	default:
		cfg.Level = "info"
	}
	if cfg.Format != "json" {
		cfg.Format = "console"
	}

	return cfg
}

// WarnOnMismatch reports whether image content sniffing warnings are enabled.
func (c *Config) WarnOnMismatch() bool {
	if c.Cover.WarnOnMismatch == nil {
		return true
	}
	return *c.Cover.WarnOnMismatch
}
