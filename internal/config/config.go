package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/llehouerou/desknotify/notify"
)

const appDir = "desknotify"

type Config struct {
	AppName         string `koanf:"app_name"`          // identity shown by the notification center
	LogLevel        string `koanf:"log_level"`         // "debug", "info", "warn" or "error"
	ExpireTimeoutMS int    `koanf:"expire_timeout_ms"` // <= 0 keeps the server default
	DefaultSound    string `koanf:"default_sound"`     // used when send has no --sound
	DefaultIcon     string `koanf:"default_icon"`      // used when send has no --icon
}

// Load reads the config files in order of priority (last wins).
func Load() (*Config, error) {
	return LoadFrom(getConfigPaths()...)
}

// LoadFrom reads the given TOML files, skipping those that do not exist.
func LoadFrom(paths ...string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{
		AppName:  notify.DefaultAppName,
		LogLevel: "info",
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	if cfg.DefaultIcon != "" {
		cfg.DefaultIcon = expandPath(cfg.DefaultIcon)
	}

	return cfg, nil
}

func getConfigPaths() []string {
	return []string{
		// 1. $XDG_CONFIG_HOME/desknotify/config.toml
		filepath.Join(xdg.ConfigHome, appDir, "config.toml"),
		// 2. ./desknotify.toml (pwd, highest priority)
		"desknotify.toml",
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

// ExpireTimeout returns the configured expiry, zero meaning server default.
func (c *Config) ExpireTimeout() time.Duration {
	if c.ExpireTimeoutMS <= 0 {
		return 0
	}
	return time.Duration(c.ExpireTimeoutMS) * time.Millisecond
}
