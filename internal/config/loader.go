// Package config loads daybook settings from a YAML file and DAYBOOK_
// environment variables on top of built-in defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "DAYBOOK"

// Load reads the config file at path (DefaultPath when empty) and applies
// environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		path = DefaultPath()
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v, cfg)

	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to stat config %s: %w", path, err)
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	cfg.DataDir = expandHome(cfg.DataDir)
	cfg.DBPath = expandHome(cfg.DBPath)
	cfg.Debug.LogPath = expandHome(cfg.Debug.LogPath)

	// A relocated data dir carries the database with it unless db_path moved too
	defaults := DefaultConfig()
	if cfg.DataDir != defaults.DataDir && cfg.DBPath == defaults.DBPath {
		cfg.DBPath = filepath.Join(cfg.DataDir, "daybook.db")
	}

	return cfg, nil
}

// setDefaults registers every key so environment overrides reach Unmarshal
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("data_dir", cfg.DataDir)
	v.SetDefault("db_path", cfg.DBPath)
	v.SetDefault("banner.interval", cfg.Banner.Interval)
	v.SetDefault("upload.delay", cfg.Upload.Delay)
	v.SetDefault("notifications.desktop", cfg.Notifications.Desktop)
	v.SetDefault("ui.theme", cfg.UI.Theme)
	v.SetDefault("ui.start_tab", cfg.UI.StartTab)
	v.SetDefault("debug.enabled", cfg.Debug.Enabled)
	v.SetDefault("debug.log_path", cfg.Debug.LogPath)
}

// DefaultPath returns $XDG_CONFIG_HOME/daybook/config.yaml
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".daybook", "config.yaml")
	}
	return filepath.Join(dir, "daybook", "config.yaml")
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
