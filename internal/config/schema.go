package config

import "time"

// Config is the full daybook configuration
type Config struct {
	// Where the database and lock file live
	DataDir string `yaml:"data_dir" mapstructure:"data_dir"`
	DBPath  string `yaml:"db_path" mapstructure:"db_path"`

	Banner        BannerConfig        `yaml:"banner" mapstructure:"banner"`
	Upload        UploadConfig        `yaml:"upload" mapstructure:"upload"`
	Notifications NotificationsConfig `yaml:"notifications" mapstructure:"notifications"`
	UI            UIConfig            `yaml:"ui" mapstructure:"ui"`
	Debug         DebugConfig         `yaml:"debug" mapstructure:"debug"`
}

// BannerConfig configures the rotating featured-task banner
type BannerConfig struct {
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`
}

// UploadConfig configures schedule uploads
type UploadConfig struct {
	// Processing delay shown before materialized tasks are committed
	Delay time.Duration `yaml:"delay" mapstructure:"delay"`
}

// NotificationsConfig configures desktop notifications
type NotificationsConfig struct {
	Desktop bool `yaml:"desktop" mapstructure:"desktop"`
}

// UIConfig configures the terminal interface
type UIConfig struct {
	Theme    string `yaml:"theme" mapstructure:"theme"`
	StartTab string `yaml:"start_tab" mapstructure:"start_tab"`
}

// DebugConfig configures the debug log file
type DebugConfig struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	LogPath string `yaml:"log_path" mapstructure:"log_path"`
}
