package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dori/daybook/internal/db"
)

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		DataDir: db.DefaultDataDir(),
		DBPath:  db.DefaultDBPath(),
		Banner: BannerConfig{
			Interval: 20 * time.Second,
		},
		Upload: UploadConfig{
			Delay: 1200 * time.Millisecond,
		},
		UI: UIConfig{
			Theme:    "nord",
			StartTab: "today",
		},
		Debug: DebugConfig{
			LogPath: filepath.Join(os.TempDir(), "daybook-debug.log"),
		},
	}
}

// WriteDefault writes a commented default configuration to path
func WriteDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	content := `# daybook configuration
# Every key can be overridden from the environment, e.g. DAYBOOK_UI_THEME=dracula

# Database location (defaults to ~/.local/share/daybook/daybook.db)
# data_dir: ~/.local/share/daybook
# db_path: ~/.local/share/daybook/daybook.db

# Rotating banner on the Today screen
banner:
  interval: 20s

# Schedule uploads
upload:
  # Processing delay before uploaded tasks appear
  delay: 1.2s

notifications:
  # Send notify-send reminders for due and overdue tasks
  desktop: false

ui:
  theme: nord       # nord, dracula, gruvbox, catppuccin
  start_tab: today  # today, pending, upcoming, finished, incomplete, stats

debug:
  enabled: false
  # log_path: /tmp/daybook-debug.log
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
