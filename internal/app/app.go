package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dori/daybook/internal/config"
	"github.com/dori/daybook/internal/db"
	"github.com/dori/daybook/internal/lifecycle"
	"github.com/dori/daybook/internal/notify"
	"github.com/dori/daybook/internal/store"
	"github.com/gofrs/flock"
)

// App holds the application state and dependencies
type App struct {
	Config   *config.Config
	DB       *db.DB
	Store    *store.Store
	Engine   *lifecycle.Engine
	Notifier *notify.Notifier
	Toasts   *notify.Toasts
	DataDir  string

	// Tasks the startup sweep marked incomplete
	Swept int

	lockFile *flock.Flock
	debugLog *os.File
}

// New opens the database, loads (or seeds) the task store and runs the
// overdue sweep. Only one App may hold the data directory at a time.
func New(cfg *config.Config, opts ...lifecycle.Option) (*App, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	// Ensure data directory exists
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	app := &App{
		Config:   cfg,
		DataDir:  cfg.DataDir,
		Notifier: notify.NewNotifier(cfg.Notifications.Desktop),
		Toasts:   notify.NewToasts(3),
	}
	app.openDebugLog()

	// Acquire lock to ensure single instance
	if err := app.acquireLock(); err != nil {
		app.closeDebugLog()
		return nil, err
	}

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		app.releaseLock()
		app.closeDebugLog()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	app.DB = database

	app.Store = store.New(database)
	app.Store.OnSaveError = func(err error) {
		app.Debugf("save error: %v", err)
		app.Toasts.Notify("Could not save: " + err.Error())
	}
	app.Engine = lifecycle.New(app.Store, notify.Fanout(app.Toasts, app.Notifier), opts...)

	swept, err := app.Engine.Open()
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to open task store: %w", err)
	}
	app.Swept = swept
	app.Debugf("opened %s: %d tasks, %d swept", cfg.DBPath, app.Store.Len(), swept)

	return app, nil
}

// Remind sends the desktop reminders for the current collection
func (a *App) Remind() {
	if !a.Notifier.IsEnabled() {
		return
	}
	today := a.Engine.Today()
	due := 0
	for _, t := range a.Store.All() {
		if t.IsDueToday(today) && !t.Status.Handled() {
			due++
		}
	}
	if err := a.Notifier.SendOverdue(a.Swept); err != nil {
		a.Debugf("overdue notification failed: %v", err)
	}
	if err := a.Notifier.SendDueReminder(due); err != nil {
		a.Debugf("due notification failed: %v", err)
	}
}

// Today returns the engine's calendar date
func (a *App) Today() time.Time {
	return a.Engine.Today()
}

// acquireLock acquires an exclusive file lock to prevent multiple instances
func (a *App) acquireLock() error {
	lockPath := filepath.Join(a.DataDir, "daybook.lock")
	a.lockFile = flock.New(lockPath)

	locked, err := a.lockFile.TryLock()
	if err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}

	if !locked {
		return ErrLocked
	}

	return nil
}

// ErrLocked is returned when another daybook process holds the data directory
var ErrLocked = errors.New("another instance of daybook is already running")

// releaseLock releases the file lock
func (a *App) releaseLock() {
	if a.lockFile != nil {
		a.lockFile.Unlock()
	}
}

// Close cleans up application resources
func (a *App) Close() error {
	var errs []error

	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	a.releaseLock()
	a.closeDebugLog()

	return errors.Join(errs...)
}
