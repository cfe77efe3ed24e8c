package app

import (
	"fmt"
	"os"
	"time"
)

// openDebugLog enables the debug file when configured or DAYBOOK_DEBUG=1
func (a *App) openDebugLog() {
	if !a.Config.Debug.Enabled && os.Getenv("DAYBOOK_DEBUG") != "1" {
		return
	}
	a.debugLog, _ = os.OpenFile(a.Config.Debug.LogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
}

func (a *App) closeDebugLog() {
	if a.debugLog != nil {
		a.debugLog.Close()
		a.debugLog = nil
	}
}

// Debugf appends a line to the debug log when it is enabled
func (a *App) Debugf(format string, args ...interface{}) {
	if a == nil || a.debugLog == nil {
		return
	}
	fmt.Fprintf(a.debugLog, time.Now().Format("15:04:05.000")+" "+format+"\n", args...)
	a.debugLog.Sync()
}
