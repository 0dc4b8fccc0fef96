package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

var (
	debugFile *os.File
	logsDir   string
	mu        sync.Mutex
)

// ConfigureDebug sets the directory for debug logs. An empty dir turns logging off.
func ConfigureDebug(dir string) {
	mu.Lock()
	defer mu.Unlock()
	if dir != logsDir {
		closeLocked()
	}
	logsDir = dir
}

// DebugEnabled reports whether Debug will write anywhere.
func DebugEnabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return logsDir != ""
}

// Debug writes a timestamped line to the debug log in the configured directory.
func Debug(format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()

	if logsDir == "" {
		return
	}

	if debugFile == nil {
		if err := os.MkdirAll(logsDir, 0o755); err != nil {
			return
		}
		name := fmt.Sprintf("debug-%s.log", time.Now().Format("20060102-150405"))
		f, err := os.OpenFile(filepath.Join(logsDir, name), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return
		}
		debugFile = f
	}

	timestamp := time.Now().Format("2006-01-02 15:04:05")
	fmt.Fprintf(debugFile, "[%s] %s\n", timestamp, fmt.Sprintf(format, args...))
}

// CloseDebug flushes and closes the current log file, if any.
func CloseDebug() error {
	mu.Lock()
	defer mu.Unlock()
	return closeLocked()
}

func closeLocked() error {
	if debugFile == nil {
		return nil
	}
	err := debugFile.Close()
	debugFile = nil
	return err
}
