// ABOUTME: Debug logger for the TUI that writes to a rotating log file
// ABOUTME: Keeps slog output off the terminal while the TUI owns the screen

package debuglog

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/markalston/realm-client/internal/logger"
)

// FileName is the log file created in the state directory
const FileName = "debug.log"

var (
	logFile *lumberjack.Logger
	mu      sync.Mutex
)

// Init routes the default slog logger to FileName in dir.
// If dir is empty, log output is discarded.
func Init(dir, level, format string) error {
	mu.Lock()
	defer mu.Unlock()

	closeLocked()

	if dir == "" {
		logger.Init(io.Discard, level, format)
		return nil
	}

	if err := os.MkdirAll(dir, 0700); err != nil {
		logger.Init(io.Discard, level, format)
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	logFile = &lumberjack.Logger{
		Filename:   filepath.Join(dir, FileName),
		MaxSize:    5, // MB
		MaxBackups: 3,
		MaxAge:     28, // days
	}
	logger.Init(logFile, level, format)
	return nil
}

// Close flushes and closes the log file
func Close() {
	mu.Lock()
	defer mu.Unlock()
	closeLocked()
}

func closeLocked() {
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}
