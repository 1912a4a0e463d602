// logger.go: file-backed logger for database operations
package datastore

import (
	"log/slog"
	"sync"

	"github.com/phototag/phototag-go/internal/logging"
)

// Package-level logger for datastore operations
var (
	datastoreLogger   *slog.Logger
	datastoreLevelVar = new(slog.LevelVar) // Dynamic level control
	loggerCloseFunc   func() error         // Function to close the logger
	loggerOnce        sync.Once            // Ensures logger is initialized only once
)

// defaultLogPath follows the project-wide convention of using a "logs/"
// directory for all log files.
const defaultLogPath = "logs/datastore.log"

// getLogger returns the datastore service logger, initializing it on first
// use. If the file logger cannot be created it falls back to the default
// structured logger so database operations are never silent.
func getLogger() *slog.Logger {
	loggerOnce.Do(func() {
		datastoreLevelVar.Set(slog.LevelInfo)

		logger, closeFunc, err := logging.NewFileLogger(defaultLogPath, "datastore", datastoreLevelVar)
		if err != nil {
			datastoreLogger = slog.Default().With("service", "datastore")
			return
		}
		datastoreLogger = logger
		loggerCloseFunc = closeFunc
	})
	return datastoreLogger
}

// CloseLogger releases the datastore log file, if one was opened.
func CloseLogger() error {
	if loggerCloseFunc != nil {
		return loggerCloseFunc()
	}
	return nil
}
