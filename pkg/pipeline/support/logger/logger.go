// Package logger provides the leveled logging utility used across the
// Tripwind pipeline. It wraps the standard `log` package and filters
// messages against a globally configured level.
package logger

import (
	"fmt"
	"log"
	"strings"
)

// LogLevel represents a logging verbosity level.
type LogLevel int

const (
	// LevelDebug emits detailed diagnostic output.
	LevelDebug LogLevel = iota
	// LevelInfo emits general progress messages.
	LevelInfo
	// LevelWarn emits potential problems that do not stop a run.
	LevelWarn
	// LevelError emits failures.
	LevelError
	// LevelFatal emits a failure and terminates the process.
	LevelFatal
)

// logLevel is the currently active level. Messages below it are dropped.
var logLevel = LevelInfo

// SetLogLevel sets the global log level. Valid values are "DEBUG", "INFO",
// "WARN", "ERROR" and "FATAL" (case-insensitive); anything else falls back
// to INFO with a warning on stdout.
func SetLogLevel(level string) {
	switch strings.ToUpper(level) {
	case "INFO":
		logLevel = LevelInfo
	case "WARN":
		logLevel = LevelWarn
	case "ERROR":
		logLevel = LevelError
	case "FATAL":
		logLevel = LevelFatal
	case "DEBUG":
		logLevel = LevelDebug
	default:
		fmt.Printf("Unknown log level '%s' specified. Defaulting to INFO level.\n", level)
		logLevel = LevelInfo
	}
}

// Debugf formats and outputs a DEBUG level message.
func Debugf(format string, v ...interface{}) {
	if logLevel <= LevelDebug {
		log.Printf("[DEBUG] "+format, v...)
	}
}

// Infof formats and outputs an INFO level message.
func Infof(format string, v ...interface{}) {
	if logLevel <= LevelInfo {
		log.Printf("[INFO] "+format, v...)
	}
}

// Warnf formats and outputs a WARN level message.
func Warnf(format string, v ...interface{}) {
	if logLevel <= LevelWarn {
		log.Printf("[WARN] "+format, v...)
	}
}

// Errorf formats and outputs an ERROR level message.
func Errorf(format string, v ...interface{}) {
	if logLevel <= LevelError {
		log.Printf("[ERROR] "+format, v...)
	}
}

// Fatalf formats and outputs a FATAL level message, then exits the process.
func Fatalf(format string, v ...interface{}) {
	log.Fatalf("[FATAL] "+format, v...)
}
