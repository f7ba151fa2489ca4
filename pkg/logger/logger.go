package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is the process wide logger. It stays nil until Init runs, and the
// helpers below drop messages while it is nil.
var Logger *log.Logger

// Config holds logger configuration.
type Config struct {
	Debug bool
	// Dir is where devo.log is written. Empty disables the file sink.
	Dir string
	// Stderr mirrors output to stderr regardless of Debug.
	Stderr bool
}

// Init initializes the global logger.
func Init(cfg Config) error {
	level := log.WarnLevel
	if cfg.Debug {
		level = log.DebugLevel
	}

	var writers []io.Writer
	if cfg.Dir != "" {
		if err := os.MkdirAll(cfg.Dir, 0755); err != nil {
			return err
		}
		writers = append(writers, &lumberjack.Logger{
			Filename:   filepath.Join(cfg.Dir, "devo.log"),
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		})
	}
	if cfg.Debug || cfg.Stderr || len(writers) == 0 {
		writers = append(writers, os.Stderr)
	}

	Logger = log.NewWithOptions(io.MultiWriter(writers...), log.Options{
		ReportCaller:    cfg.Debug,
		ReportTimestamp: true,
		Level:           level,
		Prefix:          "devo",
	})
	return nil
}

// Discard installs a logger that writes nowhere. Tests use it to keep
// output quiet while still exercising log calls.
func Discard() {
	Logger = log.NewWithOptions(io.Discard, log.Options{Level: log.DebugLevel})
}

// Debug logs a debug message
func Debug(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Debug(msg, keyvals...)
	}
}

// Info logs an info message
func Info(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Info(msg, keyvals...)
	}
}

// Warn logs a warning message
func Warn(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Warn(msg, keyvals...)
	}
}

// Error logs an error message
func Error(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Error(msg, keyvals...)
	}
}
