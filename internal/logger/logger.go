// Package logger holds the process-wide log sink.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

const fileName = "slotlog.log"

// Logger is nil until Init succeeds.
var Logger *log.Logger

var sink *lumberjack.Logger

// Config selects the log directory and verbosity. Level, when set, wins
// over Debug.
type Config struct {
	Debug  bool
	Level  string
	LogDir string
}

func levelFor(cfg Config) (log.Level, error) {
	if cfg.Level != "" {
		level, err := log.ParseLevel(cfg.Level)
		if err != nil {
			return 0, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
		return level, nil
	}
	if cfg.Debug {
		return log.DebugLevel, nil
	}
	return log.WarnLevel, nil
}

// Init replaces the global logger with one writing to a rotated file in
// LogDir, plus stderr when Debug is set.
func Init(cfg Config) error {
	level, err := levelFor(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.LogDir, 0o755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	if err := Close(); err != nil {
		return err
	}

	sink = &lumberjack.Logger{
		Filename:   filepath.Join(cfg.LogDir, fileName),
		MaxSize:    5,
		MaxBackups: 3,
		MaxAge:     28,
		Compress:   true,
	}
	var w io.Writer = sink
	if cfg.Debug {
		w = io.MultiWriter(os.Stderr, sink)
	}
	Logger = log.NewWithOptions(w, log.Options{
		Prefix:          "slotlog",
		Level:           level,
		ReportTimestamp: true,
		ReportCaller:    cfg.Debug,
	})
	return nil
}

// Close flushes and closes the log file and drops the global logger.
func Close() error {
	Logger = nil
	if sink == nil {
		return nil
	}
	err := sink.Close()
	sink = nil
	return err
}

func emit(level log.Level, msg string, keyvals []any) {
	if Logger == nil {
		return
	}
	Logger.Log(level, msg, keyvals...)
}

func Debug(msg string, keyvals ...any) { emit(log.DebugLevel, msg, keyvals) }

func Info(msg string, keyvals ...any) { emit(log.InfoLevel, msg, keyvals) }

func Warn(msg string, keyvals ...any) { emit(log.WarnLevel, msg, keyvals) }

func Error(msg string, keyvals ...any) { emit(log.ErrorLevel, msg, keyvals) }
