// Package logging builds the zap loggers used by the stbinfo command.
package logging

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Rotation defaults for file output.
const (
	DefaultMaxSizeMB  = 50
	DefaultMaxBackups = 3
	DefaultMaxAgeDays = 14
)

// Options configures NewLogger.
type Options struct {
	// Level is the minimum level written. Empty means info.
	Level string
	// File, when set, receives JSON entries with rotation in addition to the console.
	File string
	// Console is where human readable entries go. Nil means stderr.
	Console zapcore.WriteSyncer
}

// ParseLevel parses a case-insensitive level name. An empty string is info.
//
// Arguments:
// - s: One of debug, info, warn, warning, error.
//
// Returns:
// - zapcore.Level: The parsed level.
// - error: An error naming the unknown level.
func ParseLevel(s string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zapcore.DebugLevel, nil
	case "", "info":
		return zapcore.InfoLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, errors.Errorf("unknown log level %q", s)
	}
}

// NewFileWriter returns a rotating writer for path.
func NewFileWriter(path string) zapcore.WriteSyncer {
	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   path,
		MaxSize:    DefaultMaxSizeMB,
		MaxBackups: DefaultMaxBackups,
		MaxAge:     DefaultMaxAgeDays,
		Compress:   true,
	})
}

// NewLogger creates a logger that writes console entries and, optionally, JSON entries to a
// rotating file.
//
// Arguments:
// - opts: Level, optional file and console writer.
//
// Returns:
// - *zap.Logger: The configured logger. Callers should Sync it before exit.
// - error: An error if the level cannot be parsed.
func NewLogger(opts Options) (*zap.Logger, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}

	console := opts.Console
	if console == nil {
		console = zapcore.Lock(os.Stderr)
	}

	consoleCfg := zap.NewDevelopmentEncoderConfig()
	consoleCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(consoleCfg), console, level),
	}

	if opts.File != "" {
		fileCfg := zap.NewProductionEncoderConfig()
		fileCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(fileCfg), NewFileWriter(opts.File), level))
	}

	return zap.New(zapcore.NewTee(cores...)), nil
}
