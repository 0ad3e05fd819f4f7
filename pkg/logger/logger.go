// Package logger provides structured logging for treepp.
package logger

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Fields is a set of key/value pairs attached to a log entry.
type Fields map[string]interface{}

// Format selects the encoding of log entries.
type Format string

const (
	// FormatJSON writes one JSON object per entry
	FormatJSON Format = "json"
	// FormatConsole writes tab separated, human readable entries
	FormatConsole Format = "console"
)

// Logger defines the logging operations used across treepp.
type Logger interface {
	// Debug logs at debug level. Only shown when verbosity >= 1
	Debug(msg string)

	// Info logs at info level. Always shown.
	Info(msg string)

	// Warn logs at warn level. Always shown.
	Warn(msg string)

	// Error logs at error level. Always shown.
	Error(msg string)

	// Trace logs detailed per-entry activity. Only shown when verbosity >= 2
	Trace(msg string)

	// WithFields returns a Logger that adds fields to every entry it writes.
	WithFields(fields Fields) Logger
}

// Config holds the configuration for a new Logger.
type Config struct {
	// Verbosity determines the logging level:
	// 0: Info, Warn, Error (default)
	// 1: Debug + Level 0
	// 2: Trace + Level 1
	Verbosity int

	// Format is the entry encoding, FormatJSON when empty
	Format Format

	// Output is where entries are written, os.Stderr when nil
	Output io.Writer
}

type logger struct {
	zap       *zap.Logger
	verbosity int
}

// NewLogger creates a Logger from config.
//
//	log := logger.NewLogger(logger.Config{Verbosity: 1})
//	log.WithFields(logger.Fields{"path": root}).Info("Walk started")
func NewLogger(config Config) Logger {
	if config.Output == nil {
		config.Output = os.Stderr
	}

	core := zapcore.NewCore(
		newEncoder(config.Format),
		zapcore.AddSync(config.Output),
		levelFor(config.Verbosity),
	)

	return &logger{
		zap:       zap.New(core),
		verbosity: config.Verbosity,
	}
}

// NewNop returns a Logger that discards everything.
func NewNop() Logger {
	return &logger{zap: zap.NewNop()}
}

// ParseFormat converts s to a Format, rejecting unknown values.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatConsole:
		return FormatConsole, nil
	}
	return "", fmt.Errorf("unknown log format %q: must be one of [json console]", s)
}

func newEncoder(format Format) zapcore.Encoder {
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "message",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	if format == FormatConsole {
		encoderConfig.TimeKey = ""
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return zapcore.NewConsoleEncoder(encoderConfig)
	}

	return zapcore.NewJSONEncoder(encoderConfig)
}

func levelFor(verbosity int) zapcore.LevelEnabler {
	if verbosity <= 0 {
		return zapcore.InfoLevel
	}
	return zapcore.DebugLevel
}

func (l *logger) Debug(msg string) {
	l.zap.Debug(msg)
}

func (l *logger) Info(msg string) {
	l.zap.Info(msg)
}

func (l *logger) Warn(msg string) {
	l.zap.Warn(msg)
}

func (l *logger) Error(msg string) {
	l.zap.Error(msg)
}

func (l *logger) Trace(msg string) {
	if l.verbosity >= 2 {
		l.zap.Debug("TRACE: " + msg)
	}
}

func (l *logger) WithFields(fields Fields) Logger {
	zapFields := make([]zap.Field, 0, len(fields))
	for k, v := range fields {
		zapFields = append(zapFields, zap.Any(k, v))
	}

	return &logger{
		zap:       l.zap.With(zapFields...),
		verbosity: l.verbosity,
	}
}
