// Package logging builds the zap logger used by the report tools.
package logging

import (
	"fmt"

	"github.com/natefinch/lumberjack"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options configures the logger.
type Options struct {
	// Level is the console log level ("debug", "info", "warn", "error").
	Level string
	// ErrorLog is a file receiving error-level entries with stack traces.
	// Empty disables the file.
	ErrorLog   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// New builds a production logger writing to stderr, tee'd into a rotating
// error log file when Options.ErrorLog is set.
func New(opts Options) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	if opts.Level != "" {
		level, err := zapcore.ParseLevel(opts.Level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
		}
		config.Level = zap.NewAtomicLevelAt(level)
	}

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	if opts.ErrorLog == "" {
		return logger, nil
	}

	fileCore := zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		zapcore.AddSync(ErrorLogWriter(opts)),
		zapcore.ErrorLevel,
	)
	return logger.WithOptions(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
		return zapcore.NewTee(core, fileCore)
	})), nil
}

// ErrorLogWriter returns the rotating writer behind the error log file.
func ErrorLogWriter(opts Options) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   opts.ErrorLog,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
		MaxAge:     opts.MaxAgeDays,
	}
}
