// Package logging builds the process logger.
package logging

import (
	"fmt"

	"homework-bot/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const Name = "homework-bot"

// New returns a console logger that writes "time, LEVEL, name, message" lines
// to stderr and appends them to cfg.LogFile when set.
func New(cfg *config.Config, verbose bool) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", cfg.LogLevel, err)
	}
	if verbose {
		level = zapcore.DebugLevel
	}

	outputs := []string{"stderr"}
	if cfg.LogFile != "" {
		outputs = append(outputs, cfg.LogFile)
	}

	zc := zap.Config{
		Level:    zap.NewAtomicLevelAt(level),
		Encoding: "console",
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:          "time",
			LevelKey:         "level",
			NameKey:          "logger",
			MessageKey:       "msg",
			StacktraceKey:    "stacktrace",
			LineEnding:       zapcore.DefaultLineEnding,
			EncodeLevel:      zapcore.CapitalLevelEncoder,
			EncodeTime:       zapcore.ISO8601TimeEncoder,
			EncodeDuration:   zapcore.StringDurationEncoder,
			EncodeName:       zapcore.FullNameEncoder,
			ConsoleSeparator: ", ",
		},
		OutputPaths:      outputs,
		ErrorOutputPaths: []string{"stderr"},
	}

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger.Named(Name), nil
}
