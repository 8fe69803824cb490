package logger

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options configures the application logger.
type Options struct {
	JSON  bool
	Debug bool
	// File receives log entries instead of stderr when set.
	// Screens own stdout, so it is never used for logs.
	File string
	// Version is attached to every entry when set.
	Version string
}

func New(opts Options) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	encoding := "console"

	if opts.JSON {
		encoding = "json"
	}

	if opts.Debug {
		level = zapcore.DebugLevel
	}

	output := "stderr"
	if f := strings.TrimSpace(opts.File); f != "" {
		output = f
	}

	cfg := zap.Config{
		Encoding:         encoding,
		Level:            zap.NewAtomicLevelAt(level),
		OutputPaths:      []string{output},
		ErrorOutputPaths: []string{"stderr"},
		EncoderConfig: zapcore.EncoderConfig{
			MessageKey: "step",

			LevelKey:    "level",
			EncodeLevel: zapcore.LowercaseLevelEncoder,

			TimeKey:    "time",
			EncodeTime: zapcore.RFC3339TimeEncoder,

			CallerKey:    "caller",
			EncodeCaller: zapcore.ShortCallerEncoder,
		},
	}

	if opts.Version != "" {
		cfg.InitialFields = map[string]any{"version": opts.Version}
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}

	return logger, nil
}
