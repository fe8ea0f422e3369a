package logs

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"solar/config"

	"github.com/pkg/errors"
	"go.uber.org/fx"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	defaultMaxSizeMB  = 100
	defaultMaxBackups = 3
)

// Params defines the parameters required for the logger
type Params struct {
	fx.In

	Lc     fx.Lifecycle `optional:"true"`
	Config *config.Config
}

// New creates and initializes slog.Logger
func New(params Params) (*slog.Logger, error) {
	// Parse log level from config
	level, err := parseLogLevel(params.Config.Env.Log.Level)
	if err != nil {
		return nil, err
	}

	var out io.Writer = os.Stdout
	if file := params.Config.Env.Log.File; file != "" {
		rotator := newRotator(params.Config.Env.Log)
		out = io.MultiWriter(os.Stdout, rotator)

		if params.Lc != nil {
			params.Lc.Append(fx.Hook{
				OnStop: func(context.Context) error {
					return rotator.Close()
				},
			})
		}
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if params.Config.Env.Log.Pretty {
		handler = slog.NewTextHandler(out, opts)
	} else {
		handler = slog.NewJSONHandler(out, opts)
	}

	logger := slog.New(handler).With(slog.String("service", params.Config.Env.ServiceName))
	slog.SetDefault(logger)

	return logger, nil
}

func newRotator(cfg config.Log) *lumberjack.Logger {
	maxSize := cfg.MaxSizeMB
	if maxSize <= 0 {
		maxSize = defaultMaxSizeMB
	}
	maxBackups := cfg.MaxBackups
	if maxBackups <= 0 {
		maxBackups = defaultMaxBackups
	}

	return &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    maxSize,
		MaxBackups: maxBackups,
		Compress:   true,
	}
}

// parseLogLevel converts string log level to slog.Level
func parseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, errors.Errorf("unknown log level: %s", level)
	}
}
