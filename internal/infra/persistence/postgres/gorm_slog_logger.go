package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"solar/config"
	deliverycontext "solar/internal/delivery/context"
	"solar/internal/errors"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// queryLogger writes GORM output through the request logger found in the
// statement context, so SQL lines carry the request id of the API call
// that issued them.
type queryLogger struct {
	base          *slog.Logger
	level         logger.LogLevel
	slowThreshold time.Duration
}

// newGormSlogLogger builds the GORM logger from the database config. A nil
// config logs failures only.
func newGormSlogLogger(base *slog.Logger, cfg *config.Config) logger.Interface {
	l := &queryLogger{base: base, level: logger.Error}
	if cfg == nil {
		return l
	}

	l.level = logger.Warn
	l.slowThreshold = cfg.Database.SlowQueryThreshold
	if cfg.Database.LogQueries || cfg.Env.Debug {
		l.level = logger.Info
	}

	return l
}

func (l *queryLogger) LogMode(level logger.LogLevel) logger.Interface {
	cloned := *l
	cloned.level = level

	return &cloned
}

func (l *queryLogger) Info(ctx context.Context, msg string, args ...any) {
	l.message(ctx, logger.Info, slog.LevelInfo, msg, args)
}

func (l *queryLogger) Warn(ctx context.Context, msg string, args ...any) {
	l.message(ctx, logger.Warn, slog.LevelWarn, msg, args)
}

func (l *queryLogger) Error(ctx context.Context, msg string, args ...any) {
	l.message(ctx, logger.Error, slog.LevelError, msg, args)
}

func (l *queryLogger) message(ctx context.Context, threshold logger.LogLevel, level slog.Level, msg string, args []any) {
	if l.level < threshold {
		return
	}

	l.logger(ctx).LogAttrs(ctx, level, "Database message", slog.String("message", fmt.Sprintf(msg, args...)))
}

func (l *queryLogger) Trace(ctx context.Context, begin time.Time, sqlAndRowsFn func() (string, int64), err error) {
	if l.level == logger.Silent {
		return
	}

	elapsed := time.Since(begin)

	switch {
	// Lookups that miss are answered with a domain NotFound by the repositories.
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && l.level >= logger.Error:
		attrs := append(queryAttrs(sqlAndRowsFn, elapsed), slog.Any("error", err))
		l.logger(ctx).LogAttrs(ctx, slog.LevelError, "Database query failed", attrs...)
	case l.slowThreshold > 0 && elapsed > l.slowThreshold && l.level >= logger.Warn:
		attrs := append(queryAttrs(sqlAndRowsFn, elapsed), slog.Duration("threshold", l.slowThreshold))
		l.logger(ctx).LogAttrs(ctx, slog.LevelWarn, "Slow database query", attrs...)
	case l.level >= logger.Info:
		l.logger(ctx).LogAttrs(ctx, slog.LevelDebug, "Database query", queryAttrs(sqlAndRowsFn, elapsed)...)
	}
}

func (l *queryLogger) logger(ctx context.Context) *slog.Logger {
	if l.base == nil {
		return deliverycontext.GetLoggerOrDefault(ctx, slog.Default())
	}

	return deliverycontext.GetLoggerOrDefault(ctx, l.base)
}

func queryAttrs(sqlAndRowsFn func() (string, int64), elapsed time.Duration) []slog.Attr {
	sql, rows := sqlAndRowsFn()

	return []slog.Attr{
		slog.String("sql", sql),
		slog.Int64("rows", rows),
		slog.Duration("elapsed", elapsed),
	}
}
