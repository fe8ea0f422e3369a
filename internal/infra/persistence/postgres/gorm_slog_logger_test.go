package postgres

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"solar/config"
	deliverycontext "solar/internal/delivery/context"
	"solar/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newBufferedQueryLogger(cfg *config.Config) (*queryLogger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	base := slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	return newGormSlogLogger(base, cfg).(*queryLogger), buf
}

func sqlFn() (string, int64) { return "SELECT 1", 1 }

func TestQueryLogger_SlowQueryUsesConfiguredThreshold(t *testing.T) {
	cfg := &config.Config{}
	cfg.Database.SlowQueryThreshold = 10 * time.Millisecond
	l, buf := newBufferedQueryLogger(cfg)

	l.Trace(context.Background(), time.Now().Add(-time.Millisecond), sqlFn, nil)
	assert.Empty(t, buf.String())

	l.Trace(context.Background(), time.Now().Add(-time.Second), sqlFn, nil)
	assert.Contains(t, buf.String(), "Slow database query")
	assert.Contains(t, buf.String(), `"threshold":10000000`)
}

func TestQueryLogger_FailuresCarryRequestLogger(t *testing.T) {
	l, buf := newBufferedQueryLogger(&config.Config{})

	requestLogger := l.base.With(slog.String("request_id", "req-42"))
	ctx := deliverycontext.WithLogger(context.Background(), requestLogger)

	l.Trace(ctx, time.Now(), sqlFn, gorm.ErrRecordNotFound)
	assert.Empty(t, buf.String())

	l.Trace(ctx, time.Now(), sqlFn, errors.New("disk I/O error"))
	assert.Contains(t, buf.String(), "Database query failed")
	assert.Contains(t, buf.String(), `"request_id":"req-42"`)
	assert.Contains(t, buf.String(), "disk I/O error")
}

func TestQueryLogger_LogQueries(t *testing.T) {
	quiet, quietBuf := newBufferedQueryLogger(&config.Config{})
	quiet.Trace(context.Background(), time.Now(), sqlFn, nil)
	assert.Empty(t, quietBuf.String())

	cfg := &config.Config{}
	cfg.Database.LogQueries = true
	verbose, verboseBuf := newBufferedQueryLogger(cfg)
	verbose.Trace(context.Background(), time.Now(), sqlFn, nil)
	assert.Contains(t, verboseBuf.String(), `"sql":"SELECT 1"`)
}

func TestOpenMemory_UsesQueryLogger(t *testing.T) {
	db, err := OpenMemory("")
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	l, ok := db.Logger.(*queryLogger)
	require.True(t, ok, "unexpected logger %T", db.Logger)

	buf := &bytes.Buffer{}
	l.base = slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	l.Trace(context.Background(), time.Now().Add(-time.Minute), sqlFn, nil)
	l.Trace(context.Background(), time.Now(), sqlFn, gorm.ErrRecordNotFound)
	assert.Empty(t, buf.String())

	l.Trace(context.Background(), time.Now(), sqlFn, errors.New("no such table: users"))
	assert.Contains(t, buf.String(), "Database query failed")
}
