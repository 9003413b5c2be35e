package logger

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/muhammadchandra19/stock-sentinel/pkg/util"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObserved() (*Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return &Logger{logger: zap.New(core)}, logs
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, WarnLevel, ParseLevel(" warn "))
	assert.Equal(t, ErrorLevel, ParseLevel("error"))
	assert.Equal(t, InfoLevel, ParseLevel("verbose"))
	assert.Equal(t, InfoLevel, ParseLevel(""))
}

func TestContextFields(t *testing.T) {
	l, logs := newObserved()

	ctx := util.WithSource(util.WithRequestID(context.Background(), "req-1"), "poll")
	ctx = util.WithUserID(ctx, 42)
	l.InfoContext(ctx, "price upserted", NewField("symbol", "AAPL"))

	entries := logs.All()
	assert.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "AAPL", fields["symbol"])
	assert.Equal(t, "req-1", fields["request_id"])
	assert.Equal(t, "poll", fields["source"])
	assert.Equal(t, int64(42), fields["user_id"])
}

func TestContextFields_Anonymous(t *testing.T) {
	l, logs := newObserved()

	l.WarnContext(util.WithRequestID(context.Background(), "req-2"), "fetch failed")

	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "req-2", fields["request_id"])
	assert.NotContains(t, fields, "source")
	assert.NotContains(t, fields, "user_id")
}

func TestNewLogger(t *testing.T) {
	l, err := NewLogger(WithLoggingLevel(WarnLevel), WithDevelopment(true), WithService("stock-sentinel"))
	assert.NoError(t, err)
	assert.False(t, l.logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, l.logger.Core().Enabled(zapcore.WarnLevel))
}

func TestErrorIgnoresNil(t *testing.T) {
	l, logs := newObserved()

	l.Error(nil)
	l.Error(stderrors.New("boom"), NewField("symbol", "MSFT"))

	entries := logs.All()
	assert.Len(t, entries, 1)
	assert.Equal(t, "boom", entries[0].Message)
}

func TestWithFields(t *testing.T) {
	l, logs := newObserved()

	child := l.WithFields(NewField("component", "scheduler"))
	child.Warn("cycle slow")

	entries := logs.All()
	assert.Len(t, entries, 1)
	assert.Equal(t, "scheduler", entries[0].ContextMap()["component"])
}
