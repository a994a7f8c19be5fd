package telemetry

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func withObserver(t *testing.T, level zapcore.Level) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(level)
	prev := Logger()
	SetLogger(zap.New(core))
	t.Cleanup(func() { SetLogger(prev) })
	return logs
}

func TestInfoWritesFields(t *testing.T) {
	logs := withObserver(t, zapcore.InfoLevel)

	Info("snapshot.computed", map[string]any{"user_id": "guest:1", "records": 4})

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "snapshot.computed", entries[0].Message)
	ctx := entries[0].ContextMap()
	assert.Equal(t, "guest:1", ctx["user_id"])
	assert.EqualValues(t, 4, ctx["records"])
}

func TestErrorFieldsAreNamed(t *testing.T) {
	logs := withObserver(t, zapcore.InfoLevel)

	Error("cache.get_failed", map[string]any{"error": errors.New("boom")})

	entries := logs.FilterMessage("cache.get_failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
	assert.Equal(t, "boom", entries[0].ContextMap()["error"])
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLevel("DEBUG"))
	assert.Equal(t, zapcore.WarnLevel, parseLevel("warning"))
	assert.Equal(t, zapcore.ErrorLevel, parseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel(""))
}

func TestSetLoggerNilFallsBackToNop(t *testing.T) {
	prev := Logger()
	t.Cleanup(func() { SetLogger(prev) })

	SetLogger(nil)
	assert.NotPanics(t, func() { Warn("ignored", nil) })
}
