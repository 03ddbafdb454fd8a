package infrastructure

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{input: "debug", want: slog.LevelDebug},
		{input: "info", want: slog.LevelInfo},
		{input: "WARN", want: slog.LevelWarn},
		{input: "warning", want: slog.LevelWarn},
		{input: "error", want: slog.LevelError},
		{input: "", want: slog.LevelInfo},
		{input: "nonsense", want: slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLogLevel(tt.input))
		})
	}
}

func TestTraceIDContext(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetTraceID(ctx))

	ctx = WithTraceID(ctx, "run-123")
	assert.Equal(t, "run-123", GetTraceID(ctx))

	// EnsureTraceID keeps an existing ID and generates a missing one.
	assert.Equal(t, ctx, EnsureTraceID(ctx))
	generated := EnsureTraceID(context.Background())
	require.NotEmpty(t, GetTraceID(generated))
	assert.NotEqual(t, GetTraceID(generated), GetTraceID(EnsureTraceID(context.Background())))
}

func TestGenerateTraceID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := GenerateTraceID()
		require.NotEmpty(t, id)
		assert.False(t, seen[id], "trace IDs must be unique")
		seen[id] = true
	}
}

func TestLoggerWithContext(t *testing.T) {
	logger := LoggerWithContext(WithTraceID(context.Background(), "run-456"))
	assert.NotNil(t, logger)

	assert.NotNil(t, LoggerWithContext(context.Background()))
}
