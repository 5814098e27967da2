package logger

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"":        zapcore.InfoLevel,
		"info":    zapcore.InfoLevel,
		"DEBUG":   zapcore.DebugLevel,
		" warn ":  zapcore.WarnLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"verbose": zapcore.InfoLevel,
	}
	for raw, want := range tests {
		require.Equal(t, want, ParseLevel(raw), "level %q", raw)
	}
}

func TestNew(t *testing.T) {
	log, err := New("warn")
	require.NoError(t, err)
	require.False(t, log.Core().Enabled(zapcore.InfoLevel))
	require.True(t, log.Core().Enabled(zapcore.WarnLevel))

	dev, err := NewDevelopment("debug")
	require.NoError(t, err)
	require.True(t, dev.Core().Enabled(zapcore.DebugLevel))
}
