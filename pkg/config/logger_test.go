package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewLogger_Level(t *testing.T) {
	logger, err := NewLogger(LoggerConfig{Level: "warn", Env: "prod"})
	require.NoError(t, err)

	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))
}

func TestNewLogger_DefaultsToInfo(t *testing.T) {
	logger, err := NewLogger(LoggerConfig{Env: "local"})
	require.NoError(t, err)

	assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
}

func TestNewLogger_InvalidLevel(t *testing.T) {
	_, err := NewLogger(LoggerConfig{Level: "loud"})
	require.Error(t, err)
}
