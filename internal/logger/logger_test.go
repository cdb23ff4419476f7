package logger

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestInitialize_InvalidLevel(t *testing.T) {
	defer Replace(Default())()

	err := Initialize(Config{Level: "loud"})
	assert.Error(t, err)
}

func TestInitialize_WithoutSentry(t *testing.T) {
	defer Replace(Default())()

	require.NoError(t, Initialize(Config{Level: "warn"}))
	assert.False(t, Default().Core().Enabled(zapcore.InfoLevel))
	assert.True(t, Default().Core().Enabled(zapcore.WarnLevel))
}

func TestErrorCtx_UsesErrorText(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	defer Replace(zap.New(core))()

	ErrorCtx(context.Background(), errors.New("persist failed"), zap.String("collection_id", "c1"))
	Error(nil)
	InfoCtx(context.Background(), "committed")

	entries := logs.AllUntimed()
	require.Len(t, entries, 3)
	assert.Equal(t, "persist failed", entries[0].Message)
	assert.Equal(t, "c1", entries[0].ContextMap()["collection_id"])
	assert.Equal(t, "error occurred", entries[1].Message)
	assert.Equal(t, zapcore.InfoLevel, entries[2].Level)
}
