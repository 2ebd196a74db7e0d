package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewRejectsBadLevel(t *testing.T) {
	_, err := New(Config{Level: "loud"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}

func TestNewDefaults(t *testing.T) {
	l, err := New(Config{Level: "debug"})
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zap.DebugLevel))
}

func TestWithContext(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	prev := Get()
	Set(zap.New(core))
	t.Cleanup(func() { Set(prev) })

	ctx := context.WithValue(context.Background(), ConnectorKey, "postgresql")
	ctx = context.WithValue(ctx, FormatKey, "openapi")
	WithContext(ctx).Info("creating schema")

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "postgresql", fields["connector"])
	assert.Equal(t, "openapi", fields["format"])
	assert.NotContains(t, fields, "run_id")
}
