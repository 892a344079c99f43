package logs

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"campuscart/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	cfg := &config.Config{}
	cfg.Env.ServiceName = "campuscart"
	cfg.Env.Log.Level = "warn"

	logger, err := New(Params{Config: cfg, Output: &buf})
	require.NoError(t, err)

	logger.Info("dropped")
	logger.Warn("kept")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "kept", entry["msg"])
	assert.Equal(t, "campuscart", entry["service"])
}

func TestNew_UnknownLevel(t *testing.T) {
	cfg := &config.Config{}
	cfg.Env.Log.Level = "verbose"

	_, err := New(Params{Config: cfg, Output: io.Discard})
	assert.Error(t, err)
}

func TestRunContext(t *testing.T) {
	fallback := slog.New(slog.NewTextHandler(io.Discard, nil))

	assert.Same(t, fallback, LoggerOrDefault(context.Background(), fallback))
	assert.Empty(t, RunIDFromContext(context.Background()))

	ctx := NewRunContext(context.Background(), fallback)
	assert.NotEmpty(t, RunIDFromContext(ctx))
	assert.NotSame(t, fallback, LoggerOrDefault(ctx, fallback))
}
