package logs

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"cinegraph/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{in: "debug", want: slog.LevelDebug},
		{in: "INFO", want: slog.LevelInfo},
		{in: "", want: slog.LevelInfo},
		{in: " warning ", want: slog.LevelWarn},
		{in: "error", want: slog.LevelError},
		{in: "verbose", want: slog.LevelInfo, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseLogLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewLogger(t *testing.T) {
	t.Run("JSONWithServiceAttrs", func(t *testing.T) {
		cfg := &config.Config{}
		cfg.Env.Env = "test"
		cfg.Env.ServiceName = "cinegraph"
		cfg.Env.Log.Level = "warn"

		var buf bytes.Buffer
		logger, err := newLogger(&buf, cfg)
		require.NoError(t, err)

		logger.Info("dropped")
		logger.Warn("kept", slog.Int64("filmID", 3))

		var record map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
		assert.Equal(t, "kept", record["msg"])
		assert.Equal(t, "cinegraph", record["service"])
		assert.Equal(t, "test", record["env"])
		assert.InDelta(t, 3, record["filmID"], 0)
	})

	t.Run("DebugOverridesLevel", func(t *testing.T) {
		cfg := &config.Config{}
		cfg.Env.Debug = true
		cfg.Env.Log.Pretty = true
		cfg.Env.Log.Level = "error"

		var buf bytes.Buffer
		logger, err := newLogger(&buf, cfg)
		require.NoError(t, err)

		logger.Debug("visible")
		assert.Contains(t, buf.String(), "msg=visible")
	})

	t.Run("UnknownLevel", func(t *testing.T) {
		cfg := &config.Config{}
		cfg.Env.Log.Level = "loud"

		_, err := newLogger(&bytes.Buffer{}, cfg)
		assert.Error(t, err)
	})
}
