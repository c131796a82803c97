package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"calldash/internal/config"
)

func TestNewWithWriter(t *testing.T) {
	tests := []struct {
		name      string
		cfg       config.LogConfig
		wantErr   bool
		wantLevel zerolog.Level
	}{
		{
			name:      "json production",
			cfg:       config.LogConfig{Level: "info", Format: "json", Env: "prod", Service: "calldash", Version: "1.0.0"},
			wantLevel: zerolog.InfoLevel,
		},
		{
			name:      "console development",
			cfg:       config.LogConfig{Level: "debug", Format: "console", Env: "dev", Service: "calldash"},
			wantLevel: zerolog.DebugLevel,
		},
		{
			name:    "invalid level",
			cfg:     config.LogConfig{Level: "chatty", Format: "json", Env: "prod", Service: "calldash"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l, err := NewWithWriter(tt.cfg, &buf)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantLevel, l.GetLevel())
		})
	}
}

func TestJSONFields(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewWithWriter(config.LogConfig{Level: "info", Format: "json", Env: "prod", Service: "calldash", Version: "0.1.0"}, &buf)
	require.NoError(t, err)

	cl := Component(l, "export")
	cl.Info().Int("records", 3).Msg("export finished")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "calldash", entry["service"])
	assert.Equal(t, "0.1.0", entry["version"])
	assert.Equal(t, "prod", entry["env"])
	assert.Equal(t, "export", entry["component"])
	assert.Equal(t, float64(3), entry["records"])
	assert.Equal(t, "export finished", entry["message"])
	assert.NotEmpty(t, entry["ts"])
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewWithWriter(config.LogConfig{Level: "warn", Format: "json", Env: "prod", Service: "calldash"}, &buf)
	require.NoError(t, err)

	l.Info().Msg("hidden")
	assert.Zero(t, buf.Len())

	l.Warn().Msg("shown")
	assert.Contains(t, buf.String(), "shown")
}
