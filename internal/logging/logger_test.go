package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "warn", cfg.Level)
	assert.Equal(t, "console", cfg.Format)
	assert.NotNil(t, cfg.Output)
}

func TestInit(t *testing.T) {
	t.Cleanup(func() { Init(DefaultConfig()) })

	var buf bytes.Buffer
	Init(Config{Level: "info", Format: "json", Output: &buf})

	Debug().Msg("hidden")
	Info().Str("goal", "Machine Learning").Msg("path generated")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"level":"info"`)
	assert.Contains(t, out, `"goal":"Machine Learning"`)
	assert.Contains(t, out, "path generated")
}

func TestInit_ConsoleFormat(t *testing.T) {
	t.Cleanup(func() { Init(DefaultConfig()) })

	var buf bytes.Buffer
	Init(Config{Level: "warn", Format: "console", Output: &buf})

	Warn().Msg("over budget")
	Info().Msg("not shown")

	assert.Contains(t, buf.String(), "over budget")
	assert.NotContains(t, buf.String(), "not shown")
	assert.NotContains(t, buf.String(), `"level"`)
}

func TestWith(t *testing.T) {
	t.Cleanup(func() { Init(DefaultConfig()) })

	var buf bytes.Buffer
	Init(Config{Level: "debug", Format: "json", Output: &buf})

	l := With().Str("component", "engine").Logger()
	l.Debug().Msg("ready")
	assert.Contains(t, buf.String(), `"component":"engine"`)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"INFO", zerolog.InfoLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"off", zerolog.Disabled},
		{" info ", zerolog.InfoLevel},
		{"bogus", zerolog.WarnLevel},
		{"", zerolog.WarnLevel},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLevel(tt.input))
		})
	}
}

func TestValidLevel(t *testing.T) {
	require.NoError(t, ValidLevel("debug"))
	require.NoError(t, ValidLevel(""))
	assert.Error(t, ValidLevel("loud"))
}

func TestNewTestLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewTestLogger(&buf)
	l.Error().Msg("captured")
	assert.Contains(t, buf.String(), "captured")
}
