package logging

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"DEBUG", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"off", zerolog.Disabled},
		{"nonsense", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLevel(tt.input))
		})
	}
}

func TestParseTimeFormat(t *testing.T) {
	assert.Equal(t, time.Kitchen, parseTimeFormat("kitchen"))
	assert.Equal(t, time.RFC3339, parseTimeFormat("rfc3339"))
	assert.Equal(t, "", parseTimeFormat("unix"))
	assert.Equal(t, "15:04:05", parseTimeFormat("15:04:05"))
	assert.Equal(t, time.Kitchen, parseTimeFormat("whatever"))
}

func TestParseFields(t *testing.T) {
	fields := parseFields("service=eventmaster, env = dev,broken")
	assert.Equal(t, map[string]any{"service": "eventmaster", "env": "dev"}, fields)
	assert.Empty(t, parseFields(""))
}

func TestGetWriter(t *testing.T) {
	t.Run("discard", func(t *testing.T) {
		w := getWriter(&Config{Output: "discard", Format: "json"})
		assert.Equal(t, io.Discard, w)
	})

	t.Run("stdout console", func(t *testing.T) {
		w := getWriter(&Config{Output: "stdout", Format: "console"})
		_, ok := w.(zerolog.ConsoleWriter)
		assert.True(t, ok)
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "em.log")
		w := getWriter(&Config{Output: path, Format: "json"})
		f, ok := w.(*os.File)
		require.True(t, ok)
		t.Cleanup(func() { _ = f.Close() })
		assert.Equal(t, path, f.Name())
	})
}

func TestNewLoggerFromConfigFields(t *testing.T) {
	old := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(old) })

	path := filepath.Join(t.TempDir(), "out.log")
	logger := NewLoggerFromConfig(&Config{
		Level:  "info",
		Format: "json",
		Output: path,
		Fields: map[string]any{"service": "eventmaster"},
	})
	logger.Info().Msg("ready")
	logger.Debug().Msg("hidden")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"service":"eventmaster"`)
	assert.Contains(t, string(data), "ready")
	assert.NotContains(t, string(data), "hidden")
	assert.Equal(t, 1, bytes.Count(data, []byte("\n")))
}
