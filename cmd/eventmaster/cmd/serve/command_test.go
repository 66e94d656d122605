package serve

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/eventmaster/internal/cmd/application"
	"github.com/agentstation/eventmaster/pkg/errors"
)

func TestParseConfigDefaults(t *testing.T) {
	t.Setenv("HTTP_PORT", "")
	t.Setenv("HTTP_HOST", "")

	cmd := NewCommand(&application.Mock{})
	require.NoError(t, cmd.ParseFlags(nil))

	cfg, err := parseConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "/api/v1", cfg.PathPrefix)
	assert.Equal(t, 10, cfg.MergeRateLimit)
	assert.Zero(t, cfg.WriteTimeout)
	assert.True(t, cfg.MetricsEnabled)
}

func TestParseConfigFlagsAndEnv(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("HTTP_HOST", "0.0.0.0")
	t.Setenv("SERVER_API_KEY", "secret")

	cmd := NewCommand(&application.Mock{})
	require.NoError(t, cmd.ParseFlags([]string{
		"--port", "3000",
		"--auth",
		"--cors-origins", "https://a.example,https://b.example",
		"--merge-timeout", "1m",
		"--metrics=false",
	}))

	cfg, err := parseConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "0.0.0.0", cfg.Host)
	assert.True(t, cfg.AuthEnabled)
	assert.Equal(t, "secret", cfg.APIKey)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, time.Minute, cfg.MergeTimeout)
	assert.False(t, cfg.MetricsEnabled)
}

func TestParseConfigErrors(t *testing.T) {
	t.Run("auth without key", func(t *testing.T) {
		t.Setenv("HTTP_PORT", "")
		t.Setenv("SERVER_API_KEY", "")
		cmd := NewCommand(&application.Mock{})
		require.NoError(t, cmd.ParseFlags([]string{"--auth"}))

		_, err := parseConfig(cmd)
		var cfgErr *errors.ConfigError
		assert.True(t, errors.As(err, &cfgErr))
	})

	t.Run("bad port", func(t *testing.T) {
		t.Setenv("HTTP_PORT", "99999")
		cmd := NewCommand(&application.Mock{})
		require.NoError(t, cmd.ParseFlags(nil))

		_, err := parseConfig(cmd)
		assert.True(t, errors.IsValidationError(err))
	})
}
