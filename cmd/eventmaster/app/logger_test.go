package app

import (
	"testing"
)

// TestDetermineLogLevel tests the log level precedence logic.
func TestDetermineLogLevel(t *testing.T) {
	tests := []struct {
		name     string
		config   *Config
		expected string
	}{
		{
			name:     "default level when no flags set",
			config:   &Config{},
			expected: "info",
		},
		{
			name:     "verbose flag sets debug",
			config:   &Config{Verbose: true},
			expected: "debug",
		},
		{
			name:     "quiet flag sets warn",
			config:   &Config{Quiet: true},
			expected: "warn",
		},
		{
			name:     "both shortcuts prefer quiet",
			config:   &Config{Verbose: true, Quiet: true},
			expected: "warn",
		},
		{
			name:     "LOG_LEVEL used without shortcuts",
			config:   &Config{LogLevel: "error"},
			expected: "error",
		},
		{
			name:     "verbose overrides LOG_LEVEL",
			config:   &Config{LogLevel: "error", Verbose: true},
			expected: "debug",
		},
		{
			name:     "explicit log-level overrides verbose",
			config:   &Config{LogLevel: "error", Verbose: true, explicitLevel: true},
			expected: "error",
		},
		{
			name:     "explicit log-level overrides quiet",
			config:   &Config{LogLevel: "trace", Quiet: true, explicitLevel: true},
			expected: "trace",
		},
		{
			name:     "invalid level falls back to info",
			config:   &Config{LogLevel: "loud", explicitLevel: true},
			expected: "info",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := determineLogLevel(tt.config); got != tt.expected {
				t.Errorf("determineLogLevel() = %s, want %s", got, tt.expected)
			}
		})
	}
}

// TestUpdateFromFlags verifies that only set flags override loaded values.
func TestUpdateFromFlags(t *testing.T) {
	config := &Config{Format: "yaml", LogLevel: "warn", StateDir: "/var/lib/eventmaster"}

	config.UpdateFromFlags(true, false, true, "", "", "")
	if config.Format != "yaml" || config.LogLevel != "warn" || config.StateDir != "/var/lib/eventmaster" {
		t.Errorf("empty flags overwrote config: %+v", config)
	}
	if !config.Verbose || !config.NoColor {
		t.Errorf("boolean flags not applied: %+v", config)
	}
	if config.explicitLevel {
		t.Error("explicitLevel set without --log-level")
	}

	config.UpdateFromFlags(false, false, false, "json", "debug", "/tmp/state")
	if config.Format != "json" || config.LogLevel != "debug" || config.StateDir != "/tmp/state" {
		t.Errorf("flags not applied: %+v", config)
	}
	if !config.explicitLevel {
		t.Error("explicitLevel not set by --log-level")
	}
}

// TestNewLogger verifies the logger gets the resolved level.
func TestNewLogger(t *testing.T) {
	logger := NewLogger(&Config{Quiet: true, LogFormat: "json", LogOutput: "discard"})
	if logger.GetLevel().String() != "warn" {
		t.Errorf("level = %s, want warn", logger.GetLevel())
	}
}
