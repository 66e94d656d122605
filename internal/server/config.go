package server

import (
	"time"

	"github.com/agentstation/eventmaster/pkg/constants"
)

// Config holds server configuration.
type Config struct {
	// Server settings
	Host string
	Port int

	// API settings
	PathPrefix string

	// CORS settings
	CORSEnabled bool
	CORSOrigins []string

	// Authentication settings
	AuthEnabled bool
	AuthHeader  string
	APIKey      string

	// Merge settings
	MergeRateLimit int // Merge requests per minute per IP (0 to disable)
	MaxUploadBytes int64
	MergeTimeout   time.Duration

	// Performance settings
	CacheTTL time.Duration

	// HTTP timeouts
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	// Features
	MetricsEnabled bool

	// Location interprets event dates and times for the calendar export.
	Location *time.Location
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Host:           "localhost",
		Port:           8080,
		PathPrefix:     "/api/v1",
		CORSOrigins:    []string{},
		AuthHeader:     "X-API-Key",
		MergeRateLimit: 10,
		MaxUploadBytes: constants.MaxUploadBytes,
		MergeTimeout:   constants.MergeTimeout,
		CacheTTL:       constants.CacheTTL,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   0, // merges and the status stream outlive any fixed write deadline
		IdleTimeout:    120 * time.Second,
		MetricsEnabled: true,
	}
}
