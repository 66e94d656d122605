// Package constants provides shared constants used throughout the eventmaster codebase.
// This includes timeouts, limits, file permissions, and matching parameters
// that should be consistent across the application.
package constants

import "time"

// Timeout constants define various timeout durations used in the application
const (
	// DefaultHTTPTimeout is the standard timeout for HTTP requests
	DefaultHTTPTimeout = 30 * time.Second

	// ExtractionTimeout bounds one structured extraction call
	ExtractionTimeout = 2 * time.Minute

	// MergeTimeout bounds a whole merge run started from the CLI
	MergeTimeout = 10 * time.Minute

	// ShutdownTimeout is how long the server waits for in-flight requests
	ShutdownTimeout = 30 * time.Second
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644

	// SecureFilePermissions is for sensitive files like API keys (rw-------)
	SecureFilePermissions = 0600
)

// Extraction constants
const (
	// DefaultModel is the LLM used for structured extraction
	DefaultModel = "gemini-2.5-flash"

	// MaxPromptChars is how much document text is sent to the model
	MaxPromptChars = 30000

	// MaxUploadBytes caps a single uploaded PDF
	MaxUploadBytes = 32 << 20
)

// Matching constants
const (
	// TimeTolerance is the maximum ordinal distance (exclusive) between a
	// seating start and a media start for them to match. Ordinals are HHMM
	// integers, so 50 is not exactly fifty minutes across an hour boundary.
	TimeTolerance = 50

	// EventIDPrefix prefixes the positional merged event id.
	EventIDPrefix = "evt-"
)

// Cache constants
const (
	// CacheTTL is the default time-to-live for cached extraction results
	CacheTTL = 30 * time.Minute

	// CacheCleanupInterval is how often to clean expired cache entries
	CacheCleanupInterval = 5 * time.Minute
)

// Storage file names inside the state directory
const (
	ScheduleFile    = "schedule.json"
	AnnotationsFile = "annotations.yaml"
	PreferencesFile = "preferences.yaml"
)
