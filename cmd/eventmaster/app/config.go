package app

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/eventmaster/pkg/constants"
	"github.com/agentstation/eventmaster/pkg/errors"
)

// DefaultTimezone interprets event dates and times.
const DefaultTimezone = "Europe/Berlin"

// Config holds the application configuration loaded from various sources
// including config files, environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Extraction configuration
	APIKey             string
	Model              string
	MaxPromptChars     int
	ExtractionTimeout  time.Duration
	ExtractionCacheTTL time.Duration
	ParallelExtraction bool

	// Board configuration
	StateDir string
	Timezone string

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string

	// explicitLevel is set when LogLevel came from --log-level rather than LOG_LEVEL.
	explicitLevel bool
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (handled by cobra)
// 2. Environment variables
// 3. .env files
// 4. Config file (~/.eventmaster.yaml or ./.eventmaster.yaml)
// 5. Defaults
func LoadConfig() (*Config, error) {
	return loadConfig(os.Getenv("EVENTMASTER_CONFIG"))
}

// loadConfig loads configuration, reading configFile instead of searching
// the standard locations when it is set.
func loadConfig(configFile string) (*Config, error) {
	loadEnvFiles()

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".eventmaster")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, &errors.ConfigError{Component: "config file", Message: "reading", Err: err}
		}
	}

	config := &Config{
		Verbose: v.GetBool("verbose"),
		Quiet:   v.GetBool("quiet"),
		NoColor: v.GetBool("no_color"),
		Format:  v.GetString("format"),

		ConfigFile: v.ConfigFileUsed(),

		APIKey:             apiKey(v),
		Model:              v.GetString("model"),
		MaxPromptChars:     v.GetInt("max_prompt_chars"),
		ExtractionTimeout:  v.GetDuration("extraction_timeout"),
		ExtractionCacheTTL: v.GetDuration("extraction_cache_ttl"),
		ParallelExtraction: v.GetBool("parallel_extraction"),

		StateDir: expandHome(v.GetString("state_dir")),
		Timezone: v.GetString("timezone"),

		LogLevel:  v.GetString("log_level"),
		LogFormat: v.GetString("log_format"),
		LogOutput: v.GetString("log_output"),
	}

	return config, nil
}

// UpdateFromFlags updates config values from parsed command flags.
// This should be called after cobra parses flags to ensure flag
// values take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel, stateDir string) {
	c.Verbose = verbose
	c.Quiet = quiet
	c.NoColor = noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
		c.explicitLevel = true
	}
	if stateDir != "" {
		c.StateDir = expandHome(stateDir)
	}
}

// Location resolves the configured timezone.
func (c *Config) Location() (*time.Location, error) {
	name := c.Timezone
	if name == "" {
		name = DefaultTimezone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, errors.WrapValidation("timezone", err)
	}
	return loc, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("model", constants.DefaultModel)
	v.SetDefault("max_prompt_chars", constants.MaxPromptChars)
	v.SetDefault("extraction_timeout", constants.ExtractionTimeout)
	v.SetDefault("extraction_cache_ttl", constants.CacheTTL)
	v.SetDefault("parallel_extraction", false)
	v.SetDefault("state_dir", defaultStateDir())
	v.SetDefault("timezone", DefaultTimezone)
	v.SetDefault("log_format", "auto")
	v.SetDefault("log_output", "stderr")
}

// loadEnvFiles loads environment variables from .env files.
// .env.local overrides .env
func loadEnvFiles() {
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load(".env")
}

// apiKey resolves the LLM key from the config file or the first set environment variable.
func apiKey(v *viper.Viper) string {
	if key := v.GetString("gemini_api_key"); key != "" {
		return key
	}
	for _, env := range []string{"GEMINI_API_KEY", "GOOGLE_API_KEY", "API_KEY"} {
		if key := os.Getenv(env); key != "" {
			return key
		}
	}
	return ""
}

func defaultStateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".eventmaster"
	}
	return filepath.Join(home, ".eventmaster")
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
