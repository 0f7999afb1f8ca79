// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Search provider names.
const (
	SearchGoogle     = "google"
	SearchDuckDuckGo = "duckduckgo"
)

// Source names accepted in Config.Sources.
const (
	SourceGoogleTrends = "google_trends"
	SourceTMDB         = "tmdb"
	SourceReddit       = "reddit"
	SourceTwitter      = "twitter"
)

// Environment variables consulted for empty fields.
const (
	EnvGeminiAPIKey       = "GEMINI_API_KEY"
	EnvGoogleSearchAPIKey = "GOOGLE_SEARCH_API_KEY"
	EnvGoogleSearchCX     = "GOOGLE_SEARCH_CX"
	EnvOMDbAPIKey         = "OMDB_API_KEY"
	EnvTMDBAPIKey         = "TMDB_API_KEY"
	EnvDatabaseURL        = "DATABASE_URL"
)

// Config represents the CLI configuration that can be loaded from a JSON or YAML file.
// All fields are optional; missing values use defaults or come from the environment.
type Config struct {
	// Credentials
	APIKey             string `json:"api_key,omitempty" yaml:"api_key,omitempty"`                             // Gemini API key
	GoogleSearchAPIKey string `json:"google_search_api_key,omitempty" yaml:"google_search_api_key,omitempty"` // Custom Search JSON API key
	GoogleSearchCX     string `json:"google_search_cx,omitempty" yaml:"google_search_cx,omitempty"`           // Programmable search engine ID
	OMDbAPIKey         string `json:"omdb_api_key,omitempty" yaml:"omdb_api_key,omitempty"`
	TMDBAPIKey         string `json:"tmdb_api_key,omitempty" yaml:"tmdb_api_key,omitempty"`
	DatabaseURL        string `json:"database_url,omitempty" yaml:"database_url,omitempty"` // postgres:// URL or SQLite path

	// Search
	SearchProvider string `json:"search_provider,omitempty" yaml:"search_provider,omitempty" validate:"omitempty,oneof=google duckduckgo"`
	MaxAgeDays     int    `json:"max_age_days,omitempty" yaml:"max_age_days,omitempty" validate:"gte=0,lte=365"`
	PacingMS       int    `json:"pacing_ms,omitempty" yaml:"pacing_ms,omitempty" validate:"gte=0,lte=10000"`
	ResolveDates   bool   `json:"resolve_dates,omitempty" yaml:"resolve_dates,omitempty"` // Fetch result pages to infer missing dates

	// Harvesting
	Sources       []string `json:"sources,omitempty" yaml:"sources,omitempty" validate:"dive,oneof=google_trends tmdb reddit twitter"`
	ArticleLength int      `json:"article_length,omitempty" yaml:"article_length,omitempty" validate:"gte=0,lte=20000"`

	// Model
	Model       string  `json:"model,omitempty" yaml:"model,omitempty"` // Overrides the standard model tier
	Temperature float32 `json:"temperature,omitempty" yaml:"temperature,omitempty" validate:"gte=0,lte=2"`

	// Behavior
	LogLevel string `json:"log_level,omitempty" yaml:"log_level,omitempty" validate:"omitempty,oneof=debug info warn error"`
	Verbose  bool   `json:"verbose,omitempty" yaml:"verbose,omitempty"`
}

// Defaults returns the configuration used when nothing else is set.
func Defaults() Config {
	return Config{
		DatabaseURL:    "trends.db",
		SearchProvider: SearchGoogle,
		MaxAgeDays:     30,
		PacingMS:       500,
		Sources:        []string{SourceGoogleTrends, SourceTMDB, SourceReddit, SourceTwitter},
		ArticleLength:  2000,
		LogLevel:       "info",
	}
}

// LoadConfig loads configuration from a JSON file, or YAML when the extension is .yaml or .yml.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// ApplyEnv fills empty credential fields from the environment.
func (c *Config) ApplyEnv() {
	fill := func(field *string, key string) {
		if *field == "" {
			*field = os.Getenv(key)
		}
	}
	fill(&c.APIKey, EnvGeminiAPIKey)
	fill(&c.GoogleSearchAPIKey, EnvGoogleSearchAPIKey)
	fill(&c.GoogleSearchCX, EnvGoogleSearchCX)
	fill(&c.OMDbAPIKey, EnvOMDbAPIKey)
	fill(&c.TMDBAPIKey, EnvTMDBAPIKey)
	fill(&c.DatabaseURL, EnvDatabaseURL)
}

var validate = validator.New()

// Validate checks that the configuration has valid values.
// Note: This doesn't check for credentials since every collaborator degrades without them.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			f := verrs[0]
			return fmt.Errorf("config error: '%s' failed '%s' (value %v)", f.Field(), f.Tag(), f.Value())
		}
		return fmt.Errorf("config error: %w", err)
	}
	if c.SearchProvider == SearchGoogle && (c.GoogleSearchAPIKey == "") != (c.GoogleSearchCX == "") {
		return fmt.Errorf("config error: 'google_search_api_key' and 'google_search_cx' must be set together")
	}
	return nil
}

// Pacing returns the delay between consecutive search calls.
func (c *Config) Pacing() time.Duration {
	return time.Duration(c.PacingMS) * time.Millisecond
}

// UsesGoogleSearch reports whether the Custom Search API is configured and selected.
func (c *Config) UsesGoogleSearch() bool {
	return c.SearchProvider == SearchGoogle && c.GoogleSearchAPIKey != "" && c.GoogleSearchCX != ""
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.GoogleSearchAPIKey == "" {
		result.GoogleSearchAPIKey = defaults.GoogleSearchAPIKey
	}
	if result.GoogleSearchCX == "" {
		result.GoogleSearchCX = defaults.GoogleSearchCX
	}
	if result.OMDbAPIKey == "" {
		result.OMDbAPIKey = defaults.OMDbAPIKey
	}
	if result.TMDBAPIKey == "" {
		result.TMDBAPIKey = defaults.TMDBAPIKey
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.SearchProvider == "" {
		result.SearchProvider = defaults.SearchProvider
	}
	if result.Model == "" {
		result.Model = defaults.Model
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}

	// Int fields: use default if zero
	if result.MaxAgeDays == 0 {
		result.MaxAgeDays = defaults.MaxAgeDays
	}
	if result.PacingMS == 0 {
		result.PacingMS = defaults.PacingMS
	}
	if result.ArticleLength == 0 {
		result.ArticleLength = defaults.ArticleLength
	}
	if result.Temperature == 0 {
		result.Temperature = defaults.Temperature
	}
	if len(result.Sources) == 0 {
		result.Sources = append([]string(nil), defaults.Sources...)
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
