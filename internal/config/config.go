package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"go.yaml.in/yaml/v3"

	"github.com/vadimtrunov/PickFlick/internal/metadata/tmdb"
	"github.com/vadimtrunov/PickFlick/internal/picker"
)

// Config represents the main application configuration
type Config struct {
	// Metadata provider
	TMDb TMDbConfig `yaml:"tmdb" toml:"tmdb"`

	// Application settings
	App AppConfig `yaml:"app" toml:"app"`
}

// TMDbConfig holds TMDb API configuration. Either credential may be left
// empty, but not both.
type TMDbConfig struct {
	APIKey     string        `yaml:"api_key" toml:"api_key"`
	Token      string        `yaml:"token" toml:"token"` // v4 read access token, sent as Bearer
	BaseURL    string        `yaml:"base_url,omitempty" toml:"base_url"`
	Timeout    time.Duration `yaml:"timeout,omitempty" toml:"timeout"` // 0 = no client timeout
	PosterSize string        `yaml:"poster_size,omitempty" toml:"poster_size"`
}

// AppConfig holds application-level settings
type AppConfig struct {
	DefaultCategory string `yaml:"default_category" toml:"default_category"` // "movie", "tv", "random"
	LogLevel        string `yaml:"log_level" toml:"log_level"`               // "debug", "info", "warn", "error"
	LogFormat       string `yaml:"log_format" toml:"log_format"`             // "text", "json"
}

// Load builds the configuration from an optional file plus environment
// overrides. An empty path skips the file.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		if err := decodeFile(path, &cfg); err != nil {
			return nil, err
		}
	}

	// Override with environment variables
	cfg.applyEnvOverrides()

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// LoadDotEnv loads KEY=value pairs from path into the process environment
// without overriding variables that are already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("failed to load %s: %w", path, err)
}

func decodeFile(path string, cfg *Config) error {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("config file not found: %s", path)
	}
	if err != nil {
		return fmt.Errorf("failed to stat config file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("config path %s is a directory", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return fmt.Errorf("failed to parse config file: %w", err)
		}
	case ".yaml", ".yml", "":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("failed to parse config file: %w", err)
		}
	default:
		return fmt.Errorf("unsupported config file extension %q (want .yaml, .yml or .toml)", filepath.Ext(path))
	}
	return nil
}

// applyEnvOverrides overrides config values with environment variables.
// PICKFLICK_* names win over the bare TMDB_* names.
func (c *Config) applyEnvOverrides() {
	// TMDb
	if v := firstEnv("PICKFLICK_TMDB_API_KEY", "TMDB_API_KEY"); v != "" {
		c.TMDb.APIKey = v
	}
	if v := firstEnv("PICKFLICK_TMDB_TOKEN", "TMDB_TOKEN"); v != "" {
		c.TMDb.Token = v
	}
	if v := os.Getenv("PICKFLICK_TMDB_BASE_URL"); v != "" {
		c.TMDb.BaseURL = v
	}
	if v := os.Getenv("PICKFLICK_POSTER_SIZE"); v != "" {
		c.TMDb.PosterSize = v
	}

	// App
	if v := os.Getenv("PICKFLICK_DEFAULT_CATEGORY"); v != "" {
		c.App.DefaultCategory = v
	}
	if v := os.Getenv("PICKFLICK_LOG_LEVEL"); v != "" {
		c.App.LogLevel = v
	}
	if v := os.Getenv("PICKFLICK_LOG_FORMAT"); v != "" {
		c.App.LogFormat = v
	}
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}

// Validate validates the configuration and fills in defaults
func (c *Config) Validate() error {
	// Validate TMDb
	if c.TMDb.APIKey == "" && c.TMDb.Token == "" {
		return fmt.Errorf("tmdb.api_key or tmdb.token is required")
	}
	if c.TMDb.BaseURL != "" {
		if err := validateURL(c.TMDb.BaseURL, "tmdb.base_url"); err != nil {
			return err
		}
	}
	if c.TMDb.Timeout < 0 {
		return fmt.Errorf("tmdb.timeout must not be negative")
	}

	// Validate app settings
	if _, err := picker.ParseCategory(c.App.DefaultCategory); err != nil {
		return fmt.Errorf("app.default_category: %w", err)
	}
	switch strings.ToLower(c.App.LogLevel) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("app.log_level must be one of debug, info, warn, error")
	}
	switch strings.ToLower(c.App.LogFormat) {
	case "", "text", "json":
	default:
		return fmt.Errorf("app.log_format must be 'text' or 'json'")
	}

	// Set defaults
	if c.TMDb.BaseURL == "" {
		c.TMDb.BaseURL = tmdb.DefaultBaseURL
	}
	if c.TMDb.PosterSize == "" {
		c.TMDb.PosterSize = picker.DefaultPosterSize
	}
	if c.App.DefaultCategory == "" {
		c.App.DefaultCategory = string(picker.Random)
	}
	if c.App.LogLevel == "" {
		c.App.LogLevel = "info"
	}
	if c.App.LogFormat == "" {
		c.App.LogFormat = "text"
	}

	return nil
}

// validateURL checks that raw is an absolute http(s) URL.
func validateURL(raw, field string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s is not a valid URL: %w", field, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s must use http or https", field)
	}
	if u.Host == "" {
		return fmt.Errorf("%s is missing host", field)
	}
	return nil
}
