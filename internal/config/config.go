package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// APIKeyEnv is the environment variable that overrides tmdb.api_key.
const APIKeyEnv = "TMDB_API_KEY"

// Config represents the application configuration
type Config struct {
	TMDB   TMDBConfig   `yaml:"tmdb"`
	Cache  CacheConfig  `yaml:"cache"`
	Server ServerConfig `yaml:"server"`
	UI     UIConfig     `yaml:"ui"`
	Warmup WarmupConfig `yaml:"warmup"`
}

// TMDBConfig holds TMDB API configuration
type TMDBConfig struct {
	APIKey           string  `yaml:"api_key"`
	Language         string  `yaml:"language"`
	BaseURL          string  `yaml:"base_url"`
	ImageBaseURL     string  `yaml:"image_base_url"`
	TimeoutSeconds   int     `yaml:"timeout_seconds"`
	RequestsPerSec   float64 `yaml:"requests_per_second"`
	MaxAttempts      int     `yaml:"max_attempts"`
	InitialBackoffMs int     `yaml:"initial_backoff_ms"`
}

// CacheConfig holds response cache settings
type CacheConfig struct {
	Enabled       bool   `yaml:"enabled"`
	Path          string `yaml:"path"`
	TTLMinutes    int    `yaml:"ttl_minutes"`
	MemoryEntries int    `yaml:"memory_entries"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Addr              string   `yaml:"addr"`
	AllowedOrigins    []string `yaml:"allowed_origins"`
	RequestsPerMinute int      `yaml:"requests_per_minute"`
}

// UIConfig holds settings shared by the presentational shells
type UIConfig struct {
	DebounceMs    int    `yaml:"debounce_ms"`
	MotionEnabled bool   `yaml:"motion_enabled"`
	LogFile       string `yaml:"log_file"`
}

// WarmupConfig controls background cache warm-up
type WarmupConfig struct {
	Enabled         bool  `yaml:"enabled"`
	IntervalMinutes int   `yaml:"interval_minutes"`
	Pages           int   `yaml:"pages"`
	Workers         int   `yaml:"workers"`
	OnStartup       *bool `yaml:"on_startup"`
}

// Load reads and parses the configuration file.
// A missing file is not an error: defaults plus the environment are used.
func Load(path string) (*Config, error) {
	path, err := expandHome(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		// Expand environment variables in the YAML content
		expandedData := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(expandedData), &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if key := os.Getenv(APIKeyEnv); key != "" {
		cfg.TMDB.APIKey = key
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.Cache.Enabled && cfg.Cache.Path != "" {
		cachePath, err := expandHome(cfg.Cache.Path)
		if err != nil {
			return nil, err
		}
		cfg.Cache.Path = cachePath
	}

	return &cfg, nil
}

// Validate checks required fields and value ranges.
func (c *Config) Validate() error {
	if c.TMDB.APIKey == "" || c.TMDB.APIKey == "your_api_key_here" {
		return fmt.Errorf("TMDB API key is required (set %s or tmdb.api_key). Get one from https://www.themoviedb.org/settings/api", APIKeyEnv)
	}
	if c.TMDB.RequestsPerSec < 0 {
		return fmt.Errorf("tmdb.requests_per_second must not be negative")
	}
	if c.UI.DebounceMs < 0 {
		return fmt.Errorf("ui.debounce_ms must not be negative")
	}
	if c.Warmup.Enabled && c.Warmup.IntervalMinutes <= 0 {
		return fmt.Errorf("warmup.interval_minutes must be positive when warmup is enabled")
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.TMDB.Language == "" {
		c.TMDB.Language = "id-ID"
	}
	if c.TMDB.BaseURL == "" {
		c.TMDB.BaseURL = "https://api.themoviedb.org/3"
	}
	c.TMDB.BaseURL = strings.TrimRight(c.TMDB.BaseURL, "/")
	if c.TMDB.ImageBaseURL == "" {
		c.TMDB.ImageBaseURL = "https://image.tmdb.org/t/p"
	}
	if c.TMDB.TimeoutSeconds <= 0 {
		c.TMDB.TimeoutSeconds = 15
	}
	if c.TMDB.RequestsPerSec == 0 {
		c.TMDB.RequestsPerSec = 40
	}
	if c.TMDB.MaxAttempts <= 0 {
		c.TMDB.MaxAttempts = 3
	}
	if c.TMDB.InitialBackoffMs <= 0 {
		c.TMDB.InitialBackoffMs = 500
	}

	if c.Cache.Path == "" {
		c.Cache.Path = "./data/cache.db"
	}
	if c.Cache.TTLMinutes <= 0 {
		c.Cache.TTLMinutes = 60
	}
	if c.Cache.MemoryEntries <= 0 {
		c.Cache.MemoryEntries = 512
	}

	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.RequestsPerMinute <= 0 {
		c.Server.RequestsPerMinute = 120
	}

	if c.UI.DebounceMs == 0 {
		c.UI.DebounceMs = 500
	}
	if c.UI.LogFile == "" {
		c.UI.LogFile = "./data/browse.log"
	}

	if c.Warmup.IntervalMinutes == 0 {
		c.Warmup.IntervalMinutes = 30
	}
	if c.Warmup.Pages <= 0 {
		c.Warmup.Pages = 2
	}
	if c.Warmup.Workers <= 0 {
		c.Warmup.Workers = 4
	}
	if c.Warmup.OnStartup == nil {
		onStartup := true
		c.Warmup.OnStartup = &onStartup
	}
}

// expandHome expands ~ to the home directory if present
func expandHome(path string) (string, error) {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return filepath.Join(home, path[1:]), nil
	}
	return path, nil
}
