package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/handiism/music-catalog/internal/graphql"
	"github.com/handiism/music-catalog/internal/logging"
)

// Environment variables that override file settings.
const (
	EnvEndpoint = "CATALOG_ENDPOINT"
	EnvLogLevel = "CATALOG_LOG_LEVEL"
)

// Settings holds all configuration options.
type Settings struct {
	// Server settings
	Endpoint  string            `yaml:"endpoint"`
	Timeout   string            `yaml:"timeout"`
	UserAgent string            `yaml:"user_agent"`
	Headers   map[string]string `yaml:"headers,omitempty"`

	// Query cache
	CacheSize int `yaml:"cache_size"`

	// Logging
	LogLevel  string `yaml:"log_level"`  // debug, info, warn, error
	LogFormat string `yaml:"log_format"` // console, json
	LogFile   string `yaml:"log_file"`   // empty means stderr

	// Metrics
	MetricsAddr string `yaml:"metrics_addr"` // empty disables the endpoint
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		Endpoint:  "http://localhost:8000/graphql/",
		Timeout:   "30s",
		UserAgent: "MusicCatalog",

		CacheSize: 64,

		LogLevel:  "info",
		LogFormat: "console",
	}
}

// DefaultPath returns the per-user settings file location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "music-catalog", "config.yaml")
}

// DefaultLogFile returns the log file the TUI writes to when none is configured.
func DefaultLogFile() string {
	return filepath.Join(filepath.Dir(DefaultPath()), "catalog.log")
}

// Load reads settings from a YAML file.
//
// A missing file is not an error; defaults are returned instead.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if err := yaml.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return settings, nil
}

// Save writes settings to a YAML file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// ApplyEnv overrides settings from CATALOG_* environment variables.
func (s *Settings) ApplyEnv() {
	if v := strings.TrimSpace(os.Getenv(EnvEndpoint)); v != "" {
		s.Endpoint = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		s.LogLevel = v
	}
}

// Validate reports every invalid option at once.
func (s *Settings) Validate() error {
	var errs []error

	u, err := url.Parse(s.Endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Errorf("endpoint %q must be an absolute http(s) URL", s.Endpoint))
	}
	if d, err := time.ParseDuration(s.Timeout); err != nil || d <= 0 {
		errs = append(errs, fmt.Errorf("timeout %q must be a positive duration", s.Timeout))
	}
	if s.CacheSize < 0 {
		errs = append(errs, fmt.Errorf("cache_size %d must not be negative", s.CacheSize))
	}
	if _, err := logging.ParseLevel(s.LogLevel); err != nil {
		errs = append(errs, err)
	}
	switch s.LogFormat {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("log_format %q must be console or json", s.LogFormat))
	}

	return errors.Join(errs...)
}

// TimeoutDuration returns the parsed request timeout, falling back to 30s.
func (s *Settings) TimeoutDuration() time.Duration {
	d, err := time.ParseDuration(s.Timeout)
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}

// ToClientConfig converts settings to the transport configuration.
func (s *Settings) ToClientConfig() *graphql.Config {
	headers := make(map[string]string, len(s.Headers))
	for k, v := range s.Headers {
		headers[k] = v
	}
	return &graphql.Config{
		Endpoint:  s.Endpoint,
		Timeout:   s.TimeoutDuration(),
		UserAgent: s.UserAgent,
		Headers:   headers,
		CacheSize: s.CacheSize,
	}
}

// ToLogConfig converts settings to the logger configuration.
func (s *Settings) ToLogConfig() *logging.Config {
	return &logging.Config{
		Level:  s.LogLevel,
		Format: s.LogFormat,
		File:   s.LogFile,
	}
}
