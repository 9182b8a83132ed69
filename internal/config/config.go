// Package config loads runtime settings from an optional .env file and the
// environment. Command-line flags are applied on top by the caller.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	EnvAPIURL      = "GHBROWSE_API_URL"
	EnvPrefs       = "GHBROWSE_PREFS"
	EnvLog         = "GHBROWSE_LOG"
	EnvLogLevel    = "GHBROWSE_LOG_LEVEL"
	EnvHotLanguage = "GHBROWSE_HOT_LANGUAGE"
	EnvToken       = "GHBROWSE_TOKEN"
)

// DefaultEnvFile is read when present in the working directory.
const DefaultEnvFile = ".env"

// Config holds all runtime settings.
type Config struct {
	// APIURL is the REST base URL. Empty means the public GitHub API.
	APIURL string
	// PrefsPath is the preference database. Empty means prefs.DefaultPath.
	PrefsPath string
	// LogPath receives the debug log. Empty disables logging.
	LogPath     string
	LogLevel    string
	HotLanguage string
	// Token is an explicit credential. It takes precedence over gh CLI
	// and GITHUB_TOKEN.
	Token string
}

// Load reads envFile if it exists, then the environment. A missing file is
// not an error; a malformed one is.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read %s: %w", envFile, err)
		}
	}

	cfg := &Config{
		APIURL:      getEnv(EnvAPIURL, ""),
		PrefsPath:   getEnv(EnvPrefs, ""),
		LogPath:     getEnv(EnvLog, ""),
		LogLevel:    getEnv(EnvLogLevel, "info"),
		HotLanguage: getEnv(EnvHotLanguage, ""),
		Token:       getEnv(EnvToken, ""),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks values that can be checked without I/O.
func (c *Config) Validate() error {
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.APIURL != "" && !strings.HasPrefix(c.APIURL, "http://") && !strings.HasPrefix(c.APIURL, "https://") {
		return fmt.Errorf("%s must be an http(s) URL, got %q", EnvAPIURL, c.APIURL)
	}
	return nil
}

// Level returns the parsed log level. Call Validate first.
func (c *Config) Level() slog.Level {
	lvl, _ := ParseLevel(c.LogLevel)
	return lvl
}

// ParseLevel maps debug, info, warn and error to slog levels.
func ParseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", s)
	}
	return lvl, nil
}

// getEnv gets an environment variable with a fallback value
func getEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}
