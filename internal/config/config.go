// Package config resolves runtime settings. Sources are applied in order,
// later ones winning: defaults, YAML file, NOTECARDS_* environment
// variables, command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

const (
	DefaultAPIBaseURL = "https://notes-api.dicoding.dev/v2"
	DefaultStorageKey = "NOTES_APP_DATA"
)

// Config holds all runtime settings for notecards.
type Config struct {
	Backend    string        `yaml:"backend"`
	APIBaseURL string        `yaml:"api_url"`
	StorageKey string        `yaml:"storage_key"`
	DBPath     string        `yaml:"db"`
	Timeout    time.Duration `yaml:"timeout"`
	LogLevel   string        `yaml:"log_level"`
	LogFormat  string        `yaml:"log_format"`
}

// Default returns a Config with the built-in constants. The database lives
// under ~/.notecards unless home cannot be resolved.
func Default() Config {
	dbPath := filepath.Join(".notecards", "notecards.db")
	if home, err := os.UserHomeDir(); err == nil {
		dbPath = filepath.Join(home, ".notecards", "notecards.db")
	}
	return Config{
		Backend:    "local",
		APIBaseURL: DefaultAPIBaseURL,
		StorageKey: DefaultStorageKey,
		DBPath:     dbPath,
		Timeout:    10 * time.Second,
		LogLevel:   "info",
		LogFormat:  "text",
	}
}

// Load returns defaults overlaid with the YAML file at path (if it exists)
// and the environment. An empty path means NOTECARDS_CONFIG or
// ~/.notecards/config.yaml.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("NOTECARDS_CONFIG")
	}
	explicit := path != ""
	if path == "" {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, ".notecards", "config.yaml")
		}
	}
	if path != "" {
		if err := loadFile(&cfg, path, explicit); err != nil {
			return Config{}, err
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

func loadFile(cfg *Config, path string, required bool) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) && !required {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("NOTECARDS_BACKEND"); v != "" {
		cfg.Backend = v
	}
	if v := os.Getenv("NOTECARDS_API_URL"); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv("NOTECARDS_STORAGE_KEY"); v != "" {
		cfg.StorageKey = v
	}
	if v := os.Getenv("NOTECARDS_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("NOTECARDS_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Timeout = time.Duration(n) * time.Millisecond
		}
	}
	if v := os.Getenv("NOTECARDS_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("NOTECARDS_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
}

// BindFlags registers flags that override cfg in place when parsed.
func BindFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.Backend, "backend", cfg.Backend, "Note backend: local or remote")
	fs.StringVar(&cfg.APIBaseURL, "api-url", cfg.APIBaseURL, "Notes API base URL (remote backend)")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "Path of the local SQLite database")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "Per-request timeout for the remote backend")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error")
}

// Validate rejects settings no component can run with.
func (c Config) Validate() error {
	switch strings.ToLower(c.Backend) {
	case "local", "remote":
	default:
		return fmt.Errorf("unknown backend %q (want local or remote)", c.Backend)
	}
	if strings.EqualFold(c.Backend, "remote") && c.APIBaseURL == "" {
		return fmt.Errorf("remote backend requires an API URL")
	}
	if c.StorageKey == "" {
		return fmt.Errorf("storage key must not be empty")
	}
	if c.DBPath == "" {
		return fmt.Errorf("database path must not be empty")
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q (want text or json)", c.LogFormat)
	}
	return nil
}
