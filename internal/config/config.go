// Package config resolves client settings from defaults, an optional YAML
// file, an optional .env file and SELFCHECK_* environment variables.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/aiethics/selfcheck/internal/api"
	"github.com/aiethics/selfcheck/internal/storage"
)

// Config holds all client configuration.
type Config struct {
	// BaseURL is the scheme and host of the diagnosis service.
	BaseURL string `yaml:"base_url"`

	// ResultPath is the path of the result report endpoint.
	ResultPath string `yaml:"result_path"`

	// Storage selects the persisted storage backend. See storage.Open.
	Storage string `yaml:"storage"`

	// LogFile is where diagnostic logs are written. Empty means the
	// default state directory.
	LogFile string `yaml:"log_file"`

	// Verbose enables debug logging.
	Verbose bool `yaml:"verbose"`

	// Timeout bounds a single HTTP request.
	Timeout time.Duration `yaml:"timeout"`

	// MockAddr is the listen address of the mock-server command.
	MockAddr string `yaml:"mock_addr"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		BaseURL:    "http://localhost:8080",
		ResultPath: api.DefaultResultPath,
		Storage:    "sqlite",
		Timeout:    15 * time.Second,
		MockAddr:   "127.0.0.1:8080",
	}
}

// Load builds a Config: defaults, then the YAML file at path (skipped when
// path is empty or, for the default path, missing), then .env, then the
// environment.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			if explicit || !errors.Is(err, os.ErrNotExist) {
				return Config{}, err
			}
		}
	}

	// A missing .env is the normal case.
	_ = godotenv.Load()

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("SELFCHECK_BASE_URL"); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv("SELFCHECK_RESULT_PATH"); v != "" {
		c.ResultPath = v
	}
	if v := os.Getenv("SELFCHECK_STORAGE"); v != "" {
		c.Storage = v
	}
	if v := os.Getenv("SELFCHECK_LOG_FILE"); v != "" {
		c.LogFile = v
	}
	if v := os.Getenv("SELFCHECK_VERBOSE"); v == "1" || v == "true" {
		c.Verbose = true
	}
	if v := os.Getenv("SELFCHECK_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Timeout = d
		}
	}
	if v := os.Getenv("SELFCHECK_MOCK_ADDR"); v != "" {
		c.MockAddr = v
	}
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("base_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("base_url must be http or https, got %q", c.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("base_url has no host: %q", c.BaseURL)
	}
	if !storage.ValidLocation(c.Storage) {
		return fmt.Errorf("unsupported storage %q", c.Storage)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	return nil
}

// DefaultPath returns $XDG_CONFIG_HOME/selfcheck/config.yaml, falling back
// to ~/.config. It returns "" if no home directory can be found.
func DefaultPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "selfcheck", "config.yaml")
}
