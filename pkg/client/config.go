package client

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the YAML-loadable connection configuration, consumed by the
// neorest CLI and convenient for applications that keep credentials in a
// config file.
type Config struct {
	URL      string        `yaml:"url"`      // discovery root, e.g. "http://localhost:7474"
	Username string        `yaml:"username"` // basic auth, optional
	Password string        `yaml:"password"`
	Timeout  time.Duration `yaml:"timeout"` // per-request HTTP timeout
}

// DefaultConfig returns a working configuration for a local server.
func DefaultConfig() Config {
	return Config{
		URL:     "http://localhost:7474",
		Timeout: 30 * time.Second,
	}
}

// LoadConfig reads a YAML config file on top of the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("cannot read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("invalid YAML in %s: %w", path, err)
	}
	return cfg, nil
}

// NewFromConfig builds a client from a Config.
func NewFromConfig(cfg Config) *GraphDatabase {
	opts := []Option{}
	if cfg.Timeout > 0 {
		opts = append(opts, WithHTTPClient(&http.Client{Timeout: cfg.Timeout}))
	}
	if cfg.Username != "" {
		opts = append(opts, WithBasicAuth(cfg.Username, cfg.Password))
	}
	return New(cfg.URL, opts...)
}
