package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmitrijs2005/qdrive/internal/flagx"
	"gopkg.in/yaml.v3"
)

// Config holds runtime settings for the QDrive CLI.
type Config struct {
	ServerURL      string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with local development defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:3000"
	c.RequestTimeout = 10 * time.Second
}

// LoadConfig builds a Config from defaults, an optional file and flags.
func LoadConfig() (*Config, error) {
	return load(os.Args[1:])
}

func load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if path := flagx.ConfigFileFlag(args); path != "" {
		if err := parseFile(cfg, path); err != nil {
			return nil, err
		}
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if cfg.ServerURL == "" {
		return nil, fmt.Errorf("server url is required")
	}
	return cfg, nil
}

type fileConfig struct {
	ServerURL             string `json:"server_url" yaml:"server_url"`
	RequestTimeoutSeconds int    `json:"request_timeout_seconds" yaml:"request_timeout_seconds"`
}

func parseFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	c := &fileConfig{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(data, c)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, c)
	default:
		return fmt.Errorf("unsupported config file %q", path)
	}
	if err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	if c.ServerURL != "" {
		cfg.ServerURL = c.ServerURL
	}
	if c.RequestTimeoutSeconds > 0 {
		cfg.RequestTimeout = time.Duration(c.RequestTimeoutSeconds) * time.Second
	}
	return nil
}
