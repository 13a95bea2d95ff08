package config

import (
	"embed"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

//go:embed default_config.yaml
var defaultConfigFS embed.FS

type Config struct {
	Model      string `yaml:"model"`
	APIBaseURL string `yaml:"api_base_url,omitempty"`
	Listen     string `yaml:"listen,omitempty"`
}

// GetModel returns the configured model, defaulting to gpt-4o-mini.
func (c *Config) GetModel() string {
	if c.Model == "" {
		return "gpt-4o-mini"
	}
	return c.Model
}

// GetListen returns the serve-mode bind address.
func (c *Config) GetListen() string {
	if c.Listen == "" {
		return "127.0.0.1:8977"
	}
	return c.Listen
}

func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "linksaver", "config.yaml")
}

// DBPath is where the link database lives. Saved links are user data, so
// they go under the data dir rather than the cache dir.
func DBPath() string {
	return filepath.Join(xdg.DataHome, "linksaver", "links.db")
}

func loadDefaults() (*Config, error) {
	data, err := defaultConfigFS.ReadFile("default_config.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded config: %w", err)
	}
	return &cfg, nil
}

func Load(path string) (*Config, error) {
	defaults, err := loadDefaults()
	if err != nil {
		return nil, err
	}

	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Write defaults to config path on first run
			if err := writeDefaults(path); err != nil {
				// Non-fatal: just use embedded defaults
				return defaults, nil
			}
			return defaults, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func writeDefaults(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, _ := defaultConfigFS.ReadFile("default_config.yaml")
	return os.WriteFile(path, data, 0o644)
}

func validate(cfg *Config) error {
	if cfg.APIBaseURL != "" {
		u, err := url.Parse(cfg.APIBaseURL)
		if err != nil {
			return fmt.Errorf("invalid api_base_url: %w", err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("api_base_url scheme must be http or https, got %q", u.Scheme)
		}
	}
	return nil
}
