package config

import (
	"embed"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/0wl93/ocean-road-archive/internal/posts"
	"github.com/adrg/xdg"
	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

//go:embed default_config.yaml
var defaultConfigFS embed.FS

const appName = "ocean-road-archive"

type ServerConfig struct {
	Addr            string `yaml:"addr" env:"ARCHIVE_ADDR"`
	ShutdownTimeout string `yaml:"shutdown_timeout"`
}

type StoreConfig struct {
	Backend     string `yaml:"backend" env:"ARCHIVE_STORE_BACKEND"`
	AccessToken string `yaml:"access_token" env:"AIRTABLE_ACCESS_TOKEN"`
	BaseID      string `yaml:"base_id" env:"AIRTABLE_BASE_ID"`
	TableID     string `yaml:"table_id" env:"AIRTABLE_TABLE_ID"`
	APIURL      string `yaml:"api_url" env:"AIRTABLE_API_URL"`
	FeedURL     string `yaml:"feed_url" env:"ARCHIVE_FEED_URL"`
	Timeout     string `yaml:"timeout"`
}

type ClientConfig struct {
	Endpoint string `yaml:"endpoint" env:"ARCHIVE_ENDPOINT"`
	Timeout  string `yaml:"timeout"`
}

type Config struct {
	Server     ServerConfig `yaml:"server"`
	Store      StoreConfig  `yaml:"store"`
	Client     ClientConfig `yaml:"client"`
	Categories []string     `yaml:"categories"`
}

// Posts projects the store settings into the fetcher's config. Values are
// trimmed so that what Missing checks is what reaches the store.
func (c *Config) Posts() posts.Config {
	return posts.Config{
		Backend:     strings.TrimSpace(c.Store.Backend),
		AccessToken: strings.TrimSpace(c.Store.AccessToken),
		BaseID:      strings.TrimSpace(c.Store.BaseID),
		TableID:     strings.TrimSpace(c.Store.TableID),
		FeedURL:     strings.TrimSpace(c.Store.FeedURL),
		APIURL:      strings.TrimSpace(c.Store.APIURL),
	}
}

func (c *Config) ShutdownDuration() time.Duration {
	return parseDuration(c.Server.ShutdownTimeout, 10*time.Second)
}

func (c *Config) StoreTimeout() time.Duration {
	return parseDuration(c.Store.Timeout, 30*time.Second)
}

func (c *Config) ClientTimeout() time.Duration {
	return parseDuration(c.Client.Timeout, 15*time.Second)
}

func parseDuration(s string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

// CategoryList returns the selectable categories with "All" first.
func (c *Config) CategoryList() []string {
	out := []string{posts.CategoryAll}
	for _, cat := range c.Categories {
		if cat != "" && cat != posts.CategoryAll {
			out = append(out, cat)
		}
	}
	return out
}

func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, appName, "config.yaml")
}

// LogPath is the log file used while the list view owns the terminal.
func LogPath() (string, error) {
	return xdg.StateFile(filepath.Join(appName, "archive.log"))
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

// Load reads the config file over the embedded defaults and then applies
// environment overrides. A missing file is written out with the defaults.
// Missing store credentials are not an error here.
func Load(path string) (*Config, error) {
	cfg, err := loadDefaults()
	if err != nil {
		return nil, err
	}

	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Non-fatal: embedded defaults still apply
		_ = writeDefaults(path)
	case err != nil:
		return nil, fmt.Errorf("reading config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func writeDefaults(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, _ := defaultConfigFS.ReadFile("default_config.yaml")
	return os.WriteFile(path, data, 0o600)
}

func validate(cfg *Config) error {
	switch cfg.Store.Backend {
	case "", posts.BackendAirtable, posts.BackendFeed:
	default:
		return fmt.Errorf("store: unknown backend %q (valid: airtable, feed)", cfg.Store.Backend)
	}
	urls := []struct {
		name  string
		value string
	}{
		{"store.api_url", cfg.Store.APIURL},
		{"store.feed_url", cfg.Store.FeedURL},
		{"client.endpoint", cfg.Client.Endpoint},
	}
	for _, u := range urls {
		if u.value == "" {
			continue
		}
		if err := validateURL(u.value); err != nil {
			return fmt.Errorf("%s: %w", u.name, err)
		}
	}
	return nil
}

func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("url scheme must be http or https, got %q", u.Scheme)
	}
	return nil
}
