package sitepress

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/eringen/sitepress/blog"
	"github.com/eringen/sitepress/views"
)

// Storage backends.
const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
)

// Config holds all configuration for a sitepress server.
type Config struct {
	Site views.SiteConfig `mapstructure:"site"`

	Addr        string        `mapstructure:"addr"`         // listen address (default ":3000")
	ContentPath string        `mapstructure:"content"`      // YAML file or Markdown dir; empty uses the built-in posts
	Store       string        `mapstructure:"store"`        // "memory" (default) or "sqlite"
	DSN         string        `mapstructure:"dsn"`          // SQLite DSN when Store is "sqlite"; empty opens a private in-memory database
	CacheTTL    time.Duration `mapstructure:"cache_ttl"`    // PostCache TTL (default 5min, negative serves the store directly)
	StaticDir   string        `mapstructure:"static_dir"`   // static assets (default "public")
	LogLevel    string        `mapstructure:"log_level"`    // debug, info, warn, error
	ShutdownTTL time.Duration `mapstructure:"shutdown_ttl"` // graceful shutdown budget (default 10s)
	RateLimit   int           `mapstructure:"rate_limit"`   // requests per minute per client (default 300, negative disables)
}

func (c *Config) setDefaults() {
	if c.Site.Name == "" {
		c.Site.Name = "Blog"
	}
	if c.Site.URL == "" {
		c.Site.URL = "http://localhost:3000"
	}
	c.Site.URL = strings.TrimRight(c.Site.URL, "/")
	if c.Site.Author.Name == "" {
		c.Site.Author.Name = c.Site.Name
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.Store == "" {
		c.Store = StoreMemory
	}
	if c.CacheTTL == 0 {
		c.CacheTTL = 5 * time.Minute
	}
	if c.StaticDir == "" {
		c.StaticDir = "public"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.ShutdownTTL == 0 {
		c.ShutdownTTL = 10 * time.Second
	}
	if c.RateLimit == 0 {
		c.RateLimit = 300
	}
}

// Validate reports configuration values the server cannot run with.
func (c Config) Validate() error {
	switch c.Store {
	case StoreMemory, StoreSQLite:
	default:
		return fmt.Errorf("sitepress: unknown store %q", c.Store)
	}
	return nil
}

// LoadConfig reads config from file (or ./config.yaml when file is empty and
// present) and SITEPRESS_* environment variables, then applies defaults.
// Nested keys map to env names with "." replaced by "_", e.g. SITEPRESS_SITE_URL.
func LoadConfig(file string) (Config, error) {
	v := viper.New()

	// Every key needs a default so AutomaticEnv can see it during Unmarshal.
	v.SetDefault("site.name", "")
	v.SetDefault("site.url", "")
	v.SetDefault("site.description", "")
	v.SetDefault("site.logo", "")
	v.SetDefault("site.twitter", "")
	v.SetDefault("site.author.name", "")
	v.SetDefault("site.author.role", "")
	v.SetDefault("site.author.bio", "")
	v.SetDefault("site.author.avatar", "")
	v.SetDefault("addr", "")
	v.SetDefault("content", "")
	v.SetDefault("store", "")
	v.SetDefault("dsn", "")
	v.SetDefault("cache_ttl", 0)
	v.SetDefault("static_dir", "")
	v.SetDefault("log_level", "")
	v.SetDefault("shutdown_ttl", 0)
	v.SetDefault("rate_limit", 0)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("SITEPRESS")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.setDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App after the built-in routes are set up.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithPosts serves posts instead of loading Config.ContentPath.
func WithPosts(posts []blog.Post) Option {
	return func(a *App) {
		a.posts = posts
	}
}

// WithShuffler sets the random source used to pick related posts.
func WithShuffler(s blog.Shuffler) Option {
	return func(a *App) {
		a.shuffler = s
	}
}
