// Package config loads the gateway configuration: defaults, then an optional
// TOML file, then environment variables.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config is the root configuration.
type Config struct {
	Server      ServerConfig      `toml:"server"`
	Logging     LoggingConfig     `toml:"logging"`
	TradingView TradingViewConfig `toml:"tradingview"`
	News        NewsConfig        `toml:"news"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Host             string   `toml:"host"`
	Port             int      `toml:"port"`
	Mode             string   `toml:"mode"` // gin mode: debug, release or test
	CORSAllowOrigins []string `toml:"cors_allow_origins"`
	ShutdownTimeout  string   `toml:"shutdown_timeout"`
}

// Addr returns host:port for http.Server.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// GetShutdownTimeout parses ShutdownTimeout, falling back to 10s.
func (c ServerConfig) GetShutdownTimeout() time.Duration {
	return parseDuration(c.ShutdownTimeout, 10*time.Second)
}

// LoggingConfig configures the slog handler.
type LoggingConfig struct {
	Level  string `toml:"level"`  // debug, info, warn, error
	Format string `toml:"format"` // json or text
}

// TradingViewConfig overrides the upstream endpoints and headers. Empty fields
// keep the client's defaults.
type TradingViewConfig struct {
	ScannerURL  string `toml:"scanner_url"`
	CalendarURL string `toml:"calendar_url"`
	NewsURL     string `toml:"news_url"`
	StoryURL    string `toml:"story_url"`
	UserAgent   string `toml:"user_agent"`
	Origin      string `toml:"origin"`
	Referer     string `toml:"referer"`
	Timeout     string `toml:"timeout"`
}

// GetTimeout parses Timeout, falling back to 10s.
func (c TradingViewConfig) GetTimeout() time.Duration {
	return parseDuration(c.Timeout, 10*time.Second)
}

// NewsConfig configures the RSS aggregation.
type NewsConfig struct {
	Concurrency int    `toml:"concurrency"`
	UserAgent   string `toml:"user_agent"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			Mode:            "release",
			ShutdownTimeout: "10s",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		TradingView: TradingViewConfig{
			Timeout: "10s",
		},
		News: NewsConfig{
			Concurrency: 8,
		},
	}
}

// Load builds the configuration. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := toml.Unmarshal(b, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: PORT %q is not a number", v)
		}
		cfg.Server.Port = p
	}
	if v := os.Getenv("GIN_MODE"); v != "" {
		cfg.Server.Mode = v
	}
	if v := os.Getenv("CORS_ALLOW_ORIGINS"); v != "" {
		cfg.Server.CORSAllowOrigins = splitList(v)
	}
	if v := os.Getenv("SHUTDOWN_TIMEOUT"); v != "" {
		cfg.Server.ShutdownTimeout = v
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}

	tv := &cfg.TradingView
	for env, dst := range map[string]*string{
		"UPSTREAM_TIMEOUT":         &tv.Timeout,
		"TRADINGVIEW_SCANNER_URL":  &tv.ScannerURL,
		"TRADINGVIEW_CALENDAR_URL": &tv.CalendarURL,
		"TRADINGVIEW_NEWS_URL":     &tv.NewsURL,
		"TRADINGVIEW_STORY_URL":    &tv.StoryURL,
		"TRADINGVIEW_USER_AGENT":   &tv.UserAgent,
		"TRADINGVIEW_ORIGIN":       &tv.Origin,
		"TRADINGVIEW_REFERER":      &tv.Referer,
	} {
		if v := os.Getenv(env); v != "" {
			*dst = v
		}
	}

	if v := os.Getenv("NEWS_CONCURRENCY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: NEWS_CONCURRENCY %q is not a number", v)
		}
		cfg.News.Concurrency = n
	}
	return nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %d out of range", c.Server.Port))
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		errs = append(errs, fmt.Errorf("server.mode %q must be debug, release or test", c.Server.Mode))
	}
	if err := positiveDuration("server.shutdown_timeout", c.Server.ShutdownTimeout); err != nil {
		errs = append(errs, err)
	}

	switch strings.ToLower(c.Logging.Format) {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("logging.format %q must be json or text", c.Logging.Format))
	}

	if err := positiveDuration("tradingview.timeout", c.TradingView.Timeout); err != nil {
		errs = append(errs, err)
	}
	for name, raw := range map[string]string{
		"tradingview.scanner_url":  c.TradingView.ScannerURL,
		"tradingview.calendar_url": c.TradingView.CalendarURL,
		"tradingview.news_url":     c.TradingView.NewsURL,
		"tradingview.story_url":    c.TradingView.StoryURL,
	} {
		if raw == "" {
			continue
		}
		u, err := url.Parse(raw)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs = append(errs, fmt.Errorf("%s %q is not an http(s) url", name, raw))
		}
	}

	if c.News.Concurrency <= 0 {
		errs = append(errs, fmt.Errorf("news.concurrency %d must be positive", c.News.Concurrency))
	}

	return errors.Join(errs...)
}

func positiveDuration(name, raw string) error {
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("%s %q: %w", name, raw, err)
	}
	if d <= 0 {
		return fmt.Errorf("%s %q must be positive", name, raw)
	}
	return nil
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
