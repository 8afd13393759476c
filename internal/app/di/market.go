// Package di provides dependency injection factories for creating application components.
package di

import (
	"market_gateway/internal/platform/config"
	"market_gateway/internal/platform/externalapi/tradingview"
	infrahttp "market_gateway/internal/platform/http"
)

// TradingViewConfig merges the configured overrides onto the client defaults.
func TradingViewConfig(c config.TradingViewConfig) tradingview.Config {
	cfg := tradingview.DefaultConfig()
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&cfg.ScannerURL, c.ScannerURL)
	set(&cfg.CalendarURL, c.CalendarURL)
	set(&cfg.NewsURL, c.NewsURL)
	set(&cfg.StoryURL, c.StoryURL)
	set(&cfg.UserAgent, c.UserAgent)
	set(&cfg.Origin, c.Origin)
	set(&cfg.Referer, c.Referer)
	cfg.Timeout = c.GetTimeout()
	return cfg
}

// NewTradingViewClient creates a fully configured TradingView client with HTTP client.
func NewTradingViewClient(c config.TradingViewConfig) *tradingview.Client {
	cfg := TradingViewConfig(c)
	httpClient := infrahttp.NewHTTPClient(cfg.Timeout)
	return tradingview.NewClient(cfg, httpClient)
}
