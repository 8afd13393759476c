// Package tradingview provides a client for the TradingView screener, calendar and news endpoints.
package tradingview

import (
	"net/http"
	"time"
)

// Config holds the upstream endpoints and the fixed header set sent with every call.
type Config struct {
	ScannerURL   string        // e.g. "https://scanner.tradingview.com"
	CalendarURL  string        // e.g. "https://economic-calendar.tradingview.com"
	NewsURL      string        // e.g. "https://news-mediator.tradingview.com"
	StoryURL     string        // e.g. "https://news-headlines.tradingview.com"
	UserAgent    string        // browser user agent the endpoints expect
	Origin       string        // Origin header
	Referer      string        // Referer header
	Language     string        // Accept-Language header
	ScreenerLang string        // options.lang for stock scans
	Timeout      time.Duration // whole-request timeout for outbound calls
}

// DefaultConfig returns the production endpoints and headers.
func DefaultConfig() Config {
	return Config{
		ScannerURL:   "https://scanner.tradingview.com",
		CalendarURL:  "https://economic-calendar.tradingview.com",
		NewsURL:      "https://news-mediator.tradingview.com",
		StoryURL:     "https://news-headlines.tradingview.com",
		UserAgent:    "Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:139.0) Gecko/20100101 Firefox/139.0",
		Origin:       "https://tr.tradingview.com",
		Referer:      "https://tr.tradingview.com/",
		Language:     "en-US,en;q=0.5",
		ScreenerLang: "tr",
		Timeout:      10 * time.Second,
	}
}

// Header returns the header set stamped on every outbound request.
// Accept-Encoding is left to net/http so gzip bodies are decoded transparently.
func (c Config) Header() http.Header {
	h := http.Header{}
	h.Set("Accept", "application/json")
	h.Set("Accept-Language", c.Language)
	h.Set("Content-Type", "application/json")
	h.Set("Origin", c.Origin)
	h.Set("Referer", c.Referer)
	h.Set("User-Agent", c.UserAgent)
	return h
}
