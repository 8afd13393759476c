// Package market holds the static market tables and resolves free-form symbols
// such as "NASDAQ:AAPL" to the provider's market codes.
package market

import "strings"

// Default is the market used when nothing else resolves.
const Default = "turkey"

// Market is one screener market.
type Market struct {
	Name     string // human readable, e.g. "USA"
	Code     string // provider market code, e.g. "america"
	Exchange string // primary exchange prefix, e.g. "NASDAQ"
}

// Markets lists the supported markets. Declaration order is the tie-break
// order for substring matches in Resolve.
var Markets = []Market{
	{Name: "Türkiye", Code: "turkey", Exchange: "BIST"},
	{Name: "USA", Code: "america", Exchange: "NASDAQ"},
	{Name: "Germany", Code: "germany", Exchange: "XETR"},
	{Name: "Japan", Code: "japan", Exchange: "TSE"},
	{Name: "Hong Kong", Code: "hongkong", Exchange: "HKEX"},
	{Name: "UK", Code: "uk", Exchange: "LSE"},
}

// Prefixes maps exchange prefixes to market codes.
var Prefixes = map[string]string{
	"BIST":   "turkey",
	"NASDAQ": "america",
	"NYSE":   "america",
	"AMEX":   "america",
	"OTC":    "america",
	"XETR":   "germany",
	"FWB":    "germany",
	"GETTEX": "germany",
	"TSE":    "japan",
	"HKEX":   "hongkong",
	"LSE":    "uk",
}

// Table returns the name -> code map served by the markets endpoint.
func Table() map[string]string {
	out := make(map[string]string, len(Markets))
	for _, m := range Markets {
		out[m.Name] = m.Code
	}
	return out
}

// Known reports whether code is a supported market code.
func Known(code string) bool {
	_, ok := lookup(code)
	return ok
}

func lookup(code string) (Market, bool) {
	for _, m := range Markets {
		if m.Code == code {
			return m, true
		}
	}
	return Market{}, false
}

// Resolution is the result of parsing one symbol or query string.
// Market and Symbol come from the same split and must be used together.
type Resolution struct {
	Market string // resolved market code, never empty
	Prefix string // uppercased exchange prefix, empty when q had none
	Symbol string // q without its prefix
}

// Split separates "PREFIX:SYMBOL" on the first colon. The prefix is uppercased.
func Split(q string) (prefix, symbol string, ok bool) {
	p, s, found := strings.Cut(q, ":")
	if !found {
		return "", q, false
	}
	return strings.ToUpper(strings.TrimSpace(p)), s, true
}

// Parse resolves q against the tables:
//
//  1. an exact exchange prefix wins,
//  2. then the first market whose code contains the prefix (case-insensitive),
//  3. then explicit when non-empty,
//  4. then Default.
//
// A blank prefix (":AAPL") is treated as no prefix; it would otherwise be a
// substring of every code and always pick the first market.
func Parse(q, explicit string) Resolution {
	prefix, symbol, ok := Split(q)
	res := Resolution{Prefix: prefix, Symbol: symbol}
	if ok && prefix != "" {
		if code, hit := Prefixes[prefix]; hit {
			res.Market = code
			return res
		}
		lp := strings.ToLower(prefix)
		for _, m := range Markets {
			if strings.Contains(m.Code, lp) {
				res.Market = m.Code
				return res
			}
		}
	}
	res.Market = fallback(explicit)
	return res
}

// Resolve returns only the market code of Parse.
func Resolve(q, explicit string) string {
	return Parse(q, explicit).Market
}

// Qualify returns q as an exchange-qualified symbol. A symbol that already has
// a prefix keeps it; a bare one gets the primary exchange of explicit (or Default).
func Qualify(q, explicit string) string {
	if prefix, symbol, ok := Split(q); ok && prefix != "" {
		return prefix + ":" + symbol
	}
	m, _ := lookup(fallback(explicit))
	if m.Exchange == "" {
		return q
	}
	return m.Exchange + ":" + strings.TrimPrefix(q, ":")
}

func fallback(explicit string) string {
	if e := strings.TrimSpace(explicit); e != "" {
		return e
	}
	return Default
}
