// Package entity defines the domain models for the currency feature.
package entity

import (
	"encoding/json"
	"strings"
)

// Currency is one forex pair as listed by the screener.
// Value fields are nil when the provider has no value for them.
type Currency struct {
	Name        *string  `json:"name"`       // pair code, e.g. "USDTRY"
	SymbolCode  string   `json:"symbolCode"` // provider symbol, e.g. "FX_IDC:USDTRY"
	Description *string  `json:"description"`
	Close       *float64 `json:"close"`
	Currency    *string  `json:"currency"`
	Change      *float64 `json:"change"`
	ChangeAbs   *float64 `json:"change_abs"`
	High        *float64 `json:"high"`
	Low         *float64 `json:"low"`
}

// PairName returns the pair code, or "" when the provider sent none.
func (c Currency) PairName() string {
	if c.Name == nil {
		return ""
	}
	return *c.Name
}

// QuoteCurrency returns the pair name without its three-letter base ("USDTRY" -> "TRY").
func (c Currency) QuoteCurrency() string {
	name := c.PairName()
	if len(name) <= 3 {
		return ""
	}
	return name[3:]
}

// Matches reports whether code names this pair or its quote currency, ignoring case.
func (c Currency) Matches(code string) bool {
	return strings.EqualFold(c.PairName(), code) || strings.EqualFold(c.QuoteCurrency(), code)
}

// Pair is a six-letter currency pair code ("parite").
type Pair string

// Base returns the first currency of the pair.
func (p Pair) Base() string { return string(p[:3]) }

// Quote returns the second currency of the pair.
func (p Pair) Quote() string { return string(p[3:]) }

// Symbol returns the provider's forex symbol for the pair.
func (p Pair) Symbol() string { return "FX:" + string(p) }

// Payload is a provider document forwarded to the caller without reshaping.
type Payload = json.RawMessage
