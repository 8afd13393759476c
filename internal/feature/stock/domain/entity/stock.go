// Package entity defines the domain models for the stock feature.
package entity

import "encoding/json"

// Stock is one screener row for an equity.
type Stock struct {
	Name        *string  `json:"name"`
	SymbolCode  string   `json:"symbolCode"` // e.g. "BIST:EREGL"
	Description *string  `json:"description"`
	Close       *float64 `json:"close"`
	Change      *float64 `json:"change"`
	Sector      *string  `json:"sector"`
	Currency    *string  `json:"currency"`
}

// Page is a screener result: the provider's total match count and the rows returned.
type Page struct {
	TotalCount int     `json:"totalCount"`
	Items      []Stock `json:"items"`
}

// ScanQuery describes one screener call.
type ScanQuery struct {
	Market string // market code, e.g. "america"
	Match  string // optional name/description filter
	Limit  int    // upper bound of the requested range
}

// Payload is a provider document forwarded to the caller without reshaping.
type Payload = json.RawMessage
