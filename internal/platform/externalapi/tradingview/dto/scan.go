// Package dto defines the request and response bodies of the TradingView endpoints.
package dto

import (
	"encoding/json"

	"market_gateway/internal/shared/columns"
)

// ScanRequest is the body POSTed to /{market}/scan.
type ScanRequest struct {
	Columns             []string        `json:"columns"`
	Filter              []ScanFilter    `json:"filter,omitempty"`
	IgnoreUnknownFields bool            `json:"ignore_unknown_fields"`
	Options             ScanOptions     `json:"options"`
	Range               [2]int          `json:"range"`
	Sort                ScanSort        `json:"sort"`
	Symbols             *struct{}       `json:"symbols,omitempty"`
	Markets             []string        `json:"markets,omitempty"`
	Preset              string          `json:"preset,omitempty"`
	Filter2             json.RawMessage `json:"filter2,omitempty"`
}

// ScanFilter is one legacy filter expression.
type ScanFilter struct {
	Left      string `json:"left"`
	Operation string `json:"operation"`
	Right     string `json:"right"`
}

// ScanOptions carries the response language.
type ScanOptions struct {
	Lang string `json:"lang"`
}

// ScanSort orders the result set.
type ScanSort struct {
	SortBy     string `json:"sortBy"`
	SortOrder  string `json:"sortOrder"`
	NullsFirst *bool  `json:"nullsFirst,omitempty"`
}

// ScanResponse is the scanner's answer. Data is a pointer so a missing or null
// array can be told apart from an empty one.
type ScanResponse struct {
	TotalCount int            `json:"totalCount"`
	Data       *[]columns.Row `json:"data"`
}

// StockTypeFilter restricts a stock scan to common/preferred shares,
// depositary receipts and non-ETF funds, as the screener UI does.
var StockTypeFilter = json.RawMessage(`{"operator":"and","operands":[{"operation":{"operator":"or","operands":[` +
	`{"operation":{"operator":"and","operands":[{"expression":{"left":"type","operation":"equal","right":"stock"}},{"expression":{"left":"typespecs","operation":"has","right":["common"]}}]}},` +
	`{"operation":{"operator":"and","operands":[{"expression":{"left":"type","operation":"equal","right":"stock"}},{"expression":{"left":"typespecs","operation":"has","right":["preferred"]}}]}},` +
	`{"operation":{"operator":"and","operands":[{"expression":{"left":"type","operation":"equal","right":"dr"}}]}},` +
	`{"operation":{"operator":"and","operands":[{"expression":{"left":"type","operation":"equal","right":"fund"}},{"expression":{"left":"typespecs","operation":"has_none_of","right":["etf"]}}]}}` +
	`]}}]}`)
