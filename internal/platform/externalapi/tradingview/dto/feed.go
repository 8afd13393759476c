package dto

import "encoding/json"

// CalendarResponse is the economic-calendar /events answer.
type CalendarResponse struct {
	Status string          `json:"status"`
	Result json.RawMessage `json:"result"`
}

// NewsResponse is the news-mediator symbol view answer.
type NewsResponse struct {
	Items json.RawMessage `json:"items"`
}
