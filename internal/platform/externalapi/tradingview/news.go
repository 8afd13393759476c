package tradingview

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"market_gateway/internal/platform/externalapi/tradingview/dto"
)

// calendarTimeLayout は経済カレンダーが受け付けるミリ秒付きUTCの時刻形式です。
const calendarTimeLayout = "2006-01-02T15:04:05.000Z"

// CalendarEvents は指定通貨についてfromからtoまでの経済カレンダーを返します。
func (c *Client) CalendarEvents(ctx context.Context, from, to time.Time, currencies []string) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("from", from.UTC().Format(calendarTimeLayout))
	q.Set("to", to.UTC().Format(calendarTimeLayout))
	q.Set("currencies", strings.Join(currencies, ","))
	u := fmt.Sprintf("%s/events?%s", c.cfg.CalendarURL, q.Encode())

	req, err := c.newRequest(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	var res dto.CalendarResponse
	if err := c.do(req, "events", &res); err != nil {
		return nil, err
	}
	if missing(res.Result) {
		return nil, fmt.Errorf("%w: events: missing result", ErrMalformedResponse)
	}
	return res.Result, nil
}

// SymbolNews は銘柄のニュース見出し一覧を返します。
// viewは上流のclientラベルです（為替は "landing"、株式は "overview"）。
func (c *Client) SymbolNews(ctx context.Context, symbol, lang, view string) (json.RawMessage, error) {
	q := url.Values{}
	q.Add("filter", "lang:"+lang)
	q.Add("filter", "symbol:"+symbol)
	q.Set("client", view)
	if view == "landing" {
		q.Set("streaming", "true")
	}
	u := fmt.Sprintf("%s/public/view/v1/symbol?%s", c.cfg.NewsURL, q.Encode())

	req, err := c.newRequest(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	var res dto.NewsResponse
	if err := c.do(req, "news", &res); err != nil {
		return nil, err
	}
	if missing(res.Items) {
		return nil, fmt.Errorf("%w: news: missing items", ErrMalformedResponse)
	}
	return res.Items, nil
}

// Story はニュース記事1件の本文を返します。
func (c *Client) Story(ctx context.Context, id, lang string) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("id", "tag:"+id)
	q.Set("lang", lang)
	u := fmt.Sprintf("%s/v3/story?%s", c.cfg.StoryURL, q.Encode())

	req, err := c.newRequest(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	var out json.RawMessage
	if err := c.do(req, "story", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func missing(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}
