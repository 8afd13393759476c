package tradingview

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	currencyentity "market_gateway/internal/feature/currency/domain/entity"
	stockentity "market_gateway/internal/feature/stock/domain/entity"
	"market_gateway/internal/platform/externalapi/tradingview/dto"
	"market_gateway/internal/shared/columns"
)

// forexRange はforex_rates_allプリセットの全件数です。
const forexRange = 2595

// PerformanceFields はsymbolエンドポイントに要求するパフォーマンス指標です。
var PerformanceFields = []string{
	"change", "Perf.5D", "Perf.W", "Perf.1M", "Perf.6M", "Perf.YTD", "Perf.Y", "Perf.5Y", "Perf.All",
}

// ForexColumns は為替スキャンのカラム順です。
var ForexColumns = columns.Schema{
	"name", "description", "close", "currency", "change", "change_abs", "high", "low",
}

// StockColumns は株式スキャンのカラム順です。
// 通貨は公開しないカラムの後ろ、11番目に返されます。
var StockColumns = columns.Schema{
	"name", "description", "close", "change", "sector",
	"logoid", "type", "typespecs", "market_cap_basic", "volume", "exchange",
	"currency",
}

var (
	fxName        = ForexColumns.MustIndex("name")
	fxDescription = ForexColumns.MustIndex("description")
	fxClose       = ForexColumns.MustIndex("close")
	fxCurrency    = ForexColumns.MustIndex("currency")
	fxChange      = ForexColumns.MustIndex("change")
	fxChangeAbs   = ForexColumns.MustIndex("change_abs")
	fxHigh        = ForexColumns.MustIndex("high")
	fxLow         = ForexColumns.MustIndex("low")

	stName        = StockColumns.MustIndex("name")
	stDescription = StockColumns.MustIndex("description")
	stClose       = StockColumns.MustIndex("close")
	stChange      = StockColumns.MustIndex("change")
	stSector      = StockColumns.MustIndex("sector")
	stCurrency    = StockColumns.MustIndex("currency")
)

// CurrencyFromRow は為替スキャンの1行をCurrencyに変換します。
// nullのセルと型が合わないセルはnilのままにします。
func CurrencyFromRow(r columns.Row) currencyentity.Currency {
	return currencyentity.Currency{
		Name:        r.Text(fxName),
		SymbolCode:  r.Symbol,
		Description: r.Text(fxDescription),
		Close:       r.Number(fxClose),
		Currency:    r.Text(fxCurrency),
		Change:      r.Number(fxChange),
		ChangeAbs:   r.Number(fxChangeAbs),
		High:        r.Number(fxHigh),
		Low:         r.Number(fxLow),
	}
}

// StockFromRow は株式スキャンの1行をStockに変換します。
func StockFromRow(r columns.Row) stockentity.Stock {
	return stockentity.Stock{
		Name:        r.Text(stName),
		SymbolCode:  r.Symbol,
		Description: r.Text(stDescription),
		Close:       r.Number(stClose),
		Change:      r.Number(stChange),
		Sector:      r.Text(stSector),
		Currency:    r.Text(stCurrency),
	}
}

// ListForex はforex_rates_allプリセットの全通貨ペアを名前順で返します。
func (c *Client) ListForex(ctx context.Context) ([]currencyentity.Currency, error) {
	nullsFirst := false
	body := dto.ScanRequest{
		Columns: ForexColumns,
		Options: dto.ScanOptions{Lang: "en"},
		Range:   [2]int{0, forexRange},
		Sort:    dto.ScanSort{SortBy: "name", SortOrder: "asc", NullsFirst: &nullsFirst},
		Preset:  "forex_rates_all",
	}

	rows, _, err := c.scan(ctx, "forex", "markets-screener", body)
	if err != nil {
		return nil, err
	}

	out := make([]currencyentity.Currency, 0, len(rows))
	for _, r := range rows {
		out = append(out, CurrencyFromRow(r))
	}
	return out, nil
}

// ScanStocks はq.Marketの株式スクリーナーを時価総額順で検索します。
// q.Matchが空でなければ名前と説明で絞り込みます。
func (c *Client) ScanStocks(ctx context.Context, q stockentity.ScanQuery) (stockentity.Page, error) {
	body := dto.ScanRequest{
		Columns: StockColumns,
		Options: dto.ScanOptions{Lang: c.cfg.ScreenerLang},
		Range:   [2]int{0, q.Limit},
		Sort:    dto.ScanSort{SortBy: "market_cap_basic", SortOrder: "desc"},
		Symbols: &struct{}{},
		Markets: []string{q.Market},
		Filter2: dto.StockTypeFilter,
	}
	if q.Match != "" {
		body.Filter = []dto.ScanFilter{{Left: "name,description", Operation: "match", Right: q.Match}}
	}

	rows, total, err := c.scan(ctx, q.Market, "screener-stock", body)
	if err != nil {
		return stockentity.Page{}, err
	}

	items := make([]stockentity.Stock, 0, len(rows))
	for _, r := range rows {
		items = append(items, StockFromRow(r))
	}
	return stockentity.Page{TotalCount: total, Items: items}, nil
}

func (c *Client) scan(ctx context.Context, market, product string, body dto.ScanRequest) ([]columns.Row, int, error) {
	q := url.Values{}
	q.Set("label-product", product)
	u := fmt.Sprintf("%s/%s/scan?%s", c.cfg.ScannerURL, url.PathEscape(market), q.Encode())

	req, err := c.newRequest(ctx, http.MethodPost, u, body)
	if err != nil {
		return nil, 0, err
	}

	var res dto.ScanResponse
	if err := c.do(req, "scan", &res); err != nil {
		return nil, 0, err
	}
	if res.Data == nil {
		return nil, 0, fmt.Errorf("%w: scan: missing data", ErrMalformedResponse)
	}
	return *res.Data, res.TotalCount, nil
}

// Performance は銘柄のパフォーマンス指標を上流の応答のまま返します。
func (c *Client) Performance(ctx context.Context, symbol string) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("symbol", symbol)
	q.Set("fields", strings.Join(PerformanceFields, ","))
	q.Set("no_404", "true")
	q.Set("label-product", "symbols-performance")
	u := fmt.Sprintf("%s/symbol?%s", c.cfg.ScannerURL, q.Encode())

	req, err := c.newRequest(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	var out json.RawMessage
	if err := c.do(req, "symbol", &out); err != nil {
		return nil, err
	}
	return out, nil
}
