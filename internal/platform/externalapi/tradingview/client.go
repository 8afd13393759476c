package tradingview

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	currencyusecase "market_gateway/internal/feature/currency/usecase"
	stockusecase "market_gateway/internal/feature/stock/usecase"
)

// ErrMalformedResponse は2xxで応答したがボディが想定の形をしていない場合に返されます。
var ErrMalformedResponse = errors.New("tradingview: malformed response")

// StatusError は上流が2xx以外のステータスで応答した場合に返されます。
type StatusError struct {
	Endpoint string
	Code     int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("tradingview %s: http %d", e.Endpoint, e.Code)
}

// StatusCode は上流が返したHTTPステータスを返します。
func (e *StatusError) StatusCode() int { return e.Code }

// Client はTradingViewの各エンドポイントを呼び出すMarketData/StockData実装です。
// リクエスト単位の状態を持たないため、複数のgoroutineから安全に利用できます。
type Client struct {
	cfg    Config
	client *http.Client
	header http.Header
}

// ClientがMarketDataとStockDataを実装していることをコンパイル時に検証します。
var (
	_ currencyusecase.MarketData = (*Client)(nil)
	_ stockusecase.StockData     = (*Client)(nil)
)

// NewClient は指定された設定とHTTPクライアントでClientの新しいインスタンスを生成します。
func NewClient(cfg Config, client *http.Client) *Client {
	return &Client{cfg: cfg, client: client, header: cfg.Header()}
}

// newRequest は固定ヘッダーを付けたリクエストを作成します。bodyがnilでなければJSONにエンコードします。
func (c *Client) newRequest(ctx context.Context, method, u string, body any) (*http.Request, error) {
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		r = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, r)
	if err != nil {
		return nil, err
	}
	req.Header = c.header.Clone()
	return req, nil
}

// do はリクエストを実行し、2xxのJSONボディをoutにデコードします。
func (c *Client) do(req *http.Request, endpoint string, out any) error {
	res, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		// コネクション再利用のためボディを読み捨てる
		_, _ = io.Copy(io.Discard, io.LimitReader(res.Body, 64<<10))
		return &StatusError{Endpoint: endpoint, Code: res.StatusCode}
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMalformedResponse, endpoint, err)
	}
	return nil
}
