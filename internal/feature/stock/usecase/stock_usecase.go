// Package usecase は株式エンドポイントのビジネスロジックを実装します。
package usecase

import (
	"context"
	"encoding/json"
	"strings"

	"market_gateway/internal/feature/stock/domain/entity"
	"market_gateway/internal/feature/stock/domain/market"
	"market_gateway/internal/shared/apperr"
)

// クライアントに返す固定メッセージです。
const (
	MsgStocksFailed      = "failed to fetch stocks"
	MsgSearchFailed      = "failed to search stocks"
	MsgNewsFailed        = "failed to fetch stock news"
	MsgPerformanceFailed = "failed to fetch stock performance"
	MsgUnknownMarket     = "unknown marketCountry"
	MsgStockNameRequired = "stockName is required"
)

const (
	// DefaultRange はrange未指定時のList件数です（stockNameの有無によらない）。
	DefaultRange = 50
	// SearchRange はSearchの返却件数です。
	SearchRange = 100
	// DefaultNewsLang はlang未指定時の言語です。
	DefaultNewsLang = "en"
	// NewsView は株式ニュースで使う上流のclientラベルです。
	NewsView = "overview"
)

// StockData は株式機能が必要とする上流APIを抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type StockData interface {
	ScanStocks(ctx context.Context, q entity.ScanQuery) (entity.Page, error)
	Performance(ctx context.Context, symbol string) (json.RawMessage, error)
	SymbolNews(ctx context.Context, symbol, lang, view string) (json.RawMessage, error)
}

// ListQuery はListの入力です。ゼロ値はデフォルト値を意味します。
type ListQuery struct {
	Range         int
	MarketCountry string
	StockName     string
}

// StockUsecase は株式データ操作のユースケースを定義します。
type StockUsecase struct {
	data StockData
}

// NewStockUsecase はStockUsecaseの新しいインスタンスを生成します。
func NewStockUsecase(data StockData) *StockUsecase {
	return &StockUsecase{data: data}
}

// Markets は市場名から市場コードへの対応表を返します。
func (u *StockUsecase) Markets() map[string]string {
	return market.Table()
}

// List は市場の銘柄を時価総額順に返します。
// stockNameがある場合は取引所プレフィックスから市場を判定し、プレフィックスを除いた銘柄名で検索します。
func (u *StockUsecase) List(ctx context.Context, q ListQuery) (entity.Page, error) {
	if q.Range < 0 {
		return entity.Page{}, apperr.Validation("range must be a positive integer")
	}
	explicit := strings.TrimSpace(q.MarketCountry)
	if explicit != "" && !market.Known(explicit) {
		return entity.Page{}, apperr.Validation(MsgUnknownMarket)
	}

	limit := q.Range
	if limit == 0 {
		limit = DefaultRange
	}

	name := strings.TrimSpace(q.StockName)
	if name == "" {
		sq := entity.ScanQuery{Market: market.Resolve("", explicit), Limit: limit}
		page, err := u.data.ScanStocks(ctx, sq)
		if err != nil {
			return entity.Page{}, apperr.Upstream(MsgStocksFailed, err)
		}
		return page, nil
	}

	res := market.Parse(name, explicit)
	if strings.TrimSpace(res.Symbol) == "" {
		return entity.Page{}, apperr.Validation(MsgStockNameRequired)
	}
	return u.search(ctx, res.Market, res.Symbol, limit)
}

// Search はmarketCountryで名前または説明がnameに一致する銘柄を最大SearchRange件返します。
func (u *StockUsecase) Search(ctx context.Context, marketCountry, name string) (entity.Page, error) {
	if !market.Known(marketCountry) {
		return entity.Page{}, apperr.Validation(MsgUnknownMarket)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return entity.Page{}, apperr.Validation(MsgStockNameRequired)
	}
	return u.search(ctx, marketCountry, name, SearchRange)
}

func (u *StockUsecase) search(ctx context.Context, code, name string, limit int) (entity.Page, error) {
	page, err := u.data.ScanStocks(ctx, entity.ScanQuery{Market: code, Match: name, Limit: limit})
	if err != nil {
		return entity.Page{}, apperr.Upstream(MsgSearchFailed, err)
	}
	return page, nil
}

// News は銘柄のニュース見出しを返します。
// プレフィックスのない銘柄にはmarketCountryの主要取引所を付けます。
func (u *StockUsecase) News(ctx context.Context, stockName, lang, marketCountry string) (json.RawMessage, error) {
	symbol, err := qualify(stockName, marketCountry)
	if err != nil {
		return nil, err
	}
	if lang = strings.TrimSpace(lang); lang == "" {
		lang = DefaultNewsLang
	}
	out, err := u.data.SymbolNews(ctx, symbol, lang, NewsView)
	if err != nil {
		return nil, apperr.Upstream(MsgNewsFailed, err)
	}
	return out, nil
}

// Performance は銘柄のパフォーマンス指標を返します。
func (u *StockUsecase) Performance(ctx context.Context, stockName, marketCountry string) (json.RawMessage, error) {
	symbol, err := qualify(stockName, marketCountry)
	if err != nil {
		return nil, err
	}
	out, err := u.data.Performance(ctx, symbol)
	if err != nil {
		return nil, apperr.Upstream(MsgPerformanceFailed, err)
	}
	return out, nil
}

func qualify(stockName, marketCountry string) (string, error) {
	name := strings.TrimSpace(stockName)
	if _, sym, _ := market.Split(name); strings.TrimSpace(sym) == "" {
		return "", apperr.Validation(MsgStockNameRequired)
	}
	explicit := strings.TrimSpace(marketCountry)
	if explicit != "" && !market.Known(explicit) {
		return "", apperr.Validation(MsgUnknownMarket)
	}
	return market.Qualify(name, explicit), nil
}
