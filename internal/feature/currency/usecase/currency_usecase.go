// Package usecase は為替エンドポイントのビジネスロジックを実装します。
package usecase

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"market_gateway/internal/feature/currency/domain/entity"
	"market_gateway/internal/shared/apperr"
)

// クライアントに返す固定メッセージです。
const (
	MsgCurrenciesFailed  = "failed to fetch currencies"
	MsgEventsFailed      = "failed to fetch economic calendar events"
	MsgPerformanceFailed = "failed to fetch performance data"
	MsgNewsFailed        = "failed to fetch news"
	MsgStoryFailed       = "failed to fetch news story"
)

// NewsView は為替ニュースで使う上流のclientラベルです。
const NewsView = "landing"

// MarketData は為替機能が必要とする上流APIを抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type MarketData interface {
	ListForex(ctx context.Context) ([]entity.Currency, error)
	CalendarEvents(ctx context.Context, from, to time.Time, currencies []string) (json.RawMessage, error)
	Performance(ctx context.Context, symbol string) (json.RawMessage, error)
	SymbolNews(ctx context.Context, symbol, lang, view string) (json.RawMessage, error)
	Story(ctx context.Context, id, lang string) (json.RawMessage, error)
}

// CurrencyUsecase は為替データ操作のユースケースを定義します。
type CurrencyUsecase struct {
	market MarketData
	now    func() time.Time
}

// NewCurrencyUsecase はCurrencyUsecaseの新しいインスタンスを生成します。
// nowは経済カレンダーの期間の基準時刻で、nilの場合はtime.Nowを使います。
func NewCurrencyUsecase(market MarketData, now func() time.Time) *CurrencyUsecase {
	if now == nil {
		now = time.Now
	}
	return &CurrencyUsecase{market: market, now: now}
}

// ListCurrencies は全通貨ペアを返します。
func (u *CurrencyUsecase) ListCurrencies(ctx context.Context) ([]entity.Currency, error) {
	cs, err := u.market.ListForex(ctx)
	if err != nil {
		return nil, apperr.Upstream(MsgCurrenciesFailed, err)
	}
	return cs, nil
}

// ListByCurrency はペア名または決済通貨がcodeと一致する（大文字小文字を区別しない）ペアを返します。
func (u *CurrencyUsecase) ListByCurrency(ctx context.Context, code string) ([]entity.Currency, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, apperr.Validation("baseCurrency is required")
	}

	all, err := u.ListCurrencies(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]entity.Currency, 0)
	for _, c := range all {
		if c.Matches(code) {
			out = append(out, c)
		}
	}
	return out, nil
}

// EventWindow はnowを基準とした経済カレンダーの期間を返します。
// 前日21:00 UTCから1か月後の同時刻までです。
func EventWindow(now time.Time) (from, to time.Time) {
	y := now.UTC().AddDate(0, 0, -1)
	from = time.Date(y.Year(), y.Month(), y.Day(), 21, 0, 0, 0, time.UTC)
	to = from.AddDate(0, 1, 0)
	return from, to
}

// Events は通貨ペアの両通貨に関する経済カレンダーを返します。
func (u *CurrencyUsecase) Events(ctx context.Context, parite string) (json.RawMessage, error) {
	p, err := ParsePair(parite)
	if err != nil {
		return nil, err
	}
	from, to := EventWindow(u.now())
	out, err := u.market.CalendarEvents(ctx, from, to, []string{p.Base(), p.Quote()})
	if err != nil {
		return nil, apperr.Upstream(MsgEventsFailed, err)
	}
	return out, nil
}

// Performance は通貨ペアのパフォーマンス指標を返します。
func (u *CurrencyUsecase) Performance(ctx context.Context, parite string) (json.RawMessage, error) {
	p, err := ParsePair(parite)
	if err != nil {
		return nil, err
	}
	out, err := u.market.Performance(ctx, p.Symbol())
	if err != nil {
		return nil, apperr.Upstream(MsgPerformanceFailed, err)
	}
	return out, nil
}

// News は通貨ペアのニュース見出しをlangで返します。
func (u *CurrencyUsecase) News(ctx context.Context, parite, lang string) (json.RawMessage, error) {
	p, err := ParsePair(parite)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(lang) == "" {
		return nil, apperr.Validation("lang is required")
	}
	out, err := u.market.SymbolNews(ctx, p.Symbol(), lang, NewsView)
	if err != nil {
		return nil, apperr.Upstream(MsgNewsFailed, err)
	}
	return out, nil
}

// Story はニュース記事1件の本文を返します。
func (u *CurrencyUsecase) Story(ctx context.Context, storyPath, lang string) (json.RawMessage, error) {
	if strings.TrimSpace(storyPath) == "" {
		return nil, apperr.Validation("storyPath is required")
	}
	if strings.TrimSpace(lang) == "" {
		return nil, apperr.Validation("lang is required")
	}
	out, err := u.market.Story(ctx, storyPath, lang)
	if err != nil {
		return nil, apperr.Upstream(MsgStoryFailed, err)
	}
	return out, nil
}

// ParsePair は6文字の通貨ペアコードを検証し、大文字にして返します。
func ParsePair(s string) (entity.Pair, error) {
	s = strings.TrimSpace(s)
	if len(s) != 6 {
		return "", apperr.Validation("parites must be a 6-letter currency pair")
	}
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return "", apperr.Validation("parites must be a 6-letter currency pair")
		}
	}
	return entity.Pair(strings.ToUpper(s)), nil
}
