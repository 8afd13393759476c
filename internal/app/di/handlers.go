package di

import (
	currencyhandler "market_gateway/internal/feature/currency/transport/handler"
	currencyusecase "market_gateway/internal/feature/currency/usecase"
	newshandler "market_gateway/internal/feature/news/transport/handler"
	newsusecase "market_gateway/internal/feature/news/usecase"
	stockhandler "market_gateway/internal/feature/stock/transport/handler"
	stockusecase "market_gateway/internal/feature/stock/usecase"
	"market_gateway/internal/platform/config"
	infrahttp "market_gateway/internal/platform/http"
	"market_gateway/internal/platform/rss"
)

// Handlers groups every feature handler the router mounts.
type Handlers struct {
	Currency *currencyhandler.CurrencyHandler
	Stock    *stockhandler.StockHandler
	News     *newshandler.NewsHandler
}

// NewHandlers wires usecases and handlers on top of one shared TradingView client.
func NewHandlers(cfg *config.Config) Handlers {
	tv := NewTradingViewClient(cfg.TradingView)

	// RSS feeds are fetched from arbitrary hosts, so they get their own client.
	feeds := rss.NewFetcher(
		infrahttp.NewHTTPClient(cfg.TradingView.GetTimeout()),
		cfg.News.UserAgent,
		cfg.News.Concurrency,
	)

	return Handlers{
		Currency: currencyhandler.NewCurrencyHandler(currencyusecase.NewCurrencyUsecase(tv, nil)),
		Stock:    stockhandler.NewStockHandler(stockusecase.NewStockUsecase(tv)),
		News:     newshandler.NewNewsHandler(newsusecase.NewNewsUsecase(feeds, nil)),
	}
}
