// Package router はginエンジンを構築し、全エンドポイントを登録します。
package router

import (
	"log/slog"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	currencyhandler "market_gateway/internal/feature/currency/transport/handler"
	newshandler "market_gateway/internal/feature/news/transport/handler"
	stockhandler "market_gateway/internal/feature/stock/transport/handler"
	"market_gateway/internal/platform/http/handler"
	"market_gateway/internal/platform/http/middleware"
)

// Options はルーター全体に関わる設定です。
type Options struct {
	// CORSAllowOrigins が空の場合CORSミドルウェアは登録しない。"*" は全オリジンを許可する。
	CORSAllowOrigins []string
	Logger           *slog.Logger
}

// NewRouter はミドルウェアと全ルートを登録したginエンジンを返します。
func NewRouter(
	currency *currencyhandler.CurrencyHandler,
	stock *stockhandler.StockHandler,
	news *newshandler.NewsHandler,
	opts Options,
) *gin.Engine {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	stockhandler.RegisterValidations()

	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(middleware.Recovery(), middleware.RequestID(), middleware.AccessLog(logger))
	if len(opts.CORSAllowOrigins) > 0 {
		r.Use(newCORS(opts.CORSAllowOrigins))
	}

	r.NoRoute(handler.NotFound)
	r.NoMethod(handler.MethodNotAllowed)

	// 導通確認用
	r.GET("/healthz", handler.Health)
	r.HEAD("/healthz", handler.Health)

	v1 := r.Group("/api/v1")

	c := v1.Group("/currency")
	{
		c.GET("", currency.List)
		c.GET("/:baseCurrency", currency.Specific)
		c.GET("/events/:parites", currency.Events)
		c.GET("/performance/:parites", currency.Performance)
		c.GET("/news/:parites/:lang", currency.News)
		c.GET("/news/read/:storyPath/:lang", currency.ReadNews)
	}

	s := v1.Group("/stock")
	{
		s.GET("", stock.List)
		s.GET("/markets", stock.Markets)
		s.GET("/news", stock.News)
		s.GET("/performance", stock.Performance)
		s.GET("/:marketCountry/:stockName", stock.Search)
	}

	v1.POST("/news", news.Feeds)

	return r
}

func newCORS(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "HEAD", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", middleware.HeaderRequestID},
		ExposeHeaders: []string{middleware.HeaderRequestID},
		MaxAge:        12 * time.Hour,
	}
	if slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}
