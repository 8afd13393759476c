// Package handler はstockフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"market_gateway/internal/api"
	"market_gateway/internal/feature/stock/domain/entity"
	"market_gateway/internal/feature/stock/domain/market"
	"market_gateway/internal/feature/stock/usecase"
)

// StockUsecase は株式データ操作のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type StockUsecase interface {
	Markets() map[string]string
	List(ctx context.Context, q usecase.ListQuery) (entity.Page, error)
	Search(ctx context.Context, marketCountry, name string) (entity.Page, error)
	News(ctx context.Context, stockName, lang, marketCountry string) (json.RawMessage, error)
	Performance(ctx context.Context, stockName, marketCountry string) (json.RawMessage, error)
}

// StockHandler は株式関連のHTTPリクエストを処理します。
type StockHandler struct {
	uc StockUsecase
}

// NewStockHandler は指定されたusecaseでStockHandlerの新しいインスタンスを生成します。
func NewStockHandler(uc StockUsecase) *StockHandler {
	return &StockHandler{uc: uc}
}

var registerOnce sync.Once

// RegisterValidations はginのバリデータに "market" タグ（対応市場コードか）を登録します。
// ルーター構築時に一度だけ呼び出してください。登録できない場合は起動時にpanicします。
func RegisterValidations() {
	registerOnce.Do(func() {
		if err := registerMarketTag(binding.Validator.Engine()); err != nil {
			slog.Error("failed to register validation", "tag", "market", "error", err)
			panic(err)
		}
	})
}

func registerMarketTag(engine any) error {
	v, ok := engine.(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", engine)
	}
	return v.RegisterValidation("market", func(fl validator.FieldLevel) bool {
		return market.Known(fl.Field().String())
	})
}

type listQuery struct {
	Range         *int   `form:"range" binding:"omitempty,gt=0"`
	MarketCountry string `form:"marketCountry" binding:"omitempty,market"`
	StockName     string `form:"stockName" binding:"omitempty,max=64"`
}

type searchURI struct {
	MarketCountry string `uri:"marketCountry" binding:"required,market"`
	StockName     string `uri:"stockName" binding:"required"`
}

type newsQuery struct {
	StockName     string `form:"stockName" binding:"required,max=64"`
	Lang          string `form:"lang" binding:"omitempty,max=8"`
	MarketCountry string `form:"marketCountry" binding:"omitempty,market"`
}

type performanceQuery struct {
	StockName     string `form:"stockName" binding:"required,max=64"`
	MarketCountry string `form:"marketCountry" binding:"omitempty,market"`
}

// Markets は対応している市場の一覧（名前→市場コード）を返します。
//
// エンドポイント: GET /api/v1/stock/markets
func (h *StockHandler) Markets(c *gin.Context) {
	api.OK(c, h.uc.Markets())
}

// List は市場の銘柄を時価総額順に返します。
// stockName が指定された場合は取引所プレフィックスから市場を判定して検索します。
//
// エンドポイント例:
// GET /api/v1/stock?range=50&marketCountry=america
// GET /api/v1/stock?stockName=NASDAQ:AAPL
func (h *StockHandler) List(c *gin.Context) {
	var q listQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		api.Error(c, api.BindError(err))
		return
	}
	in := usecase.ListQuery{MarketCountry: q.MarketCountry, StockName: q.StockName}
	if q.Range != nil {
		in.Range = *q.Range
	}
	page, err := h.uc.List(c.Request.Context(), in)
	if err != nil {
		api.Error(c, err)
		return
	}
	api.OK(c, page)
}

// Search は指定市場で名前または説明に一致する銘柄を返します。
//
// エンドポイント: GET /api/v1/stock/:marketCountry/:stockName
func (h *StockHandler) Search(c *gin.Context) {
	var uri searchURI
	if err := c.ShouldBindUri(&uri); err != nil {
		api.Error(c, api.BindError(err))
		return
	}
	page, err := h.uc.Search(c.Request.Context(), uri.MarketCountry, uri.StockName)
	if err != nil {
		api.Error(c, err)
		return
	}
	api.OK(c, page)
}

// News は銘柄に関連するニュースの一覧を返します。lang の既定値は en です。
//
// エンドポイント例:
// GET /api/v1/stock/news?stockName=BIST:EREGL&lang=tr
func (h *StockHandler) News(c *gin.Context) {
	var q newsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		api.Error(c, api.BindError(err))
		return
	}
	out, err := h.uc.News(c.Request.Context(), q.StockName, q.Lang, q.MarketCountry)
	if err != nil {
		api.Error(c, err)
		return
	}
	api.OK(c, out)
}

// Performance は銘柄のパフォーマンス指標を返します。
//
// エンドポイント例:
// GET /api/v1/stock/performance?stockName=BIST:EREGL
func (h *StockHandler) Performance(c *gin.Context) {
	var q performanceQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		api.Error(c, api.BindError(err))
		return
	}
	out, err := h.uc.Performance(c.Request.Context(), q.StockName, q.MarketCountry)
	if err != nil {
		api.Error(c, err)
		return
	}
	api.OK(c, out)
}
