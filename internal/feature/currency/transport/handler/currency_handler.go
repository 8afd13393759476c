// Package handler はcurrencyフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"encoding/json"

	"github.com/gin-gonic/gin"

	"market_gateway/internal/api"
	"market_gateway/internal/feature/currency/domain/entity"
	"market_gateway/internal/shared/apperr"
)

// CurrencyUsecase は通貨データ操作のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type CurrencyUsecase interface {
	ListCurrencies(ctx context.Context) ([]entity.Currency, error)
	ListByCurrency(ctx context.Context, code string) ([]entity.Currency, error)
	Events(ctx context.Context, parite string) (json.RawMessage, error)
	Performance(ctx context.Context, parite string) (json.RawMessage, error)
	News(ctx context.Context, parite, lang string) (json.RawMessage, error)
	Story(ctx context.Context, storyPath, lang string) (json.RawMessage, error)
}

// CurrencyHandler は通貨関連のHTTPリクエストを処理します。
type CurrencyHandler struct {
	uc CurrencyUsecase
}

// NewCurrencyHandler は指定されたusecaseでCurrencyHandlerの新しいインスタンスを生成します。
func NewCurrencyHandler(uc CurrencyUsecase) *CurrencyHandler {
	return &CurrencyHandler{uc: uc}
}

type pariteURI struct {
	Parites string `uri:"parites" binding:"required,len=6,alpha"`
}

type pariteNewsURI struct {
	Parites string `uri:"parites" binding:"required,len=6,alpha"`
	Lang    string `uri:"lang" binding:"required,max=8"`
}

type storyURI struct {
	StoryPath string `uri:"storyPath" binding:"required"`
	Lang      string `uri:"lang" binding:"required,max=8"`
}

const (
	msgInvalidParite = "parites must be a 6-letter currency pair"
	msgInvalidNews   = "parites and lang are required"
	msgInvalidStory  = "storyPath and lang are required"
)

// List は全通貨ペアの一覧を返します。
//
// エンドポイント: GET /api/v1/currency
func (h *CurrencyHandler) List(c *gin.Context) {
	out, err := h.uc.ListCurrencies(c.Request.Context())
	if err != nil {
		api.Error(c, err)
		return
	}
	api.OK(c, out)
}

// Specific は指定された通貨（例: TRY）で終わる通貨ペアのみを返します。
// baseCurrency が空の場合は上流APIを呼ばずに400を返します。
//
// エンドポイント: GET /api/v1/currency/:baseCurrency
func (h *CurrencyHandler) Specific(c *gin.Context) {
	code := c.Param("baseCurrency")
	if code == "" {
		api.Error(c, apperr.Validation("baseCurrency is required"))
		return
	}
	out, err := h.uc.ListByCurrency(c.Request.Context(), code)
	if err != nil {
		api.Error(c, err)
		return
	}
	api.OK(c, out)
}

// Events は通貨ペアに関連する経済カレンダーのイベントを返します。
// 期間は前日21:00(UTC)から1か月後の同時刻までです。
//
// エンドポイント: GET /api/v1/currency/events/:parites
func (h *CurrencyHandler) Events(c *gin.Context) {
	var uri pariteURI
	if err := c.ShouldBindUri(&uri); err != nil {
		api.Error(c, apperr.Validation(msgInvalidParite))
		return
	}
	out, err := h.uc.Events(c.Request.Context(), uri.Parites)
	if err != nil {
		api.Error(c, err)
		return
	}
	api.OK(c, out)
}

// Performance は通貨ペアのパフォーマンス指標を返します。
//
// エンドポイント: GET /api/v1/currency/performance/:parites
func (h *CurrencyHandler) Performance(c *gin.Context) {
	var uri pariteURI
	if err := c.ShouldBindUri(&uri); err != nil {
		api.Error(c, apperr.Validation(msgInvalidParite))
		return
	}
	out, err := h.uc.Performance(c.Request.Context(), uri.Parites)
	if err != nil {
		api.Error(c, err)
		return
	}
	api.OK(c, out)
}

// News は通貨ペアに関連するニュースの一覧を返します。
//
// エンドポイント: GET /api/v1/currency/news/:parites/:lang
func (h *CurrencyHandler) News(c *gin.Context) {
	var uri pariteNewsURI
	if err := c.ShouldBindUri(&uri); err != nil {
		api.Error(c, apperr.Validation(msgInvalidNews))
		return
	}
	out, err := h.uc.News(c.Request.Context(), uri.Parites, uri.Lang)
	if err != nil {
		api.Error(c, err)
		return
	}
	api.OK(c, out)
}

// ReadNews は1件のニュース本文を返します。
//
// エンドポイント: GET /api/v1/currency/news/read/:storyPath/:lang
func (h *CurrencyHandler) ReadNews(c *gin.Context) {
	var uri storyURI
	if err := c.ShouldBindUri(&uri); err != nil {
		api.Error(c, apperr.Validation(msgInvalidStory))
		return
	}
	out, err := h.uc.Story(c.Request.Context(), uri.StoryPath, uri.Lang)
	if err != nil {
		api.Error(c, err)
		return
	}
	api.OK(c, out)
}
