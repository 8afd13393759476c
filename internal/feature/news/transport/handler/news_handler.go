// Package handler はnewsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"market_gateway/internal/api"
	"market_gateway/internal/feature/news/domain/entity"
)

// NewsUsecase はRSS集約のユースケースインターフェースを定義します。
type NewsUsecase interface {
	Aggregate(ctx context.Context, links []string) ([]*entity.Feed, error)
}

// NewsHandler はRSSフィード関連のHTTPリクエストを処理します。
type NewsHandler struct {
	uc NewsUsecase
}

// NewNewsHandler は指定されたusecaseでNewsHandlerの新しいインスタンスを生成します。
func NewNewsHandler(uc NewsUsecase) *NewsHandler {
	return &NewsHandler{uc: uc}
}

// feedsRequest はRSS取得リクエストのボディです。
type feedsRequest struct {
	Links []string `json:"links" binding:"required,min=1,max=20,dive,http_url"`
}

// Feeds は指定された全てのRSSフィードを取得し、ランダムな順序で返します。
// 1件でも取得に失敗した場合はリクエスト全体が失敗します。
//
// エンドポイント: POST /api/v1/news
func (h *NewsHandler) Feeds(c *gin.Context) {
	var req feedsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Error(c, api.BindError(err))
		return
	}
	out, err := h.uc.Aggregate(c.Request.Context(), req.Links)
	if err != nil {
		api.Error(c, err)
		return
	}
	api.OK(c, out)
}
