// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"market_gateway/internal/api"
)

// HealthStatus は /healthz のペイロードです。
type HealthStatus struct {
	Status string `json:"status"`
}

// Health はサービスヘルスチェック用の /healthz エンドポイントを処理します。
// 上流APIには問い合わせず、プロセスが応答できることだけを示します。
//
// エンドポイント: GET|HEAD /healthz
func Health(c *gin.Context) {
	// 明示的にキャッシュを防止
	c.Header("Cache-Control", "no-store")

	if c.Request.Method == http.MethodHead {
		c.Status(http.StatusOK)
		return
	}
	api.OK(c, HealthStatus{Status: "ok"})
}

// NotFound は未定義のパスに失敗エンベロープで404を返します。
func NotFound(c *gin.Context) {
	api.Fail(c, http.StatusNotFound, "route not found")
}

// MethodNotAllowed はパスに対応しないHTTPメソッドに失敗エンベロープで405を返します。
func MethodNotAllowed(c *gin.Context) {
	api.Fail(c, http.StatusMethodNotAllowed, "method not allowed")
}
