// Package middleware はginエンジン共通のミドルウェアを提供します。
package middleware

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"market_gateway/internal/api"
	"market_gateway/internal/shared/apperr"
)

// HeaderRequestID はリクエストIDを運ぶヘッダー名です。
const HeaderRequestID = "X-Request-ID"

const maxRequestIDLen = 64

// RequestID はリクエストごとにIDを割り当て、レスポンスヘッダーとginコンテキストに設定します。
// クライアントが妥当な X-Request-ID を送った場合はそれを引き継ぎます。
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if !validRequestID(id) {
			id = uuid.NewString()
		}
		c.Set(api.RequestIDKey, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLen {
		return false
	}
	for _, r := range id {
		if r < 0x21 || r > 0x7e {
			return false
		}
	}
	return true
}

// AccessLog は1リクエストにつき1行のアクセスログを出力します。
// 5xx は Error、4xx は Warn、それ以外は Info で記録します。
func AccessLog(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		attrs := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"route", c.FullPath(),
			"status", status,
			"latency", time.Since(start),
			"client_ip", c.ClientIP(),
			"request_id", c.GetString(api.RequestIDKey),
		}

		switch {
		case status >= 500:
			logger.Error("request", attrs...)
		case status >= 400:
			logger.Warn("request", attrs...)
		default:
			logger.Info("request", attrs...)
		}
	}
}

// Recovery はハンドラー内のpanicを500の失敗エンベロープに変換します。
// panicの内容はログにのみ出力し、クライアントには汎用メッセージを返します。
func Recovery() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, recovered any) {
		api.Error(c, apperr.Internal("", fmt.Errorf("panic: %v", recovered)))
	})
}
