// Package http provides the outbound HTTP client shared by every upstream adapter.
package http

import (
	"net"
	"net/http"
	"time"
)

// NewHTTPClient は外部API呼び出し用に設定されたHTTPクライアントを作成します。
//
// 設定:
//   - Proxy: HTTP_PROXY などの環境変数を尊重
//   - Dialer.Timeout: TCP接続タイムアウト
//   - MaxIdleConnsPerHost: 上流ホストは4つだけなのでホスト単位で多めに保持
//   - ResponseHeaderTimeout: ヘッダー到着までの上限（ボディは Client.Timeout で制限）
//   - Client.Timeout: リクエスト全体のタイムアウト（呼び出し元から渡される）
//
// timeout が 0 以下の場合は 10 秒を使用します。http.DefaultClient にはタイムアウトがないため使わないこと。
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   25,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ResponseHeaderTimeout: timeout,
		ExpectContinueTimeout: 1 * time.Second,
	}
	return &http.Client{Timeout: timeout, Transport: t}
}
