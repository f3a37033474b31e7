package http

import (
	"net"
	"net/http"
	"time"
)

// NewHTTPClient は市場データAPI呼び出し用のHTTPクライアントを作成します。
// http.DefaultClientはタイムアウトを持たないため、上流の無応答が
// 取り込みパイプライン全体を固めないよう、接続・TLS・リクエスト全体の
// それぞれに上限を設定します。timeoutはリクエスト全体の上限で、
// プロバイダ設定（AKTOOLS_TIMEOUT）から渡されます。
// 一括取り込みでは同一ホストへ連続アクセスするため、アイドル接続を
// プールして再利用します。
func NewHTTPClient(timeout time.Duration) *http.Client {
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &http.Client{Timeout: timeout, Transport: t}
}
