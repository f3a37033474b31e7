// Package aktools はAKTools（akshareのHTTPラッパー）公開APIのクライアントを提供します。
package aktools

import (
	"os"
	"time"
)

// Config はAKTools APIクライアントの設定を保持します。
type Config struct {
	BaseURL string        // APIのベースURL（例: "http://127.0.0.1:8080"）
	Timeout time.Duration // HTTPリクエストのタイムアウト
}

// LoadConfig は環境変数からAKTools設定を読み込みます。
func LoadConfig() Config {
	base := os.Getenv("AKTOOLS_BASE_URL")
	if base == "" {
		base = "http://127.0.0.1:8080"
	}
	timeout := 30 * time.Second
	if v := os.Getenv("AKTOOLS_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			timeout = d
		}
	}
	return Config{
		BaseURL: base,
		Timeout: timeout,
	}
}
