package redis

import (
	"context"
	"log/slog"
	"os"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient は環境変数REDIS_HOST/REDIS_PORT/REDIS_PASSWORDから
// 日足キャッシュ用のRedisクライアントを生成します。起動時にPINGで
// 疎通を確認し、失敗した場合はエラーを返します（呼び出し元は
// キャッシュなしで動作を続行できます）。
func NewRedisClient() (*redis.Client, error) {
	addr := os.Getenv("REDIS_HOST") + ":" + os.Getenv("REDIS_PORT")

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		slog.Error("redis connection failed", "address", addr, "error", err)
		return nil, err
	}

	slog.Info("redis connected", "address", addr)
	return rdb, nil
}
