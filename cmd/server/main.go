package main

import (
	"log"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"starpupil_backend/internal/app/di"
	"starpupil_backend/internal/app/router"
	indicatoradapters "starpupil_backend/internal/feature/indicators/adapters"
	indicatorhandler "starpupil_backend/internal/feature/indicators/transport/handler"
	indicatorusecase "starpupil_backend/internal/feature/indicators/usecase"
	ingesthandler "starpupil_backend/internal/feature/ingest/transport/handler"
	ingestusecase "starpupil_backend/internal/feature/ingest/usecase"
	priceadapters "starpupil_backend/internal/feature/prices/adapters"
	pricehandler "starpupil_backend/internal/feature/prices/transport/handler"
	priceusecase "starpupil_backend/internal/feature/prices/usecase"
	stockadapters "starpupil_backend/internal/feature/stocks/adapters"
	stockhandler "starpupil_backend/internal/feature/stocks/transport/handler"
	stockusecase "starpupil_backend/internal/feature/stocks/usecase"
	"starpupil_backend/internal/platform/cache"
	infradb "starpupil_backend/internal/platform/db"
	infraredis "starpupil_backend/internal/platform/redis"
	"starpupil_backend/internal/shared/ratelimiter"
)

func main() {
	// db
	db := infradb.OpenDB()

	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// Repository
	stockRepo := stockadapters.NewStockRepository(db)
	priceRepo := priceadapters.NewPriceRepository(db)
	indicatorRepo := indicatoradapters.NewIndicatorRepository(db)

	// Redisキャッシュでラップ（Upsertが通ると該当銘柄のキャッシュを無効化）
	ttl := cache.TimeUntilNextClose()
	cachedPriceRepo := cache.NewCachingPriceRepository(rdb, ttl, priceRepo, "prices")

	// 外部データソース
	fetcher := di.NewFetcher()
	limiter := ratelimiter.NewRateLimiter(30, time.Minute)

	// Usecase
	stockUC := stockusecase.NewStockUsecase(stockRepo)
	priceUC := priceusecase.NewPriceUsecase(cachedPriceRepo)
	indicatorUC := indicatorusecase.NewIndicatorUsecase(indicatorRepo)
	ingestUC := ingestusecase.NewIngestUsecase(fetcher, stockRepo, cachedPriceRepo, indicatorRepo, limiter)

	// Handler
	stockH := stockhandler.NewStockHandler(stockUC)
	priceH := pricehandler.NewPriceHandler(priceUC)
	indicatorH := indicatorhandler.NewIndicatorHandler(indicatorUC)
	ingestH := ingesthandler.NewIngestHandler(ingestUC)

	// ルータ生成
	r := router.NewRouter(stockH, priceH, indicatorH, ingestH)

	if err := r.Run(":8080"); err != nil {
		log.Fatal(err)
	}
}
