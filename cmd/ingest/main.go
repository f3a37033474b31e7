// 一括取り込みバッチ。銘柄ユニバースが空なら初期投入を行い、
// そうでなければ全銘柄の日足と財務指標を最新化します。
package main

import (
	"context"
	"log"
	"time"

	"starpupil_backend/internal/app/di"
	indicatoradapters "starpupil_backend/internal/feature/indicators/adapters"
	ingestusecase "starpupil_backend/internal/feature/ingest/usecase"
	priceadapters "starpupil_backend/internal/feature/prices/adapters"
	stockadapters "starpupil_backend/internal/feature/stocks/adapters"
	infradb "starpupil_backend/internal/platform/db"
	"starpupil_backend/internal/shared/ratelimiter"
)

func main() {
	db := infradb.OpenDB()

	stockRepo := stockadapters.NewStockRepository(db)
	priceRepo := priceadapters.NewPriceRepository(db)
	indicatorRepo := indicatoradapters.NewIndicatorRepository(db)

	fetcher := di.NewFetcher()
	limiter := ratelimiter.NewRateLimiter(30, time.Minute)
	uc := ingestusecase.NewIngestUsecase(fetcher, stockRepo, priceRepo, indicatorRepo, limiter)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Hour)
	defer cancel()

	count, err := stockRepo.Count(ctx)
	if err != nil {
		log.Fatal("failed to count stocks:", err)
	}

	if count == 0 {
		result, err := uc.BootstrapUniverse(ctx)
		if err != nil {
			log.Fatal("bootstrap failed:", err)
		}
		log.Printf("bootstrap ok: stocks=%d refreshed=%d skipped=%d",
			result.Stocks, result.Refreshed, result.Skipped)
		return
	}

	symbols, err := stockRepo.ListSymbols(ctx)
	if err != nil {
		log.Fatal("failed to load symbols:", err)
	}

	for _, s := range symbols {
		limiter.WaitIfNeeded()
		if _, err := uc.RefreshSymbolPrices(ctx, s, "", "", ""); err != nil {
			// 1つの銘柄でエラーが発生しても処理を止めずにログに出力し、次の処理を続ける
			log.Printf("refresh prices failed: symbol=%s err=%v", s, err)
		}

		limiter.WaitIfNeeded()
		if _, _, err := uc.RefreshFinancialIndicators(ctx, s, ""); err != nil {
			log.Printf("refresh indicators failed: symbol=%s err=%v", s, err)
		}
	}
	log.Println("ingest ok")
}
