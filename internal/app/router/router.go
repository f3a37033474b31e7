// Package router はアプリケーションのHTTPルーティングを定義します。
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	indicatorhandler "starpupil_backend/internal/feature/indicators/transport/handler"
	ingesthandler "starpupil_backend/internal/feature/ingest/transport/handler"
	pricehandler "starpupil_backend/internal/feature/prices/transport/handler"
	stockhandler "starpupil_backend/internal/feature/stocks/transport/handler"
)

// NewRouter は全ハンドラを束ねたginエンジンを生成します。
func NewRouter(
	stocks *stockhandler.StockHandler,
	prices *pricehandler.PriceHandler,
	indicators *indicatorhandler.IndicatorHandler,
	ingest *ingesthandler.IngestHandler,
) *gin.Engine {
	r := gin.Default()

	// 導通確認用
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// 参照系
	r.GET("/stocks", stocks.List)
	r.GET("/stocks/:symbol", stocks.Get)
	r.GET("/stocks/:symbol/prices", prices.GetPrices)
	r.GET("/stocks/:symbol/indicators", indicators.GetIndicators)

	// 取り込み系
	r.POST("/stocks/:symbol/fetch-data", ingest.FetchData)
	r.POST("/stocks/:symbol/refresh-prices", ingest.RefreshPrices)
	r.POST("/stocks/:symbol/refresh-indicators", ingest.RefreshIndicators)

	// 管理系
	admin := r.Group("/admin")
	{
		admin.POST("/bootstrap", ingest.Bootstrap)
	}

	return r
}
