package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"starpupil_backend/internal/feature/ingest/usecase"
	"starpupil_backend/internal/platform/externalapi/aktools"
)

// IngestUsecase はデータ取得パイプラインのユースケースのインターフェースです。
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type IngestUsecase interface {
	FetchAndSave(ctx context.Context, symbol string, days int) (usecase.SaveResult, error)
	BootstrapUniverse(ctx context.Context) (usecase.BootstrapResult, error)
	RefreshSymbolPrices(ctx context.Context, symbol, startDate, endDate, adjust string) (int, error)
	RefreshFinancialIndicators(ctx context.Context, symbol, startYear string) ([]aktools.Row, int, error)
}

// IngestHandler はデータ取り込みに関するHTTPリクエストを処理します。
type IngestHandler struct {
	uc IngestUsecase
}

// NewIngestHandler は新しい IngestHandler を作成します。
func NewIngestHandler(uc IngestUsecase) *IngestHandler {
	return &IngestHandler{uc: uc}
}

// FetchData は1銘柄の情報と直近の日足をまとめて取り込むAPIです。
// クエリパラメータ days で取得する日数を指定できます（デフォルト30日）。
func (h *IngestHandler) FetchData(c *gin.Context) {
	symbol := c.Param("symbol")
	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))

	result, err := h.uc.FetchAndSave(c.Request.Context(), symbol, days)
	if err != nil {
		if strings.Contains(err.Error(), "no price data") {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// RefreshPrices は1銘柄の日足履歴を再取得するAPIです。
// クエリパラメータ start_date / end_date（"YYYYMMDD"）で期間を、
// adjust（"qfq"・"hfq"・"none"）で復権方式を指定できます。
func (h *IngestHandler) RefreshPrices(c *gin.Context) {
	symbol := c.Param("symbol")
	startDate := c.Query("start_date")
	endDate := c.Query("end_date")
	adjust := c.DefaultQuery("adjust", "qfq")

	saved, err := h.uc.RefreshSymbolPrices(c.Request.Context(), symbol, startDate, endDate, adjust)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"symbol": symbol, "saved": saved})
}

// RefreshIndicators は1銘柄の財務指標を再取得するAPIです。
// クエリパラメータ start_year で取得開始年を指定できます（デフォルト2020年）。
func (h *IngestHandler) RefreshIndicators(c *gin.Context) {
	symbol := c.Param("symbol")
	startYear := c.Query("start_year")

	rows, saved, err := h.uc.RefreshFinancialIndicators(c.Request.Context(), symbol, startYear)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"symbol": symbol, "saved": saved, "indicators": rows})
}

// Bootstrap は銘柄ユニバースの初期投入をバックグラウンドで開始するAPIです。
// 全銘柄の取り込みには時間がかかるため、受理した時点で202を返します。
// 既にデータが存在する場合、バックグラウンド処理は何もせず終了します。
func (h *IngestHandler) Bootstrap(c *gin.Context) {
	go func() {
		// リクエストのライフサイクルから切り離す
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Hour)
		defer cancel()

		result, err := h.uc.BootstrapUniverse(ctx)
		if err != nil {
			slog.Error("bootstrap failed", "error", err)
			return
		}
		slog.Info("bootstrap completed",
			"seeded", result.Seeded, "stocks", result.Stocks,
			"refreshed", result.Refreshed, "skipped", result.Skipped)
	}()

	c.JSON(http.StatusAccepted, gin.H{"status": "bootstrap started"})
}
