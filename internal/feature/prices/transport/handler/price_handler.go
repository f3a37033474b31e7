package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"starpupil_backend/internal/feature/prices/domain/entity"
	"starpupil_backend/internal/feature/prices/transport/http/dto"
)

// PriceUsecase は株価履歴に関するユースケースのインターフェースです。
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type PriceUsecase interface {
	GetPrices(ctx context.Context, symbol, startDate, endDate string, limit int) ([]entity.PriceBar, error)
}

// PriceHandler は株価履歴に関するHTTPリクエストを処理します。
type PriceHandler struct {
	uc PriceUsecase
}

// NewPriceHandler は新しい PriceHandler を作成します。
func NewPriceHandler(uc PriceUsecase) *PriceHandler {
	return &PriceHandler{uc: uc}
}

// GetPrices は指定銘柄の日足履歴を取得するAPIです。
// クエリパラメータ start_date / end_date（"YYYY-MM-DD"）と limit で絞り込めます。
func (h *PriceHandler) GetPrices(c *gin.Context) {
	symbol := c.Param("symbol")
	startDate := c.Query("start_date")
	endDate := c.Query("end_date")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "120"))

	bars, err := h.uc.GetPrices(c.Request.Context(), symbol, startDate, endDate, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	out := make([]dto.PriceBarItem, 0, len(bars))
	for _, b := range bars {
		out = append(out, dto.PriceBarItem{
			Symbol:        b.Symbol,
			Date:          b.Date,
			OpenPrice:     b.OpenPrice,
			ClosePrice:    b.ClosePrice,
			HighPrice:     b.HighPrice,
			LowPrice:      b.LowPrice,
			Volume:        b.Volume,
			Amount:        b.Amount,
			ChangePercent: b.ChangePercent,
			ChangeAmount:  b.ChangeAmount,
			TurnoverRate:  b.TurnoverRate,
		})
	}
	c.JSON(http.StatusOK, out)
}
