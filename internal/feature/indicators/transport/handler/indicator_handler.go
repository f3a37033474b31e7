package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"starpupil_backend/internal/feature/indicators/domain/entity"
)

// IndicatorUsecase は財務指標に関するユースケースのインターフェースです。
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type IndicatorUsecase interface {
	GetIndicators(ctx context.Context, symbol string) ([]entity.FinancialIndicator, error)
}

// IndicatorHandler は財務指標に関するHTTPリクエストを処理します。
type IndicatorHandler struct {
	uc IndicatorUsecase
}

// NewIndicatorHandler は新しい IndicatorHandler を作成します。
func NewIndicatorHandler(uc IndicatorUsecase) *IndicatorHandler {
	return &IndicatorHandler{uc: uc}
}

// GetIndicators は指定銘柄の財務指標を報告日の降順で取得するAPIです。
// 指標は80以上の列があるため、個別のDTOには詰め替えずエンティティの
// jsonタグ（正規化属性名）でそのまま返します。
func (h *IndicatorHandler) GetIndicators(c *gin.Context) {
	symbol := c.Param("symbol")

	indicators, err := h.uc.GetIndicators(c.Request.Context(), symbol)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, indicators)
}
