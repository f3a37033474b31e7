package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"starpupil_backend/internal/feature/stocks/domain/entity"
	"starpupil_backend/internal/feature/stocks/transport/http/dto"
)

// StockUsecase は銘柄マスタに関するユースケースのインターフェースです。
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type StockUsecase interface {
	GetStock(ctx context.Context, symbol string) (*entity.Stock, error)
	ListStocks(ctx context.Context, page, pageSize int) ([]entity.Stock, int64, error)
}

// StockHandler は銘柄マスタに関するHTTPリクエストを処理します。
type StockHandler struct {
	uc StockUsecase
}

// NewStockHandler は新しい StockHandler を作成します。
func NewStockHandler(uc StockUsecase) *StockHandler {
	return &StockHandler{uc: uc}
}

// List は登録済み銘柄の一覧をページ付きで取得するAPIです。
func (h *StockHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	stocks, total, err := h.uc.ListStocks(c.Request.Context(), page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	items := make([]dto.StockItem, 0, len(stocks))
	for _, s := range stocks {
		items = append(items, toItem(&s))
	}
	c.JSON(http.StatusOK, dto.StockListResponse{
		Total:    total,
		Page:     page,
		PageSize: pageSize,
		Items:    items,
	})
}

// Get は1銘柄の詳細を取得するAPIです。存在しない場合は404を返します。
func (h *StockHandler) Get(c *gin.Context) {
	symbol := c.Param("symbol")

	stock, err := h.uc.GetStock(c.Request.Context(), symbol)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "stock not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, toItem(stock))
}

func toItem(s *entity.Stock) dto.StockItem {
	return dto.StockItem{
		Symbol:       s.Symbol,
		Name:         s.Name,
		Market:       string(s.Market),
		Industry:     s.Industry,
		CurrentPrice: s.CurrentPrice,
		MarketCap:    s.MarketCap,
		PeRatio:      s.PeRatio,
		PbRatio:      s.PbRatio,
		IsActive:     s.IsActive,
	}
}
