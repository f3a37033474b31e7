package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"starpupil_backend/internal/feature/prices/domain/entity"
)

// mockPriceUsecase はPriceUsecaseインターフェースのモック実装です。
type mockPriceUsecase struct {
	GetPricesFunc func(ctx context.Context, symbol, startDate, endDate string, limit int) ([]entity.PriceBar, error)
}

func (m *mockPriceUsecase) GetPrices(ctx context.Context, symbol, startDate, endDate string, limit int) ([]entity.PriceBar, error) {
	if m.GetPricesFunc != nil {
		return m.GetPricesFunc(ctx, symbol, startDate, endDate, limit)
	}
	return nil, nil
}

func newTestRouter(h *PriceHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/stocks/:symbol/prices", h.GetPrices)
	return r
}

func TestPriceHandler_GetPrices(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		url            string
		mockFunc       func(ctx context.Context, symbol, startDate, endDate string, limit int) ([]entity.PriceBar, error)
		expectedStatus int
		validateFunc   func(t *testing.T, body string)
	}{
		{
			name: "success: returns bars with query parameters applied",
			url:  "/stocks/600519/prices?start_date=2024-01-01&end_date=2024-01-31&limit=10",
			mockFunc: func(ctx context.Context, symbol, startDate, endDate string, limit int) ([]entity.PriceBar, error) {
				assert.Equal(t, "600519", symbol)
				assert.Equal(t, "2024-01-01", startDate)
				assert.Equal(t, "2024-01-31", endDate)
				assert.Equal(t, 10, limit)
				return []entity.PriceBar{
					{Symbol: "600519", Date: "2024-01-03", ClosePrice: 1690},
					{Symbol: "600519", Date: "2024-01-02", ClosePrice: 1680},
				}, nil
			},
			expectedStatus: http.StatusOK,
			validateFunc: func(t *testing.T, body string) {
				assert.Contains(t, body, `"date":"2024-01-03"`)
				assert.Contains(t, body, `"close_price":1690`)
			},
		},
		{
			name: "success: default limit is 120",
			url:  "/stocks/600519/prices",
			mockFunc: func(ctx context.Context, symbol, startDate, endDate string, limit int) ([]entity.PriceBar, error) {
				assert.Equal(t, 120, limit)
				return []entity.PriceBar{}, nil
			},
			expectedStatus: http.StatusOK,
			validateFunc: func(t *testing.T, body string) {
				assert.Equal(t, "[]", body)
			},
		},
		{
			name: "failure: usecase error",
			url:  "/stocks/600519/prices",
			mockFunc: func(ctx context.Context, symbol, startDate, endDate string, limit int) ([]entity.PriceBar, error) {
				return nil, errors.New("database connection failed")
			},
			expectedStatus: http.StatusInternalServerError,
			validateFunc: func(t *testing.T, body string) {
				assert.Contains(t, body, "database connection failed")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRouter(NewPriceHandler(&mockPriceUsecase{GetPricesFunc: tt.mockFunc}))

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.validateFunc != nil {
				tt.validateFunc(t, w.Body.String())
			}
		})
	}
}
