package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"starpupil_backend/internal/feature/indicators/domain/entity"
)

// mockIndicatorUsecase はIndicatorUsecaseインターフェースのモック実装です。
type mockIndicatorUsecase struct {
	GetIndicatorsFunc func(ctx context.Context, symbol string) ([]entity.FinancialIndicator, error)
}

func (m *mockIndicatorUsecase) GetIndicators(ctx context.Context, symbol string) ([]entity.FinancialIndicator, error) {
	if m.GetIndicatorsFunc != nil {
		return m.GetIndicatorsFunc(ctx, symbol)
	}
	return nil, nil
}

func newTestRouter(h *IndicatorHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/stocks/:symbol/indicators", h.GetIndicators)
	return r
}

func TestIndicatorHandler_GetIndicators(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success: returns indicators with canonical attribute names", func(t *testing.T) {
		eps := 2.5
		uc := &mockIndicatorUsecase{
			GetIndicatorsFunc: func(ctx context.Context, symbol string) ([]entity.FinancialIndicator, error) {
				assert.Equal(t, "600519", symbol)
				return []entity.FinancialIndicator{
					{Symbol: "600519", ReportDate: "2023-12-31", DilutedEps: &eps},
				}, nil
			},
		}
		r := newTestRouter(NewIndicatorHandler(uc))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/stocks/600519/indicators", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"report_date":"2023-12-31"`)
		assert.Contains(t, w.Body.String(), `"diluted_eps":2.5`)
		// 欠落した指標はレスポンスに現れない
		assert.NotContains(t, w.Body.String(), "return_on_equity")
	})

	t.Run("failure: usecase error", func(t *testing.T) {
		uc := &mockIndicatorUsecase{
			GetIndicatorsFunc: func(ctx context.Context, symbol string) ([]entity.FinancialIndicator, error) {
				return nil, errors.New("database connection failed")
			},
		}
		r := newTestRouter(NewIndicatorHandler(uc))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/stocks/600519/indicators", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
