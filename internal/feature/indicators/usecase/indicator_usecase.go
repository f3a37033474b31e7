// Package usecase は財務指標に関するビジネスロジックを実装します。
package usecase

import (
	"context"

	"starpupil_backend/internal/feature/indicators/domain/entity"
)

// IndicatorRepository は財務指標の永続化層を抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type IndicatorRepository interface {
	Find(ctx context.Context, symbol string) ([]entity.FinancialIndicator, error)
	CountBySymbol(ctx context.Context, symbol string) (int64, error)
}

// IndicatorUsecase は財務指標の参照系ロジックを提供します。
type IndicatorUsecase struct {
	repo IndicatorRepository
}

// NewIndicatorUsecase は指定されたリポジトリでIndicatorUsecaseの新しいインスタンスを生成します。
func NewIndicatorUsecase(r IndicatorRepository) *IndicatorUsecase {
	return &IndicatorUsecase{repo: r}
}

// GetIndicators は指定銘柄の財務指標を報告日の降順で返します。
func (u *IndicatorUsecase) GetIndicators(ctx context.Context, symbol string) ([]entity.FinancialIndicator, error) {
	return u.repo.Find(ctx, symbol)
}
