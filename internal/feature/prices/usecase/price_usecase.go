// Package usecase は株価履歴に関するビジネスロジックを実装します。
package usecase

import (
	"context"

	"starpupil_backend/internal/feature/prices/domain/entity"
)

// PriceRepository は日足データの永続化層を抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type PriceRepository interface {
	Find(ctx context.Context, symbol, startDate, endDate string, limit int) ([]entity.PriceBar, error)
}

// PriceUsecase は日足データの参照系ロジックを提供します。
type PriceUsecase struct {
	repo PriceRepository
}

// NewPriceUsecase は指定されたリポジトリでPriceUsecaseの新しいインスタンスを生成します。
func NewPriceUsecase(r PriceRepository) *PriceUsecase {
	return &PriceUsecase{repo: r}
}

// GetPrices は指定銘柄の日足を日付降順で返します。
// startDate・endDateは"YYYY-MM-DD"形式で、空文字列なら期間で絞り込みません。
// limitが0以下の場合は全件を返します。
func (u *PriceUsecase) GetPrices(ctx context.Context, symbol, startDate, endDate string, limit int) ([]entity.PriceBar, error) {
	return u.repo.Find(ctx, symbol, startDate, endDate, limit)
}
