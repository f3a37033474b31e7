// Package usecase は銘柄マスタに関するビジネスロジックを実装します。
package usecase

import (
	"context"

	"starpupil_backend/internal/feature/stocks/domain/entity"
)

// StockRepository は銘柄マスタの永続化層を抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type StockRepository interface {
	FindBySymbol(ctx context.Context, symbol string) (*entity.Stock, error)
	List(ctx context.Context, offset, limit int) ([]entity.Stock, error)
	Count(ctx context.Context) (int64, error)
}

// StockUsecase は銘柄マスタの参照系ロジックを提供します。
type StockUsecase struct {
	repo StockRepository
}

// NewStockUsecase は指定されたリポジトリでStockUsecaseの新しいインスタンスを生成します。
func NewStockUsecase(r StockRepository) *StockUsecase {
	return &StockUsecase{repo: r}
}

// GetStock は銘柄コードで1件の銘柄を取得します。
func (u *StockUsecase) GetStock(ctx context.Context, symbol string) (*entity.Stock, error) {
	return u.repo.FindBySymbol(ctx, symbol)
}

// ListStocks はページ指定で銘柄一覧と総件数を返します。
// pageは1始まり、pageSizeが0以下の場合は20件を使用します。
func (u *StockUsecase) ListStocks(ctx context.Context, page, pageSize int) ([]entity.Stock, int64, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}

	total, err := u.repo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}

	stocks, err := u.repo.List(ctx, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, 0, err
	}
	return stocks, total, nil
}
