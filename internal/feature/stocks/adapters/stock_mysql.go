// Package adapters はstocksフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"

	"gorm.io/gorm"

	"starpupil_backend/internal/feature/stocks/domain/entity"
	"starpupil_backend/internal/feature/stocks/usecase"
	"starpupil_backend/internal/platform/db"
)

// stockMySQL はStockRepositoryインターフェースのリレーショナルDB実装です。
type stockMySQL struct {
	db *gorm.DB
}

var _ usecase.StockRepository = (*stockMySQL)(nil)

// NewStockRepository は指定されたDB接続でstockMySQLリポジトリの新しいインスタンスを生成します。
func NewStockRepository(gdb *gorm.DB) *stockMySQL {
	return &stockMySQL{db: gdb}
}

// Save は銘柄を新規登録します。先に存在確認をせず直接INSERTし、
// 一意制約違反（既登録）は成功扱いでcreated=falseを返します。
// 並行して同じ銘柄が登録されても安全です。
func (r *stockMySQL) Save(ctx context.Context, stock *entity.Stock) (bool, error) {
	if err := r.db.WithContext(ctx).Create(stock).Error; err != nil {
		if db.Classify(err) == db.KindConflict {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// UpdateQuote は行情スナップショットに由来する列だけを更新します。
// nilの引数に対応する列は変更しません。
func (r *stockMySQL) UpdateQuote(ctx context.Context, symbol string, price, marketCap, peRatio, pbRatio *float64) error {
	updates := map[string]any{}
	if price != nil {
		updates["current_price"] = *price
	}
	if marketCap != nil {
		updates["market_cap"] = *marketCap
	}
	if peRatio != nil {
		updates["pe_ratio"] = *peRatio
	}
	if pbRatio != nil {
		updates["pb_ratio"] = *pbRatio
	}
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&entity.Stock{}).
		Where("symbol = ?", symbol).
		Updates(updates).Error
}

// FindBySymbol は銘柄コードで1件の銘柄を返します。
// 見つからない場合はgorm.ErrRecordNotFoundを返します。
func (r *stockMySQL) FindBySymbol(ctx context.Context, symbol string) (*entity.Stock, error) {
	var stock entity.Stock
	if err := r.db.WithContext(ctx).
		Where("symbol = ?", symbol).
		First(&stock).Error; err != nil {
		return nil, err
	}
	return &stock, nil
}

// List はsymbol昇順で銘柄をページ取得します。
func (r *stockMySQL) List(ctx context.Context, offset, limit int) ([]entity.Stock, error) {
	var stocks []entity.Stock
	q := r.db.WithContext(ctx).Order("symbol ASC")
	if offset > 0 {
		q = q.Offset(offset)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&stocks).Error; err != nil {
		return nil, err
	}
	return stocks, nil
}

// Count は登録済み銘柄の総数を返します。
func (r *stockMySQL) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entity.Stock{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ListSymbols は登録済みの全銘柄コードをsymbol昇順で返します。
func (r *stockMySQL) ListSymbols(ctx context.Context) ([]string, error) {
	var symbols []string
	if err := r.db.WithContext(ctx).
		Model(&entity.Stock{}).
		Order("symbol ASC").
		Pluck("symbol", &symbols).Error; err != nil {
		return nil, err
	}
	return symbols, nil
}
