// Package adapters はpricesフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"starpupil_backend/internal/feature/prices/domain/entity"
	"starpupil_backend/internal/feature/prices/usecase"
)

// priceMySQL はPriceRepositoryインターフェースのリレーショナルDB実装です。
type priceMySQL struct {
	db *gorm.DB
}

var _ usecase.PriceRepository = (*priceMySQL)(nil)

// NewPriceRepository は指定されたDB接続でpriceMySQLリポジトリの新しいインスタンスを生成します。
func NewPriceRepository(gdb *gorm.DB) *priceMySQL {
	return &priceMySQL{db: gdb}
}

// Upsert は日足1本を登録します。(symbol, date)が既に存在する場合は
// 新しい値で上書きします。同じ日を何度取り込んでも行数は増えません。
func (r *priceMySQL) Upsert(ctx context.Context, bar *entity.PriceBar) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "symbol"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"open_price", "close_price", "high_price", "low_price",
			"volume", "amount", "outstanding_share", "change_percent",
			"change_amount", "turnover_rate", "adj_factor",
		}),
	}).Create(bar).Error
}

// Find は指定銘柄の日足を日付降順で返します。
// startDate・endDateは"YYYY-MM-DD"形式で、空文字列なら絞り込みません。
func (r *priceMySQL) Find(ctx context.Context, symbol, startDate, endDate string, limit int) ([]entity.PriceBar, error) {
	var bars []entity.PriceBar
	q := r.db.WithContext(ctx).
		Where("symbol = ?", symbol).
		Order("date DESC")
	if startDate != "" {
		q = q.Where("date >= ?", startDate)
	}
	if endDate != "" {
		q = q.Where("date <= ?", endDate)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&bars).Error; err != nil {
		return nil, err
	}
	return bars, nil
}

// CountBySymbol は指定銘柄の日足本数を返します。
func (r *priceMySQL) CountBySymbol(ctx context.Context, symbol string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entity.PriceBar{}).
		Where("symbol = ?", symbol).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
