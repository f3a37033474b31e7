// Package adapters はindicatorsフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"

	"gorm.io/gorm"

	"starpupil_backend/internal/feature/indicators/domain/entity"
	"starpupil_backend/internal/feature/indicators/usecase"
)

// indicatorMySQL はIndicatorRepositoryインターフェースのリレーショナルDB実装です。
type indicatorMySQL struct {
	db *gorm.DB
}

var _ usecase.IndicatorRepository = (*indicatorMySQL)(nil)

// NewIndicatorRepository は指定されたDB接続でindicatorMySQLリポジトリの新しいインスタンスを生成します。
func NewIndicatorRepository(gdb *gorm.DB) *indicatorMySQL {
	return &indicatorMySQL{db: gdb}
}

// Exists は(symbol, report_date)の財務指標が登録済みかを返します。
// 財務諸表は一度公表された値が確定値として扱われるため、
// 既存の報告期は上書きせずスキップする方針です。
func (r *indicatorMySQL) Exists(ctx context.Context, symbol, reportDate string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entity.FinancialIndicator{}).
		Where("symbol = ? AND report_date = ?", symbol, reportDate).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Insert は財務指標を1件登録します。一意制約違反はそのまま返すため、
// 呼び出し側はExistsで事前確認するか、エラー分類で握りつぶします。
func (r *indicatorMySQL) Insert(ctx context.Context, indicator *entity.FinancialIndicator) error {
	return r.db.WithContext(ctx).Create(indicator).Error
}

// Find は指定銘柄の財務指標を報告日の降順で返します。
func (r *indicatorMySQL) Find(ctx context.Context, symbol string) ([]entity.FinancialIndicator, error) {
	var indicators []entity.FinancialIndicator
	if err := r.db.WithContext(ctx).
		Where("symbol = ?", symbol).
		Order("report_date DESC").
		Find(&indicators).Error; err != nil {
		return nil, err
	}
	return indicators, nil
}

// CountBySymbol は指定銘柄の財務指標の件数を返します。
func (r *indicatorMySQL) CountBySymbol(ctx context.Context, symbol string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entity.FinancialIndicator{}).
		Where("symbol = ?", symbol).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
