// Package entity はpricesフィーチャーのドメインモデルを定義します。
package entity

import (
	stockentity "starpupil_backend/internal/feature/stocks/domain/entity"
)

// PriceBar は1銘柄・1営業日分の日足データを表します。
// (Symbol, Date) の組で一意であり、同じ日付を再取得した場合は
// 新しい値で上書きされます（重複行は作られません）。
// Date は上流が返す "YYYY-MM-DD" 形式の文字列をそのまま保持します。
// 日足の寿命は銘柄マスタに従属し、銘柄の削除とともに削除されます。
type PriceBar struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Symbol string `gorm:"size:20;not null;uniqueIndex:price_sym_date,priority:1" json:"symbol"`
	Date   string `gorm:"size:10;not null;uniqueIndex:price_sym_date,priority:2" json:"date"`

	// stocks.symbol への外部キー（ON DELETE CASCADE）
	Stock stockentity.Stock `gorm:"foreignKey:Symbol;references:Symbol;constraint:OnDelete:CASCADE" json:"-"`

	OpenPrice  float64 `json:"open_price"`
	ClosePrice float64 `json:"close_price"`
	HighPrice  float64 `json:"high_price"`
	LowPrice   float64 `json:"low_price"`

	Volume           float64 `json:"volume"`
	Amount           float64 `json:"amount"`
	OutstandingShare float64 `json:"outstanding_share"`
	ChangePercent    float64 `json:"change_percent"`
	ChangeAmount     float64 `json:"change_amount"`
	TurnoverRate     float64 `json:"turnover_rate"`

	// 復権係数。未復権のデータは1.0のまま。
	AdjFactor float64 `gorm:"not null;default:1.0" json:"adj_factor"`
}

// TableName はGORMが使用するテーブル名を返します。
func (PriceBar) TableName() string {
	return "stock_prices"
}
