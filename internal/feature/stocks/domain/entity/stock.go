// Package entity はstocksフィーチャーのドメインモデルを定義します。
package entity

import "time"

// MarketType は銘柄が属する市場区分です。
type MarketType string

const (
	// MarketSH は上海証券取引所です。
	MarketSH MarketType = "SH"
	// MarketSZ は深圳証券取引所です。
	MarketSZ MarketType = "SZ"
	// MarketBJ は北京証券取引所です。
	MarketBJ MarketType = "BJ"
	// MarketHK は香港取引所です。
	MarketHK MarketType = "HK"
	// MarketUS は米国市場です。
	MarketUS MarketType = "US"
)

// Stock は追跡対象の銘柄（上場企業）を表します。
// Symbol は一意で、作成後に変更されることはありません。
// パイプラインは銘柄を物理削除せず、IsActive で無効化のみ行います。
type Stock struct {
	ID     uint       `gorm:"primaryKey" json:"id"`
	Symbol string     `gorm:"size:20;not null;uniqueIndex" json:"symbol"`
	Name   string     `gorm:"size:100;not null" json:"name"`
	Market MarketType `gorm:"size:8;not null;default:SZ" json:"market"`

	// 定期更新される参考情報（取得できない場合はnull）
	Industry     *string    `gorm:"size:50" json:"industry,omitempty"`
	ListingDate  *time.Time `json:"listing_date,omitempty"`
	CurrentPrice *float64   `json:"current_price,omitempty"`
	MarketCap    *float64   `json:"market_cap,omitempty"`
	PeRatio      *float64   `json:"pe_ratio,omitempty"`
	PbRatio      *float64   `json:"pb_ratio,omitempty"`

	IsActive  bool `gorm:"not null;default:true" json:"is_active"`
	IsTracked bool `gorm:"not null;default:true" json:"is_tracked"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName はGORMが使用するテーブル名を返します。
func (Stock) TableName() string {
	return "stocks"
}
