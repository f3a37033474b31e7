// Package dto defines data transfer objects for the prices HTTP API.
package dto

// PriceBarItem represents a single daily bar in the API response.
type PriceBarItem struct {
	Symbol        string  `json:"symbol"`
	Date          string  `json:"date"`
	OpenPrice     float64 `json:"open_price"`
	ClosePrice    float64 `json:"close_price"`
	HighPrice     float64 `json:"high_price"`
	LowPrice      float64 `json:"low_price"`
	Volume        float64 `json:"volume"`
	Amount        float64 `json:"amount"`
	ChangePercent float64 `json:"change_percent"`
	ChangeAmount  float64 `json:"change_amount"`
	TurnoverRate  float64 `json:"turnover_rate"`
}
