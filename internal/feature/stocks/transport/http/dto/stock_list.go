// Package dto defines data transfer objects for the stocks HTTP API.
package dto

// StockItem represents a stock in the API response.
// It contains only the public-facing fields needed by clients.
type StockItem struct {
	Symbol       string   `json:"symbol"`
	Name         string   `json:"name"`
	Market       string   `json:"market"`
	Industry     *string  `json:"industry,omitempty"`
	CurrentPrice *float64 `json:"current_price,omitempty"`
	MarketCap    *float64 `json:"market_cap,omitempty"`
	PeRatio      *float64 `json:"pe_ratio,omitempty"`
	PbRatio      *float64 `json:"pb_ratio,omitempty"`
	IsActive     bool     `json:"is_active"`
}

// StockListResponse is the paginated response for the stock list endpoint.
type StockListResponse struct {
	Total    int64       `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
	Items    []StockItem `json:"items"`
}
