package model

import "github.com/shopspring/decimal"

// Product represents a purchasable product in the catalog.
type Product struct {
	ID            int64           `json:"product_id" db:"product_id"`
	Name          string          `json:"name" db:"name"`
	Price         decimal.Decimal `json:"price" db:"price"`
	StockQuantity int             `json:"stock_quantity" db:"stock_quantity"`
}
