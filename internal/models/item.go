package models

import (
	"github.com/shopspring/decimal"
)

// Item is the database representation of a stocked product.
// OpeningStock is stored in bags.
type Item struct {
	ItemID        string          `db:"item_id"`
	ProductName   string          `db:"product_name"`
	Category      string          `db:"category"`
	PurchasePrice decimal.Decimal `db:"purchase_price"`
	SalePrice     decimal.Decimal `db:"sale_price"`
	OpeningStock  decimal.Decimal `db:"opening_stock"`
	LowStockAlert decimal.Decimal `db:"low_stock_alert"`
	IsUniversal   bool            `db:"is_universal"`
	AuditFields
}
