package domain

import (
	"github.com/shopspring/decimal"
)

// KgPerBag is the fixed conversion factor between kilograms (the unit on
// transaction line items) and bags (the unit stock is tracked in).
const KgPerBag = 30

var kgPerBag = decimal.NewFromInt(KgPerBag)

// BagsFromKg converts a kilogram quantity to bags.
func BagsFromKg(kg decimal.Decimal) decimal.Decimal {
	return kg.Div(kgPerBag)
}

// StockDirection indicates whether a stock adjustment adds or removes bags.
type StockDirection string

const (
	StockIncrease StockDirection = "increase"
	StockDecrease StockDirection = "decrease"
)

// UniversalItemName is the distinguished aggregate tracking item. Its stock
// mirrors the total bag movement of every purchase and sale. At most one
// item carries the IsUniversal flag; it is seeded at startup.
const UniversalItemName = "Bardana"

// UniversalItemCategory is the category the seeded universal item belongs to.
const UniversalItemCategory = "Packaging"

// Item is a stocked product. OpeningStock is held in bags and is clamped at
// zero: reversals never drive it negative.
type Item struct {
	ItemID        string          `json:"itemID"` // Primary Key (UUID)
	ProductName   string          `json:"productName"`
	Category      string          `json:"category"`
	PurchasePrice decimal.Decimal `json:"purchasePrice"`
	SalePrice     decimal.Decimal `json:"salePrice"`
	OpeningStock  decimal.Decimal `json:"openingStock"` // bags
	LowStockAlert decimal.Decimal `json:"lowStockAlert"`
	IsUniversal   bool            `json:"isUniversal"`
	AuditFields
}
