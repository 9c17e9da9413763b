package dto

import (
	"time"

	"github.com/mandibooks/billing_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateItemRequest defines the data needed to create a new item.
// OpeningStockKg is accepted in kilograms and stored in bags.
type CreateItemRequest struct {
	ProductName    string          `json:"productName" binding:"required"`
	Category       string          `json:"category"`
	PurchasePrice  decimal.Decimal `json:"purchasePrice"`
	SalePrice      decimal.Decimal `json:"salePrice"`
	OpeningStockKg decimal.Decimal `json:"openingStockKg"`
	LowStockAlert  decimal.Decimal `json:"lowStockAlert"`
}

// UpdateItemRequest defines the data allowed for updating an item.
// Stock is never edited directly; it only moves through reconciliation.
type UpdateItemRequest struct {
	ProductName   *string          `json:"productName"`
	Category      *string          `json:"category"`
	PurchasePrice *decimal.Decimal `json:"purchasePrice"`
	SalePrice     *decimal.Decimal `json:"salePrice"`
	LowStockAlert *decimal.Decimal `json:"lowStockAlert"`
}

// ItemResponse defines the data returned for an item.
type ItemResponse struct {
	ItemID        string          `json:"itemID"`
	ProductName   string          `json:"productName"`
	Category      string          `json:"category"`
	PurchasePrice decimal.Decimal `json:"purchasePrice"`
	SalePrice     decimal.Decimal `json:"salePrice"`
	OpeningStock  decimal.Decimal `json:"openingStock"` // bags
	LowStockAlert decimal.Decimal `json:"lowStockAlert"`
	IsUniversal   bool            `json:"isUniversal"`
	LowStock      bool            `json:"lowStock"`
	CreatedAt     time.Time       `json:"createdAt"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
}

// ToItemResponse converts a domain.Item to ItemResponse.
func ToItemResponse(it *domain.Item) ItemResponse {
	return ItemResponse{
		ItemID:        it.ItemID,
		ProductName:   it.ProductName,
		Category:      it.Category,
		PurchasePrice: it.PurchasePrice,
		SalePrice:     it.SalePrice,
		OpeningStock:  it.OpeningStock,
		LowStockAlert: it.LowStockAlert,
		IsUniversal:   it.IsUniversal,
		LowStock:      it.OpeningStock.LessThanOrEqual(it.LowStockAlert),
		CreatedAt:     it.CreatedAt,
		LastUpdatedAt: it.LastUpdatedAt,
	}
}

// ListItemsParams defines query parameters for listing items.
type ListItemsParams struct {
	Search string `form:"search"`
	Limit  int    `form:"limit,default=20"`
	Offset int    `form:"offset,default=0"`
}

// ListItemsResponse wraps the list of items.
type ListItemsResponse struct {
	Items []ItemResponse `json:"items"`
}
