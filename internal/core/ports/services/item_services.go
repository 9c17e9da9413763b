package services

import (
	"context"

	"github.com/mandibooks/billing_backend/internal/core/domain"
	"github.com/mandibooks/billing_backend/internal/dto"
	"github.com/shopspring/decimal"
)

// ItemReaderSvc defines read operations for item data.
type ItemReaderSvc interface {
	// GetItemByID retrieves a specific item by its unique identifier.
	GetItemByID(ctx context.Context, itemID string) (*domain.Item, error)

	// GetUniversalItem retrieves the aggregate tracking item.
	GetUniversalItem(ctx context.Context) (*domain.Item, error)

	// ListItems retrieves a paginated list of items.
	ListItems(ctx context.Context, params dto.ListItemsParams) ([]domain.Item, error)

	// ListLowStockItems retrieves items at or below their alert threshold.
	ListLowStockItems(ctx context.Context) ([]domain.Item, error)
}

// ItemWriterSvc defines write operations for item data.
type ItemWriterSvc interface {
	// CreateItem persists a new item; opening stock is taken in kg and
	// stored in bags.
	CreateItem(ctx context.Context, req dto.CreateItemRequest, userID string) (*domain.Item, error)

	// UpdateItem updates an existing item's details.
	UpdateItem(ctx context.Context, itemID string, req dto.UpdateItemRequest, userID string) (*domain.Item, error)

	// AdjustStock applies a stock movement in kilograms, clamped at zero.
	AdjustStock(ctx context.Context, itemID string, quantityKg decimal.Decimal, direction domain.StockDirection) error

	// EnsureUniversalItem seeds the aggregate tracking item if absent.
	EnsureUniversalItem(ctx context.Context, userID string) error
}

// ItemSvcFacade combines all item-related service interfaces.
type ItemSvcFacade interface {
	ItemReaderSvc
	ItemWriterSvc
}
