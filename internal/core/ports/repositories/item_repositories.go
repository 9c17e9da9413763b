package repositories

import (
	"context"

	"github.com/mandibooks/billing_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ItemReader defines read operations for item data.
type ItemReader interface {
	// FindItemByID retrieves a specific item by its unique identifier.
	FindItemByID(ctx context.Context, itemID string) (*domain.Item, error)

	// FindUniversalItem retrieves the distinguished aggregate tracking item.
	FindUniversalItem(ctx context.Context) (*domain.Item, error)

	// ListItems retrieves a paginated list of items, optionally filtered by a
	// contains-match on product name or category.
	ListItems(ctx context.Context, search string, limit int, offset int) ([]domain.Item, error)

	// ListLowStockItems retrieves items whose stock is at or below their alert threshold.
	ListLowStockItems(ctx context.Context) ([]domain.Item, error)
}

// ItemWriter defines write operations for item data.
type ItemWriter interface {
	// SaveItem persists a new item.
	SaveItem(ctx context.Context, item domain.Item) error

	// UpdateItem updates an existing item's details. Stock is not updated here.
	UpdateItem(ctx context.Context, item domain.Item) error

	// AdjustStock converts quantityKg to bags and applies it to the item's
	// stock in the given direction, clamping the result at zero.
	AdjustStock(ctx context.Context, itemID string, quantityKg decimal.Decimal, direction domain.StockDirection) error

	// EnsureUniversalItem inserts the universal item if no item carries the
	// flag yet. Uniqueness is enforced by a store-level constraint.
	EnsureUniversalItem(ctx context.Context, item domain.Item) error
}

// ItemRepositoryFacade combines all item-related repository interfaces.
type ItemRepositoryFacade interface {
	ItemReader
	ItemWriter
}
