package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/mandibooks/billing_backend/internal/core/domain"
	portsrepo "github.com/mandibooks/billing_backend/internal/core/ports/repositories"
	portssvc "github.com/mandibooks/billing_backend/internal/core/ports/services"
	"github.com/mandibooks/billing_backend/internal/dto"
	"github.com/shopspring/decimal"
)

// itemServiceImpl implements the ItemSvcFacade interface.
type itemServiceImpl struct {
	BaseService
	itemRepo portsrepo.ItemRepositoryFacade
}

// NewItemService creates a new item service.
func NewItemService(repo portsrepo.ItemRepositoryFacade) portssvc.ItemSvcFacade {
	return &itemServiceImpl{itemRepo: repo}
}

var _ portssvc.ItemSvcFacade = (*itemServiceImpl)(nil)

func (s *itemServiceImpl) CreateItem(ctx context.Context, req dto.CreateItemRequest, userID string) (*domain.Item, error) {
	now := time.Now()
	item := domain.Item{
		ItemID:        uuid.NewString(),
		ProductName:   req.ProductName,
		Category:      req.Category,
		PurchasePrice: req.PurchasePrice,
		SalePrice:     req.SalePrice,
		OpeningStock:  domain.BagsFromKg(req.OpeningStockKg),
		LowStockAlert: req.LowStockAlert,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.itemRepo.SaveItem(ctx, item); err != nil {
		s.LogError(ctx, err, "Failed to save item", slog.String("product_name", req.ProductName))
		return nil, err
	}

	s.LogInfo(ctx, "Item created", slog.String("item_id", item.ItemID))
	return &item, nil
}

func (s *itemServiceImpl) GetItemByID(ctx context.Context, itemID string) (*domain.Item, error) {
	return s.itemRepo.FindItemByID(ctx, itemID)
}

func (s *itemServiceImpl) GetUniversalItem(ctx context.Context) (*domain.Item, error) {
	return s.itemRepo.FindUniversalItem(ctx)
}

func (s *itemServiceImpl) ListItems(ctx context.Context, params dto.ListItemsParams) ([]domain.Item, error) {
	return s.itemRepo.ListItems(ctx, params.Search, params.Limit, params.Offset)
}

func (s *itemServiceImpl) ListLowStockItems(ctx context.Context) ([]domain.Item, error) {
	return s.itemRepo.ListLowStockItems(ctx)
}

func (s *itemServiceImpl) UpdateItem(ctx context.Context, itemID string, req dto.UpdateItemRequest, userID string) (*domain.Item, error) {
	item, err := s.itemRepo.FindItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	if req.ProductName != nil {
		item.ProductName = *req.ProductName
	}
	if req.Category != nil {
		item.Category = *req.Category
	}
	if req.PurchasePrice != nil {
		item.PurchasePrice = *req.PurchasePrice
	}
	if req.SalePrice != nil {
		item.SalePrice = *req.SalePrice
	}
	if req.LowStockAlert != nil {
		item.LowStockAlert = *req.LowStockAlert
	}
	item.LastUpdatedAt = time.Now()
	item.LastUpdatedBy = userID

	if err := s.itemRepo.UpdateItem(ctx, *item); err != nil {
		s.LogError(ctx, err, "Failed to update item", slog.String("item_id", itemID))
		return nil, err
	}
	return item, nil
}

func (s *itemServiceImpl) AdjustStock(ctx context.Context, itemID string, quantityKg decimal.Decimal, direction domain.StockDirection) error {
	return s.itemRepo.AdjustStock(ctx, itemID, quantityKg, direction)
}

// EnsureUniversalItem seeds the aggregate tracking item at startup. The
// insert is a no-op when one already exists.
func (s *itemServiceImpl) EnsureUniversalItem(ctx context.Context, userID string) error {
	now := time.Now()
	item := domain.Item{
		ItemID:        uuid.NewString(),
		ProductName:   domain.UniversalItemName,
		Category:      domain.UniversalItemCategory,
		PurchasePrice: decimal.Zero,
		SalePrice:     decimal.Zero,
		OpeningStock:  decimal.Zero,
		LowStockAlert: decimal.Zero,
		IsUniversal:   true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.itemRepo.EnsureUniversalItem(ctx, item); err != nil {
		s.LogError(ctx, err, "Failed to seed universal item")
		return err
	}
	return nil
}
