package services_test

import (
	"context"
	"testing"

	"github.com/mandibooks/billing_backend/internal/apperrors"
	"github.com/mandibooks/billing_backend/internal/core/domain"
	portssvc "github.com/mandibooks/billing_backend/internal/core/ports/services"
	"github.com/mandibooks/billing_backend/internal/core/services"
	"github.com/mandibooks/billing_backend/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockItemRepository is a mock type for the ItemRepositoryFacade interface
type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) SaveItem(ctx context.Context, item domain.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockItemRepository) FindItemByID(ctx context.Context, itemID string) (*domain.Item, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}

func (m *MockItemRepository) FindUniversalItem(ctx context.Context) (*domain.Item, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}

func (m *MockItemRepository) ListItems(ctx context.Context, search string, limit int, offset int) ([]domain.Item, error) {
	args := m.Called(ctx, search, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Item), args.Error(1)
}

func (m *MockItemRepository) ListLowStockItems(ctx context.Context) ([]domain.Item, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Item), args.Error(1)
}

func (m *MockItemRepository) UpdateItem(ctx context.Context, item domain.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockItemRepository) AdjustStock(ctx context.Context, itemID string, quantityKg decimal.Decimal, direction domain.StockDirection) error {
	args := m.Called(ctx, itemID, quantityKg, direction)
	return args.Error(0)
}

func (m *MockItemRepository) EnsureUniversalItem(ctx context.Context, item domain.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

// --- Test Suite Setup ---

type ItemServiceTestSuite struct {
	suite.Suite
	mockRepo *MockItemRepository
	service  portssvc.ItemSvcFacade
}

func (suite *ItemServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockItemRepository)
	suite.service = services.NewItemService(suite.mockRepo)
}

// --- Test Cases ---

func (suite *ItemServiceTestSuite) TestCreateItem_ConvertsOpeningStockToBags() {
	ctx := context.Background()
	req := dto.CreateItemRequest{
		ProductName:    "Basmati Rice",
		Category:       "Grain",
		PurchasePrice:  decimal.NewFromInt(40),
		SalePrice:      decimal.NewFromInt(55),
		OpeningStockKg: decimal.NewFromInt(300),
		LowStockAlert:  decimal.NewFromInt(2),
	}

	suite.mockRepo.On("SaveItem", ctx, mock.MatchedBy(func(it domain.Item) bool {
		return it.OpeningStock.Equal(decimal.NewFromInt(10)) && !it.IsUniversal
	})).Return(nil).Once()

	item, err := suite.service.CreateItem(ctx, req, "tester")

	suite.Require().NoError(err)
	suite.Require().NotNil(item)
	suite.NotEmpty(item.ItemID)
	suite.True(item.OpeningStock.Equal(decimal.NewFromInt(10)), "300 kg is 10 bags, got %s", item.OpeningStock)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ItemServiceTestSuite) TestUpdateItem_DoesNotTouchStock() {
	ctx := context.Background()
	existing := &domain.Item{
		ItemID:       "i-1",
		ProductName:  "Wheat",
		OpeningStock: decimal.NewFromInt(7),
	}
	newName := "Wheat Premium"

	suite.mockRepo.On("FindItemByID", ctx, "i-1").Return(existing, nil).Once()
	suite.mockRepo.On("UpdateItem", ctx, mock.MatchedBy(func(it domain.Item) bool {
		return it.ProductName == "Wheat Premium" && it.OpeningStock.Equal(decimal.NewFromInt(7))
	})).Return(nil).Once()

	item, err := suite.service.UpdateItem(ctx, "i-1", dto.UpdateItemRequest{ProductName: &newName}, "tester")

	suite.Require().NoError(err)
	suite.Equal("Wheat Premium", item.ProductName)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ItemServiceTestSuite) TestUpdateItem_NotFound() {
	ctx := context.Background()
	suite.mockRepo.On("FindItemByID", ctx, "missing").Return(nil, apperrors.ErrNotFound).Once()

	item, err := suite.service.UpdateItem(ctx, "missing", dto.UpdateItemRequest{}, "tester")

	suite.Require().Error(err)
	suite.Nil(item)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *ItemServiceTestSuite) TestEnsureUniversalItem_SeedsBardana() {
	ctx := context.Background()

	suite.mockRepo.On("EnsureUniversalItem", ctx, mock.MatchedBy(func(it domain.Item) bool {
		return it.ProductName == domain.UniversalItemName &&
			it.Category == domain.UniversalItemCategory &&
			it.IsUniversal &&
			it.OpeningStock.IsZero()
	})).Return(nil).Once()

	err := suite.service.EnsureUniversalItem(ctx, "system")

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestItemServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ItemServiceTestSuite))
}
