package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/mandibooks/billing_backend/internal/apperrors"
	"github.com/mandibooks/billing_backend/internal/core/domain"
	portssvc "github.com/mandibooks/billing_backend/internal/core/ports/services"
	"github.com/mandibooks/billing_backend/internal/core/services"
	"github.com/mandibooks/billing_backend/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockPartyRepository is a mock type for the PartyRepositoryFacade interface
type MockPartyRepository struct {
	mock.Mock
}

func (m *MockPartyRepository) SaveParty(ctx context.Context, party domain.Party) error {
	args := m.Called(ctx, party)
	return args.Error(0)
}

func (m *MockPartyRepository) FindPartyByID(ctx context.Context, partyID string) (*domain.Party, error) {
	args := m.Called(ctx, partyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Party), args.Error(1)
}

func (m *MockPartyRepository) FindPartyByNamePhone(ctx context.Context, name string, phone string) (*domain.Party, error) {
	args := m.Called(ctx, name, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Party), args.Error(1)
}

func (m *MockPartyRepository) ListParties(ctx context.Context, search string, limit int, offset int) ([]domain.Party, error) {
	args := m.Called(ctx, search, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Party), args.Error(1)
}

func (m *MockPartyRepository) UpdateParty(ctx context.Context, party domain.Party) error {
	args := m.Called(ctx, party)
	return args.Error(0)
}

func (m *MockPartyRepository) DeleteParty(ctx context.Context, partyID string) error {
	args := m.Called(ctx, partyID)
	return args.Error(0)
}

func (m *MockPartyRepository) AdjustBalance(ctx context.Context, partyID string, amount decimal.Decimal, op domain.BalanceOperation) error {
	args := m.Called(ctx, partyID, amount, op)
	return args.Error(0)
}

func (m *MockPartyRepository) AdjustBalanceInTx(ctx context.Context, tx pgx.Tx, partyID string, amount decimal.Decimal, op domain.BalanceOperation) error {
	args := m.Called(ctx, tx, partyID, amount, op)
	return args.Error(0)
}

// --- Test Suite Setup ---

type PartyServiceTestSuite struct {
	suite.Suite
	mockRepo *MockPartyRepository
	service  portssvc.PartySvcFacade
}

func (suite *PartyServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockPartyRepository)
	suite.service = services.NewPartyService(suite.mockRepo, "IN")
}

// --- Test Cases ---

func (suite *PartyServiceTestSuite) TestCreateParty_Success() {
	ctx := context.Background()
	req := dto.CreatePartyRequest{
		Name:  "Ram Traders",
		Phone: "98765 43210",
	}

	suite.mockRepo.On("SaveParty", ctx, mock.MatchedBy(func(p domain.Party) bool {
		return p.Phone == "+919876543210" && p.Balance.IsZero() && p.Role == domain.RoleGeneric
	})).Return(nil).Once()

	party, err := suite.service.CreateParty(ctx, req, "tester")

	suite.Require().NoError(err)
	suite.Require().NotNil(party)
	suite.NotEmpty(party.PartyID)
	suite.Equal("Ram Traders", party.Name)
	suite.Equal("+919876543210", party.Phone)
	suite.True(party.Balance.IsZero())
	suite.Equal("tester", party.CreatedBy)
	suite.WithinDuration(time.Now(), party.CreatedAt, time.Second)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PartyServiceTestSuite) TestCreateParty_InvalidPhone() {
	ctx := context.Background()
	req := dto.CreatePartyRequest{Name: "Broken", Phone: "12"}

	party, err := suite.service.CreateParty(ctx, req, "tester")

	suite.Require().Error(err)
	suite.Nil(party)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveParty", mock.Anything, mock.Anything)
}

func (suite *PartyServiceTestSuite) TestFindOrCreateParty_Existing() {
	ctx := context.Background()
	existing := &domain.Party{
		PartyID: "p-1",
		Name:    "Shyam & Sons",
		Phone:   "+919876543210",
		Balance: decimal.NewFromInt(700),
	}

	suite.mockRepo.On("FindPartyByNamePhone", ctx, "Shyam & Sons", "+919876543210").Return(existing, nil).Once()

	party, err := suite.service.FindOrCreateParty(ctx, "Shyam & Sons", "98765 43210", domain.RoleSupplier, "tester")

	suite.Require().NoError(err)
	suite.Equal("p-1", party.PartyID)
	suite.True(party.Balance.Equal(decimal.NewFromInt(700)), "existing balance must not change")
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveParty", mock.Anything, mock.Anything)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PartyServiceTestSuite) TestFindOrCreateParty_CreatesWhenAbsent() {
	ctx := context.Background()

	suite.mockRepo.On("FindPartyByNamePhone", ctx, "New Buyer", "+919876543210").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveParty", ctx, mock.MatchedBy(func(p domain.Party) bool {
		return p.Name == "New Buyer" && p.Phone == "+919876543210" && p.Role == domain.RoleCustomer && p.Balance.IsZero()
	})).Return(nil).Once()

	party, err := suite.service.FindOrCreateParty(ctx, "New Buyer", "9876543210", domain.RoleCustomer, "tester")

	suite.Require().NoError(err)
	suite.NotEmpty(party.PartyID)
	suite.True(party.Balance.IsZero())
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PartyServiceTestSuite) TestFindOrCreateParty_DuplicateRace() {
	ctx := context.Background()
	winner := &domain.Party{PartyID: "p-2", Name: "Racer", Phone: "+919876543210"}

	suite.mockRepo.On("FindPartyByNamePhone", ctx, "Racer", "+919876543210").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveParty", ctx, mock.AnythingOfType("domain.Party")).Return(fmt.Errorf("%w: party exists", apperrors.ErrDuplicate)).Once()
	suite.mockRepo.On("FindPartyByNamePhone", ctx, "Racer", "+919876543210").Return(winner, nil).Once()

	party, err := suite.service.FindOrCreateParty(ctx, "Racer", "9876543210", domain.RoleGeneric, "tester")

	suite.Require().NoError(err)
	suite.Equal("p-2", party.PartyID)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PartyServiceTestSuite) TestUpdateParty_AppliesProvidedFields() {
	ctx := context.Background()
	existing := &domain.Party{
		PartyID: "p-3",
		Name:    "Old Name",
		Phone:   "+919876543210",
		Role:    domain.RoleGeneric,
	}
	newName := "New Name"
	newRole := domain.RoleSupplier

	suite.mockRepo.On("FindPartyByID", ctx, "p-3").Return(existing, nil).Once()
	suite.mockRepo.On("UpdateParty", ctx, mock.MatchedBy(func(p domain.Party) bool {
		return p.Name == "New Name" && p.Role == domain.RoleSupplier && p.Phone == "+919876543210"
	})).Return(nil).Once()

	party, err := suite.service.UpdateParty(ctx, "p-3", dto.UpdatePartyRequest{Name: &newName, Role: &newRole}, "tester")

	suite.Require().NoError(err)
	suite.Equal("New Name", party.Name)
	suite.Equal("tester", party.LastUpdatedBy)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PartyServiceTestSuite) TestDeleteParty_NotFound() {
	ctx := context.Background()
	suite.mockRepo.On("DeleteParty", ctx, "missing").Return(apperrors.ErrNotFound).Once()

	err := suite.service.DeleteParty(ctx, "missing")

	suite.Require().Error(err)
	assert.ErrorIs(suite.T(), err, apperrors.ErrNotFound)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestPartyServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PartyServiceTestSuite))
}
