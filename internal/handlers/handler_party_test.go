package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mandibooks/billing_backend/internal/apperrors"
	"github.com/mandibooks/billing_backend/internal/core/domain"
	portssvc "github.com/mandibooks/billing_backend/internal/core/ports/services"
	"github.com/mandibooks/billing_backend/internal/dto"
	"github.com/mandibooks/billing_backend/internal/handlers"
	"github.com/mandibooks/billing_backend/internal/middleware"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock PartyService ---
type MockPartyService struct {
	mock.Mock
}

func (m *MockPartyService) GetPartyByID(ctx context.Context, partyID string) (*domain.Party, error) {
	args := m.Called(ctx, partyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Party), args.Error(1)
}
func (m *MockPartyService) ListParties(ctx context.Context, params dto.ListPartiesParams) ([]domain.Party, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Party), args.Error(1)
}
func (m *MockPartyService) CreateParty(ctx context.Context, req dto.CreatePartyRequest, userID string) (*domain.Party, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Party), args.Error(1)
}
func (m *MockPartyService) FindOrCreateParty(ctx context.Context, name string, phone string, role domain.PartyRole, userID string) (*domain.Party, error) {
	args := m.Called(ctx, name, phone, role, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Party), args.Error(1)
}
func (m *MockPartyService) UpdateParty(ctx context.Context, partyID string, req dto.UpdatePartyRequest, userID string) (*domain.Party, error) {
	args := m.Called(ctx, partyID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Party), args.Error(1)
}
func (m *MockPartyService) DeleteParty(ctx context.Context, partyID string) error {
	args := m.Called(ctx, partyID)
	return args.Error(0)
}
func (m *MockPartyService) AdjustBalance(ctx context.Context, partyID string, amount decimal.Decimal, op domain.BalanceOperation) error {
	args := m.Called(ctx, partyID, amount, op)
	return args.Error(0)
}

var _ portssvc.PartySvcFacade = (*MockPartyService)(nil)

// --- Test Suite ---
type PartyHandlerTestSuite struct {
	suite.Suite
	router           *gin.Engine
	mockPartyService *MockPartyService
}

func (suite *PartyHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.router.Use(middleware.ActorMiddleware())

	suite.mockPartyService = new(MockPartyService)

	handlers.RegisterRoutes(suite.router, &portssvc.ServiceContainer{
		Party: suite.mockPartyService,
	})
}

// --- Test Cases ---

func (suite *PartyHandlerTestSuite) TestCreateParty_Success() {
	created := &domain.Party{
		PartyID: uuid.NewString(),
		Name:    "Ram Traders",
		Phone:   "+919876543210",
		Role:    domain.RoleSupplier,
		Balance: decimal.Zero,
		AuditFields: domain.AuditFields{
			CreatedAt:     time.Now(),
			LastUpdatedAt: time.Now(),
		},
	}

	suite.mockPartyService.On("CreateParty",
		mock.Anything,
		mock.MatchedBy(func(req dto.CreatePartyRequest) bool {
			return req.Name == "Ram Traders" && req.Phone == "9876543210" && req.Role == domain.RoleSupplier
		}),
		"tester",
	).Return(created, nil).Once()

	body, _ := json.Marshal(gin.H{"name": "Ram Traders", "phone": "9876543210", "role": "supplier"})
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/parties", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Actor-ID", "tester")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.PartyResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(created.PartyID, resp.PartyID)
	suite.Equal("+919876543210", resp.Phone)
	suite.mockPartyService.AssertExpectations(suite.T())
}

func (suite *PartyHandlerTestSuite) TestCreateParty_MissingPhone() {
	body, _ := json.Marshal(gin.H{"name": "No Phone"})
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/parties", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)

	var resp map[string]any
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	fields, ok := resp["fields"].(map[string]any)
	suite.Require().True(ok, "binding failures must be reported per field")
	suite.Contains(fields, "Phone")
	suite.mockPartyService.AssertNotCalled(suite.T(), "CreateParty", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PartyHandlerTestSuite) TestGetParty_NotFound() {
	partyID := uuid.NewString()
	suite.mockPartyService.On("GetPartyByID", mock.Anything, partyID).Return(nil, apperrors.ErrNotFound).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/parties/"+partyID, nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockPartyService.AssertExpectations(suite.T())
}

func (suite *PartyHandlerTestSuite) TestListParties_PassesQueryParams() {
	parties := []domain.Party{
		{PartyID: uuid.NewString(), Name: "Ram Traders", Phone: "+919876543210", Role: domain.RoleSupplier, Balance: decimal.NewFromInt(700)},
	}

	suite.mockPartyService.On("ListParties",
		mock.Anything,
		mock.MatchedBy(func(p dto.ListPartiesParams) bool {
			return p.Search == "ram" && p.Limit == 5 && p.Offset == 0
		}),
	).Return(parties, nil).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/parties?search=ram&limit=5", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.ListPartiesResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Parties, 1)
	suite.Equal("Ram Traders", resp.Parties[0].Name)
	suite.mockPartyService.AssertExpectations(suite.T())
}

func (suite *PartyHandlerTestSuite) TestDeleteParty_NoContent() {
	partyID := uuid.NewString()
	suite.mockPartyService.On("DeleteParty", mock.Anything, partyID).Return(nil).Once()

	req, _ := http.NewRequest(http.MethodDelete, "/api/v1/parties/"+partyID, nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNoContent, w.Code)
	suite.mockPartyService.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestPartyHandler(t *testing.T) {
	suite.Run(t, new(PartyHandlerTestSuite))
}
