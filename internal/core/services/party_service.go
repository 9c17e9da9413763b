package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/mandibooks/billing_backend/internal/apperrors"
	"github.com/mandibooks/billing_backend/internal/core/domain"
	portsrepo "github.com/mandibooks/billing_backend/internal/core/ports/repositories"
	portssvc "github.com/mandibooks/billing_backend/internal/core/ports/services"
	"github.com/mandibooks/billing_backend/internal/dto"
	"github.com/mandibooks/billing_backend/internal/utils"
	"github.com/shopspring/decimal"
)

// partyServiceImpl implements the PartySvcFacade interface.
type partyServiceImpl struct {
	BaseService
	partyRepo          portsrepo.PartyRepositoryFacade
	defaultPhoneRegion string
}

// NewPartyService creates a new party service. defaultPhoneRegion is the
// ISO region used to normalize phone numbers without a country prefix.
func NewPartyService(repo portsrepo.PartyRepositoryFacade, defaultPhoneRegion string) portssvc.PartySvcFacade {
	return &partyServiceImpl{
		partyRepo:          repo,
		defaultPhoneRegion: defaultPhoneRegion,
	}
}

var _ portssvc.PartySvcFacade = (*partyServiceImpl)(nil)

func (s *partyServiceImpl) CreateParty(ctx context.Context, req dto.CreatePartyRequest, userID string) (*domain.Party, error) {
	phone, err := utils.NormalizePhone(req.Phone, s.defaultPhoneRegion)
	if err != nil {
		s.LogError(ctx, err, "Invalid phone number on party creation", slog.String("phone", req.Phone))
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = domain.RoleGeneric
	}

	now := time.Now()
	party := domain.Party{
		PartyID: uuid.NewString(),
		Name:    req.Name,
		Phone:   phone,
		Role:    role,
		Balance: decimal.Zero,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.partyRepo.SaveParty(ctx, party); err != nil {
		s.LogError(ctx, err, "Failed to save party", slog.String("name", req.Name))
		return nil, err
	}

	s.LogInfo(ctx, "Party created", slog.String("party_id", party.PartyID))
	return &party, nil
}

// FindOrCreateParty resolves a party by exact (name, normalized phone) and
// creates it with a zero balance when absent. A duplicate-key race on the
// insert falls back to a second lookup, so concurrent callers converge on
// the same party.
func (s *partyServiceImpl) FindOrCreateParty(ctx context.Context, name string, phone string, role domain.PartyRole, userID string) (*domain.Party, error) {
	normalized, err := utils.NormalizePhone(phone, s.defaultPhoneRegion)
	if err != nil {
		return nil, err
	}

	existing, err := s.partyRepo.FindPartyByNamePhone(ctx, name, normalized)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to resolve party: %w", err)
	}

	now := time.Now()
	party := domain.Party{
		PartyID: uuid.NewString(),
		Name:    name,
		Phone:   normalized,
		Role:    role,
		Balance: decimal.Zero,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.partyRepo.SaveParty(ctx, party); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return s.partyRepo.FindPartyByNamePhone(ctx, name, normalized)
		}
		s.LogError(ctx, err, "Failed to create party during resolution", slog.String("name", name))
		return nil, err
	}

	s.LogInfo(ctx, "Party auto-created", slog.String("party_id", party.PartyID), slog.String("name", name))
	return &party, nil
}

func (s *partyServiceImpl) GetPartyByID(ctx context.Context, partyID string) (*domain.Party, error) {
	return s.partyRepo.FindPartyByID(ctx, partyID)
}

func (s *partyServiceImpl) ListParties(ctx context.Context, params dto.ListPartiesParams) ([]domain.Party, error) {
	return s.partyRepo.ListParties(ctx, params.Search, params.Limit, params.Offset)
}

func (s *partyServiceImpl) UpdateParty(ctx context.Context, partyID string, req dto.UpdatePartyRequest, userID string) (*domain.Party, error) {
	party, err := s.partyRepo.FindPartyByID(ctx, partyID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		party.Name = *req.Name
	}
	if req.Phone != nil {
		phone, err := utils.NormalizePhone(*req.Phone, s.defaultPhoneRegion)
		if err != nil {
			return nil, err
		}
		party.Phone = phone
	}
	if req.Role != nil {
		party.Role = *req.Role
	}
	party.LastUpdatedAt = time.Now()
	party.LastUpdatedBy = userID

	if err := s.partyRepo.UpdateParty(ctx, *party); err != nil {
		s.LogError(ctx, err, "Failed to update party", slog.String("party_id", partyID))
		return nil, err
	}
	return party, nil
}

// DeleteParty removes the party record. Transactions that reference it keep
// their denormalized name and phone.
func (s *partyServiceImpl) DeleteParty(ctx context.Context, partyID string) error {
	if err := s.partyRepo.DeleteParty(ctx, partyID); err != nil {
		s.LogError(ctx, err, "Failed to delete party", slog.String("party_id", partyID))
		return err
	}
	s.LogInfo(ctx, "Party deleted", slog.String("party_id", partyID))
	return nil
}

func (s *partyServiceImpl) AdjustBalance(ctx context.Context, partyID string, amount decimal.Decimal, op domain.BalanceOperation) error {
	return s.partyRepo.AdjustBalance(ctx, partyID, amount, op)
}
