package services

import (
	"context"

	"github.com/mandibooks/billing_backend/internal/core/domain"
	"github.com/mandibooks/billing_backend/internal/dto"
	"github.com/shopspring/decimal"
)

// PartyReaderSvc defines read operations for party data.
type PartyReaderSvc interface {
	// GetPartyByID retrieves a specific party by its unique identifier.
	GetPartyByID(ctx context.Context, partyID string) (*domain.Party, error)

	// ListParties retrieves a paginated list of parties.
	ListParties(ctx context.Context, params dto.ListPartiesParams) ([]domain.Party, error)
}

// PartyWriterSvc defines write operations for party data.
type PartyWriterSvc interface {
	// CreateParty persists a new party with a zero balance.
	CreateParty(ctx context.Context, req dto.CreatePartyRequest, userID string) (*domain.Party, error)

	// FindOrCreateParty resolves a party by exact (name, normalized phone),
	// creating it when absent. Idempotent.
	FindOrCreateParty(ctx context.Context, name string, phone string, role domain.PartyRole, userID string) (*domain.Party, error)

	// UpdateParty updates an existing party's details.
	UpdateParty(ctx context.Context, partyID string, req dto.UpdatePartyRequest, userID string) (*domain.Party, error)

	// DeleteParty removes a party without cascading to its transactions.
	DeleteParty(ctx context.Context, partyID string) error
}

// PartyLedgerSvc defines the ledger adjustment operation.
type PartyLedgerSvc interface {
	// AdjustBalance applies a balance mutation; failures propagate.
	AdjustBalance(ctx context.Context, partyID string, amount decimal.Decimal, op domain.BalanceOperation) error
}

// PartySvcFacade combines all party-related service interfaces.
type PartySvcFacade interface {
	PartyReaderSvc
	PartyWriterSvc
	PartyLedgerSvc
}
