package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/mandibooks/billing_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PartyReader defines read operations for party data.
type PartyReader interface {
	// FindPartyByID retrieves a specific party by its unique identifier.
	FindPartyByID(ctx context.Context, partyID string) (*domain.Party, error)

	// FindPartyByNamePhone retrieves a party by the exact (name, normalized phone) pair.
	FindPartyByNamePhone(ctx context.Context, name string, phone string) (*domain.Party, error)

	// ListParties retrieves a paginated list of parties, optionally filtered by a
	// contains-match on name or phone.
	ListParties(ctx context.Context, search string, limit int, offset int) ([]domain.Party, error)
}

// PartyWriter defines write operations for party data.
type PartyWriter interface {
	// SaveParty persists a new party.
	SaveParty(ctx context.Context, party domain.Party) error

	// UpdateParty updates an existing party's details.
	UpdateParty(ctx context.Context, party domain.Party) error

	// DeleteParty removes a party. Transactions referencing it are left in place.
	DeleteParty(ctx context.Context, partyID string) error

	// AdjustBalance atomically applies a balance mutation. Returns
	// apperrors.ErrNotFound when the party does not resolve.
	AdjustBalance(ctx context.Context, partyID string, amount decimal.Decimal, op domain.BalanceOperation) error
}

// PartyLedgerInTx defines ledger operations that participate in an enclosing
// database transaction.
type PartyLedgerInTx interface {
	// AdjustBalanceInTx applies a balance mutation using the given transaction.
	AdjustBalanceInTx(ctx context.Context, tx pgx.Tx, partyID string, amount decimal.Decimal, op domain.BalanceOperation) error
}

// PartyRepositoryFacade combines all party-related repository interfaces.
type PartyRepositoryFacade interface {
	PartyReader
	PartyWriter
	PartyLedgerInTx
}
