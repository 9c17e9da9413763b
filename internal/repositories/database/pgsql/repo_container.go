package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/mandibooks/billing_backend/internal/core/ports/repositories"
)

// NewRepositoryProvider wires the pgx repositories together. The party
// repository is shared with the transaction repository so ledger effects
// run inside transaction writes.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	partyRepo := newPgxPartyRepository(dbPool)
	itemRepo := newPgxItemRepository(dbPool)
	transactionRepo := newPgxTransactionRepository(dbPool, partyRepo)

	return portsrepo.RepositoryProvider{
		PartyRepo:       partyRepo,
		ItemRepo:        itemRepo,
		TransactionRepo: transactionRepo,
	}
}
