package services

import (
	"context"

	"github.com/mandibooks/billing_backend/internal/core/domain"
	"github.com/mandibooks/billing_backend/internal/dto"
)

// TransactionReaderSvc defines read operations for transactions.
type TransactionReaderSvc interface {
	// GetTransactionByID retrieves a transaction with its line items.
	GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves transactions matching the parameters.
	ListTransactions(ctx context.Context, params dto.ListTransactionsParams) ([]domain.Transaction, error)
}

// TransactionWriterSvc defines the reconciling lifecycle operations. Every
// mutation recomputes and applies the ledger and inventory deltas between
// the old and new transaction state.
type TransactionWriterSvc interface {
	// CreateTransaction records a transaction: assigns its number, resolves
	// the party, applies the forward ledger and inventory effects.
	CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, userID string) (*dto.TransactionResult, error)

	// UpdateTransaction applies field changes and the reverse-then-forward
	// deltas against the ledger and inventory.
	UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest, userID string) (*dto.TransactionResult, error)

	// UpdateTransactionStatus performs an explicit status transition,
	// re-invoking the ledger reconciliation on completed<->cancelled.
	UpdateTransactionStatus(ctx context.Context, transactionID string, status domain.TransactionStatus, userID string) (*domain.Transaction, error)

	// DeleteTransaction reverses all effects and removes the record last.
	// Returned strings are best-effort inventory reversal warnings.
	DeleteTransaction(ctx context.Context, transactionID string) ([]string, error)
}

// TransactionSvcFacade combines all transaction-related service interfaces.
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
}
