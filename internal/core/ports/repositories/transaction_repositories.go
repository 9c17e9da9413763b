package repositories

import (
	"context"
	"time"

	"github.com/mandibooks/billing_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransactionFilter narrows transaction listings. Zero values mean "any".
// Search is a contains-match on the number or the denormalized party name.
type TransactionFilter struct {
	Type    domain.TransactionType
	PartyID string
	Status  domain.TransactionStatus
	Search  string
	Limit   int
	Offset  int
}

// LedgerEffect describes the balance mutation a transaction write carries.
// A zero-valued effect (empty Op) means the ledger is not touched.
type LedgerEffect struct {
	PartyID string
	Amount  decimal.Decimal
	Op      domain.BalanceOperation
}

// IsZero reports whether the effect carries no ledger mutation.
func (e LedgerEffect) IsZero() bool {
	return e.Op == ""
}

// TransactionReader defines read operations for transaction data.
type TransactionReader interface {
	// FindTransactionByID retrieves a transaction together with its line items.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves transactions matching the filter, newest first.
	ListTransactions(ctx context.Context, filter TransactionFilter) ([]domain.Transaction, error)
}

// TransactionWriter defines write operations for transaction data. Writes
// that carry a ledger effect apply it in the same database transaction as
// the record mutation, so the record and the party balance move together.
type TransactionWriter interface {
	// SaveTransaction persists a new transaction, its line items, and the
	// forward ledger effect.
	SaveTransaction(ctx context.Context, txn domain.Transaction, effect LedgerEffect) error

	// UpdateTransaction rewrites a transaction and its line items and applies
	// the ledger delta.
	UpdateTransaction(ctx context.Context, txn domain.Transaction, effect LedgerEffect) error

	// UpdateTransactionStatus sets the status and applies any reconciliation
	// effect the status change carries.
	UpdateTransactionStatus(ctx context.Context, transactionID string, status domain.TransactionStatus, effect LedgerEffect, userID string, now time.Time) error

	// DeleteTransaction applies the ledger reversal and removes the record.
	// The record removal is the last statement: a reversal failure leaves the
	// record in place for inspection.
	DeleteTransaction(ctx context.Context, transactionID string, effect LedgerEffect) error

	// NextNumber atomically increments and returns the sequence value for a
	// number prefix. The first call for a fresh prefix returns 1.
	NextNumber(ctx context.Context, prefix string) (int64, error)
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces.
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
