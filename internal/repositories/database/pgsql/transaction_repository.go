package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mandibooks/billing_backend/internal/apperrors"
	"github.com/mandibooks/billing_backend/internal/core/domain"
	portsrepo "github.com/mandibooks/billing_backend/internal/core/ports/repositories"
	"github.com/mandibooks/billing_backend/internal/models"
)

type PgxTransactionRepository struct {
	BaseRepository
	partyRepo portsrepo.PartyRepositoryFacade
}

// newPgxTransactionRepository creates a new repository for transaction data.
// The party repository is injected so ledger effects share the transaction's
// database transaction.
func newPgxTransactionRepository(pool *pgxpool.Pool, partyRepo portsrepo.PartyRepositoryFacade) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
		partyRepo:      partyRepo,
	}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

func toModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID: d.TransactionID,
		Number:        d.Number,
		Type:          string(d.Type),
		PartyID:       d.PartyID,
		PartyName:     d.PartyName,
		PartyPhone:    d.PartyPhone,
		Amount:        d.Amount,
		TotalAmount:   d.TotalAmount,
		TxnDate:       d.TxnDate,
		Status:        string(d.Status),
		DocumentURL:   d.DocumentURL,
		Notes:         d.Notes,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

func toDomainTransaction(m models.Transaction, items []models.TransactionItem) domain.Transaction {
	d := domain.Transaction{
		TransactionID: m.TransactionID,
		Number:        m.Number,
		Type:          domain.TransactionType(m.Type),
		PartyID:       m.PartyID,
		PartyName:     m.PartyName,
		PartyPhone:    m.PartyPhone,
		Amount:        m.Amount,
		TotalAmount:   m.TotalAmount,
		TxnDate:       m.TxnDate,
		Status:        domain.TransactionStatus(m.Status),
		DocumentURL:   m.DocumentURL,
		Notes:         m.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
	for _, it := range items {
		d.Items = append(d.Items, domain.LineItem{
			ItemID:   it.ItemID,
			Quantity: it.QuantityKg,
			Price:    it.Price,
		})
	}
	return d
}

const transactionColumns = `transaction_id, number, type, party_id, party_name, party_phone, amount, total_amount, txn_date, status, document_url, notes, created_at, created_by, last_updated_at, last_updated_by`

func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.Number,
		&m.Type,
		&m.PartyID,
		&m.PartyName,
		&m.PartyPhone,
		&m.Amount,
		&m.TotalAmount,
		&m.TxnDate,
		&m.Status,
		&m.DocumentURL,
		&m.Notes,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// NextNumber atomically increments and returns the sequence value for a
// prefix. An upsert on the counters table keeps concurrent creates from
// ever observing the same value.
func (r *PgxTransactionRepository) NextNumber(ctx context.Context, prefix string) (int64, error) {
	query := `
		INSERT INTO transaction_counters (prefix, last_value)
		VALUES ($1, 1)
		ON CONFLICT (prefix)
		DO UPDATE SET last_value = transaction_counters.last_value + 1
		RETURNING last_value;
	`
	var value int64
	if err := r.Pool.QueryRow(ctx, query, prefix).Scan(&value); err != nil {
		return 0, fmt.Errorf("failed to advance number sequence for prefix %s: %w", prefix, err)
	}
	return value, nil
}

// applyLedgerEffect runs the effect inside tx, unless the effect is empty.
func (r *PgxTransactionRepository) applyLedgerEffect(ctx context.Context, tx pgx.Tx, effect portsrepo.LedgerEffect) error {
	if effect.IsZero() {
		return nil
	}
	return r.partyRepo.AdjustBalanceInTx(ctx, tx, effect.PartyID, effect.Amount, effect.Op)
}

// insertLineItems batches the line-item inserts for a transaction.
func insertLineItems(ctx context.Context, tx pgx.Tx, transactionID string, items []domain.LineItem) error {
	if len(items) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	query := `
		INSERT INTO transaction_items (transaction_id, item_id, quantity_kg, price, position)
		VALUES ($1, $2, $3, $4, $5);
	`
	for i, li := range items {
		batch.Queue(query, transactionID, li.ItemID, li.Quantity, li.Price, i)
	}
	br := tx.SendBatch(ctx, batch)
	var batchErr error
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil && batchErr == nil {
			batchErr = fmt.Errorf("failed to insert line item %d: %w", i, err)
		}
	}
	if err := br.Close(); err != nil && batchErr == nil {
		batchErr = fmt.Errorf("failed to close line item batch: %w", err)
	}
	return batchErr
}

// SaveTransaction persists the transaction, its line items and the forward
// ledger effect in one database transaction.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, effect portsrepo.LedgerEffect) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := toModelTransaction(txn)
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err = tx.Exec(ctx, query,
		m.TransactionID, m.Number, m.Type, m.PartyID, m.PartyName, m.PartyPhone,
		m.Amount, m.TotalAmount, m.TxnDate, m.Status, m.DocumentURL, m.Notes,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: transaction number %s already exists", apperrors.ErrDuplicate, m.Number)
		}
		return apperrors.NewAppError(500, "failed to insert transaction "+m.TransactionID, err)
	}

	if err := insertLineItems(ctx, tx, m.TransactionID, txn.Items); err != nil {
		return apperrors.NewAppError(500, "failed to insert transaction items", err)
	}

	if err := r.applyLedgerEffect(ctx, tx, effect); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// UpdateTransaction rewrites the record and its line items and applies the
// ledger delta, all in one database transaction.
func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction, effect portsrepo.LedgerEffect) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := toModelTransaction(txn)
	query := `
		UPDATE transactions
		SET amount = $2, total_amount = $3, txn_date = $4, document_url = $5,
		    notes = $6, last_updated_at = $7, last_updated_by = $8
		WHERE transaction_id = $1;
	`
	cmdTag, err := tx.Exec(ctx, query,
		m.TransactionID, m.Amount, m.TotalAmount, m.TxnDate, m.DocumentURL,
		m.Notes, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update transaction "+m.TransactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	// Line items are replaced wholesale; the update path reverses and
	// reapplies inventory from the service side.
	if _, err := tx.Exec(ctx, `DELETE FROM transaction_items WHERE transaction_id = $1;`, m.TransactionID); err != nil {
		return apperrors.NewAppError(500, "failed to clear transaction items", err)
	}
	if err := insertLineItems(ctx, tx, m.TransactionID, txn.Items); err != nil {
		return apperrors.NewAppError(500, "failed to insert transaction items", err)
	}

	if err := r.applyLedgerEffect(ctx, tx, effect); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// UpdateTransactionStatus sets the status and applies any reconciliation
// effect the transition carries.
func (r *PgxTransactionRepository) UpdateTransactionStatus(ctx context.Context, transactionID string, status domain.TransactionStatus, effect portsrepo.LedgerEffect, userID string, now time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		UPDATE transactions
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE transaction_id = $1;
	`
	cmdTag, err := tx.Exec(ctx, query, transactionID, string(status), now, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update transaction status", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if err := r.applyLedgerEffect(ctx, tx, effect); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// DeleteTransaction applies the ledger reversal and removes the record.
// The DELETE is the final statement so a reversal failure rolls everything
// back and leaves the record in place.
func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string, effect portsrepo.LedgerEffect) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.applyLedgerEffect(ctx, tx, effect); err != nil {
		return err
	}

	cmdTag, err := tx.Exec(ctx, `DELETE FROM transactions WHERE transaction_id = $1;`, transactionID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete transaction "+transactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return r.Commit(ctx, tx)
}

// FindTransactionByID retrieves a transaction with its line items.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`
	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction by ID %s: %w", transactionID, err)
	}

	items, err := r.findLineItems(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	d := toDomainTransaction(m, items)
	return &d, nil
}

func (r *PgxTransactionRepository) findLineItems(ctx context.Context, transactionID string) ([]models.TransactionItem, error) {
	query := `
		SELECT transaction_id, item_id, quantity_kg, price, position
		FROM transaction_items
		WHERE transaction_id = $1
		ORDER BY position;
	`
	rows, err := r.Pool.Query(ctx, query, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction items: %w", err)
	}
	defer rows.Close()

	items := []models.TransactionItem{}
	for rows.Next() {
		var it models.TransactionItem
		if err := rows.Scan(&it.TransactionID, &it.ItemID, &it.QuantityKg, &it.Price, &it.Position); err != nil {
			return nil, fmt.Errorf("failed to scan transaction item row: %w", err)
		}
		items = append(items, it)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating transaction item rows: %w", rows.Err())
	}
	return items, nil
}

// ListTransactions retrieves transactions matching the filter, newest first.
// Line items are not populated on listings.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, filter portsrepo.TransactionFilter) ([]domain.Transaction, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE ($1 = '' OR type = $1)
		  AND ($2 = '' OR party_id = $2)
		  AND ($3 = '' OR status = $3)
		  AND ($4 = '' OR number ILIKE '%' || $4 || '%' OR party_name ILIKE '%' || $4 || '%')
		ORDER BY created_at DESC
		LIMIT $5 OFFSET $6;
	`
	rows, err := r.Pool.Query(ctx, query,
		string(filter.Type), filter.PartyID, string(filter.Status), filter.Search,
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	txns := []domain.Transaction{}
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txns = append(txns, toDomainTransaction(m, nil))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", rows.Err())
	}
	return txns, nil
}
