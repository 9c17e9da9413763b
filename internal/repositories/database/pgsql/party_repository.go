package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mandibooks/billing_backend/internal/apperrors"
	"github.com/mandibooks/billing_backend/internal/core/domain"
	portsrepo "github.com/mandibooks/billing_backend/internal/core/ports/repositories"
	"github.com/mandibooks/billing_backend/internal/models"
	"github.com/shopspring/decimal"
)

type PgxPartyRepository struct {
	BaseRepository
}

// newPgxPartyRepository creates a new repository for party data.
func newPgxPartyRepository(pool *pgxpool.Pool) portsrepo.PartyRepositoryFacade {
	return &PgxPartyRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PartyRepositoryFacade = (*PgxPartyRepository)(nil)

func toModelParty(d domain.Party) models.Party {
	return models.Party{
		PartyID: d.PartyID,
		Name:    d.Name,
		Phone:   d.Phone,
		Role:    string(d.Role),
		Balance: d.Balance,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

func toDomainParty(m models.Party) domain.Party {
	return domain.Party{
		PartyID: m.PartyID,
		Name:    m.Name,
		Phone:   m.Phone,
		Role:    domain.PartyRole(m.Role),
		Balance: m.Balance,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const partyColumns = `party_id, name, phone, role, balance, created_at, created_by, last_updated_at, last_updated_by`

func scanParty(row pgx.Row) (models.Party, error) {
	var m models.Party
	err := row.Scan(
		&m.PartyID,
		&m.Name,
		&m.Phone,
		&m.Role,
		&m.Balance,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveParty inserts a new party.
func (r *PgxPartyRepository) SaveParty(ctx context.Context, party domain.Party) error {
	m := toModelParty(party)
	query := `
		INSERT INTO parties (` + partyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.PartyID, m.Name, m.Phone, m.Role, m.Balance,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: party %s / %s already exists", apperrors.ErrDuplicate, m.Name, m.Phone)
		}
		return fmt.Errorf("failed to save party %s: %w", m.PartyID, err)
	}
	return nil
}

// FindPartyByID retrieves a party by its ID.
func (r *PgxPartyRepository) FindPartyByID(ctx context.Context, partyID string) (*domain.Party, error) {
	query := `SELECT ` + partyColumns + ` FROM parties WHERE party_id = $1;`
	m, err := scanParty(r.Pool.QueryRow(ctx, query, partyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find party by ID %s: %w", partyID, err)
	}
	d := toDomainParty(m)
	return &d, nil
}

// FindPartyByNamePhone retrieves a party by the exact (name, phone) pair.
// Phone must already be normalized by the caller.
func (r *PgxPartyRepository) FindPartyByNamePhone(ctx context.Context, name string, phone string) (*domain.Party, error) {
	query := `SELECT ` + partyColumns + ` FROM parties WHERE name = $1 AND phone = $2;`
	m, err := scanParty(r.Pool.QueryRow(ctx, query, name, phone))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find party by name/phone: %w", err)
	}
	d := toDomainParty(m)
	return &d, nil
}

// ListParties retrieves a paginated list of parties, optionally filtered by
// a contains-match on name or phone.
func (r *PgxPartyRepository) ListParties(ctx context.Context, search string, limit int, offset int) ([]domain.Party, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + partyColumns + `
		FROM parties
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%' OR phone ILIKE '%' || $1 || '%')
		ORDER BY name
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, search, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query parties: %w", err)
	}
	defer rows.Close()

	parties := []domain.Party{}
	for rows.Next() {
		m, err := scanParty(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan party row: %w", err)
		}
		parties = append(parties, toDomainParty(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating party rows: %w", rows.Err())
	}
	return parties, nil
}

// UpdateParty updates an existing party's details. Balance is not written
// here; it only moves through AdjustBalance.
func (r *PgxPartyRepository) UpdateParty(ctx context.Context, party domain.Party) error {
	m := toModelParty(party)
	query := `
		UPDATE parties
		SET name = $2, phone = $3, role = $4, last_updated_at = $5, last_updated_by = $6
		WHERE party_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.PartyID, m.Name, m.Phone, m.Role, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: party %s / %s already exists", apperrors.ErrDuplicate, m.Name, m.Phone)
		}
		return fmt.Errorf("failed to update party %s: %w", m.PartyID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteParty removes a party. Transactions referencing it are untouched.
func (r *PgxPartyRepository) DeleteParty(ctx context.Context, partyID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM parties WHERE party_id = $1;`, partyID)
	if err != nil {
		return fmt.Errorf("failed to delete party %s: %w", partyID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// balanceUpdateQuery builds the UPDATE for a balance operation.
func balanceUpdateQuery(op domain.BalanceOperation) (string, error) {
	switch op {
	case domain.BalanceAdd:
		return `UPDATE parties SET balance = COALESCE(balance, 0) + $2 WHERE party_id = $1;`, nil
	case domain.BalanceSubtract:
		return `UPDATE parties SET balance = COALESCE(balance, 0) - $2 WHERE party_id = $1;`, nil
	case domain.BalanceSet:
		return `UPDATE parties SET balance = $2 WHERE party_id = $1;`, nil
	}
	return "", fmt.Errorf("%w: unknown balance operation %q", apperrors.ErrValidation, op)
}

// AdjustBalance atomically applies a balance mutation.
func (r *PgxPartyRepository) AdjustBalance(ctx context.Context, partyID string, amount decimal.Decimal, op domain.BalanceOperation) error {
	query, err := balanceUpdateQuery(op)
	if err != nil {
		return err
	}
	cmdTag, err := r.Pool.Exec(ctx, query, partyID, amount)
	if err != nil {
		return fmt.Errorf("failed to adjust balance for party %s: %w", partyID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: party %s not found during balance adjustment", apperrors.ErrNotFound, partyID)
	}
	return nil
}

// AdjustBalanceInTx applies a balance mutation inside the given transaction.
func (r *PgxPartyRepository) AdjustBalanceInTx(ctx context.Context, tx pgx.Tx, partyID string, amount decimal.Decimal, op domain.BalanceOperation) error {
	query, err := balanceUpdateQuery(op)
	if err != nil {
		return err
	}
	cmdTag, err := tx.Exec(ctx, query, partyID, amount)
	if err != nil {
		return fmt.Errorf("failed to adjust balance for party %s: %w", partyID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: party %s not found during balance adjustment", apperrors.ErrNotFound, partyID)
	}
	return nil
}
