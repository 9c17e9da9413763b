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

type PgxItemRepository struct {
	BaseRepository
}

// newPgxItemRepository creates a new repository for item data.
func newPgxItemRepository(pool *pgxpool.Pool) portsrepo.ItemRepositoryFacade {
	return &PgxItemRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ItemRepositoryFacade = (*PgxItemRepository)(nil)

func toModelItem(d domain.Item) models.Item {
	return models.Item{
		ItemID:        d.ItemID,
		ProductName:   d.ProductName,
		Category:      d.Category,
		PurchasePrice: d.PurchasePrice,
		SalePrice:     d.SalePrice,
		OpeningStock:  d.OpeningStock,
		LowStockAlert: d.LowStockAlert,
		IsUniversal:   d.IsUniversal,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

func toDomainItem(m models.Item) domain.Item {
	return domain.Item{
		ItemID:        m.ItemID,
		ProductName:   m.ProductName,
		Category:      m.Category,
		PurchasePrice: m.PurchasePrice,
		SalePrice:     m.SalePrice,
		OpeningStock:  m.OpeningStock,
		LowStockAlert: m.LowStockAlert,
		IsUniversal:   m.IsUniversal,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const itemColumns = `item_id, product_name, category, purchase_price, sale_price, opening_stock, low_stock_alert, is_universal, created_at, created_by, last_updated_at, last_updated_by`

func scanItem(row pgx.Row) (models.Item, error) {
	var m models.Item
	err := row.Scan(
		&m.ItemID,
		&m.ProductName,
		&m.Category,
		&m.PurchasePrice,
		&m.SalePrice,
		&m.OpeningStock,
		&m.LowStockAlert,
		&m.IsUniversal,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveItem inserts a new item.
func (r *PgxItemRepository) SaveItem(ctx context.Context, item domain.Item) error {
	m := toModelItem(item)
	query := `
		INSERT INTO items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ItemID, m.ProductName, m.Category, m.PurchasePrice, m.SalePrice,
		m.OpeningStock, m.LowStockAlert, m.IsUniversal,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: item %s already exists", apperrors.ErrDuplicate, m.ProductName)
		}
		return fmt.Errorf("failed to save item %s: %w", m.ItemID, err)
	}
	return nil
}

// FindItemByID retrieves an item by its ID.
func (r *PgxItemRepository) FindItemByID(ctx context.Context, itemID string) (*domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE item_id = $1;`
	m, err := scanItem(r.Pool.QueryRow(ctx, query, itemID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find item by ID %s: %w", itemID, err)
	}
	d := toDomainItem(m)
	return &d, nil
}

// FindUniversalItem retrieves the aggregate tracking item. The partial
// unique index guarantees at most one row matches.
func (r *PgxItemRepository) FindUniversalItem(ctx context.Context) (*domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE is_universal;`
	m, err := scanItem(r.Pool.QueryRow(ctx, query))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find universal item: %w", err)
	}
	d := toDomainItem(m)
	return &d, nil
}

// ListItems retrieves a paginated list of items.
func (r *PgxItemRepository) ListItems(ctx context.Context, search string, limit int, offset int) ([]domain.Item, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + itemColumns + `
		FROM items
		WHERE ($1 = '' OR product_name ILIKE '%' || $1 || '%' OR category ILIKE '%' || $1 || '%')
		ORDER BY product_name
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, search, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	defer rows.Close()

	items := []domain.Item{}
	for rows.Next() {
		m, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item row: %w", err)
		}
		items = append(items, toDomainItem(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating item rows: %w", rows.Err())
	}
	return items, nil
}

// ListLowStockItems retrieves items at or below their alert threshold.
// The universal item is excluded; it tracks aggregate movement, not a
// sellable product.
func (r *PgxItemRepository) ListLowStockItems(ctx context.Context) ([]domain.Item, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM items
		WHERE NOT is_universal AND opening_stock <= low_stock_alert
		ORDER BY product_name;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query low stock items: %w", err)
	}
	defer rows.Close()

	items := []domain.Item{}
	for rows.Next() {
		m, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan low stock item row: %w", err)
		}
		items = append(items, toDomainItem(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating low stock item rows: %w", rows.Err())
	}
	return items, nil
}

// UpdateItem updates an existing item's details. Stock is not written here.
func (r *PgxItemRepository) UpdateItem(ctx context.Context, item domain.Item) error {
	m := toModelItem(item)
	query := `
		UPDATE items
		SET product_name = $2, category = $3, purchase_price = $4, sale_price = $5,
		    low_stock_alert = $6, last_updated_at = $7, last_updated_by = $8
		WHERE item_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.ItemID, m.ProductName, m.Category, m.PurchasePrice, m.SalePrice,
		m.LowStockAlert, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update item %s: %w", m.ItemID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// AdjustStock converts the kilogram quantity to bags and applies it in the
// given direction. GREATEST clamps the result at zero in the same statement,
// so a reversal can silently understate but stock never goes negative.
func (r *PgxItemRepository) AdjustStock(ctx context.Context, itemID string, quantityKg decimal.Decimal, direction domain.StockDirection) error {
	bags := domain.BagsFromKg(quantityKg)
	if direction == domain.StockDecrease {
		bags = bags.Neg()
	} else if direction != domain.StockIncrease {
		return fmt.Errorf("%w: unknown stock direction %q", apperrors.ErrValidation, direction)
	}

	query := `
		UPDATE items
		SET opening_stock = GREATEST(COALESCE(opening_stock, 0) + $2, 0)
		WHERE item_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, itemID, bags)
	if err != nil {
		return fmt.Errorf("failed to adjust stock for item %s: %w", itemID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: item %s not found during stock adjustment", apperrors.ErrNotFound, itemID)
	}
	return nil
}

// EnsureUniversalItem inserts the aggregate tracking item if none exists.
// The partial unique index on is_universal makes concurrent boots safe.
func (r *PgxItemRepository) EnsureUniversalItem(ctx context.Context, item domain.Item) error {
	m := toModelItem(item)
	query := `
		INSERT INTO items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, TRUE, $8, $9, $10, $11)
		ON CONFLICT (is_universal) WHERE is_universal DO NOTHING;
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ItemID, m.ProductName, m.Category, m.PurchasePrice, m.SalePrice,
		m.OpeningStock, m.LowStockAlert,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to ensure universal item: %w", err)
	}
	return nil
}
