package models

import (
	"github.com/shopspring/decimal"
)

// Party is the database representation of a customer or supplier.
type Party struct {
	PartyID string          `db:"party_id"`
	Name    string          `db:"name"`
	Phone   string          `db:"phone"`
	Role    string          `db:"role"`
	Balance decimal.Decimal `db:"balance"`
	AuditFields
}
