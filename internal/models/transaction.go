package models

import (
	"github.com/shopspring/decimal"
)

// Transaction is the database representation of a purchase, sale or payment.
type Transaction struct {
	TransactionID string          `db:"transaction_id"`
	Number        string          `db:"number"`
	Type          string          `db:"type"`
	PartyID       string          `db:"party_id"`
	PartyName     string          `db:"party_name"`
	PartyPhone    string          `db:"party_phone"`
	Amount        decimal.Decimal `db:"amount"`
	TotalAmount   decimal.Decimal `db:"total_amount"`
	TxnDate       string          `db:"txn_date"`
	Status        string          `db:"status"`
	DocumentURL   string          `db:"document_url"`
	Notes         string          `db:"notes"`
	AuditFields
}

// TransactionItem is one line on a purchase or sale. QuantityKg keeps the
// raw kilogram figure; the bag conversion happens at adjustment time.
type TransactionItem struct {
	TransactionID string          `db:"transaction_id"`
	ItemID        string          `db:"item_id"`
	QuantityKg    decimal.Decimal `db:"quantity_kg"`
	Price         decimal.Decimal `db:"price"`
	Position      int             `db:"position"`
}
