package domain

import (
	"github.com/shopspring/decimal"
)

// TransactionType identifies the kind of business document.
type TransactionType string

const (
	Purchase   TransactionType = "purchase"
	Sale       TransactionType = "sale"
	PaymentIn  TransactionType = "payment-in"
	PaymentOut TransactionType = "payment-out"
)

// NumberPrefix returns the fixed human-readable number prefix for the type.
// Numbers are scoped per type, e.g. PAY-IN-7.
func (t TransactionType) NumberPrefix() string {
	switch t {
	case Purchase:
		return "PUR-"
	case Sale:
		return "SALE-"
	case PaymentIn:
		return "PAY-IN-"
	case PaymentOut:
		return "PAY-OUT-"
	}
	return ""
}

// HasLineItems reports whether the type carries item lines that move stock.
func (t TransactionType) HasLineItems() bool {
	return t == Purchase || t == Sale
}

// IsPayment reports whether the type is a flat-amount payment.
func (t TransactionType) IsPayment() bool {
	return t == PaymentIn || t == PaymentOut
}

// IsValid reports whether t is one of the known transaction types.
func (t TransactionType) IsValid() bool {
	return t.HasLineItems() || t.IsPayment()
}

// StockDirection is the forward inventory direction for the type: purchases
// bring bags in, sales move bags out. Payments do not touch stock.
func (t TransactionType) StockDirection() StockDirection {
	if t == Sale {
		return StockDecrease
	}
	return StockIncrease
}

// TransactionStatus is the settlement state of a transaction.
type TransactionStatus string

const (
	StatusPending   TransactionStatus = "pending"
	StatusCompleted TransactionStatus = "completed"
	StatusCancelled TransactionStatus = "cancelled"
)

// IsValid reports whether s is one of the known statuses.
func (s TransactionStatus) IsValid() bool {
	return s == StatusPending || s == StatusCompleted || s == StatusCancelled
}

// CanTransition reports whether an explicit status update from one status to
// another is permitted. Only completed<->cancelled re-triggers a ledger
// reconciliation; pending transitions never touch the ledger.
func CanTransition(from, to TransactionStatus) bool {
	switch from {
	case StatusPending:
		return to == StatusCompleted || to == StatusCancelled
	case StatusCompleted:
		return to == StatusCancelled
	case StatusCancelled:
		return to == StatusCompleted
	}
	return false
}

// LineItem is one item line on a purchase or sale. Quantity is in kilograms.
type LineItem struct {
	ItemID   string          `json:"itemID"`
	Quantity decimal.Decimal `json:"quantity"` // kg
	Price    decimal.Decimal `json:"price"`    // per kg
}

// Total is the line value.
func (li LineItem) Total() decimal.Decimal {
	return li.Quantity.Mul(li.Price)
}

// Transaction is a purchase, sale or payment referencing a single party.
// TotalAmount is always recomputed from the current line items before
// persistence; for payments it equals Amount.
type Transaction struct {
	TransactionID string            `json:"transactionID"` // Primary Key (UUID)
	Number        string            `json:"number"`        // e.g. PUR-12
	Type          TransactionType   `json:"type"`
	PartyID       string            `json:"partyID"`
	PartyName     string            `json:"partyName"`  // denormalized
	PartyPhone    string            `json:"partyPhone"` // denormalized
	Items         []LineItem        `json:"items,omitempty"`
	Amount        decimal.Decimal   `json:"amount"` // payments only
	TotalAmount   decimal.Decimal   `json:"totalAmount"`
	TxnDate       string            `json:"txnDate"` // free-text, loosely validated
	Status        TransactionStatus `json:"status"`
	DocumentURL   string            `json:"documentURL,omitempty"`
	Notes         string            `json:"notes,omitempty"`
	AuditFields
}

// RecomputeTotal derives TotalAmount from the current line items, or from
// Amount when there are none.
func (t *Transaction) RecomputeTotal() {
	if len(t.Items) == 0 {
		t.TotalAmount = t.Amount
		return
	}
	total := decimal.Zero
	for _, li := range t.Items {
		total = total.Add(li.Total())
	}
	t.TotalAmount = total
}

// SumQuantities returns the total kilograms across the line items.
func SumQuantities(items []LineItem) decimal.Decimal {
	sum := decimal.Zero
	for _, li := range items {
		sum = sum.Add(li.Quantity)
	}
	return sum
}

// LineItemsEqual reports structural equality of two line-item lists. Order
// matters; this mirrors the update path's changed-items check.
func LineItemsEqual(a, b []LineItem) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ItemID != b[i].ItemID ||
			!a[i].Quantity.Equal(b[i].Quantity) ||
			!a[i].Price.Equal(b[i].Price) {
			return false
		}
	}
	return true
}
