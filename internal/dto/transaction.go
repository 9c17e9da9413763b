package dto

import (
	"time"

	"github.com/mandibooks/billing_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LineItemRequest is one item line on a purchase or sale request.
// Quantity is in kilograms.
type LineItemRequest struct {
	ItemID   string          `json:"itemID" binding:"required"`
	Quantity decimal.Decimal `json:"quantity" binding:"required"`
	Price    decimal.Decimal `json:"price"`
}

// CreateTransactionRequest defines the data needed to record a transaction.
// The party may be referenced by ID or by (name, phone); the latter resolves
// through find-or-create.
type CreateTransactionRequest struct {
	Type        domain.TransactionType   `json:"type" binding:"required,oneof=purchase sale payment-in payment-out"`
	PartyID     string                   `json:"partyID"`
	PartyName   string                   `json:"partyName"`
	PartyPhone  string                   `json:"partyPhone"`
	Items       []LineItemRequest        `json:"items"`
	Amount      decimal.Decimal          `json:"amount"`
	TxnDate     string                   `json:"txnDate"`
	Status      domain.TransactionStatus `json:"status" binding:"omitempty,oneof=pending completed cancelled"`
	DocumentURL string                   `json:"documentURL"`
	Notes       string                   `json:"notes"`
	SendMessage bool                     `json:"sendMessage"`
}

// UpdateTransactionRequest defines the data allowed for updating a
// transaction. Pointers distinguish "unchanged" from explicit values; a
// non-nil Items replaces the full line-item list.
type UpdateTransactionRequest struct {
	TxnDate     *string            `json:"txnDate"`
	Items       *[]LineItemRequest `json:"items"`
	Amount      *decimal.Decimal   `json:"amount"`
	DocumentURL *string            `json:"documentURL"`
	Notes       *string            `json:"notes"`
}

// UpdateTransactionStatusRequest carries an explicit status change.
type UpdateTransactionStatusRequest struct {
	Status domain.TransactionStatus `json:"status" binding:"required,oneof=pending completed cancelled"`
}

// LineItemResponse mirrors a persisted line item.
type LineItemResponse struct {
	ItemID   string          `json:"itemID"`
	Quantity decimal.Decimal `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Total    decimal.Decimal `json:"total"`
}

// TransactionResponse defines the formatted view of a transaction.
type TransactionResponse struct {
	TransactionID string                   `json:"transactionID"`
	Number        string                   `json:"number"`
	Type          domain.TransactionType   `json:"type"`
	PartyID       string                   `json:"partyID"`
	PartyName     string                   `json:"partyName"`
	PartyPhone    string                   `json:"partyPhone"`
	Items         []LineItemResponse       `json:"items,omitempty"`
	Amount        decimal.Decimal          `json:"amount"`
	TotalAmount   decimal.Decimal          `json:"totalAmount"`
	TxnDate       string                   `json:"txnDate"`
	Status        domain.TransactionStatus `json:"status"`
	DocumentURL   string                   `json:"documentURL,omitempty"`
	Notes         string                   `json:"notes,omitempty"`
	CreatedAt     time.Time                `json:"createdAt"`
	LastUpdatedAt time.Time                `json:"lastUpdatedAt"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	items := make([]LineItemResponse, len(t.Items))
	for i, li := range t.Items {
		items[i] = LineItemResponse{
			ItemID:   li.ItemID,
			Quantity: li.Quantity,
			Price:    li.Price,
			Total:    li.Total(),
		}
	}
	if len(items) == 0 {
		items = nil
	}
	return TransactionResponse{
		TransactionID: t.TransactionID,
		Number:        t.Number,
		Type:          t.Type,
		PartyID:       t.PartyID,
		PartyName:     t.PartyName,
		PartyPhone:    t.PartyPhone,
		Items:         items,
		Amount:        t.Amount,
		TotalAmount:   t.TotalAmount,
		TxnDate:       t.TxnDate,
		Status:        t.Status,
		DocumentURL:   t.DocumentURL,
		Notes:         t.Notes,
		CreatedAt:     t.CreatedAt,
		LastUpdatedAt: t.LastUpdatedAt,
	}
}

// TransactionResult is the outcome of a mutating transaction operation.
// InventoryWarnings lists per-line stock adjustments that failed; those are
// deliberately best-effort and never abort the operation. MessageSent is set
// only when an outbound message was requested.
type TransactionResult struct {
	Transaction       TransactionResponse `json:"transaction"`
	InventoryWarnings []string            `json:"inventoryWarnings,omitempty"`
	MessageSent       *bool               `json:"messageSent,omitempty"`
}

// ListTransactionsParams defines query parameters for listing transactions.
type ListTransactionsParams struct {
	Type    string `form:"type" binding:"omitempty,oneof=purchase sale payment-in payment-out"`
	PartyID string `form:"partyID"`
	Status  string `form:"status" binding:"omitempty,oneof=pending completed cancelled"`
	Search  string `form:"search"`
	Limit   int    `form:"limit,default=20"`
	Offset  int    `form:"offset,default=0"`
}

// ListTransactionsResponse wraps the list of transactions.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
}
