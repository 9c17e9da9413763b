package domain

import (
	"github.com/shopspring/decimal"
)

// PartyRole classifies the counterparty of a transaction.
type PartyRole string

const (
	RoleCustomer PartyRole = "customer"
	RoleSupplier PartyRole = "supplier"
	RoleGeneric  PartyRole = "generic"
)

// BalanceOperation is the mutation applied to a party's running balance.
type BalanceOperation string

const (
	BalanceAdd      BalanceOperation = "add"
	BalanceSubtract BalanceOperation = "subtract"
	BalanceSet      BalanceOperation = "set"
)

// Party represents a customer or supplier with a running balance.
// The balance is the algebraic sum of all active transactions referencing
// this party; it is only mutated through ledger operations.
type Party struct {
	PartyID string          `json:"partyID"` // Primary Key (UUID)
	Name    string          `json:"name"`
	Phone   string          `json:"phone"` // Normalized E.164 form
	Role    PartyRole       `json:"role"`
	Balance decimal.Decimal `json:"balance"`
	AuditFields
}
