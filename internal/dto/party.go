package dto

import (
	"time"

	"github.com/mandibooks/billing_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreatePartyRequest defines the data needed to create a new party.
type CreatePartyRequest struct {
	Name  string           `json:"name" binding:"required"`
	Phone string           `json:"phone" binding:"required"`
	Role  domain.PartyRole `json:"role" binding:"omitempty,oneof=customer supplier generic"`
}

// UpdatePartyRequest defines the data allowed for updating a party.
// Pointers distinguish zero-value updates from fields not provided.
type UpdatePartyRequest struct {
	Name  *string           `json:"name"`
	Phone *string           `json:"phone"`
	Role  *domain.PartyRole `json:"role" binding:"omitempty,oneof=customer supplier generic"`
}

// PartyResponse defines the data returned for a party.
type PartyResponse struct {
	PartyID       string           `json:"partyID"`
	Name          string           `json:"name"`
	Phone         string           `json:"phone"`
	Role          domain.PartyRole `json:"role"`
	Balance       decimal.Decimal  `json:"balance"`
	CreatedAt     time.Time        `json:"createdAt"`
	LastUpdatedAt time.Time        `json:"lastUpdatedAt"`
}

// ToPartyResponse converts a domain.Party to PartyResponse.
func ToPartyResponse(p *domain.Party) PartyResponse {
	return PartyResponse{
		PartyID:       p.PartyID,
		Name:          p.Name,
		Phone:         p.Phone,
		Role:          p.Role,
		Balance:       p.Balance,
		CreatedAt:     p.CreatedAt,
		LastUpdatedAt: p.LastUpdatedAt,
	}
}

// ListPartiesParams defines query parameters for listing parties.
type ListPartiesParams struct {
	Search string `form:"search"`
	Limit  int    `form:"limit,default=20"`
	Offset int    `form:"offset,default=0"`
}

// ListPartiesResponse wraps the list of parties.
type ListPartiesResponse struct {
	Parties []PartyResponse `json:"parties"`
}
