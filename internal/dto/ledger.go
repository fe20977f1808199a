package dto

import (
	"github.com/quillbooks/bookkeeping_app/internal/core/domain"
)

// CreateLedgerRequest creates a ledger, optionally with a nested sub-ledger
// structure in one call. Every sub-ledger must carry its parent's type.
type CreateLedgerRequest struct {
	Identifier          string                `json:"identifier" binding:"required"`
	Type                domain.LedgerType     `json:"type" binding:"required,ledgertype"`
	Name                string                `json:"name" binding:"required"`
	Description         string                `json:"description"`
	ShowAccountsInChart bool                  `json:"showAccountsInChart"`
	SubLedgers          []CreateLedgerRequest `json:"subLedgers" binding:"omitempty,dive"`
}

// ModifyLedgerRequest updates display fields only; type and parent are immutable
// after creation.
type ModifyLedgerRequest struct {
	Name                *string `json:"name"`
	Description         *string `json:"description"`
	ShowAccountsInChart *bool   `json:"showAccountsInChart"`
}

// LedgerResponse is the wire representation of a ledger.
type LedgerResponse struct {
	Identifier          string            `json:"identifier"`
	Type                domain.LedgerType `json:"type"`
	Name                string            `json:"name"`
	Description         string            `json:"description,omitempty"`
	ParentLedgerID      string            `json:"parentLedgerIdentifier,omitempty"`
	TotalValue          string            `json:"totalValue"`
	ShowAccountsInChart bool              `json:"showAccountsInChart"`
	CreatedBy           string            `json:"createdBy"`
	LastModifiedBy      string            `json:"lastModifiedBy"`
}

// ToLedgerResponse maps a domain ledger to its wire representation.
func ToLedgerResponse(l *domain.Ledger) LedgerResponse {
	return LedgerResponse{
		Identifier:          l.Identifier,
		Type:                l.Type,
		Name:                l.Name,
		Description:         l.Description,
		ParentLedgerID:      l.ParentLedgerID,
		TotalValue:          l.TotalValue.String(),
		ShowAccountsInChart: l.ShowAccountsInChart,
		CreatedBy:           l.CreatedBy,
		LastModifiedBy:      l.LastModifiedBy,
	}
}

// ToLedgerResponses maps a slice of domain ledgers.
func ToLedgerResponses(ledgers []domain.Ledger) []LedgerResponse {
	out := make([]LedgerResponse, len(ledgers))
	for i := range ledgers {
		out[i] = ToLedgerResponse(&ledgers[i])
	}
	return out
}
