package dto

import (
	"github.com/quillbooks/bookkeeping_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest creates an account under an existing ledger. The account
// type must match the ledger type; a reference account, when given, must exist
// and be OPEN.
type CreateAccountRequest struct {
	Identifier                 string            `json:"identifier" binding:"required"`
	Name                       string            `json:"name" binding:"required"`
	Type                       domain.LedgerType `json:"type" binding:"required,ledgertype"`
	LedgerIdentifier           string            `json:"ledgerIdentifier" binding:"required"`
	ReferenceAccountIdentifier string            `json:"referenceAccountIdentifier"`
	AlternativeAccountNumber   string            `json:"alternativeAccountNumber"`
	Balance                    decimal.Decimal   `json:"balance"`
	Holders                    []string          `json:"holders"`
	SignatureAuthorities       []string          `json:"signatureAuthorities"`
}

// ModifyAccountRequest updates mutable account fields; type and identifier are
// immutable after creation.
type ModifyAccountRequest struct {
	Name                       *string   `json:"name"`
	LedgerIdentifier           *string   `json:"ledgerIdentifier"`
	ReferenceAccountIdentifier *string   `json:"referenceAccountIdentifier"`
	AlternativeAccountNumber   *string   `json:"alternativeAccountNumber"`
	Holders                    *[]string `json:"holders"`
	SignatureAuthorities       *[]string `json:"signatureAuthorities"`
}

// AccountCommandRequest applies a lifecycle action to an account.
type AccountCommandRequest struct {
	Action  domain.CommandAction `json:"action" binding:"required"`
	Comment string               `json:"comment"`
}

// AccountResponse is the wire representation of an account.
type AccountResponse struct {
	Identifier                 string              `json:"identifier"`
	Name                       string              `json:"name"`
	Type                       domain.LedgerType   `json:"type"`
	LedgerIdentifier           string              `json:"ledgerIdentifier"`
	ReferenceAccountIdentifier string              `json:"referenceAccountIdentifier,omitempty"`
	AlternativeAccountNumber   string              `json:"alternativeAccountNumber,omitempty"`
	Balance                    string              `json:"balance"`
	State                      domain.AccountState `json:"state"`
	Holders                    []string            `json:"holders,omitempty"`
	SignatureAuthorities       []string            `json:"signatureAuthorities,omitempty"`
	CreatedBy                  string              `json:"createdBy"`
	LastModifiedBy             string              `json:"lastModifiedBy"`
}

// ToAccountResponse maps a domain account to its wire representation.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		Identifier:                 a.Identifier,
		Name:                       a.Name,
		Type:                       a.Type,
		LedgerIdentifier:           a.LedgerID,
		ReferenceAccountIdentifier: a.ReferenceAccountID,
		AlternativeAccountNumber:   a.AlternativeAccountNumber,
		Balance:                    a.Balance.String(),
		State:                      a.State,
		Holders:                    a.Holders,
		SignatureAuthorities:       a.SignatureAuthorities,
		CreatedBy:                  a.CreatedBy,
		LastModifiedBy:             a.LastModifiedBy,
	}
}

// ToAccountResponses maps a slice of domain accounts.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	out := make([]AccountResponse, len(accounts))
	for i := range accounts {
		out[i] = ToAccountResponse(&accounts[i])
	}
	return out
}

// ListAccountEntriesResponse pages through an account's movement records.
type ListAccountEntriesResponse struct {
	Entries   []domain.AccountEntry `json:"entries"`
	NextToken *string               `json:"nextToken,omitempty"`
}
