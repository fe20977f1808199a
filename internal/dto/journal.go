package dto

import (
	"time"

	"github.com/quillbooks/bookkeeping_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PostingRequest is one debtor or creditor line of a journal entry.
type PostingRequest struct {
	AccountNumber string          `json:"accountNumber" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
}

// CreateJournalEntryRequest creates a balanced journal entry. The transaction
// identifier is caller-supplied and must be unique; debtor and creditor sums
// must be exactly equal.
type CreateJournalEntryRequest struct {
	TransactionIdentifier string           `json:"transactionIdentifier" binding:"required"`
	TransactionDate       time.Time        `json:"transactionDate" binding:"required"`
	TransactionType       string           `json:"transactionType"`
	Clerk                 string           `json:"clerk"`
	Note                  string           `json:"note"`
	Message               string           `json:"message"`
	Debtors               []PostingRequest `json:"debtors" binding:"required,min=1,dive"`
	Creditors             []PostingRequest `json:"creditors" binding:"required,min=1,dive"`
}

// JournalEntryResponse is the wire representation of a journal entry.
type JournalEntryResponse struct {
	TransactionIdentifier string                   `json:"transactionIdentifier"`
	TransactionDate       time.Time                `json:"transactionDate"`
	TransactionType       string                   `json:"transactionType,omitempty"`
	Clerk                 string                   `json:"clerk,omitempty"`
	Note                  string                   `json:"note,omitempty"`
	Message               string                   `json:"message,omitempty"`
	Debtors               []domain.Posting         `json:"debtors"`
	Creditors             []domain.Posting         `json:"creditors"`
	State                 domain.JournalEntryState `json:"state"`
	CreatedBy             string                   `json:"createdBy"`
	CreatedAt             time.Time                `json:"createdAt"`
}

// ToJournalEntryResponse maps a domain journal entry to its wire representation.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	return JournalEntryResponse{
		TransactionIdentifier: e.TransactionIdentifier,
		TransactionDate:       e.TransactionDate,
		TransactionType:       e.TransactionType,
		Clerk:                 e.Clerk,
		Note:                  e.Note,
		Message:               e.Message,
		Debtors:               e.Debtors,
		Creditors:             e.Creditors,
		State:                 e.State,
		CreatedBy:             e.CreatedBy,
		CreatedAt:             e.CreatedAt,
	}
}

// ToJournalEntryResponses maps a slice of domain journal entries.
func ToJournalEntryResponses(entries []domain.JournalEntry) []JournalEntryResponse {
	out := make([]JournalEntryResponse, len(entries))
	for i := range entries {
		out[i] = ToJournalEntryResponse(&entries[i])
	}
	return out
}
