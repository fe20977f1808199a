package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntryState indicates whether an entry is still waiting to be applied to
// account balances.
type JournalEntryState string

const (
	Pending   JournalEntryState = "PENDING"
	Processed JournalEntryState = "PROCESSED"
)

// Posting is one (account, amount) pair within a journal entry. Amounts are
// always positive; the side (debtor or creditor) is determined by which set the
// posting belongs to.
type Posting struct {
	AccountNumber string          `json:"accountNumber"`
	Amount        decimal.Decimal `json:"amount"`
}

// JournalEntry is a balanced set of debtor and creditor postings representing one
// business transaction. Entries are immutable once accepted; only the state flag
// moves, and only from PENDING to PROCESSED.
type JournalEntry struct {
	TransactionIdentifier string            `json:"transactionIdentifier"` // caller-supplied, unique
	TransactionDate       time.Time         `json:"transactionDate"`
	TransactionType       string            `json:"transactionType"`
	Clerk                 string            `json:"clerk"`
	Note                  string            `json:"note"`
	Message               string            `json:"message"` // free-text correlation key used by report queries
	Debtors               []Posting         `json:"debtors"`
	Creditors             []Posting         `json:"creditors"`
	State                 JournalEntryState `json:"state"`
	AuditFields
}

// AmountRange is an optional inclusive filter on journal entry amounts.
type AmountRange struct {
	From decimal.Decimal
	To   decimal.Decimal
}

// DebtorTotal returns the sum of all debtor posting amounts.
func (e JournalEntry) DebtorTotal() decimal.Decimal {
	total := decimal.Zero
	for _, p := range e.Debtors {
		total = total.Add(p.Amount)
	}
	return total
}

// CreditorTotal returns the sum of all creditor posting amounts.
func (e JournalEntry) CreditorTotal() decimal.Decimal {
	total := decimal.Zero
	for _, p := range e.Creditors {
		total = total.Add(p.Amount)
	}
	return total
}
