package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntrySide indicates whether a movement debited or credited its account.
type EntrySide string

const (
	Debit  EntrySide = "DEBIT"
	Credit EntrySide = "CREDIT"
)

// AccountEntry is an immutable movement record, appended once per posting applied
// to an account. It carries the balance the account held after the movement and
// forms the audit trail for account-entry queries and report builders.
type AccountEntry struct {
	EntryID         string          `json:"entryID"`
	Type            EntrySide       `json:"type"`
	AccountID       string          `json:"accountIdentifier"`
	Amount          decimal.Decimal `json:"amount"`
	Balance         decimal.Decimal `json:"balance"` // balance after this movement
	Message         string          `json:"message"`
	TransactionDate time.Time       `json:"transactionDate"`
	CreatedAt       time.Time       `json:"createdAt"`
	CreatedBy       string          `json:"createdBy"`
}

// Movement is one posting of a journal entry resolved against its account: the
// side, the raw amount, the signed balance delta under the debit/credit rules and
// the ledger whose total chain the delta propagates through.
type Movement struct {
	AccountID string
	LedgerID  string
	Side      EntrySide
	Amount    decimal.Decimal
	Delta     decimal.Decimal
}
