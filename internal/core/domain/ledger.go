package domain

import (
	"github.com/shopspring/decimal"
)

// LedgerType defines the fundamental accounting category of a ledger and of every
// account underneath it.
type LedgerType string

const (
	Asset     LedgerType = "ASSET"
	Liability LedgerType = "LIABILITY"
	Equity    LedgerType = "EQUITY"
	Revenue   LedgerType = "REVENUE"
	Expense   LedgerType = "EXPENSE"
)

// ValidLedgerType reports whether t is one of the five accounting categories.
func ValidLedgerType(t LedgerType) bool {
	switch t {
	case Asset, Liability, Equity, Revenue, Expense:
		return true
	}
	return false
}

// Ledger is a node in the hierarchical chart of accounts. The parent is stored as
// an identifier rather than a live pointer; the tree is resolved by lookup.
type Ledger struct {
	Identifier          string          `json:"identifier"` // human-chosen code, e.g. "7000"
	Type                LedgerType      `json:"type"`
	Name                string          `json:"name"`
	Description         string          `json:"description"`
	ParentLedgerID      string          `json:"parentLedgerIdentifier"` // empty for root ledgers
	TotalValue          decimal.Decimal `json:"totalValue"`             // sum of balances of all accounts under this subtree
	ShowAccountsInChart bool            `json:"showAccountsInChart"`
	AuditFields
}
