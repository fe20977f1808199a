package domain

import (
	"github.com/shopspring/decimal"
)

// AccountState is the lifecycle state of an account.
type AccountState string

const (
	Open   AccountState = "OPEN"
	Locked AccountState = "LOCKED"
	Closed AccountState = "CLOSED"
)

// Account is a leaf-level balance holder under exactly one ledger.
type Account struct {
	Identifier               string          `json:"identifier"`
	Name                     string          `json:"name"`
	Type                     LedgerType      `json:"type"` // must equal the owning ledger's type
	LedgerID                 string          `json:"ledgerIdentifier"`
	ReferenceAccountID       string          `json:"referenceAccountIdentifier"` // optional, must be OPEN at creation time
	AlternativeAccountNumber string          `json:"alternativeAccountNumber"`   // optional secondary lookup key
	Balance                  decimal.Decimal `json:"balance"`
	State                    AccountState    `json:"state"`
	Holders                  []string        `json:"holders"`
	SignatureAuthorities     []string        `json:"signatureAuthorities"`
	AuditFields
}
