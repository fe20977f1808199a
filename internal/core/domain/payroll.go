package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayrollAllocation routes a share of a salary payment to an account. When
// Proportional is true Amount is a percentage of the salary, otherwise an
// absolute amount.
type PayrollAllocation struct {
	AccountNumber string          `json:"accountNumber"`
	Amount        decimal.Decimal `json:"amount"`
	Proportional  bool            `json:"proportional"`
}

// PayrollConfiguration holds the distribution rules for one customer: a main
// account that receives whatever the allocations leave over, and the allocations
// themselves.
type PayrollConfiguration struct {
	CustomerIdentifier string              `json:"customerIdentifier"`
	MainAccountNumber  string              `json:"mainAccountNumber"`
	Allocations        []PayrollAllocation `json:"allocations"`
	AuditFields
}

// PayrollPayment is one salary payment to be distributed according to the
// customer's payroll configuration.
type PayrollPayment struct {
	CustomerIdentifier    string          `json:"customerIdentifier"`
	EmployerAccountNumber string          `json:"employerAccountNumber"`
	Salary                decimal.Decimal `json:"salary"`
	PaymentDate           time.Time       `json:"paymentDate"`
}
