package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayrollAllocationRequest routes a share of a salary to an account, either as
// an absolute amount or a percentage of the salary.
type PayrollAllocationRequest struct {
	AccountNumber string          `json:"accountNumber" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	Proportional  bool            `json:"proportional"`
}

// PayrollConfigurationRequest sets the distribution rules for one customer.
type PayrollConfigurationRequest struct {
	MainAccountNumber string                     `json:"mainAccountNumber" binding:"required"`
	Allocations       []PayrollAllocationRequest `json:"allocations" binding:"omitempty,dive"`
}

// PayrollPaymentRequest distributes one salary payment according to the
// customer's payroll configuration, producing a balanced journal entry.
type PayrollPaymentRequest struct {
	CustomerIdentifier    string          `json:"customerIdentifier" binding:"required"`
	EmployerAccountNumber string          `json:"employerAccountNumber" binding:"required"`
	Salary                decimal.Decimal `json:"salary" binding:"required"`
	PaymentDate           time.Time       `json:"paymentDate" binding:"required"`
}
