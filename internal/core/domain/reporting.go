package domain

import (
	"github.com/shopspring/decimal"
)

// ChartOfAccountsEntry is one row of the chart-of-accounts report: a ledger that
// opted into the chart, annotated with its nesting depth (root = 0).
type ChartOfAccountsEntry struct {
	LedgerID    string     `json:"ledgerIdentifier"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Type        LedgerType `json:"type"`
	Level       int        `json:"level"`
}

// TrialBalanceEntry is one leaf ledger's net position, classified by the ledger's
// normal-balance side.
type TrialBalanceEntry struct {
	LedgerID string          `json:"ledgerIdentifier"`
	Name     string          `json:"name"`
	Type     EntrySide       `json:"type"`
	Amount   decimal.Decimal `json:"amount"`
}

// TrialBalance lists every leaf ledger's position. DebitTotal and CreditTotal
// must be equal; this is the primary system-wide correctness check.
type TrialBalance struct {
	Entries     []TrialBalanceEntry `json:"entries"`
	DebitTotal  decimal.Decimal     `json:"debitTotal"`
	CreditTotal decimal.Decimal     `json:"creditTotal"`
}

// AccountAmount is an account with its current balance, used in report sections.
type AccountAmount struct {
	AccountID string          `json:"accountIdentifier"`
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
}

// LedgerAmount is a ledger subtree's subtotal with a per-account breakdown.
type LedgerAmount struct {
	LedgerID string          `json:"ledgerIdentifier"`
	Name     string          `json:"name"`
	Total    decimal.Decimal `json:"total"`
	Accounts []AccountAmount `json:"accounts"`
}

// IncomeStatementSection groups the ledgers of one accounting category.
type IncomeStatementSection struct {
	Type     LedgerType      `json:"type"`
	Ledgers  []LedgerAmount  `json:"ledgers"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// IncomeStatement derives gross profit, total expenses and net income from the
// REVENUE and EXPENSE ledger subtrees.
type IncomeStatement struct {
	Revenue       IncomeStatementSection `json:"revenue"`
	Expenses      IncomeStatementSection `json:"expenses"`
	GrossProfit   decimal.Decimal        `json:"grossProfit"`
	TotalExpenses decimal.Decimal        `json:"totalExpenses"`
	NetIncome     decimal.Decimal        `json:"netIncome"`
}

// FinancialCondition contrasts total assets against total equities and
// liabilities. The two totals must be numerically equal whenever postings have
// been applied correctly (the fundamental accounting identity).
type FinancialCondition struct {
	Assets                      []LedgerAmount  `json:"assets"`
	EquitiesAndLiabilities      []LedgerAmount  `json:"equitiesAndLiabilities"`
	TotalAssets                 decimal.Decimal `json:"totalAssets"`
	TotalEquitiesAndLiabilities decimal.Decimal `json:"totalEquitiesAndLiabilities"`
}
