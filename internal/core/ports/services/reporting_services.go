package services

import (
	"context"

	"github.com/quillbooks/bookkeeping_app/internal/core/domain"
)

// ReportingSvcFacade exposes the read-side report builders. All operations are
// pure reads over current ledger/account state.
type ReportingSvcFacade interface {
	ChartOfAccounts(ctx context.Context) ([]domain.ChartOfAccountsEntry, error)
	TrialBalance(ctx context.Context, includeEmptyEntries bool) (*domain.TrialBalance, error)
	IncomeStatement(ctx context.Context) (*domain.IncomeStatement, error)
	FinancialCondition(ctx context.Context) (*domain.FinancialCondition, error)
}
