package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/quillbooks/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/quillbooks/bookkeeping_app/internal/core/ports/repositories"
	portssvc "github.com/quillbooks/bookkeeping_app/internal/core/ports/services"
	"github.com/quillbooks/bookkeeping_app/internal/middleware"
	"github.com/quillbooks/bookkeeping_app/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// reportingService builds the read-side reports from current ledger and account
// state. Totals are read from the ledger tree; only the per-account breakdowns
// touch accounts.
type reportingService struct {
	ledgerRepo  portsrepo.LedgerRepository
	accountRepo portsrepo.AccountRepository
}

// NewReportingService creates a new ReportingService.
func NewReportingService(ledgerRepo portsrepo.LedgerRepository, accountRepo portsrepo.AccountRepository) portssvc.ReportingSvcFacade {
	return &reportingService{
		ledgerRepo:  ledgerRepo,
		accountRepo: accountRepo,
	}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// ledgerTree is an in-memory snapshot of the ledger hierarchy, resolved once
// per report.
type ledgerTree struct {
	byID     map[string]domain.Ledger
	children map[string][]domain.Ledger
	roots    []domain.Ledger
}

func (s *reportingService) loadLedgerTree(ctx context.Context) (*ledgerTree, error) {
	ledgers, err := s.ledgerRepo.ListLedgers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledgers: %w", err)
	}

	tree := &ledgerTree{
		byID:     make(map[string]domain.Ledger, len(ledgers)),
		children: make(map[string][]domain.Ledger),
	}
	for _, l := range ledgers {
		tree.byID[l.Identifier] = l
		if l.ParentLedgerID == "" {
			tree.roots = append(tree.roots, l)
		} else {
			tree.children[l.ParentLedgerID] = append(tree.children[l.ParentLedgerID], l)
		}
	}
	// Roots and child slices are sorted here rather than relying on ListLedgers
	// ordering, so report rows come out deterministic for any store.
	sort.Slice(tree.roots, func(i, j int) bool { return tree.roots[i].Identifier < tree.roots[j].Identifier })
	for _, siblings := range tree.children {
		sort.Slice(siblings, func(i, j int) bool { return siblings[i].Identifier < siblings[j].Identifier })
	}
	return tree, nil
}

// rootsOfTypes returns the root ledgers of the given categories, in identifier
// order across all of them.
func (t *ledgerTree) rootsOfTypes(types ...domain.LedgerType) []domain.Ledger {
	var out []domain.Ledger
	for _, root := range t.roots {
		for _, typ := range types {
			if root.Type == typ {
				out = append(out, root)
				break
			}
		}
	}
	return out
}

// walk visits a subtree depth-first in identifier order.
func (t *ledgerTree) walk(ledger domain.Ledger, level int, visit func(l domain.Ledger, level int)) {
	visit(ledger, level)
	for _, child := range t.children[ledger.Identifier] {
		t.walk(child, level+1, visit)
	}
}

// ChartOfAccounts lists every ledger that opted into the chart, depth-first,
// annotated with its nesting level. Hidden ledgers still count toward the
// levels of their descendants.
func (s *reportingService) ChartOfAccounts(ctx context.Context) ([]domain.ChartOfAccountsEntry, error) {
	tree, err := s.loadLedgerTree(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]domain.ChartOfAccountsEntry, 0, len(tree.byID))
	for _, root := range tree.roots {
		tree.walk(root, 0, func(l domain.Ledger, level int) {
			if !l.ShowAccountsInChart {
				return
			}
			entries = append(entries, domain.ChartOfAccountsEntry{
				LedgerID:    l.Identifier,
				Name:        l.Name,
				Description: l.Description,
				Type:        l.Type,
				Level:       level,
			})
		})
	}
	return entries, nil
}

// TrialBalance lists every leaf ledger's position, classified by normal-balance
// side. Debit and credit totals must come out equal; a mismatch means a posting
// invariant was violated.
func (s *reportingService) TrialBalance(ctx context.Context, includeEmptyEntries bool) (*domain.TrialBalance, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	tree, err := s.loadLedgerTree(ctx)
	if err != nil {
		return nil, err
	}

	balance := &domain.TrialBalance{
		Entries:     []domain.TrialBalanceEntry{},
		DebitTotal:  decimal.Zero,
		CreditTotal: decimal.Zero,
	}
	for _, root := range tree.roots {
		tree.walk(root, 0, func(l domain.Ledger, _ int) {
			if len(tree.children[l.Identifier]) > 0 {
				return // only leaves carry positions of their own
			}
			if l.TotalValue.IsZero() && !includeEmptyEntries {
				return
			}
			side := accounting.NormalBalanceSide(l.Type)
			amount := l.TotalValue.Abs()
			balance.Entries = append(balance.Entries, domain.TrialBalanceEntry{
				LedgerID: l.Identifier,
				Name:     l.Name,
				Type:     side,
				Amount:   amount,
			})
			if side == domain.Debit {
				balance.DebitTotal = balance.DebitTotal.Add(amount)
			} else {
				balance.CreditTotal = balance.CreditTotal.Add(amount)
			}
		})
	}

	if !balance.DebitTotal.Equal(balance.CreditTotal) {
		logger.Error("Trial balance out of balance",
			slog.String("debit_total", balance.DebitTotal.String()),
			slog.String("credit_total", balance.CreditTotal.String()),
		)
	}
	return balance, nil
}

// ledgerAmounts builds the per-root breakdown for a set of subtree roots:
// each root's running total plus the balances of every account in its subtree.
func (s *reportingService) ledgerAmounts(ctx context.Context, tree *ledgerTree, roots []domain.Ledger) ([]domain.LedgerAmount, decimal.Decimal, error) {
	amounts := make([]domain.LedgerAmount, 0, len(roots))
	total := decimal.Zero

	for _, root := range roots {
		amount := domain.LedgerAmount{
			LedgerID: root.Identifier,
			Name:     root.Name,
			Total:    root.TotalValue,
			Accounts: []domain.AccountAmount{},
		}

		var walkErr error
		tree.walk(root, 0, func(l domain.Ledger, _ int) {
			if walkErr != nil {
				return
			}
			accounts, err := s.accountRepo.ListAccountsByLedger(ctx, l.Identifier)
			if err != nil {
				walkErr = fmt.Errorf("failed to list accounts of ledger %s: %w", l.Identifier, err)
				return
			}
			for _, a := range accounts {
				amount.Accounts = append(amount.Accounts, domain.AccountAmount{
					AccountID: a.Identifier,
					Name:      a.Name,
					Amount:    a.Balance,
				})
			}
		})
		if walkErr != nil {
			return nil, decimal.Zero, walkErr
		}

		amounts = append(amounts, amount)
		total = total.Add(root.TotalValue)
	}
	return amounts, total, nil
}

// IncomeStatement derives gross profit, total expenses and net income from the
// REVENUE and EXPENSE subtrees.
func (s *reportingService) IncomeStatement(ctx context.Context) (*domain.IncomeStatement, error) {
	tree, err := s.loadLedgerTree(ctx)
	if err != nil {
		return nil, err
	}

	revenueLedgers, revenueTotal, err := s.ledgerAmounts(ctx, tree, tree.rootsOfTypes(domain.Revenue))
	if err != nil {
		return nil, err
	}
	expenseLedgers, expenseTotal, err := s.ledgerAmounts(ctx, tree, tree.rootsOfTypes(domain.Expense))
	if err != nil {
		return nil, err
	}

	return &domain.IncomeStatement{
		Revenue: domain.IncomeStatementSection{
			Type:     domain.Revenue,
			Ledgers:  revenueLedgers,
			Subtotal: revenueTotal,
		},
		Expenses: domain.IncomeStatementSection{
			Type:     domain.Expense,
			Ledgers:  expenseLedgers,
			Subtotal: expenseTotal,
		},
		GrossProfit:   revenueTotal,
		TotalExpenses: expenseTotal,
		NetIncome:     revenueTotal.Sub(expenseTotal),
	}, nil
}

// FinancialCondition contrasts total assets against total equities and
// liabilities; the two sides must be numerically equal.
func (s *reportingService) FinancialCondition(ctx context.Context) (*domain.FinancialCondition, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	tree, err := s.loadLedgerTree(ctx)
	if err != nil {
		return nil, err
	}

	assets, assetTotal, err := s.ledgerAmounts(ctx, tree, tree.rootsOfTypes(domain.Asset))
	if err != nil {
		return nil, err
	}
	equitiesAndLiabilities, equityTotal, err := s.ledgerAmounts(ctx, tree, tree.rootsOfTypes(domain.Equity, domain.Liability))
	if err != nil {
		return nil, err
	}

	if !assetTotal.Equal(equityTotal) {
		logger.Error("Accounting identity violated",
			slog.String("total_assets", assetTotal.String()),
			slog.String("total_equities_and_liabilities", equityTotal.String()),
		)
	}

	return &domain.FinancialCondition{
		Assets:                      assets,
		EquitiesAndLiabilities:      equitiesAndLiabilities,
		TotalAssets:                 assetTotal,
		TotalEquitiesAndLiabilities: equityTotal,
	}, nil
}
