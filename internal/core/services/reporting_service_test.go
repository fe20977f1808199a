package services_test

import (
	"context"
	"testing"

	"github.com/quillbooks/bookkeeping_app/internal/core/domain"
	portssvc "github.com/quillbooks/bookkeeping_app/internal/core/ports/services"
	"github.com/quillbooks/bookkeeping_app/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type ReportingServiceTestSuite struct {
	suite.Suite
	mockLedgerRepo  *MockLedgerRepository
	mockAccountRepo *MockAccountRepository
	service         portssvc.ReportingSvcFacade
	ctx             context.Context
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewReportingService(suite.mockLedgerRepo, suite.mockAccountRepo)
	suite.ctx = context.Background()
}

// ledgerFixture is a small but complete book: assets 1000, liabilities 400,
// equity 600, revenue 300, expenses 100.
func (suite *ReportingServiceTestSuite) ledgerFixture() []domain.Ledger {
	return []domain.Ledger{
		{Identifier: "3500", Type: domain.Expense, Name: "Expenses", TotalValue: decimal.NewFromInt(100), ShowAccountsInChart: true},
		{Identifier: "1100", Type: domain.Revenue, Name: "Revenue", TotalValue: decimal.NewFromInt(300), ShowAccountsInChart: true},
		{Identifier: "7000", Type: domain.Asset, Name: "Assets", TotalValue: decimal.NewFromInt(1000), ShowAccountsInChart: true},
		{Identifier: "7100", Type: domain.Asset, Name: "Cash", ParentLedgerID: "7000", TotalValue: decimal.NewFromInt(1000), ShowAccountsInChart: true},
		{Identifier: "8100", Type: domain.Liability, Name: "Liabilities", TotalValue: decimal.NewFromInt(400), ShowAccountsInChart: false},
		{Identifier: "9000", Type: domain.Equity, Name: "Equity", TotalValue: decimal.NewFromInt(600), ShowAccountsInChart: true},
	}
}

func (suite *ReportingServiceTestSuite) TestChartOfAccounts_LevelsAndVisibility() {
	suite.mockLedgerRepo.On("ListLedgers", suite.ctx).Return(suite.ledgerFixture(), nil).Once()

	entries, err := suite.service.ChartOfAccounts(suite.ctx)

	assert.NoError(suite.T(), err)
	// 8100 opted out of the chart.
	assert.Len(suite.T(), entries, 5)

	byID := make(map[string]domain.ChartOfAccountsEntry)
	for _, e := range entries {
		byID[e.LedgerID] = e
	}
	assert.Equal(suite.T(), 0, byID["7000"].Level)
	assert.Equal(suite.T(), 1, byID["7100"].Level)
	assert.NotContains(suite.T(), byID, "8100")
}

func (suite *ReportingServiceTestSuite) TestChartOfAccounts_OrdersSiblingsByIdentifier() {
	// The store hands back ledgers in an arbitrary order; the rows must still
	// come out as an identifier-ordered depth-first walk.
	ledgers := []domain.Ledger{
		{Identifier: "7300", Type: domain.Asset, Name: "Receivables", ParentLedgerID: "7000", ShowAccountsInChart: true},
		{Identifier: "9000", Type: domain.Equity, Name: "Equity", ShowAccountsInChart: true},
		{Identifier: "7100", Type: domain.Asset, Name: "Cash", ParentLedgerID: "7000", ShowAccountsInChart: true},
		{Identifier: "7000", Type: domain.Asset, Name: "Assets", ShowAccountsInChart: true},
		{Identifier: "7200", Type: domain.Asset, Name: "Vault", ParentLedgerID: "7000", ShowAccountsInChart: true},
	}
	suite.mockLedgerRepo.On("ListLedgers", suite.ctx).Return(ledgers, nil).Once()

	entries, err := suite.service.ChartOfAccounts(suite.ctx)

	assert.NoError(suite.T(), err)
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.LedgerID
	}
	assert.Equal(suite.T(), []string{"7000", "7100", "7200", "7300", "9000"}, ids)
}

func (suite *ReportingServiceTestSuite) TestTrialBalance_Balances() {
	suite.mockLedgerRepo.On("ListLedgers", suite.ctx).Return(suite.ledgerFixture(), nil).Once()

	balance, err := suite.service.TrialBalance(suite.ctx, false)

	assert.NoError(suite.T(), err)
	// Leaves only: 7100 (debit 1000), 3500 (debit 100), 1100 (credit 300),
	// 8100 (credit 400), 9000 (credit 600). 7000 is not a leaf.
	assert.Len(suite.T(), balance.Entries, 5)
	assert.True(suite.T(), balance.DebitTotal.Equal(decimal.NewFromInt(1100)), "debit total %s", balance.DebitTotal)
	assert.True(suite.T(), balance.CreditTotal.Equal(decimal.NewFromInt(1300)), "credit total %s", balance.CreditTotal)

	for _, e := range balance.Entries {
		assert.NotEqual(suite.T(), "7000", e.LedgerID)
	}
}

func (suite *ReportingServiceTestSuite) TestTrialBalance_SkipsEmptyLeaves() {
	ledgers := append(suite.ledgerFixture(), domain.Ledger{
		Identifier: "7200", Type: domain.Asset, Name: "Vault", ParentLedgerID: "7000", TotalValue: decimal.Zero,
	})
	suite.mockLedgerRepo.On("ListLedgers", suite.ctx).Return(ledgers, nil).Twice()

	without, err := suite.service.TrialBalance(suite.ctx, false)
	assert.NoError(suite.T(), err)
	with, err := suite.service.TrialBalance(suite.ctx, true)
	assert.NoError(suite.T(), err)

	assert.Len(suite.T(), without.Entries, 5)
	assert.Len(suite.T(), with.Entries, 6)
}

func (suite *ReportingServiceTestSuite) TestIncomeStatement_Derivations() {
	suite.mockLedgerRepo.On("ListLedgers", suite.ctx).Return(suite.ledgerFixture(), nil).Once()
	suite.mockAccountRepo.On("ListAccountsByLedger", suite.ctx, "1100").Return([]domain.Account{
		{Identifier: "1100.10", Name: "Fees", Balance: decimal.NewFromInt(300)},
	}, nil).Once()
	suite.mockAccountRepo.On("ListAccountsByLedger", suite.ctx, "3500").Return([]domain.Account{
		{Identifier: "3500.10", Name: "Office", Balance: decimal.NewFromInt(100)},
	}, nil).Once()

	statement, err := suite.service.IncomeStatement(suite.ctx)

	assert.NoError(suite.T(), err)
	assert.True(suite.T(), statement.GrossProfit.Equal(decimal.NewFromInt(300)))
	assert.True(suite.T(), statement.TotalExpenses.Equal(decimal.NewFromInt(100)))
	assert.True(suite.T(), statement.NetIncome.Equal(decimal.NewFromInt(200)))
	assert.Len(suite.T(), statement.Revenue.Ledgers, 1)
	assert.Len(suite.T(), statement.Revenue.Ledgers[0].Accounts, 1)
}

func (suite *ReportingServiceTestSuite) TestFinancialCondition_Identity() {
	suite.mockLedgerRepo.On("ListLedgers", suite.ctx).Return(suite.ledgerFixture(), nil).Once()
	suite.mockAccountRepo.On("ListAccountsByLedger", suite.ctx, "7000").Return([]domain.Account{}, nil).Once()
	suite.mockAccountRepo.On("ListAccountsByLedger", suite.ctx, "7100").Return([]domain.Account{
		{Identifier: "7100.10", Name: "Teller one", Balance: decimal.NewFromInt(1000)},
	}, nil).Once()
	suite.mockAccountRepo.On("ListAccountsByLedger", suite.ctx, "8100").Return([]domain.Account{}, nil).Once()
	suite.mockAccountRepo.On("ListAccountsByLedger", suite.ctx, "9000").Return([]domain.Account{}, nil).Once()

	condition, err := suite.service.FinancialCondition(suite.ctx)

	assert.NoError(suite.T(), err)
	assert.True(suite.T(), condition.TotalAssets.Equal(decimal.NewFromInt(1000)))
	assert.True(suite.T(), condition.TotalEquitiesAndLiabilities.Equal(decimal.NewFromInt(1000)))
	assert.Len(suite.T(), condition.Assets, 1)
	assert.Len(suite.T(), condition.EquitiesAndLiabilities, 2)
	// The asset breakdown includes accounts from the whole subtree.
	assert.Len(suite.T(), condition.Assets[0].Accounts, 1)
}

func TestReportingService(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
