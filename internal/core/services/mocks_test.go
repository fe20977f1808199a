package services_test

import (
	"context"

	"github.com/quillbooks/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/quillbooks/bookkeeping_app/internal/core/ports/repositories"
	portssvc "github.com/quillbooks/bookkeeping_app/internal/core/ports/services"
	"github.com/quillbooks/bookkeeping_app/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock LedgerRepository ---

type MockLedgerRepository struct {
	mock.Mock
}

var _ portsrepo.LedgerRepository = (*MockLedgerRepository)(nil)

func (m *MockLedgerRepository) SaveLedger(ctx context.Context, ledger domain.Ledger) error {
	args := m.Called(ctx, ledger)
	return args.Error(0)
}

func (m *MockLedgerRepository) UpdateLedger(ctx context.Context, ledger domain.Ledger) error {
	args := m.Called(ctx, ledger)
	return args.Error(0)
}

func (m *MockLedgerRepository) FindLedgerByID(ctx context.Context, ledgerID string) (*domain.Ledger, error) {
	args := m.Called(ctx, ledgerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ledger), args.Error(1)
}

func (m *MockLedgerRepository) ListLedgers(ctx context.Context) ([]domain.Ledger, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Ledger), args.Error(1)
}

func (m *MockLedgerRepository) ListSubLedgers(ctx context.Context, parentLedgerID string) ([]domain.Ledger, error) {
	args := m.Called(ctx, parentLedgerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Ledger), args.Error(1)
}

func (m *MockLedgerRepository) HasSubLedgers(ctx context.Context, ledgerID string) (bool, error) {
	args := m.Called(ctx, ledgerID)
	return args.Bool(0), args.Error(1)
}

func (m *MockLedgerRepository) DeleteLedger(ctx context.Context, ledgerID string) error {
	args := m.Called(ctx, ledgerID)
	return args.Error(0)
}

func (m *MockLedgerRepository) ReparentLedger(ctx context.Context, ledger domain.Ledger, previousParentID string) error {
	args := m.Called(ctx, ledger, previousParentID)
	return args.Error(0)
}

func (m *MockLedgerRepository) BackfillLedgerTotals(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// --- Mock AccountRepository ---

type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepository = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) MoveAccount(ctx context.Context, account domain.Account, previousLedgerID string) error {
	args := m.Called(ctx, account, previousLedgerID)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccountState(ctx context.Context, accountID string, state domain.AccountState, command domain.AccountCommand) error {
	args := m.Called(ctx, accountID, state, command)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByAlternativeNumber(ctx context.Context, alternativeAccountNumber string) (*domain.Account, error) {
	args := m.Called(ctx, alternativeAccountNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccountsByLedger(ctx context.Context, ledgerID string) ([]domain.Account, error) {
	args := m.Called(ctx, ledgerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) IsReferenceAccount(ctx context.Context, accountID string) (bool, error) {
	args := m.Called(ctx, accountID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountRepository) HasAccountEntries(ctx context.Context, accountID string) (bool, error) {
	args := m.Called(ctx, accountID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountRepository) DeleteAccount(ctx context.Context, accountID string) error {
	args := m.Called(ctx, accountID)
	return args.Error(0)
}

func (m *MockAccountRepository) ListAccountEntries(ctx context.Context, accountID string, dateRange domain.DateRange, limit int, nextToken *string) ([]domain.AccountEntry, *string, error) {
	args := m.Called(ctx, accountID, dateRange, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.AccountEntry), returnedNextToken, args.Error(2)
}

func (m *MockAccountRepository) ListCommands(ctx context.Context, accountID string) ([]domain.AccountCommand, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountCommand), args.Error(1)
}

// --- Mock JournalRepository ---

type MockJournalRepository struct {
	mock.Mock
}

var _ portsrepo.JournalRepository = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) SaveJournalEntry(ctx context.Context, entry domain.JournalEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockJournalRepository) FindJournalEntry(ctx context.Context, transactionIdentifier string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, transactionIdentifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) FetchJournalEntries(ctx context.Context, dateRange domain.DateRange, accountFilter string, amountFilter *domain.AmountRange) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, dateRange, accountFilter, amountFilter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) ApplyPosting(ctx context.Context, entry domain.JournalEntry, movements []domain.Movement) (bool, error) {
	args := m.Called(ctx, entry, movements)
	return args.Bool(0), args.Error(1)
}

// --- Mock PayrollRepository ---

type MockPayrollRepository struct {
	mock.Mock
}

var _ portsrepo.PayrollRepository = (*MockPayrollRepository)(nil)

func (m *MockPayrollRepository) SaveConfiguration(ctx context.Context, configuration domain.PayrollConfiguration) error {
	args := m.Called(ctx, configuration)
	return args.Error(0)
}

func (m *MockPayrollRepository) FindConfigurationByCustomer(ctx context.Context, customerIdentifier string) (*domain.PayrollConfiguration, error) {
	args := m.Called(ctx, customerIdentifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PayrollConfiguration), args.Error(1)
}

// --- Mock EventPublisher ---

type MockEventPublisher struct {
	mock.Mock
}

var _ portssvc.EventPublisher = (*MockEventPublisher)(nil)

func (m *MockEventPublisher) Publish(ctx context.Context, event string, identifier string) {
	m.Called(ctx, event, identifier)
}

// --- Mock PostingService (as used by JournalService) ---

type MockPostingService struct {
	mock.Mock
}

var _ portssvc.PostingSvcFacade = (*MockPostingService)(nil)

func (m *MockPostingService) PostPendingEntry(ctx context.Context, transactionIdentifier string) error {
	args := m.Called(ctx, transactionIdentifier)
	return args.Error(0)
}

// --- Mock JournalService (as used by PayrollService) ---

type MockJournalService struct {
	mock.Mock
}

var _ portssvc.JournalSvcFacade = (*MockJournalService)(nil)

func (m *MockJournalService) CreateJournalEntry(ctx context.Context, req dto.CreateJournalEntryRequest, actor string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalService) GetJournalEntry(ctx context.Context, transactionIdentifier string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, transactionIdentifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalService) FetchJournalEntries(ctx context.Context, dateRange domain.DateRange, accountFilter string, amountFilter *domain.AmountRange) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, dateRange, accountFilter, amountFilter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}
