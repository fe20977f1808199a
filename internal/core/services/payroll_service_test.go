package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/quillbooks/bookkeeping_app/internal/apperrors"
	"github.com/quillbooks/bookkeeping_app/internal/core/domain"
	portssvc "github.com/quillbooks/bookkeeping_app/internal/core/ports/services"
	"github.com/quillbooks/bookkeeping_app/internal/core/services"
	"github.com/quillbooks/bookkeeping_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type PayrollServiceTestSuite struct {
	suite.Suite
	mockPayrollRepo *MockPayrollRepository
	mockAccountRepo *MockAccountRepository
	mockJournalSvc  *MockJournalService
	service         portssvc.PayrollSvcFacade
	ctx             context.Context
	actor           string
}

func (suite *PayrollServiceTestSuite) SetupTest() {
	suite.mockPayrollRepo = new(MockPayrollRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockJournalSvc = new(MockJournalService)
	suite.service = services.NewPayrollService(suite.mockPayrollRepo, suite.mockAccountRepo, suite.mockJournalSvc)
	suite.ctx = context.Background()
	suite.actor = "clerk-1"
}

func openAccount(id string) *domain.Account {
	return &domain.Account{Identifier: id, Type: domain.Liability, State: domain.Open}
}

func (suite *PayrollServiceTestSuite) TestSetConfiguration_Success() {
	req := dto.PayrollConfigurationRequest{
		MainAccountNumber: "9100.10",
		Allocations: []dto.PayrollAllocationRequest{
			{AccountNumber: "9200.10", Amount: decimal.NewFromInt(25), Proportional: true},
			{AccountNumber: "9300.10", Amount: decimal.NewFromInt(150)},
		},
	}

	suite.mockAccountRepo.On("FindAccountByID", suite.ctx, "9100.10").Return(openAccount("9100.10"), nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", suite.ctx, "9200.10").Return(openAccount("9200.10"), nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", suite.ctx, "9300.10").Return(openAccount("9300.10"), nil).Once()
	suite.mockPayrollRepo.On("SaveConfiguration", suite.ctx, mock.MatchedBy(func(c domain.PayrollConfiguration) bool {
		return c.CustomerIdentifier == "cust-1" && c.MainAccountNumber == "9100.10" && len(c.Allocations) == 2
	})).Return(nil).Once()

	err := suite.service.SetConfiguration(suite.ctx, "cust-1", req, suite.actor)

	assert.NoError(suite.T(), err)
	suite.mockPayrollRepo.AssertExpectations(suite.T())
}

func (suite *PayrollServiceTestSuite) TestSetConfiguration_UnknownAccount() {
	req := dto.PayrollConfigurationRequest{MainAccountNumber: "9100.10"}

	suite.mockAccountRepo.On("FindAccountByID", suite.ctx, "9100.10").Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.SetConfiguration(suite.ctx, "cust-1", req, suite.actor)

	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
	suite.mockPayrollRepo.AssertNotCalled(suite.T(), "SaveConfiguration", mock.Anything, mock.Anything)
}

func (suite *PayrollServiceTestSuite) TestSetConfiguration_ProportionalOverHundred() {
	req := dto.PayrollConfigurationRequest{
		MainAccountNumber: "9100.10",
		Allocations: []dto.PayrollAllocationRequest{
			{AccountNumber: "9200.10", Amount: decimal.NewFromInt(120), Proportional: true},
		},
	}

	suite.mockAccountRepo.On("FindAccountByID", suite.ctx, "9100.10").Return(openAccount("9100.10"), nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", suite.ctx, "9200.10").Return(openAccount("9200.10"), nil).Once()

	err := suite.service.SetConfiguration(suite.ctx, "cust-1", req, suite.actor)

	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
}

func (suite *PayrollServiceTestSuite) configuration() *domain.PayrollConfiguration {
	return &domain.PayrollConfiguration{
		CustomerIdentifier: "cust-1",
		MainAccountNumber:  "9100.10",
		Allocations: []domain.PayrollAllocation{
			{AccountNumber: "9200.10", Amount: decimal.NewFromInt(25), Proportional: true},
			{AccountNumber: "9300.10", Amount: decimal.NewFromInt(150)},
		},
	}
}

func (suite *PayrollServiceTestSuite) TestDistributePayment_Success() {
	payment := dto.PayrollPaymentRequest{
		CustomerIdentifier:    "cust-1",
		EmployerAccountNumber: "7400.10",
		Salary:                decimal.NewFromInt(1000),
		PaymentDate:           time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
	}

	suite.mockPayrollRepo.On("FindConfigurationByCustomer", suite.ctx, "cust-1").
		Return(suite.configuration(), nil).Once()
	suite.mockJournalSvc.On("CreateJournalEntry", suite.ctx, mock.MatchedBy(func(req dto.CreateJournalEntryRequest) bool {
		if len(req.Debtors) != 1 || len(req.Creditors) != 3 {
			return false
		}
		// 25% of 1000 = 250, fixed 150, remainder 600 to the main account.
		return req.Debtors[0].AccountNumber == "7400.10" && req.Debtors[0].Amount.Equal(decimal.NewFromInt(1000)) &&
			req.Creditors[0].AccountNumber == "9200.10" && req.Creditors[0].Amount.Equal(decimal.NewFromInt(250)) &&
			req.Creditors[1].AccountNumber == "9300.10" && req.Creditors[1].Amount.Equal(decimal.NewFromInt(150)) &&
			req.Creditors[2].AccountNumber == "9100.10" && req.Creditors[2].Amount.Equal(decimal.NewFromInt(600)) &&
			req.Message == "cust-1"
	}), suite.actor).Return(&domain.JournalEntry{
		TransactionIdentifier: "txn-payroll", State: domain.Pending,
	}, nil).Once()

	entry, err := suite.service.DistributePayment(suite.ctx, payment, suite.actor)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "txn-payroll", entry.TransactionIdentifier)
	suite.mockJournalSvc.AssertExpectations(suite.T())
}

func (suite *PayrollServiceTestSuite) TestDistributePayment_RoundsHalfEven() {
	payment := dto.PayrollPaymentRequest{
		CustomerIdentifier:    "cust-1",
		EmployerAccountNumber: "7400.10",
		Salary:                decimal.RequireFromString("333.30"),
		PaymentDate:           time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
	}
	cfg := &domain.PayrollConfiguration{
		CustomerIdentifier: "cust-1",
		MainAccountNumber:  "9100.10",
		Allocations: []domain.PayrollAllocation{
			// 2.5% of 333.30 = 8.3325, which rounds half-even to 8.33.
			{AccountNumber: "9200.10", Amount: decimal.RequireFromString("2.5"), Proportional: true},
		},
	}

	suite.mockPayrollRepo.On("FindConfigurationByCustomer", suite.ctx, "cust-1").Return(cfg, nil).Once()
	suite.mockJournalSvc.On("CreateJournalEntry", suite.ctx, mock.MatchedBy(func(req dto.CreateJournalEntryRequest) bool {
		return len(req.Creditors) == 2 &&
			req.Creditors[0].Amount.Equal(decimal.RequireFromString("8.33")) &&
			req.Creditors[1].Amount.Equal(decimal.RequireFromString("324.97"))
	}), suite.actor).Return(&domain.JournalEntry{TransactionIdentifier: "txn-p2"}, nil).Once()

	_, err := suite.service.DistributePayment(suite.ctx, payment, suite.actor)

	assert.NoError(suite.T(), err)
	suite.mockJournalSvc.AssertExpectations(suite.T())
}

func (suite *PayrollServiceTestSuite) TestDistributePayment_AllocationsExceedSalary() {
	payment := dto.PayrollPaymentRequest{
		CustomerIdentifier:    "cust-1",
		EmployerAccountNumber: "7400.10",
		Salary:                decimal.NewFromInt(100),
		PaymentDate:           time.Now(),
	}

	suite.mockPayrollRepo.On("FindConfigurationByCustomer", suite.ctx, "cust-1").
		Return(suite.configuration(), nil).Once()

	entry, err := suite.service.DistributePayment(suite.ctx, payment, suite.actor)

	assert.Nil(suite.T(), entry)
	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
	suite.mockJournalSvc.AssertNotCalled(suite.T(), "CreateJournalEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PayrollServiceTestSuite) TestDistributePayment_NonPositiveSalary() {
	payment := dto.PayrollPaymentRequest{
		CustomerIdentifier:    "cust-1",
		EmployerAccountNumber: "7400.10",
		Salary:                decimal.Zero,
		PaymentDate:           time.Now(),
	}

	entry, err := suite.service.DistributePayment(suite.ctx, payment, suite.actor)

	assert.Nil(suite.T(), entry)
	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
	suite.mockPayrollRepo.AssertNotCalled(suite.T(), "FindConfigurationByCustomer", mock.Anything, mock.Anything)
}

func (suite *PayrollServiceTestSuite) TestDistributePayment_NoConfiguration() {
	payment := dto.PayrollPaymentRequest{
		CustomerIdentifier:    "cust-2",
		EmployerAccountNumber: "7400.10",
		Salary:                decimal.NewFromInt(100),
		PaymentDate:           time.Now(),
	}

	suite.mockPayrollRepo.On("FindConfigurationByCustomer", suite.ctx, "cust-2").
		Return(nil, apperrors.ErrNotFound).Once()

	entry, err := suite.service.DistributePayment(suite.ctx, payment, suite.actor)

	assert.Nil(suite.T(), entry)
	assert.ErrorIs(suite.T(), err, apperrors.ErrNotFound)
}

func TestPayrollService(t *testing.T) {
	suite.Run(t, new(PayrollServiceTestSuite))
}
