package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/quillbooks/bookkeeping_app/internal/apperrors"
	"github.com/quillbooks/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/quillbooks/bookkeeping_app/internal/core/ports/repositories"
	portssvc "github.com/quillbooks/bookkeeping_app/internal/core/ports/services"
	"github.com/quillbooks/bookkeeping_app/internal/dto"
	"github.com/quillbooks/bookkeeping_app/internal/middleware"
	"github.com/shopspring/decimal"
)

// payrollTransactionType marks journal entries produced by the payroll
// translation.
const payrollTransactionType = "SALA"

var oneHundred = decimal.NewFromInt(100)

// payrollService translates salary payments into balanced journal entries
// according to per-customer distribution rules.
type payrollService struct {
	payrollRepo portsrepo.PayrollRepository
	accountRepo portsrepo.AccountRepository
	journalSvc  portssvc.JournalSvcFacade
}

// NewPayrollService creates a new PayrollService.
func NewPayrollService(payrollRepo portsrepo.PayrollRepository, accountRepo portsrepo.AccountRepository, journalSvc portssvc.JournalSvcFacade) portssvc.PayrollSvcFacade {
	return &payrollService{
		payrollRepo: payrollRepo,
		accountRepo: accountRepo,
		journalSvc:  journalSvc,
	}
}

var _ portssvc.PayrollSvcFacade = (*payrollService)(nil)

// checkPayrollAccount validates that a configured account exists and is OPEN.
func (s *payrollService) checkPayrollAccount(ctx context.Context, accountNumber string) error {
	account, err := s.accountRepo.FindAccountByID(ctx, accountNumber)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: account %s does not exist", apperrors.ErrValidation, accountNumber)
		}
		return fmt.Errorf("failed to find account %s: %w", accountNumber, err)
	}
	if account.State != domain.Open {
		return fmt.Errorf("%w: account %s is %s, payroll accounts must be OPEN",
			apperrors.ErrValidation, accountNumber, account.State)
	}
	return nil
}

// SetConfiguration stores or replaces the distribution rules for one customer.
func (s *payrollService) SetConfiguration(ctx context.Context, customerIdentifier string, req dto.PayrollConfigurationRequest, actor string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.checkPayrollAccount(ctx, req.MainAccountNumber); err != nil {
		return err
	}

	allocations := make([]domain.PayrollAllocation, len(req.Allocations))
	for i, alloc := range req.Allocations {
		if err := s.checkPayrollAccount(ctx, alloc.AccountNumber); err != nil {
			return err
		}
		if !alloc.Amount.IsPositive() {
			return fmt.Errorf("%w: allocation for account %s must be positive, got %s",
				apperrors.ErrValidation, alloc.AccountNumber, alloc.Amount.String())
		}
		if alloc.Proportional && alloc.Amount.GreaterThan(oneHundred) {
			return fmt.Errorf("%w: proportional allocation for account %s exceeds 100%%",
				apperrors.ErrValidation, alloc.AccountNumber)
		}
		allocations[i] = domain.PayrollAllocation{
			AccountNumber: alloc.AccountNumber,
			Amount:        alloc.Amount,
			Proportional:  alloc.Proportional,
		}
	}

	now := time.Now().UTC()
	configuration := domain.PayrollConfiguration{
		CustomerIdentifier: customerIdentifier,
		MainAccountNumber:  req.MainAccountNumber,
		Allocations:        allocations,
		AuditFields: domain.AuditFields{
			CreatedAt:      now,
			CreatedBy:      actor,
			LastModifiedAt: now,
			LastModifiedBy: actor,
		},
	}

	if err := s.payrollRepo.SaveConfiguration(ctx, configuration); err != nil {
		return fmt.Errorf("failed to store payroll configuration for customer %s: %w", customerIdentifier, err)
	}

	logger.Info("Payroll configuration stored",
		slog.String("customer_id", customerIdentifier),
		slog.Int("allocations", len(allocations)),
	)
	return nil
}

// GetConfiguration retrieves the distribution rules for one customer.
func (s *payrollService) GetConfiguration(ctx context.Context, customerIdentifier string) (*domain.PayrollConfiguration, error) {
	return s.payrollRepo.FindConfigurationByCustomer(ctx, customerIdentifier)
}

// allocationAmount resolves one allocation to a concrete amount. Proportional
// shares are rounded to two decimal places, half to even.
func allocationAmount(salary decimal.Decimal, allocation domain.PayrollAllocation) decimal.Decimal {
	if !allocation.Proportional {
		return allocation.Amount
	}
	return salary.Mul(allocation.Amount).Div(oneHundred).RoundBank(2)
}

// DistributePayment turns one salary payment into a balanced journal entry:
// the employer account is debited for the full salary, each allocation is
// credited its share and the main account is credited whatever remains.
func (s *payrollService) DistributePayment(ctx context.Context, req dto.PayrollPaymentRequest, actor string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Salary.IsPositive() {
		return nil, fmt.Errorf("%w: salary must be positive, got %s", apperrors.ErrValidation, req.Salary.String())
	}

	configuration, err := s.payrollRepo.FindConfigurationByCustomer(ctx, req.CustomerIdentifier)
	if err != nil {
		return nil, fmt.Errorf("failed to find payroll configuration for customer %s: %w", req.CustomerIdentifier, err)
	}

	creditors := make([]dto.PostingRequest, 0, len(configuration.Allocations)+1)
	remainder := req.Salary
	for _, allocation := range configuration.Allocations {
		amount := allocationAmount(req.Salary, allocation)
		remainder = remainder.Sub(amount)
		if remainder.IsNegative() {
			return nil, fmt.Errorf("%w: allocations exceed salary %s for customer %s",
				apperrors.ErrValidation, req.Salary.String(), req.CustomerIdentifier)
		}
		creditors = append(creditors, dto.PostingRequest{
			AccountNumber: allocation.AccountNumber,
			Amount:        amount,
		})
	}
	if remainder.IsPositive() {
		creditors = append(creditors, dto.PostingRequest{
			AccountNumber: configuration.MainAccountNumber,
			Amount:        remainder,
		})
	}

	entryReq := dto.CreateJournalEntryRequest{
		TransactionIdentifier: uuid.NewString(),
		TransactionDate:       req.PaymentDate,
		TransactionType:       payrollTransactionType,
		Clerk:                 actor,
		Message:               req.CustomerIdentifier,
		Note:                  fmt.Sprintf("salary distribution for customer %s", req.CustomerIdentifier),
		Debtors: []dto.PostingRequest{{
			AccountNumber: req.EmployerAccountNumber,
			Amount:        req.Salary,
		}},
		Creditors: creditors,
	}

	entry, err := s.journalSvc.CreateJournalEntry(ctx, entryReq, actor)
	if err != nil {
		return nil, fmt.Errorf("failed to distribute payment for customer %s: %w", req.CustomerIdentifier, err)
	}

	logger.Info("Payroll payment distributed",
		slog.String("customer_id", req.CustomerIdentifier),
		slog.String("transaction_id", entry.TransactionIdentifier),
		slog.String("salary", req.Salary.String()),
	)
	return entry, nil
}
