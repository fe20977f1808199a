package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/quillbooks/bookkeeping_app/internal/apperrors"
	"github.com/quillbooks/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/quillbooks/bookkeeping_app/internal/core/ports/repositories"
	portssvc "github.com/quillbooks/bookkeeping_app/internal/core/ports/services"
	"github.com/quillbooks/bookkeeping_app/internal/dto"
	"github.com/quillbooks/bookkeeping_app/internal/middleware"
)

// journalService validates and stores journal entries and hands them to the
// posting trigger.
type journalService struct {
	journalRepo portsrepo.JournalRepository
	accountRepo portsrepo.AccountRepository
	postingSvc  portssvc.PostingSvcFacade
	events      portssvc.EventPublisher
}

// NewJournalService creates a new JournalService.
func NewJournalService(journalRepo portsrepo.JournalRepository, accountRepo portsrepo.AccountRepository, postingSvc portssvc.PostingSvcFacade, events portssvc.EventPublisher) portssvc.JournalSvcFacade {
	return &journalService{
		journalRepo: journalRepo,
		accountRepo: accountRepo,
		postingSvc:  postingSvc,
		events:      events,
	}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// toPostings converts request lines, rejecting non-positive amounts.
func toPostings(lines []dto.PostingRequest, side string) ([]domain.Posting, error) {
	postings := make([]domain.Posting, len(lines))
	for i, line := range lines {
		if !line.Amount.IsPositive() {
			return nil, fmt.Errorf("%w: %s amount for account %s must be positive, got %s",
				apperrors.ErrValidation, side, line.AccountNumber, line.Amount.String())
		}
		postings[i] = domain.Posting{AccountNumber: line.AccountNumber, Amount: line.Amount}
	}
	return postings, nil
}

// checkPostingAccounts verifies that every referenced account exists and is
// OPEN before the entry is accepted.
func (s *journalService) checkPostingAccounts(ctx context.Context, postings []domain.Posting) error {
	ids := make([]string, len(postings))
	for i, p := range postings {
		ids[i] = p.AccountNumber
	}

	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to resolve posting accounts: %w", err)
	}
	for _, p := range postings {
		account, ok := accounts[p.AccountNumber]
		if !ok {
			return fmt.Errorf("%w: account %s does not exist", apperrors.ErrValidation, p.AccountNumber)
		}
		if account.State != domain.Open {
			return fmt.Errorf("%w: account %s is %s, postings require OPEN accounts",
				apperrors.ErrConflict, p.AccountNumber, account.State)
		}
	}
	return nil
}

// CreateJournalEntry stores a balanced entry in state PENDING and dispatches
// the posting trigger. When posting fails the entry stays PENDING and can be
// re-dispatched later.
func (s *journalService) CreateJournalEntry(ctx context.Context, req dto.CreateJournalEntryRequest, actor string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	debtors, err := toPostings(req.Debtors, "debtor")
	if err != nil {
		return nil, err
	}
	creditors, err := toPostings(req.Creditors, "creditor")
	if err != nil {
		return nil, err
	}
	if len(debtors) == 0 || len(creditors) == 0 {
		return nil, fmt.Errorf("%w: entry %s needs at least one debtor and one creditor posting",
			apperrors.ErrValidation, req.TransactionIdentifier)
	}

	now := time.Now().UTC()
	entry := domain.JournalEntry{
		TransactionIdentifier: req.TransactionIdentifier,
		TransactionDate:       req.TransactionDate,
		TransactionType:       req.TransactionType,
		Clerk:                 req.Clerk,
		Note:                  req.Note,
		Message:               req.Message,
		Debtors:               debtors,
		Creditors:             creditors,
		State:                 domain.Pending,
		AuditFields: domain.AuditFields{
			CreatedAt:      now,
			CreatedBy:      actor,
			LastModifiedAt: now,
			LastModifiedBy: actor,
		},
	}

	debtorTotal := entry.DebtorTotal()
	creditorTotal := entry.CreditorTotal()
	if !debtorTotal.Equal(creditorTotal) {
		return nil, fmt.Errorf("%w: entry %s is unbalanced, debtors sum to %s but creditors sum to %s",
			apperrors.ErrValidation, entry.TransactionIdentifier, debtorTotal.String(), creditorTotal.String())
	}

	if err := s.checkPostingAccounts(ctx, append(append([]domain.Posting{}, debtors...), creditors...)); err != nil {
		return nil, err
	}

	if err := s.journalRepo.SaveJournalEntry(ctx, entry); err != nil {
		logger.Error("Failed to store journal entry",
			slog.String("transaction_id", entry.TransactionIdentifier), slog.String("error", err.Error()))
		return nil, err
	}

	s.events.Publish(ctx, portssvc.EventJournalEntryCreated, entry.TransactionIdentifier)
	logger.Info("Journal entry stored",
		slog.String("transaction_id", entry.TransactionIdentifier),
		slog.String("amount", debtorTotal.String()),
	)

	// The trigger is at-least-once: a failure here leaves the entry PENDING for
	// a later re-dispatch, it never rolls back the stored entry.
	if err := s.postingSvc.PostPendingEntry(ctx, entry.TransactionIdentifier); err != nil {
		logger.Error("Posting dispatch failed, entry stays PENDING",
			slog.String("transaction_id", entry.TransactionIdentifier), slog.String("error", err.Error()))
	}

	return &entry, nil
}

// GetJournalEntry retrieves one entry by transaction identifier.
func (s *journalService) GetJournalEntry(ctx context.Context, transactionIdentifier string) (*domain.JournalEntry, error) {
	return s.journalRepo.FindJournalEntry(ctx, transactionIdentifier)
}

// FetchJournalEntries returns entries in the date range, optionally filtered by
// a participating account and by amount.
func (s *journalService) FetchJournalEntries(ctx context.Context, dateRange domain.DateRange, accountFilter string, amountFilter *domain.AmountRange) ([]domain.JournalEntry, error) {
	if amountFilter != nil && amountFilter.From.GreaterThan(amountFilter.To) {
		return nil, fmt.Errorf("%w: amount filter lower bound %s exceeds upper bound %s",
			apperrors.ErrValidation, amountFilter.From.String(), amountFilter.To.String())
	}
	return s.journalRepo.FetchJournalEntries(ctx, dateRange, accountFilter, amountFilter)
}
