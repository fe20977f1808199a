package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/quillbooks/bookkeeping_app/internal/apperrors"
	"github.com/quillbooks/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/quillbooks/bookkeeping_app/internal/core/ports/repositories"
	portssvc "github.com/quillbooks/bookkeeping_app/internal/core/ports/services"
	"github.com/quillbooks/bookkeeping_app/internal/middleware"
	"github.com/quillbooks/bookkeeping_app/internal/utils/accounting"
)

var journalEntriesPosted = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "bookkeeping_journal_entries_posted_total",
	Help: "Journal entries moved from PENDING to PROCESSED",
}, []string{"outcome"})

// postingService applies PENDING journal entries to account balances and
// ledger totals.
type postingService struct {
	journalRepo portsrepo.JournalRepository
	accountRepo portsrepo.AccountRepository
	events      portssvc.EventPublisher
}

// NewPostingService creates a new PostingService.
func NewPostingService(journalRepo portsrepo.JournalRepository, accountRepo portsrepo.AccountRepository, events portssvc.EventPublisher) portssvc.PostingSvcFacade {
	return &postingService{
		journalRepo: journalRepo,
		accountRepo: accountRepo,
		events:      events,
	}
}

var _ portssvc.PostingSvcFacade = (*postingService)(nil)

// buildMovements resolves every posting against its account and computes the
// signed balance delta under the debit/credit rules. Debtors come before
// creditors; within a set, request order is preserved.
func buildMovements(entry domain.JournalEntry, accounts map[string]domain.Account) ([]domain.Movement, error) {
	movements := make([]domain.Movement, 0, len(entry.Debtors)+len(entry.Creditors))

	add := func(postings []domain.Posting, side domain.EntrySide) error {
		for _, p := range postings {
			account, ok := accounts[p.AccountNumber]
			if !ok {
				return fmt.Errorf("%w: account %s referenced by entry %s does not exist",
					apperrors.ErrNotFound, p.AccountNumber, entry.TransactionIdentifier)
			}
			delta, err := accounting.SignedAmount(side, account.Type, p.Amount)
			if err != nil {
				return fmt.Errorf("entry %s, account %s: %w", entry.TransactionIdentifier, p.AccountNumber, err)
			}
			movements = append(movements, domain.Movement{
				AccountID: account.Identifier,
				LedgerID:  account.LedgerID,
				Side:      side,
				Amount:    p.Amount,
				Delta:     delta,
			})
		}
		return nil
	}

	if err := add(entry.Debtors, domain.Debit); err != nil {
		return nil, err
	}
	if err := add(entry.Creditors, domain.Credit); err != nil {
		return nil, err
	}
	return movements, nil
}

// PostPendingEntry applies one PENDING entry atomically. Redelivered triggers
// for an already processed entry are a no-op.
func (s *postingService) PostPendingEntry(ctx context.Context, transactionIdentifier string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.journalRepo.FindJournalEntry(ctx, transactionIdentifier)
	if err != nil {
		return fmt.Errorf("failed to find journal entry %s: %w", transactionIdentifier, err)
	}
	if entry.State != domain.Pending {
		journalEntriesPosted.WithLabelValues("duplicate").Inc()
		logger.Debug("Journal entry already processed, skipping", slog.String("transaction_id", transactionIdentifier))
		return nil
	}

	ids := make([]string, 0, len(entry.Debtors)+len(entry.Creditors))
	for _, p := range entry.Debtors {
		ids = append(ids, p.AccountNumber)
	}
	for _, p := range entry.Creditors {
		ids = append(ids, p.AccountNumber)
	}

	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to resolve accounts of entry %s: %w", transactionIdentifier, err)
	}

	movements, err := buildMovements(*entry, accounts)
	if err != nil {
		journalEntriesPosted.WithLabelValues("error").Inc()
		return err
	}

	applied, err := s.journalRepo.ApplyPosting(ctx, *entry, movements)
	if err != nil {
		journalEntriesPosted.WithLabelValues("error").Inc()
		logger.Error("Posting failed", slog.String("transaction_id", transactionIdentifier), slog.String("error", err.Error()))
		return fmt.Errorf("failed to post entry %s: %w", transactionIdentifier, err)
	}
	if !applied {
		// Another trigger won the race; the entry is already PROCESSED.
		journalEntriesPosted.WithLabelValues("duplicate").Inc()
		logger.Debug("Journal entry processed concurrently, skipping", slog.String("transaction_id", transactionIdentifier))
		return nil
	}

	journalEntriesPosted.WithLabelValues("posted").Inc()
	s.events.Publish(ctx, portssvc.EventJournalEntryReleased, transactionIdentifier)
	logger.Info("Journal entry posted",
		slog.String("transaction_id", transactionIdentifier),
		slog.Int("movements", len(movements)),
	)
	return nil
}
