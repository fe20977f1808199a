package repositories

import (
	"context"

	"github.com/quillbooks/bookkeeping_app/internal/core/domain"
)

// JournalRepository defines persistence operations for journal entries and the
// atomic posting unit of work.
type JournalRepository interface {
	// SaveJournalEntry persists a new entry in state PENDING. Returns
	// apperrors.ErrDuplicate when the transaction identifier is already stored.
	SaveJournalEntry(ctx context.Context, entry domain.JournalEntry) error

	// FindJournalEntry returns apperrors.ErrNotFound for unknown identifiers.
	FindJournalEntry(ctx context.Context, transactionIdentifier string) (*domain.JournalEntry, error)

	// FetchJournalEntries returns entries whose transaction date falls in the
	// range, bucketed by calendar day to bound the scan, optionally filtered by a
	// participating account number and by debtor-total amount.
	FetchJournalEntries(ctx context.Context, dateRange domain.DateRange, accountFilter string, amountFilter *domain.AmountRange) ([]domain.JournalEntry, error)

	// ApplyPosting executes the posting unit of work for one PENDING entry in a
	// single transaction: it re-checks and flips the state to PROCESSED, locks
	// the touched accounts, applies each movement's delta, appends the movement
	// records with their post-movement balances and propagates every delta up the
	// owning ledger's total chain. Either all of it lands or none of it does.
	//
	// The bool result is false when the entry was no longer PENDING, which makes
	// redelivered posting triggers a safe no-op.
	ApplyPosting(ctx context.Context, entry domain.JournalEntry, movements []domain.Movement) (bool, error)
}
