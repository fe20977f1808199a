package services

import (
	"context"

	"github.com/quillbooks/bookkeeping_app/internal/core/domain"
	"github.com/quillbooks/bookkeeping_app/internal/dto"
)

// JournalSvcFacade exposes journal-entry creation and queries.
type JournalSvcFacade interface {
	// CreateJournalEntry validates and stores a balanced entry in state PENDING,
	// then dispatches the posting trigger. The returned entry reflects the state
	// at store time; processing may complete asynchronously.
	CreateJournalEntry(ctx context.Context, req dto.CreateJournalEntryRequest, actor string) (*domain.JournalEntry, error)

	GetJournalEntry(ctx context.Context, transactionIdentifier string) (*domain.JournalEntry, error)
	FetchJournalEntries(ctx context.Context, dateRange domain.DateRange, accountFilter string, amountFilter *domain.AmountRange) ([]domain.JournalEntry, error)
}

// PostingSvcFacade is the posting trigger: it applies one PENDING journal entry
// to account balances and ledger totals. Delivery is at-least-once, so posting a
// non-PENDING entry is a harmless no-op.
type PostingSvcFacade interface {
	PostPendingEntry(ctx context.Context, transactionIdentifier string) error
}
