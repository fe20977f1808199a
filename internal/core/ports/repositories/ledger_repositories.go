package repositories

import (
	"context"

	"github.com/quillbooks/bookkeeping_app/internal/core/domain"
)

// LedgerRepository defines persistence operations for the ledger tree.
type LedgerRepository interface {
	// SaveLedger inserts a new ledger. Returns apperrors.ErrDuplicate when the
	// identifier is already taken.
	SaveLedger(ctx context.Context, ledger domain.Ledger) error

	// UpdateLedger persists changes to an existing ledger. The parent must not
	// change through this call; re-parenting goes through ReparentLedger.
	UpdateLedger(ctx context.Context, ledger domain.Ledger) error

	// ReparentLedger moves the ledger under the parent recorded in
	// ledger.ParentLedgerID and shifts the subtree's running total out of the
	// old parent chain and into the new one, atomically. The total is re-read
	// under a row lock so concurrent postings keep the aggregation invariant.
	ReparentLedger(ctx context.Context, ledger domain.Ledger, previousParentID string) error

	// FindLedgerByID returns apperrors.ErrNotFound for unknown identifiers.
	FindLedgerByID(ctx context.Context, ledgerID string) (*domain.Ledger, error)

	// ListLedgers returns every ledger, ordered by identifier.
	ListLedgers(ctx context.Context) ([]domain.Ledger, error)

	// ListSubLedgers returns the direct children of a parent, ordered by identifier.
	ListSubLedgers(ctx context.Context, parentLedgerID string) ([]domain.Ledger, error)

	// HasSubLedgers reports whether any ledger names this one as parent.
	HasSubLedgers(ctx context.Context, ledgerID string) (bool, error)

	// DeleteLedger removes a ledger record. Reference checks are the service's job.
	DeleteLedger(ctx context.Context, ledgerID string) error

	// BackfillLedgerTotals recomputes every ledger's total from the current
	// non-zero account balances. One-time migration aid, not a steady-state call.
	BackfillLedgerTotals(ctx context.Context) error
}
