package services

import (
	"context"

	"github.com/quillbooks/bookkeeping_app/internal/core/domain"
	"github.com/quillbooks/bookkeeping_app/internal/dto"
)

// LedgerSvcFacade exposes ledger-tree operations. Every mutating operation takes
// the acting user explicitly; the actor ends up in the audit fields.
type LedgerSvcFacade interface {
	CreateLedger(ctx context.Context, req dto.CreateLedgerRequest, actor string) (*domain.Ledger, error)
	AddSubLedger(ctx context.Context, parentLedgerID string, req dto.CreateLedgerRequest, actor string) (*domain.Ledger, error)
	ModifyLedger(ctx context.Context, ledgerID string, req dto.ModifyLedgerRequest, actor string) (*domain.Ledger, error)
	DeleteLedger(ctx context.Context, ledgerID string, actor string) error
	GetLedger(ctx context.Context, ledgerID string) (*domain.Ledger, error)
	ListLedgers(ctx context.Context) ([]domain.Ledger, error)
	ListSubLedgers(ctx context.Context, parentLedgerID string) ([]domain.Ledger, error)

	// BackfillLedgerTotals recomputes all running totals from account balances.
	// Intended for one-time use when the totals feature is introduced on
	// pre-existing data.
	BackfillLedgerTotals(ctx context.Context, actor string) error
}
