package services

import (
	"context"
	"errors"
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

// ledgerService provides ledger-tree operations.
type ledgerService struct {
	ledgerRepo  portsrepo.LedgerRepository
	accountRepo portsrepo.AccountRepository
	events      portssvc.EventPublisher
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(ledgerRepo portsrepo.LedgerRepository, accountRepo portsrepo.AccountRepository, events portssvc.EventPublisher) portssvc.LedgerSvcFacade {
	return &ledgerService{
		ledgerRepo:  ledgerRepo,
		accountRepo: accountRepo,
		events:      events,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// validateSubLedgerTypes checks recursively that every sub-ledger carries its
// parent's type.
func validateSubLedgerTypes(parent dto.CreateLedgerRequest) error {
	for _, sub := range parent.SubLedgers {
		if sub.Type != parent.Type {
			return fmt.Errorf("%w: sub-ledger %s has type %s but parent %s has type %s",
				apperrors.ErrValidation, sub.Identifier, sub.Type, parent.Identifier, parent.Type)
		}
		if err := validateSubLedgerTypes(sub); err != nil {
			return err
		}
	}
	return nil
}

// saveLedgerTree persists a ledger and its sub-ledgers depth-first.
func (s *ledgerService) saveLedgerTree(ctx context.Context, req dto.CreateLedgerRequest, parentID string, actor string, now time.Time) (*domain.Ledger, error) {
	ledger := domain.Ledger{
		Identifier:          req.Identifier,
		Type:                req.Type,
		Name:                req.Name,
		Description:         req.Description,
		ParentLedgerID:      parentID,
		ShowAccountsInChart: req.ShowAccountsInChart,
		AuditFields: domain.AuditFields{
			CreatedAt:      now,
			CreatedBy:      actor,
			LastModifiedAt: now,
			LastModifiedBy: actor,
		},
	}

	if err := s.ledgerRepo.SaveLedger(ctx, ledger); err != nil {
		return nil, err
	}
	s.events.Publish(ctx, portssvc.EventLedgerCreated, ledger.Identifier)

	for _, sub := range req.SubLedgers {
		if _, err := s.saveLedgerTree(ctx, sub, ledger.Identifier, actor, now); err != nil {
			return nil, err
		}
	}
	return &ledger, nil
}

// CreateLedger creates a root ledger, optionally with a nested sub-ledger
// structure, validating that every descendant matches its parent's type.
func (s *ledgerService) CreateLedger(ctx context.Context, req dto.CreateLedgerRequest, actor string) (*domain.Ledger, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !domain.ValidLedgerType(req.Type) {
		return nil, fmt.Errorf("%w: unknown ledger type %s", apperrors.ErrValidation, req.Type)
	}
	if err := validateSubLedgerTypes(req); err != nil {
		return nil, err
	}

	ledger, err := s.saveLedgerTree(ctx, req, "", actor, time.Now().UTC())
	if err != nil {
		logger.Error("Failed to create ledger", slog.String("ledger_id", req.Identifier), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Ledger created", slog.String("ledger_id", ledger.Identifier), slog.Int("sub_ledgers", len(req.SubLedgers)))
	return ledger, nil
}

// AddSubLedger attaches a new or existing ledger under a parent, re-parenting
// when the child already exists.
func (s *ledgerService) AddSubLedger(ctx context.Context, parentLedgerID string, req dto.CreateLedgerRequest, actor string) (*domain.Ledger, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	parent, err := s.ledgerRepo.FindLedgerByID(ctx, parentLedgerID)
	if err != nil {
		return nil, fmt.Errorf("failed to find parent ledger %s: %w", parentLedgerID, err)
	}
	if req.Type != parent.Type {
		return nil, fmt.Errorf("%w: sub-ledger %s has type %s but parent %s has type %s",
			apperrors.ErrValidation, req.Identifier, req.Type, parent.Identifier, parent.Type)
	}
	if err := validateSubLedgerTypes(req); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	var child *domain.Ledger
	existing, err := s.ledgerRepo.FindLedgerByID(ctx, req.Identifier)
	switch {
	case err == nil:
		// Re-parent the existing ledger. Its subtree total moves with it, out of
		// the old parent chain and into the new one, in one unit of work.
		if existing.Type != parent.Type {
			return nil, fmt.Errorf("%w: ledger %s has type %s but parent %s has type %s",
				apperrors.ErrValidation, existing.Identifier, existing.Type, parent.Identifier, parent.Type)
		}
		previousParentID := existing.ParentLedgerID
		existing.ParentLedgerID = parent.Identifier
		existing.LastModifiedAt = now
		existing.LastModifiedBy = actor
		if err := s.ledgerRepo.ReparentLedger(ctx, *existing, previousParentID); err != nil {
			return nil, fmt.Errorf("failed to re-parent ledger %s: %w", existing.Identifier, err)
		}
		s.events.Publish(ctx, portssvc.EventLedgerModified, existing.Identifier)
		child = existing
	case errors.Is(err, apperrors.ErrNotFound):
		child, err = s.saveLedgerTree(ctx, req, parent.Identifier, actor, now)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("failed to look up sub-ledger %s: %w", req.Identifier, err)
	}

	parent.LastModifiedAt = now
	parent.LastModifiedBy = actor
	if err := s.ledgerRepo.UpdateLedger(ctx, *parent); err != nil {
		return nil, fmt.Errorf("failed to touch parent ledger %s: %w", parent.Identifier, err)
	}

	logger.Info("Sub-ledger attached", slog.String("parent_id", parent.Identifier), slog.String("ledger_id", child.Identifier))
	return child, nil
}

// ModifyLedger updates name, description and the chart display flag. Type and
// parent are immutable through this operation.
func (s *ledgerService) ModifyLedger(ctx context.Context, ledgerID string, req dto.ModifyLedgerRequest, actor string) (*domain.Ledger, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	ledger, err := s.ledgerRepo.FindLedgerByID(ctx, ledgerID)
	if err != nil {
		return nil, fmt.Errorf("failed to find ledger %s: %w", ledgerID, err)
	}

	updated := false
	if req.Name != nil {
		ledger.Name = *req.Name
		updated = true
	}
	if req.Description != nil {
		ledger.Description = *req.Description
		updated = true
	}
	if req.ShowAccountsInChart != nil {
		ledger.ShowAccountsInChart = *req.ShowAccountsInChart
		updated = true
	}
	if !updated {
		return ledger, nil
	}

	ledger.LastModifiedAt = time.Now().UTC()
	ledger.LastModifiedBy = actor
	if err := s.ledgerRepo.UpdateLedger(ctx, *ledger); err != nil {
		return nil, fmt.Errorf("failed to update ledger %s: %w", ledgerID, err)
	}

	s.events.Publish(ctx, portssvc.EventLedgerModified, ledger.Identifier)
	logger.Info("Ledger modified", slog.String("ledger_id", ledger.Identifier))
	return ledger, nil
}

// DeleteLedger removes a ledger that has neither sub-ledgers nor accounts.
func (s *ledgerService) DeleteLedger(ctx context.Context, ledgerID string, actor string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.ledgerRepo.FindLedgerByID(ctx, ledgerID); err != nil {
		return fmt.Errorf("failed to find ledger %s: %w", ledgerID, err)
	}

	hasChildren, err := s.ledgerRepo.HasSubLedgers(ctx, ledgerID)
	if err != nil {
		return fmt.Errorf("failed to check sub-ledgers of %s: %w", ledgerID, err)
	}
	if hasChildren {
		return fmt.Errorf("%w: ledger %s still has sub-ledgers", apperrors.ErrConflict, ledgerID)
	}

	accounts, err := s.accountRepo.ListAccountsByLedger(ctx, ledgerID)
	if err != nil {
		return fmt.Errorf("failed to check accounts of ledger %s: %w", ledgerID, err)
	}
	if len(accounts) > 0 {
		return fmt.Errorf("%w: ledger %s still has accounts", apperrors.ErrConflict, ledgerID)
	}

	if err := s.ledgerRepo.DeleteLedger(ctx, ledgerID); err != nil {
		return fmt.Errorf("failed to delete ledger %s: %w", ledgerID, err)
	}

	s.events.Publish(ctx, portssvc.EventLedgerDeleted, ledgerID)
	logger.Info("Ledger deleted", slog.String("ledger_id", ledgerID), slog.String("actor", actor))
	return nil
}

// GetLedger retrieves one ledger by identifier.
func (s *ledgerService) GetLedger(ctx context.Context, ledgerID string) (*domain.Ledger, error) {
	return s.ledgerRepo.FindLedgerByID(ctx, ledgerID)
}

// ListLedgers returns every ledger ordered by identifier.
func (s *ledgerService) ListLedgers(ctx context.Context) ([]domain.Ledger, error) {
	return s.ledgerRepo.ListLedgers(ctx)
}

// ListSubLedgers returns the direct children of a ledger.
func (s *ledgerService) ListSubLedgers(ctx context.Context, parentLedgerID string) ([]domain.Ledger, error) {
	if _, err := s.ledgerRepo.FindLedgerByID(ctx, parentLedgerID); err != nil {
		return nil, fmt.Errorf("failed to find parent ledger %s: %w", parentLedgerID, err)
	}
	return s.ledgerRepo.ListSubLedgers(ctx, parentLedgerID)
}

// BackfillLedgerTotals recomputes all ledger totals from current account
// balances. Used once when the totals feature is introduced on existing data.
func (s *ledgerService) BackfillLedgerTotals(ctx context.Context, actor string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.ledgerRepo.BackfillLedgerTotals(ctx); err != nil {
		logger.Error("Ledger total backfill failed", slog.String("error", err.Error()))
		return err
	}
	logger.Info("Ledger totals backfilled", slog.String("actor", actor))
	return nil
}
