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
)

const defaultAccountPageSize = 20

// accountService provides account lifecycle and query operations.
type accountService struct {
	accountRepo portsrepo.AccountRepository
	ledgerRepo  portsrepo.LedgerRepository
	events      portssvc.EventPublisher
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepository, ledgerRepo portsrepo.LedgerRepository, events portssvc.EventPublisher) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo: accountRepo,
		ledgerRepo:  ledgerRepo,
		events:      events,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// checkReferenceAccount validates that a reference account exists and is OPEN.
func (s *accountService) checkReferenceAccount(ctx context.Context, referenceAccountID string) error {
	reference, err := s.accountRepo.FindAccountByID(ctx, referenceAccountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: reference account %s does not exist", apperrors.ErrValidation, referenceAccountID)
		}
		return fmt.Errorf("failed to find reference account %s: %w", referenceAccountID, err)
	}
	if reference.State != domain.Open {
		return fmt.Errorf("%w: reference account %s is %s, must be OPEN", apperrors.ErrValidation, referenceAccountID, reference.State)
	}
	return nil
}

// CreateAccount creates an OPEN account under an existing ledger. The account
// type must match the ledger type; a non-zero initial balance seeds the owning
// ledger's total chain.
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, actor string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	ledger, err := s.ledgerRepo.FindLedgerByID(ctx, req.LedgerIdentifier)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: ledger %s does not exist", apperrors.ErrValidation, req.LedgerIdentifier)
		}
		return nil, fmt.Errorf("failed to find ledger %s: %w", req.LedgerIdentifier, err)
	}
	if req.Type != ledger.Type {
		return nil, fmt.Errorf("%w: account %s has type %s but ledger %s has type %s",
			apperrors.ErrValidation, req.Identifier, req.Type, ledger.Identifier, ledger.Type)
	}
	if req.ReferenceAccountIdentifier != "" {
		if err := s.checkReferenceAccount(ctx, req.ReferenceAccountIdentifier); err != nil {
			return nil, err
		}
	}
	if req.Balance.IsNegative() {
		return nil, fmt.Errorf("%w: initial balance must not be negative", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	account := domain.Account{
		Identifier:               req.Identifier,
		Name:                     req.Name,
		Type:                     req.Type,
		LedgerID:                 ledger.Identifier,
		ReferenceAccountID:       req.ReferenceAccountIdentifier,
		AlternativeAccountNumber: req.AlternativeAccountNumber,
		Balance:                  req.Balance,
		State:                    domain.Open,
		Holders:                  req.Holders,
		SignatureAuthorities:     req.SignatureAuthorities,
		AuditFields: domain.AuditFields{
			CreatedAt:      now,
			CreatedBy:      actor,
			LastModifiedAt: now,
			LastModifiedBy: actor,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		logger.Error("Failed to create account", slog.String("account_id", req.Identifier), slog.String("error", err.Error()))
		return nil, err
	}

	s.events.Publish(ctx, portssvc.EventAccountCreated, account.Identifier)
	logger.Info("Account created", slog.String("account_id", account.Identifier), slog.String("ledger_id", account.LedgerID))
	return &account, nil
}

// ModifyAccount updates mutable account fields. Moving the account to another
// ledger requires matching types and shifts the balance between both ledgers'
// total chains.
func (s *accountService) ModifyAccount(ctx context.Context, accountID string, req dto.ModifyAccountRequest, actor string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}

	previousLedgerID := account.LedgerID

	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.LedgerIdentifier != nil && *req.LedgerIdentifier != account.LedgerID {
		ledger, err := s.ledgerRepo.FindLedgerByID(ctx, *req.LedgerIdentifier)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: ledger %s does not exist", apperrors.ErrValidation, *req.LedgerIdentifier)
			}
			return nil, fmt.Errorf("failed to find ledger %s: %w", *req.LedgerIdentifier, err)
		}
		if ledger.Type != account.Type {
			return nil, fmt.Errorf("%w: account %s has type %s but ledger %s has type %s",
				apperrors.ErrValidation, account.Identifier, account.Type, ledger.Identifier, ledger.Type)
		}
		account.LedgerID = ledger.Identifier
	}
	if req.ReferenceAccountIdentifier != nil {
		if *req.ReferenceAccountIdentifier != "" {
			if err := s.checkReferenceAccount(ctx, *req.ReferenceAccountIdentifier); err != nil {
				return nil, err
			}
		}
		account.ReferenceAccountID = *req.ReferenceAccountIdentifier
	}
	if req.AlternativeAccountNumber != nil {
		account.AlternativeAccountNumber = *req.AlternativeAccountNumber
	}
	if req.Holders != nil {
		account.Holders = *req.Holders
	}
	if req.SignatureAuthorities != nil {
		account.SignatureAuthorities = *req.SignatureAuthorities
	}

	account.LastModifiedAt = time.Now().UTC()
	account.LastModifiedBy = actor

	// A ledger move shifts the account's balance out of the old total chain and
	// into the new one; the repository does both in one unit of work under a
	// row lock, so the shifted amount is the balance at commit time.
	if account.LedgerID != previousLedgerID {
		if err := s.accountRepo.MoveAccount(ctx, *account, previousLedgerID); err != nil {
			return nil, fmt.Errorf("failed to move account %s to ledger %s: %w", accountID, account.LedgerID, err)
		}
	} else if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		return nil, fmt.Errorf("failed to update account %s: %w", accountID, err)
	}

	s.events.Publish(ctx, portssvc.EventAccountModified, account.Identifier)
	logger.Info("Account modified", slog.String("account_id", account.Identifier))
	return account, nil
}

// commandEvents maps lifecycle actions to the events they emit.
var commandEvents = map[domain.CommandAction]string{
	domain.ActionClose:  portssvc.EventAccountClosed,
	domain.ActionLock:   portssvc.EventAccountLocked,
	domain.ActionUnlock: portssvc.EventAccountUnlocked,
	domain.ActionReopen: portssvc.EventAccountReopened,
}

// ExecuteCommand applies a lifecycle action and appends the command record.
func (s *accountService) ExecuteCommand(ctx context.Context, accountID string, req dto.AccountCommandRequest, actor string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, ok := commandEvents[req.Action]; !ok {
		return nil, fmt.Errorf("%w: unknown command action %s", apperrors.ErrValidation, req.Action)
	}

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}

	next, ok := domain.NextAccountState(account.State, req.Action)
	if !ok {
		return nil, fmt.Errorf("%w: cannot %s account %s in state %s",
			apperrors.ErrConflict, req.Action, accountID, account.State)
	}
	if req.Action == domain.ActionClose && !account.Balance.IsZero() {
		return nil, fmt.Errorf("%w: cannot close account %s with balance %s",
			apperrors.ErrConflict, accountID, account.Balance.String())
	}

	now := time.Now().UTC()
	command := domain.AccountCommand{
		CommandID: uuid.NewString(),
		AccountID: accountID,
		Action:    req.Action,
		Comment:   req.Comment,
		CreatedBy: actor,
		CreatedAt: now,
	}

	if err := s.accountRepo.UpdateAccountState(ctx, accountID, next, command); err != nil {
		return nil, fmt.Errorf("failed to apply %s to account %s: %w", req.Action, accountID, err)
	}

	account.State = next
	account.LastModifiedAt = now
	account.LastModifiedBy = actor

	s.events.Publish(ctx, commandEvents[req.Action], accountID)
	logger.Info("Account command executed",
		slog.String("account_id", accountID),
		slog.String("action", string(req.Action)),
		slog.String("state", string(next)),
	)
	return account, nil
}

// DeleteAccount removes a closed account that was never posted to and is not
// referenced by another account.
func (s *accountService) DeleteAccount(ctx context.Context, accountID string, actor string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	if account.State != domain.Closed {
		return fmt.Errorf("%w: account %s is %s, only closed accounts can be deleted",
			apperrors.ErrConflict, accountID, account.State)
	}

	hasEntries, err := s.accountRepo.HasAccountEntries(ctx, accountID)
	if err != nil {
		return fmt.Errorf("failed to check entries of account %s: %w", accountID, err)
	}
	if hasEntries {
		return fmt.Errorf("%w: account %s has movement records", apperrors.ErrConflict, accountID)
	}

	isReference, err := s.accountRepo.IsReferenceAccount(ctx, accountID)
	if err != nil {
		return fmt.Errorf("failed to check references to account %s: %w", accountID, err)
	}
	if isReference {
		return fmt.Errorf("%w: account %s is referenced by another account", apperrors.ErrConflict, accountID)
	}

	if err := s.accountRepo.DeleteAccount(ctx, accountID); err != nil {
		return fmt.Errorf("failed to delete account %s: %w", accountID, err)
	}

	s.events.Publish(ctx, portssvc.EventAccountDeleted, accountID)
	logger.Info("Account deleted", slog.String("account_id", accountID), slog.String("actor", actor))
	return nil
}

// GetAccount retrieves one account by identifier.
func (s *accountService) GetAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	return s.accountRepo.FindAccountByID(ctx, accountID)
}

// GetAccountByAlternativeNumber retrieves an account by its secondary key.
func (s *accountService) GetAccountByAlternativeNumber(ctx context.Context, alternativeAccountNumber string) (*domain.Account, error) {
	return s.accountRepo.FindAccountByAlternativeNumber(ctx, alternativeAccountNumber)
}

// GetAccountsByIDs retrieves a batch of accounts keyed by identifier.
func (s *accountService) GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	return s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
}

// ListAccounts returns a page of accounts ordered by identifier.
func (s *accountService) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	if limit <= 0 {
		limit = defaultAccountPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return s.accountRepo.ListAccounts(ctx, limit, offset)
}

// ListAccountEntries pages through one account's movement records within a
// date range, newest first.
func (s *accountService) ListAccountEntries(ctx context.Context, accountID string, dateRange domain.DateRange, limit int, nextToken *string) ([]domain.AccountEntry, *string, error) {
	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		return nil, nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	if limit <= 0 {
		limit = defaultAccountPageSize
	}
	return s.accountRepo.ListAccountEntries(ctx, accountID, dateRange, limit, nextToken)
}

// ListCommands returns the account's lifecycle command history, oldest first.
func (s *accountService) ListCommands(ctx context.Context, accountID string) ([]domain.AccountCommand, error) {
	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	return s.accountRepo.ListCommands(ctx, accountID)
}
