package services

import (
	"context"

	"github.com/quillbooks/bookkeeping_app/internal/core/domain"
	"github.com/quillbooks/bookkeeping_app/internal/dto"
)

// AccountSvcFacade exposes account lifecycle and query operations.
type AccountSvcFacade interface {
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, actor string) (*domain.Account, error)
	ModifyAccount(ctx context.Context, accountID string, req dto.ModifyAccountRequest, actor string) (*domain.Account, error)
	GetAccount(ctx context.Context, accountID string) (*domain.Account, error)
	GetAccountByAlternativeNumber(ctx context.Context, alternativeAccountNumber string) (*domain.Account, error)
	GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)
	ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error)

	// ExecuteCommand applies a lifecycle action (CLOSE, LOCK, UNLOCK, REOPEN) and
	// appends a command record. Transitions outside the state machine and closes
	// of accounts with non-zero balance fail with apperrors.ErrConflict.
	ExecuteCommand(ctx context.Context, accountID string, req dto.AccountCommandRequest, actor string) (*domain.Account, error)

	DeleteAccount(ctx context.Context, accountID string, actor string) error
	ListAccountEntries(ctx context.Context, accountID string, dateRange domain.DateRange, limit int, nextToken *string) ([]domain.AccountEntry, *string, error)
	ListCommands(ctx context.Context, accountID string) ([]domain.AccountCommand, error)
}
