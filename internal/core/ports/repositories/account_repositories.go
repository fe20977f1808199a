package repositories

import (
	"context"

	"github.com/quillbooks/bookkeeping_app/internal/core/domain"
)

// AccountRepository defines persistence operations for accounts, their movement
// records and their command history.
type AccountRepository interface {
	// SaveAccount inserts a new account and, when the initial balance is non-zero,
	// seeds the owning ledger's total chain in the same unit of work. Returns
	// apperrors.ErrDuplicate when the identifier is already taken.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount persists mutable fields of an existing account. The owning
	// ledger must not change through this call; ledger moves go through
	// MoveAccount.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// MoveAccount persists mutable fields including the new owning ledger and
	// shifts the account's balance out of the old ledger's total chain and into
	// the new one, atomically. The balance is re-read under a row lock so a
	// concurrent posting cannot slip between read and adjustment.
	MoveAccount(ctx context.Context, account domain.Account, previousLedgerID string) error

	// UpdateAccountState moves the account into the new state and appends the
	// command record atomically.
	UpdateAccountState(ctx context.Context, accountID string, state domain.AccountState, command domain.AccountCommand) error

	// FindAccountByID returns apperrors.ErrNotFound for unknown identifiers.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountByAlternativeNumber looks an account up by its secondary key.
	FindAccountByAlternativeNumber(ctx context.Context, alternativeAccountNumber string) (*domain.Account, error)

	// FindAccountsByIDs returns the accounts it could find keyed by identifier;
	// missing identifiers are simply absent from the map.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts returns a page of accounts ordered by identifier.
	ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error)

	// ListAccountsByLedger returns every account directly under a ledger.
	ListAccountsByLedger(ctx context.Context, ledgerID string) ([]domain.Account, error)

	// IsReferenceAccount reports whether any other account points at this one via
	// its reference-account field.
	IsReferenceAccount(ctx context.Context, accountID string) (bool, error)

	// HasAccountEntries reports whether any movement record exists for the account.
	HasAccountEntries(ctx context.Context, accountID string) (bool, error)

	// DeleteAccount removes the account together with its command history.
	// Movement records never exist at this point; the service enforces that.
	DeleteAccount(ctx context.Context, accountID string) error

	// ListAccountEntries returns movement records for one account restricted to
	// the date range, newest first, with cursor pagination.
	ListAccountEntries(ctx context.Context, accountID string, dateRange domain.DateRange, limit int, nextToken *string) ([]domain.AccountEntry, *string, error)

	// ListCommands returns the account's lifecycle command history, oldest first.
	ListCommands(ctx context.Context, accountID string) ([]domain.AccountCommand, error)
}
