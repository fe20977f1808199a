package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/quillbooks/bookkeeping_app/internal/apperrors"
	"github.com/quillbooks/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/quillbooks/bookkeeping_app/internal/core/ports/repositories"
	"github.com/quillbooks/bookkeeping_app/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

const accountColumns = `account_id, name, account_type, ledger_id, reference_account_id, alternative_account_number, balance, state, holders, signature_authorities, created_at, created_by, last_modified_at, last_modified_by`

const accountEntryColumns = `entry_id, account_id, entry_type, amount, balance_after, message, transaction_date, created_at, created_by`

type PgxAccountRepository struct {
	BaseRepository
}

func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepository {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AccountRepository = (*PgxAccountRepository)(nil)

func scanAccount(row pgx.Row) (domain.Account, error) {
	var a domain.Account
	var referenceID, alternativeNumber *string
	err := row.Scan(
		&a.Identifier, &a.Name, &a.Type, &a.LedgerID, &referenceID, &alternativeNumber,
		&a.Balance, &a.State, &a.Holders, &a.SignatureAuthorities,
		&a.CreatedAt, &a.CreatedBy, &a.LastModifiedAt, &a.LastModifiedBy,
	)
	if err != nil {
		return domain.Account{}, err
	}
	a.ReferenceAccountID = stringOrEmpty(referenceID)
	a.AlternativeAccountNumber = stringOrEmpty(alternativeNumber)
	return a, nil
}

// SaveAccount inserts a new account. A non-zero opening balance seeds the owning
// ledger's total chain in the same transaction.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	_, err = tx.Exec(ctx, `
		INSERT INTO accounts (`+accountColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`,
		account.Identifier, account.Name, account.Type, account.LedgerID,
		nullableString(account.ReferenceAccountID), nullableString(account.AlternativeAccountNumber),
		account.Balance, account.State, account.Holders, account.SignatureAuthorities,
		account.CreatedAt, account.CreatedBy, account.LastModifiedAt, account.LastModifiedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: account %s", apperrors.ErrDuplicate, account.Identifier)
		}
		return fmt.Errorf("failed to insert account %s: %w", account.Identifier, err)
	}

	if !account.Balance.IsZero() {
		if err := adjustLedgerTotalChain(ctx, tx, account.LedgerID, account.Balance); err != nil {
			return err
		}
	}
	return r.Commit(ctx, tx)
}

// UpdateAccount persists mutable account fields. The owning ledger is owned by
// MoveAccount and is not written here.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE accounts
		SET name = $2, reference_account_id = $3, alternative_account_number = $4,
		    holders = $5, signature_authorities = $6, last_modified_at = $7, last_modified_by = $8
		WHERE account_id = $1;
	`,
		account.Identifier, account.Name,
		nullableString(account.ReferenceAccountID), nullableString(account.AlternativeAccountNumber),
		account.Holders, account.SignatureAuthorities, account.LastModifiedAt, account.LastModifiedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update account %s: %w", account.Identifier, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, account.Identifier)
	}
	return nil
}

// MoveAccount persists the account's mutable fields, including the new owning
// ledger, and shifts the balance between both ledgers' total chains. The row
// lock pins the balance for the duration, so the amount shifted is exactly the
// balance the account holds at commit time, even under concurrent posting.
func (r *PgxAccountRepository) MoveAccount(ctx context.Context, account domain.Account, previousLedgerID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	var balance decimal.Decimal
	err = tx.QueryRow(ctx, `SELECT balance FROM accounts WHERE account_id = $1 FOR UPDATE;`, account.Identifier).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, account.Identifier)
		}
		return fmt.Errorf("failed to lock account %s: %w", account.Identifier, err)
	}

	_, err = tx.Exec(ctx, `
		UPDATE accounts
		SET name = $2, ledger_id = $3, reference_account_id = $4, alternative_account_number = $5,
		    holders = $6, signature_authorities = $7, last_modified_at = $8, last_modified_by = $9
		WHERE account_id = $1;
	`,
		account.Identifier, account.Name, account.LedgerID,
		nullableString(account.ReferenceAccountID), nullableString(account.AlternativeAccountNumber),
		account.Holders, account.SignatureAuthorities, account.LastModifiedAt, account.LastModifiedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to move account %s: %w", account.Identifier, err)
	}

	if !balance.IsZero() {
		if err := adjustLedgerTotalChain(ctx, tx, previousLedgerID, balance.Neg()); err != nil {
			return err
		}
		if err := adjustLedgerTotalChain(ctx, tx, account.LedgerID, balance); err != nil {
			return err
		}
	}
	return r.Commit(ctx, tx)
}

// UpdateAccountState flips the lifecycle state and appends the command record in
// one transaction, so the history can never disagree with the state.
func (r *PgxAccountRepository) UpdateAccountState(ctx context.Context, accountID string, state domain.AccountState, command domain.AccountCommand) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	tag, err := tx.Exec(ctx, `
		UPDATE accounts
		SET state = $2, last_modified_at = $3, last_modified_by = $4
		WHERE account_id = $1;
	`, accountID, state, command.CreatedAt, command.CreatedBy)
	if err != nil {
		return fmt.Errorf("failed to update state of account %s: %w", accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO account_commands (command_id, account_id, action, comment, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`, command.CommandID, accountID, command.Action, command.Comment, command.CreatedBy, command.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to append command for account %s: %w", accountID, err)
	}
	return r.Commit(ctx, tx)
}

func (r *PgxAccountRepository) findAccount(ctx context.Context, query string, arg string) (*domain.Account, error) {
	row := r.Pool.QueryRow(ctx, query, arg)
	account, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, arg)
		}
		return nil, fmt.Errorf("failed to find account %s: %w", arg, err)
	}
	return &account, nil
}

func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	return r.findAccount(ctx, `SELECT `+accountColumns+` FROM accounts WHERE account_id = $1;`, accountID)
}

func (r *PgxAccountRepository) FindAccountByAlternativeNumber(ctx context.Context, alternativeAccountNumber string) (*domain.Account, error) {
	return r.findAccount(ctx, `SELECT `+accountColumns+` FROM accounts WHERE alternative_account_number = $1;`, alternativeAccountNumber)
}

func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+accountColumns+` FROM accounts WHERE account_id = ANY($1);`, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	accounts := make(map[string]domain.Account, len(accountIDs))
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts[account.Identifier] = account
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read accounts: %w", err)
	}
	return accounts, nil
}

func (r *PgxAccountRepository) listAccounts(ctx context.Context, query string, args ...any) ([]domain.Account, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read accounts: %w", err)
	}
	return accounts, nil
}

func (r *PgxAccountRepository) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	return r.listAccounts(ctx, `SELECT `+accountColumns+` FROM accounts ORDER BY account_id LIMIT $1 OFFSET $2;`, limit, offset)
}

func (r *PgxAccountRepository) ListAccountsByLedger(ctx context.Context, ledgerID string) ([]domain.Account, error) {
	return r.listAccounts(ctx, `SELECT `+accountColumns+` FROM accounts WHERE ledger_id = $1 ORDER BY account_id;`, ledgerID)
}

func (r *PgxAccountRepository) IsReferenceAccount(ctx context.Context, accountID string) (bool, error) {
	var exists bool
	err := r.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM accounts WHERE reference_account_id = $1);`, accountID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check references to account %s: %w", accountID, err)
	}
	return exists, nil
}

func (r *PgxAccountRepository) HasAccountEntries(ctx context.Context, accountID string) (bool, error) {
	var exists bool
	err := r.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM account_entries WHERE account_id = $1);`, accountID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check entries of account %s: %w", accountID, err)
	}
	return exists, nil
}

// DeleteAccount removes the account and its command history together. The
// service guarantees no movement records exist at this point.
func (r *PgxAccountRepository) DeleteAccount(ctx context.Context, accountID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM account_commands WHERE account_id = $1;`, accountID); err != nil {
		return fmt.Errorf("failed to delete commands of account %s: %w", accountID, err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM accounts WHERE account_id = $1;`, accountID)
	if err != nil {
		return fmt.Errorf("failed to delete account %s: %w", accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
	}
	return r.Commit(ctx, tx)
}

// ListAccountEntries pages through movement records newest first. The scan is
// bounded by the enumerated calendar days of the range; the cursor is the
// (created_at, entry_id) pair of the last returned row.
func (r *PgxAccountRepository) ListAccountEntries(ctx context.Context, accountID string, dateRange domain.DateRange, limit int, nextToken *string) ([]domain.AccountEntry, *string, error) {
	args := []any{accountID, dateRange.Days(), limit + 1}
	query := `
		SELECT ` + accountEntryColumns + `
		FROM account_entries
		WHERE account_id = $1 AND transaction_date = ANY($2::date[])
	`

	if nextToken != nil {
		afterTime, afterID, err := pagination.DecodeEntryToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		query += ` AND (created_at, entry_id) < ($4, $5)`
		args = append(args, afterTime, afterID)
	}
	query += ` ORDER BY created_at DESC, entry_id DESC LIMIT $3;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query entries of account %s: %w", accountID, err)
	}
	defer rows.Close()

	entries := []domain.AccountEntry{}
	for rows.Next() {
		var e domain.AccountEntry
		var transactionDate time.Time
		err := rows.Scan(&e.EntryID, &e.AccountID, &e.Type, &e.Amount, &e.Balance, &e.Message, &transactionDate, &e.CreatedAt, &e.CreatedBy)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan account entry: %w", err)
		}
		e.TransactionDate = transactionDate
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to read account entries: %w", err)
	}

	var newToken *string
	if len(entries) > limit {
		entries = entries[:limit]
		last := entries[len(entries)-1]
		token := pagination.EncodeEntryToken(last.CreatedAt, last.EntryID)
		newToken = &token
	}
	return entries, newToken, nil
}

func (r *PgxAccountRepository) ListCommands(ctx context.Context, accountID string) ([]domain.AccountCommand, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT command_id, account_id, action, comment, created_by, created_at
		FROM account_commands
		WHERE account_id = $1
		ORDER BY created_at, command_id;
	`, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query commands of account %s: %w", accountID, err)
	}
	defer rows.Close()

	commands := []domain.AccountCommand{}
	for rows.Next() {
		var c domain.AccountCommand
		if err := rows.Scan(&c.CommandID, &c.AccountID, &c.Action, &c.Comment, &c.CreatedBy, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan account command: %w", err)
		}
		commands = append(commands, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read account commands: %w", err)
	}
	return commands, nil
}
