package pgsql

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/quillbooks/bookkeeping_app/internal/apperrors"
	"github.com/quillbooks/bookkeeping_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

const pgUniqueViolation = "23505"

// BaseRepository provides common functionality for all repositories.
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// Begin starts a new database transaction.
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to begin transaction: %v", apperrors.ErrInternal, err)
	}
	return tx, nil
}

// Commit commits a transaction.
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%w: failed to commit transaction: %v", apperrors.ErrInternal, err)
	}
	return nil
}

// Rollback rolls back a transaction. Safe to defer after a successful commit.
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) {
	_ = tx.Rollback(ctx)
}

// isUniqueViolation reports whether err is a Postgres unique-constraint error.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// querier is satisfied by both *pgxpool.Pool and pgx.Tx, so the total-chain
// walk below can run standalone or inside a larger unit of work.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// adjustLedgerTotalChain adds delta to the ledger's running total and walks the
// parent chain to the root, applying the same delta at every level. The chain is
// bounded by the tree depth; a missing ledger anywhere in it is an error because
// parents are required to exist.
func adjustLedgerTotalChain(ctx context.Context, q querier, ledgerID string, delta decimal.Decimal) error {
	current := ledgerID
	for current != "" {
		var parent *string
		err := q.QueryRow(ctx, `
			UPDATE ledgers
			SET total_value = total_value + $2
			WHERE ledger_id = $1
			RETURNING parent_ledger_id;
		`, current, delta).Scan(&parent)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("%w: ledger %s in total chain", apperrors.ErrNotFound, current)
			}
			return fmt.Errorf("failed to adjust total of ledger %s: %w", current, err)
		}
		if parent == nil {
			break
		}
		current = *parent
	}
	return nil
}

// lockAccountsForUpdate loads and row-locks the given accounts inside tx. The
// identifiers are locked in sorted order so concurrent postings touching the
// same accounts cannot deadlock each other.
func lockAccountsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error) {
	sorted := make([]string, len(accountIDs))
	copy(sorted, accountIDs)
	sort.Strings(sorted)

	rows, err := tx.Query(ctx, `
		SELECT `+accountColumns+`
		FROM accounts
		WHERE account_id = ANY($1)
		ORDER BY account_id
		FOR UPDATE;
	`, sorted)
	if err != nil {
		return nil, fmt.Errorf("failed to lock accounts: %w", err)
	}
	defer rows.Close()

	accounts := make(map[string]domain.Account, len(sorted))
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts[account.Identifier] = account
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read locked accounts: %w", err)
	}
	return accounts, nil
}

// nullableString maps "" to NULL for optional text columns.
func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
