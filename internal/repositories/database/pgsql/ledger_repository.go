package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/quillbooks/bookkeeping_app/internal/apperrors"
	"github.com/quillbooks/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/quillbooks/bookkeeping_app/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

const ledgerColumns = `ledger_id, ledger_type, name, description, parent_ledger_id, total_value, show_accounts_in_chart, created_at, created_by, last_modified_at, last_modified_by`

type PgxLedgerRepository struct {
	BaseRepository
}

func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepository {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.LedgerRepository = (*PgxLedgerRepository)(nil)

func scanLedger(row pgx.Row) (domain.Ledger, error) {
	var l domain.Ledger
	var parent *string
	err := row.Scan(
		&l.Identifier, &l.Type, &l.Name, &l.Description, &parent, &l.TotalValue,
		&l.ShowAccountsInChart, &l.CreatedAt, &l.CreatedBy, &l.LastModifiedAt, &l.LastModifiedBy,
	)
	if err != nil {
		return domain.Ledger{}, err
	}
	l.ParentLedgerID = stringOrEmpty(parent)
	return l, nil
}

// SaveLedger inserts a new ledger with a zero running total.
func (r *PgxLedgerRepository) SaveLedger(ctx context.Context, ledger domain.Ledger) error {
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO ledgers (`+ledgerColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`,
		ledger.Identifier, ledger.Type, ledger.Name, ledger.Description,
		nullableString(ledger.ParentLedgerID), decimal.Zero, ledger.ShowAccountsInChart,
		ledger.CreatedAt, ledger.CreatedBy, ledger.LastModifiedAt, ledger.LastModifiedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: ledger %s", apperrors.ErrDuplicate, ledger.Identifier)
		}
		return fmt.Errorf("failed to insert ledger %s: %w", ledger.Identifier, err)
	}
	return nil
}

// UpdateLedger persists mutable ledger fields. The running total is owned by
// the posting path and the parent by ReparentLedger; neither is written here.
func (r *PgxLedgerRepository) UpdateLedger(ctx context.Context, ledger domain.Ledger) error {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE ledgers
		SET name = $2, description = $3, show_accounts_in_chart = $4,
		    last_modified_at = $5, last_modified_by = $6
		WHERE ledger_id = $1;
	`,
		ledger.Identifier, ledger.Name, ledger.Description,
		ledger.ShowAccountsInChart, ledger.LastModifiedAt, ledger.LastModifiedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update ledger %s: %w", ledger.Identifier, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: ledger %s", apperrors.ErrNotFound, ledger.Identifier)
	}
	return nil
}

// ReparentLedger moves a ledger under a new parent. The subtree total moves
// with it: the old parent chain is reduced and the new one increased by the
// total locked on the child row, all in one transaction.
func (r *PgxLedgerRepository) ReparentLedger(ctx context.Context, ledger domain.Ledger, previousParentID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	var total decimal.Decimal
	err = tx.QueryRow(ctx, `SELECT total_value FROM ledgers WHERE ledger_id = $1 FOR UPDATE;`, ledger.Identifier).Scan(&total)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: ledger %s", apperrors.ErrNotFound, ledger.Identifier)
		}
		return fmt.Errorf("failed to lock ledger %s: %w", ledger.Identifier, err)
	}

	_, err = tx.Exec(ctx, `
		UPDATE ledgers
		SET parent_ledger_id = $2, last_modified_at = $3, last_modified_by = $4
		WHERE ledger_id = $1;
	`, ledger.Identifier, nullableString(ledger.ParentLedgerID), ledger.LastModifiedAt, ledger.LastModifiedBy)
	if err != nil {
		return fmt.Errorf("failed to re-parent ledger %s: %w", ledger.Identifier, err)
	}

	if !total.IsZero() {
		if previousParentID != "" {
			if err := adjustLedgerTotalChain(ctx, tx, previousParentID, total.Neg()); err != nil {
				return err
			}
		}
		if err := adjustLedgerTotalChain(ctx, tx, ledger.ParentLedgerID, total); err != nil {
			return err
		}
	}
	return r.Commit(ctx, tx)
}

func (r *PgxLedgerRepository) FindLedgerByID(ctx context.Context, ledgerID string) (*domain.Ledger, error) {
	row := r.Pool.QueryRow(ctx, `SELECT `+ledgerColumns+` FROM ledgers WHERE ledger_id = $1;`, ledgerID)
	ledger, err := scanLedger(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: ledger %s", apperrors.ErrNotFound, ledgerID)
		}
		return nil, fmt.Errorf("failed to find ledger %s: %w", ledgerID, err)
	}
	return &ledger, nil
}

func (r *PgxLedgerRepository) listLedgers(ctx context.Context, query string, args ...any) ([]domain.Ledger, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledgers: %w", err)
	}
	defer rows.Close()

	ledgers := []domain.Ledger{}
	for rows.Next() {
		ledger, err := scanLedger(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger: %w", err)
		}
		ledgers = append(ledgers, ledger)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read ledgers: %w", err)
	}
	return ledgers, nil
}

func (r *PgxLedgerRepository) ListLedgers(ctx context.Context) ([]domain.Ledger, error) {
	return r.listLedgers(ctx, `SELECT `+ledgerColumns+` FROM ledgers ORDER BY ledger_id;`)
}

func (r *PgxLedgerRepository) ListSubLedgers(ctx context.Context, parentLedgerID string) ([]domain.Ledger, error) {
	return r.listLedgers(ctx, `SELECT `+ledgerColumns+` FROM ledgers WHERE parent_ledger_id = $1 ORDER BY ledger_id;`, parentLedgerID)
}

func (r *PgxLedgerRepository) HasSubLedgers(ctx context.Context, ledgerID string) (bool, error) {
	var exists bool
	err := r.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM ledgers WHERE parent_ledger_id = $1);`, ledgerID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check sub-ledgers of %s: %w", ledgerID, err)
	}
	return exists, nil
}

func (r *PgxLedgerRepository) DeleteLedger(ctx context.Context, ledgerID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM ledgers WHERE ledger_id = $1;`, ledgerID)
	if err != nil {
		return fmt.Errorf("failed to delete ledger %s: %w", ledgerID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: ledger %s", apperrors.ErrNotFound, ledgerID)
	}
	return nil
}

// BackfillLedgerTotals zeroes every total and rebuilds them from the current
// account balances, propagating each ledger's own sum up its parent chain.
func (r *PgxLedgerRepository) BackfillLedgerTotals(ctx context.Context) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `UPDATE ledgers SET total_value = 0;`); err != nil {
		return fmt.Errorf("failed to reset ledger totals: %w", err)
	}

	rows, err := tx.Query(ctx, `
		SELECT ledger_id, SUM(balance)
		FROM accounts
		GROUP BY ledger_id
		HAVING SUM(balance) <> 0;
	`)
	if err != nil {
		return fmt.Errorf("failed to sum account balances: %w", err)
	}

	type ledgerSum struct {
		ledgerID string
		total    decimal.Decimal
	}
	var sums []ledgerSum
	for rows.Next() {
		var s ledgerSum
		if err := rows.Scan(&s.ledgerID, &s.total); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan balance sum: %w", err)
		}
		sums = append(sums, s)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to read balance sums: %w", err)
	}

	for _, s := range sums {
		if err := adjustLedgerTotalChain(ctx, tx, s.ledgerID, s.total); err != nil {
			return err
		}
	}
	return r.Commit(ctx, tx)
}
