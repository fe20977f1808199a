package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/quillbooks/bookkeeping_app/internal/apperrors"
	"github.com/quillbooks/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/quillbooks/bookkeeping_app/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

const journalColumns = `transaction_identifier, transaction_date, transaction_type, clerk, note, message, debtors, creditors, amount, state, created_at, created_by, last_modified_at, last_modified_by`

type PgxJournalRepository struct {
	BaseRepository
}

func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepository {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.JournalRepository = (*PgxJournalRepository)(nil)

func scanJournalEntry(row pgx.Row) (domain.JournalEntry, error) {
	var e domain.JournalEntry
	var debtorsJSON, creditorsJSON []byte
	var amount decimal.Decimal
	err := row.Scan(
		&e.TransactionIdentifier, &e.TransactionDate, &e.TransactionType, &e.Clerk, &e.Note, &e.Message,
		&debtorsJSON, &creditorsJSON, &amount, &e.State,
		&e.CreatedAt, &e.CreatedBy, &e.LastModifiedAt, &e.LastModifiedBy,
	)
	if err != nil {
		return domain.JournalEntry{}, err
	}
	if err := json.Unmarshal(debtorsJSON, &e.Debtors); err != nil {
		return domain.JournalEntry{}, fmt.Errorf("failed to decode debtors of entry %s: %w", e.TransactionIdentifier, err)
	}
	if err := json.Unmarshal(creditorsJSON, &e.Creditors); err != nil {
		return domain.JournalEntry{}, fmt.Errorf("failed to decode creditors of entry %s: %w", e.TransactionIdentifier, err)
	}
	return e, nil
}

// SaveJournalEntry persists a new PENDING entry. The debtor total is stored in a
// dedicated column so amount filters don't have to unpack the posting sets.
func (r *PgxJournalRepository) SaveJournalEntry(ctx context.Context, entry domain.JournalEntry) error {
	debtorsJSON, err := json.Marshal(entry.Debtors)
	if err != nil {
		return fmt.Errorf("failed to encode debtors of entry %s: %w", entry.TransactionIdentifier, err)
	}
	creditorsJSON, err := json.Marshal(entry.Creditors)
	if err != nil {
		return fmt.Errorf("failed to encode creditors of entry %s: %w", entry.TransactionIdentifier, err)
	}

	_, err = r.Pool.Exec(ctx, `
		INSERT INTO journal_entries (`+journalColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`,
		entry.TransactionIdentifier, entry.TransactionDate, entry.TransactionType, entry.Clerk,
		entry.Note, entry.Message, debtorsJSON, creditorsJSON, entry.DebtorTotal(), entry.State,
		entry.CreatedAt, entry.CreatedBy, entry.LastModifiedAt, entry.LastModifiedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: journal entry %s", apperrors.ErrDuplicate, entry.TransactionIdentifier)
		}
		return fmt.Errorf("failed to insert journal entry %s: %w", entry.TransactionIdentifier, err)
	}
	return nil
}

func (r *PgxJournalRepository) FindJournalEntry(ctx context.Context, transactionIdentifier string) (*domain.JournalEntry, error) {
	row := r.Pool.QueryRow(ctx, `SELECT `+journalColumns+` FROM journal_entries WHERE transaction_identifier = $1;`, transactionIdentifier)
	entry, err := scanJournalEntry(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: journal entry %s", apperrors.ErrNotFound, transactionIdentifier)
		}
		return nil, fmt.Errorf("failed to find journal entry %s: %w", transactionIdentifier, err)
	}
	return &entry, nil
}

// FetchJournalEntries scans the enumerated calendar days of the range. The
// account filter matches entries where the account appears on either side; the
// amount filter bounds the debtor total.
func (r *PgxJournalRepository) FetchJournalEntries(ctx context.Context, dateRange domain.DateRange, accountFilter string, amountFilter *domain.AmountRange) ([]domain.JournalEntry, error) {
	query := `SELECT ` + journalColumns + ` FROM journal_entries WHERE transaction_date = ANY($1::date[])`
	args := []any{dateRange.Days()}

	if accountFilter != "" {
		// Postings carry an amount, so containment is probed on the account
		// number key alone.
		probe, err := json.Marshal([]map[string]string{{"accountNumber": accountFilter}})
		if err != nil {
			return nil, fmt.Errorf("failed to encode account filter: %w", err)
		}
		args = append(args, probe)
		query += fmt.Sprintf(` AND (debtors @> $%d::jsonb OR creditors @> $%d::jsonb)`, len(args), len(args))
	}
	if amountFilter != nil {
		args = append(args, amountFilter.From, amountFilter.To)
		query += fmt.Sprintf(` AND amount BETWEEN $%d AND $%d`, len(args)-1, len(args))
	}
	query += ` ORDER BY transaction_date, created_at, transaction_identifier;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal entries: %w", err)
	}
	defer rows.Close()

	entries := []domain.JournalEntry{}
	for rows.Next() {
		entry, err := scanJournalEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read journal entries: %w", err)
	}
	return entries, nil
}

// ApplyPosting is the posting unit of work. In one transaction it:
//
//  1. flips the entry PENDING -> PROCESSED, bailing out when another trigger
//     already did (the idempotence guard for at-least-once delivery),
//  2. row-locks the touched accounts in sorted identifier order,
//  3. applies each movement's delta to its account's running balance and
//     appends a movement record carrying the post-movement balance,
//  4. propagates the per-ledger delta sums up every total chain.
func (r *PgxJournalRepository) ApplyPosting(ctx context.Context, entry domain.JournalEntry, movements []domain.Movement) (bool, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer r.Rollback(ctx, tx)

	now := time.Now().UTC()

	tag, err := tx.Exec(ctx, `
		UPDATE journal_entries
		SET state = $2, last_modified_at = $3, last_modified_by = $4
		WHERE transaction_identifier = $1 AND state = $5;
	`, entry.TransactionIdentifier, domain.Processed, now, entry.CreatedBy, domain.Pending)
	if err != nil {
		return false, fmt.Errorf("failed to flip state of entry %s: %w", entry.TransactionIdentifier, err)
	}
	if tag.RowsAffected() == 0 {
		return false, nil
	}

	accountIDs := make([]string, 0, len(movements))
	seen := make(map[string]bool, len(movements))
	for _, m := range movements {
		if !seen[m.AccountID] {
			seen[m.AccountID] = true
			accountIDs = append(accountIDs, m.AccountID)
		}
	}

	locked, err := lockAccountsForUpdate(ctx, tx, accountIDs)
	if err != nil {
		return false, err
	}
	for _, id := range accountIDs {
		if _, ok := locked[id]; !ok {
			return false, fmt.Errorf("%w: account %s while posting entry %s", apperrors.ErrNotFound, id, entry.TransactionIdentifier)
		}
	}

	runningBalances := make(map[string]decimal.Decimal, len(locked))
	for id, account := range locked {
		runningBalances[id] = account.Balance
	}
	ledgerDeltas := make(map[string]decimal.Decimal)
	var ledgerOrder []string

	batch := &pgx.Batch{}
	for _, m := range movements {
		balance := runningBalances[m.AccountID].Add(m.Delta)
		runningBalances[m.AccountID] = balance

		batch.Queue(`
			INSERT INTO account_entries (`+accountEntryColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
		`,
			uuid.NewString(), m.AccountID, m.Side, m.Amount, balance,
			entry.Message, entry.TransactionDate, now, entry.CreatedBy,
		)

		if _, ok := ledgerDeltas[m.LedgerID]; !ok {
			ledgerOrder = append(ledgerOrder, m.LedgerID)
		}
		ledgerDeltas[m.LedgerID] = ledgerDeltas[m.LedgerID].Add(m.Delta)
	}
	for _, id := range accountIDs {
		batch.Queue(`
			UPDATE accounts
			SET balance = $2, last_modified_at = $3, last_modified_by = $4
			WHERE account_id = $1;
		`, id, runningBalances[id], now, entry.CreatedBy)
	}

	results := tx.SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return false, fmt.Errorf("failed to apply movements of entry %s: %w", entry.TransactionIdentifier, err)
		}
	}
	if err := results.Close(); err != nil {
		return false, fmt.Errorf("failed to close movement batch of entry %s: %w", entry.TransactionIdentifier, err)
	}

	for _, ledgerID := range ledgerOrder {
		delta := ledgerDeltas[ledgerID]
		if delta.IsZero() {
			continue
		}
		if err := adjustLedgerTotalChain(ctx, tx, ledgerID, delta); err != nil {
			return false, err
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return false, err
	}
	return true, nil
}
