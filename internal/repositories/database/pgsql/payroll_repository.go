package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/quillbooks/bookkeeping_app/internal/apperrors"
	"github.com/quillbooks/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/quillbooks/bookkeeping_app/internal/core/ports/repositories"
)

type PgxPayrollRepository struct {
	BaseRepository
}

func newPgxPayrollRepository(pool *pgxpool.Pool) portsrepo.PayrollRepository {
	return &PgxPayrollRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PayrollRepository = (*PgxPayrollRepository)(nil)

// SaveConfiguration upserts the customer's distribution rules; setting a
// configuration always replaces the previous one whole.
func (r *PgxPayrollRepository) SaveConfiguration(ctx context.Context, configuration domain.PayrollConfiguration) error {
	allocationsJSON, err := json.Marshal(configuration.Allocations)
	if err != nil {
		return fmt.Errorf("failed to encode allocations for customer %s: %w", configuration.CustomerIdentifier, err)
	}

	_, err = r.Pool.Exec(ctx, `
		INSERT INTO payroll_configurations (customer_identifier, main_account_number, allocations, created_at, created_by, last_modified_at, last_modified_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (customer_identifier) DO UPDATE
		SET main_account_number = EXCLUDED.main_account_number,
		    allocations = EXCLUDED.allocations,
		    last_modified_at = EXCLUDED.last_modified_at,
		    last_modified_by = EXCLUDED.last_modified_by;
	`,
		configuration.CustomerIdentifier, configuration.MainAccountNumber, allocationsJSON,
		configuration.CreatedAt, configuration.CreatedBy, configuration.LastModifiedAt, configuration.LastModifiedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to store payroll configuration for customer %s: %w", configuration.CustomerIdentifier, err)
	}
	return nil
}

func (r *PgxPayrollRepository) FindConfigurationByCustomer(ctx context.Context, customerIdentifier string) (*domain.PayrollConfiguration, error) {
	var c domain.PayrollConfiguration
	var allocationsJSON []byte
	err := r.Pool.QueryRow(ctx, `
		SELECT customer_identifier, main_account_number, allocations, created_at, created_by, last_modified_at, last_modified_by
		FROM payroll_configurations
		WHERE customer_identifier = $1;
	`, customerIdentifier).Scan(
		&c.CustomerIdentifier, &c.MainAccountNumber, &allocationsJSON,
		&c.CreatedAt, &c.CreatedBy, &c.LastModifiedAt, &c.LastModifiedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: payroll configuration for customer %s", apperrors.ErrNotFound, customerIdentifier)
		}
		return nil, fmt.Errorf("failed to find payroll configuration for customer %s: %w", customerIdentifier, err)
	}
	if err := json.Unmarshal(allocationsJSON, &c.Allocations); err != nil {
		return nil, fmt.Errorf("failed to decode allocations for customer %s: %w", customerIdentifier, err)
	}
	return &c, nil
}
