package repositories

import (
	"context"

	"github.com/quillbooks/bookkeeping_app/internal/core/domain"
)

// PayrollRepository stores the per-customer payroll distribution rules consumed
// by the payroll-to-journal-entry translation.
type PayrollRepository interface {
	// SaveConfiguration inserts or replaces the configuration for a customer.
	SaveConfiguration(ctx context.Context, configuration domain.PayrollConfiguration) error

	// FindConfigurationByCustomer returns apperrors.ErrNotFound when the customer
	// has no configuration.
	FindConfigurationByCustomer(ctx context.Context, customerIdentifier string) (*domain.PayrollConfiguration, error)
}
