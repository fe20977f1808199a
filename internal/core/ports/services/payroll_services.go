package services

import (
	"context"

	"github.com/quillbooks/bookkeeping_app/internal/core/domain"
	"github.com/quillbooks/bookkeeping_app/internal/dto"
)

// PayrollSvcFacade translates payroll payments into balanced journal entries
// using the per-customer distribution configuration.
type PayrollSvcFacade interface {
	SetConfiguration(ctx context.Context, customerIdentifier string, req dto.PayrollConfigurationRequest, actor string) error
	GetConfiguration(ctx context.Context, customerIdentifier string) (*domain.PayrollConfiguration, error)
	DistributePayment(ctx context.Context, req dto.PayrollPaymentRequest, actor string) (*domain.JournalEntry, error)
}
