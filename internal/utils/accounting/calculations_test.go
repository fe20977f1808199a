package accounting_test

import (
	"testing"

	"github.com/quillbooks/bookkeeping_app/internal/core/domain"
	"github.com/quillbooks/bookkeeping_app/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignedAmount(t *testing.T) {
	amount := decimal.RequireFromString("50.00")

	tests := []struct {
		name        string
		side        domain.EntrySide
		accountType domain.LedgerType
		want        string
	}{
		{"debit asset increases", domain.Debit, domain.Asset, "50.00"},
		{"credit asset decreases", domain.Credit, domain.Asset, "-50.00"},
		{"debit expense increases", domain.Debit, domain.Expense, "50.00"},
		{"credit expense decreases", domain.Credit, domain.Expense, "-50.00"},
		{"debit liability decreases", domain.Debit, domain.Liability, "-50.00"},
		{"credit liability increases", domain.Credit, domain.Liability, "50.00"},
		{"debit equity decreases", domain.Debit, domain.Equity, "-50.00"},
		{"credit equity increases", domain.Credit, domain.Equity, "50.00"},
		{"debit revenue decreases", domain.Debit, domain.Revenue, "-50.00"},
		{"credit revenue increases", domain.Credit, domain.Revenue, "50.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := accounting.SignedAmount(tt.side, tt.accountType, amount)
			require.NoError(t, err)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s, want %s", got, tt.want)
		})
	}
}

func TestSignedAmount_UnknownType(t *testing.T) {
	_, err := accounting.SignedAmount(domain.Debit, domain.LedgerType("BOGUS"), decimal.NewFromInt(1))
	require.Error(t, err)
}

func TestNormalBalanceSide(t *testing.T) {
	assert.Equal(t, domain.Debit, accounting.NormalBalanceSide(domain.Asset))
	assert.Equal(t, domain.Debit, accounting.NormalBalanceSide(domain.Expense))
	assert.Equal(t, domain.Credit, accounting.NormalBalanceSide(domain.Liability))
	assert.Equal(t, domain.Credit, accounting.NormalBalanceSide(domain.Equity))
	assert.Equal(t, domain.Credit, accounting.NormalBalanceSide(domain.Revenue))
}
