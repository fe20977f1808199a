package domain_test

import (
	"testing"
	"time"

	"github.com/quillbooks/bookkeeping_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func TestParseDateRange(t *testing.T) {
	r, err := domain.ParseDateRange("2024-01-30..2024-02-02")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 30, 0, 0, 0, 0, time.UTC), r.Start)
	assert.Equal(t, time.Date(2024, 2, 2, 0, 0, 0, 0, time.UTC), r.End)

	days := r.Days()
	require.Len(t, days, 4) // inclusive on both ends, across the month boundary
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), days[2])
}

func TestParseDateRange_SingleDay(t *testing.T) {
	r, err := domain.ParseDateRange("2024-06-15..2024-06-15")
	require.NoError(t, err)
	assert.Len(t, r.Days(), 1)
	assert.True(t, r.Contains(time.Date(2024, 6, 15, 23, 59, 0, 0, time.UTC)))
	assert.False(t, r.Contains(time.Date(2024, 6, 16, 0, 0, 0, 0, time.UTC)))
}

func TestParseDateRange_Invalid(t *testing.T) {
	for _, s := range []string{
		"2024-01-01",
		"2024-01-01..",
		"..2024-01-01",
		"2024-01-02..2024-01-01",
		"20240101..20240102",
	} {
		_, err := domain.ParseDateRange(s)
		assert.Error(t, err, "input %q", s)
	}
}

func TestJournalEntryTotals(t *testing.T) {
	entry := domain.JournalEntry{
		Debtors: []domain.Posting{
			{AccountNumber: "7010", Amount: mustDecimal(t, "30.00")},
			{AccountNumber: "7020", Amount: mustDecimal(t, "20.00")},
		},
		Creditors: []domain.Posting{
			{AccountNumber: "8010", Amount: mustDecimal(t, "50.00")},
		},
	}
	assert.True(t, entry.DebtorTotal().Equal(mustDecimal(t, "50.00")))
	assert.True(t, entry.CreditorTotal().Equal(entry.DebtorTotal()))
}
