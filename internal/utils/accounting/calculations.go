package accounting

import (
	"fmt"

	"github.com/quillbooks/bookkeeping_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SignedAmount applies the debit/credit rules of double-entry bookkeeping to a
// positive posting amount and returns the signed balance delta for the account.
// This is used by both the posting engine and the repositories so the convention
// lives in exactly one place.
//
// DEBIT to ASSET/EXPENSE -> positive (+)
// CREDIT to ASSET/EXPENSE -> negative (-)
// DEBIT to LIABILITY/EQUITY/REVENUE -> negative (-)
// CREDIT to LIABILITY/EQUITY/REVENUE -> positive (+)
func SignedAmount(side domain.EntrySide, accountType domain.LedgerType, amount decimal.Decimal) (decimal.Decimal, error) {
	isDebit := side == domain.Debit
	switch accountType {
	case domain.Asset, domain.Expense:
		if !isDebit {
			return amount.Neg(), nil
		}
	case domain.Liability, domain.Equity, domain.Revenue:
		if isDebit {
			return amount.Neg(), nil
		}
	default:
		return decimal.Zero, fmt.Errorf("unknown account type %q", accountType)
	}
	return amount, nil
}

// NormalBalanceSide returns the side on which an accounting category naturally
// increases: ASSET and EXPENSE ledgers are debit-normal, LIABILITY, EQUITY and
// REVENUE ledgers are credit-normal.
func NormalBalanceSide(t domain.LedgerType) domain.EntrySide {
	switch t {
	case domain.Asset, domain.Expense:
		return domain.Debit
	default:
		return domain.Credit
	}
}
