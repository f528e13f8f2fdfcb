package accounting

import (
	"fmt"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// NaturalSign returns the factor that turns a debit-minus-credit amount into
// an amount on the account type's normal side.
//
// ASSET/EXPENSE are debit-normal (+1).
// LIABILITY/EQUITY/REVENUE are credit-normal (-1).
func NaturalSign(accountType domain.AccountType) (decimal.Decimal, error) {
	switch accountType {
	case domain.Asset, domain.Expense:
		return decimal.NewFromInt(1), nil
	case domain.Liability, domain.Equity, domain.Revenue:
		return decimal.NewFromInt(-1), nil
	default:
		return decimal.Zero, fmt.Errorf("unknown account type '%s'", accountType)
	}
}

// NaturalBalance restates a stored balance (debit minus credit) on the
// account's normal side, so a liability holding more credits than debits
// reports a positive amount.
func NaturalBalance(accountType domain.AccountType, currentBalance decimal.Decimal) (decimal.Decimal, error) {
	sign, err := NaturalSign(accountType)
	if err != nil {
		return decimal.Zero, err
	}
	return currentBalance.Mul(sign), nil
}
