package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountBalance is a row of the account_balances table, keyed by
// (workplace_id, account_id, currency_id).
type AccountBalance struct {
	WorkplaceID         string          `db:"workplace_id"`
	AccountID           string          `db:"account_id"`
	CurrencyID          string          `db:"currency_id"`
	DebitBalance        decimal.Decimal `db:"debit_balance"`
	CreditBalance       decimal.Decimal `db:"credit_balance"`
	CurrentBalance      decimal.Decimal `db:"current_balance"`
	DebitBalanceBase    decimal.Decimal `db:"debit_balance_base"`
	CreditBalanceBase   decimal.Decimal `db:"credit_balance_base"`
	CurrentBalanceBase  decimal.Decimal `db:"current_balance_base"`
	LastTransactionDate *time.Time      `db:"last_transaction_date"`
	LastEntryID         *string         `db:"last_entry_id"`
	UpdatedAt           time.Time       `db:"updated_at"`
}
