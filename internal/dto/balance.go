package dto

import (
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceResponse defines the data returned for one (account, currency) balance.
type BalanceResponse struct {
	AccountID           string          `json:"accountID"`
	CurrencyID          string          `json:"currencyID"`
	DebitBalance        decimal.Decimal `json:"debitBalance"`
	CreditBalance       decimal.Decimal `json:"creditBalance"`
	CurrentBalance      decimal.Decimal `json:"currentBalance"`
	DebitBalanceBase    decimal.Decimal `json:"debitBalanceBase"`
	CreditBalanceBase   decimal.Decimal `json:"creditBalanceBase"`
	CurrentBalanceBase  decimal.Decimal `json:"currentBalanceBase"`
	LastTransactionDate *time.Time      `json:"lastTransactionDate,omitempty"`
	LastEntryID         *string         `json:"lastEntryID,omitempty"`

	// Set on account detail responses: the balance on the account's normal side.
	NaturalBalance     *decimal.Decimal `json:"naturalBalance,omitempty"`
	NaturalBalanceBase *decimal.Decimal `json:"naturalBalanceBase,omitempty"`
}

// ToBalanceResponses converts balance rows to response DTOs.
func ToBalanceResponses(balances []domain.AccountBalance) []BalanceResponse {
	res := make([]BalanceResponse, len(balances))
	for i, b := range balances {
		res[i] = BalanceResponse{
			AccountID:           b.AccountID,
			CurrencyID:          b.CurrencyID,
			DebitBalance:        b.DebitBalance,
			CreditBalance:       b.CreditBalance,
			CurrentBalance:      b.CurrentBalance,
			DebitBalanceBase:    b.DebitBalanceBase,
			CreditBalanceBase:   b.CreditBalanceBase,
			CurrentBalanceBase:  b.CurrentBalanceBase,
			LastTransactionDate: b.LastTransactionDate,
			LastEntryID:         b.LastEntryID,
		}
	}
	return res
}

// ReconcileBalanceParams identifies the pair to reconcile.
type ReconcileBalanceParams struct {
	AccountID  string `form:"accountId" binding:"required"`
	CurrencyID string `form:"currencyId" binding:"required"`
}
