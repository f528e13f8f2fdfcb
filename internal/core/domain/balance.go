package domain

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// AccountBalance is the running total for one (account, currency) pair.
// Amounts are kept both in the pair's currency and in the workplace's base currency.
// The row is a cache: it can always be recomputed from posted lines.
type AccountBalance struct {
	WorkplaceID         string          `json:"workplaceID"`
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
	UpdatedAt           time.Time       `json:"updatedAt"`
}

// Apply adds a delta to the running totals and recomputes current balances.
func (b *AccountBalance) Apply(d BalanceDelta) {
	b.DebitBalance = b.DebitBalance.Add(d.Debit)
	b.CreditBalance = b.CreditBalance.Add(d.Credit)
	b.CurrentBalance = b.DebitBalance.Sub(b.CreditBalance)
	b.DebitBalanceBase = b.DebitBalanceBase.Add(d.DebitBase)
	b.CreditBalanceBase = b.CreditBalanceBase.Add(d.CreditBase)
	b.CurrentBalanceBase = b.DebitBalanceBase.Sub(b.CreditBalanceBase)
	date := d.EntryDate
	entryID := d.EntryID
	b.LastTransactionDate = &date
	b.LastEntryID = &entryID
}

// BalanceDelta is the change one posted entry makes to one (account, currency) pair.
type BalanceDelta struct {
	AccountID  string
	CurrencyID string
	Debit      decimal.Decimal
	Credit     decimal.Decimal
	DebitBase  decimal.Decimal
	CreditBase decimal.Decimal
	EntryID    string
	EntryDate  time.Time
}

// BalanceDeltas folds an entry's lines into one delta per (account, currency),
// sorted by account then currency so that row locks are always taken in the same order.
func BalanceDeltas(entry JournalEntry) []BalanceDelta {
	type key struct{ account, currency string }
	byKey := make(map[key]*BalanceDelta)
	for _, l := range entry.Lines {
		k := key{l.AccountID, l.CurrencyID}
		d, ok := byKey[k]
		if !ok {
			d = &BalanceDelta{
				AccountID:  l.AccountID,
				CurrencyID: l.CurrencyID,
				EntryID:    entry.EntryID,
				EntryDate:  entry.EntryDate,
			}
			byKey[k] = d
		}
		d.Debit = d.Debit.Add(l.DebitAmount)
		d.Credit = d.Credit.Add(l.CreditAmount)
		d.DebitBase = d.DebitBase.Add(l.DebitAmountBase)
		d.CreditBase = d.CreditBase.Add(l.CreditAmountBase)
	}
	deltas := make([]BalanceDelta, 0, len(byKey))
	for _, d := range byKey {
		deltas = append(deltas, *d)
	}
	sort.Slice(deltas, func(i, j int) bool {
		if deltas[i].AccountID != deltas[j].AccountID {
			return deltas[i].AccountID < deltas[j].AccountID
		}
		return deltas[i].CurrencyID < deltas[j].CurrencyID
	})
	return deltas
}

// BalanceReconciliation compares a stored balance row with a replay of posted lines.
type BalanceReconciliation struct {
	AccountID           string          `json:"accountID"`
	CurrencyID          string          `json:"currencyID"`
	StoredBalance       decimal.Decimal `json:"storedBalance"`
	ReplayedBalance     decimal.Decimal `json:"replayedBalance"`
	StoredBalanceBase   decimal.Decimal `json:"storedBalanceBase"`
	ReplayedBalanceBase decimal.Decimal `json:"replayedBalanceBase"`
	InSync              bool            `json:"inSync"`
}
