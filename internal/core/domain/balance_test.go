package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestBalanceDeltas_FoldsAndSorts(t *testing.T) {
	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	entry := domain.JournalEntry{
		EntryID:   "e1",
		EntryDate: date,
		Lines: []domain.JournalLine{
			{AccountID: "b", CurrencyID: "usd", CreditAmount: decimal.NewFromInt(30), CreditAmountBase: decimal.NewFromInt(30)},
			{AccountID: "a", CurrencyID: "usd", DebitAmount: decimal.NewFromInt(50), DebitAmountBase: decimal.NewFromInt(50)},
			{AccountID: "b", CurrencyID: "usd", CreditAmount: decimal.NewFromInt(20), CreditAmountBase: decimal.NewFromInt(20)},
		},
	}

	got := domain.BalanceDeltas(entry)

	want := []domain.BalanceDelta{
		{AccountID: "a", CurrencyID: "usd", Debit: decimal.NewFromInt(50), DebitBase: decimal.NewFromInt(50), EntryID: "e1", EntryDate: date},
		{AccountID: "b", CurrencyID: "usd", Credit: decimal.NewFromInt(50), CreditBase: decimal.NewFromInt(50), EntryID: "e1", EntryDate: date},
	}
	decimalEq := cmp.Comparer(func(x, y decimal.Decimal) bool { return x.Equal(y) })
	if diff := cmp.Diff(want, got, decimalEq); diff != "" {
		t.Errorf("BalanceDeltas mismatch (-want +got):\n%s", diff)
	}
}

func TestAccountBalance_Apply(t *testing.T) {
	var b domain.AccountBalance
	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	b.Apply(domain.BalanceDelta{Debit: decimal.NewFromInt(100), DebitBase: decimal.NewFromInt(375), EntryID: "e1", EntryDate: date})
	b.Apply(domain.BalanceDelta{Credit: decimal.NewFromInt(40), CreditBase: decimal.NewFromInt(150), EntryID: "e2", EntryDate: date})

	assert.True(t, b.CurrentBalance.Equal(decimal.NewFromInt(60)))
	assert.True(t, b.CurrentBalanceBase.Equal(decimal.NewFromInt(225)))
	assert.Equal(t, "e2", *b.LastEntryID)
}
