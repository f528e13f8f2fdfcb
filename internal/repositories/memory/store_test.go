package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCurrency(id, code string) domain.Currency {
	return domain.Currency{CurrencyID: id, WorkplaceID: "wp", Code: code, Name: code, IsActive: true, Precision: 2}
}

func TestWithinTx_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	s := New()
	require.NoError(t, s.SaveCurrency(ctx, testCurrency("c1", "SAR")))

	boom := errors.New("boom")
	err := s.WithinTx(ctx, func(ctx context.Context) error {
		require.NoError(t, s.SaveCurrency(ctx, testCurrency("c2", "USD")))
		require.NoError(t, s.DeleteCurrency(ctx, "wp", "c1"))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = s.FindCurrencyByID(ctx, "wp", "c1")
	assert.NoError(t, err, "deleted row restored")
	_, err = s.FindCurrencyByID(ctx, "wp", "c2")
	assert.ErrorIs(t, err, apperrors.ErrNotFound, "inserted row discarded")
}

func TestWithinTx_RollsBackOnPanic(t *testing.T) {
	ctx := context.Background()
	s := New()

	assert.Panics(t, func() {
		_ = s.WithinTx(ctx, func(ctx context.Context) error {
			_ = s.SaveCurrency(ctx, testCurrency("c1", "SAR"))
			panic("unexpected")
		})
	})

	list, err := s.ListCurrencies(ctx, "wp", false)
	require.NoError(t, err)
	assert.Empty(t, list)

	// The store stays usable after a panic.
	require.NoError(t, s.SaveCurrency(ctx, testCurrency("c1", "SAR")))
}

func TestWithinTx_NestedJoinsOuter(t *testing.T) {
	ctx := context.Background()
	s := New()

	err := s.WithinTx(ctx, func(ctx context.Context) error {
		inner := s.WithinTx(ctx, func(ctx context.Context) error {
			return s.SaveCurrency(ctx, testCurrency("c1", "SAR"))
		})
		require.NoError(t, inner)
		return errors.New("outer fails")
	})
	require.Error(t, err)

	_, err = s.FindCurrencyByID(ctx, "wp", "c1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound, "inner work rolls back with the outer unit")
}

func TestRead_DoesNotSeeUncommittedWrites(t *testing.T) {
	ctx := context.Background()
	s := New()
	written := make(chan struct{})
	release := make(chan struct{})
	txDone := make(chan error, 1)

	go func() {
		txDone <- s.WithinTx(ctx, func(ctx context.Context) error {
			if err := s.SaveCurrency(ctx, testCurrency("c1", "SAR")); err != nil {
				return err
			}
			close(written)
			<-release
			return errors.New("rolled back")
		})
	}()
	<-written

	readDone := make(chan error, 1)
	go func() {
		_, err := s.FindCurrencyByID(ctx, "wp", "c1")
		readDone <- err
	}()

	select {
	case err := <-readDone:
		t.Fatalf("read finished while a unit of work was open: %v", err)
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	require.Error(t, <-txDone)
	assert.ErrorIs(t, <-readDone, apperrors.ErrNotFound)
}

func TestCurrencyUniqueness(t *testing.T) {
	ctx := context.Background()
	s := New()
	base := testCurrency("c1", "SAR")
	base.IsBase = true
	require.NoError(t, s.SaveCurrency(ctx, base))

	err := s.SaveCurrency(ctx, testCurrency("c2", "SAR"))
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)

	second := testCurrency("c3", "EUR")
	second.IsBase = true
	assert.ErrorIs(t, s.SaveCurrency(ctx, second), apperrors.ErrDuplicate)

	require.NoError(t, s.ClearBaseCurrency(ctx, "wp", "c3"))
	require.NoError(t, s.SaveCurrency(ctx, second))
	got, err := s.FindBaseCurrency(ctx, "wp")
	require.NoError(t, err)
	assert.Equal(t, "c3", got.CurrencyID)
}

func TestApplyBalanceDeltas_Accumulates(t *testing.T) {
	ctx := context.Background()
	s := New()
	day := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	delta := domain.BalanceDelta{
		AccountID: "a1", CurrencyID: "c1",
		Debit: decimal.NewFromInt(10), DebitBase: decimal.NewFromInt(37),
		EntryID: "e1", EntryDate: day,
	}
	require.NoError(t, s.ApplyBalanceDeltas(ctx, "wp", []domain.BalanceDelta{delta}))
	delta.Debit, delta.DebitBase = decimal.Zero, decimal.Zero
	delta.Credit, delta.CreditBase = decimal.NewFromInt(4), decimal.NewFromInt(15)
	delta.EntryID = "e2"
	require.NoError(t, s.ApplyBalanceDeltas(ctx, "wp", []domain.BalanceDelta{delta}))

	row, err := s.FindBalance(ctx, "wp", "a1", "c1")
	require.NoError(t, err)
	assert.True(t, row.CurrentBalance.Equal(decimal.NewFromInt(6)))
	assert.True(t, row.CurrentBalanceBase.Equal(decimal.NewFromInt(22)))
	assert.Equal(t, "e2", *row.LastEntryID)

	_, err = s.FindBalance(ctx, "other", "a1", "c1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound, "rows are scoped by workplace")
}

func TestListEntries_KeysetPages(t *testing.T) {
	ctx := context.Background()
	s := New()
	day := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	for _, id := range []string{"e1", "e2", "e3"} {
		require.NoError(t, s.SaveEntry(ctx, domain.JournalEntry{
			EntryID: id, WorkplaceID: "wp", EntryNumber: "N-" + id, EntryDate: day, Status: domain.Draft,
		}))
	}

	page, next, err := s.ListEntries(ctx, "wp", domain.JournalEntryFilter{Limit: 2})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "e3", page[0].EntryID, "same date falls back to id desc")
	assert.Equal(t, "e2", page[1].EntryID)
	require.NotNil(t, next)

	page, next, err = s.ListEntries(ctx, "wp", domain.JournalEntryFilter{Limit: 2, NextToken: next})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "e1", page[0].EntryID)
	assert.Nil(t, next)

	bad := "%%%"
	_, _, err = s.ListEntries(ctx, "wp", domain.JournalEntryFilter{Limit: 2, NextToken: &bad})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestSaveVoucher_UniquePerType(t *testing.T) {
	ctx := context.Background()
	s := New()
	v := domain.Voucher{VoucherID: "v1", WorkplaceID: "wp", VoucherType: domain.VoucherReceipt, VoucherNumber: "1"}
	require.NoError(t, s.SaveVoucher(ctx, v))

	v.VoucherID = "v2"
	assert.ErrorIs(t, s.SaveVoucher(ctx, v), apperrors.ErrDuplicate)

	v.VoucherType = domain.VoucherPayment
	assert.NoError(t, s.SaveVoucher(ctx, v))
}
