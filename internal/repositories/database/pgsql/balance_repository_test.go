package pgsql

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

func TestApplyBalanceDeltaQuery_IncrementsExistingRow(t *testing.T) {
	assert.Contains(t, queryApplyBalanceDelta, "ON CONFLICT (workplace_id, account_id, currency_id) DO UPDATE SET")
	for _, column := range []string{
		"debit_balance", "credit_balance", "current_balance",
		"debit_balance_base", "credit_balance_base", "current_balance_base",
	} {
		assert.Contains(t, queryApplyBalanceDelta, "account_balances."+column+" + EXCLUDED."+column,
			"%s must be incremented, not overwritten", column)
	}
}

func testDeltas() []domain.BalanceDelta {
	day := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	return []domain.BalanceDelta{
		{
			AccountID: "acc-cash", CurrencyID: "cur-usd",
			Debit: decimal.NewFromInt(100), Credit: decimal.Zero,
			DebitBase: decimal.NewFromInt(375), CreditBase: decimal.Zero,
			EntryID: "e-1", EntryDate: day,
		},
		{
			AccountID: "acc-revenue", CurrencyID: "cur-usd",
			Debit: decimal.Zero, Credit: decimal.NewFromInt(100),
			DebitBase: decimal.Zero, CreditBase: decimal.NewFromInt(375),
			EntryID: "e-1", EntryDate: day,
		},
	}
}

func TestApplyBalanceDeltas_UpsertsEachPairInOrder(t *testing.T) {
	mock := newMockPool(t)
	repo := newPgxBalanceRepository(mock)
	deltas := testDeltas()

	for _, d := range deltas {
		mock.ExpectExec(regexp.QuoteMeta(queryApplyBalanceDelta)).
			WithArgs("wp-1", d.AccountID, d.CurrencyID,
				d.Debit, d.Credit, d.DebitBase, d.CreditBase,
				d.EntryDate, d.EntryID, pgxmock.AnyArg()).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
	}

	require.NoError(t, repo.ApplyBalanceDeltas(context.Background(), "wp-1", deltas))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyBalanceDeltas_StopsAtFirstFailure(t *testing.T) {
	mock := newMockPool(t)
	repo := newPgxBalanceRepository(mock)
	deltas := testDeltas()

	mock.ExpectExec(regexp.QuoteMeta(queryApplyBalanceDelta)).
		WithArgs("wp-1", deltas[0].AccountID, deltas[0].CurrencyID,
			deltas[0].Debit, deltas[0].Credit, deltas[0].DebitBase, deltas[0].CreditBase,
			deltas[0].EntryDate, deltas[0].EntryID, pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: pgForeignKeyViolation, ConstraintName: "account_balances_account_id_fkey"})

	err := repo.ApplyBalanceDeltas(context.Background(), "wp-1", deltas)

	assert.ErrorIs(t, err, apperrors.ErrIntegrity)
	assert.NoError(t, mock.ExpectationsWereMet(), "the second delta is never sent")
}

func TestApplyBalanceDeltas_JoinsTheUnitOfWork(t *testing.T) {
	mock := newMockPool(t)
	uow := newPgxUnitOfWork(mock)
	repo := newPgxBalanceRepository(mock)
	d := testDeltas()[0]

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(queryApplyBalanceDelta)).
		WithArgs("wp-1", d.AccountID, d.CurrencyID,
			d.Debit, d.Credit, d.DebitBase, d.CreditBase,
			d.EntryDate, d.EntryID, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	err := uow.WithinTx(context.Background(), func(ctx context.Context) error {
		return repo.ApplyBalanceDeltas(ctx, "wp-1", []domain.BalanceDelta{d})
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
