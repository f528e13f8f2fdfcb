package pgsql

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want []error
	}{
		{"no rows", pgx.ErrNoRows, []error{apperrors.ErrNotFound}},
		{"unique violation", &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "uq_currencies_workplace_code"},
			[]error{apperrors.ErrDuplicate, apperrors.ErrValidation}},
		{"foreign key violation", &pgconn.PgError{Code: pgForeignKeyViolation}, []error{apperrors.ErrIntegrity}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapError(tt.err, "currency", "USD")
			for _, want := range tt.want {
				assert.ErrorIs(t, got, want)
			}
		})
	}

	t.Run("other errors are wrapped", func(t *testing.T) {
		cause := errors.New("connection reset")
		got := mapError(cause, "currency", "USD")
		assert.ErrorIs(t, got, cause)
		assert.NotErrorIs(t, got, apperrors.ErrNotFound)
	})

	assert.NoError(t, mapError(nil, "currency", "USD"))
}

func TestRequireAffected(t *testing.T) {
	assert.ErrorIs(t, requireAffected(pgconn.NewCommandTag("DELETE 0"), "voucher", "v-1"), apperrors.ErrNotFound)
	assert.NoError(t, requireAffected(pgconn.NewCommandTag("DELETE 1"), "voucher", "v-1"))
}

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func TestWithinTx_CommitsAndJoinsNestedCalls(t *testing.T) {
	mock := newMockPool(t)
	uow := newPgxUnitOfWork(mock)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM vouchers")).
		WithArgs("wp-1", "v-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectCommit()

	vouchers := newPgxVoucherRepository(mock)
	err := uow.WithinTx(ctx, func(ctx context.Context) error {
		return uow.WithinTx(ctx, func(ctx context.Context) error {
			return vouchers.DeleteVoucher(ctx, "wp-1", "v-1")
		})
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet(), "one BEGIN and one COMMIT for the nested calls")
}

func TestWithinTx_RollsBackOnError(t *testing.T) {
	mock := newMockPool(t)
	uow := newPgxUnitOfWork(mock)
	boom := errors.New("voucher insert failed")

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := uow.WithinTx(context.Background(), func(ctx context.Context) error {
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithinTx_RollsBackOnPanic(t *testing.T) {
	mock := newMockPool(t)
	uow := newPgxUnitOfWork(mock)

	mock.ExpectBegin()
	mock.ExpectRollback()

	assert.Panics(t, func() {
		_ = uow.WithinTx(context.Background(), func(ctx context.Context) error {
			panic("unexpected")
		})
	})
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithinTx_ReportsBeginAndCommitFailures(t *testing.T) {
	mock := newMockPool(t)
	uow := newPgxUnitOfWork(mock)
	ctx := context.Background()

	mock.ExpectBegin().WillReturnError(errors.New("too many connections"))
	called := false
	err := uow.WithinTx(ctx, func(ctx context.Context) error {
		called = true
		return nil
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to begin transaction")
	assert.False(t, called)

	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(errors.New("serialization failure"))
	err = uow.WithinTx(ctx, func(ctx context.Context) error { return nil })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to commit transaction")

	assert.NoError(t, mock.ExpectationsWereMet())
}
