package pgsql

import (
	"context"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

func accountTypeColumnNames() []string {
	parts := strings.Split(accountTypeColumns, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

func accountTypeRow(typeID, code string, order int, subSystemID *string) []any {
	at := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	return []any{
		typeID, "wp-1", code, "Type " + code, nil, nil, "ASSET",
		nil, nil, order, true, false, subSystemID,
		at, "user-1", at, "user-1",
	}
}

func TestListAccountTypes_KeepsSharedEntriesForSubSystem(t *testing.T) {
	mock := newMockPool(t)
	repo := newPgxAccountTypeRepository(mock)
	retail := "retail"

	mock.ExpectQuery(regexp.QuoteMeta(
		"FROM account_types WHERE workplace_id = $1 AND is_active = $2 AND (sub_system_id = $3 OR sub_system_id IS NULL) ORDER BY display_order, name")).
		WithArgs("wp-1", true, "retail").
		WillReturnRows(pgxmock.NewRows(accountTypeColumnNames()).
			AddRow(accountTypeRow("t-1", "TILLS", 10, nil)...).
			AddRow(accountTypeRow("t-2", "POS_FLOATS", 11, &retail)...))

	defs, err := repo.ListAccountTypes(context.Background(), "wp-1", domain.AccountTypeFilter{SubSystemID: &retail})

	require.NoError(t, err)
	require.Len(t, defs, 2)
	assert.Nil(t, defs[0].SubSystemID)
	assert.Equal(t, domain.Asset, defs[1].Classification)
	require.NotNil(t, defs[1].SubSystemID)
	assert.Equal(t, "retail", *defs[1].SubSystemID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveAccountType_DuplicateCode(t *testing.T) {
	mock := newMockPool(t)
	repo := newPgxAccountTypeRepository(mock)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO account_types")).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "uq_account_types_workplace_code"})

	err := repo.SaveAccountType(context.Background(), domain.AccountTypeDefinition{
		TypeID: "t-9", WorkplaceID: "wp-1", TypeCode: "TILLS", Name: "Tills", Classification: domain.Asset,
	})

	assert.ErrorIs(t, err, apperrors.ErrDuplicate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIsAccountTypeInUse(t *testing.T) {
	mock := newMockPool(t)
	repo := newPgxAccountTypeRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta("FROM accounts WHERE workplace_id = $1 AND type_code = $2")).
		WithArgs("wp-1", "TILLS").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	inUse, err := repo.IsAccountTypeInUse(context.Background(), "wp-1", "TILLS")

	require.NoError(t, err)
	assert.True(t, inUse)
	assert.NoError(t, mock.ExpectationsWereMet())
}
