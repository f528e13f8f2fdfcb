package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_engine/internal/models"
	"github.com/SscSPs/ledger_engine/internal/utils/mapping"
)

const balanceColumns = `workplace_id, account_id, currency_id,
	debit_balance, credit_balance, current_balance,
	debit_balance_base, credit_balance_base, current_balance_base,
	last_transaction_date, last_entry_id, updated_at`

// Each statement adds its delta to the existing row, so concurrent posters never
// overwrite each other; the row lock is held until the surrounding transaction ends.
const queryApplyBalanceDelta = `
	INSERT INTO account_balances (` + balanceColumns + `)
	VALUES ($1, $2, $3, $4::numeric, $5::numeric, $4::numeric - $5::numeric,
		$6::numeric, $7::numeric, $6::numeric - $7::numeric, $8, $9, $10)
	ON CONFLICT (workplace_id, account_id, currency_id) DO UPDATE SET
		debit_balance        = account_balances.debit_balance + EXCLUDED.debit_balance,
		credit_balance       = account_balances.credit_balance + EXCLUDED.credit_balance,
		current_balance      = account_balances.current_balance + EXCLUDED.current_balance,
		debit_balance_base   = account_balances.debit_balance_base + EXCLUDED.debit_balance_base,
		credit_balance_base  = account_balances.credit_balance_base + EXCLUDED.credit_balance_base,
		current_balance_base = account_balances.current_balance_base + EXCLUDED.current_balance_base,
		last_transaction_date = EXCLUDED.last_transaction_date,
		last_entry_id        = EXCLUDED.last_entry_id,
		updated_at           = EXCLUDED.updated_at;
`

// PgxBalanceRepository implements the balance store.
type PgxBalanceRepository struct {
	BaseRepository
}

func newPgxBalanceRepository(pool DBPool) *PgxBalanceRepository {
	return &PgxBalanceRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.BalanceRepositoryFacade = (*PgxBalanceRepository)(nil)

func (r *PgxBalanceRepository) FindBalance(ctx context.Context, workplaceID, accountID, currencyID string) (*domain.AccountBalance, error) {
	query := `SELECT ` + balanceColumns + ` FROM account_balances
		WHERE workplace_id = $1 AND account_id = $2 AND currency_id = $3;`
	m, err := queryOne[models.AccountBalance](ctx, r.db(ctx), query, workplaceID, accountID, currencyID)
	if err != nil {
		return nil, mapError(err, "balance", accountID+"/"+currencyID)
	}
	b := mapping.ToDomainAccountBalance(m)
	return &b, nil
}

func (r *PgxBalanceRepository) ListBalancesByAccount(ctx context.Context, workplaceID, accountID string) ([]domain.AccountBalance, error) {
	query := `SELECT ` + balanceColumns + ` FROM account_balances
		WHERE workplace_id = $1 AND account_id = $2 ORDER BY currency_id;`
	rows, err := r.db(ctx).Query(ctx, query, workplaceID, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query balances of account %s: %w", accountID, err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.AccountBalance])
	if err != nil {
		return nil, fmt.Errorf("failed to scan balances of account %s: %w", accountID, err)
	}
	out := make([]domain.AccountBalance, len(ms))
	for i, m := range ms {
		out[i] = mapping.ToDomainAccountBalance(m)
	}
	return out, nil
}

func (r *PgxBalanceRepository) HasBalancesForAccount(ctx context.Context, workplaceID, accountID string) (bool, error) {
	return exists(ctx, r.db(ctx),
		`SELECT EXISTS (SELECT 1 FROM account_balances WHERE workplace_id = $1 AND account_id = $2);`,
		workplaceID, accountID)
}

func (r *PgxBalanceRepository) HasBalance(ctx context.Context, workplaceID, accountID, currencyID string) (bool, error) {
	return exists(ctx, r.db(ctx),
		`SELECT EXISTS (SELECT 1 FROM account_balances WHERE workplace_id = $1 AND account_id = $2 AND currency_id = $3);`,
		workplaceID, accountID, currencyID)
}

// ApplyBalanceDeltas upserts one row per delta. Deltas arrive sorted by
// (account, currency), which keeps lock order identical across transactions.
func (r *PgxBalanceRepository) ApplyBalanceDeltas(ctx context.Context, workplaceID string, deltas []domain.BalanceDelta) error {
	now := time.Now().UTC()
	q := r.db(ctx)
	for _, d := range deltas {
		_, err := q.Exec(ctx, queryApplyBalanceDelta,
			workplaceID, d.AccountID, d.CurrencyID,
			d.Debit, d.Credit, d.DebitBase, d.CreditBase,
			d.EntryDate, d.EntryID, now,
		)
		if err != nil {
			return mapError(err, "balance", d.AccountID+"/"+d.CurrencyID)
		}
	}
	return nil
}
