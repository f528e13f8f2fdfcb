package pgsql

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_engine/internal/models"
	"github.com/SscSPs/ledger_engine/internal/utils/mapping"
)

const accountColumns = `account_id, workplace_id, code, name, name_en, account_type, type_code, sub_type,
	parent_account_id, level, is_active, allow_manual_entry, sub_system_id, description,
	created_at, created_by, last_updated_at, last_updated_by`

const accountCurrencyColumns = `workplace_id, account_id, currency_id, is_default`

// PgxAccountRepository implements the account and account-currency ports.
type PgxAccountRepository struct {
	BaseRepository
}

func newPgxAccountRepository(pool DBPool) *PgxAccountRepository {
	return &PgxAccountRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, workplaceID, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE workplace_id = $1 AND account_id = $2;`
	m, err := queryOne[models.Account](ctx, r.db(ctx), query, workplaceID, accountID)
	if err != nil {
		return nil, mapError(err, "account", accountID)
	}
	account := mapping.ToDomainAccount(m)
	return &account, nil
}

func (r *PgxAccountRepository) FindAccountByCode(ctx context.Context, workplaceID, code string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE workplace_id = $1 AND code = $2;`
	m, err := queryOne[models.Account](ctx, r.db(ctx), query, workplaceID, code)
	if err != nil {
		return nil, mapError(err, "account", code)
	}
	account := mapping.ToDomainAccount(m)
	return &account, nil
}

func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, workplaceID string, accountIDs []string) (map[string]domain.Account, error) {
	out := make(map[string]domain.Account, len(accountIDs))
	if len(accountIDs) == 0 {
		return out, nil
	}
	b := psql.Select(accountColumns).From("accounts").
		Where(sq.Eq{"workplace_id": workplaceID, "account_id": accountIDs})
	ms, err := queryBuilt[models.Account](ctx, r.db(ctx), b)
	if err != nil {
		return nil, fmt.Errorf("failed to find accounts: %w", err)
	}
	for _, m := range ms {
		out[m.AccountID] = mapping.ToDomainAccount(m)
	}
	return out, nil
}

// ListAccounts applies every non-nil filter field and orders by code.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, workplaceID string, filter domain.AccountFilter) ([]domain.Account, error) {
	b := psql.Select(accountColumns).From("accounts").
		Where(sq.Eq{"workplace_id": workplaceID}).
		OrderBy("code")
	if filter.AccountType != nil {
		b = b.Where(sq.Eq{"account_type": string(*filter.AccountType)})
	}
	if filter.TypeCode != nil {
		b = b.Where(sq.Eq{"type_code": *filter.TypeCode})
	}
	if filter.SubType != nil {
		b = b.Where(sq.Eq{"sub_type": string(*filter.SubType)})
	}
	if filter.SubSystemID != nil {
		b = b.Where(sq.Eq{"sub_system_id": *filter.SubSystemID})
	}
	if filter.ParentAccountID != nil {
		b = b.Where(sq.Eq{"parent_account_id": *filter.ParentAccountID})
	}
	if filter.ActiveOnly {
		b = b.Where(sq.Eq{"is_active": true})
	}
	ms, err := queryBuilt[models.Account](ctx, r.db(ctx), b)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	return mapping.ToDomainAccountSlice(ms), nil
}

func (r *PgxAccountRepository) HasChildAccounts(ctx context.Context, workplaceID, accountID string) (bool, error) {
	return exists(ctx, r.db(ctx),
		`SELECT EXISTS (SELECT 1 FROM accounts WHERE workplace_id = $1 AND parent_account_id = $2);`,
		workplaceID, accountID)
}

func (r *PgxAccountRepository) HasJournalLines(ctx context.Context, workplaceID, accountID string) (bool, error) {
	return exists(ctx, r.db(ctx),
		`SELECT EXISTS (SELECT 1 FROM journal_lines WHERE workplace_id = $1 AND account_id = $2);`,
		workplaceID, accountID)
}

func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
	`
	_, err := r.db(ctx).Exec(ctx, query,
		m.AccountID, m.WorkplaceID, m.Code, m.Name, m.NameEn, m.AccountType, m.TypeCode, m.SubType,
		m.ParentAccountID, m.Level, m.IsActive, m.AllowManualEntry, m.SubSystemID, m.Description,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	return mapError(err, "account", m.Code)
}

func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
		UPDATE accounts SET
			code = $3, name = $4, name_en = $5, type_code = $6, sub_type = $7, parent_account_id = $8,
			level = $9, is_active = $10, allow_manual_entry = $11, sub_system_id = $12, description = $13,
			last_updated_at = $14, last_updated_by = $15
		WHERE workplace_id = $1 AND account_id = $2;
	`
	tag, err := r.db(ctx).Exec(ctx, query,
		m.WorkplaceID, m.AccountID, m.Code, m.Name, m.NameEn, m.TypeCode, m.SubType, m.ParentAccountID,
		m.Level, m.IsActive, m.AllowManualEntry, m.SubSystemID, m.Description,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapError(err, "account", m.Code)
	}
	return requireAffected(tag, "account", m.AccountID)
}

// DeleteAccount relies on ON DELETE CASCADE to drop the account's currency links.
func (r *PgxAccountRepository) DeleteAccount(ctx context.Context, workplaceID, accountID string) error {
	tag, err := r.db(ctx).Exec(ctx, `DELETE FROM accounts WHERE workplace_id = $1 AND account_id = $2;`, workplaceID, accountID)
	if err != nil {
		return mapError(err, "account", accountID)
	}
	return requireAffected(tag, "account", accountID)
}

func (r *PgxAccountRepository) ListAccountCurrencies(ctx context.Context, workplaceID, accountID string) ([]domain.AccountCurrency, error) {
	links, err := r.ListAccountCurrenciesByAccounts(ctx, workplaceID, []string{accountID})
	if err != nil {
		return nil, err
	}
	return links[accountID], nil
}

func (r *PgxAccountRepository) ListAccountCurrenciesByAccounts(ctx context.Context, workplaceID string, accountIDs []string) (map[string][]domain.AccountCurrency, error) {
	out := make(map[string][]domain.AccountCurrency, len(accountIDs))
	if len(accountIDs) == 0 {
		return out, nil
	}
	b := psql.Select(accountCurrencyColumns).From("account_currencies").
		Where(sq.Eq{"workplace_id": workplaceID, "account_id": accountIDs}).
		OrderBy("account_id", "currency_id")
	ms, err := queryBuilt[models.AccountCurrency](ctx, r.db(ctx), b)
	if err != nil {
		return nil, fmt.Errorf("failed to query account currencies: %w", err)
	}
	for _, m := range ms {
		out[m.AccountID] = append(out[m.AccountID], mapping.ToDomainAccountCurrency(m))
	}
	return out, nil
}

func (r *PgxAccountRepository) SaveAccountCurrency(ctx context.Context, link domain.AccountCurrency) error {
	query := `INSERT INTO account_currencies (` + accountCurrencyColumns + `) VALUES ($1, $2, $3, $4);`
	_, err := r.db(ctx).Exec(ctx, query, link.WorkplaceID, link.AccountID, link.CurrencyID, link.IsDefault)
	return mapError(err, "account currency", link.AccountID+"/"+link.CurrencyID)
}

func (r *PgxAccountRepository) DeleteAccountCurrency(ctx context.Context, workplaceID, accountID, currencyID string) error {
	tag, err := r.db(ctx).Exec(ctx,
		`DELETE FROM account_currencies WHERE workplace_id = $1 AND account_id = $2 AND currency_id = $3;`,
		workplaceID, accountID, currencyID)
	if err != nil {
		return mapError(err, "account currency", accountID+"/"+currencyID)
	}
	return requireAffected(tag, "account currency", accountID+"/"+currencyID)
}
