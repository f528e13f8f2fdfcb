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

const currencyColumns = `currency_id, workplace_id, code, name, name_en, symbol, is_base, is_active,
	precision, display_order, current_rate, min_rate, max_rate, notes,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxCurrencyRepository struct {
	BaseRepository
}

// newPgxCurrencyRepository creates a new repository for currency data.
func newPgxCurrencyRepository(pool DBPool) *PgxCurrencyRepository {
	return &PgxCurrencyRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.CurrencyRepositoryFacade = (*PgxCurrencyRepository)(nil)

func (r *PgxCurrencyRepository) findOne(ctx context.Context, kind, ref, where string, args ...any) (*domain.Currency, error) {
	query := `SELECT ` + currencyColumns + ` FROM currencies WHERE ` + where
	m, err := queryOne[models.Currency](ctx, r.db(ctx), query, args...)
	if err != nil {
		return nil, mapError(err, kind, ref)
	}
	c := mapping.ToDomainCurrency(m)
	return &c, nil
}

// FindCurrencyByID retrieves a currency of the workplace by id.
func (r *PgxCurrencyRepository) FindCurrencyByID(ctx context.Context, workplaceID, currencyID string) (*domain.Currency, error) {
	return r.findOne(ctx, "currency", currencyID, `workplace_id = $1 AND currency_id = $2`, workplaceID, currencyID)
}

// FindCurrencyByCode retrieves a currency by its code.
func (r *PgxCurrencyRepository) FindCurrencyByCode(ctx context.Context, workplaceID, code string) (*domain.Currency, error) {
	return r.findOne(ctx, "currency", code, `workplace_id = $1 AND code = $2`, workplaceID, code)
}

// FindBaseCurrency retrieves the workplace's base currency.
func (r *PgxCurrencyRepository) FindBaseCurrency(ctx context.Context, workplaceID string) (*domain.Currency, error) {
	return r.findOne(ctx, "base currency of workplace", workplaceID, `workplace_id = $1 AND is_base`, workplaceID)
}

func (r *PgxCurrencyRepository) FindCurrenciesByIDs(ctx context.Context, workplaceID string, currencyIDs []string) (map[string]domain.Currency, error) {
	out := make(map[string]domain.Currency, len(currencyIDs))
	if len(currencyIDs) == 0 {
		return out, nil
	}
	b := psql.Select(currencyColumns).From("currencies").
		Where(sq.Eq{"workplace_id": workplaceID, "currency_id": currencyIDs})
	ms, err := queryBuilt[models.Currency](ctx, r.db(ctx), b)
	if err != nil {
		return nil, fmt.Errorf("failed to find currencies: %w", err)
	}
	for _, m := range ms {
		out[m.CurrencyID] = mapping.ToDomainCurrency(m)
	}
	return out, nil
}

// ListCurrencies retrieves the workplace's currencies ordered by display order then name.
func (r *PgxCurrencyRepository) ListCurrencies(ctx context.Context, workplaceID string, activeOnly bool) ([]domain.Currency, error) {
	b := psql.Select(currencyColumns).From("currencies").
		Where(sq.Eq{"workplace_id": workplaceID}).
		OrderBy("display_order", "name")
	if activeOnly {
		b = b.Where(sq.Eq{"is_active": true})
	}
	ms, err := queryBuilt[models.Currency](ctx, r.db(ctx), b)
	if err != nil {
		return nil, fmt.Errorf("failed to query currencies: %w", err)
	}
	return mapping.ToDomainCurrencySlice(ms), nil
}

func (r *PgxCurrencyRepository) IsCurrencyReferenced(ctx context.Context, workplaceID, currencyID string) (bool, error) {
	query := `
		SELECT EXISTS (SELECT 1 FROM account_currencies WHERE workplace_id = $1 AND currency_id = $2)
			OR EXISTS (SELECT 1 FROM account_balances WHERE workplace_id = $1 AND currency_id = $2)
			OR EXISTS (SELECT 1 FROM journal_lines WHERE workplace_id = $1 AND currency_id = $2)
			OR EXISTS (SELECT 1 FROM exchange_rates WHERE workplace_id = $1 AND (from_currency_id = $2 OR to_currency_id = $2));
	`
	found, err := exists(ctx, r.db(ctx), query, workplaceID, currencyID)
	if err != nil {
		return false, fmt.Errorf("failed to check references of currency %s: %w", currencyID, err)
	}
	return found, nil
}

// SaveCurrency inserts a new currency.
func (r *PgxCurrencyRepository) SaveCurrency(ctx context.Context, currency domain.Currency) error {
	m := mapping.ToModelCurrency(currency)
	query := `
		INSERT INTO currencies (` + currencyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
	`
	_, err := r.db(ctx).Exec(ctx, query,
		m.CurrencyID, m.WorkplaceID, m.Code, m.Name, m.NameEn, m.Symbol, m.IsBase, m.IsActive,
		m.Precision, m.DisplayOrder, m.CurrentRate, m.MinRate, m.MaxRate, m.Notes,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	return mapError(err, "currency", m.Code)
}

func (r *PgxCurrencyRepository) UpdateCurrency(ctx context.Context, currency domain.Currency) error {
	m := mapping.ToModelCurrency(currency)
	query := `
		UPDATE currencies SET
			code = $3, name = $4, name_en = $5, symbol = $6, is_base = $7, is_active = $8,
			precision = $9, display_order = $10, current_rate = $11, min_rate = $12, max_rate = $13,
			notes = $14, last_updated_at = $15, last_updated_by = $16
		WHERE workplace_id = $1 AND currency_id = $2;
	`
	tag, err := r.db(ctx).Exec(ctx, query,
		m.WorkplaceID, m.CurrencyID, m.Code, m.Name, m.NameEn, m.Symbol, m.IsBase, m.IsActive,
		m.Precision, m.DisplayOrder, m.CurrentRate, m.MinRate, m.MaxRate,
		m.Notes, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapError(err, "currency", m.Code)
	}
	return requireAffected(tag, "currency", m.CurrencyID)
}

// ClearBaseCurrency must run before a new base is written, because of the
// one-base-per-workplace partial unique index.
func (r *PgxCurrencyRepository) ClearBaseCurrency(ctx context.Context, workplaceID, exceptID string) error {
	query := `UPDATE currencies SET is_base = FALSE WHERE workplace_id = $1 AND is_base AND currency_id <> $2;`
	if _, err := r.db(ctx).Exec(ctx, query, workplaceID, exceptID); err != nil {
		return fmt.Errorf("failed to clear base currency of workplace %s: %w", workplaceID, err)
	}
	return nil
}

func (r *PgxCurrencyRepository) DeleteCurrency(ctx context.Context, workplaceID, currencyID string) error {
	tag, err := r.db(ctx).Exec(ctx, `DELETE FROM currencies WHERE workplace_id = $1 AND currency_id = $2;`, workplaceID, currencyID)
	if err != nil {
		return mapError(err, "currency", currencyID)
	}
	return requireAffected(tag, "currency", currencyID)
}
