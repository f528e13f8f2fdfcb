package pgsql

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_engine/internal/models"
	"github.com/SscSPs/ledger_engine/internal/utils/mapping"
)

const exchangeRateColumns = `rate_id, workplace_id, from_currency_id, to_currency_id, rate,
	effective_date, expiry_date, source, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

// Newest effective record first; ties go to the most recently created.
const exchangeRateOrder = "effective_date DESC, created_at DESC, rate_id DESC"

type PgxExchangeRateRepository struct {
	BaseRepository
}

func newPgxExchangeRateRepository(pool DBPool) *PgxExchangeRateRepository {
	return &PgxExchangeRateRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ExchangeRateRepositoryFacade = (*PgxExchangeRateRepository)(nil)

func (r *PgxExchangeRateRepository) FindExchangeRateByID(ctx context.Context, workplaceID, rateID string) (*domain.ExchangeRate, error) {
	query := `SELECT ` + exchangeRateColumns + ` FROM exchange_rates WHERE workplace_id = $1 AND rate_id = $2;`
	m, err := queryOne[models.ExchangeRate](ctx, r.db(ctx), query, workplaceID, rateID)
	if err != nil {
		return nil, mapError(err, "exchange rate", rateID)
	}
	rate := mapping.ToDomainExchangeRate(m)
	return &rate, nil
}

// FindEffectiveRate returns the newest active record for the ordered pair in effect on asOf.
func (r *PgxExchangeRateRepository) FindEffectiveRate(ctx context.Context, workplaceID, fromCurrencyID, toCurrencyID string, asOf time.Time) (*domain.ExchangeRate, error) {
	query := `
		SELECT ` + exchangeRateColumns + `
		FROM exchange_rates
		WHERE workplace_id = $1 AND from_currency_id = $2 AND to_currency_id = $3
			AND is_active AND effective_date <= $4
			AND (expiry_date IS NULL OR expiry_date >= $4)
		ORDER BY ` + exchangeRateOrder + `
		LIMIT 1;
	`
	m, err := queryOne[models.ExchangeRate](ctx, r.db(ctx), query, workplaceID, fromCurrencyID, toCurrencyID, asOf)
	if err != nil {
		return nil, mapError(err, "exchange rate", fromCurrencyID+"->"+toCurrencyID)
	}
	rate := mapping.ToDomainExchangeRate(m)
	return &rate, nil
}

func (r *PgxExchangeRateRepository) ListExchangeRates(ctx context.Context, workplaceID string, filter domain.ExchangeRateFilter) ([]domain.ExchangeRate, error) {
	b := psql.Select(exchangeRateColumns).From("exchange_rates").
		Where(sq.Eq{"workplace_id": workplaceID}).
		OrderBy(exchangeRateOrder)
	if filter.ActiveOnly {
		b = b.Where(sq.Eq{"is_active": true})
	}
	if filter.AsOf != nil {
		b = b.Where(sq.Eq{"is_active": true}).
			Where(sq.LtOrEq{"effective_date": *filter.AsOf}).
			Where(sq.Or{sq.Eq{"expiry_date": nil}, sq.GtOrEq{"expiry_date": *filter.AsOf}})
	}
	if filter.FromCurrencyID != nil {
		b = b.Where(sq.Eq{"from_currency_id": *filter.FromCurrencyID})
	}
	ms, err := queryBuilt[models.ExchangeRate](ctx, r.db(ctx), b)
	if err != nil {
		return nil, fmt.Errorf("failed to query exchange rates: %w", err)
	}
	return mapping.ToDomainExchangeRateSlice(ms), nil
}

// SaveExchangeRate inserts a new rate record.
func (r *PgxExchangeRateRepository) SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error {
	m := mapping.ToModelExchangeRate(rate)
	query := `
		INSERT INTO exchange_rates (` + exchangeRateColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.db(ctx).Exec(ctx, query,
		m.RateID, m.WorkplaceID, m.FromCurrencyID, m.ToCurrencyID, m.Rate,
		m.EffectiveDate, m.ExpiryDate, m.Source, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	return mapError(err, "exchange rate", m.RateID)
}

func (r *PgxExchangeRateRepository) UpdateExchangeRate(ctx context.Context, rate domain.ExchangeRate) error {
	m := mapping.ToModelExchangeRate(rate)
	query := `
		UPDATE exchange_rates SET
			rate = $3, effective_date = $4, expiry_date = $5, source = $6, is_active = $7,
			last_updated_at = $8, last_updated_by = $9
		WHERE workplace_id = $1 AND rate_id = $2;
	`
	tag, err := r.db(ctx).Exec(ctx, query,
		m.WorkplaceID, m.RateID, m.Rate, m.EffectiveDate, m.ExpiryDate, m.Source, m.IsActive,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapError(err, "exchange rate", m.RateID)
	}
	return requireAffected(tag, "exchange rate", m.RateID)
}

func (r *PgxExchangeRateRepository) DeleteExchangeRate(ctx context.Context, workplaceID, rateID string) error {
	tag, err := r.db(ctx).Exec(ctx, `DELETE FROM exchange_rates WHERE workplace_id = $1 AND rate_id = $2;`, workplaceID, rateID)
	if err != nil {
		return mapError(err, "exchange rate", rateID)
	}
	return requireAffected(tag, "exchange rate", rateID)
}
