package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// ExchangeRateReader defines read operations for exchange rate data
type ExchangeRateReader interface {
	// FindExchangeRateByID retrieves a rate record by id.
	FindExchangeRateByID(ctx context.Context, workplaceID, rateID string) (*domain.ExchangeRate, error)

	// FindEffectiveRate returns the most recent active record for the ordered pair
	// that is in effect on asOf. Returns apperrors.ErrNotFound when none applies.
	FindEffectiveRate(ctx context.Context, workplaceID, fromCurrencyID, toCurrencyID string, asOf time.Time) (*domain.ExchangeRate, error)

	// ListExchangeRates lists the workplace's rate records, newest effective date first.
	ListExchangeRates(ctx context.Context, workplaceID string, filter domain.ExchangeRateFilter) ([]domain.ExchangeRate, error)
}

// ExchangeRateWriter defines write operations for exchange rate data
type ExchangeRateWriter interface {
	// SaveExchangeRate persists a new exchange rate.
	SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error

	// UpdateExchangeRate overwrites an existing rate record.
	UpdateExchangeRate(ctx context.Context, rate domain.ExchangeRate) error

	// DeleteExchangeRate removes a rate record.
	DeleteExchangeRate(ctx context.Context, workplaceID, rateID string) error
}

// ExchangeRateRepositoryFacade combines all exchange rate-related repository interfaces
// This is a facade for clients that need access to all operations
type ExchangeRateRepositoryFacade interface {
	ExchangeRateReader
	ExchangeRateWriter
}
