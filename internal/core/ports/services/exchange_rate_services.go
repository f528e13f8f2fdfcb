package services

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/shopspring/decimal"
)

// ExchangeRateReaderSvc defines read operations for exchange rate records
type ExchangeRateReaderSvc interface {
	// GetExchangeRate retrieves a rate record by id.
	GetExchangeRate(ctx context.Context, workplaceID, rateID string) (*domain.ExchangeRate, error)

	// ListExchangeRates lists all rate records of the workplace.
	ListExchangeRates(ctx context.Context, workplaceID string, activeOnly bool) ([]domain.ExchangeRate, error)

	// ListCurrentExchangeRates lists the active records in effect on asOf.
	ListCurrentExchangeRates(ctx context.Context, workplaceID string, asOf time.Time) ([]domain.ExchangeRate, error)

	// ListExchangeRatesForCurrency lists records quoted from the given currency.
	ListExchangeRatesForCurrency(ctx context.Context, workplaceID, currencyID string) ([]domain.ExchangeRate, error)
}

// ExchangeRateWriterSvc defines write operations for exchange rate records
type ExchangeRateWriterSvc interface {
	// CreateExchangeRate persists a new rate record.
	CreateExchangeRate(ctx context.Context, workplaceID string, req dto.CreateExchangeRateRequest, userID string) (*domain.ExchangeRate, error)

	// UpdateExchangeRate applies a partial update to a rate record.
	UpdateExchangeRate(ctx context.Context, workplaceID, rateID string, req dto.UpdateExchangeRateRequest, userID string) (*domain.ExchangeRate, error)

	// DeleteExchangeRate removes a rate record.
	DeleteExchangeRate(ctx context.Context, workplaceID, rateID, userID string) error
}

// RateResolverSvc resolves conversion rates between currencies.
type RateResolverSvc interface {
	// ResolveRate returns the rate converting 1 unit of from into to on asOf.
	// Returns apperrors.ErrRateUnavailable when no rate can be determined.
	ResolveRate(ctx context.Context, workplaceID, fromCurrencyID, toCurrencyID string, asOf time.Time) (*domain.ResolvedRate, error)

	// RateToBase returns the rate converting currencyID into the base currency.
	// explicit, when set, overrides lookup for non-base currencies. The result is
	// checked against the currency's configured bounds.
	RateToBase(ctx context.Context, workplaceID, currencyID string, asOf time.Time, explicit *decimal.Decimal) (decimal.Decimal, error)
}

// ExchangeRateSvcFacade combines all exchange rate-related service interfaces
type ExchangeRateSvcFacade interface {
	ExchangeRateReaderSvc
	ExchangeRateWriterSvc
	RateResolverSvc
}
