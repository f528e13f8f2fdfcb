package services

import (
	"context"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/dto"
)

// CurrencyReaderSvc defines read operations for currency data
type CurrencyReaderSvc interface {
	// GetCurrencyByID retrieves a specific currency of the workplace.
	GetCurrencyByID(ctx context.Context, workplaceID, currencyID string) (*domain.Currency, error)

	// GetBaseCurrency retrieves the workplace's base currency.
	GetBaseCurrency(ctx context.Context, workplaceID string) (*domain.Currency, error)

	// ListCurrencies retrieves the workplace's currencies.
	ListCurrencies(ctx context.Context, workplaceID string, activeOnly bool) ([]domain.Currency, error)
}

// CurrencyWriterSvc defines write operations for currency data
type CurrencyWriterSvc interface {
	// CreateCurrency persists a new currency. Setting IsBase replaces any prior base.
	CreateCurrency(ctx context.Context, workplaceID string, req dto.CreateCurrencyRequest, userID string) (*domain.Currency, error)

	// UpdateCurrency applies a partial update.
	UpdateCurrency(ctx context.Context, workplaceID, currencyID string, req dto.UpdateCurrencyRequest, userID string) (*domain.Currency, error)

	// DeleteCurrency removes a currency that is neither base nor referenced.
	DeleteCurrency(ctx context.Context, workplaceID, currencyID, userID string) error
}

// CurrencySvcFacade combines all currency-related service interfaces
type CurrencySvcFacade interface {
	CurrencyReaderSvc
	CurrencyWriterSvc
}
