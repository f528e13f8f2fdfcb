package repositories

import (
	"context"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// CurrencyReader defines read operations for currency data
type CurrencyReader interface {
	// FindCurrencyByID retrieves a currency of the workplace by id.
	FindCurrencyByID(ctx context.Context, workplaceID, currencyID string) (*domain.Currency, error)

	// FindCurrencyByCode retrieves a currency of the workplace by its (upper-case) code.
	FindCurrencyByCode(ctx context.Context, workplaceID, code string) (*domain.Currency, error)

	// FindBaseCurrency retrieves the workplace's base currency.
	FindBaseCurrency(ctx context.Context, workplaceID string) (*domain.Currency, error)

	// FindCurrenciesByIDs retrieves several currencies keyed by id. Missing ids are absent from the map.
	FindCurrenciesByIDs(ctx context.Context, workplaceID string, currencyIDs []string) (map[string]domain.Currency, error)

	// ListCurrencies retrieves the workplace's currencies ordered by display order then name.
	ListCurrencies(ctx context.Context, workplaceID string, activeOnly bool) ([]domain.Currency, error)

	// IsCurrencyReferenced reports whether any account link, balance row, journal line or
	// exchange rate record references the currency.
	IsCurrencyReferenced(ctx context.Context, workplaceID, currencyID string) (bool, error)
}

// CurrencyWriter defines write operations for currency data
type CurrencyWriter interface {
	// SaveCurrency persists a new currency.
	SaveCurrency(ctx context.Context, currency domain.Currency) error

	// UpdateCurrency overwrites an existing currency.
	UpdateCurrency(ctx context.Context, currency domain.Currency) error

	// ClearBaseCurrency drops the base flag from every currency of the workplace except exceptID.
	ClearBaseCurrency(ctx context.Context, workplaceID, exceptID string) error

	// DeleteCurrency removes a currency.
	DeleteCurrency(ctx context.Context, workplaceID, currencyID string) error
}

// CurrencyRepositoryFacade combines all currency-related repository interfaces
// This is a facade for clients that need access to all operations
type CurrencyRepositoryFacade interface {
	CurrencyReader
	CurrencyWriter
}
