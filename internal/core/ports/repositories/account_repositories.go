package repositories

import (
	"context"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves a specific account of the workplace.
	FindAccountByID(ctx context.Context, workplaceID, accountID string) (*domain.Account, error)

	// FindAccountByCode retrieves an account by its code.
	FindAccountByCode(ctx context.Context, workplaceID, code string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts keyed by id. Missing ids are absent from the map.
	FindAccountsByIDs(ctx context.Context, workplaceID string, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves the workplace's accounts matching filter, ordered by code.
	ListAccounts(ctx context.Context, workplaceID string, filter domain.AccountFilter) ([]domain.Account, error)

	// HasChildAccounts reports whether any account has accountID as parent.
	HasChildAccounts(ctx context.Context, workplaceID, accountID string) (bool, error)

	// HasJournalLines reports whether any journal line references the account.
	HasJournalLines(ctx context.Context, workplaceID, accountID string) (bool, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount updates an existing account's details.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// DeleteAccount removes an account and its currency links.
	DeleteAccount(ctx context.Context, workplaceID, accountID string) error
}

// AccountCurrencyStore manages the currencies an account may transact in.
type AccountCurrencyStore interface {
	// ListAccountCurrencies returns the links of one account.
	ListAccountCurrencies(ctx context.Context, workplaceID, accountID string) ([]domain.AccountCurrency, error)

	// ListAccountCurrenciesByAccounts returns links for several accounts keyed by account id.
	ListAccountCurrenciesByAccounts(ctx context.Context, workplaceID string, accountIDs []string) (map[string][]domain.AccountCurrency, error)

	// SaveAccountCurrency adds a link. Returns apperrors.ErrDuplicate if it exists.
	SaveAccountCurrency(ctx context.Context, link domain.AccountCurrency) error

	// DeleteAccountCurrency removes a link.
	DeleteAccountCurrency(ctx context.Context, workplaceID, accountID, currencyID string) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
// This is a facade for clients that need access to all operations
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountCurrencyStore
}
