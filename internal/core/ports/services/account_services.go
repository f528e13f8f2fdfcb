package services

import (
	"context"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/dto"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account by its unique identifier.
	GetAccountByID(ctx context.Context, workplaceID, accountID string) (*domain.Account, error)

	// GetAccountDetails retrieves an account with its currency links and balances.
	GetAccountDetails(ctx context.Context, workplaceID, accountID string) (*domain.AccountDetails, error)

	// GetAccountBalances retrieves the balance rows of an account.
	GetAccountBalances(ctx context.Context, workplaceID, accountID string) ([]domain.AccountBalance, error)

	// ListAccounts retrieves the workplace's accounts matching filter.
	ListAccounts(ctx context.Context, workplaceID string, filter domain.AccountFilter) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for account data
type AccountWriterSvc interface {
	// CreateAccount persists a new account and its currency links.
	CreateAccount(ctx context.Context, workplaceID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error)

	// UpdateAccount updates an existing account's details.
	UpdateAccount(ctx context.Context, workplaceID, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error)

	// DeleteAccount removes an account with no children, balances or lines.
	DeleteAccount(ctx context.Context, workplaceID, accountID, userID string) error
}

// AccountCurrencySvc manages the currencies an account may transact in.
type AccountCurrencySvc interface {
	// AddAccountCurrency links a currency to the account.
	AddAccountCurrency(ctx context.Context, workplaceID, accountID string, req dto.AccountCurrencyInput, userID string) (*domain.AccountCurrency, error)

	// RemoveAccountCurrency unlinks a currency that has no balance row on the account.
	RemoveAccountCurrency(ctx context.Context, workplaceID, accountID, currencyID, userID string) error
}

// AccountSvcFacade combines all account-related service interfaces
// This is a facade for clients that need access to all operations
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
	AccountCurrencySvc
}
