package services

import (
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Currency = NewCurrencyService(repos.UnitOfWork, repos.CurrencyRepo)
	container.ExchangeRate = NewExchangeRateService(repos.ExchangeRateRepo, repos.CurrencyRepo)
	container.AccountType = NewAccountTypeService(repos.UnitOfWork, repos.AccountTypeRepo)
	container.Account = NewAccountService(
		repos.AccountRepo,
		WithAccountTypeCatalog(container.AccountType),
		WithAccountUnitOfWork(repos.UnitOfWork),
		WithCurrencyReader(repos.CurrencyRepo),
		WithBalanceReader(repos.BalanceRepo),
	)
	container.Journal = NewJournalService(
		repos.UnitOfWork,
		repos.JournalRepo,
		repos.AccountRepo,
		repos.CurrencyRepo,
		repos.BalanceRepo,
		container.ExchangeRate,
	)
	container.Operation = NewOperationService(
		repos.UnitOfWork,
		repos.VoucherRepo,
		repos.AccountRepo,
		repos.CurrencyRepo,
		container.ExchangeRate,
		container.Journal,
	)

	return container
}
