package pgsql

import (
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every postgres repository onto one pool.
func NewRepositoryProvider(dbPool DBPool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UnitOfWork:       newPgxUnitOfWork(dbPool),
		AccountRepo:      newPgxAccountRepository(dbPool),
		AccountTypeRepo:  newPgxAccountTypeRepository(dbPool),
		CurrencyRepo:     newPgxCurrencyRepository(dbPool),
		ExchangeRateRepo: newPgxExchangeRateRepository(dbPool),
		JournalRepo:      newPgxJournalRepository(dbPool),
		BalanceRepo:      newPgxBalanceRepository(dbPool),
		VoucherRepo:      newPgxVoucherRepository(dbPool),
	}
}
