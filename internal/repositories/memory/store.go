// Package memory provides an in-memory implementation of the repository ports,
// used for development (STORAGE_DRIVER=memory) and as the datastore of service tests.
package memory

import (
	"context"
	"sync"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
)

type accountCurrencyKey struct{ workplaceID, accountID, currencyID string }

type balanceKey struct{ workplaceID, accountID, currencyID string }

type state struct {
	currencies        map[string]domain.Currency
	rates             map[string]domain.ExchangeRate
	accounts          map[string]domain.Account
	accountTypes      map[string]domain.AccountTypeDefinition
	accountCurrencies map[accountCurrencyKey]domain.AccountCurrency
	entries           map[string]domain.JournalEntry // headers, without lines
	lines             map[string][]domain.JournalLine
	balances          map[balanceKey]domain.AccountBalance
	vouchers          map[string]domain.Voucher
}

func newState() state {
	return state{
		currencies:        make(map[string]domain.Currency),
		rates:             make(map[string]domain.ExchangeRate),
		accounts:          make(map[string]domain.Account),
		accountTypes:      make(map[string]domain.AccountTypeDefinition),
		accountCurrencies: make(map[accountCurrencyKey]domain.AccountCurrency),
		entries:           make(map[string]domain.JournalEntry),
		lines:             make(map[string][]domain.JournalLine),
		balances:          make(map[balanceKey]domain.AccountBalance),
		vouchers:          make(map[string]domain.Voucher),
	}
}

func (st state) clone() state {
	c := newState()
	for k, v := range st.currencies {
		c.currencies[k] = v
	}
	for k, v := range st.rates {
		c.rates[k] = v
	}
	for k, v := range st.accounts {
		c.accounts[k] = v
	}
	for k, v := range st.accountTypes {
		c.accountTypes[k] = v
	}
	for k, v := range st.accountCurrencies {
		c.accountCurrencies[k] = v
	}
	for k, v := range st.entries {
		c.entries[k] = v
	}
	for k, v := range st.lines {
		c.lines[k] = append([]domain.JournalLine(nil), v...)
	}
	for k, v := range st.balances {
		c.balances[k] = v
	}
	for k, v := range st.vouchers {
		c.vouchers[k] = v
	}
	return c
}

// Store keeps all ledger data in maps guarded by a RWMutex. Units of work are
// serialised by txMu and roll back by restoring a snapshot taken at their start.
type Store struct {
	txMu sync.Mutex
	mu   sync.RWMutex
	st   state
}

// New constructs an empty in-memory store.
func New() *Store {
	return &Store{st: newState()}
}

// NewRepositoryProvider exposes the store through every repository port.
func NewRepositoryProvider(s *Store) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UnitOfWork:       s,
		AccountRepo:      s,
		AccountTypeRepo:  s,
		CurrencyRepo:     s,
		ExchangeRateRepo: s,
		JournalRepo:      s,
		BalanceRepo:      s,
		VoucherRepo:      s,
	}
}

var (
	_ portsrepo.UnitOfWork                   = (*Store)(nil)
	_ portsrepo.AccountRepositoryFacade      = (*Store)(nil)
	_ portsrepo.AccountTypeRepositoryFacade  = (*Store)(nil)
	_ portsrepo.CurrencyRepositoryFacade     = (*Store)(nil)
	_ portsrepo.ExchangeRateRepositoryFacade = (*Store)(nil)
	_ portsrepo.JournalRepositoryFacade      = (*Store)(nil)
	_ portsrepo.BalanceRepositoryFacade      = (*Store)(nil)
	_ portsrepo.VoucherRepositoryFacade      = (*Store)(nil)
)

type txKey struct{}

func inTx(ctx context.Context) bool {
	_, ok := ctx.Value(txKey{}).(bool)
	return ok
}

// WithinTx implements portsrepo.UnitOfWork.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if inTx(ctx) {
		return fn(ctx)
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	snapshot := s.st.clone()
	s.mu.RUnlock()

	defer func() {
		if p := recover(); p != nil {
			s.restore(snapshot)
			panic(p)
		}
		if err != nil {
			s.restore(snapshot)
		}
	}()

	return fn(context.WithValue(ctx, txKey{}, true))
}

func (s *Store) restore(snapshot state) {
	s.mu.Lock()
	s.st = snapshot
	s.mu.Unlock()
}

// read runs fn with a consistent view of the data. Outside a unit of work it
// waits for any running unit of work, so uncommitted writes are never visible.
func (s *Store) read(ctx context.Context, fn func(st *state) error) error {
	if !inTx(ctx) {
		s.txMu.Lock()
		defer s.txMu.Unlock()
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(&s.st)
}

// write runs fn exclusively. Outside a unit of work it also waits for any running
// unit of work so that a rollback never discards unrelated writes.
func (s *Store) write(ctx context.Context, fn func(st *state) error) error {
	if !inTx(ctx) {
		s.txMu.Lock()
		defer s.txMu.Unlock()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(&s.st)
}
