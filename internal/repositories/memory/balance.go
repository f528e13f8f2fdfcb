package memory

import (
	"context"
	"sort"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

func (s *Store) FindBalance(ctx context.Context, workplaceID, accountID, currencyID string) (*domain.AccountBalance, error) {
	var out *domain.AccountBalance
	err := s.read(ctx, func(st *state) error {
		b, ok := st.balances[balanceKey{workplaceID, accountID, currencyID}]
		if !ok {
			return apperrors.NewNotFoundError("balance", accountID+"/"+currencyID)
		}
		out = &b
		return nil
	})
	return out, err
}

func (s *Store) ListBalancesByAccount(ctx context.Context, workplaceID, accountID string) ([]domain.AccountBalance, error) {
	var out []domain.AccountBalance
	err := s.read(ctx, func(st *state) error {
		for k, b := range st.balances {
			if k.workplaceID == workplaceID && k.accountID == accountID {
				out = append(out, b)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].CurrencyID < out[j].CurrencyID })
	return out, err
}

func (s *Store) HasBalancesForAccount(ctx context.Context, workplaceID, accountID string) (bool, error) {
	var found bool
	err := s.read(ctx, func(st *state) error {
		for k := range st.balances {
			if k.workplaceID == workplaceID && k.accountID == accountID {
				found = true
				return nil
			}
		}
		return nil
	})
	return found, err
}

func (s *Store) HasBalance(ctx context.Context, workplaceID, accountID, currencyID string) (bool, error) {
	var found bool
	err := s.read(ctx, func(st *state) error {
		_, found = st.balances[balanceKey{workplaceID, accountID, currencyID}]
		return nil
	})
	return found, err
}

// ApplyBalanceDeltas increments rows under the store's write lock.
func (s *Store) ApplyBalanceDeltas(ctx context.Context, workplaceID string, deltas []domain.BalanceDelta) error {
	return s.write(ctx, func(st *state) error {
		for _, d := range deltas {
			k := balanceKey{workplaceID, d.AccountID, d.CurrencyID}
			b, ok := st.balances[k]
			if !ok {
				b = domain.AccountBalance{WorkplaceID: workplaceID, AccountID: d.AccountID, CurrencyID: d.CurrencyID}
			}
			b.Apply(d)
			b.UpdatedAt = time.Now().UTC()
			st.balances[k] = b
		}
		return nil
	})
}
