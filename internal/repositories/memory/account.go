package memory

import (
	"context"
	"sort"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

func (s *Store) FindAccountByID(ctx context.Context, workplaceID, accountID string) (*domain.Account, error) {
	var out *domain.Account
	err := s.read(ctx, func(st *state) error {
		a, ok := st.accounts[accountID]
		if !ok || a.WorkplaceID != workplaceID {
			return apperrors.NewNotFoundError("account", accountID)
		}
		out = &a
		return nil
	})
	return out, err
}

func (s *Store) FindAccountByCode(ctx context.Context, workplaceID, code string) (*domain.Account, error) {
	var out *domain.Account
	err := s.read(ctx, func(st *state) error {
		for _, a := range st.accounts {
			if a.WorkplaceID == workplaceID && a.Code == code {
				out = &a
				return nil
			}
		}
		return apperrors.NewNotFoundError("account", code)
	})
	return out, err
}

func (s *Store) FindAccountsByIDs(ctx context.Context, workplaceID string, accountIDs []string) (map[string]domain.Account, error) {
	out := make(map[string]domain.Account, len(accountIDs))
	err := s.read(ctx, func(st *state) error {
		for _, id := range accountIDs {
			if a, ok := st.accounts[id]; ok && a.WorkplaceID == workplaceID {
				out[id] = a
			}
		}
		return nil
	})
	return out, err
}

func (s *Store) ListAccounts(ctx context.Context, workplaceID string, filter domain.AccountFilter) ([]domain.Account, error) {
	var out []domain.Account
	err := s.read(ctx, func(st *state) error {
		for _, a := range st.accounts {
			if a.WorkplaceID != workplaceID {
				continue
			}
			if filter.ActiveOnly && !a.IsActive {
				continue
			}
			if filter.AccountType != nil && a.AccountType != *filter.AccountType {
				continue
			}
			if filter.TypeCode != nil && a.TypeCode != *filter.TypeCode {
				continue
			}
			if filter.SubType != nil && a.SubType != *filter.SubType {
				continue
			}
			if filter.SubSystemID != nil && (a.SubSystemID == nil || *a.SubSystemID != *filter.SubSystemID) {
				continue
			}
			if filter.ParentAccountID != nil && (a.ParentAccountID == nil || *a.ParentAccountID != *filter.ParentAccountID) {
				continue
			}
			out = append(out, a)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, err
}

func (s *Store) HasChildAccounts(ctx context.Context, workplaceID, accountID string) (bool, error) {
	var found bool
	err := s.read(ctx, func(st *state) error {
		for _, a := range st.accounts {
			if a.WorkplaceID == workplaceID && a.ParentAccountID != nil && *a.ParentAccountID == accountID {
				found = true
				return nil
			}
		}
		return nil
	})
	return found, err
}

func (s *Store) HasJournalLines(ctx context.Context, workplaceID, accountID string) (bool, error) {
	var found bool
	err := s.read(ctx, func(st *state) error {
		for entryID, lines := range st.lines {
			if st.entries[entryID].WorkplaceID != workplaceID {
				continue
			}
			for _, l := range lines {
				if l.AccountID == accountID {
					found = true
					return nil
				}
			}
		}
		return nil
	})
	return found, err
}

func checkAccountUnique(st *state, account domain.Account) error {
	for _, other := range st.accounts {
		if other.WorkplaceID == account.WorkplaceID && other.AccountID != account.AccountID && other.Code == account.Code {
			return apperrors.NewDuplicateError("account code %s already exists", account.Code)
		}
	}
	return nil
}

func (s *Store) SaveAccount(ctx context.Context, account domain.Account) error {
	return s.write(ctx, func(st *state) error {
		if _, ok := st.accounts[account.AccountID]; ok {
			return apperrors.NewDuplicateError("account %s already exists", account.AccountID)
		}
		if err := checkAccountUnique(st, account); err != nil {
			return err
		}
		st.accounts[account.AccountID] = account
		return nil
	})
}

func (s *Store) UpdateAccount(ctx context.Context, account domain.Account) error {
	return s.write(ctx, func(st *state) error {
		existing, ok := st.accounts[account.AccountID]
		if !ok || existing.WorkplaceID != account.WorkplaceID {
			return apperrors.NewNotFoundError("account", account.AccountID)
		}
		if err := checkAccountUnique(st, account); err != nil {
			return err
		}
		st.accounts[account.AccountID] = account
		return nil
	})
}

func (s *Store) DeleteAccount(ctx context.Context, workplaceID, accountID string) error {
	return s.write(ctx, func(st *state) error {
		a, ok := st.accounts[accountID]
		if !ok || a.WorkplaceID != workplaceID {
			return apperrors.NewNotFoundError("account", accountID)
		}
		for k := range st.accountCurrencies {
			if k.workplaceID == workplaceID && k.accountID == accountID {
				delete(st.accountCurrencies, k)
			}
		}
		delete(st.accounts, accountID)
		return nil
	})
}

func sortLinks(links []domain.AccountCurrency) {
	sort.Slice(links, func(i, j int) bool { return links[i].CurrencyID < links[j].CurrencyID })
}

func (s *Store) ListAccountCurrencies(ctx context.Context, workplaceID, accountID string) ([]domain.AccountCurrency, error) {
	var out []domain.AccountCurrency
	err := s.read(ctx, func(st *state) error {
		for k, l := range st.accountCurrencies {
			if k.workplaceID == workplaceID && k.accountID == accountID {
				out = append(out, l)
			}
		}
		return nil
	})
	sortLinks(out)
	return out, err
}

func (s *Store) ListAccountCurrenciesByAccounts(ctx context.Context, workplaceID string, accountIDs []string) (map[string][]domain.AccountCurrency, error) {
	wanted := make(map[string]bool, len(accountIDs))
	for _, id := range accountIDs {
		wanted[id] = true
	}
	out := make(map[string][]domain.AccountCurrency)
	err := s.read(ctx, func(st *state) error {
		for k, l := range st.accountCurrencies {
			if k.workplaceID == workplaceID && wanted[k.accountID] {
				out[k.accountID] = append(out[k.accountID], l)
			}
		}
		return nil
	})
	for _, links := range out {
		sortLinks(links)
	}
	return out, err
}

func (s *Store) SaveAccountCurrency(ctx context.Context, link domain.AccountCurrency) error {
	return s.write(ctx, func(st *state) error {
		k := accountCurrencyKey{link.WorkplaceID, link.AccountID, link.CurrencyID}
		if _, ok := st.accountCurrencies[k]; ok {
			return apperrors.NewDuplicateError("currency %s is already linked to account %s", link.CurrencyID, link.AccountID)
		}
		if _, ok := st.accounts[link.AccountID]; !ok {
			return apperrors.NewIntegrityError("account %s does not exist", link.AccountID)
		}
		if _, ok := st.currencies[link.CurrencyID]; !ok {
			return apperrors.NewIntegrityError("currency %s does not exist", link.CurrencyID)
		}
		st.accountCurrencies[k] = link
		return nil
	})
}

func (s *Store) DeleteAccountCurrency(ctx context.Context, workplaceID, accountID, currencyID string) error {
	return s.write(ctx, func(st *state) error {
		k := accountCurrencyKey{workplaceID, accountID, currencyID}
		if _, ok := st.accountCurrencies[k]; !ok {
			return apperrors.NewNotFoundError("account currency", currencyID)
		}
		delete(st.accountCurrencies, k)
		return nil
	})
}
