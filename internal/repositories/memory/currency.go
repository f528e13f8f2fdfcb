package memory

import (
	"context"
	"sort"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

func (s *Store) FindCurrencyByID(ctx context.Context, workplaceID, currencyID string) (*domain.Currency, error) {
	var out *domain.Currency
	err := s.read(ctx, func(st *state) error {
		c, ok := st.currencies[currencyID]
		if !ok || c.WorkplaceID != workplaceID {
			return apperrors.NewNotFoundError("currency", currencyID)
		}
		out = &c
		return nil
	})
	return out, err
}

func (s *Store) FindCurrencyByCode(ctx context.Context, workplaceID, code string) (*domain.Currency, error) {
	var out *domain.Currency
	err := s.read(ctx, func(st *state) error {
		for _, c := range st.currencies {
			if c.WorkplaceID == workplaceID && c.Code == code {
				out = &c
				return nil
			}
		}
		return apperrors.NewNotFoundError("currency", code)
	})
	return out, err
}

func (s *Store) FindBaseCurrency(ctx context.Context, workplaceID string) (*domain.Currency, error) {
	var out *domain.Currency
	err := s.read(ctx, func(st *state) error {
		for _, c := range st.currencies {
			if c.WorkplaceID == workplaceID && c.IsBase {
				out = &c
				return nil
			}
		}
		return apperrors.NewNotFoundError("base currency of workplace", workplaceID)
	})
	return out, err
}

func (s *Store) FindCurrenciesByIDs(ctx context.Context, workplaceID string, currencyIDs []string) (map[string]domain.Currency, error) {
	out := make(map[string]domain.Currency, len(currencyIDs))
	err := s.read(ctx, func(st *state) error {
		for _, id := range currencyIDs {
			if c, ok := st.currencies[id]; ok && c.WorkplaceID == workplaceID {
				out[id] = c
			}
		}
		return nil
	})
	return out, err
}

func (s *Store) ListCurrencies(ctx context.Context, workplaceID string, activeOnly bool) ([]domain.Currency, error) {
	var out []domain.Currency
	err := s.read(ctx, func(st *state) error {
		for _, c := range st.currencies {
			if c.WorkplaceID != workplaceID || (activeOnly && !c.IsActive) {
				continue
			}
			out = append(out, c)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].DisplayOrder != out[j].DisplayOrder {
			return out[i].DisplayOrder < out[j].DisplayOrder
		}
		return out[i].Name < out[j].Name
	})
	return out, err
}

func (s *Store) IsCurrencyReferenced(ctx context.Context, workplaceID, currencyID string) (bool, error) {
	var referenced bool
	err := s.read(ctx, func(st *state) error {
		for k := range st.accountCurrencies {
			if k.workplaceID == workplaceID && k.currencyID == currencyID {
				referenced = true
				return nil
			}
		}
		for k := range st.balances {
			if k.workplaceID == workplaceID && k.currencyID == currencyID {
				referenced = true
				return nil
			}
		}
		for _, r := range st.rates {
			if r.WorkplaceID == workplaceID && (r.FromCurrencyID == currencyID || r.ToCurrencyID == currencyID) {
				referenced = true
				return nil
			}
		}
		for entryID, lines := range st.lines {
			if st.entries[entryID].WorkplaceID != workplaceID {
				continue
			}
			for _, l := range lines {
				if l.CurrencyID == currencyID {
					referenced = true
					return nil
				}
			}
		}
		return nil
	})
	return referenced, err
}

func checkCurrencyUnique(st *state, c domain.Currency) error {
	for _, other := range st.currencies {
		if other.WorkplaceID != c.WorkplaceID || other.CurrencyID == c.CurrencyID {
			continue
		}
		if other.Code == c.Code {
			return apperrors.NewDuplicateError("currency code %s already exists", c.Code)
		}
		if c.IsBase && other.IsBase {
			return apperrors.NewDuplicateError("workplace already has a base currency")
		}
	}
	return nil
}

func (s *Store) SaveCurrency(ctx context.Context, currency domain.Currency) error {
	return s.write(ctx, func(st *state) error {
		if _, ok := st.currencies[currency.CurrencyID]; ok {
			return apperrors.NewDuplicateError("currency %s already exists", currency.CurrencyID)
		}
		if err := checkCurrencyUnique(st, currency); err != nil {
			return err
		}
		st.currencies[currency.CurrencyID] = currency
		return nil
	})
}

func (s *Store) UpdateCurrency(ctx context.Context, currency domain.Currency) error {
	return s.write(ctx, func(st *state) error {
		existing, ok := st.currencies[currency.CurrencyID]
		if !ok || existing.WorkplaceID != currency.WorkplaceID {
			return apperrors.NewNotFoundError("currency", currency.CurrencyID)
		}
		if err := checkCurrencyUnique(st, currency); err != nil {
			return err
		}
		st.currencies[currency.CurrencyID] = currency
		return nil
	})
}

func (s *Store) ClearBaseCurrency(ctx context.Context, workplaceID, exceptID string) error {
	return s.write(ctx, func(st *state) error {
		for id, c := range st.currencies {
			if c.WorkplaceID == workplaceID && c.IsBase && id != exceptID {
				c.IsBase = false
				st.currencies[id] = c
			}
		}
		return nil
	})
}

func (s *Store) DeleteCurrency(ctx context.Context, workplaceID, currencyID string) error {
	return s.write(ctx, func(st *state) error {
		c, ok := st.currencies[currencyID]
		if !ok || c.WorkplaceID != workplaceID {
			return apperrors.NewNotFoundError("currency", currencyID)
		}
		delete(st.currencies, currencyID)
		return nil
	})
}

func (s *Store) FindExchangeRateByID(ctx context.Context, workplaceID, rateID string) (*domain.ExchangeRate, error) {
	var out *domain.ExchangeRate
	err := s.read(ctx, func(st *state) error {
		r, ok := st.rates[rateID]
		if !ok || r.WorkplaceID != workplaceID {
			return apperrors.NewNotFoundError("exchange rate", rateID)
		}
		out = &r
		return nil
	})
	return out, err
}

func (s *Store) FindEffectiveRate(ctx context.Context, workplaceID, fromCurrencyID, toCurrencyID string, asOf time.Time) (*domain.ExchangeRate, error) {
	var out *domain.ExchangeRate
	err := s.read(ctx, func(st *state) error {
		for _, r := range st.rates {
			if r.WorkplaceID != workplaceID || r.FromCurrencyID != fromCurrencyID || r.ToCurrencyID != toCurrencyID {
				continue
			}
			if !r.AppliesAt(asOf) {
				continue
			}
			if out == nil || newerRate(r, *out) {
				out = &r
			}
		}
		if out == nil {
			return apperrors.NewNotFoundError("exchange rate", fromCurrencyID+"->"+toCurrencyID)
		}
		return nil
	})
	return out, err
}

// newerRate orders records by effective date, then creation time, then id.
func newerRate(a, b domain.ExchangeRate) bool {
	if !a.EffectiveDate.Equal(b.EffectiveDate) {
		return a.EffectiveDate.After(b.EffectiveDate)
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.RateID > b.RateID
}

func (s *Store) ListExchangeRates(ctx context.Context, workplaceID string, filter domain.ExchangeRateFilter) ([]domain.ExchangeRate, error) {
	var out []domain.ExchangeRate
	err := s.read(ctx, func(st *state) error {
		for _, r := range st.rates {
			if r.WorkplaceID != workplaceID {
				continue
			}
			if filter.ActiveOnly && !r.IsActive {
				continue
			}
			if filter.AsOf != nil && !r.AppliesAt(*filter.AsOf) {
				continue
			}
			if filter.FromCurrencyID != nil && r.FromCurrencyID != *filter.FromCurrencyID {
				continue
			}
			out = append(out, r)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return newerRate(out[i], out[j]) })
	return out, err
}

func (s *Store) SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error {
	return s.write(ctx, func(st *state) error {
		if _, ok := st.rates[rate.RateID]; ok {
			return apperrors.NewDuplicateError("exchange rate %s already exists", rate.RateID)
		}
		st.rates[rate.RateID] = rate
		return nil
	})
}

func (s *Store) UpdateExchangeRate(ctx context.Context, rate domain.ExchangeRate) error {
	return s.write(ctx, func(st *state) error {
		existing, ok := st.rates[rate.RateID]
		if !ok || existing.WorkplaceID != rate.WorkplaceID {
			return apperrors.NewNotFoundError("exchange rate", rate.RateID)
		}
		st.rates[rate.RateID] = rate
		return nil
	})
}

func (s *Store) DeleteExchangeRate(ctx context.Context, workplaceID, rateID string) error {
	return s.write(ctx, func(st *state) error {
		r, ok := st.rates[rateID]
		if !ok || r.WorkplaceID != workplaceID {
			return apperrors.NewNotFoundError("exchange rate", rateID)
		}
		delete(st.rates, rateID)
		return nil
	})
}
