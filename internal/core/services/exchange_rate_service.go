package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// inverseRatePrecision is the number of decimal places kept when inverting or
// dividing rates.
const inverseRatePrecision = 10

type exchangeRateService struct {
	BaseService
	rateRepo     portsrepo.ExchangeRateRepositoryFacade
	currencyRepo portsrepo.CurrencyReader
}

// NewExchangeRateService creates the exchange rate resolver and rate record manager.
func NewExchangeRateService(rateRepo portsrepo.ExchangeRateRepositoryFacade, currencyRepo portsrepo.CurrencyReader) portssvc.ExchangeRateSvcFacade {
	return &exchangeRateService{rateRepo: rateRepo, currencyRepo: currencyRepo}
}

var _ portssvc.ExchangeRateSvcFacade = (*exchangeRateService)(nil)

// CreateExchangeRate handles the creation of a new exchange rate.
func (s *exchangeRateService) CreateExchangeRate(ctx context.Context, workplaceID string, req dto.CreateExchangeRateRequest, userID string) (*domain.ExchangeRate, error) {
	if !req.Rate.IsPositive() {
		return nil, apperrors.NewValidationError("exchange rate must be positive")
	}
	if req.FromCurrencyID == req.ToCurrencyID {
		return nil, apperrors.NewValidationError("from and to currencies cannot be the same")
	}
	if req.ExpiryDate != nil && req.ExpiryDate.Before(req.EffectiveDate) {
		return nil, apperrors.NewValidationError("expiry date cannot precede the effective date")
	}
	if err := s.requireCurrencies(ctx, workplaceID, req.FromCurrencyID, req.ToCurrencyID); err != nil {
		return nil, s.LogUnexpected(ctx, err, "Invalid currencies for exchange rate")
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	rate := domain.ExchangeRate{
		RateID:         uuid.NewString(),
		WorkplaceID:    workplaceID,
		FromCurrencyID: req.FromCurrencyID,
		ToCurrencyID:   req.ToCurrencyID,
		Rate:           req.Rate,
		EffectiveDate:  req.EffectiveDate,
		ExpiryDate:     req.ExpiryDate,
		Source:         req.Source,
		IsActive:       isActive,
		AuditFields:    domain.NewAuditFields(userID, s.now()),
	}
	if err := s.rateRepo.SaveExchangeRate(ctx, rate); err != nil {
		return nil, s.LogUnexpected(ctx, err, "Failed to save exchange rate", slog.String("rate_id", rate.RateID))
	}

	s.LogInfo(ctx, "Exchange rate created",
		slog.String("rate_id", rate.RateID),
		slog.String("from", rate.FromCurrencyID),
		slog.String("to", rate.ToCurrencyID),
		slog.String("rate", rate.Rate.String()))
	return &rate, nil
}

func (s *exchangeRateService) requireCurrencies(ctx context.Context, workplaceID string, ids ...string) error {
	found, err := s.currencyRepo.FindCurrenciesByIDs(ctx, workplaceID, ids)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if _, ok := found[id]; !ok {
			return apperrors.NewValidationError("currency %s not found", id)
		}
	}
	return nil
}

func (s *exchangeRateService) UpdateExchangeRate(ctx context.Context, workplaceID, rateID string, req dto.UpdateExchangeRateRequest, userID string) (*domain.ExchangeRate, error) {
	rate, err := s.rateRepo.FindExchangeRateByID(ctx, workplaceID, rateID)
	if err != nil {
		return nil, s.LogUnexpected(ctx, err, "Failed to find exchange rate", slog.String("rate_id", rateID))
	}
	if req.Rate != nil {
		if !req.Rate.IsPositive() {
			return nil, apperrors.NewValidationError("exchange rate must be positive")
		}
		rate.Rate = *req.Rate
	}
	if req.EffectiveDate != nil {
		rate.EffectiveDate = *req.EffectiveDate
	}
	if req.ClearExpiry {
		rate.ExpiryDate = nil
	} else if req.ExpiryDate != nil {
		rate.ExpiryDate = req.ExpiryDate
	}
	if req.Source != nil {
		rate.Source = req.Source
	}
	if req.IsActive != nil {
		rate.IsActive = *req.IsActive
	}
	if rate.ExpiryDate != nil && rate.ExpiryDate.Before(rate.EffectiveDate) {
		return nil, apperrors.NewValidationError("expiry date cannot precede the effective date")
	}
	rate.Touch(userID, s.now())

	if err := s.rateRepo.UpdateExchangeRate(ctx, *rate); err != nil {
		return nil, s.LogUnexpected(ctx, err, "Failed to update exchange rate", slog.String("rate_id", rateID))
	}
	return rate, nil
}

func (s *exchangeRateService) DeleteExchangeRate(ctx context.Context, workplaceID, rateID, userID string) error {
	if _, err := s.rateRepo.FindExchangeRateByID(ctx, workplaceID, rateID); err != nil {
		return s.LogUnexpected(ctx, err, "Failed to find exchange rate", slog.String("rate_id", rateID))
	}
	if err := s.rateRepo.DeleteExchangeRate(ctx, workplaceID, rateID); err != nil {
		return s.LogUnexpected(ctx, err, "Failed to delete exchange rate", slog.String("rate_id", rateID))
	}
	s.LogInfo(ctx, "Exchange rate deleted", slog.String("rate_id", rateID), slog.String("user_id", userID))
	return nil
}

// GetExchangeRate retrieves a rate record by id.
func (s *exchangeRateService) GetExchangeRate(ctx context.Context, workplaceID, rateID string) (*domain.ExchangeRate, error) {
	rate, err := s.rateRepo.FindExchangeRateByID(ctx, workplaceID, rateID)
	if err != nil {
		return nil, s.LogUnexpected(ctx, err, "Failed to get exchange rate", slog.String("rate_id", rateID))
	}
	return rate, nil
}

func (s *exchangeRateService) ListExchangeRates(ctx context.Context, workplaceID string, activeOnly bool) ([]domain.ExchangeRate, error) {
	return s.list(ctx, workplaceID, domain.ExchangeRateFilter{ActiveOnly: activeOnly})
}

func (s *exchangeRateService) ListCurrentExchangeRates(ctx context.Context, workplaceID string, asOf time.Time) ([]domain.ExchangeRate, error) {
	return s.list(ctx, workplaceID, domain.ExchangeRateFilter{ActiveOnly: true, AsOf: &asOf})
}

func (s *exchangeRateService) ListExchangeRatesForCurrency(ctx context.Context, workplaceID, currencyID string) ([]domain.ExchangeRate, error) {
	return s.list(ctx, workplaceID, domain.ExchangeRateFilter{FromCurrencyID: &currencyID})
}

func (s *exchangeRateService) list(ctx context.Context, workplaceID string, filter domain.ExchangeRateFilter) ([]domain.ExchangeRate, error) {
	rates, err := s.rateRepo.ListExchangeRates(ctx, workplaceID, filter)
	if err != nil {
		return nil, s.LogUnexpected(ctx, err, "Failed to list exchange rates", slog.String("workplace_id", workplaceID))
	}
	if rates == nil {
		return []domain.ExchangeRate{}, nil
	}
	return rates, nil
}

// ResolveRate tries, in order: identity, a direct record, an inverted record and
// the currencies' configured rates relative to base. It never falls back to 1.
func (s *exchangeRateService) ResolveRate(ctx context.Context, workplaceID, fromCurrencyID, toCurrencyID string, asOf time.Time) (*domain.ResolvedRate, error) {
	resolved := &domain.ResolvedRate{FromCurrencyID: fromCurrencyID, ToCurrencyID: toCurrencyID}
	if fromCurrencyID == toCurrencyID {
		resolved.Rate = decimal.NewFromInt(1)
		resolved.Source = domain.RateSourceIdentity
		return resolved, nil
	}

	direct, err := s.rateRepo.FindEffectiveRate(ctx, workplaceID, fromCurrencyID, toCurrencyID, asOf)
	switch {
	case err == nil:
		resolved.Rate = direct.Rate
		resolved.Source = domain.RateSourceDirect
		resolved.RateID = &direct.RateID
		resolved.EffectiveDate = &direct.EffectiveDate
		return resolved, nil
	case !errors.Is(err, apperrors.ErrNotFound):
		return nil, s.LogUnexpected(ctx, err, "Failed to look up direct rate")
	}

	inverse, err := s.rateRepo.FindEffectiveRate(ctx, workplaceID, toCurrencyID, fromCurrencyID, asOf)
	switch {
	case err == nil:
		resolved.Rate = decimal.NewFromInt(1).DivRound(inverse.Rate, inverseRatePrecision)
		resolved.Inverted = true
		resolved.Source = domain.RateSourceInverse
		resolved.RateID = &inverse.RateID
		resolved.EffectiveDate = &inverse.EffectiveDate
		return resolved, nil
	case !errors.Is(err, apperrors.ErrNotFound):
		return nil, s.LogUnexpected(ctx, err, "Failed to look up inverse rate")
	}

	rate, ok, err := s.rateFromDefaults(ctx, workplaceID, fromCurrencyID, toCurrencyID)
	if err != nil {
		return nil, s.LogUnexpected(ctx, err, "Failed to derive rate from currency defaults")
	}
	if ok {
		resolved.Rate = rate
		resolved.Source = domain.RateSourceCurrencyDefault
		return resolved, nil
	}

	s.LogDebug(ctx, "No exchange rate available",
		slog.String("from", fromCurrencyID),
		slog.String("to", toCurrencyID),
		slog.Time("as_of", asOf))
	return nil, fmt.Errorf("%w: no rate from %s to %s on %s",
		apperrors.ErrRateUnavailable, fromCurrencyID, toCurrencyID, asOf.Format(time.DateOnly))
}

// rateFromDefaults derives a rate from each currency's configured rate to base.
func (s *exchangeRateService) rateFromDefaults(ctx context.Context, workplaceID, fromCurrencyID, toCurrencyID string) (decimal.Decimal, bool, error) {
	currencies, err := s.currencyRepo.FindCurrenciesByIDs(ctx, workplaceID, []string{fromCurrencyID, toCurrencyID})
	if err != nil {
		return decimal.Zero, false, err
	}
	from, okFrom := currencies[fromCurrencyID]
	to, okTo := currencies[toCurrencyID]
	if !okFrom || !okTo {
		return decimal.Zero, false, nil
	}
	toBase := func(c domain.Currency) (decimal.Decimal, bool) {
		if c.IsBase {
			return decimal.NewFromInt(1), true
		}
		if c.CurrentRate != nil && c.CurrentRate.IsPositive() {
			return *c.CurrentRate, true
		}
		return decimal.Zero, false
	}
	fromRate, ok := toBase(from)
	if !ok {
		return decimal.Zero, false, nil
	}
	toRate, ok := toBase(to)
	if !ok {
		return decimal.Zero, false, nil
	}
	if toRate.Equal(decimal.NewFromInt(1)) {
		return fromRate, true, nil
	}
	return fromRate.DivRound(toRate, inverseRatePrecision), true, nil
}

func (s *exchangeRateService) RateToBase(ctx context.Context, workplaceID, currencyID string, asOf time.Time, explicit *decimal.Decimal) (decimal.Decimal, error) {
	currency, err := s.currencyRepo.FindCurrencyByID(ctx, workplaceID, currencyID)
	if err != nil {
		return decimal.Zero, err
	}
	if currency.IsBase {
		return decimal.NewFromInt(1), nil
	}

	var rate decimal.Decimal
	switch {
	case explicit != nil:
		rate = *explicit
	case currency.CurrentRate != nil:
		rate = *currency.CurrentRate
	default:
		base, err := s.currencyRepo.FindBaseCurrency(ctx, workplaceID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return decimal.Zero, fmt.Errorf("%w: workplace has no base currency", apperrors.ErrRateUnavailable)
			}
			return decimal.Zero, err
		}
		resolved, err := s.ResolveRate(ctx, workplaceID, currencyID, base.CurrencyID, asOf)
		if err != nil {
			return decimal.Zero, err
		}
		rate = resolved.Rate
	}

	if err := currency.CheckRate(rate); err != nil {
		return decimal.Zero, fmt.Errorf("%w: %w: %s", apperrors.ErrValidation, apperrors.ErrRateOutOfBounds, err)
	}
	return rate, nil
}
