package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/google/uuid"
)

// maxCurrencyPrecision matches the scale of the amount and balance columns.
const maxCurrencyPrecision = 8

type currencyService struct {
	BaseService
	uow          portsrepo.UnitOfWork
	currencyRepo portsrepo.CurrencyRepositoryFacade
}

// NewCurrencyService creates the currency registry.
func NewCurrencyService(uow portsrepo.UnitOfWork, currencyRepo portsrepo.CurrencyRepositoryFacade) portssvc.CurrencySvcFacade {
	return &currencyService{uow: uow, currencyRepo: currencyRepo}
}

var _ portssvc.CurrencySvcFacade = (*currencyService)(nil)

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func (s *currencyService) CreateCurrency(ctx context.Context, workplaceID string, req dto.CreateCurrencyRequest, userID string) (*domain.Currency, error) {
	code := normalizeCode(req.Code)
	name := strings.TrimSpace(req.Name)
	if code == "" || name == "" {
		return nil, apperrors.NewValidationError("currency code and name are required")
	}
	precision := domain.DefaultCurrencyPrecision
	if req.Precision != nil {
		precision = *req.Precision
	}
	if precision < 0 || precision > maxCurrencyPrecision {
		return nil, apperrors.NewValidationError("precision must be between 0 and %d", maxCurrencyPrecision)
	}
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	currency := domain.Currency{
		CurrencyID:   uuid.NewString(),
		WorkplaceID:  workplaceID,
		Code:         code,
		Name:         name,
		NameEn:       req.NameEn,
		Symbol:       req.Symbol,
		IsActive:     isActive,
		Precision:    precision,
		DisplayOrder: req.DisplayOrder,
		CurrentRate:  req.CurrentRate,
		MinRate:      req.MinRate,
		MaxRate:      req.MaxRate,
		Notes:        req.Notes,
		AuditFields:  domain.NewAuditFields(userID, s.now()),
	}
	if req.IsBase {
		if !isActive {
			return nil, apperrors.NewValidationError("the base currency must be active")
		}
		currency.MakeBase()
	} else if err := currency.ValidateRates(); err != nil {
		return nil, apperrors.NewValidationError("%s", err)
	}

	err := s.uow.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.ensureCodeAvailable(ctx, workplaceID, code, ""); err != nil {
			return err
		}
		if currency.IsBase {
			if err := s.currencyRepo.ClearBaseCurrency(ctx, workplaceID, currency.CurrencyID); err != nil {
				return err
			}
		}
		return s.currencyRepo.SaveCurrency(ctx, currency)
	})
	if err != nil {
		return nil, s.LogUnexpected(ctx, err, "Failed to create currency",
			slog.String("workplace_id", workplaceID), slog.String("code", code))
	}

	s.LogInfo(ctx, "Currency created",
		slog.String("currency_id", currency.CurrencyID),
		slog.String("code", currency.Code),
		slog.Bool("is_base", currency.IsBase))
	return &currency, nil
}

func (s *currencyService) ensureCodeAvailable(ctx context.Context, workplaceID, code, exceptID string) error {
	existing, err := s.currencyRepo.FindCurrencyByCode(ctx, workplaceID, code)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		return err
	}
	if existing.CurrencyID != exceptID {
		return apperrors.NewDuplicateError("currency code %s already exists", code)
	}
	return nil
}

func (s *currencyService) UpdateCurrency(ctx context.Context, workplaceID, currencyID string, req dto.UpdateCurrencyRequest, userID string) (*domain.Currency, error) {
	var updated *domain.Currency
	err := s.uow.WithinTx(ctx, func(ctx context.Context) error {
		currency, err := s.currencyRepo.FindCurrencyByID(ctx, workplaceID, currencyID)
		if err != nil {
			return err
		}
		wasBase := currency.IsBase

		if req.Code != nil {
			code := normalizeCode(*req.Code)
			if code == "" {
				return apperrors.NewValidationError("currency code cannot be blank")
			}
			if code != currency.Code {
				if err := s.ensureCodeAvailable(ctx, workplaceID, code, currency.CurrencyID); err != nil {
					return err
				}
			}
			currency.Code = code
		}
		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if name == "" {
				return apperrors.NewValidationError("currency name cannot be blank")
			}
			currency.Name = name
		}
		if req.NameEn != nil {
			currency.NameEn = req.NameEn
		}
		if req.Symbol != nil {
			currency.Symbol = req.Symbol
		}
		if req.IsActive != nil {
			currency.IsActive = *req.IsActive
		}
		if req.Precision != nil {
			if *req.Precision < 0 || *req.Precision > maxCurrencyPrecision {
				return apperrors.NewValidationError("precision must be between 0 and %d", maxCurrencyPrecision)
			}
			currency.Precision = *req.Precision
		}
		if req.DisplayOrder != nil {
			currency.DisplayOrder = *req.DisplayOrder
		}
		if req.CurrentRate != nil {
			currency.CurrentRate = req.CurrentRate
		}
		if req.MinRate != nil {
			currency.MinRate = req.MinRate
		}
		if req.MaxRate != nil {
			currency.MaxRate = req.MaxRate
		}
		if req.Notes != nil {
			currency.Notes = req.Notes
		}

		if req.IsBase != nil && !*req.IsBase && wasBase {
			return apperrors.NewValidationError("cannot unset the base currency; mark another currency as base instead")
		}
		becomesBase := req.IsBase != nil && *req.IsBase && !wasBase
		if wasBase || becomesBase {
			if !currency.IsActive {
				return apperrors.NewValidationError("the base currency must be active")
			}
			currency.MakeBase()
		} else if err := currency.ValidateRates(); err != nil {
			return apperrors.NewValidationError("%s", err)
		}

		currency.Touch(userID, s.now())
		if becomesBase {
			if err := s.currencyRepo.ClearBaseCurrency(ctx, workplaceID, currency.CurrencyID); err != nil {
				return err
			}
		}
		if err := s.currencyRepo.UpdateCurrency(ctx, *currency); err != nil {
			return err
		}
		updated = currency
		return nil
	})
	if err != nil {
		return nil, s.LogUnexpected(ctx, err, "Failed to update currency",
			slog.String("workplace_id", workplaceID), slog.String("currency_id", currencyID))
	}

	s.LogInfo(ctx, "Currency updated", slog.String("currency_id", currencyID))
	return updated, nil
}

func (s *currencyService) DeleteCurrency(ctx context.Context, workplaceID, currencyID, userID string) error {
	err := s.uow.WithinTx(ctx, func(ctx context.Context) error {
		currency, err := s.currencyRepo.FindCurrencyByID(ctx, workplaceID, currencyID)
		if err != nil {
			return err
		}
		if currency.IsBase {
			return apperrors.NewValidationError("the base currency %s cannot be deleted", currency.Code)
		}
		referenced, err := s.currencyRepo.IsCurrencyReferenced(ctx, workplaceID, currencyID)
		if err != nil {
			return err
		}
		if referenced {
			return apperrors.NewIntegrityError("currency %s is used by accounts, balances, lines or rates", currency.Code)
		}
		return s.currencyRepo.DeleteCurrency(ctx, workplaceID, currencyID)
	})
	if err != nil {
		return s.LogUnexpected(ctx, err, "Failed to delete currency",
			slog.String("workplace_id", workplaceID), slog.String("currency_id", currencyID))
	}
	s.LogInfo(ctx, "Currency deleted", slog.String("currency_id", currencyID), slog.String("user_id", userID))
	return nil
}

func (s *currencyService) GetCurrencyByID(ctx context.Context, workplaceID, currencyID string) (*domain.Currency, error) {
	currency, err := s.currencyRepo.FindCurrencyByID(ctx, workplaceID, currencyID)
	if err != nil {
		return nil, s.LogUnexpected(ctx, err, "Failed to get currency", slog.String("currency_id", currencyID))
	}
	return currency, nil
}

func (s *currencyService) GetBaseCurrency(ctx context.Context, workplaceID string) (*domain.Currency, error) {
	currency, err := s.currencyRepo.FindBaseCurrency(ctx, workplaceID)
	if err != nil {
		return nil, s.LogUnexpected(ctx, err, "Failed to get base currency", slog.String("workplace_id", workplaceID))
	}
	return currency, nil
}

func (s *currencyService) ListCurrencies(ctx context.Context, workplaceID string, activeOnly bool) ([]domain.Currency, error) {
	currencies, err := s.currencyRepo.ListCurrencies(ctx, workplaceID, activeOnly)
	if err != nil {
		return nil, s.LogUnexpected(ctx, err, "Failed to list currencies", slog.String("workplace_id", workplaceID))
	}
	if currencies == nil {
		return []domain.Currency{}, nil
	}
	return currencies, nil
}
