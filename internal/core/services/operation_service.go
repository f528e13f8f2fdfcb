package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/google/uuid"
)

const defaultVoucherPageSize = 50

// operationService composes receipts, payments and transfers into vouchers backed
// by posted two-line entries.
type operationService struct {
	BaseService
	uow          portsrepo.UnitOfWork
	voucherRepo  portsrepo.VoucherRepositoryFacade
	accountRepo  portsrepo.AccountRepositoryFacade
	currencyRepo portsrepo.CurrencyReader
	rates        portssvc.RateResolverSvc
	journal      portssvc.JournalSvcFacade
}

// NewOperationService creates the operation composer.
func NewOperationService(
	uow portsrepo.UnitOfWork,
	voucherRepo portsrepo.VoucherRepositoryFacade,
	accountRepo portsrepo.AccountRepositoryFacade,
	currencyRepo portsrepo.CurrencyReader,
	rates portssvc.RateResolverSvc,
	journal portssvc.JournalSvcFacade,
) portssvc.OperationSvcFacade {
	return &operationService{
		uow:          uow,
		voucherRepo:  voucherRepo,
		accountRepo:  accountRepo,
		currencyRepo: currencyRepo,
		rates:        rates,
		journal:      journal,
	}
}

var _ portssvc.OperationSvcFacade = (*operationService)(nil)

func (s *operationService) CreateReceipt(ctx context.Context, workplaceID string, req dto.CreateReceiptRequest, userID string) (*domain.VoucherDetails, error) {
	return s.Compose(ctx, workplaceID, req.ToIntent(), userID)
}

func (s *operationService) CreatePayment(ctx context.Context, workplaceID string, req dto.CreatePaymentRequest, userID string) (*domain.VoucherDetails, error) {
	return s.Compose(ctx, workplaceID, req.ToIntent(), userID)
}

func (s *operationService) CreateTransfer(ctx context.Context, workplaceID string, req dto.CreateTransferRequest, userID string) (*domain.VoucherDetails, error) {
	return s.Compose(ctx, workplaceID, req.ToIntent(), userID)
}

// Compose debits the destination and credits the source. The voucher, the entry
// and the balance changes commit together or not at all.
func (s *operationService) Compose(ctx context.Context, workplaceID string, intent domain.OperationIntent, userID string) (*domain.VoucherDetails, error) {
	if err := dto.ValidateIntent(intent); err != nil {
		return nil, apperrors.NewValidationError("%s", err)
	}

	voucherID := uuid.NewString()
	var details *domain.VoucherDetails
	err := s.uow.WithinTx(ctx, func(ctx context.Context) error {
		from, to, err := s.loadAccounts(ctx, workplaceID, intent)
		if err != nil {
			return err
		}
		currency, err := s.currencyRepo.FindCurrencyByID(ctx, workplaceID, intent.CurrencyID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.NewValidationError("currency %s not found", intent.CurrencyID)
			}
			return err
		}
		if !currency.IsActive {
			return apperrors.NewValidationError("currency %s is inactive", currency.Code)
		}
		if !currency.FitsPrecision(intent.Amount) {
			return apperrors.NewValidationError("amount exceeds the %d decimal places of %s", currency.Precision, currency.Code)
		}
		links, err := s.accountRepo.ListAccountCurrenciesByAccounts(ctx, workplaceID, []string{from.AccountID, to.AccountID})
		if err != nil {
			return err
		}
		for _, acc := range []*domain.Account{from, to} {
			if !domain.AllowsCurrency(links[acc.AccountID], currency.CurrencyID) {
				return apperrors.NewValidationError("account %s does not accept currency %s", acc.Code, currency.Code)
			}
		}

		rate, err := s.rates.RateToBase(ctx, workplaceID, currency.CurrencyID, intent.VoucherDate, intent.ExchangeRate)
		if err != nil {
			return err
		}
		base, err := s.currencyRepo.FindBaseCurrency(ctx, workplaceID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.NewValidationError("the workplace has no base currency")
			}
			return err
		}

		refType := intent.Kind.ReferenceType()
		voucherNumber := intent.VoucherNumber
		description := defaultOperationDescription(intent, from, to)
		if intent.Description != nil && *intent.Description != "" {
			description = *intent.Description
		}
		entry, err := s.journal.CreateJournalEntry(ctx, workplaceID, dto.CreateJournalEntryRequest{
			EntryNumber:     intent.Kind.EntryNumberPrefix() + voucherNumber,
			EntryDate:       intent.VoucherDate,
			EntryType:       domain.EntryTypeSystemGenerated,
			Description:     description,
			Notes:           intent.Notes,
			ReferenceType:   &refType,
			ReferenceID:     &voucherID,
			ReferenceNumber: &voucherNumber,
			SubSystemID:     intent.SubSystemID,
			Lines: []dto.JournalLineRequest{
				{AccountID: to.AccountID, CurrencyID: currency.CurrencyID, DebitAmount: intent.Amount, ExchangeRate: &rate},
				{AccountID: from.AccountID, CurrencyID: currency.CurrencyID, CreditAmount: intent.Amount, ExchangeRate: &rate},
			},
		}, userID)
		if err != nil {
			return err
		}
		posted, err := s.journal.PostJournalEntry(ctx, workplaceID, entry.EntryID, userID)
		if err != nil {
			return err
		}

		voucher := domain.Voucher{
			VoucherID:       voucherID,
			WorkplaceID:     workplaceID,
			VoucherType:     intent.Kind,
			VoucherNumber:   voucherNumber,
			VoucherDate:     intent.VoucherDate,
			FromAccountID:   from.AccountID,
			ToAccountID:     to.AccountID,
			SourceName:      from.Name,
			SourceType:      from.SubType,
			DestinationName: to.Name,
			DestinationType: to.SubType,
			Amount:          intent.Amount,
			CurrencyID:      currency.CurrencyID,
			ExchangeRate:    rate,
			AmountInBase:    intent.Amount.Mul(rate).Round(int32(base.Precision)),
			JournalEntryID:  posted.EntryID,
			Status:          domain.VoucherApproved,
			Description:     intent.Description,
			Notes:           intent.Notes,
			Attachments:     intent.Attachments,
			SubSystemID:     intent.SubSystemID,
			AuditFields:     domain.NewAuditFields(userID, s.now()),
		}
		if err := s.voucherRepo.SaveVoucher(ctx, voucher); err != nil {
			return err
		}
		details = &domain.VoucherDetails{Voucher: voucher, Entry: posted}
		return nil
	})
	if err != nil {
		return nil, s.LogUnexpected(ctx, err, "Failed to compose operation",
			slog.String("workplace_id", workplaceID),
			slog.String("kind", string(intent.Kind)),
			slog.String("voucher_number", intent.VoucherNumber))
	}

	s.LogInfo(ctx, "Operation recorded",
		slog.String("voucher_id", details.VoucherID),
		slog.String("kind", string(details.VoucherType)),
		slog.String("entry_id", details.JournalEntryID),
		slog.String("amount", details.Amount.String()))
	return details, nil
}

func (s *operationService) loadAccounts(ctx context.Context, workplaceID string, intent domain.OperationIntent) (*domain.Account, *domain.Account, error) {
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, workplaceID, []string{intent.FromAccountID, intent.ToAccountID})
	if err != nil {
		return nil, nil, err
	}
	from, ok := accounts[intent.FromAccountID]
	if !ok {
		return nil, nil, apperrors.NewValidationError("source account %s not found", intent.FromAccountID)
	}
	to, ok := accounts[intent.ToAccountID]
	if !ok {
		return nil, nil, apperrors.NewValidationError("destination account %s not found", intent.ToAccountID)
	}
	if !from.IsActive {
		return nil, nil, apperrors.NewValidationError("source account %s is inactive", from.Code)
	}
	if !to.IsActive {
		return nil, nil, apperrors.NewValidationError("destination account %s is inactive", to.Code)
	}
	return &from, &to, nil
}

func defaultOperationDescription(intent domain.OperationIntent, from, to *domain.Account) string {
	kind := strings.ToLower(string(intent.Kind))
	return fmt.Sprintf("%s%s %s: %s to %s", strings.ToUpper(kind[:1]), kind[1:], intent.VoucherNumber, from.Name, to.Name)
}

func (s *operationService) GetVoucher(ctx context.Context, workplaceID, voucherID string) (*domain.VoucherDetails, error) {
	voucher, err := s.voucherRepo.FindVoucherByID(ctx, workplaceID, voucherID)
	if err != nil {
		return nil, s.LogUnexpected(ctx, err, "Failed to get voucher", slog.String("voucher_id", voucherID))
	}
	details := &domain.VoucherDetails{Voucher: *voucher}
	if voucher.JournalEntryID != "" {
		entry, err := s.journal.GetJournalEntry(ctx, workplaceID, voucher.JournalEntryID)
		if err != nil {
			return nil, err
		}
		details.Entry = entry
	}
	return details, nil
}

func (s *operationService) ListVouchers(ctx context.Context, workplaceID string, filter domain.VoucherFilter) ([]domain.Voucher, error) {
	if filter.Limit <= 0 {
		filter.Limit = defaultVoucherPageSize
	}
	vouchers, err := s.voucherRepo.ListVouchers(ctx, workplaceID, filter)
	if err != nil {
		return nil, s.LogUnexpected(ctx, err, "Failed to list vouchers", slog.String("workplace_id", workplaceID))
	}
	if vouchers == nil {
		return []domain.Voucher{}, nil
	}
	return vouchers, nil
}

func voucherNotEditable(v *domain.Voucher) error {
	return fmt.Errorf("%w: voucher %s is %s", apperrors.ErrIllegalTransition, v.VoucherNumber, v.Status)
}

func (s *operationService) UpdateVoucher(ctx context.Context, workplaceID, voucherID string, req dto.UpdateVoucherRequest, userID string) (*domain.Voucher, error) {
	var updated *domain.Voucher
	err := s.uow.WithinTx(ctx, func(ctx context.Context) error {
		voucher, err := s.voucherRepo.FindVoucherByIDForUpdate(ctx, workplaceID, voucherID)
		if err != nil {
			return err
		}
		if !voucher.Status.CanEdit() {
			return voucherNotEditable(voucher)
		}
		if req.Description != nil {
			voucher.Description = req.Description
		}
		if req.Notes != nil {
			voucher.Notes = req.Notes
		}
		if req.Attachments != nil {
			voucher.Attachments = *req.Attachments
		}
		voucher.Touch(userID, s.now())
		if err := s.voucherRepo.UpdateVoucher(ctx, *voucher); err != nil {
			return err
		}
		updated = voucher
		return nil
	})
	if err != nil {
		return nil, s.LogUnexpected(ctx, err, "Failed to update voucher", slog.String("voucher_id", voucherID))
	}
	return updated, nil
}

func (s *operationService) DeleteVoucher(ctx context.Context, workplaceID, voucherID, userID string) error {
	err := s.uow.WithinTx(ctx, func(ctx context.Context) error {
		voucher, err := s.voucherRepo.FindVoucherByIDForUpdate(ctx, workplaceID, voucherID)
		if err != nil {
			return err
		}
		if !voucher.Status.CanEdit() {
			return voucherNotEditable(voucher)
		}
		if err := s.voucherRepo.DeleteVoucher(ctx, workplaceID, voucherID); err != nil {
			return err
		}
		if voucher.JournalEntryID != "" {
			return s.journal.DeleteJournalEntry(ctx, workplaceID, voucher.JournalEntryID, userID)
		}
		return nil
	})
	if err != nil {
		return s.LogUnexpected(ctx, err, "Failed to delete voucher", slog.String("voucher_id", voucherID))
	}
	s.LogInfo(ctx, "Voucher deleted", slog.String("voucher_id", voucherID), slog.String("user_id", userID))
	return nil
}

// CancelVoucher returns the cancelled voucher together with the reversal entry.
func (s *operationService) CancelVoucher(ctx context.Context, workplaceID, voucherID string, req dto.CancelVoucherRequest, userID string) (*domain.VoucherDetails, error) {
	if req.CancelDate.IsZero() {
		return nil, apperrors.NewValidationError("cancel date is required")
	}
	var details *domain.VoucherDetails
	err := s.uow.WithinTx(ctx, func(ctx context.Context) error {
		voucher, err := s.voucherRepo.FindVoucherByIDForUpdate(ctx, workplaceID, voucherID)
		if err != nil {
			return err
		}
		next, err := voucher.Status.Cancel()
		if err != nil {
			return fmt.Errorf("%w: %s", apperrors.ErrIllegalTransition, err)
		}
		reason := req.Reason
		if reason == "" {
			reason = fmt.Sprintf("Cancellation of %s %s", strings.ToLower(string(voucher.VoucherType)), voucher.VoucherNumber)
		}
		reversal, err := s.journal.ReverseJournalEntry(ctx, workplaceID, voucher.JournalEntryID,
			dto.ReverseJournalEntryRequest{ReversalDate: req.CancelDate, Reason: reason}, userID)
		if err != nil {
			return err
		}
		now := s.now()
		voucher.Status = next
		voucher.CancelledAt = &now
		voucher.CancelledBy = &userID
		voucher.Touch(userID, now)
		if err := s.voucherRepo.UpdateVoucher(ctx, *voucher); err != nil {
			return err
		}
		details = &domain.VoucherDetails{Voucher: *voucher, Entry: reversal}
		return nil
	})
	if err != nil {
		return nil, s.LogUnexpected(ctx, err, "Failed to cancel voucher", slog.String("voucher_id", voucherID))
	}
	s.LogInfo(ctx, "Voucher cancelled", slog.String("voucher_id", voucherID))
	return details, nil
}
