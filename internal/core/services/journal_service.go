package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/shopspring/decimal"
)

const (
	defaultEntryPageSize    = 20
	maxEntryPageSize        = 100
	defaultRecentOperations = 20
)

// journalService provides the journal engine: entry lifecycle and balance posting.
type journalService struct {
	BaseService
	uow          portsrepo.UnitOfWork
	journalRepo  portsrepo.JournalRepositoryFacade
	accountRepo  portsrepo.AccountRepositoryFacade
	currencyRepo portsrepo.CurrencyReader
	balanceRepo  portsrepo.BalanceRepositoryFacade
	rates        portssvc.RateResolverSvc
}

// NewJournalService creates a new JournalService.
func NewJournalService(
	uow portsrepo.UnitOfWork,
	journalRepo portsrepo.JournalRepositoryFacade,
	accountRepo portsrepo.AccountRepositoryFacade,
	currencyRepo portsrepo.CurrencyReader,
	balanceRepo portsrepo.BalanceRepositoryFacade,
	rates portssvc.RateResolverSvc,
) portssvc.JournalSvcFacade {
	return &journalService{
		uow:          uow,
		journalRepo:  journalRepo,
		accountRepo:  accountRepo,
		currencyRepo: currencyRepo,
		balanceRepo:  balanceRepo,
		rates:        rates,
	}
}

// Ensure journalService implements the portssvc.JournalSvcFacade interface
var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// buildLines validates line requests against the chart of accounts and currency
// registry and computes base amounts.
func (s *journalService) buildLines(ctx context.Context, workplaceID, entryID string, entryType domain.EntryType, entryDate time.Time, reqs []dto.JournalLineRequest) ([]domain.JournalLine, error) {
	accountIDs := make([]string, 0, len(reqs))
	currencyIDs := make([]string, 0, len(reqs))
	for _, l := range reqs {
		accountIDs = append(accountIDs, l.AccountID)
		currencyIDs = append(currencyIDs, l.CurrencyID)
	}
	accountIDs = uniqueStrings(accountIDs)
	currencyIDs = uniqueStrings(currencyIDs)

	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, workplaceID, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load accounts: %w", err)
	}
	links, err := s.accountRepo.ListAccountCurrenciesByAccounts(ctx, workplaceID, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load account currencies: %w", err)
	}
	currencies, err := s.currencyRepo.FindCurrenciesByIDs(ctx, workplaceID, currencyIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load currencies: %w", err)
	}
	base, err := s.currencyRepo.FindBaseCurrency(ctx, workplaceID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewValidationError("the workplace has no base currency")
		}
		return nil, err
	}
	basePlaces := int32(base.Precision)

	lines := make([]domain.JournalLine, len(reqs))
	for i, req := range reqs {
		lineNo := i + 1
		account, ok := accounts[req.AccountID]
		if !ok {
			return nil, apperrors.NewValidationError("line %d: account %s not found", lineNo, req.AccountID)
		}
		if !account.IsActive {
			return nil, apperrors.NewValidationError("line %d: account %s is inactive", lineNo, account.Code)
		}
		if entryType == domain.EntryTypeManual && !account.AllowManualEntry {
			return nil, apperrors.NewValidationError("line %d: account %s does not accept manual entries", lineNo, account.Code)
		}
		currency, ok := currencies[req.CurrencyID]
		if !ok {
			return nil, apperrors.NewValidationError("line %d: currency %s not found", lineNo, req.CurrencyID)
		}
		if !currency.IsActive {
			return nil, apperrors.NewValidationError("line %d: currency %s is inactive", lineNo, currency.Code)
		}
		if !domain.AllowsCurrency(links[account.AccountID], currency.CurrencyID) {
			return nil, apperrors.NewValidationError("line %d: account %s does not accept currency %s", lineNo, account.Code, currency.Code)
		}

		line := domain.JournalLine{
			LineID:       uuid.NewString(),
			EntryID:      entryID,
			LineNumber:   lineNo,
			AccountID:    account.AccountID,
			CurrencyID:   currency.CurrencyID,
			Description:  req.Description,
			DebitAmount:  req.DebitAmount,
			CreditAmount: req.CreditAmount,
		}
		if err := line.ValidateAmounts(); err != nil {
			return nil, apperrors.NewValidationError("%s", err)
		}
		if !currency.FitsPrecision(line.DebitAmount) || !currency.FitsPrecision(line.CreditAmount) {
			return nil, apperrors.NewValidationError("line %d: amount exceeds the %d decimal places of %s", lineNo, currency.Precision, currency.Code)
		}

		rate, err := s.rates.RateToBase(ctx, workplaceID, currency.CurrencyID, entryDate, req.ExchangeRate)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		line.ExchangeRate = rate
		line.DebitAmountBase = line.DebitAmount.Mul(rate).Round(basePlaces)
		line.CreditAmountBase = line.CreditAmount.Mul(rate).Round(basePlaces)
		lines[i] = line
	}
	return lines, nil
}

// checkBalance returns the base totals of lines, or an UnbalancedError.
func checkBalance(lines []domain.JournalLine) (decimal.Decimal, decimal.Decimal, error) {
	debit, credit := domain.BaseTotals(lines)
	if !domain.IsBalanced(debit, credit) {
		return debit, credit, apperrors.NewUnbalancedError(debit, credit)
	}
	return debit, credit, nil
}

func uniqueStrings(input []string) []string {
	seen := make(map[string]struct{}, len(input))
	out := make([]string, 0, len(input))
	for _, v := range input {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func (s *journalService) ensureEntryNumberAvailable(ctx context.Context, workplaceID, entryNumber, exceptID string) error {
	exists, err := s.journalRepo.EntryNumberExists(ctx, workplaceID, entryNumber, exceptID)
	if err != nil {
		return err
	}
	if exists {
		return apperrors.NewDuplicateError("entry number %s already exists", entryNumber)
	}
	return nil
}

// CreateJournalEntry validates and stores a draft entry.
func (s *journalService) CreateJournalEntry(ctx context.Context, workplaceID string, req dto.CreateJournalEntryRequest, userID string) (*domain.JournalEntry, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.NewValidationError("%s", err)
	}
	entryType := req.EntryType
	if entryType == "" {
		entryType = domain.EntryTypeManual
	}

	entry := domain.JournalEntry{
		EntryID:         uuid.NewString(),
		WorkplaceID:     workplaceID,
		EntryNumber:     req.EntryNumber,
		EntryDate:       req.EntryDate,
		EntryType:       entryType,
		Description:     req.Description,
		Notes:           req.Notes,
		ReferenceType:   req.ReferenceType,
		ReferenceID:     req.ReferenceID,
		ReferenceNumber: req.ReferenceNumber,
		SubSystemID:     req.SubSystemID,
		Status:          domain.Draft,
		AuditFields:     domain.NewAuditFields(userID, s.now()),
	}

	err := s.uow.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.ensureEntryNumberAvailable(ctx, workplaceID, entry.EntryNumber, ""); err != nil {
			return err
		}
		lines, err := s.buildLines(ctx, workplaceID, entry.EntryID, entryType, entry.EntryDate, req.Lines)
		if err != nil {
			return err
		}
		debit, credit, err := checkBalance(lines)
		if err != nil {
			return err
		}
		entry.Lines = lines
		entry.TotalDebitBase = debit
		entry.TotalCreditBase = credit
		return s.journalRepo.SaveEntry(ctx, entry)
	})
	if err != nil {
		return nil, s.LogUnexpected(ctx, err, "Failed to create journal entry",
			slog.String("workplace_id", workplaceID),
			slog.String("entry_number", req.EntryNumber))
	}

	s.LogInfo(ctx, "Journal entry created",
		slog.String("entry_id", entry.EntryID),
		slog.String("entry_number", entry.EntryNumber),
		slog.Int("lines", len(entry.Lines)))
	return &entry, nil
}

func immutableError(entry *domain.JournalEntry) error {
	return fmt.Errorf("%w: entry %s is %s", apperrors.ErrImmutable, entry.EntryNumber, entry.Status)
}

// UpdateJournalEntry patches a draft entry.
func (s *journalService) UpdateJournalEntry(ctx context.Context, workplaceID, entryID string, req dto.UpdateJournalEntryRequest, userID string) (*domain.JournalEntry, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.NewValidationError("%s", err)
	}

	var updated *domain.JournalEntry
	err := s.uow.WithinTx(ctx, func(ctx context.Context) error {
		entry, err := s.journalRepo.FindEntryByIDForUpdate(ctx, workplaceID, entryID)
		if err != nil {
			return err
		}
		if !entry.Status.CanEdit() {
			return immutableError(entry)
		}

		if req.EntryNumber != nil && *req.EntryNumber != entry.EntryNumber {
			if err := s.ensureEntryNumberAvailable(ctx, workplaceID, *req.EntryNumber, entryID); err != nil {
				return err
			}
			entry.EntryNumber = *req.EntryNumber
		}
		if req.EntryDate != nil {
			entry.EntryDate = *req.EntryDate
		}
		if req.Description != nil {
			entry.Description = *req.Description
		}
		if req.Notes != nil {
			entry.Notes = req.Notes
		}
		if req.SubSystemID != nil {
			entry.SubSystemID = req.SubSystemID
		}

		if req.Lines != nil {
			lines, err := s.buildLines(ctx, workplaceID, entryID, entry.EntryType, entry.EntryDate, req.Lines)
			if err != nil {
				return err
			}
			debit, credit, err := checkBalance(lines)
			if err != nil {
				return err
			}
			if err := s.journalRepo.ReplaceLines(ctx, workplaceID, entryID, lines); err != nil {
				return err
			}
			entry.Lines = lines
			entry.TotalDebitBase = debit
			entry.TotalCreditBase = credit
		} else {
			lines, err := s.journalRepo.FindLinesByEntryID(ctx, workplaceID, entryID)
			if err != nil {
				return err
			}
			entry.Lines = lines
		}

		entry.Touch(userID, s.now())
		if err := s.journalRepo.UpdateEntry(ctx, *entry); err != nil {
			return err
		}
		updated = entry
		return nil
	})
	if err != nil {
		return nil, s.LogUnexpected(ctx, err, "Failed to update journal entry",
			slog.String("workplace_id", workplaceID), slog.String("entry_id", entryID))
	}

	s.LogInfo(ctx, "Journal entry updated", slog.String("entry_id", entryID))
	return updated, nil
}

// PostJournalEntry posts a draft and applies it to the balance store atomically.
func (s *journalService) PostJournalEntry(ctx context.Context, workplaceID, entryID, userID string) (*domain.JournalEntry, error) {
	var posted *domain.JournalEntry
	err := s.uow.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		posted, err = s.postLocked(ctx, workplaceID, entryID, userID)
		return err
	})
	if err != nil {
		return nil, s.LogUnexpected(ctx, err, "Failed to post journal entry",
			slog.String("workplace_id", workplaceID), slog.String("entry_id", entryID))
	}

	s.LogInfo(ctx, "Journal entry posted",
		slog.String("entry_id", posted.EntryID),
		slog.String("entry_number", posted.EntryNumber),
		slog.String("total_base", posted.TotalDebitBase.String()))
	return posted, nil
}

// postLocked must run inside a unit of work: the entry row stays locked until it ends.
func (s *journalService) postLocked(ctx context.Context, workplaceID, entryID, userID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByIDForUpdate(ctx, workplaceID, entryID)
	if err != nil {
		return nil, err
	}
	next, err := entry.Status.Post()
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrIllegalTransition, err)
	}
	lines, err := s.journalRepo.FindLinesByEntryID(ctx, workplaceID, entryID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, apperrors.NewValidationError("entry %s has no lines", entry.EntryNumber)
	}
	debit, credit, err := checkBalance(lines)
	if err != nil {
		return nil, err
	}
	entry.Lines = lines
	entry.TotalDebitBase = debit
	entry.TotalCreditBase = credit

	if err := s.balanceRepo.ApplyBalanceDeltas(ctx, workplaceID, domain.BalanceDeltas(*entry)); err != nil {
		return nil, fmt.Errorf("failed to apply balances: %w", err)
	}

	now := s.now()
	entry.Status = next
	entry.PostedAt = &now
	entry.PostedBy = &userID
	entry.Touch(userID, now)
	if err := s.journalRepo.UpdateEntry(ctx, *entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// ReverseJournalEntry creates and posts the mirror of a posted entry.
func (s *journalService) ReverseJournalEntry(ctx context.Context, workplaceID, entryID string, req dto.ReverseJournalEntryRequest, userID string) (*domain.JournalEntry, error) {
	if req.ReversalDate.IsZero() {
		return nil, apperrors.NewValidationError("reversal date is required")
	}

	var reversal *domain.JournalEntry
	err := s.uow.WithinTx(ctx, func(ctx context.Context) error {
		original, err := s.journalRepo.FindEntryByIDForUpdate(ctx, workplaceID, entryID)
		if err != nil {
			return err
		}
		next, err := original.Status.Reverse()
		if err != nil {
			return fmt.Errorf("%w: %s", apperrors.ErrIllegalTransition, err)
		}
		lines, err := s.journalRepo.FindLinesByEntryID(ctx, workplaceID, entryID)
		if err != nil {
			return err
		}

		reversalNumber := original.EntryNumber + domain.ReversalNumberSuffix
		if err := s.ensureEntryNumberAvailable(ctx, workplaceID, reversalNumber, ""); err != nil {
			return err
		}

		now := s.now()
		refType := domain.ReferenceJournalEntry
		draft := domain.JournalEntry{
			EntryID:         uuid.NewString(),
			WorkplaceID:     workplaceID,
			EntryNumber:     reversalNumber,
			EntryDate:       req.ReversalDate,
			EntryType:       domain.EntryTypeReversal,
			Description:     "Reversal of: " + original.Description,
			ReferenceType:   &refType,
			ReferenceID:     &original.EntryID,
			ReferenceNumber: &original.EntryNumber,
			SubSystemID:     original.SubSystemID,
			Status:          domain.Draft,
			TotalDebitBase:  original.TotalCreditBase,
			TotalCreditBase: original.TotalDebitBase,
			ReversedEntryID: &original.EntryID,
			AuditFields:     domain.NewAuditFields(userID, now),
		}
		if req.Reason != "" {
			reason := req.Reason
			draft.Notes = &reason
		}
		draft.Lines = make([]domain.JournalLine, len(lines))
		for i, l := range lines {
			m := l.Mirror()
			m.LineID = uuid.NewString()
			m.EntryID = draft.EntryID
			draft.Lines[i] = m
		}
		if err := s.journalRepo.SaveEntry(ctx, draft); err != nil {
			return err
		}

		reversal, err = s.postLocked(ctx, workplaceID, draft.EntryID, userID)
		if err != nil {
			return err
		}

		original.Status = next
		original.ReversedAt = &now
		original.ReversedBy = &userID
		original.ReversalEntryID = &reversal.EntryID
		original.Touch(userID, now)
		return s.journalRepo.UpdateEntry(ctx, *original)
	})
	if err != nil {
		return nil, s.LogUnexpected(ctx, err, "Failed to reverse journal entry",
			slog.String("workplace_id", workplaceID), slog.String("entry_id", entryID))
	}

	s.LogInfo(ctx, "Journal entry reversed",
		slog.String("entry_id", entryID),
		slog.String("reversal_entry_id", reversal.EntryID))
	return reversal, nil
}

// DeleteJournalEntry removes a draft entry and its lines.
func (s *journalService) DeleteJournalEntry(ctx context.Context, workplaceID, entryID, userID string) error {
	err := s.uow.WithinTx(ctx, func(ctx context.Context) error {
		entry, err := s.journalRepo.FindEntryByIDForUpdate(ctx, workplaceID, entryID)
		if err != nil {
			return err
		}
		if !entry.Status.CanEdit() {
			return immutableError(entry)
		}
		return s.journalRepo.DeleteEntry(ctx, workplaceID, entryID)
	})
	if err != nil {
		return s.LogUnexpected(ctx, err, "Failed to delete journal entry",
			slog.String("workplace_id", workplaceID), slog.String("entry_id", entryID))
	}
	s.LogInfo(ctx, "Journal entry deleted", slog.String("entry_id", entryID), slog.String("user_id", userID))
	return nil
}

// GetJournalEntry retrieves an entry with its lines.
func (s *journalService) GetJournalEntry(ctx context.Context, workplaceID, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, workplaceID, entryID)
	if err != nil {
		return nil, s.LogUnexpected(ctx, err, "Failed to get journal entry", slog.String("entry_id", entryID))
	}
	lines, err := s.journalRepo.FindLinesByEntryID(ctx, workplaceID, entryID)
	if err != nil {
		return nil, s.LogUnexpected(ctx, err, "Failed to get journal lines", slog.String("entry_id", entryID))
	}
	entry.Lines = lines
	return entry, nil
}

// ListJournalEntries retrieves a page of entry headers.
func (s *journalService) ListJournalEntries(ctx context.Context, workplaceID string, filter domain.JournalEntryFilter) ([]domain.JournalEntry, *string, error) {
	if filter.Limit <= 0 {
		filter.Limit = defaultEntryPageSize
	}
	if filter.Limit > maxEntryPageSize {
		filter.Limit = maxEntryPageSize
	}
	entries, next, err := s.journalRepo.ListEntries(ctx, workplaceID, filter)
	if err != nil {
		return nil, nil, s.LogUnexpected(ctx, err, "Failed to list journal entries", slog.String("workplace_id", workplaceID))
	}
	if entries == nil {
		entries = []domain.JournalEntry{}
	}
	return entries, next, nil
}

// ListRecentOperations retrieves the latest system-generated entries with lines.
func (s *journalService) ListRecentOperations(ctx context.Context, workplaceID string, limit int) ([]domain.JournalEntry, error) {
	if limit <= 0 || limit > maxEntryPageSize {
		limit = defaultRecentOperations
	}
	entryType := domain.EntryTypeSystemGenerated
	entries, _, err := s.journalRepo.ListEntries(ctx, workplaceID, domain.JournalEntryFilter{EntryType: &entryType, Limit: limit})
	if err != nil {
		return nil, s.LogUnexpected(ctx, err, "Failed to list recent operations", slog.String("workplace_id", workplaceID))
	}
	if len(entries) == 0 {
		return []domain.JournalEntry{}, nil
	}
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.EntryID
	}
	lines, err := s.journalRepo.FindLinesByEntryIDs(ctx, workplaceID, ids)
	if err != nil {
		return nil, s.LogUnexpected(ctx, err, "Failed to load lines of recent operations")
	}
	for i := range entries {
		entries[i].Lines = lines[entries[i].EntryID]
	}
	return entries, nil
}

// ReconcileBalance replays posted lines for one pair and compares with the stored row.
func (s *journalService) ReconcileBalance(ctx context.Context, workplaceID, accountID, currencyID string) (*domain.BalanceReconciliation, error) {
	replay, err := s.journalRepo.SumPostedLines(ctx, workplaceID, accountID, currencyID)
	if err != nil {
		return nil, s.LogUnexpected(ctx, err, "Failed to replay journal lines",
			slog.String("account_id", accountID), slog.String("currency_id", currencyID))
	}
	stored := domain.AccountBalance{}
	row, err := s.balanceRepo.FindBalance(ctx, workplaceID, accountID, currencyID)
	switch {
	case err == nil:
		stored = *row
	case !errors.Is(err, apperrors.ErrNotFound):
		return nil, s.LogUnexpected(ctx, err, "Failed to load stored balance",
			slog.String("account_id", accountID), slog.String("currency_id", currencyID))
	}

	rec := &domain.BalanceReconciliation{
		AccountID:           accountID,
		CurrencyID:          currencyID,
		StoredBalance:       stored.CurrentBalance,
		ReplayedBalance:     replay.Debit.Sub(replay.Credit),
		StoredBalanceBase:   stored.CurrentBalanceBase,
		ReplayedBalanceBase: replay.DebitBase.Sub(replay.CreditBase),
	}
	rec.InSync = rec.StoredBalance.Equal(rec.ReplayedBalance) && rec.StoredBalanceBase.Equal(rec.ReplayedBalanceBase)
	if !rec.InSync {
		s.LogInfo(ctx, "Balance drift detected",
			slog.String("account_id", accountID),
			slog.String("currency_id", currencyID),
			slog.String("stored", rec.StoredBalance.String()),
			slog.String("replayed", rec.ReplayedBalance.String()))
	}
	return rec, nil
}
