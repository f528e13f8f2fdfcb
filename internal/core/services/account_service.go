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

// maxAccountDepth bounds ancestor walks; deeper chains are treated as cycles.
const maxAccountDepth = 64

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	uow          portsrepo.UnitOfWork
	accountRepo  portsrepo.AccountRepositoryFacade
	currencyRepo portsrepo.CurrencyReader
	balanceRepo  portsrepo.BalanceReader
	typeCatalog  portssvc.AccountTypeResolver
}

// AccountServiceOption is a functional option for configuring the account service
type AccountServiceOption func(*accountService)

// WithAccountUnitOfWork sets the unit of work used for multi-row writes.
func WithAccountUnitOfWork(uow portsrepo.UnitOfWork) AccountServiceOption {
	return func(s *accountService) {
		s.uow = uow
	}
}

// WithCurrencyReader adds currency repository dependency
func WithCurrencyReader(repo portsrepo.CurrencyReader) AccountServiceOption {
	return func(s *accountService) {
		s.currencyRepo = repo
	}
}

// WithBalanceReader adds balance repository dependency
func WithBalanceReader(repo portsrepo.BalanceReader) AccountServiceOption {
	return func(s *accountService) {
		s.balanceRepo = repo
	}
}

// WithAccountTypeCatalog validates account types against the workplace's catalog.
// Without it only the five base types are accepted.
func WithAccountTypeCatalog(catalog portssvc.AccountTypeResolver) AccountServiceOption {
	return func(s *accountService) {
		s.typeCatalog = catalog
	}
}

// NewAccountService creates a new account service with the provided options
func NewAccountService(repo portsrepo.AccountRepositoryFacade, options ...AccountServiceOption) portssvc.AccountSvcFacade {
	svc := &accountService{
		accountRepo: repo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure accountService implements the AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) withinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.uow == nil {
		return fn(ctx)
	}
	return s.uow.WithinTx(ctx, fn)
}

func (s *accountService) CreateAccount(ctx context.Context, workplaceID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	code := strings.TrimSpace(req.Code)
	name := strings.TrimSpace(req.Name)
	if code == "" || name == "" {
		return nil, apperrors.NewValidationError("account code and name are required")
	}
	if req.AccountType != "" && !req.AccountType.Valid() {
		return nil, apperrors.NewValidationError("unknown account type %q", req.AccountType)
	}
	subType := req.SubType
	if subType == "" {
		subType = domain.SubTypeGeneral
	}
	if !subType.Valid() {
		return nil, apperrors.NewValidationError("unknown account sub type %q", subType)
	}
	if req.Level < 0 {
		return nil, apperrors.NewValidationError("level cannot be negative")
	}
	if err := validateCurrencyLinks(req.Currencies); err != nil {
		return nil, err
	}

	account := domain.Account{
		AccountID:        uuid.NewString(),
		WorkplaceID:      workplaceID,
		Code:             code,
		Name:             name,
		NameEn:           req.NameEn,
		SubType:          subType,
		Level:            req.Level,
		IsActive:         boolOr(req.IsActive, true),
		AllowManualEntry: boolOr(req.AllowManualEntry, true),
		SubSystemID:      req.SubSystemID,
		Description:      req.Description,
		AuditFields:      domain.NewAuditFields(userID, s.now()),
	}

	err := s.withinTx(ctx, func(ctx context.Context) error {
		def, err := s.resolveType(ctx, workplaceID, req.AccountType, req.TypeCode)
		if err != nil {
			return err
		}
		account.AccountType = def.Classification
		account.TypeCode = def.TypeCode
		if err := s.ensureCodeAvailable(ctx, workplaceID, code, ""); err != nil {
			return err
		}
		if req.ParentAccountID != nil && *req.ParentAccountID != "" {
			parent, err := s.findParent(ctx, workplaceID, *req.ParentAccountID)
			if err != nil {
				return err
			}
			account.ParentAccountID = &parent.AccountID
			if account.Level == 0 {
				account.Level = parent.Level + 1
			}
		} else if account.Level == 0 {
			account.Level = 1
		}
		if err := s.requireCurrencies(ctx, workplaceID, req.Currencies); err != nil {
			return err
		}
		if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
			return err
		}
		for _, link := range req.Currencies {
			err := s.accountRepo.SaveAccountCurrency(ctx, domain.AccountCurrency{
				WorkplaceID: workplaceID,
				AccountID:   account.AccountID,
				CurrencyID:  link.CurrencyID,
				IsDefault:   link.IsDefault,
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, s.LogUnexpected(ctx, err, "Failed to create account",
			slog.String("workplace_id", workplaceID), slog.String("code", code))
	}

	s.LogInfo(ctx, "Account created",
		slog.String("account_id", account.AccountID),
		slog.String("code", account.Code),
		slog.Int("level", account.Level))
	return &account, nil
}

// resolveType picks the catalog entry named by typeCode, or the system entry of
// accountType when no code is given. A given accountType must match the entry's
// classification.
func (s *accountService) resolveType(ctx context.Context, workplaceID string, accountType domain.AccountType, typeCode *string) (*domain.AccountTypeDefinition, error) {
	code := string(accountType)
	if typeCode != nil && strings.TrimSpace(*typeCode) != "" {
		code = domain.NormalizeTypeCode(*typeCode)
	}
	if code == "" {
		return nil, apperrors.NewValidationError("account type or type code is required")
	}
	if s.typeCatalog == nil {
		t := domain.AccountType(code)
		if !t.Valid() {
			return nil, apperrors.NewValidationError("unknown account type %q", code)
		}
		return &domain.AccountTypeDefinition{TypeCode: code, Classification: t, IsActive: true}, nil
	}
	def, err := s.typeCatalog.ResolveAccountType(ctx, workplaceID, code)
	if err != nil {
		return nil, err
	}
	if accountType != "" && def.Classification != accountType {
		return nil, apperrors.NewValidationError("account type %s is classified as %s, not %s", def.TypeCode, def.Classification, accountType)
	}
	return def, nil
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

func validateCurrencyLinks(links []dto.AccountCurrencyInput) error {
	seen := make(map[string]bool, len(links))
	defaults := 0
	for _, l := range links {
		if l.CurrencyID == "" {
			return apperrors.NewValidationError("currency id is required on every account currency")
		}
		if seen[l.CurrencyID] {
			return apperrors.NewValidationError("currency %s is linked twice", l.CurrencyID)
		}
		seen[l.CurrencyID] = true
		if l.IsDefault {
			defaults++
		}
	}
	if defaults > 1 {
		return apperrors.NewValidationError("an account can have at most one default currency")
	}
	return nil
}

func (s *accountService) requireCurrencies(ctx context.Context, workplaceID string, links []dto.AccountCurrencyInput) error {
	if len(links) == 0 {
		return nil
	}
	ids := make([]string, len(links))
	for i, l := range links {
		ids[i] = l.CurrencyID
	}
	found, err := s.currencyRepo.FindCurrenciesByIDs(ctx, workplaceID, ids)
	if err != nil {
		return err
	}
	for _, id := range ids {
		c, ok := found[id]
		if !ok {
			return apperrors.NewValidationError("currency %s not found", id)
		}
		if !c.IsActive {
			return apperrors.NewValidationError("currency %s is inactive", c.Code)
		}
	}
	return nil
}

func (s *accountService) ensureCodeAvailable(ctx context.Context, workplaceID, code, exceptID string) error {
	existing, err := s.accountRepo.FindAccountByCode(ctx, workplaceID, code)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		return err
	}
	if existing.AccountID != exceptID {
		return apperrors.NewDuplicateError("account code %s already exists", code)
	}
	return nil
}

func (s *accountService) findParent(ctx context.Context, workplaceID, parentID string) (*domain.Account, error) {
	parent, err := s.accountRepo.FindAccountByID(ctx, workplaceID, parentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewValidationError("parent account %s not found", parentID)
		}
		return nil, err
	}
	return parent, nil
}

func (s *accountService) UpdateAccount(ctx context.Context, workplaceID, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	var updated *domain.Account
	err := s.withinTx(ctx, func(ctx context.Context) error {
		account, err := s.accountRepo.FindAccountByID(ctx, workplaceID, accountID)
		if err != nil {
			return err
		}
		if req.Code != nil {
			code := strings.TrimSpace(*req.Code)
			if code == "" {
				return apperrors.NewValidationError("account code cannot be blank")
			}
			if code != account.Code {
				if err := s.ensureCodeAvailable(ctx, workplaceID, code, accountID); err != nil {
					return err
				}
			}
			account.Code = code
		}
		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if name == "" {
				return apperrors.NewValidationError("account name cannot be blank")
			}
			account.Name = name
		}
		if req.NameEn != nil {
			account.NameEn = req.NameEn
		}
		if req.TypeCode != nil {
			def, err := s.resolveType(ctx, workplaceID, account.AccountType, req.TypeCode)
			if err != nil {
				return err
			}
			account.TypeCode = def.TypeCode
		}
		if req.SubType != nil {
			if !req.SubType.Valid() {
				return apperrors.NewValidationError("unknown account sub type %q", *req.SubType)
			}
			account.SubType = *req.SubType
		}
		if req.IsActive != nil {
			account.IsActive = *req.IsActive
		}
		if req.AllowManualEntry != nil {
			account.AllowManualEntry = *req.AllowManualEntry
		}
		if req.SubSystemID != nil {
			account.SubSystemID = req.SubSystemID
		}
		if req.Description != nil {
			account.Description = req.Description
		}

		switch {
		case req.DetachParent:
			account.ParentAccountID = nil
			if req.Level == nil {
				account.Level = 1
			}
		case req.ParentAccountID != nil && *req.ParentAccountID != "":
			parent, err := s.findParent(ctx, workplaceID, *req.ParentAccountID)
			if err != nil {
				return err
			}
			acyclic, err := domain.CheckParentAcyclic(accountID, parent.AccountID, func(id string) (*domain.Account, error) {
				return s.accountRepo.FindAccountByID(ctx, workplaceID, id)
			}, maxAccountDepth)
			if err != nil {
				return err
			}
			if !acyclic {
				return apperrors.NewValidationError("account %s cannot be placed under its own descendant %s", account.Code, parent.Code)
			}
			account.ParentAccountID = &parent.AccountID
			if req.Level == nil {
				account.Level = parent.Level + 1
			}
		}
		if req.Level != nil {
			if *req.Level < 1 {
				return apperrors.NewValidationError("level must be at least 1")
			}
			account.Level = *req.Level
		}

		account.Touch(userID, s.now())
		if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
			return err
		}
		updated = account
		return nil
	})
	if err != nil {
		return nil, s.LogUnexpected(ctx, err, "Failed to update account",
			slog.String("workplace_id", workplaceID), slog.String("account_id", accountID))
	}
	s.LogInfo(ctx, "Account updated", slog.String("account_id", accountID))
	return updated, nil
}

func (s *accountService) DeleteAccount(ctx context.Context, workplaceID, accountID, userID string) error {
	err := s.withinTx(ctx, func(ctx context.Context) error {
		account, err := s.accountRepo.FindAccountByID(ctx, workplaceID, accountID)
		if err != nil {
			return err
		}
		hasChildren, err := s.accountRepo.HasChildAccounts(ctx, workplaceID, accountID)
		if err != nil {
			return err
		}
		if hasChildren {
			return apperrors.NewIntegrityError("account %s has sub accounts", account.Code)
		}
		hasBalances, err := s.balanceRepo.HasBalancesForAccount(ctx, workplaceID, accountID)
		if err != nil {
			return err
		}
		if hasBalances {
			return apperrors.NewIntegrityError("account %s has balances", account.Code)
		}
		hasLines, err := s.accountRepo.HasJournalLines(ctx, workplaceID, accountID)
		if err != nil {
			return err
		}
		if hasLines {
			return apperrors.NewIntegrityError("account %s is used by journal entries", account.Code)
		}
		return s.accountRepo.DeleteAccount(ctx, workplaceID, accountID)
	})
	if err != nil {
		return s.LogUnexpected(ctx, err, "Failed to delete account",
			slog.String("workplace_id", workplaceID), slog.String("account_id", accountID))
	}
	s.LogInfo(ctx, "Account deleted", slog.String("account_id", accountID), slog.String("user_id", userID))
	return nil
}

func (s *accountService) GetAccountByID(ctx context.Context, workplaceID, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, workplaceID, accountID)
	if err != nil {
		return nil, s.LogUnexpected(ctx, err, "Failed to get account", slog.String("account_id", accountID))
	}
	return account, nil
}

func (s *accountService) GetAccountDetails(ctx context.Context, workplaceID, accountID string) (*domain.AccountDetails, error) {
	account, err := s.GetAccountByID(ctx, workplaceID, accountID)
	if err != nil {
		return nil, err
	}
	links, err := s.accountRepo.ListAccountCurrencies(ctx, workplaceID, accountID)
	if err != nil {
		return nil, s.LogUnexpected(ctx, err, "Failed to list account currencies", slog.String("account_id", accountID))
	}
	balances, err := s.balanceRepo.ListBalancesByAccount(ctx, workplaceID, accountID)
	if err != nil {
		return nil, s.LogUnexpected(ctx, err, "Failed to list account balances", slog.String("account_id", accountID))
	}
	return &domain.AccountDetails{Account: *account, Currencies: links, Balances: balances}, nil
}

func (s *accountService) GetAccountBalances(ctx context.Context, workplaceID, accountID string) ([]domain.AccountBalance, error) {
	if _, err := s.GetAccountByID(ctx, workplaceID, accountID); err != nil {
		return nil, err
	}
	balances, err := s.balanceRepo.ListBalancesByAccount(ctx, workplaceID, accountID)
	if err != nil {
		return nil, s.LogUnexpected(ctx, err, "Failed to list account balances", slog.String("account_id", accountID))
	}
	if balances == nil {
		return []domain.AccountBalance{}, nil
	}
	return balances, nil
}

// ListAccounts retrieves the workplace's accounts matching filter.
func (s *accountService) ListAccounts(ctx context.Context, workplaceID string, filter domain.AccountFilter) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, workplaceID, filter)
	if err != nil {
		return nil, s.LogUnexpected(ctx, err, "Failed to list accounts", slog.String("workplace_id", workplaceID))
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	s.LogDebug(ctx, "Accounts listed", slog.Int("count", len(accounts)))
	return accounts, nil
}

func (s *accountService) AddAccountCurrency(ctx context.Context, workplaceID, accountID string, req dto.AccountCurrencyInput, userID string) (*domain.AccountCurrency, error) {
	link := domain.AccountCurrency{
		WorkplaceID: workplaceID,
		AccountID:   accountID,
		CurrencyID:  req.CurrencyID,
		IsDefault:   req.IsDefault,
	}
	err := s.withinTx(ctx, func(ctx context.Context) error {
		if _, err := s.accountRepo.FindAccountByID(ctx, workplaceID, accountID); err != nil {
			return err
		}
		if err := s.requireCurrencies(ctx, workplaceID, []dto.AccountCurrencyInput{req}); err != nil {
			return err
		}
		existing, err := s.accountRepo.ListAccountCurrencies(ctx, workplaceID, accountID)
		if err != nil {
			return err
		}
		for _, l := range existing {
			if l.CurrencyID == req.CurrencyID {
				return apperrors.NewDuplicateError("currency %s is already linked to the account", req.CurrencyID)
			}
			if req.IsDefault && l.IsDefault {
				return apperrors.NewValidationError("the account already has a default currency")
			}
		}
		return s.accountRepo.SaveAccountCurrency(ctx, link)
	})
	if err != nil {
		return nil, s.LogUnexpected(ctx, err, "Failed to link currency to account",
			slog.String("account_id", accountID), slog.String("currency_id", req.CurrencyID))
	}
	s.LogInfo(ctx, "Currency linked to account",
		slog.String("account_id", accountID),
		slog.String("currency_id", req.CurrencyID),
		slog.String("user_id", userID))
	return &link, nil
}

func (s *accountService) RemoveAccountCurrency(ctx context.Context, workplaceID, accountID, currencyID, userID string) error {
	err := s.withinTx(ctx, func(ctx context.Context) error {
		links, err := s.accountRepo.ListAccountCurrencies(ctx, workplaceID, accountID)
		if err != nil {
			return err
		}
		if !domain.AllowsCurrency(links, currencyID) || len(links) == 0 {
			return apperrors.NewNotFoundError("account currency", currencyID)
		}
		hasBalance, err := s.balanceRepo.HasBalance(ctx, workplaceID, accountID, currencyID)
		if err != nil {
			return err
		}
		if hasBalance {
			return apperrors.NewIntegrityError("currency %s has a balance on the account", currencyID)
		}
		return s.accountRepo.DeleteAccountCurrency(ctx, workplaceID, accountID, currencyID)
	})
	if err != nil {
		return s.LogUnexpected(ctx, err, "Failed to unlink currency from account",
			slog.String("account_id", accountID), slog.String("currency_id", currencyID))
	}
	s.LogInfo(ctx, "Currency unlinked from account",
		slog.String("account_id", accountID),
		slog.String("currency_id", currencyID),
		slog.String("user_id", userID))
	return nil
}
