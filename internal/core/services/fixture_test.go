package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/core/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/SscSPs/ledger_engine/internal/repositories/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// ledgerFixture wires every service to a fresh in-memory store and seeds a
// SAR base currency and a USD currency quoted at 3.75 (3.70 - 3.80).
type ledgerFixture struct {
	suite.Suite
	ctx         context.Context
	store       *memory.Store
	svc         *portssvc.ServiceContainer
	workplaceID string
	userID      string
	today       time.Time
	sar         *domain.Currency
	usd         *domain.Currency
}

func (s *ledgerFixture) SetupTest() {
	s.ctx = context.Background()
	s.store = memory.New()
	s.svc = services.NewServiceContainer(memory.NewRepositoryProvider(s.store))
	s.workplaceID = "wp-1"
	s.userID = "user-1"
	s.today = time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	var err error
	s.sar, err = s.svc.Currency.CreateCurrency(s.ctx, s.workplaceID, dto.CreateCurrencyRequest{
		Code:   "sar",
		Name:   "Saudi Riyal",
		IsBase: true,
	}, s.userID)
	s.Require().NoError(err)

	s.usd, err = s.svc.Currency.CreateCurrency(s.ctx, s.workplaceID, dto.CreateCurrencyRequest{
		Code:        "USD",
		Name:        "US Dollar",
		CurrentRate: decPtr("3.75"),
		MinRate:     decPtr("3.70"),
		MaxRate:     decPtr("3.80"),
	}, s.userID)
	s.Require().NoError(err)
}

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func decPtr(v string) *decimal.Decimal {
	d := dec(v)
	return &d
}

func strPtr(v string) *string {
	return &v
}

func (s *ledgerFixture) account(code string, accType domain.AccountType, subType domain.AccountSubType) *domain.Account {
	acc, err := s.svc.Account.CreateAccount(s.ctx, s.workplaceID, dto.CreateAccountRequest{
		Code:        code,
		Name:        "Account " + code,
		AccountType: accType,
		SubType:     subType,
	}, s.userID)
	s.Require().NoError(err)
	return acc
}

func debit(accountID, currencyID, amount string) dto.JournalLineRequest {
	return dto.JournalLineRequest{AccountID: accountID, CurrencyID: currencyID, DebitAmount: dec(amount)}
}

func credit(accountID, currencyID, amount string) dto.JournalLineRequest {
	return dto.JournalLineRequest{AccountID: accountID, CurrencyID: currencyID, CreditAmount: dec(amount)}
}

func (s *ledgerFixture) entryRequest(number string, lines ...dto.JournalLineRequest) dto.CreateJournalEntryRequest {
	return dto.CreateJournalEntryRequest{
		EntryNumber: number,
		EntryDate:   s.today,
		Description: "Entry " + number,
		Lines:       lines,
	}
}

func (s *ledgerFixture) postedEntry(number string, lines ...dto.JournalLineRequest) *domain.JournalEntry {
	entry, err := s.svc.Journal.CreateJournalEntry(s.ctx, s.workplaceID, s.entryRequest(number, lines...), s.userID)
	s.Require().NoError(err)
	posted, err := s.svc.Journal.PostJournalEntry(s.ctx, s.workplaceID, entry.EntryID, s.userID)
	s.Require().NoError(err)
	return posted
}

// balance returns the stored row for the pair, or a zero row when none exists.
func (s *ledgerFixture) balance(accountID, currencyID string) domain.AccountBalance {
	rows, err := s.svc.Account.GetAccountBalances(s.ctx, s.workplaceID, accountID)
	s.Require().NoError(err)
	for _, row := range rows {
		if row.CurrencyID == currencyID {
			return row
		}
	}
	return domain.AccountBalance{AccountID: accountID, CurrencyID: currencyID}
}
