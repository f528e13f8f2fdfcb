package services_test

import (
	"testing"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/stretchr/testify/suite"
)

type AccountServiceTestSuite struct {
	ledgerFixture
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}

func (s *AccountServiceTestSuite) child(code, parentID string) *domain.Account {
	acc, err := s.svc.Account.CreateAccount(s.ctx, s.workplaceID, dto.CreateAccountRequest{
		Code: code, Name: "Account " + code, AccountType: domain.Asset, ParentAccountID: &parentID,
	}, s.userID)
	s.Require().NoError(err)
	return acc
}

func (s *AccountServiceTestSuite) TestCreateAccount_Defaults() {
	acc := s.account("1000", domain.Asset, "")

	s.Equal(1, acc.Level)
	s.Equal(domain.SubTypeGeneral, acc.SubType)
	s.True(acc.IsActive)
	s.True(acc.AllowManualEntry)
	s.Nil(acc.ParentAccountID)
	s.Equal(s.userID, acc.CreatedBy)
}

func (s *AccountServiceTestSuite) TestCreateAccount_LevelFromParent() {
	root := s.account("1000", domain.Asset, "")
	mid := s.child("1100", root.AccountID)
	leaf := s.child("1110", mid.AccountID)

	s.Equal(2, mid.Level)
	s.Equal(3, leaf.Level)

	children, err := s.svc.Account.ListAccounts(s.ctx, s.workplaceID, domain.AccountFilter{ParentAccountID: &root.AccountID})
	s.Require().NoError(err)
	s.Require().Len(children, 1)
	s.Equal("1100", children[0].Code)
}

func (s *AccountServiceTestSuite) TestCreateAccount_Rejections() {
	s.account("1000", domain.Asset, "")

	_, err := s.svc.Account.CreateAccount(s.ctx, s.workplaceID, dto.CreateAccountRequest{
		Code: "1000", Name: "Dup", AccountType: domain.Asset,
	}, s.userID)
	s.ErrorIs(err, apperrors.ErrDuplicate)

	_, err = s.svc.Account.CreateAccount(s.ctx, s.workplaceID, dto.CreateAccountRequest{
		Code: "1001", Name: "Bad", AccountType: "WIDGET",
	}, s.userID)
	s.ErrorIs(err, apperrors.ErrValidation, "unknown type")

	missing := "missing"
	_, err = s.svc.Account.CreateAccount(s.ctx, s.workplaceID, dto.CreateAccountRequest{
		Code: "1002", Name: "Orphan", AccountType: domain.Asset, ParentAccountID: &missing,
	}, s.userID)
	s.ErrorIs(err, apperrors.ErrValidation, "unknown parent")

	_, err = s.svc.Account.CreateAccount(s.ctx, s.workplaceID, dto.CreateAccountRequest{
		Code: "1003", Name: "Two defaults", AccountType: domain.Asset,
		Currencies: []dto.AccountCurrencyInput{
			{CurrencyID: s.sar.CurrencyID, IsDefault: true},
			{CurrencyID: s.usd.CurrencyID, IsDefault: true},
		},
	}, s.userID)
	s.ErrorIs(err, apperrors.ErrValidation, "one default currency")

	_, err = s.svc.Account.CreateAccount(s.ctx, s.workplaceID, dto.CreateAccountRequest{
		Code: "1004", Name: "Unknown currency", AccountType: domain.Asset,
		Currencies: []dto.AccountCurrencyInput{{CurrencyID: "missing"}},
	}, s.userID)
	s.ErrorIs(err, apperrors.ErrValidation, "unknown currency")

	_, err = s.svc.Account.GetAccountByID(s.ctx, s.workplaceID, "missing")
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *AccountServiceTestSuite) TestUpdateAccount_RejectsCycles() {
	root := s.account("1000", domain.Asset, "")
	mid := s.child("1100", root.AccountID)
	leaf := s.child("1110", mid.AccountID)

	_, err := s.svc.Account.UpdateAccount(s.ctx, s.workplaceID, root.AccountID,
		dto.UpdateAccountRequest{ParentAccountID: &leaf.AccountID}, s.userID)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.Contains(err.Error(), "descendant")

	_, err = s.svc.Account.UpdateAccount(s.ctx, s.workplaceID, root.AccountID,
		dto.UpdateAccountRequest{ParentAccountID: &root.AccountID}, s.userID)
	s.ErrorIs(err, apperrors.ErrValidation, "an account cannot be its own parent")

	other := s.account("2000", domain.Asset, "")
	moved, err := s.svc.Account.UpdateAccount(s.ctx, s.workplaceID, leaf.AccountID,
		dto.UpdateAccountRequest{ParentAccountID: &other.AccountID}, s.userID)
	s.Require().NoError(err)
	s.Equal(other.AccountID, *moved.ParentAccountID)
	s.Equal(2, moved.Level)

	detached, err := s.svc.Account.UpdateAccount(s.ctx, s.workplaceID, leaf.AccountID,
		dto.UpdateAccountRequest{DetachParent: true}, s.userID)
	s.Require().NoError(err)
	s.Nil(detached.ParentAccountID)
	s.Equal(1, detached.Level)
}

func (s *AccountServiceTestSuite) TestUpdateAccount_Fields() {
	acc := s.account("1000", domain.Asset, domain.SubTypeCash)
	s.account("1001", domain.Asset, "")

	_, err := s.svc.Account.UpdateAccount(s.ctx, s.workplaceID, acc.AccountID,
		dto.UpdateAccountRequest{Code: strPtr("1001")}, s.userID)
	s.ErrorIs(err, apperrors.ErrDuplicate)

	no := false
	bank := domain.SubTypeBank
	updated, err := s.svc.Account.UpdateAccount(s.ctx, s.workplaceID, acc.AccountID, dto.UpdateAccountRequest{
		Name: strPtr("Main bank"), SubType: &bank, IsActive: &no,
	}, s.userID)
	s.Require().NoError(err)
	s.Equal("Main bank", updated.Name)
	s.Equal(domain.SubTypeBank, updated.SubType)
	s.False(updated.IsActive)

	active, err := s.svc.Account.ListAccounts(s.ctx, s.workplaceID, domain.AccountFilter{ActiveOnly: true})
	s.Require().NoError(err)
	s.Len(active, 1)
}

func (s *AccountServiceTestSuite) TestDeleteAccount() {
	root := s.account("1000", domain.Asset, "")
	leaf := s.child("1100", root.AccountID)

	err := s.svc.Account.DeleteAccount(s.ctx, s.workplaceID, root.AccountID, s.userID)
	s.ErrorIs(err, apperrors.ErrIntegrity, "has children")

	revenue := s.account("4000", domain.Revenue, "")
	s.postedEntry("JE-1",
		debit(leaf.AccountID, s.sar.CurrencyID, "5"),
		credit(revenue.AccountID, s.sar.CurrencyID, "5"))
	err = s.svc.Account.DeleteAccount(s.ctx, s.workplaceID, leaf.AccountID, s.userID)
	s.ErrorIs(err, apperrors.ErrIntegrity, "has balances")

	unused := s.account("5000", domain.Expense, "")
	s.Require().NoError(s.svc.Account.DeleteAccount(s.ctx, s.workplaceID, unused.AccountID, s.userID))
	_, err = s.svc.Account.GetAccountByID(s.ctx, s.workplaceID, unused.AccountID)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *AccountServiceTestSuite) TestDeleteAccount_DraftLinesBlock() {
	a := s.account("1000", domain.Asset, "")
	b := s.account("2000", domain.Liability, "")
	_, err := s.svc.Journal.CreateJournalEntry(s.ctx, s.workplaceID, s.entryRequest("JE-1",
		debit(a.AccountID, s.sar.CurrencyID, "1"), credit(b.AccountID, s.sar.CurrencyID, "1")), s.userID)
	s.Require().NoError(err)

	err = s.svc.Account.DeleteAccount(s.ctx, s.workplaceID, a.AccountID, s.userID)
	s.ErrorIs(err, apperrors.ErrIntegrity)
}

func (s *AccountServiceTestSuite) TestAccountCurrencies() {
	acc, err := s.svc.Account.CreateAccount(s.ctx, s.workplaceID, dto.CreateAccountRequest{
		Code: "1000", Name: "Wallet", AccountType: domain.Asset, SubType: domain.SubTypeWallet,
		Currencies: []dto.AccountCurrencyInput{{CurrencyID: s.sar.CurrencyID, IsDefault: true}},
	}, s.userID)
	s.Require().NoError(err)

	_, err = s.svc.Account.AddAccountCurrency(s.ctx, s.workplaceID, acc.AccountID,
		dto.AccountCurrencyInput{CurrencyID: s.sar.CurrencyID}, s.userID)
	s.ErrorIs(err, apperrors.ErrDuplicate)

	_, err = s.svc.Account.AddAccountCurrency(s.ctx, s.workplaceID, acc.AccountID,
		dto.AccountCurrencyInput{CurrencyID: s.usd.CurrencyID, IsDefault: true}, s.userID)
	s.ErrorIs(err, apperrors.ErrValidation, "second default")

	link, err := s.svc.Account.AddAccountCurrency(s.ctx, s.workplaceID, acc.AccountID,
		dto.AccountCurrencyInput{CurrencyID: s.usd.CurrencyID}, s.userID)
	s.Require().NoError(err)
	s.Equal(s.usd.CurrencyID, link.CurrencyID)

	other := s.account("4000", domain.Revenue, "")
	s.postedEntry("JE-1",
		debit(acc.AccountID, s.usd.CurrencyID, "1"),
		credit(other.AccountID, s.usd.CurrencyID, "1"))

	details, err := s.svc.Account.GetAccountDetails(s.ctx, s.workplaceID, acc.AccountID)
	s.Require().NoError(err)
	s.Len(details.Currencies, 2)
	s.Require().Len(details.Balances, 1)
	s.Equal(s.usd.CurrencyID, details.Balances[0].CurrencyID)

	err = s.svc.Account.RemoveAccountCurrency(s.ctx, s.workplaceID, acc.AccountID, s.usd.CurrencyID, s.userID)
	s.ErrorIs(err, apperrors.ErrIntegrity, "currency carries a balance")

	s.Require().NoError(s.svc.Account.RemoveAccountCurrency(s.ctx, s.workplaceID, acc.AccountID, s.sar.CurrencyID, s.userID))
	err = s.svc.Account.RemoveAccountCurrency(s.ctx, s.workplaceID, acc.AccountID, s.sar.CurrencyID, s.userID)
	s.ErrorIs(err, apperrors.ErrNotFound)
}
