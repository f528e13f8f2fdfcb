package services_test

import (
	"testing"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/stretchr/testify/suite"
)

type CurrencyServiceTestSuite struct {
	ledgerFixture
}

func TestCurrencyServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CurrencyServiceTestSuite))
}

func (s *CurrencyServiceTestSuite) TestCreateCurrency_NormalisesAndDefaults() {
	s.Equal("SAR", s.sar.Code)
	s.True(s.sar.IsBase)
	s.True(s.sar.IsActive)
	s.Equal(2, s.sar.Precision)
	s.Require().NotNil(s.sar.CurrentRate)
	s.True(s.sar.CurrentRate.Equal(dec("1")))
	s.True(s.sar.MinRate.Equal(dec("1")))
	s.True(s.sar.MaxRate.Equal(dec("1")))
}

func (s *CurrencyServiceTestSuite) TestCreateCurrency_Rejections() {
	_, err := s.svc.Currency.CreateCurrency(s.ctx, s.workplaceID, dto.CreateCurrencyRequest{
		Code: "EUR", Name: "Euro", MinRate: decPtr("2"), MaxRate: decPtr("1"),
	}, s.userID)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.Contains(err.Error(), "min rate cannot exceed max rate")

	_, err = s.svc.Currency.CreateCurrency(s.ctx, s.workplaceID, dto.CreateCurrencyRequest{
		Code: "EUR", Name: "Euro", CurrentRate: decPtr("5"), MaxRate: decPtr("4"),
	}, s.userID)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.Contains(err.Error(), "above max rate")

	_, err = s.svc.Currency.CreateCurrency(s.ctx, s.workplaceID, dto.CreateCurrencyRequest{
		Code: "EUR", Name: "Euro", CurrentRate: decPtr("0"),
	}, s.userID)
	s.ErrorIs(err, apperrors.ErrValidation, "rates must be positive")

	_, err = s.svc.Currency.CreateCurrency(s.ctx, s.workplaceID, dto.CreateCurrencyRequest{Code: " ", Name: "Blank"}, s.userID)
	s.ErrorIs(err, apperrors.ErrValidation, "blank code")

	_, err = s.svc.Currency.CreateCurrency(s.ctx, s.workplaceID, dto.CreateCurrencyRequest{Code: "usd", Name: "Dollar again"}, s.userID)
	s.ErrorIs(err, apperrors.ErrDuplicate, "codes compare upper-cased")

	_, err = s.svc.Currency.CreateCurrency(s.ctx, "wp-other", dto.CreateCurrencyRequest{Code: "USD", Name: "US Dollar"}, s.userID)
	s.NoError(err, "codes are unique per workplace only")
}

func (s *CurrencyServiceTestSuite) TestCreateCurrency_BaseSwitch() {
	eur, err := s.svc.Currency.CreateCurrency(s.ctx, s.workplaceID, dto.CreateCurrencyRequest{
		Code: "EUR", Name: "Euro", IsBase: true, CurrentRate: decPtr("4.1"),
	}, s.userID)
	s.Require().NoError(err)
	s.True(eur.IsBase)
	s.True(eur.CurrentRate.Equal(dec("1")), "base rate fields are forced to 1")

	base, err := s.svc.Currency.GetBaseCurrency(s.ctx, s.workplaceID)
	s.Require().NoError(err)
	s.Equal(eur.CurrencyID, base.CurrencyID)

	sar, err := s.svc.Currency.GetCurrencyByID(s.ctx, s.workplaceID, s.sar.CurrencyID)
	s.Require().NoError(err)
	s.False(sar.IsBase)

	yes := true
	usd, err := s.svc.Currency.UpdateCurrency(s.ctx, s.workplaceID, s.usd.CurrencyID, dto.UpdateCurrencyRequest{IsBase: &yes}, s.userID)
	s.Require().NoError(err)
	s.True(usd.IsBase)
	s.True(usd.MinRate.Equal(dec("1")))
	s.True(usd.MaxRate.Equal(dec("1")))

	currencies, err := s.svc.Currency.ListCurrencies(s.ctx, s.workplaceID, false)
	s.Require().NoError(err)
	bases := 0
	for _, c := range currencies {
		if c.IsBase {
			bases++
		}
	}
	s.Equal(1, bases)
}

func (s *CurrencyServiceTestSuite) TestUpdateCurrency() {
	no := false
	_, err := s.svc.Currency.UpdateCurrency(s.ctx, s.workplaceID, s.sar.CurrencyID, dto.UpdateCurrencyRequest{IsBase: &no}, s.userID)
	s.ErrorIs(err, apperrors.ErrValidation, "the base flag moves, it is never cleared")

	_, err = s.svc.Currency.UpdateCurrency(s.ctx, s.workplaceID, s.sar.CurrencyID, dto.UpdateCurrencyRequest{IsActive: &no}, s.userID)
	s.ErrorIs(err, apperrors.ErrValidation, "the base currency stays active")

	_, err = s.svc.Currency.UpdateCurrency(s.ctx, s.workplaceID, s.usd.CurrencyID, dto.UpdateCurrencyRequest{CurrentRate: decPtr("3.90")}, s.userID)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.Contains(err.Error(), "above max rate")

	updated, err := s.svc.Currency.UpdateCurrency(s.ctx, s.workplaceID, s.usd.CurrencyID, dto.UpdateCurrencyRequest{
		CurrentRate: decPtr("3.79"),
		Code:        strPtr("usd"),
	}, s.userID)
	s.Require().NoError(err)
	s.Equal("USD", updated.Code)
	s.True(updated.CurrentRate.Equal(dec("3.79")))
}

func (s *CurrencyServiceTestSuite) TestDeleteCurrency() {
	err := s.svc.Currency.DeleteCurrency(s.ctx, s.workplaceID, s.sar.CurrencyID, s.userID)
	s.ErrorIs(err, apperrors.ErrValidation, "base currency")

	eur, err := s.svc.Currency.CreateCurrency(s.ctx, s.workplaceID, dto.CreateCurrencyRequest{Code: "EUR", Name: "Euro"}, s.userID)
	s.Require().NoError(err)
	_, err = s.svc.ExchangeRate.CreateExchangeRate(s.ctx, s.workplaceID, dto.CreateExchangeRateRequest{
		FromCurrencyID: eur.CurrencyID, ToCurrencyID: s.sar.CurrencyID, Rate: dec("4.1"), EffectiveDate: s.today,
	}, s.userID)
	s.Require().NoError(err)
	err = s.svc.Currency.DeleteCurrency(s.ctx, s.workplaceID, eur.CurrencyID, s.userID)
	s.ErrorIs(err, apperrors.ErrIntegrity, "referenced by a rate record")

	_, err = s.svc.Account.CreateAccount(s.ctx, s.workplaceID, dto.CreateAccountRequest{
		Code: "1000", Name: "Cash", AccountType: "ASSET",
		Currencies: []dto.AccountCurrencyInput{{CurrencyID: s.usd.CurrencyID, IsDefault: true}},
	}, s.userID)
	s.Require().NoError(err)
	err = s.svc.Currency.DeleteCurrency(s.ctx, s.workplaceID, s.usd.CurrencyID, s.userID)
	s.ErrorIs(err, apperrors.ErrIntegrity, "referenced by an account link")

	gbp, err := s.svc.Currency.CreateCurrency(s.ctx, s.workplaceID, dto.CreateCurrencyRequest{Code: "GBP", Name: "Pound"}, s.userID)
	s.Require().NoError(err)
	s.Require().NoError(s.svc.Currency.DeleteCurrency(s.ctx, s.workplaceID, gbp.CurrencyID, s.userID))
	_, err = s.svc.Currency.GetCurrencyByID(s.ctx, s.workplaceID, gbp.CurrencyID)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *CurrencyServiceTestSuite) TestListCurrencies_ActiveOnly() {
	no := false
	_, err := s.svc.Currency.CreateCurrency(s.ctx, s.workplaceID, dto.CreateCurrencyRequest{Code: "EUR", Name: "Euro", IsActive: &no}, s.userID)
	s.Require().NoError(err)

	all, err := s.svc.Currency.ListCurrencies(s.ctx, s.workplaceID, false)
	s.Require().NoError(err)
	s.Len(all, 3)

	active, err := s.svc.Currency.ListCurrencies(s.ctx, s.workplaceID, true)
	s.Require().NoError(err)
	s.Len(active, 2)
}
