package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_engine/internal/core/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/SscSPs/ledger_engine/internal/repositories/memory"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock VoucherRepository ---
type MockVoucherRepository struct {
	mock.Mock
}

var _ portsrepo.VoucherRepositoryFacade = (*MockVoucherRepository)(nil)

func (m *MockVoucherRepository) FindVoucherByID(ctx context.Context, workplaceID, voucherID string) (*domain.Voucher, error) {
	args := m.Called(ctx, workplaceID, voucherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Voucher), args.Error(1)
}

func (m *MockVoucherRepository) FindVoucherByIDForUpdate(ctx context.Context, workplaceID, voucherID string) (*domain.Voucher, error) {
	args := m.Called(ctx, workplaceID, voucherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Voucher), args.Error(1)
}

func (m *MockVoucherRepository) ListVouchers(ctx context.Context, workplaceID string, filter domain.VoucherFilter) ([]domain.Voucher, error) {
	args := m.Called(ctx, workplaceID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Voucher), args.Error(1)
}

func (m *MockVoucherRepository) SaveVoucher(ctx context.Context, voucher domain.Voucher) error {
	args := m.Called(ctx, voucher)
	return args.Error(0)
}

func (m *MockVoucherRepository) UpdateVoucher(ctx context.Context, voucher domain.Voucher) error {
	args := m.Called(ctx, voucher)
	return args.Error(0)
}

func (m *MockVoucherRepository) DeleteVoucher(ctx context.Context, workplaceID, voucherID string) error {
	args := m.Called(ctx, workplaceID, voucherID)
	return args.Error(0)
}

type OperationServiceTestSuite struct {
	ledgerFixture
	treasury     *domain.Account
	intermediary *domain.Account
	supplier     *domain.Account
}

func (s *OperationServiceTestSuite) SetupTest() {
	s.ledgerFixture.SetupTest()
	s.treasury = s.account("1100", domain.Asset, domain.SubTypeBank)
	s.intermediary = s.account("1900", domain.Asset, domain.SubTypeIntermediary)
	s.supplier = s.account("2100", domain.Liability, domain.SubTypeSupplier)
}

func TestOperationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(OperationServiceTestSuite))
}

func (s *OperationServiceTestSuite) receipt(number, amount, currencyID string) dto.CreateReceiptRequest {
	return dto.CreateReceiptRequest{
		TreasuryAccountID: s.treasury.AccountID,
		SourceAccountID:   s.intermediary.AccountID,
		OperationFields: dto.OperationFields{
			VoucherNumber: number,
			VoucherDate:   s.today,
			Amount:        dec(amount),
			CurrencyID:    currencyID,
		},
	}
}

func (s *OperationServiceTestSuite) TestCreateReceipt_UsesCurrencyRate() {
	details, err := s.svc.Operation.CreateReceipt(s.ctx, s.workplaceID, s.receipt("R-1", "100", s.usd.CurrencyID), s.userID)
	s.Require().NoError(err)

	s.Equal(domain.VoucherReceipt, details.VoucherType)
	s.Equal(domain.VoucherApproved, details.Status)
	s.Equal(s.intermediary.AccountID, details.FromAccountID)
	s.Equal(s.treasury.AccountID, details.ToAccountID)
	s.Equal(domain.SubTypeIntermediary, details.SourceType)
	s.Equal(domain.SubTypeBank, details.DestinationType)
	s.True(details.ExchangeRate.Equal(dec("3.75")))
	s.True(details.AmountInBase.Equal(dec("375")))

	entry := details.Entry
	s.Require().NotNil(entry)
	s.Equal(domain.Posted, entry.Status)
	s.Equal(domain.EntryTypeSystemGenerated, entry.EntryType)
	s.Equal("REC-R-1", entry.EntryNumber)
	s.Equal(details.JournalEntryID, entry.EntryID)
	s.Require().NotNil(entry.ReferenceID)
	s.Equal(details.VoucherID, *entry.ReferenceID)
	s.Require().Len(entry.Lines, 2)
	s.Equal(s.treasury.AccountID, entry.Lines[0].AccountID)
	s.True(entry.Lines[0].DebitAmountBase.Equal(dec("375")))
	s.Equal(s.intermediary.AccountID, entry.Lines[1].AccountID)
	s.True(entry.Lines[1].CreditAmountBase.Equal(dec("375")))

	treasury := s.balance(s.treasury.AccountID, s.usd.CurrencyID)
	s.True(treasury.CurrentBalance.Equal(dec("100")))
	s.True(treasury.CurrentBalanceBase.Equal(dec("375")))
	source := s.balance(s.intermediary.AccountID, s.usd.CurrencyID)
	s.True(source.CurrentBalance.Equal(dec("-100")))
}

func (s *OperationServiceTestSuite) TestCreatePayment_CreditsTreasury() {
	details, err := s.svc.Operation.CreatePayment(s.ctx, s.workplaceID, dto.CreatePaymentRequest{
		TreasuryAccountID:    s.treasury.AccountID,
		DestinationAccountID: s.supplier.AccountID,
		OperationFields: dto.OperationFields{
			VoucherNumber: "P-1",
			VoucherDate:   s.today,
			Amount:        dec("40"),
			CurrencyID:    s.usd.CurrencyID,
			ExchangeRate:  decPtr("3.76"),
		},
	}, s.userID)
	s.Require().NoError(err)

	s.Equal("PAY-P-1", details.Entry.EntryNumber)
	s.True(details.ExchangeRate.Equal(dec("3.76")))
	s.True(details.AmountInBase.Equal(dec("150.4")))
	s.True(s.balance(s.treasury.AccountID, s.usd.CurrencyID).CurrentBalance.Equal(dec("-40")))
	s.True(s.balance(s.supplier.AccountID, s.usd.CurrencyID).CurrentBalance.Equal(dec("40")))
}

func (s *OperationServiceTestSuite) TestCreateTransfer_BaseCurrency() {
	details, err := s.svc.Operation.CreateTransfer(s.ctx, s.workplaceID, dto.CreateTransferRequest{
		FromAccountID: s.treasury.AccountID,
		ToAccountID:   s.intermediary.AccountID,
		OperationFields: dto.OperationFields{
			VoucherNumber: "T-1",
			VoucherDate:   s.today,
			Amount:        dec("25"),
			CurrencyID:    s.sar.CurrencyID,
		},
	}, s.userID)
	s.Require().NoError(err)

	s.True(details.ExchangeRate.Equal(dec("1")))
	s.Equal("Transfer T-1: Account 1100 to Account 1900", details.Entry.Description)
}

func (s *OperationServiceTestSuite) TestCompose_Rejections() {
	req := s.receipt("R-1", "10", s.usd.CurrencyID)
	req.SourceAccountID = s.treasury.AccountID
	_, err := s.svc.Operation.CreateReceipt(s.ctx, s.workplaceID, req, s.userID)
	s.ErrorIs(err, apperrors.ErrValidation, "same account on both sides")

	req = s.receipt("R-2", "0", s.usd.CurrencyID)
	_, err = s.svc.Operation.CreateReceipt(s.ctx, s.workplaceID, req, s.userID)
	s.ErrorIs(err, apperrors.ErrValidation, "zero amount")

	req = s.receipt("R-3", "10", "missing")
	_, err = s.svc.Operation.CreateReceipt(s.ctx, s.workplaceID, req, s.userID)
	s.ErrorIs(err, apperrors.ErrValidation, "unknown currency")

	req = s.receipt("R-4", "10", s.usd.CurrencyID)
	req.ExchangeRate = decPtr("3.50")
	_, err = s.svc.Operation.CreateReceipt(s.ctx, s.workplaceID, req, s.userID)
	s.ErrorIs(err, apperrors.ErrRateOutOfBounds, "rate below min")

	req = s.receipt("R-5", "10.005", s.usd.CurrencyID)
	_, err = s.svc.Operation.CreateReceipt(s.ctx, s.workplaceID, req, s.userID)
	s.ErrorIs(err, apperrors.ErrValidation, "more decimals than USD allows")

	vouchers, err := s.svc.Operation.ListVouchers(s.ctx, s.workplaceID, domain.VoucherFilter{})
	s.Require().NoError(err)
	s.Empty(vouchers)
	entries, _, err := s.svc.Journal.ListJournalEntries(s.ctx, s.workplaceID, domain.JournalEntryFilter{})
	s.Require().NoError(err)
	s.Empty(entries)
	rows, err := s.svc.Account.GetAccountBalances(s.ctx, s.workplaceID, s.treasury.AccountID)
	s.Require().NoError(err)
	s.Empty(rows)
}

func (s *OperationServiceTestSuite) TestCompose_AccountCurrencyRestriction() {
	_, err := s.svc.Account.AddAccountCurrency(s.ctx, s.workplaceID, s.treasury.AccountID,
		dto.AccountCurrencyInput{CurrencyID: s.sar.CurrencyID, IsDefault: true}, s.userID)
	s.Require().NoError(err)

	_, err = s.svc.Operation.CreateReceipt(s.ctx, s.workplaceID, s.receipt("R-1", "10", s.usd.CurrencyID), s.userID)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.Contains(err.Error(), "does not accept currency USD")
}

func (s *OperationServiceTestSuite) TestCompose_DuplicateVoucherNumber() {
	_, err := s.svc.Operation.CreateReceipt(s.ctx, s.workplaceID, s.receipt("R-1", "100", s.usd.CurrencyID), s.userID)
	s.Require().NoError(err)

	_, err = s.svc.Operation.CreateReceipt(s.ctx, s.workplaceID, s.receipt("R-1", "100", s.usd.CurrencyID), s.userID)
	s.ErrorIs(err, apperrors.ErrDuplicate)

	s.True(s.balance(s.treasury.AccountID, s.usd.CurrencyID).CurrentBalance.Equal(dec("100")))

	// Numbers are unique per voucher type.
	_, err = s.svc.Operation.CreatePayment(s.ctx, s.workplaceID, dto.CreatePaymentRequest{
		TreasuryAccountID:    s.treasury.AccountID,
		DestinationAccountID: s.supplier.AccountID,
		OperationFields: dto.OperationFields{
			VoucherNumber: "R-1", VoucherDate: s.today, Amount: dec("1"), CurrencyID: s.usd.CurrencyID,
		},
	}, s.userID)
	s.NoError(err)
}

func (s *OperationServiceTestSuite) TestCompose_VoucherSaveFailureRollsBackEntry() {
	store := memory.New()
	repos := memory.NewRepositoryProvider(store)
	vouchers := new(MockVoucherRepository)
	repos.VoucherRepo = vouchers
	svc := services.NewServiceContainer(repos)

	sar, err := svc.Currency.CreateCurrency(s.ctx, s.workplaceID, dto.CreateCurrencyRequest{Code: "SAR", Name: "Riyal", IsBase: true}, s.userID)
	s.Require().NoError(err)
	from, err := svc.Account.CreateAccount(s.ctx, s.workplaceID, dto.CreateAccountRequest{Code: "A", Name: "A", AccountType: domain.Asset}, s.userID)
	s.Require().NoError(err)
	to, err := svc.Account.CreateAccount(s.ctx, s.workplaceID, dto.CreateAccountRequest{Code: "B", Name: "B", AccountType: domain.Asset}, s.userID)
	s.Require().NoError(err)

	boom := errors.New("connection reset")
	vouchers.On("SaveVoucher", mock.Anything, mock.MatchedBy(func(v domain.Voucher) bool {
		return v.VoucherNumber == "T-1" && v.Status == domain.VoucherApproved && v.JournalEntryID != ""
	})).Return(boom).Once()

	_, err = svc.Operation.CreateTransfer(s.ctx, s.workplaceID, dto.CreateTransferRequest{
		FromAccountID: from.AccountID,
		ToAccountID:   to.AccountID,
		OperationFields: dto.OperationFields{
			VoucherNumber: "T-1", VoucherDate: s.today, Amount: dec("10"), CurrencyID: sar.CurrencyID,
		},
	}, s.userID)
	s.ErrorIs(err, boom)
	vouchers.AssertExpectations(s.T())

	entries, _, err := svc.Journal.ListJournalEntries(s.ctx, s.workplaceID, domain.JournalEntryFilter{})
	s.Require().NoError(err)
	s.Empty(entries, "the posted entry must roll back with the voucher")
	rows, err := svc.Account.GetAccountBalances(s.ctx, s.workplaceID, to.AccountID)
	s.Require().NoError(err)
	s.Empty(rows, "balance changes must roll back with the voucher")
}

func (s *OperationServiceTestSuite) TestCancelVoucher() {
	created, err := s.svc.Operation.CreateReceipt(s.ctx, s.workplaceID, s.receipt("R-1", "100", s.usd.CurrencyID), s.userID)
	s.Require().NoError(err)

	cancelled, err := s.svc.Operation.CancelVoucher(s.ctx, s.workplaceID, created.VoucherID,
		dto.CancelVoucherRequest{CancelDate: s.today.AddDate(0, 0, 2)}, s.userID)
	s.Require().NoError(err)

	s.Equal(domain.VoucherCancelled, cancelled.Status)
	s.Require().NotNil(cancelled.CancelledAt)
	s.Require().NotNil(cancelled.Entry)
	s.Equal(domain.EntryTypeReversal, cancelled.Entry.EntryType)
	s.Equal("REC-R-1-REV", cancelled.Entry.EntryNumber)
	s.Require().NotNil(cancelled.Entry.Notes)
	s.Equal("Cancellation of receipt R-1", *cancelled.Entry.Notes)
	s.True(s.balance(s.treasury.AccountID, s.usd.CurrencyID).CurrentBalance.IsZero())

	fetched, err := s.svc.Operation.GetVoucher(s.ctx, s.workplaceID, created.VoucherID)
	s.Require().NoError(err)
	s.Equal(domain.VoucherCancelled, fetched.Status)
	s.Equal(domain.Reversed, fetched.Entry.Status)

	_, err = s.svc.Operation.CancelVoucher(s.ctx, s.workplaceID, created.VoucherID,
		dto.CancelVoucherRequest{CancelDate: s.today}, s.userID)
	s.ErrorIs(err, apperrors.ErrIllegalTransition)
}

func (s *OperationServiceTestSuite) TestApprovedVoucherCannotBeEdited() {
	created, err := s.svc.Operation.CreateReceipt(s.ctx, s.workplaceID, s.receipt("R-1", "100", s.usd.CurrencyID), s.userID)
	s.Require().NoError(err)

	_, err = s.svc.Operation.UpdateVoucher(s.ctx, s.workplaceID, created.VoucherID,
		dto.UpdateVoucherRequest{Description: strPtr("changed")}, s.userID)
	s.ErrorIs(err, apperrors.ErrIllegalTransition)

	err = s.svc.Operation.DeleteVoucher(s.ctx, s.workplaceID, created.VoucherID, s.userID)
	s.ErrorIs(err, apperrors.ErrIllegalTransition)
}

func (s *OperationServiceTestSuite) TestListVouchers_Filters() {
	_, err := s.svc.Operation.CreateReceipt(s.ctx, s.workplaceID, s.receipt("R-1", "10", s.usd.CurrencyID), s.userID)
	s.Require().NoError(err)
	_, err = s.svc.Operation.CreatePayment(s.ctx, s.workplaceID, dto.CreatePaymentRequest{
		TreasuryAccountID:    s.treasury.AccountID,
		DestinationAccountID: s.supplier.AccountID,
		OperationFields: dto.OperationFields{
			VoucherNumber: "P-1", VoucherDate: s.today.AddDate(0, 0, 1), Amount: dec("5"), CurrencyID: s.usd.CurrencyID,
		},
	}, s.userID)
	s.Require().NoError(err)

	all, err := s.svc.Operation.ListVouchers(s.ctx, s.workplaceID, domain.VoucherFilter{})
	s.Require().NoError(err)
	s.Require().Len(all, 2)
	s.Equal("P-1", all[0].VoucherNumber)

	receipts := domain.VoucherReceipt
	only, err := s.svc.Operation.ListVouchers(s.ctx, s.workplaceID, domain.VoucherFilter{VoucherType: &receipts})
	s.Require().NoError(err)
	s.Require().Len(only, 1)
	s.Equal("R-1", only[0].VoucherNumber)
}
