package services_test

import (
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/stretchr/testify/suite"
	"golang.org/x/sync/errgroup"
)

type JournalServiceTestSuite struct {
	ledgerFixture
	cash    *domain.Account
	revenue *domain.Account
}

func (s *JournalServiceTestSuite) SetupTest() {
	s.ledgerFixture.SetupTest()
	s.cash = s.account("1000", domain.Asset, domain.SubTypeCash)
	s.revenue = s.account("4000", domain.Revenue, domain.SubTypeGeneral)
}

func TestJournalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}

func (s *JournalServiceTestSuite) TestCreateJournalEntry_Draft() {
	entry, err := s.svc.Journal.CreateJournalEntry(s.ctx, s.workplaceID,
		s.entryRequest("JE-1", debit(s.cash.AccountID, s.sar.CurrencyID, "50"), credit(s.revenue.AccountID, s.sar.CurrencyID, "50")),
		s.userID)

	s.Require().NoError(err)
	s.Equal(domain.Draft, entry.Status)
	s.Equal(domain.EntryTypeManual, entry.EntryType)
	s.Len(entry.Lines, 2)
	s.True(entry.TotalDebitBase.Equal(dec("50")))
	s.True(entry.TotalCreditBase.Equal(dec("50")))

	// Drafts never reach the balance store.
	s.True(s.balance(s.cash.AccountID, s.sar.CurrencyID).CurrentBalance.IsZero())
	rows, err := s.svc.Account.GetAccountBalances(s.ctx, s.workplaceID, s.cash.AccountID)
	s.Require().NoError(err)
	s.Empty(rows)
}

func (s *JournalServiceTestSuite) TestCreateJournalEntry_Unbalanced() {
	_, err := s.svc.Journal.CreateJournalEntry(s.ctx, s.workplaceID,
		s.entryRequest("JE-1", debit(s.cash.AccountID, s.sar.CurrencyID, "100"), credit(s.revenue.AccountID, s.sar.CurrencyID, "90")),
		s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrUnbalanced)
	s.ErrorIs(err, apperrors.ErrValidation)
	var ue *apperrors.UnbalancedError
	s.Require().True(errors.As(err, &ue))
	s.True(ue.TotalDebit.Equal(dec("100")))
	s.True(ue.TotalCredit.Equal(dec("90")))
	s.Contains(err.Error(), "100.00")
	s.Contains(err.Error(), "90.00")
}

func (s *JournalServiceTestSuite) TestCreateJournalEntry_WithinTolerance() {
	_, err := s.svc.Journal.CreateJournalEntry(s.ctx, s.workplaceID,
		s.entryRequest("JE-1", debit(s.cash.AccountID, s.sar.CurrencyID, "100.01"), credit(s.revenue.AccountID, s.sar.CurrencyID, "100")),
		s.userID)
	s.NoError(err)
}

func (s *JournalServiceTestSuite) TestCreateJournalEntry_Rejections() {
	_, err := s.svc.Journal.CreateJournalEntry(s.ctx, s.workplaceID, s.entryRequest("JE-EMPTY"), s.userID)
	s.ErrorIs(err, apperrors.ErrValidation, "no lines")

	_, err = s.svc.Journal.CreateJournalEntry(s.ctx, s.workplaceID,
		s.entryRequest("JE-BOTH", dto.JournalLineRequest{
			AccountID: s.cash.AccountID, CurrencyID: s.sar.CurrencyID, DebitAmount: dec("5"), CreditAmount: dec("5"),
		}), s.userID)
	s.ErrorIs(err, apperrors.ErrValidation, "both sides on one line")

	_, err = s.svc.Journal.CreateJournalEntry(s.ctx, s.workplaceID,
		s.entryRequest("JE-NEG", debit(s.cash.AccountID, s.sar.CurrencyID, "-5"), credit(s.revenue.AccountID, s.sar.CurrencyID, "-5")),
		s.userID)
	s.ErrorIs(err, apperrors.ErrValidation, "negative amount")

	_, err = s.svc.Journal.CreateJournalEntry(s.ctx, s.workplaceID,
		s.entryRequest("JE-ACC", debit("missing", s.sar.CurrencyID, "5"), credit(s.revenue.AccountID, s.sar.CurrencyID, "5")),
		s.userID)
	s.ErrorIs(err, apperrors.ErrValidation, "unknown account")

	s.postedEntry("JE-1", debit(s.cash.AccountID, s.sar.CurrencyID, "5"), credit(s.revenue.AccountID, s.sar.CurrencyID, "5"))
	_, err = s.svc.Journal.CreateJournalEntry(s.ctx, s.workplaceID,
		s.entryRequest("JE-1", debit(s.cash.AccountID, s.sar.CurrencyID, "5"), credit(s.revenue.AccountID, s.sar.CurrencyID, "5")),
		s.userID)
	s.ErrorIs(err, apperrors.ErrDuplicate, "entry number reused")
}

func (s *JournalServiceTestSuite) TestCreateJournalEntry_AmountPrecision() {
	_, err := s.svc.Journal.CreateJournalEntry(s.ctx, s.workplaceID,
		s.entryRequest("JE-TINY", debit(s.cash.AccountID, s.usd.CurrencyID, "0.0012345"), credit(s.revenue.AccountID, s.usd.CurrencyID, "0.0012345")),
		s.userID)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.Contains(err.Error(), "decimal places")
	s.True(s.balance(s.cash.AccountID, s.usd.CurrencyID).CurrentBalance.IsZero())

	posted := s.postedEntry("JE-PAD",
		debit(s.cash.AccountID, s.usd.CurrencyID, "12.3400"),
		credit(s.revenue.AccountID, s.usd.CurrencyID, "12.34"))
	s.True(posted.Lines[0].DebitAmount.Equal(dec("12.34")))

	rec, err := s.svc.Journal.ReconcileBalance(s.ctx, s.workplaceID, s.cash.AccountID, s.usd.CurrencyID)
	s.Require().NoError(err)
	s.True(rec.InSync)
}

func (s *JournalServiceTestSuite) TestCreateJournalEntry_ManualEntryNotAllowed() {
	no := false
	locked, err := s.svc.Account.CreateAccount(s.ctx, s.workplaceID, dto.CreateAccountRequest{
		Code: "2000", Name: "Control", AccountType: domain.Liability, AllowManualEntry: &no,
	}, s.userID)
	s.Require().NoError(err)

	_, err = s.svc.Journal.CreateJournalEntry(s.ctx, s.workplaceID,
		s.entryRequest("JE-1", debit(s.cash.AccountID, s.sar.CurrencyID, "5"), credit(locked.AccountID, s.sar.CurrencyID, "5")),
		s.userID)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.Contains(err.Error(), "manual")
}

func (s *JournalServiceTestSuite) TestCreateJournalEntry_MultiCurrencyBalancesInBase() {
	entry, err := s.svc.Journal.CreateJournalEntry(s.ctx, s.workplaceID,
		s.entryRequest("JE-FX", debit(s.cash.AccountID, s.usd.CurrencyID, "100"), credit(s.revenue.AccountID, s.sar.CurrencyID, "375")),
		s.userID)

	s.Require().NoError(err)
	s.True(entry.Lines[0].ExchangeRate.Equal(dec("3.75")))
	s.True(entry.Lines[0].DebitAmountBase.Equal(dec("375")))
	s.True(entry.Lines[1].ExchangeRate.Equal(dec("1")))
	s.True(entry.TotalDebitBase.Equal(entry.TotalCreditBase))
}

func (s *JournalServiceTestSuite) TestCreateJournalEntry_RateOutOfBounds() {
	line := debit(s.cash.AccountID, s.usd.CurrencyID, "100")
	line.ExchangeRate = decPtr("4.00")
	_, err := s.svc.Journal.CreateJournalEntry(s.ctx, s.workplaceID,
		s.entryRequest("JE-FX", line, credit(s.revenue.AccountID, s.sar.CurrencyID, "400")),
		s.userID)

	s.ErrorIs(err, apperrors.ErrRateOutOfBounds)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *JournalServiceTestSuite) TestPostJournalEntry() {
	posted := s.postedEntry("JE-1",
		debit(s.cash.AccountID, s.usd.CurrencyID, "100"),
		credit(s.revenue.AccountID, s.usd.CurrencyID, "100"))

	s.Equal(domain.Posted, posted.Status)
	s.Require().NotNil(posted.PostedAt)
	s.Equal(s.userID, *posted.PostedBy)

	cash := s.balance(s.cash.AccountID, s.usd.CurrencyID)
	s.True(cash.CurrentBalance.Equal(dec("100")))
	s.True(cash.CurrentBalanceBase.Equal(dec("375")))
	s.Require().NotNil(cash.LastEntryID)
	s.Equal(posted.EntryID, *cash.LastEntryID)

	rev := s.balance(s.revenue.AccountID, s.usd.CurrencyID)
	s.True(rev.CurrentBalance.Equal(dec("-100")))
	s.True(rev.CreditBalanceBase.Equal(dec("375")))

	_, err := s.svc.Journal.PostJournalEntry(s.ctx, s.workplaceID, posted.EntryID, s.userID)
	s.ErrorIs(err, apperrors.ErrIllegalTransition)
	s.True(s.balance(s.cash.AccountID, s.usd.CurrencyID).CurrentBalance.Equal(dec("100")), "second post must not apply twice")

	_, err = s.svc.Journal.PostJournalEntry(s.ctx, s.workplaceID, "missing", s.userID)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *JournalServiceTestSuite) TestReverseJournalEntry_NetsToZero() {
	original := s.postedEntry("E1",
		debit(s.cash.AccountID, s.sar.CurrencyID, "50"),
		credit(s.revenue.AccountID, s.sar.CurrencyID, "50"))
	s.True(s.balance(s.cash.AccountID, s.sar.CurrencyID).CurrentBalance.Equal(dec("50")))

	reversal, err := s.svc.Journal.ReverseJournalEntry(s.ctx, s.workplaceID, original.EntryID,
		dto.ReverseJournalEntryRequest{ReversalDate: s.today.AddDate(0, 0, 1), Reason: "typo"}, s.userID)
	s.Require().NoError(err)

	s.Equal(domain.Posted, reversal.Status)
	s.Equal(domain.EntryTypeReversal, reversal.EntryType)
	s.Equal("E1-REV", reversal.EntryNumber)
	s.Equal("Reversal of: Entry E1", reversal.Description)
	s.Require().NotNil(reversal.ReversedEntryID)
	s.Equal(original.EntryID, *reversal.ReversedEntryID)
	s.Require().Len(reversal.Lines, 2)
	s.Equal(s.cash.AccountID, reversal.Lines[0].AccountID)
	s.True(reversal.Lines[0].CreditAmount.Equal(dec("50")))
	s.True(reversal.Lines[0].DebitAmount.IsZero())
	s.True(reversal.Lines[1].DebitAmount.Equal(dec("50")))

	reloaded, err := s.svc.Journal.GetJournalEntry(s.ctx, s.workplaceID, original.EntryID)
	s.Require().NoError(err)
	s.Equal(domain.Reversed, reloaded.Status)
	s.Require().NotNil(reloaded.ReversalEntryID)
	s.Equal(reversal.EntryID, *reloaded.ReversalEntryID)

	for _, accountID := range []string{s.cash.AccountID, s.revenue.AccountID} {
		row := s.balance(accountID, s.sar.CurrencyID)
		s.True(row.CurrentBalance.IsZero(), "balance of %s", accountID)
		s.True(row.CurrentBalanceBase.IsZero(), "base balance of %s", accountID)
		s.True(row.DebitBalance.Equal(dec("50")))
		s.True(row.CreditBalance.Equal(dec("50")))
	}

	_, err = s.svc.Journal.ReverseJournalEntry(s.ctx, s.workplaceID, original.EntryID,
		dto.ReverseJournalEntryRequest{ReversalDate: s.today}, s.userID)
	s.ErrorIs(err, apperrors.ErrIllegalTransition, "an entry is reversed at most once")
}

func (s *JournalServiceTestSuite) TestReverseJournalEntry_DraftRejected() {
	draft, err := s.svc.Journal.CreateJournalEntry(s.ctx, s.workplaceID,
		s.entryRequest("JE-1", debit(s.cash.AccountID, s.sar.CurrencyID, "5"), credit(s.revenue.AccountID, s.sar.CurrencyID, "5")),
		s.userID)
	s.Require().NoError(err)

	_, err = s.svc.Journal.ReverseJournalEntry(s.ctx, s.workplaceID, draft.EntryID,
		dto.ReverseJournalEntryRequest{ReversalDate: s.today}, s.userID)
	s.ErrorIs(err, apperrors.ErrIllegalTransition)

	entries, _, err := s.svc.Journal.ListJournalEntries(s.ctx, s.workplaceID, domain.JournalEntryFilter{})
	s.Require().NoError(err)
	s.Len(entries, 1, "a failed reversal leaves no entry behind")
}

func (s *JournalServiceTestSuite) TestPostedEntryIsImmutable() {
	posted := s.postedEntry("JE-1",
		debit(s.cash.AccountID, s.sar.CurrencyID, "5"),
		credit(s.revenue.AccountID, s.sar.CurrencyID, "5"))

	_, err := s.svc.Journal.UpdateJournalEntry(s.ctx, s.workplaceID, posted.EntryID, dto.UpdateJournalEntryRequest{
		Description: strPtr("changed"),
		Lines: []dto.JournalLineRequest{
			debit(s.cash.AccountID, s.sar.CurrencyID, "9"),
			credit(s.revenue.AccountID, s.sar.CurrencyID, "9"),
		},
	}, s.userID)
	s.ErrorIs(err, apperrors.ErrImmutable)
	s.ErrorIs(err, apperrors.ErrIllegalTransition)

	err = s.svc.Journal.DeleteJournalEntry(s.ctx, s.workplaceID, posted.EntryID, s.userID)
	s.ErrorIs(err, apperrors.ErrImmutable)

	reloaded, err := s.svc.Journal.GetJournalEntry(s.ctx, s.workplaceID, posted.EntryID)
	s.Require().NoError(err)
	s.Equal("Entry JE-1", reloaded.Description)
	s.Require().Len(reloaded.Lines, 2)
	s.True(reloaded.Lines[0].DebitAmount.Equal(dec("5")))
}

func (s *JournalServiceTestSuite) TestUpdateDraft() {
	draft, err := s.svc.Journal.CreateJournalEntry(s.ctx, s.workplaceID,
		s.entryRequest("JE-1", debit(s.cash.AccountID, s.sar.CurrencyID, "5"), credit(s.revenue.AccountID, s.sar.CurrencyID, "5")),
		s.userID)
	s.Require().NoError(err)

	_, err = s.svc.Journal.UpdateJournalEntry(s.ctx, s.workplaceID, draft.EntryID, dto.UpdateJournalEntryRequest{
		Lines: []dto.JournalLineRequest{
			debit(s.cash.AccountID, s.sar.CurrencyID, "9"),
			credit(s.revenue.AccountID, s.sar.CurrencyID, "8"),
		},
	}, s.userID)
	s.ErrorIs(err, apperrors.ErrUnbalanced)

	updated, err := s.svc.Journal.UpdateJournalEntry(s.ctx, s.workplaceID, draft.EntryID, dto.UpdateJournalEntryRequest{
		EntryNumber: strPtr("JE-1A"),
		Description: strPtr("Corrected"),
		Lines: []dto.JournalLineRequest{
			debit(s.cash.AccountID, s.sar.CurrencyID, "9"),
			credit(s.revenue.AccountID, s.sar.CurrencyID, "4"),
			credit(s.revenue.AccountID, s.sar.CurrencyID, "5"),
		},
	}, s.userID)
	s.Require().NoError(err)
	s.Equal("JE-1A", updated.EntryNumber)
	s.Equal(domain.Draft, updated.Status)

	reloaded, err := s.svc.Journal.GetJournalEntry(s.ctx, s.workplaceID, draft.EntryID)
	s.Require().NoError(err)
	s.Equal("Corrected", reloaded.Description)
	s.Len(reloaded.Lines, 3)
	s.True(reloaded.TotalDebitBase.Equal(dec("9")))
}

func (s *JournalServiceTestSuite) TestDeleteDraft() {
	draft, err := s.svc.Journal.CreateJournalEntry(s.ctx, s.workplaceID,
		s.entryRequest("JE-1", debit(s.cash.AccountID, s.sar.CurrencyID, "5"), credit(s.revenue.AccountID, s.sar.CurrencyID, "5")),
		s.userID)
	s.Require().NoError(err)

	s.Require().NoError(s.svc.Journal.DeleteJournalEntry(s.ctx, s.workplaceID, draft.EntryID, s.userID))
	_, err = s.svc.Journal.GetJournalEntry(s.ctx, s.workplaceID, draft.EntryID)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *JournalServiceTestSuite) TestTenantIsolation() {
	posted := s.postedEntry("JE-1",
		debit(s.cash.AccountID, s.sar.CurrencyID, "5"),
		credit(s.revenue.AccountID, s.sar.CurrencyID, "5"))

	_, err := s.svc.Journal.GetJournalEntry(s.ctx, "wp-other", posted.EntryID)
	s.ErrorIs(err, apperrors.ErrNotFound)

	_, err = s.svc.Journal.CreateJournalEntry(s.ctx, "wp-other",
		s.entryRequest("JE-1", debit(s.cash.AccountID, s.sar.CurrencyID, "5"), credit(s.revenue.AccountID, s.sar.CurrencyID, "5")),
		s.userID)
	s.ErrorIs(err, apperrors.ErrValidation, "accounts of another workplace are invisible")
}

func (s *JournalServiceTestSuite) TestListJournalEntries_Pagination() {
	for i := 1; i <= 3; i++ {
		req := s.entryRequest(fmt.Sprintf("JE-%d", i),
			debit(s.cash.AccountID, s.sar.CurrencyID, "1"),
			credit(s.revenue.AccountID, s.sar.CurrencyID, "1"))
		req.EntryDate = s.today.AddDate(0, 0, i)
		_, err := s.svc.Journal.CreateJournalEntry(s.ctx, s.workplaceID, req, s.userID)
		s.Require().NoError(err)
	}

	page, next, err := s.svc.Journal.ListJournalEntries(s.ctx, s.workplaceID, domain.JournalEntryFilter{Limit: 2})
	s.Require().NoError(err)
	s.Require().Len(page, 2)
	s.Equal("JE-3", page[0].EntryNumber)
	s.Equal("JE-2", page[1].EntryNumber)
	s.Require().NotNil(next)

	page, next, err = s.svc.Journal.ListJournalEntries(s.ctx, s.workplaceID, domain.JournalEntryFilter{Limit: 2, NextToken: next})
	s.Require().NoError(err)
	s.Require().Len(page, 1)
	s.Equal("JE-1", page[0].EntryNumber)
	s.Nil(next)

	posted := domain.Posted
	page, _, err = s.svc.Journal.ListJournalEntries(s.ctx, s.workplaceID, domain.JournalEntryFilter{Status: &posted})
	s.Require().NoError(err)
	s.Empty(page)
}

func (s *JournalServiceTestSuite) TestListJournalEntries_LimitBounds() {
	for i := 1; i <= 21; i++ {
		_, err := s.svc.Journal.CreateJournalEntry(s.ctx, s.workplaceID, s.entryRequest(fmt.Sprintf("JE-%02d", i),
			debit(s.cash.AccountID, s.sar.CurrencyID, "1"),
			credit(s.revenue.AccountID, s.sar.CurrencyID, "1")), s.userID)
		s.Require().NoError(err)
	}

	page, next, err := s.svc.Journal.ListJournalEntries(s.ctx, s.workplaceID, domain.JournalEntryFilter{})
	s.Require().NoError(err)
	s.Len(page, 20, "zero limit falls back to the default page size")
	s.NotNil(next)

	page, next, err = s.svc.Journal.ListJournalEntries(s.ctx, s.workplaceID, domain.JournalEntryFilter{Limit: 500})
	s.Require().NoError(err)
	s.Len(page, 21)
	s.Nil(next)
}

func (s *JournalServiceTestSuite) TestReconcileBalance() {
	s.postedEntry("JE-1", debit(s.cash.AccountID, s.usd.CurrencyID, "10"), credit(s.revenue.AccountID, s.usd.CurrencyID, "10"))
	e2 := s.postedEntry("JE-2", debit(s.cash.AccountID, s.usd.CurrencyID, "7"), credit(s.revenue.AccountID, s.usd.CurrencyID, "7"))
	_, err := s.svc.Journal.ReverseJournalEntry(s.ctx, s.workplaceID, e2.EntryID,
		dto.ReverseJournalEntryRequest{ReversalDate: s.today}, s.userID)
	s.Require().NoError(err)

	rec, err := s.svc.Journal.ReconcileBalance(s.ctx, s.workplaceID, s.cash.AccountID, s.usd.CurrencyID)
	s.Require().NoError(err)
	s.True(rec.InSync)
	s.True(rec.StoredBalance.Equal(dec("10")))
	s.True(rec.ReplayedBalanceBase.Equal(dec("37.5")))
}

func (s *JournalServiceTestSuite) TestConcurrentPosting() {
	const n = 25
	ids := make([]string, n)
	for i := range ids {
		entry, err := s.svc.Journal.CreateJournalEntry(s.ctx, s.workplaceID,
			s.entryRequest(fmt.Sprintf("JE-%02d", i),
				debit(s.cash.AccountID, s.usd.CurrencyID, "2"),
				credit(s.revenue.AccountID, s.usd.CurrencyID, "2")),
			s.userID)
		s.Require().NoError(err)
		ids[i] = entry.EntryID
	}

	var g errgroup.Group
	for _, id := range ids {
		g.Go(func() error {
			_, err := s.svc.Journal.PostJournalEntry(s.ctx, s.workplaceID, id, s.userID)
			return err
		})
	}
	s.Require().NoError(g.Wait())

	cash := s.balance(s.cash.AccountID, s.usd.CurrencyID)
	s.True(cash.CurrentBalance.Equal(dec("50")), "got %s", cash.CurrentBalance)
	s.True(cash.CurrentBalanceBase.Equal(dec("187.5")), "got %s", cash.CurrentBalanceBase)

	rec, err := s.svc.Journal.ReconcileBalance(s.ctx, s.workplaceID, s.revenue.AccountID, s.usd.CurrencyID)
	s.Require().NoError(err)
	s.True(rec.InSync)
}

func (s *JournalServiceTestSuite) TestConcurrentDoublePostAppliesOnce() {
	entry, err := s.svc.Journal.CreateJournalEntry(s.ctx, s.workplaceID,
		s.entryRequest("JE-1", debit(s.cash.AccountID, s.sar.CurrencyID, "3"), credit(s.revenue.AccountID, s.sar.CurrencyID, "3")),
		s.userID)
	s.Require().NoError(err)

	var succeeded, rejected atomic.Int32
	var g errgroup.Group
	for i := 0; i < 10; i++ {
		g.Go(func() error {
			_, err := s.svc.Journal.PostJournalEntry(s.ctx, s.workplaceID, entry.EntryID, s.userID)
			switch {
			case err == nil:
				succeeded.Add(1)
			case errors.Is(err, apperrors.ErrIllegalTransition):
				rejected.Add(1)
			default:
				return err
			}
			return nil
		})
	}
	s.Require().NoError(g.Wait())

	s.Equal(int32(1), succeeded.Load())
	s.Equal(int32(9), rejected.Load())
	s.True(s.balance(s.cash.AccountID, s.sar.CurrencyID).CurrentBalance.Equal(dec("3")))
}

func (s *JournalServiceTestSuite) TestListRecentOperations() {
	_, err := s.svc.Operation.CreateTransfer(s.ctx, s.workplaceID, dto.CreateTransferRequest{
		FromAccountID: s.revenue.AccountID,
		ToAccountID:   s.cash.AccountID,
		OperationFields: dto.OperationFields{
			VoucherNumber: "T1", VoucherDate: s.today, Amount: dec("10"), CurrencyID: s.sar.CurrencyID,
		},
	}, s.userID)
	s.Require().NoError(err)
	s.postedEntry("JE-1", debit(s.cash.AccountID, s.sar.CurrencyID, "5"), credit(s.revenue.AccountID, s.sar.CurrencyID, "5"))

	recent, err := s.svc.Journal.ListRecentOperations(s.ctx, s.workplaceID, 0)
	s.Require().NoError(err)
	s.Require().Len(recent, 1)
	s.Equal("TRF-T1", recent[0].EntryNumber)
	s.Len(recent[0].Lines, 2)
}
