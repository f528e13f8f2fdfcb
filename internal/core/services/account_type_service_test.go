package services_test

import (
	"testing"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/stretchr/testify/suite"
)

type AccountTypeServiceTestSuite struct {
	ledgerFixture
}

func TestAccountTypeServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountTypeServiceTestSuite))
}

func (s *AccountTypeServiceTestSuite) customType(code string, class domain.AccountType) *domain.AccountTypeDefinition {
	def, err := s.svc.AccountType.CreateAccountType(s.ctx, s.workplaceID, dto.CreateAccountTypeRequest{
		TypeCode: code, Name: "Type " + code, Classification: class, DisplayOrder: 10,
	}, s.userID)
	s.Require().NoError(err)
	return def
}

func (s *AccountTypeServiceTestSuite) systemType(code string) domain.AccountTypeDefinition {
	defs, err := s.svc.AccountType.ListAccountTypes(s.ctx, s.workplaceID, domain.AccountTypeFilter{IncludeInactive: true})
	s.Require().NoError(err)
	for _, d := range defs {
		if d.TypeCode == code {
			return d
		}
	}
	s.FailNow("system type not seeded", code)
	return domain.AccountTypeDefinition{}
}

func (s *AccountTypeServiceTestSuite) TestListAccountTypes_SeedsSystemTypesOnce() {
	defs, err := s.svc.AccountType.ListAccountTypes(s.ctx, s.workplaceID, domain.AccountTypeFilter{})
	s.Require().NoError(err)
	s.Require().Len(defs, 5)
	codes := make([]string, len(defs))
	for i, d := range defs {
		codes[i] = d.TypeCode
		s.True(d.IsSystemType)
		s.NotEmpty(d.TypeID)
	}
	s.Equal([]string{"ASSET", "LIABILITY", "EQUITY", "REVENUE", "EXPENSE"}, codes)

	again, err := s.svc.AccountType.ListAccountTypes(s.ctx, s.workplaceID, domain.AccountTypeFilter{})
	s.Require().NoError(err)
	s.Len(again, 5)

	other, err := s.svc.AccountType.ListAccountTypes(s.ctx, "wp-other", domain.AccountTypeFilter{})
	s.Require().NoError(err)
	s.Len(other, 5)
	s.NotEqual(defs[0].TypeID, other[0].TypeID)
}

func (s *AccountTypeServiceTestSuite) TestListAccountTypes_FiltersBySubSystemAndActivity() {
	s.customType("TILLS", domain.Asset)
	retail := "retail"
	_, err := s.svc.AccountType.CreateAccountType(s.ctx, s.workplaceID, dto.CreateAccountTypeRequest{
		TypeCode: "pos_floats", Name: "POS floats", Classification: domain.Asset, SubSystemID: &retail, DisplayOrder: 11,
	}, s.userID)
	s.Require().NoError(err)
	inactive := false
	_, err = s.svc.AccountType.CreateAccountType(s.ctx, s.workplaceID, dto.CreateAccountTypeRequest{
		TypeCode: "OLD", Name: "Retired", Classification: domain.Expense, IsActive: &inactive, DisplayOrder: 12,
	}, s.userID)
	s.Require().NoError(err)

	wholesale := "wholesale"
	defs, err := s.svc.AccountType.ListAccountTypes(s.ctx, s.workplaceID, domain.AccountTypeFilter{SubSystemID: &wholesale})
	s.Require().NoError(err)
	s.Len(defs, 6, "five system types plus the shared TILLS")

	defs, err = s.svc.AccountType.ListAccountTypes(s.ctx, s.workplaceID, domain.AccountTypeFilter{SubSystemID: &retail})
	s.Require().NoError(err)
	s.Len(defs, 7)
	s.Equal("POS_FLOATS", defs[6].TypeCode)

	defs, err = s.svc.AccountType.ListAccountTypes(s.ctx, s.workplaceID, domain.AccountTypeFilter{IncludeInactive: true})
	s.Require().NoError(err)
	s.Len(defs, 8)
}

func (s *AccountTypeServiceTestSuite) TestCreateAccountType_Rejections() {
	s.customType("TILLS", domain.Asset)

	_, err := s.svc.AccountType.CreateAccountType(s.ctx, s.workplaceID, dto.CreateAccountTypeRequest{
		TypeCode: " tills ", Name: "Again", Classification: domain.Asset,
	}, s.userID)
	s.ErrorIs(err, apperrors.ErrDuplicate)

	_, err = s.svc.AccountType.CreateAccountType(s.ctx, "wp-fresh", dto.CreateAccountTypeRequest{
		TypeCode: "asset", Name: "Shadow", Classification: domain.Liability,
	}, s.userID)
	s.ErrorIs(err, apperrors.ErrDuplicate, "system codes are seeded before the check")

	_, err = s.svc.AccountType.CreateAccountType(s.ctx, s.workplaceID, dto.CreateAccountTypeRequest{
		TypeCode: "GADGETS", Name: "Gadgets", Classification: "WIDGET",
	}, s.userID)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *AccountTypeServiceTestSuite) TestSystemTypesAreImmutable() {
	asset := s.systemType("ASSET")

	name := "Renamed"
	_, err := s.svc.AccountType.UpdateAccountType(s.ctx, s.workplaceID, asset.TypeID, dto.UpdateAccountTypeRequest{Name: &name}, s.userID)
	s.ErrorIs(err, apperrors.ErrValidation)

	err = s.svc.AccountType.DeleteAccountType(s.ctx, s.workplaceID, asset.TypeID, s.userID)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *AccountTypeServiceTestSuite) TestCreateAccount_ResolvesCustomType() {
	s.customType("TILLS", domain.Asset)

	acc, err := s.svc.Account.CreateAccount(s.ctx, s.workplaceID, dto.CreateAccountRequest{
		Code: "1010", Name: "Till 1", TypeCode: strPtr("tills"),
	}, s.userID)
	s.Require().NoError(err)
	s.Equal(domain.Asset, acc.AccountType)
	s.Equal("TILLS", acc.TypeCode)

	plain := s.account("2000", domain.Liability, "")
	s.Equal("LIABILITY", plain.TypeCode)

	tills := "TILLS"
	listed, err := s.svc.Account.ListAccounts(s.ctx, s.workplaceID, domain.AccountFilter{TypeCode: &tills})
	s.Require().NoError(err)
	s.Require().Len(listed, 1)
	s.Equal("1010", listed[0].Code)
}

func (s *AccountTypeServiceTestSuite) TestCreateAccount_RejectsUnusableTypes() {
	tills := s.customType("TILLS", domain.Asset)

	_, err := s.svc.Account.CreateAccount(s.ctx, s.workplaceID, dto.CreateAccountRequest{
		Code: "1010", Name: "Till", AccountType: domain.Expense, TypeCode: strPtr("TILLS"),
	}, s.userID)
	s.ErrorIs(err, apperrors.ErrValidation, "classification mismatch")

	_, err = s.svc.Account.CreateAccount(s.ctx, s.workplaceID, dto.CreateAccountRequest{
		Code: "1011", Name: "Till", TypeCode: strPtr("NOPE"),
	}, s.userID)
	s.ErrorIs(err, apperrors.ErrValidation, "unknown code")

	_, err = s.svc.Account.CreateAccount(s.ctx, s.workplaceID, dto.CreateAccountRequest{
		Code: "1012", Name: "Till",
	}, s.userID)
	s.ErrorIs(err, apperrors.ErrValidation, "no type at all")

	off := false
	_, err = s.svc.AccountType.UpdateAccountType(s.ctx, s.workplaceID, tills.TypeID, dto.UpdateAccountTypeRequest{IsActive: &off}, s.userID)
	s.Require().NoError(err)
	_, err = s.svc.Account.CreateAccount(s.ctx, s.workplaceID, dto.CreateAccountRequest{
		Code: "1013", Name: "Till", TypeCode: strPtr("TILLS"),
	}, s.userID)
	s.ErrorIs(err, apperrors.ErrValidation, "inactive type")
}

func (s *AccountTypeServiceTestSuite) TestFailedAccountCreateKeepsSeededCatalogConsistent() {
	s.account("1000", domain.Asset, "")

	_, err := s.svc.Account.CreateAccount(s.ctx, "wp-fresh", dto.CreateAccountRequest{
		Code: "9000", Name: "Bad parent", AccountType: domain.Asset, ParentAccountID: strPtr("missing"),
	}, s.userID)
	s.Require().ErrorIs(err, apperrors.ErrValidation)

	acc, err := s.svc.Account.CreateAccount(s.ctx, "wp-fresh", dto.CreateAccountRequest{
		Code: "9000", Name: "Cash", AccountType: domain.Asset,
	}, s.userID)
	s.Require().NoError(err)
	s.Equal("ASSET", acc.TypeCode)
}

func (s *AccountTypeServiceTestSuite) TestUpdateAccount_ChangesTypeWithinClassification() {
	s.customType("TILLS", domain.Asset)
	s.customType("LOANS", domain.Liability)
	acc := s.account("1010", domain.Asset, "")

	updated, err := s.svc.Account.UpdateAccount(s.ctx, s.workplaceID, acc.AccountID, dto.UpdateAccountRequest{TypeCode: strPtr("TILLS")}, s.userID)
	s.Require().NoError(err)
	s.Equal("TILLS", updated.TypeCode)

	_, err = s.svc.Account.UpdateAccount(s.ctx, s.workplaceID, acc.AccountID, dto.UpdateAccountRequest{TypeCode: strPtr("LOANS")}, s.userID)
	s.ErrorIs(err, apperrors.ErrValidation)
	stored, err := s.svc.Account.GetAccountByID(s.ctx, s.workplaceID, acc.AccountID)
	s.Require().NoError(err)
	s.Equal("TILLS", stored.TypeCode)
}

func (s *AccountTypeServiceTestSuite) TestTypeInUseIsProtected() {
	tills := s.customType("TILLS", domain.Asset)
	_, err := s.svc.Account.CreateAccount(s.ctx, s.workplaceID, dto.CreateAccountRequest{
		Code: "1010", Name: "Till", TypeCode: strPtr("TILLS"),
	}, s.userID)
	s.Require().NoError(err)

	_, err = s.svc.AccountType.UpdateAccountType(s.ctx, s.workplaceID, tills.TypeID, dto.UpdateAccountTypeRequest{TypeCode: strPtr("DRAWERS")}, s.userID)
	s.ErrorIs(err, apperrors.ErrIntegrity)
	expense := domain.Expense
	_, err = s.svc.AccountType.UpdateAccountType(s.ctx, s.workplaceID, tills.TypeID, dto.UpdateAccountTypeRequest{Classification: &expense}, s.userID)
	s.ErrorIs(err, apperrors.ErrIntegrity)
	err = s.svc.AccountType.DeleteAccountType(s.ctx, s.workplaceID, tills.TypeID, s.userID)
	s.ErrorIs(err, apperrors.ErrIntegrity)

	name := "Cash drawers"
	updated, err := s.svc.AccountType.UpdateAccountType(s.ctx, s.workplaceID, tills.TypeID, dto.UpdateAccountTypeRequest{Name: &name}, s.userID)
	s.Require().NoError(err)
	s.Equal(name, updated.Name)
	s.Equal("TILLS", updated.TypeCode)
}

func (s *AccountTypeServiceTestSuite) TestDeleteUnusedCustomType() {
	spare := s.customType("SPARE", domain.Equity)

	s.Require().NoError(s.svc.AccountType.DeleteAccountType(s.ctx, s.workplaceID, spare.TypeID, s.userID))

	_, err := s.svc.AccountType.GetAccountType(s.ctx, s.workplaceID, spare.TypeID)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *AccountTypeServiceTestSuite) TestListSubTypes() {
	subTypes := s.svc.AccountType.ListSubTypes(s.ctx)
	s.Require().Len(subTypes, 7)
	for _, st := range subTypes {
		s.True(st.SubType.Valid(), st.SubType)
		s.Equal(st.SubType.IsTreasury(), st.IsTreasury, st.SubType)
	}
}
