package mapping

import (
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:        d.AccountID,
		WorkplaceID:      d.WorkplaceID,
		Code:             d.Code,
		Name:             d.Name,
		NameEn:           d.NameEn,
		AccountType:      string(d.AccountType),
		TypeCode:         d.TypeCode,
		SubType:          string(d.SubType),
		ParentAccountID:  d.ParentAccountID,
		Level:            d.Level,
		IsActive:         d.IsActive,
		AllowManualEntry: d.AllowManualEntry,
		SubSystemID:      d.SubSystemID,
		Description:      d.Description,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:        m.AccountID,
		WorkplaceID:      m.WorkplaceID,
		Code:             m.Code,
		Name:             m.Name,
		NameEn:           m.NameEn,
		AccountType:      domain.AccountType(m.AccountType),
		TypeCode:         m.TypeCode,
		SubType:          domain.AccountSubType(m.SubType),
		ParentAccountID:  m.ParentAccountID,
		Level:            m.Level,
		IsActive:         m.IsActive,
		AllowManualEntry: m.AllowManualEntry,
		SubSystemID:      m.SubSystemID,
		Description:      m.Description,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAccountSlice converts a slice of model Accounts to a slice of domain Accounts
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	return toSlice(ms, ToDomainAccount)
}

// ToDomainAccountCurrency converts a link row.
func ToDomainAccountCurrency(m models.AccountCurrency) domain.AccountCurrency {
	return domain.AccountCurrency(m)
}

// ToDomainAccountBalance converts a balance row.
func ToDomainAccountBalance(m models.AccountBalance) domain.AccountBalance {
	return domain.AccountBalance(m)
}
