package mapping

import (
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/models"
)

// ToModelAccountType converts a catalog entry to its row.
func ToModelAccountType(d domain.AccountTypeDefinition) models.AccountType {
	return models.AccountType{
		TypeID:         d.TypeID,
		WorkplaceID:    d.WorkplaceID,
		TypeCode:       d.TypeCode,
		Name:           d.Name,
		NameEn:         d.NameEn,
		Description:    d.Description,
		Classification: string(d.Classification),
		Color:          d.Color,
		Icon:           d.Icon,
		DisplayOrder:   d.DisplayOrder,
		IsActive:       d.IsActive,
		IsSystemType:   d.IsSystemType,
		SubSystemID:    d.SubSystemID,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccountType converts a catalog row.
func ToDomainAccountType(m models.AccountType) domain.AccountTypeDefinition {
	return domain.AccountTypeDefinition{
		TypeID:         m.TypeID,
		WorkplaceID:    m.WorkplaceID,
		TypeCode:       m.TypeCode,
		Name:           m.Name,
		NameEn:         m.NameEn,
		Description:    m.Description,
		Classification: domain.AccountType(m.Classification),
		Color:          m.Color,
		Icon:           m.Icon,
		DisplayOrder:   m.DisplayOrder,
		IsActive:       m.IsActive,
		IsSystemType:   m.IsSystemType,
		SubSystemID:    m.SubSystemID,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAccountTypeSlice converts catalog rows.
func ToDomainAccountTypeSlice(ms []models.AccountType) []domain.AccountTypeDefinition {
	return toSlice(ms, ToDomainAccountType)
}
