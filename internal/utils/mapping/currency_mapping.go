package mapping

import (
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/models"
)

// ToModelCurrency converts a domain Currency to a model Currency
func ToModelCurrency(d domain.Currency) models.Currency {
	return models.Currency{
		CurrencyID:   d.CurrencyID,
		WorkplaceID:  d.WorkplaceID,
		Code:         d.Code,
		Name:         d.Name,
		NameEn:       d.NameEn,
		Symbol:       d.Symbol,
		IsBase:       d.IsBase,
		IsActive:     d.IsActive,
		Precision:    d.Precision,
		DisplayOrder: d.DisplayOrder,
		CurrentRate:  d.CurrentRate,
		MinRate:      d.MinRate,
		MaxRate:      d.MaxRate,
		Notes:        d.Notes,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCurrency converts a model Currency to a domain Currency
func ToDomainCurrency(m models.Currency) domain.Currency {
	return domain.Currency{
		CurrencyID:   m.CurrencyID,
		WorkplaceID:  m.WorkplaceID,
		Code:         m.Code,
		Name:         m.Name,
		NameEn:       m.NameEn,
		Symbol:       m.Symbol,
		IsBase:       m.IsBase,
		IsActive:     m.IsActive,
		Precision:    m.Precision,
		DisplayOrder: m.DisplayOrder,
		CurrentRate:  m.CurrentRate,
		MinRate:      m.MinRate,
		MaxRate:      m.MaxRate,
		Notes:        m.Notes,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainCurrencySlice converts a slice of model Currencies to a slice of domain Currencies
func ToDomainCurrencySlice(ms []models.Currency) []domain.Currency {
	return toSlice(ms, ToDomainCurrency)
}
