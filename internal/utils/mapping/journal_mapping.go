package mapping

import (
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry header to a model JournalEntry
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	var refType *string
	if d.ReferenceType != nil {
		s := string(*d.ReferenceType)
		refType = &s
	}
	return models.JournalEntry{
		EntryID:         d.EntryID,
		WorkplaceID:     d.WorkplaceID,
		EntryNumber:     d.EntryNumber,
		EntryDate:       d.EntryDate,
		EntryType:       string(d.EntryType),
		Description:     d.Description,
		Notes:           d.Notes,
		ReferenceType:   refType,
		ReferenceID:     d.ReferenceID,
		ReferenceNumber: d.ReferenceNumber,
		SubSystemID:     d.SubSystemID,
		Status:          string(d.Status),
		TotalDebitBase:  d.TotalDebitBase,
		TotalCreditBase: d.TotalCreditBase,
		PostedAt:        d.PostedAt,
		PostedBy:        d.PostedBy,
		ReversedAt:      d.ReversedAt,
		ReversedBy:      d.ReversedBy,
		ReversalEntryID: d.ReversalEntryID,
		ReversedEntryID: d.ReversedEntryID,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntry converts a model JournalEntry to a domain JournalEntry without lines
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	var refType *domain.ReferenceType
	if m.ReferenceType != nil {
		rt := domain.ReferenceType(*m.ReferenceType)
		refType = &rt
	}
	return domain.JournalEntry{
		EntryID:         m.EntryID,
		WorkplaceID:     m.WorkplaceID,
		EntryNumber:     m.EntryNumber,
		EntryDate:       m.EntryDate,
		EntryType:       domain.EntryType(m.EntryType),
		Description:     m.Description,
		Notes:           m.Notes,
		ReferenceType:   refType,
		ReferenceID:     m.ReferenceID,
		ReferenceNumber: m.ReferenceNumber,
		SubSystemID:     m.SubSystemID,
		Status:          domain.EntryStatus(m.Status),
		TotalDebitBase:  m.TotalDebitBase,
		TotalCreditBase: m.TotalCreditBase,
		PostedAt:        m.PostedAt,
		PostedBy:        m.PostedBy,
		ReversedAt:      m.ReversedAt,
		ReversedBy:      m.ReversedBy,
		ReversalEntryID: m.ReversalEntryID,
		ReversedEntryID: m.ReversedEntryID,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainJournalEntrySlice converts a slice of model entries
func ToDomainJournalEntrySlice(ms []models.JournalEntry) []domain.JournalEntry {
	return toSlice(ms, ToDomainJournalEntry)
}

// ToModelJournalLine converts a domain JournalLine to a model JournalLine
func ToModelJournalLine(workplaceID string, d domain.JournalLine) models.JournalLine {
	return models.JournalLine{
		LineID:           d.LineID,
		WorkplaceID:      workplaceID,
		EntryID:          d.EntryID,
		LineNumber:       d.LineNumber,
		AccountID:        d.AccountID,
		CurrencyID:       d.CurrencyID,
		Description:      d.Description,
		DebitAmount:      d.DebitAmount,
		CreditAmount:     d.CreditAmount,
		ExchangeRate:     d.ExchangeRate,
		DebitAmountBase:  d.DebitAmountBase,
		CreditAmountBase: d.CreditAmountBase,
	}
}

// ToDomainJournalLine converts a model JournalLine to a domain JournalLine
func ToDomainJournalLine(m models.JournalLine) domain.JournalLine {
	return domain.JournalLine{
		LineID:           m.LineID,
		EntryID:          m.EntryID,
		LineNumber:       m.LineNumber,
		AccountID:        m.AccountID,
		CurrencyID:       m.CurrencyID,
		Description:      m.Description,
		DebitAmount:      m.DebitAmount,
		CreditAmount:     m.CreditAmount,
		ExchangeRate:     m.ExchangeRate,
		DebitAmountBase:  m.DebitAmountBase,
		CreditAmountBase: m.CreditAmountBase,
	}
}

// ToDomainJournalLineSlice converts a slice of model lines
func ToDomainJournalLineSlice(ms []models.JournalLine) []domain.JournalLine {
	return toSlice(ms, ToDomainJournalLine)
}
