package mapping

import (
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/models"
)

// ToModelVoucher converts a domain Voucher to a model Voucher
func ToModelVoucher(d domain.Voucher) models.Voucher {
	attachments := d.Attachments
	if attachments == nil {
		attachments = []string{}
	}
	return models.Voucher{
		VoucherID:       d.VoucherID,
		WorkplaceID:     d.WorkplaceID,
		VoucherType:     string(d.VoucherType),
		VoucherNumber:   d.VoucherNumber,
		VoucherDate:     d.VoucherDate,
		FromAccountID:   d.FromAccountID,
		ToAccountID:     d.ToAccountID,
		SourceName:      d.SourceName,
		SourceType:      string(d.SourceType),
		DestinationName: d.DestinationName,
		DestinationType: string(d.DestinationType),
		Amount:          d.Amount,
		CurrencyID:      d.CurrencyID,
		ExchangeRate:    d.ExchangeRate,
		AmountInBase:    d.AmountInBase,
		JournalEntryID:  d.JournalEntryID,
		Status:          string(d.Status),
		Description:     d.Description,
		Notes:           d.Notes,
		Attachments:     attachments,
		SubSystemID:     d.SubSystemID,
		CancelledAt:     d.CancelledAt,
		CancelledBy:     d.CancelledBy,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainVoucher converts a model Voucher to a domain Voucher
func ToDomainVoucher(m models.Voucher) domain.Voucher {
	return domain.Voucher{
		VoucherID:       m.VoucherID,
		WorkplaceID:     m.WorkplaceID,
		VoucherType:     domain.VoucherType(m.VoucherType),
		VoucherNumber:   m.VoucherNumber,
		VoucherDate:     m.VoucherDate,
		FromAccountID:   m.FromAccountID,
		ToAccountID:     m.ToAccountID,
		SourceName:      m.SourceName,
		SourceType:      domain.AccountSubType(m.SourceType),
		DestinationName: m.DestinationName,
		DestinationType: domain.AccountSubType(m.DestinationType),
		Amount:          m.Amount,
		CurrencyID:      m.CurrencyID,
		ExchangeRate:    m.ExchangeRate,
		AmountInBase:    m.AmountInBase,
		JournalEntryID:  m.JournalEntryID,
		Status:          domain.VoucherStatus(m.Status),
		Description:     m.Description,
		Notes:           m.Notes,
		Attachments:     m.Attachments,
		SubSystemID:     m.SubSystemID,
		CancelledAt:     m.CancelledAt,
		CancelledBy:     m.CancelledBy,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainVoucherSlice converts a slice of model Vouchers
func ToDomainVoucherSlice(ms []models.Voucher) []domain.Voucher {
	return toSlice(ms, ToDomainVoucher)
}
