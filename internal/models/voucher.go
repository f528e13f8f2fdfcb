package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Voucher is a row of the vouchers table. Receipts, payments and transfers share it.
type Voucher struct {
	VoucherID       string          `db:"voucher_id"`
	WorkplaceID     string          `db:"workplace_id"`
	VoucherType     string          `db:"voucher_type"`
	VoucherNumber   string          `db:"voucher_number"`
	VoucherDate     time.Time       `db:"voucher_date"`
	FromAccountID   string          `db:"from_account_id"`
	ToAccountID     string          `db:"to_account_id"`
	SourceName      string          `db:"source_name"`
	SourceType      string          `db:"source_type"`
	DestinationName string          `db:"destination_name"`
	DestinationType string          `db:"destination_type"`
	Amount          decimal.Decimal `db:"amount"`
	CurrencyID      string          `db:"currency_id"`
	ExchangeRate    decimal.Decimal `db:"exchange_rate"`
	AmountInBase    decimal.Decimal `db:"amount_in_base"`
	JournalEntryID  string          `db:"journal_entry_id"`
	Status          string          `db:"status"`
	Description     *string         `db:"description"`
	Notes           *string         `db:"notes"`
	Attachments     []string        `db:"attachments"`
	SubSystemID     *string         `db:"sub_system_id"`
	CancelledAt     *time.Time      `db:"cancelled_at"`
	CancelledBy     *string         `db:"cancelled_by"`
	AuditFields
}
