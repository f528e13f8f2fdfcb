package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is a row of the journal_entries table. Lines are stored separately.
type JournalEntry struct {
	EntryID         string          `db:"entry_id"`
	WorkplaceID     string          `db:"workplace_id"`
	EntryNumber     string          `db:"entry_number"`
	EntryDate       time.Time       `db:"entry_date"`
	EntryType       string          `db:"entry_type"`
	Description     string          `db:"description"`
	Notes           *string         `db:"notes"`
	ReferenceType   *string         `db:"reference_type"`
	ReferenceID     *string         `db:"reference_id"`
	ReferenceNumber *string         `db:"reference_number"`
	SubSystemID     *string         `db:"sub_system_id"`
	Status          string          `db:"status"`
	TotalDebitBase  decimal.Decimal `db:"total_debit_base"`
	TotalCreditBase decimal.Decimal `db:"total_credit_base"`
	PostedAt        *time.Time      `db:"posted_at"`
	PostedBy        *string         `db:"posted_by"`
	ReversedAt      *time.Time      `db:"reversed_at"`
	ReversedBy      *string         `db:"reversed_by"`
	ReversalEntryID *string         `db:"reversal_entry_id"`
	ReversedEntryID *string         `db:"reversed_entry_id"`
	AuditFields
}

// JournalLine is a single debit or credit movement of an entry.
type JournalLine struct {
	LineID           string          `db:"line_id"`
	WorkplaceID      string          `db:"workplace_id"`
	EntryID          string          `db:"entry_id"`
	LineNumber       int             `db:"line_number"`
	AccountID        string          `db:"account_id"`
	CurrencyID       string          `db:"currency_id"`
	Description      *string         `db:"description"`
	DebitAmount      decimal.Decimal `db:"debit_amount"`
	CreditAmount     decimal.Decimal `db:"credit_amount"`
	ExchangeRate     decimal.Decimal `db:"exchange_rate"`
	DebitAmountBase  decimal.Decimal `db:"debit_amount_base"`
	CreditAmountBase decimal.Decimal `db:"credit_amount_base"`
}
