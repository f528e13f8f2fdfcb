package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// VoucherType is the business document kind wrapping a system-generated entry.
type VoucherType string

const (
	VoucherReceipt  VoucherType = "RECEIPT"
	VoucherPayment  VoucherType = "PAYMENT"
	VoucherTransfer VoucherType = "TRANSFER"
)

// EntryNumberPrefix is prepended to the voucher number to number its journal entry.
func (t VoucherType) EntryNumberPrefix() string {
	switch t {
	case VoucherReceipt:
		return "REC-"
	case VoucherPayment:
		return "PAY-"
	default:
		return "TRF-"
	}
}

// ReferenceType maps the voucher kind to the entry reference type.
func (t VoucherType) ReferenceType() ReferenceType {
	switch t {
	case VoucherReceipt:
		return ReferenceReceipt
	case VoucherPayment:
		return ReferencePayment
	default:
		return ReferenceTransfer
	}
}

// Valid reports whether t is a known voucher type.
func (t VoucherType) Valid() bool {
	return t == VoucherReceipt || t == VoucherPayment || t == VoucherTransfer
}

// VoucherStatus is independent of the status of the voucher's journal entry.
type VoucherStatus string

const (
	VoucherDraft     VoucherStatus = "DRAFT"
	VoucherApproved  VoucherStatus = "APPROVED"
	VoucherCancelled VoucherStatus = "CANCELLED"
)

// Valid reports whether s is a known voucher status.
func (s VoucherStatus) Valid() bool {
	return s == VoucherDraft || s == VoucherApproved || s == VoucherCancelled
}

// CanEdit reports whether the voucher's free-text fields may change.
func (s VoucherStatus) CanEdit() bool {
	return s == VoucherDraft
}

// Cancel returns the status after cancellation.
func (s VoucherStatus) Cancel() (VoucherStatus, error) {
	if s != VoucherApproved {
		return s, fmt.Errorf("cannot cancel a voucher in status %s", s)
	}
	return VoucherCancelled, nil
}

// Voucher is a receipt, payment or transfer document backed by exactly one journal entry.
type Voucher struct {
	VoucherID       string          `json:"voucherID"`
	WorkplaceID     string          `json:"workplaceID"`
	VoucherType     VoucherType     `json:"voucherType"`
	VoucherNumber   string          `json:"voucherNumber"`
	VoucherDate     time.Time       `json:"voucherDate"`
	FromAccountID   string          `json:"fromAccountID"`
	ToAccountID     string          `json:"toAccountID"`
	SourceName      string          `json:"sourceName"`
	SourceType      AccountSubType  `json:"sourceType"`
	DestinationName string          `json:"destinationName"`
	DestinationType AccountSubType  `json:"destinationType"`
	Amount          decimal.Decimal `json:"amount"`
	CurrencyID      string          `json:"currencyID"`
	ExchangeRate    decimal.Decimal `json:"exchangeRate"`
	AmountInBase    decimal.Decimal `json:"amountInBase"`
	JournalEntryID  string          `json:"journalEntryID"`
	Status          VoucherStatus   `json:"status"`
	Description     *string         `json:"description,omitempty"`
	Notes           *string         `json:"notes,omitempty"`
	Attachments     []string        `json:"attachments"`
	SubSystemID     *string         `json:"subSystemID,omitempty"`
	CancelledAt     *time.Time      `json:"cancelledAt,omitempty"`
	CancelledBy     *string         `json:"cancelledBy,omitempty"`
	AuditFields
}

// VoucherFilter narrows voucher listings. Nil fields are ignored.
type VoucherFilter struct {
	VoucherType *VoucherType
	Status      *VoucherStatus
	SubSystemID *string
	FromDate    *time.Time
	ToDate      *time.Time
	Limit       int
}

// OperationIntent is the transport-independent form of a receipt, payment or transfer.
// Money moves from FromAccountID to ToAccountID: the destination is debited and the
// source credited.
type OperationIntent struct {
	Kind          VoucherType
	VoucherNumber string
	VoucherDate   time.Time
	FromAccountID string
	ToAccountID   string
	Amount        decimal.Decimal
	CurrencyID    string
	ExchangeRate  *decimal.Decimal
	Description   *string
	Notes         *string
	Attachments   []string
	SubSystemID   *string
}

// VoucherDetails bundles a voucher with its journal entry and lines.
type VoucherDetails struct {
	Voucher
	Entry *JournalEntry `json:"entry,omitempty"`
}
