package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// BalanceTolerance is the largest base-currency difference between the debit
// and credit sides that still counts as balanced.
var BalanceTolerance = decimal.New(1, -2)

// EntryStatus is the lifecycle state of a journal entry.
type EntryStatus string

const (
	Draft    EntryStatus = "DRAFT"
	Posted   EntryStatus = "POSTED"
	Reversed EntryStatus = "REVERSED"
)

// Valid reports whether s is a known status.
func (s EntryStatus) Valid() bool {
	return s == Draft || s == Posted || s == Reversed
}

// CanEdit reports whether an entry in this status may be updated or deleted.
func (s EntryStatus) CanEdit() bool {
	return s == Draft
}

// Post returns the status after posting, or an error if posting is not allowed.
func (s EntryStatus) Post() (EntryStatus, error) {
	if s != Draft {
		return s, fmt.Errorf("cannot post an entry in status %s", s)
	}
	return Posted, nil
}

// Reverse returns the status after reversal, or an error if reversal is not allowed.
func (s EntryStatus) Reverse() (EntryStatus, error) {
	if s != Posted {
		return s, fmt.Errorf("cannot reverse an entry in status %s", s)
	}
	return Reversed, nil
}

// AffectsBalances reports whether the entry's lines have been applied to the balance store.
// Reversed entries keep their effect; the reversal entry cancels it.
func (s EntryStatus) AffectsBalances() bool {
	return s == Posted || s == Reversed
}

// EntryType classifies how an entry came to exist.
type EntryType string

const (
	EntryTypeManual          EntryType = "MANUAL"
	EntryTypeSystemGenerated EntryType = "SYSTEM_GENERATED"
	EntryTypeReversal        EntryType = "REVERSAL"
)

// Valid reports whether t is a known entry type.
func (t EntryType) Valid() bool {
	return t == EntryTypeManual || t == EntryTypeSystemGenerated || t == EntryTypeReversal
}

// ReferenceType names the kind of document an entry was produced from.
type ReferenceType string

const (
	ReferenceReceipt      ReferenceType = "RECEIPT"
	ReferencePayment      ReferenceType = "PAYMENT"
	ReferenceTransfer     ReferenceType = "TRANSFER"
	ReferenceJournalEntry ReferenceType = "JOURNAL_ENTRY"
)

// ReversalNumberSuffix is appended to the original entry number to number its reversal.
const ReversalNumberSuffix = "-REV"

// JournalEntry is a dated, balanced set of debit and credit lines.
type JournalEntry struct {
	EntryID         string          `json:"entryID"`
	WorkplaceID     string          `json:"workplaceID"`
	EntryNumber     string          `json:"entryNumber"`
	EntryDate       time.Time       `json:"entryDate"`
	EntryType       EntryType       `json:"entryType"`
	Description     string          `json:"description"`
	Notes           *string         `json:"notes,omitempty"`
	ReferenceType   *ReferenceType  `json:"referenceType,omitempty"`
	ReferenceID     *string         `json:"referenceID,omitempty"`
	ReferenceNumber *string         `json:"referenceNumber,omitempty"`
	SubSystemID     *string         `json:"subSystemID,omitempty"`
	Status          EntryStatus     `json:"status"`
	TotalDebitBase  decimal.Decimal `json:"totalDebitBase"`
	TotalCreditBase decimal.Decimal `json:"totalCreditBase"`
	PostedAt        *time.Time      `json:"postedAt,omitempty"`
	PostedBy        *string         `json:"postedBy,omitempty"`
	ReversedAt      *time.Time      `json:"reversedAt,omitempty"`
	ReversedBy      *string         `json:"reversedBy,omitempty"`
	ReversalEntryID *string         `json:"reversalEntryID,omitempty"` // Set on the original once reversed
	ReversedEntryID *string         `json:"reversedEntryID,omitempty"` // Set on the reversal, points at the original
	AuditFields
	Lines []JournalLine `json:"lines,omitempty"`
}

// JournalLine is one debit or credit movement of an entry against one account, in one currency.
type JournalLine struct {
	LineID           string          `json:"lineID"`
	EntryID          string          `json:"entryID"`
	LineNumber       int             `json:"lineNumber"`
	AccountID        string          `json:"accountID"`
	CurrencyID       string          `json:"currencyID"`
	Description      *string         `json:"description,omitempty"`
	DebitAmount      decimal.Decimal `json:"debitAmount"`
	CreditAmount     decimal.Decimal `json:"creditAmount"`
	ExchangeRate     decimal.Decimal `json:"exchangeRate"`
	DebitAmountBase  decimal.Decimal `json:"debitAmountBase"`
	CreditAmountBase decimal.Decimal `json:"creditAmountBase"`
}

// Mirror returns a copy of the line with debit and credit sides swapped.
func (l JournalLine) Mirror() JournalLine {
	m := l
	m.DebitAmount, m.CreditAmount = l.CreditAmount, l.DebitAmount
	m.DebitAmountBase, m.CreditAmountBase = l.CreditAmountBase, l.DebitAmountBase
	return m
}

// ValidateAmounts checks the per-line amount rules: no negatives and at most one
// non-zero side. Both sides may be zero.
func (l JournalLine) ValidateAmounts() error {
	if l.DebitAmount.IsNegative() || l.CreditAmount.IsNegative() {
		return fmt.Errorf("line %d: amounts cannot be negative", l.LineNumber)
	}
	if !l.DebitAmount.IsZero() && !l.CreditAmount.IsZero() {
		return fmt.Errorf("line %d: a line cannot carry both a debit and a credit amount", l.LineNumber)
	}
	return nil
}

// BaseTotals sums the base-currency debit and credit sides of lines.
func BaseTotals(lines []JournalLine) (debit, credit decimal.Decimal) {
	debit, credit = decimal.Zero, decimal.Zero
	for _, l := range lines {
		debit = debit.Add(l.DebitAmountBase)
		credit = credit.Add(l.CreditAmountBase)
	}
	return debit, credit
}

// IsBalanced reports whether debit and credit differ by no more than BalanceTolerance.
func IsBalanced(debit, credit decimal.Decimal) bool {
	return debit.Sub(credit).Abs().LessThanOrEqual(BalanceTolerance)
}

// JournalEntryFilter narrows entry listings. Nil fields are ignored.
type JournalEntryFilter struct {
	Status      *EntryStatus
	EntryType   *EntryType
	SubSystemID *string
	FromDate    *time.Time
	ToDate      *time.Time
	Limit       int
	NextToken   *string
}
