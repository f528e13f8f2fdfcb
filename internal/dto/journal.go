package dto

import (
	"fmt"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/hashicorp/go-multierror"
	"github.com/shopspring/decimal"
)

// JournalLineRequest is one line of a create or update request.
type JournalLineRequest struct {
	AccountID    string           `json:"accountID" binding:"required"`
	CurrencyID   string           `json:"currencyID" binding:"required"`
	Description  *string          `json:"description"`
	DebitAmount  decimal.Decimal  `json:"debitAmount" binding:"gte=0"`
	CreditAmount decimal.Decimal  `json:"creditAmount" binding:"gte=0"`
	ExchangeRate *decimal.Decimal `json:"exchangeRate" binding:"omitempty,gt=0"` // Rate to base; resolved when absent
}

// CreateJournalEntryRequest defines the data needed to create a draft entry.
type CreateJournalEntryRequest struct {
	EntryNumber     string                `json:"entryNumber" binding:"required,max=100"`
	EntryDate       time.Time             `json:"entryDate" binding:"required"`
	EntryType       domain.EntryType      `json:"entryType" binding:"omitempty,oneof=MANUAL"`
	Description     string                `json:"description" binding:"required"`
	Notes           *string               `json:"notes"`
	ReferenceType   *domain.ReferenceType `json:"referenceType" binding:"omitempty,oneof=RECEIPT PAYMENT TRANSFER JOURNAL_ENTRY"`
	ReferenceID     *string               `json:"referenceID"`
	ReferenceNumber *string               `json:"referenceNumber"`
	SubSystemID     *string               `json:"subSystemID"`
	Lines           []JournalLineRequest  `json:"lines" binding:"required,min=1,dive"`
}

// Validate runs the structural checks that do not need the datastore.
func (r CreateJournalEntryRequest) Validate() error {
	var result *multierror.Error
	if r.EntryNumber == "" {
		result = multierror.Append(result, fmt.Errorf("entry number is required"))
	}
	if r.Description == "" {
		result = multierror.Append(result, fmt.Errorf("description is required"))
	}
	if r.EntryDate.IsZero() {
		result = multierror.Append(result, fmt.Errorf("entry date is required"))
	}
	if r.EntryType != "" && r.EntryType != domain.EntryTypeManual && r.EntryType != domain.EntryTypeSystemGenerated {
		result = multierror.Append(result, fmt.Errorf("entry type %s cannot be created directly", r.EntryType))
	}
	if err := validateLines(r.Lines); err != nil {
		result = multierror.Append(result, err)
	}
	return result.ErrorOrNil()
}

func validateLines(lines []JournalLineRequest) error {
	if len(lines) == 0 {
		return fmt.Errorf("an entry needs at least one line")
	}
	var result *multierror.Error
	for i, l := range lines {
		if l.AccountID == "" {
			result = multierror.Append(result, fmt.Errorf("line %d: account is required", i+1))
		}
		if l.CurrencyID == "" {
			result = multierror.Append(result, fmt.Errorf("line %d: currency is required", i+1))
		}
		if l.ExchangeRate != nil && !l.ExchangeRate.IsPositive() {
			result = multierror.Append(result, fmt.Errorf("line %d: exchange rate must be greater than zero", i+1))
		}
	}
	return result.ErrorOrNil()
}

// UpdateJournalEntryRequest patches a draft entry. Lines, when provided, replace all lines.
type UpdateJournalEntryRequest struct {
	EntryNumber *string              `json:"entryNumber" binding:"omitempty,max=100"`
	EntryDate   *time.Time           `json:"entryDate"`
	Description *string              `json:"description"`
	Notes       *string              `json:"notes"`
	SubSystemID *string              `json:"subSystemID"`
	Lines       []JournalLineRequest `json:"lines" binding:"omitempty,dive"`
}

// Validate runs the structural checks of a patch.
func (r UpdateJournalEntryRequest) Validate() error {
	var result *multierror.Error
	if r.EntryNumber != nil && *r.EntryNumber == "" {
		result = multierror.Append(result, fmt.Errorf("entry number cannot be blank"))
	}
	if r.Description != nil && *r.Description == "" {
		result = multierror.Append(result, fmt.Errorf("description cannot be blank"))
	}
	if r.Lines != nil {
		if err := validateLines(r.Lines); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}

// ReverseJournalEntryRequest carries the reversal date and reason.
type ReverseJournalEntryRequest struct {
	ReversalDate time.Time `json:"reversalDate" binding:"required"`
	Reason       string    `json:"reason"`
}

// ListJournalEntriesParams defines query parameters for listing entries.
type ListJournalEntriesParams struct {
	Status      *domain.EntryStatus `form:"status" binding:"omitempty,oneof=DRAFT POSTED REVERSED"`
	EntryType   *domain.EntryType   `form:"entryType" binding:"omitempty,oneof=MANUAL SYSTEM_GENERATED REVERSAL"`
	SubSystemID *string             `form:"subSystemId"`
	FromDate    *time.Time          `form:"fromDate" time_format:"2006-01-02"`
	ToDate      *time.Time          `form:"toDate" time_format:"2006-01-02"`
	Limit       int                 `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	NextToken   *string             `form:"nextToken"`
}

// ToFilter converts query parameters into a domain filter.
func (p ListJournalEntriesParams) ToFilter() domain.JournalEntryFilter {
	return domain.JournalEntryFilter{
		Status:      p.Status,
		EntryType:   p.EntryType,
		SubSystemID: p.SubSystemID,
		FromDate:    p.FromDate,
		ToDate:      p.ToDate,
		Limit:       p.Limit,
		NextToken:   p.NextToken,
	}
}

// JournalLineResponse defines the data returned for a journal line.
type JournalLineResponse struct {
	LineID           string          `json:"lineID"`
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

// JournalEntryResponse defines the data returned for a journal entry.
type JournalEntryResponse struct {
	EntryID         string                `json:"entryID"`
	EntryNumber     string                `json:"entryNumber"`
	EntryDate       time.Time             `json:"entryDate"`
	EntryType       domain.EntryType      `json:"entryType"`
	Description     string                `json:"description"`
	Notes           *string               `json:"notes,omitempty"`
	ReferenceType   *domain.ReferenceType `json:"referenceType,omitempty"`
	ReferenceID     *string               `json:"referenceID,omitempty"`
	ReferenceNumber *string               `json:"referenceNumber,omitempty"`
	SubSystemID     *string               `json:"subSystemID,omitempty"`
	Status          domain.EntryStatus    `json:"status"`
	TotalDebitBase  decimal.Decimal       `json:"totalDebitBase"`
	TotalCreditBase decimal.Decimal       `json:"totalCreditBase"`
	PostedAt        *time.Time            `json:"postedAt,omitempty"`
	PostedBy        *string               `json:"postedBy,omitempty"`
	ReversedAt      *time.Time            `json:"reversedAt,omitempty"`
	ReversedBy      *string               `json:"reversedBy,omitempty"`
	ReversalEntryID *string               `json:"reversalEntryID,omitempty"`
	ReversedEntryID *string               `json:"reversedEntryID,omitempty"`
	CreatedAt       time.Time             `json:"createdAt"`
	CreatedBy       string                `json:"createdBy"`
	LastUpdatedAt   time.Time             `json:"lastUpdatedAt"`
	LastUpdatedBy   string                `json:"lastUpdatedBy"`
	Lines           []JournalLineResponse `json:"lines,omitempty"`
}

// ListJournalEntriesResponse wraps a page of entries.
type ListJournalEntriesResponse struct {
	Entries   []JournalEntryResponse `json:"entries"`
	NextToken *string                `json:"nextToken,omitempty"`
}

// ToJournalEntryResponse converts a domain.JournalEntry (and any loaded lines) to its DTO.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	resp := JournalEntryResponse{
		EntryID:         e.EntryID,
		EntryNumber:     e.EntryNumber,
		EntryDate:       e.EntryDate,
		EntryType:       e.EntryType,
		Description:     e.Description,
		Notes:           e.Notes,
		ReferenceType:   e.ReferenceType,
		ReferenceID:     e.ReferenceID,
		ReferenceNumber: e.ReferenceNumber,
		SubSystemID:     e.SubSystemID,
		Status:          e.Status,
		TotalDebitBase:  e.TotalDebitBase,
		TotalCreditBase: e.TotalCreditBase,
		PostedAt:        e.PostedAt,
		PostedBy:        e.PostedBy,
		ReversedAt:      e.ReversedAt,
		ReversedBy:      e.ReversedBy,
		ReversalEntryID: e.ReversalEntryID,
		ReversedEntryID: e.ReversedEntryID,
		CreatedAt:       e.CreatedAt,
		CreatedBy:       e.CreatedBy,
		LastUpdatedAt:   e.LastUpdatedAt,
		LastUpdatedBy:   e.LastUpdatedBy,
	}
	if len(e.Lines) > 0 {
		resp.Lines = make([]JournalLineResponse, len(e.Lines))
		for i, l := range e.Lines {
			resp.Lines[i] = JournalLineResponse{
				LineID:           l.LineID,
				LineNumber:       l.LineNumber,
				AccountID:        l.AccountID,
				CurrencyID:       l.CurrencyID,
				Description:      l.Description,
				DebitAmount:      l.DebitAmount,
				CreditAmount:     l.CreditAmount,
				ExchangeRate:     l.ExchangeRate,
				DebitAmountBase:  l.DebitAmountBase,
				CreditAmountBase: l.CreditAmountBase,
			}
		}
	}
	return resp
}

// ToListJournalEntriesResponse converts a page of entries to its DTO.
func ToListJournalEntriesResponse(entries []domain.JournalEntry, nextToken *string) ListJournalEntriesResponse {
	resp := ListJournalEntriesResponse{
		Entries:   make([]JournalEntryResponse, len(entries)),
		NextToken: nextToken,
	}
	for i := range entries {
		resp.Entries[i] = ToJournalEntryResponse(&entries[i])
	}
	return resp
}
