package dto

import (
	"fmt"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/hashicorp/go-multierror"
	"github.com/shopspring/decimal"
)

// OperationFields are shared by receipts, payments and transfers.
type OperationFields struct {
	VoucherNumber string           `json:"voucherNumber" binding:"required,max=100"`
	VoucherDate   time.Time        `json:"voucherDate" binding:"required"`
	Amount        decimal.Decimal  `json:"amount" binding:"required,gt=0"`
	CurrencyID    string           `json:"currencyID" binding:"required"`
	ExchangeRate  *decimal.Decimal `json:"exchangeRate" binding:"omitempty,gt=0"`
	Description   *string          `json:"description"`
	Notes         *string          `json:"notes"`
	Attachments   []string         `json:"attachments"`
	SubSystemID   *string          `json:"subSystemID"`
}

func (f OperationFields) intent(kind domain.VoucherType, from, to string) domain.OperationIntent {
	return domain.OperationIntent{
		Kind:          kind,
		VoucherNumber: f.VoucherNumber,
		VoucherDate:   f.VoucherDate,
		FromAccountID: from,
		ToAccountID:   to,
		Amount:        f.Amount,
		CurrencyID:    f.CurrencyID,
		ExchangeRate:  f.ExchangeRate,
		Description:   f.Description,
		Notes:         f.Notes,
		Attachments:   f.Attachments,
		SubSystemID:   f.SubSystemID,
	}
}

// CreateReceiptRequest records money received into a treasury account from a source.
type CreateReceiptRequest struct {
	TreasuryAccountID string `json:"treasuryAccountID" binding:"required"`
	SourceAccountID   string `json:"sourceAccountID" binding:"required"`
	OperationFields
}

// ToIntent maps the receipt onto a generic operation: source to treasury.
func (r CreateReceiptRequest) ToIntent() domain.OperationIntent {
	return r.intent(domain.VoucherReceipt, r.SourceAccountID, r.TreasuryAccountID)
}

// CreatePaymentRequest records money paid out of a treasury account to a destination.
type CreatePaymentRequest struct {
	TreasuryAccountID    string `json:"treasuryAccountID" binding:"required"`
	DestinationAccountID string `json:"destinationAccountID" binding:"required"`
	OperationFields
}

// ToIntent maps the payment onto a generic operation: treasury to destination.
func (r CreatePaymentRequest) ToIntent() domain.OperationIntent {
	return r.intent(domain.VoucherPayment, r.TreasuryAccountID, r.DestinationAccountID)
}

// CreateTransferRequest moves money between two accounts.
type CreateTransferRequest struct {
	FromAccountID string `json:"fromAccountID" binding:"required"`
	ToAccountID   string `json:"toAccountID" binding:"required"`
	OperationFields
}

// ToIntent maps the transfer onto a generic operation.
func (r CreateTransferRequest) ToIntent() domain.OperationIntent {
	return r.intent(domain.VoucherTransfer, r.FromAccountID, r.ToAccountID)
}

// ValidateIntent runs the structural checks shared by all operation kinds.
func ValidateIntent(in domain.OperationIntent) error {
	var result *multierror.Error
	if !in.Kind.Valid() {
		result = multierror.Append(result, fmt.Errorf("unknown operation kind %q", in.Kind))
	}
	if in.VoucherNumber == "" {
		result = multierror.Append(result, fmt.Errorf("voucher number is required"))
	}
	if in.VoucherDate.IsZero() {
		result = multierror.Append(result, fmt.Errorf("voucher date is required"))
	}
	if in.FromAccountID == "" || in.ToAccountID == "" {
		result = multierror.Append(result, fmt.Errorf("both accounts are required"))
	} else if in.FromAccountID == in.ToAccountID {
		result = multierror.Append(result, fmt.Errorf("source and destination accounts must differ"))
	}
	if !in.Amount.IsPositive() {
		result = multierror.Append(result, fmt.Errorf("amount must be greater than zero"))
	}
	if in.CurrencyID == "" {
		result = multierror.Append(result, fmt.Errorf("currency is required"))
	}
	if in.ExchangeRate != nil && !in.ExchangeRate.IsPositive() {
		result = multierror.Append(result, fmt.Errorf("exchange rate must be greater than zero"))
	}
	return result.ErrorOrNil()
}

// UpdateVoucherRequest patches the free-text fields of a draft voucher.
type UpdateVoucherRequest struct {
	Description *string   `json:"description"`
	Notes       *string   `json:"notes"`
	Attachments *[]string `json:"attachments"`
}

// CancelVoucherRequest carries the date of the reversing entry and the reason.
type CancelVoucherRequest struct {
	CancelDate time.Time `json:"cancelDate" binding:"required"`
	Reason     string    `json:"reason"`
}

// RecentOperationsParams defines query parameters for the recent operations feed.
type RecentOperationsParams struct {
	Limit int `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
}

// ListVouchersParams defines query parameters for listing vouchers.
type ListVouchersParams struct {
	VoucherType *domain.VoucherType   `form:"type" binding:"omitempty,oneof=RECEIPT PAYMENT TRANSFER"`
	Status      *domain.VoucherStatus `form:"status" binding:"omitempty,oneof=DRAFT APPROVED CANCELLED"`
	SubSystemID *string               `form:"subSystemId"`
	FromDate    *time.Time            `form:"fromDate" time_format:"2006-01-02"`
	ToDate      *time.Time            `form:"toDate" time_format:"2006-01-02"`
	Limit       int                   `form:"limit,default=50" binding:"omitempty,min=1,max=200"`
}

// ToFilter converts query parameters into a domain filter.
func (p ListVouchersParams) ToFilter() domain.VoucherFilter {
	return domain.VoucherFilter{
		VoucherType: p.VoucherType,
		Status:      p.Status,
		SubSystemID: p.SubSystemID,
		FromDate:    p.FromDate,
		ToDate:      p.ToDate,
		Limit:       p.Limit,
	}
}

// VoucherResponse defines the data returned for a voucher.
type VoucherResponse struct {
	VoucherID       string                `json:"voucherID"`
	VoucherType     domain.VoucherType    `json:"voucherType"`
	VoucherNumber   string                `json:"voucherNumber"`
	VoucherDate     time.Time             `json:"voucherDate"`
	FromAccountID   string                `json:"fromAccountID"`
	ToAccountID     string                `json:"toAccountID"`
	SourceName      string                `json:"sourceName"`
	SourceType      domain.AccountSubType `json:"sourceType"`
	DestinationName string                `json:"destinationName"`
	DestinationType domain.AccountSubType `json:"destinationType"`
	Amount          decimal.Decimal       `json:"amount"`
	CurrencyID      string                `json:"currencyID"`
	ExchangeRate    decimal.Decimal       `json:"exchangeRate"`
	AmountInBase    decimal.Decimal       `json:"amountInBase"`
	JournalEntryID  string                `json:"journalEntryID"`
	Status          domain.VoucherStatus  `json:"status"`
	Description     *string               `json:"description,omitempty"`
	Notes           *string               `json:"notes,omitempty"`
	Attachments     []string              `json:"attachments"`
	SubSystemID     *string               `json:"subSystemID,omitempty"`
	CancelledAt     *time.Time            `json:"cancelledAt,omitempty"`
	CancelledBy     *string               `json:"cancelledBy,omitempty"`
	CreatedAt       time.Time             `json:"createdAt"`
	CreatedBy       string                `json:"createdBy"`
	LastUpdatedAt   time.Time             `json:"lastUpdatedAt"`
	LastUpdatedBy   string                `json:"lastUpdatedBy"`
	Entry           *JournalEntryResponse `json:"entry,omitempty"`
}

// ToVoucherResponse converts a domain.Voucher to VoucherResponse DTO.
func ToVoucherResponse(v *domain.Voucher) VoucherResponse {
	attachments := v.Attachments
	if attachments == nil {
		attachments = []string{}
	}
	return VoucherResponse{
		VoucherID:       v.VoucherID,
		VoucherType:     v.VoucherType,
		VoucherNumber:   v.VoucherNumber,
		VoucherDate:     v.VoucherDate,
		FromAccountID:   v.FromAccountID,
		ToAccountID:     v.ToAccountID,
		SourceName:      v.SourceName,
		SourceType:      v.SourceType,
		DestinationName: v.DestinationName,
		DestinationType: v.DestinationType,
		Amount:          v.Amount,
		CurrencyID:      v.CurrencyID,
		ExchangeRate:    v.ExchangeRate,
		AmountInBase:    v.AmountInBase,
		JournalEntryID:  v.JournalEntryID,
		Status:          v.Status,
		Description:     v.Description,
		Notes:           v.Notes,
		Attachments:     attachments,
		SubSystemID:     v.SubSystemID,
		CancelledAt:     v.CancelledAt,
		CancelledBy:     v.CancelledBy,
		CreatedAt:       v.CreatedAt,
		CreatedBy:       v.CreatedBy,
		LastUpdatedAt:   v.LastUpdatedAt,
		LastUpdatedBy:   v.LastUpdatedBy,
	}
}

// ToVoucherDetailsResponse converts a voucher and its entry to VoucherResponse DTO.
func ToVoucherDetailsResponse(d *domain.VoucherDetails) VoucherResponse {
	resp := ToVoucherResponse(&d.Voucher)
	if d.Entry != nil {
		entry := ToJournalEntryResponse(d.Entry)
		resp.Entry = &entry
	}
	return resp
}

// ToListVoucherResponse converts a slice of domain.Voucher to VoucherResponse DTOs.
func ToListVoucherResponse(vouchers []domain.Voucher) []VoucherResponse {
	res := make([]VoucherResponse, len(vouchers))
	for i := range vouchers {
		res[i] = ToVoucherResponse(&vouchers[i])
	}
	return res
}
