package services

import (
	"context"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/dto"
)

// OperationComposerSvc turns receipts, payments and transfers into posted entries.
type OperationComposerSvc interface {
	// CreateReceipt records money received into a treasury account.
	CreateReceipt(ctx context.Context, workplaceID string, req dto.CreateReceiptRequest, userID string) (*domain.VoucherDetails, error)

	// CreatePayment records money paid out of a treasury account.
	CreatePayment(ctx context.Context, workplaceID string, req dto.CreatePaymentRequest, userID string) (*domain.VoucherDetails, error)

	// CreateTransfer moves money between two accounts.
	CreateTransfer(ctx context.Context, workplaceID string, req dto.CreateTransferRequest, userID string) (*domain.VoucherDetails, error)

	// Compose persists the voucher and posts its balanced two-line entry in one unit of work.
	Compose(ctx context.Context, workplaceID string, intent domain.OperationIntent, userID string) (*domain.VoucherDetails, error)
}

// VoucherSvc manages existing vouchers.
type VoucherSvc interface {
	// GetVoucher retrieves a voucher with its entry.
	GetVoucher(ctx context.Context, workplaceID, voucherID string) (*domain.VoucherDetails, error)

	// ListVouchers retrieves vouchers matching filter.
	ListVouchers(ctx context.Context, workplaceID string, filter domain.VoucherFilter) ([]domain.Voucher, error)

	// UpdateVoucher patches the free-text fields of a draft voucher.
	UpdateVoucher(ctx context.Context, workplaceID, voucherID string, req dto.UpdateVoucherRequest, userID string) (*domain.Voucher, error)

	// DeleteVoucher removes a draft voucher.
	DeleteVoucher(ctx context.Context, workplaceID, voucherID, userID string) error

	// CancelVoucher reverses an approved voucher's entry and marks it cancelled.
	CancelVoucher(ctx context.Context, workplaceID, voucherID string, req dto.CancelVoucherRequest, userID string) (*domain.VoucherDetails, error)
}

// OperationSvcFacade combines the composer and voucher management.
type OperationSvcFacade interface {
	OperationComposerSvc
	VoucherSvc
}
