package repositories

import (
	"context"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// VoucherReader defines read operations for vouchers
type VoucherReader interface {
	// FindVoucherByID retrieves a voucher of the workplace.
	FindVoucherByID(ctx context.Context, workplaceID, voucherID string) (*domain.Voucher, error)

	// FindVoucherByIDForUpdate retrieves and locks a voucher until the unit of work ends.
	FindVoucherByIDForUpdate(ctx context.Context, workplaceID, voucherID string) (*domain.Voucher, error)

	// ListVouchers retrieves vouchers matching filter, newest voucher date first.
	ListVouchers(ctx context.Context, workplaceID string, filter domain.VoucherFilter) ([]domain.Voucher, error)
}

// VoucherWriter defines write operations for vouchers
type VoucherWriter interface {
	// SaveVoucher persists a new voucher. Returns apperrors.ErrDuplicate when the
	// number is taken for the voucher type.
	SaveVoucher(ctx context.Context, voucher domain.Voucher) error

	// UpdateVoucher overwrites an existing voucher.
	UpdateVoucher(ctx context.Context, voucher domain.Voucher) error

	// DeleteVoucher removes a voucher.
	DeleteVoucher(ctx context.Context, workplaceID, voucherID string) error
}

// VoucherRepositoryFacade combines all voucher-related repository interfaces
type VoucherRepositoryFacade interface {
	VoucherReader
	VoucherWriter
}
