package memory

import (
	"context"
	"sort"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

func (s *Store) FindVoucherByID(ctx context.Context, workplaceID, voucherID string) (*domain.Voucher, error) {
	var out *domain.Voucher
	err := s.read(ctx, func(st *state) error {
		v, ok := st.vouchers[voucherID]
		if !ok || v.WorkplaceID != workplaceID {
			return apperrors.NewNotFoundError("voucher", voucherID)
		}
		out = &v
		return nil
	})
	return out, err
}

func (s *Store) FindVoucherByIDForUpdate(ctx context.Context, workplaceID, voucherID string) (*domain.Voucher, error) {
	return s.FindVoucherByID(ctx, workplaceID, voucherID)
}

func (s *Store) ListVouchers(ctx context.Context, workplaceID string, filter domain.VoucherFilter) ([]domain.Voucher, error) {
	var out []domain.Voucher
	err := s.read(ctx, func(st *state) error {
		for _, v := range st.vouchers {
			if v.WorkplaceID != workplaceID {
				continue
			}
			if filter.VoucherType != nil && v.VoucherType != *filter.VoucherType {
				continue
			}
			if filter.Status != nil && v.Status != *filter.Status {
				continue
			}
			if filter.SubSystemID != nil && (v.SubSystemID == nil || *v.SubSystemID != *filter.SubSystemID) {
				continue
			}
			if filter.FromDate != nil && v.VoucherDate.Before(*filter.FromDate) {
				continue
			}
			if filter.ToDate != nil && v.VoucherDate.After(*filter.ToDate) {
				continue
			}
			out = append(out, v)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].VoucherDate.Equal(out[j].VoucherDate) {
			return out[i].VoucherDate.After(out[j].VoucherDate)
		}
		return out[i].VoucherID > out[j].VoucherID
	})
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, err
}

func (s *Store) SaveVoucher(ctx context.Context, voucher domain.Voucher) error {
	return s.write(ctx, func(st *state) error {
		for _, v := range st.vouchers {
			if v.WorkplaceID == voucher.WorkplaceID && v.VoucherType == voucher.VoucherType && v.VoucherNumber == voucher.VoucherNumber {
				return apperrors.NewDuplicateError("%s voucher %s already exists", voucher.VoucherType, voucher.VoucherNumber)
			}
		}
		st.vouchers[voucher.VoucherID] = voucher
		return nil
	})
}

func (s *Store) UpdateVoucher(ctx context.Context, voucher domain.Voucher) error {
	return s.write(ctx, func(st *state) error {
		existing, ok := st.vouchers[voucher.VoucherID]
		if !ok || existing.WorkplaceID != voucher.WorkplaceID {
			return apperrors.NewNotFoundError("voucher", voucher.VoucherID)
		}
		st.vouchers[voucher.VoucherID] = voucher
		return nil
	})
}

func (s *Store) DeleteVoucher(ctx context.Context, workplaceID, voucherID string) error {
	return s.write(ctx, func(st *state) error {
		v, ok := st.vouchers[voucherID]
		if !ok || v.WorkplaceID != workplaceID {
			return apperrors.NewNotFoundError("voucher", voucherID)
		}
		delete(st.vouchers, voucherID)
		return nil
	})
}
