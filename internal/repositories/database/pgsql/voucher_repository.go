package pgsql

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_engine/internal/models"
	"github.com/SscSPs/ledger_engine/internal/utils/mapping"
)

const voucherColumns = `voucher_id, workplace_id, voucher_type, voucher_number, voucher_date,
	from_account_id, to_account_id, source_name, source_type, destination_name, destination_type,
	amount, currency_id, exchange_rate, amount_in_base, journal_entry_id, status,
	description, notes, attachments, sub_system_id, cancelled_at, cancelled_by,
	created_at, created_by, last_updated_at, last_updated_by`

// PgxVoucherRepository stores receipts, payments and transfers in one table.
type PgxVoucherRepository struct {
	BaseRepository
}

func newPgxVoucherRepository(pool DBPool) *PgxVoucherRepository {
	return &PgxVoucherRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.VoucherRepositoryFacade = (*PgxVoucherRepository)(nil)

func (r *PgxVoucherRepository) findVoucher(ctx context.Context, workplaceID, voucherID, suffix string) (*domain.Voucher, error) {
	query := `SELECT ` + voucherColumns + ` FROM vouchers WHERE workplace_id = $1 AND voucher_id = $2` + suffix
	m, err := queryOne[models.Voucher](ctx, r.db(ctx), query, workplaceID, voucherID)
	if err != nil {
		return nil, mapError(err, "voucher", voucherID)
	}
	v := mapping.ToDomainVoucher(m)
	return &v, nil
}

func (r *PgxVoucherRepository) FindVoucherByID(ctx context.Context, workplaceID, voucherID string) (*domain.Voucher, error) {
	return r.findVoucher(ctx, workplaceID, voucherID, ";")
}

func (r *PgxVoucherRepository) FindVoucherByIDForUpdate(ctx context.Context, workplaceID, voucherID string) (*domain.Voucher, error) {
	return r.findVoucher(ctx, workplaceID, voucherID, " FOR UPDATE;")
}

func (r *PgxVoucherRepository) ListVouchers(ctx context.Context, workplaceID string, filter domain.VoucherFilter) ([]domain.Voucher, error) {
	b := psql.Select(voucherColumns).From("vouchers").
		Where(sq.Eq{"workplace_id": workplaceID}).
		OrderBy("voucher_date DESC", "voucher_id DESC")
	if filter.VoucherType != nil {
		b = b.Where(sq.Eq{"voucher_type": string(*filter.VoucherType)})
	}
	if filter.Status != nil {
		b = b.Where(sq.Eq{"status": string(*filter.Status)})
	}
	if filter.SubSystemID != nil {
		b = b.Where(sq.Eq{"sub_system_id": *filter.SubSystemID})
	}
	if filter.FromDate != nil {
		b = b.Where(sq.GtOrEq{"voucher_date": *filter.FromDate})
	}
	if filter.ToDate != nil {
		b = b.Where(sq.LtOrEq{"voucher_date": *filter.ToDate})
	}
	if filter.Limit > 0 {
		b = b.Limit(uint64(filter.Limit))
	}
	ms, err := queryBuilt[models.Voucher](ctx, r.db(ctx), b)
	if err != nil {
		return nil, fmt.Errorf("failed to query vouchers: %w", err)
	}
	return mapping.ToDomainVoucherSlice(ms), nil
}

// SaveVoucher maps the (workplace, type, number) unique violation to apperrors.ErrDuplicate.
func (r *PgxVoucherRepository) SaveVoucher(ctx context.Context, voucher domain.Voucher) error {
	m := mapping.ToModelVoucher(voucher)
	query := `
		INSERT INTO vouchers (` + voucherColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27);
	`
	_, err := r.db(ctx).Exec(ctx, query,
		m.VoucherID, m.WorkplaceID, m.VoucherType, m.VoucherNumber, m.VoucherDate,
		m.FromAccountID, m.ToAccountID, m.SourceName, m.SourceType, m.DestinationName, m.DestinationType,
		m.Amount, m.CurrencyID, m.ExchangeRate, m.AmountInBase, m.JournalEntryID, m.Status,
		m.Description, m.Notes, m.Attachments, m.SubSystemID, m.CancelledAt, m.CancelledBy,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	return mapError(err, fmt.Sprintf("%s voucher", m.VoucherType), m.VoucherNumber)
}

func (r *PgxVoucherRepository) UpdateVoucher(ctx context.Context, voucher domain.Voucher) error {
	m := mapping.ToModelVoucher(voucher)
	query := `
		UPDATE vouchers SET
			status = $3, description = $4, notes = $5, attachments = $6, sub_system_id = $7,
			cancelled_at = $8, cancelled_by = $9, last_updated_at = $10, last_updated_by = $11
		WHERE workplace_id = $1 AND voucher_id = $2;
	`
	tag, err := r.db(ctx).Exec(ctx, query,
		m.WorkplaceID, m.VoucherID, m.Status, m.Description, m.Notes, m.Attachments, m.SubSystemID,
		m.CancelledAt, m.CancelledBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapError(err, "voucher", m.VoucherID)
	}
	return requireAffected(tag, "voucher", m.VoucherID)
}

func (r *PgxVoucherRepository) DeleteVoucher(ctx context.Context, workplaceID, voucherID string) error {
	tag, err := r.db(ctx).Exec(ctx, `DELETE FROM vouchers WHERE workplace_id = $1 AND voucher_id = $2;`, workplaceID, voucherID)
	if err != nil {
		return mapError(err, "voucher", voucherID)
	}
	return requireAffected(tag, "voucher", voucherID)
}
