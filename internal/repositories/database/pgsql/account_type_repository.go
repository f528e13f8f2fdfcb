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

const accountTypeColumns = `type_id, workplace_id, type_code, name, name_en, description, classification,
	color, icon, display_order, is_active, is_system_type, sub_system_id,
	created_at, created_by, last_updated_at, last_updated_by`

// PgxAccountTypeRepository implements the account type catalog port.
type PgxAccountTypeRepository struct {
	BaseRepository
}

func newPgxAccountTypeRepository(pool DBPool) *PgxAccountTypeRepository {
	return &PgxAccountTypeRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.AccountTypeRepositoryFacade = (*PgxAccountTypeRepository)(nil)

func (r *PgxAccountTypeRepository) findOne(ctx context.Context, ref, where string, args ...any) (*domain.AccountTypeDefinition, error) {
	query := `SELECT ` + accountTypeColumns + ` FROM account_types WHERE ` + where
	m, err := queryOne[models.AccountType](ctx, r.db(ctx), query, args...)
	if err != nil {
		return nil, mapError(err, "account type", ref)
	}
	d := mapping.ToDomainAccountType(m)
	return &d, nil
}

func (r *PgxAccountTypeRepository) FindAccountTypeByID(ctx context.Context, workplaceID, typeID string) (*domain.AccountTypeDefinition, error) {
	return r.findOne(ctx, typeID, `workplace_id = $1 AND type_id = $2;`, workplaceID, typeID)
}

func (r *PgxAccountTypeRepository) FindAccountTypeByCode(ctx context.Context, workplaceID, typeCode string) (*domain.AccountTypeDefinition, error) {
	return r.findOne(ctx, typeCode, `workplace_id = $1 AND type_code = $2;`, workplaceID, typeCode)
}

// ListAccountTypes keeps shared entries (NULL sub system) when a sub system is given.
func (r *PgxAccountTypeRepository) ListAccountTypes(ctx context.Context, workplaceID string, filter domain.AccountTypeFilter) ([]domain.AccountTypeDefinition, error) {
	b := psql.Select(accountTypeColumns).From("account_types").
		Where(sq.Eq{"workplace_id": workplaceID}).
		OrderBy("display_order", "name")
	if !filter.IncludeInactive {
		b = b.Where(sq.Eq{"is_active": true})
	}
	if filter.SubSystemID != nil {
		b = b.Where(sq.Or{sq.Eq{"sub_system_id": *filter.SubSystemID}, sq.Eq{"sub_system_id": nil}})
	}
	ms, err := queryBuilt[models.AccountType](ctx, r.db(ctx), b)
	if err != nil {
		return nil, fmt.Errorf("failed to query account types: %w", err)
	}
	return mapping.ToDomainAccountTypeSlice(ms), nil
}

func (r *PgxAccountTypeRepository) IsAccountTypeInUse(ctx context.Context, workplaceID, typeCode string) (bool, error) {
	found, err := exists(ctx, r.db(ctx),
		`SELECT EXISTS (SELECT 1 FROM accounts WHERE workplace_id = $1 AND type_code = $2);`,
		workplaceID, typeCode)
	if err != nil {
		return false, fmt.Errorf("failed to check accounts of type %s: %w", typeCode, err)
	}
	return found, nil
}

func (r *PgxAccountTypeRepository) SaveAccountType(ctx context.Context, def domain.AccountTypeDefinition) error {
	m := mapping.ToModelAccountType(def)
	query := `
		INSERT INTO account_types (` + accountTypeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
	`
	_, err := r.db(ctx).Exec(ctx, query,
		m.TypeID, m.WorkplaceID, m.TypeCode, m.Name, m.NameEn, m.Description, m.Classification,
		m.Color, m.Icon, m.DisplayOrder, m.IsActive, m.IsSystemType, m.SubSystemID,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	return mapError(err, "account type", m.TypeCode)
}

func (r *PgxAccountTypeRepository) UpdateAccountType(ctx context.Context, def domain.AccountTypeDefinition) error {
	m := mapping.ToModelAccountType(def)
	query := `
		UPDATE account_types SET
			type_code = $3, name = $4, name_en = $5, description = $6, classification = $7,
			color = $8, icon = $9, display_order = $10, is_active = $11, sub_system_id = $12,
			last_updated_at = $13, last_updated_by = $14
		WHERE workplace_id = $1 AND type_id = $2;
	`
	tag, err := r.db(ctx).Exec(ctx, query,
		m.WorkplaceID, m.TypeID, m.TypeCode, m.Name, m.NameEn, m.Description, m.Classification,
		m.Color, m.Icon, m.DisplayOrder, m.IsActive, m.SubSystemID,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapError(err, "account type", m.TypeCode)
	}
	return requireAffected(tag, "account type", m.TypeID)
}

func (r *PgxAccountTypeRepository) DeleteAccountType(ctx context.Context, workplaceID, typeID string) error {
	tag, err := r.db(ctx).Exec(ctx, `DELETE FROM account_types WHERE workplace_id = $1 AND type_id = $2;`, workplaceID, typeID)
	if err != nil {
		return mapError(err, "account type", typeID)
	}
	return requireAffected(tag, "account type", typeID)
}
