package repositories

import (
	"context"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// AccountTypeReader defines read operations for the account type catalog
type AccountTypeReader interface {
	// FindAccountTypeByID retrieves a catalog entry of the workplace.
	FindAccountTypeByID(ctx context.Context, workplaceID, typeID string) (*domain.AccountTypeDefinition, error)

	// FindAccountTypeByCode retrieves a catalog entry by its (upper-case) type code.
	FindAccountTypeByCode(ctx context.Context, workplaceID, typeCode string) (*domain.AccountTypeDefinition, error)

	// ListAccountTypes retrieves entries matching filter, ordered by display order then name.
	ListAccountTypes(ctx context.Context, workplaceID string, filter domain.AccountTypeFilter) ([]domain.AccountTypeDefinition, error)

	// IsAccountTypeInUse reports whether any account carries the type code.
	IsAccountTypeInUse(ctx context.Context, workplaceID, typeCode string) (bool, error)
}

// AccountTypeWriter defines write operations for the account type catalog
type AccountTypeWriter interface {
	// SaveAccountType persists a new entry. Returns apperrors.ErrDuplicate when the code is taken.
	SaveAccountType(ctx context.Context, def domain.AccountTypeDefinition) error

	// UpdateAccountType overwrites an existing entry.
	UpdateAccountType(ctx context.Context, def domain.AccountTypeDefinition) error

	// DeleteAccountType removes an entry.
	DeleteAccountType(ctx context.Context, workplaceID, typeID string) error
}

// AccountTypeRepositoryFacade combines all account type repository interfaces
type AccountTypeRepositoryFacade interface {
	AccountTypeReader
	AccountTypeWriter
}
