package services

import (
	"context"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/dto"
)

// AccountTypeReaderSvc defines read operations for the account type catalog
type AccountTypeReaderSvc interface {
	// GetAccountType retrieves a catalog entry by id.
	GetAccountType(ctx context.Context, workplaceID, typeID string) (*domain.AccountTypeDefinition, error)

	// ListAccountTypes retrieves the workplace's catalog, seeding the system types on first use.
	ListAccountTypes(ctx context.Context, workplaceID string, filter domain.AccountTypeFilter) ([]domain.AccountTypeDefinition, error)

	// ListSubTypes lists the known account sub types.
	ListSubTypes(ctx context.Context) []domain.SubTypeInfo
}

// AccountTypeResolver maps a type code to its active catalog entry.
type AccountTypeResolver interface {
	// ResolveAccountType returns the active entry for typeCode. Unknown and inactive
	// codes are validation errors.
	ResolveAccountType(ctx context.Context, workplaceID, typeCode string) (*domain.AccountTypeDefinition, error)
}

// AccountTypeWriterSvc defines write operations for the account type catalog
type AccountTypeWriterSvc interface {
	// CreateAccountType adds a custom entry.
	CreateAccountType(ctx context.Context, workplaceID string, req dto.CreateAccountTypeRequest, userID string) (*domain.AccountTypeDefinition, error)

	// UpdateAccountType changes a custom entry. System entries are immutable.
	UpdateAccountType(ctx context.Context, workplaceID, typeID string, req dto.UpdateAccountTypeRequest, userID string) (*domain.AccountTypeDefinition, error)

	// DeleteAccountType removes a custom entry that no account uses.
	DeleteAccountType(ctx context.Context, workplaceID, typeID, userID string) error
}

// AccountTypeSvcFacade combines all account type service interfaces
type AccountTypeSvcFacade interface {
	AccountTypeReaderSvc
	AccountTypeResolver
	AccountTypeWriterSvc
}
