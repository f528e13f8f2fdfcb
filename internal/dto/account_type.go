package dto

import (
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// CreateAccountTypeRequest defines the data needed to add a catalog entry.
type CreateAccountTypeRequest struct {
	TypeCode       string             `json:"typeCode" binding:"required,max=50"`
	Name           string             `json:"name" binding:"required,max=100"`
	NameEn         *string            `json:"nameEn" binding:"omitempty,max=100"`
	Description    *string            `json:"description"`
	Classification domain.AccountType `json:"classification" binding:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	Color          *string            `json:"color" binding:"omitempty,max=20"`
	Icon           *string            `json:"icon" binding:"omitempty,max=50"`
	DisplayOrder   int                `json:"displayOrder"`
	IsActive       *bool              `json:"isActive"`
	SubSystemID    *string            `json:"subSystemID"`
}

// UpdateAccountTypeRequest defines the fields that may change on a catalog entry.
type UpdateAccountTypeRequest struct {
	TypeCode       *string             `json:"typeCode" binding:"omitempty,max=50"`
	Name           *string             `json:"name" binding:"omitempty,max=100"`
	NameEn         *string             `json:"nameEn" binding:"omitempty,max=100"`
	Description    *string             `json:"description"`
	Classification *domain.AccountType `json:"classification" binding:"omitempty,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	Color          *string             `json:"color" binding:"omitempty,max=20"`
	Icon           *string             `json:"icon" binding:"omitempty,max=50"`
	DisplayOrder   *int                `json:"displayOrder"`
	IsActive       *bool               `json:"isActive"`
	SubSystemID    *string             `json:"subSystemID"`
}

// ListAccountTypesParams defines query parameters for listing the catalog.
type ListAccountTypesParams struct {
	SubSystemID     *string `form:"subSystemId"`
	IncludeInactive bool    `form:"includeInactive"`
}

// ToFilter converts query parameters into a domain filter.
func (p ListAccountTypesParams) ToFilter() domain.AccountTypeFilter {
	return domain.AccountTypeFilter{SubSystemID: p.SubSystemID, IncludeInactive: p.IncludeInactive}
}

// AccountTypeResponse defines the data returned for a catalog entry.
type AccountTypeResponse struct {
	TypeID         string             `json:"typeID"`
	TypeCode       string             `json:"typeCode"`
	Name           string             `json:"name"`
	NameEn         *string            `json:"nameEn,omitempty"`
	Description    *string            `json:"description,omitempty"`
	Classification domain.AccountType `json:"classification"`
	Color          *string            `json:"color,omitempty"`
	Icon           *string            `json:"icon,omitempty"`
	DisplayOrder   int                `json:"displayOrder"`
	IsActive       bool               `json:"isActive"`
	IsSystemType   bool               `json:"isSystemType"`
	SubSystemID    *string            `json:"subSystemID,omitempty"`
	CreatedAt      time.Time          `json:"createdAt"`
	CreatedBy      string             `json:"createdBy"`
	LastUpdatedAt  time.Time          `json:"lastUpdatedAt"`
	LastUpdatedBy  string             `json:"lastUpdatedBy"`
}

// ToAccountTypeResponse converts a catalog entry to its response DTO.
func ToAccountTypeResponse(d *domain.AccountTypeDefinition) AccountTypeResponse {
	return AccountTypeResponse{
		TypeID:         d.TypeID,
		TypeCode:       d.TypeCode,
		Name:           d.Name,
		NameEn:         d.NameEn,
		Description:    d.Description,
		Classification: d.Classification,
		Color:          d.Color,
		Icon:           d.Icon,
		DisplayOrder:   d.DisplayOrder,
		IsActive:       d.IsActive,
		IsSystemType:   d.IsSystemType,
		SubSystemID:    d.SubSystemID,
		CreatedAt:      d.CreatedAt,
		CreatedBy:      d.CreatedBy,
		LastUpdatedAt:  d.LastUpdatedAt,
		LastUpdatedBy:  d.LastUpdatedBy,
	}
}

// ToListAccountTypeResponse converts catalog entries to response DTOs.
func ToListAccountTypeResponse(defs []domain.AccountTypeDefinition) []AccountTypeResponse {
	res := make([]AccountTypeResponse, len(defs))
	for i := range defs {
		res[i] = ToAccountTypeResponse(&defs[i])
	}
	return res
}
