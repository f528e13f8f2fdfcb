package dto

import (
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateCurrencyRequest defines the data needed to create a new currency.
type CreateCurrencyRequest struct {
	Code         string           `json:"code" binding:"required,max=10"`
	Name         string           `json:"name" binding:"required"`
	NameEn       *string          `json:"nameEn"`
	Symbol       *string          `json:"symbol"`
	IsBase       bool             `json:"isBase"`
	IsActive     *bool            `json:"isActive"`
	Precision    *int             `json:"precision" binding:"omitempty,min=0,max=8"`
	DisplayOrder int              `json:"displayOrder"`
	CurrentRate  *decimal.Decimal `json:"currentRate"`
	MinRate      *decimal.Decimal `json:"minRate"`
	MaxRate      *decimal.Decimal `json:"maxRate"`
	Notes        *string          `json:"notes"`
}

// UpdateCurrencyRequest defines the fields that may change on a currency.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateCurrencyRequest struct {
	Code         *string          `json:"code" binding:"omitempty,max=10"`
	Name         *string          `json:"name"`
	NameEn       *string          `json:"nameEn"`
	Symbol       *string          `json:"symbol"`
	IsBase       *bool            `json:"isBase"`
	IsActive     *bool            `json:"isActive"`
	Precision    *int             `json:"precision" binding:"omitempty,min=0,max=8"`
	DisplayOrder *int             `json:"displayOrder"`
	CurrentRate  *decimal.Decimal `json:"currentRate"`
	MinRate      *decimal.Decimal `json:"minRate"`
	MaxRate      *decimal.Decimal `json:"maxRate"`
	Notes        *string          `json:"notes"`
}

// ListCurrenciesParams defines query parameters for listing currencies.
type ListCurrenciesParams struct {
	ActiveOnly bool `form:"activeOnly"`
}

// CurrencyResponse defines the data returned for a currency.
type CurrencyResponse struct {
	CurrencyID    string           `json:"currencyID"`
	Code          string           `json:"code"`
	Name          string           `json:"name"`
	NameEn        *string          `json:"nameEn,omitempty"`
	Symbol        *string          `json:"symbol,omitempty"`
	IsBase        bool             `json:"isBase"`
	IsActive      bool             `json:"isActive"`
	Precision     int              `json:"precision"`
	DisplayOrder  int              `json:"displayOrder"`
	CurrentRate   *decimal.Decimal `json:"currentRate,omitempty"`
	MinRate       *decimal.Decimal `json:"minRate,omitempty"`
	MaxRate       *decimal.Decimal `json:"maxRate,omitempty"`
	Notes         *string          `json:"notes,omitempty"`
	CreatedAt     time.Time        `json:"createdAt"`
	CreatedBy     string           `json:"createdBy"`
	LastUpdatedAt time.Time        `json:"lastUpdatedAt"`
	LastUpdatedBy string           `json:"lastUpdatedBy"`
}

// ToCurrencyResponse converts a domain.Currency to CurrencyResponse DTO
func ToCurrencyResponse(curr *domain.Currency) CurrencyResponse {
	return CurrencyResponse{
		CurrencyID:    curr.CurrencyID,
		Code:          curr.Code,
		Name:          curr.Name,
		NameEn:        curr.NameEn,
		Symbol:        curr.Symbol,
		IsBase:        curr.IsBase,
		IsActive:      curr.IsActive,
		Precision:     curr.Precision,
		DisplayOrder:  curr.DisplayOrder,
		CurrentRate:   curr.CurrentRate,
		MinRate:       curr.MinRate,
		MaxRate:       curr.MaxRate,
		Notes:         curr.Notes,
		CreatedAt:     curr.CreatedAt,
		CreatedBy:     curr.CreatedBy,
		LastUpdatedAt: curr.LastUpdatedAt,
		LastUpdatedBy: curr.LastUpdatedBy,
	}
}

// ToListCurrencyResponse converts a slice of domain.Currency to a slice of CurrencyResponse DTOs
func ToListCurrencyResponse(currencies []domain.Currency) []CurrencyResponse {
	res := make([]CurrencyResponse, len(currencies))
	for i := range currencies {
		res[i] = ToCurrencyResponse(&currencies[i])
	}
	return res
}
