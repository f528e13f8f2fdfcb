package dto

import (
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateExchangeRateRequest defines the structure for creating a new exchange rate.
type CreateExchangeRateRequest struct {
	FromCurrencyID string          `json:"fromCurrencyID" binding:"required"`
	ToCurrencyID   string          `json:"toCurrencyID" binding:"required,nefield=FromCurrencyID"`
	Rate           decimal.Decimal `json:"rate" binding:"required,gt=0"`
	EffectiveDate  time.Time       `json:"effectiveDate" binding:"required"`
	ExpiryDate     *time.Time      `json:"expiryDate"`
	Source         *string         `json:"source"`
	IsActive       *bool           `json:"isActive"`
}

// UpdateExchangeRateRequest defines the mutable fields of a rate record.
type UpdateExchangeRateRequest struct {
	Rate          *decimal.Decimal `json:"rate" binding:"omitempty,gt=0"`
	EffectiveDate *time.Time       `json:"effectiveDate"`
	ExpiryDate    *time.Time       `json:"expiryDate"`
	ClearExpiry   bool             `json:"clearExpiry"`
	Source        *string          `json:"source"`
	IsActive      *bool            `json:"isActive"`
}

// ListExchangeRatesParams defines query parameters for listing rates.
type ListExchangeRatesParams struct {
	ActiveOnly bool `form:"activeOnly"`
}

// CurrentRatesParams defines query parameters for the rates in effect on a date.
type CurrentRatesParams struct {
	Date *time.Time `form:"date" time_format:"2006-01-02"`
}

// ResolveRateParams defines query parameters for a rate resolution.
type ResolveRateParams struct {
	FromCurrencyID string     `form:"from" binding:"required"`
	ToCurrencyID   string     `form:"to" binding:"required"`
	Date           *time.Time `form:"date" time_format:"2006-01-02"`
}

// ExchangeRateResponse defines the structure for API responses containing exchange rate details.
type ExchangeRateResponse struct {
	RateID         string          `json:"rateID"`
	FromCurrencyID string          `json:"fromCurrencyID"`
	ToCurrencyID   string          `json:"toCurrencyID"`
	Rate           decimal.Decimal `json:"rate"`
	EffectiveDate  time.Time       `json:"effectiveDate"`
	ExpiryDate     *time.Time      `json:"expiryDate,omitempty"`
	Source         *string         `json:"source,omitempty"`
	IsActive       bool            `json:"isActive"`
	CreatedAt      time.Time       `json:"createdAt"`
	CreatedBy      string          `json:"createdBy"`
	LastUpdatedAt  time.Time       `json:"lastUpdatedAt"`
	LastUpdatedBy  string          `json:"lastUpdatedBy"`
}

// ToExchangeRateResponse converts a domain.ExchangeRate to ExchangeRateResponse DTO
func ToExchangeRateResponse(rate *domain.ExchangeRate) ExchangeRateResponse {
	return ExchangeRateResponse{
		RateID:         rate.RateID,
		FromCurrencyID: rate.FromCurrencyID,
		ToCurrencyID:   rate.ToCurrencyID,
		Rate:           rate.Rate,
		EffectiveDate:  rate.EffectiveDate,
		ExpiryDate:     rate.ExpiryDate,
		Source:         rate.Source,
		IsActive:       rate.IsActive,
		CreatedAt:      rate.CreatedAt,
		CreatedBy:      rate.CreatedBy,
		LastUpdatedAt:  rate.LastUpdatedAt,
		LastUpdatedBy:  rate.LastUpdatedBy,
	}
}

// ToListExchangeRateResponse converts a slice of domain.ExchangeRate to a slice of ExchangeRateResponse DTOs.
func ToListExchangeRateResponse(rates []domain.ExchangeRate) []ExchangeRateResponse {
	responses := make([]ExchangeRateResponse, len(rates))
	for i := range rates {
		responses[i] = ToExchangeRateResponse(&rates[i])
	}
	return responses
}
