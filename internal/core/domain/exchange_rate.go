package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate is a dated conversion rate between two currencies of a workplace:
// 1 unit of FromCurrency = Rate units of ToCurrency.
type ExchangeRate struct {
	RateID         string          `json:"rateID"`
	WorkplaceID    string          `json:"workplaceID"`
	FromCurrencyID string          `json:"fromCurrencyID"`
	ToCurrencyID   string          `json:"toCurrencyID"`
	Rate           decimal.Decimal `json:"rate"`
	EffectiveDate  time.Time       `json:"effectiveDate"`
	ExpiryDate     *time.Time      `json:"expiryDate,omitempty"`
	Source         *string         `json:"source,omitempty"`
	IsActive       bool            `json:"isActive"`
	AuditFields
}

// AppliesAt reports whether the rate is active and in effect on asOf.
func (r ExchangeRate) AppliesAt(asOf time.Time) bool {
	if !r.IsActive || r.EffectiveDate.After(asOf) {
		return false
	}
	return r.ExpiryDate == nil || !r.ExpiryDate.Before(asOf)
}

// RateSource describes how a resolved rate was obtained.
type RateSource string

const (
	RateSourceIdentity        RateSource = "IDENTITY"
	RateSourceDirect          RateSource = "DIRECT"
	RateSourceInverse         RateSource = "INVERSE"
	RateSourceCurrencyDefault RateSource = "CURRENCY_DEFAULT"
	RateSourceExplicit        RateSource = "EXPLICIT"
)

// ResolvedRate is the outcome of a rate resolution.
type ResolvedRate struct {
	FromCurrencyID string          `json:"fromCurrencyID"`
	ToCurrencyID   string          `json:"toCurrencyID"`
	Rate           decimal.Decimal `json:"rate"`
	Inverted       bool            `json:"inverted"`
	Source         RateSource      `json:"source"`
	RateID         *string         `json:"rateID,omitempty"`
	EffectiveDate  *time.Time      `json:"effectiveDate,omitempty"`
}

// ExchangeRateFilter narrows rate listings.
type ExchangeRateFilter struct {
	ActiveOnly     bool
	AsOf           *time.Time // Only records in effect on this date
	FromCurrencyID *string
}
