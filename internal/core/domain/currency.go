package domain

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/shopspring/decimal"
)

// DefaultCurrencyPrecision is used when a currency is created without an explicit precision.
const DefaultCurrencyPrecision = 2

// Currency represents a currency configured for a workplace.
// Rates are expressed relative to the workplace's base currency.
type Currency struct {
	CurrencyID   string           `json:"currencyID"`
	WorkplaceID  string           `json:"workplaceID"`
	Code         string           `json:"code"` // Upper-case, unique per workplace (e.g. "USD")
	Name         string           `json:"name"`
	NameEn       *string          `json:"nameEn,omitempty"`
	Symbol       *string          `json:"symbol,omitempty"`
	IsBase       bool             `json:"isBase"`
	IsActive     bool             `json:"isActive"`
	Precision    int              `json:"precision"`
	DisplayOrder int              `json:"displayOrder"`
	CurrentRate  *decimal.Decimal `json:"currentRate,omitempty"`
	MinRate      *decimal.Decimal `json:"minRate,omitempty"`
	MaxRate      *decimal.Decimal `json:"maxRate,omitempty"`
	Notes        *string          `json:"notes,omitempty"`
	AuditFields
}

// MakeBase marks the currency as the base currency and pins its rate fields to 1.
func (c *Currency) MakeBase() {
	one := decimal.NewFromInt(1)
	c.IsBase = true
	c.CurrentRate = &one
	minRate, maxRate := one, one
	c.MinRate = &minRate
	c.MaxRate = &maxRate
}

// ValidateRates checks that provided rate fields are positive and ordered
// min <= current <= max. All violations are reported together.
func (c Currency) ValidateRates() error {
	if c.IsBase {
		return nil
	}
	var result *multierror.Error
	fields := []struct {
		name string
		rate *decimal.Decimal
	}{{"current rate", c.CurrentRate}, {"min rate", c.MinRate}, {"max rate", c.MaxRate}}
	for _, f := range fields {
		if f.rate != nil && !f.rate.IsPositive() {
			result = multierror.Append(result, fmt.Errorf("%s must be greater than zero", f.name))
		}
	}
	if result != nil {
		return result.ErrorOrNil()
	}
	if c.MinRate != nil && c.MaxRate != nil && c.MinRate.GreaterThan(*c.MaxRate) {
		result = multierror.Append(result, fmt.Errorf("min rate cannot exceed max rate (%s > %s)", c.MinRate, c.MaxRate))
	}
	if c.CurrentRate != nil {
		if c.MinRate != nil && c.CurrentRate.LessThan(*c.MinRate) {
			result = multierror.Append(result, fmt.Errorf("current rate %s is below min rate %s", c.CurrentRate, c.MinRate))
		}
		if c.MaxRate != nil && c.CurrentRate.GreaterThan(*c.MaxRate) {
			result = multierror.Append(result, fmt.Errorf("current rate %s is above max rate %s", c.CurrentRate, c.MaxRate))
		}
	}
	return result.ErrorOrNil()
}

// CheckRate verifies that rate is usable for converting this currency to base.
func (c Currency) CheckRate(rate decimal.Decimal) error {
	if !rate.IsPositive() {
		return fmt.Errorf("rate for %s must be greater than zero", c.Code)
	}
	if c.IsBase {
		if !rate.Equal(decimal.NewFromInt(1)) {
			return fmt.Errorf("rate for base currency %s must be 1", c.Code)
		}
		return nil
	}
	if c.MinRate != nil && rate.LessThan(*c.MinRate) {
		return fmt.Errorf("rate %s for %s is below min rate %s", rate, c.Code, c.MinRate)
	}
	if c.MaxRate != nil && rate.GreaterThan(*c.MaxRate) {
		return fmt.Errorf("rate %s for %s is above max rate %s", rate, c.Code, c.MaxRate)
	}
	return nil
}

// FitsPrecision reports whether amount has no more decimal places than the
// currency allows. Trailing zeros beyond the precision are accepted.
func (c Currency) FitsPrecision(amount decimal.Decimal) bool {
	return amount.Round(int32(c.Precision)).Equal(amount)
}
