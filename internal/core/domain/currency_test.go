package domain_test

import (
	"testing"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decimalPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestCurrency_ValidateRates(t *testing.T) {
	tests := []struct {
		name    string
		c       domain.Currency
		wantErr string
	}{
		{
			name: "ordered bounds",
			c:    domain.Currency{Code: "USD", CurrentRate: decimalPtr("3.75"), MinRate: decimalPtr("3.70"), MaxRate: decimalPtr("3.80")},
		},
		{
			name:    "min above max",
			c:       domain.Currency{Code: "USD", MinRate: decimalPtr("2"), MaxRate: decimalPtr("1")},
			wantErr: "min rate cannot exceed max rate",
		},
		{
			name:    "current below min",
			c:       domain.Currency{Code: "USD", CurrentRate: decimalPtr("3.60"), MinRate: decimalPtr("3.70")},
			wantErr: "below min rate",
		},
		{
			name:    "current above max",
			c:       domain.Currency{Code: "USD", CurrentRate: decimalPtr("3.90"), MaxRate: decimalPtr("3.80")},
			wantErr: "above max rate",
		},
		{
			name:    "non positive",
			c:       domain.Currency{Code: "USD", CurrentRate: decimalPtr("0")},
			wantErr: "current rate must be greater than zero",
		},
		{
			name: "only some fields set",
			c:    domain.Currency{Code: "EUR", CurrentRate: decimalPtr("4.1")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.c.ValidateRates()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCurrency_MakeBase(t *testing.T) {
	c := domain.Currency{Code: "SAR", CurrentRate: decimalPtr("2"), MinRate: decimalPtr("1.5")}
	c.MakeBase()

	one := decimal.NewFromInt(1)
	assert.True(t, c.IsBase)
	assert.True(t, c.CurrentRate.Equal(one))
	assert.True(t, c.MinRate.Equal(one))
	assert.True(t, c.MaxRate.Equal(one))
	assert.NoError(t, c.ValidateRates())
}

func TestCurrency_CheckRate(t *testing.T) {
	usd := domain.Currency{Code: "USD", MinRate: decimalPtr("3.70"), MaxRate: decimalPtr("3.80")}
	assert.NoError(t, usd.CheckRate(decimal.RequireFromString("3.75")))
	assert.Error(t, usd.CheckRate(decimal.RequireFromString("3.69")))
	assert.Error(t, usd.CheckRate(decimal.RequireFromString("3.81")))
	assert.Error(t, usd.CheckRate(decimal.Zero))

	sar := domain.Currency{Code: "SAR"}
	sar.MakeBase()
	assert.NoError(t, sar.CheckRate(decimal.NewFromInt(1)))
	assert.Error(t, sar.CheckRate(decimal.NewFromInt(2)))
}

func TestCurrency_FitsPrecision(t *testing.T) {
	usd := domain.Currency{Code: "USD", Precision: 2}
	jpy := domain.Currency{Code: "JPY", Precision: 0}

	assert.True(t, usd.FitsPrecision(decimal.RequireFromString("10.25")))
	assert.True(t, usd.FitsPrecision(decimal.RequireFromString("10.2500")), "trailing zeros")
	assert.False(t, usd.FitsPrecision(decimal.RequireFromString("0.0012345")))
	assert.True(t, jpy.FitsPrecision(decimal.RequireFromString("1500")))
	assert.False(t, jpy.FitsPrecision(decimal.RequireFromString("1500.5")))
}
