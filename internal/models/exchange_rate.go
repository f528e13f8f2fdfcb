package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate stores the conversion rate between two currencies from an effective date.
type ExchangeRate struct {
	RateID         string          `db:"rate_id"`
	WorkplaceID    string          `db:"workplace_id"`
	FromCurrencyID string          `db:"from_currency_id"`
	ToCurrencyID   string          `db:"to_currency_id"`
	Rate           decimal.Decimal `db:"rate"`
	EffectiveDate  time.Time       `db:"effective_date"`
	ExpiryDate     *time.Time      `db:"expiry_date"`
	Source         *string         `db:"source"`
	IsActive       bool            `db:"is_active"`
	AuditFields
}
