package models

import "github.com/shopspring/decimal"

// Currency is a row of the currencies table.
type Currency struct {
	CurrencyID   string           `db:"currency_id"`
	WorkplaceID  string           `db:"workplace_id"`
	Code         string           `db:"code"`
	Name         string           `db:"name"`
	NameEn       *string          `db:"name_en"`
	Symbol       *string          `db:"symbol"`
	IsBase       bool             `db:"is_base"`
	IsActive     bool             `db:"is_active"`
	Precision    int              `db:"precision"`
	DisplayOrder int              `db:"display_order"`
	CurrentRate  *decimal.Decimal `db:"current_rate"`
	MinRate      *decimal.Decimal `db:"min_rate"`
	MaxRate      *decimal.Decimal `db:"max_rate"`
	Notes        *string          `db:"notes"`
	AuditFields
}
