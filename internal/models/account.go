package models

// Account represents a financial account within the ledger.
// ParentAccountID is nil for root accounts.
type Account struct {
	AccountID        string  `db:"account_id"`
	WorkplaceID      string  `db:"workplace_id"`
	Code             string  `db:"code"`
	Name             string  `db:"name"`
	NameEn           *string `db:"name_en"`
	AccountType      string  `db:"account_type"`
	TypeCode         string  `db:"type_code"`
	SubType          string  `db:"sub_type"`
	ParentAccountID  *string `db:"parent_account_id"`
	Level            int     `db:"level"`
	IsActive         bool    `db:"is_active"`
	AllowManualEntry bool    `db:"allow_manual_entry"`
	SubSystemID      *string `db:"sub_system_id"`
	Description      *string `db:"description"`
	AuditFields
}

// AccountCurrency is a row of the account_currencies link table.
type AccountCurrency struct {
	WorkplaceID string `db:"workplace_id"`
	AccountID   string `db:"account_id"`
	CurrencyID  string `db:"currency_id"`
	IsDefault   bool   `db:"is_default"`
}
