package models

// AccountType is a row of the account_types catalog table.
type AccountType struct {
	TypeID         string  `db:"type_id"`
	WorkplaceID    string  `db:"workplace_id"`
	TypeCode       string  `db:"type_code"`
	Name           string  `db:"name"`
	NameEn         *string `db:"name_en"`
	Description    *string `db:"description"`
	Classification string  `db:"classification"`
	Color          *string `db:"color"`
	Icon           *string `db:"icon"`
	DisplayOrder   int     `db:"display_order"`
	IsActive       bool    `db:"is_active"`
	IsSystemType   bool    `db:"is_system_type"`
	SubSystemID    *string `db:"sub_system_id"`
	AuditFields
}
