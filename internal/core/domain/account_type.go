package domain

import (
	"strings"
	"time"
)

// AccountTypeDefinition is an entry of a workplace's account type catalog.
// Every definition is classified under one of the five base account types,
// which drive normal balances and reporting.
type AccountTypeDefinition struct {
	TypeID         string      `json:"typeID"`
	WorkplaceID    string      `json:"workplaceID"`
	TypeCode       string      `json:"typeCode"` // Unique per workplace, upper case
	Name           string      `json:"name"`
	NameEn         *string     `json:"nameEn,omitempty"`
	Description    *string     `json:"description,omitempty"`
	Classification AccountType `json:"classification"`
	Color          *string     `json:"color,omitempty"`
	Icon           *string     `json:"icon,omitempty"`
	DisplayOrder   int         `json:"displayOrder"`
	IsActive       bool        `json:"isActive"`
	IsSystemType   bool        `json:"isSystemType"`
	SubSystemID    *string     `json:"subSystemID,omitempty"` // nil: shared by every sub system
	AuditFields
}

// AccountTypeFilter narrows catalog listings.
type AccountTypeFilter struct {
	// SubSystemID keeps definitions of that sub system plus the shared ones.
	SubSystemID     *string
	IncludeInactive bool
}

// Matches reports whether d passes the filter.
func (f AccountTypeFilter) Matches(d AccountTypeDefinition) bool {
	if !f.IncludeInactive && !d.IsActive {
		return false
	}
	if f.SubSystemID != nil && d.SubSystemID != nil && *d.SubSystemID != *f.SubSystemID {
		return false
	}
	return true
}

// NormalizeTypeCode trims and upper-cases a type code.
func NormalizeTypeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

var systemAccountTypes = []struct {
	t      AccountType
	name   string
	nameEn string
}{
	{Asset, "الأصول", "Assets"},
	{Liability, "الالتزامات", "Liabilities"},
	{Equity, "حقوق الملكية", "Equity"},
	{Revenue, "الإيرادات", "Revenue"},
	{Expense, "المصروفات", "Expenses"},
}

// SystemAccountTypes returns the five base definitions every workplace starts with.
// Their type code equals the base type they classify. TypeID is left for the caller.
func SystemAccountTypes(workplaceID, userID string, now time.Time) []AccountTypeDefinition {
	out := make([]AccountTypeDefinition, len(systemAccountTypes))
	for i, s := range systemAccountTypes {
		nameEn := s.nameEn
		out[i] = AccountTypeDefinition{
			WorkplaceID:    workplaceID,
			TypeCode:       string(s.t),
			Name:           s.name,
			NameEn:         &nameEn,
			Classification: s.t,
			DisplayOrder:   i + 1,
			IsActive:       true,
			IsSystemType:   true,
			AuditFields:    NewAuditFields(userID, now),
		}
	}
	return out
}

// SubTypeInfo describes one account sub type for catalog listings.
type SubTypeInfo struct {
	SubType       AccountSubType `json:"subType"`
	NameEn        string         `json:"nameEn"`
	IsTreasury    bool           `json:"isTreasury"`
	RequiresParty bool           `json:"requiresParty"`
}

// AccountSubTypes lists the known sub types in display order.
func AccountSubTypes() []SubTypeInfo {
	return []SubTypeInfo{
		{SubType: SubTypeGeneral, NameEn: "General"},
		{SubType: SubTypeCash, NameEn: "Cash box", IsTreasury: true},
		{SubType: SubTypeBank, NameEn: "Bank", IsTreasury: true},
		{SubType: SubTypeWallet, NameEn: "Wallet", IsTreasury: true},
		{SubType: SubTypeCustomer, NameEn: "Customer", RequiresParty: true},
		{SubType: SubTypeSupplier, NameEn: "Supplier", RequiresParty: true},
		{SubType: SubTypeIntermediary, NameEn: "Intermediary"},
	}
}
