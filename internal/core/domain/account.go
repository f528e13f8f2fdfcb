package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// Valid reports whether t is one of the known account types.
func (t AccountType) Valid() bool {
	switch t {
	case Asset, Liability, Equity, Revenue, Expense:
		return true
	}
	return false
}

// AccountSubType refines an account's role within the chart.
type AccountSubType string

const (
	SubTypeCash         AccountSubType = "CASH"
	SubTypeBank         AccountSubType = "BANK"
	SubTypeWallet       AccountSubType = "WALLET"
	SubTypeCustomer     AccountSubType = "CUSTOMER"
	SubTypeSupplier     AccountSubType = "SUPPLIER"
	SubTypeIntermediary AccountSubType = "INTERMEDIARY"
	SubTypeGeneral      AccountSubType = "GENERAL"
)

// Valid reports whether s is one of the known sub types.
func (s AccountSubType) Valid() bool {
	switch s {
	case SubTypeCash, SubTypeBank, SubTypeWallet, SubTypeCustomer, SubTypeSupplier, SubTypeIntermediary, SubTypeGeneral:
		return true
	}
	return false
}

// IsTreasury reports whether the sub type represents a cash, bank or wallet holding.
func (s AccountSubType) IsTreasury() bool {
	return s == SubTypeCash || s == SubTypeBank || s == SubTypeWallet
}

// Account is a node of a workplace's chart of accounts.
type Account struct {
	AccountID        string         `json:"accountID"`
	WorkplaceID      string         `json:"workplaceID"`
	Code             string         `json:"code"` // Unique per workplace
	Name             string         `json:"name"`
	NameEn           *string        `json:"nameEn,omitempty"`
	AccountType      AccountType    `json:"accountType"`
	TypeCode         string         `json:"typeCode"` // Catalog entry classified as AccountType
	SubType          AccountSubType `json:"subType"`
	ParentAccountID  *string        `json:"parentAccountID,omitempty"` // Self-reference, acyclic
	Level            int            `json:"level"`
	IsActive         bool           `json:"isActive"`
	AllowManualEntry bool           `json:"allowManualEntry"`
	SubSystemID      *string        `json:"subSystemID,omitempty"`
	Description      *string        `json:"description,omitempty"`
	AuditFields
}

// AccountCurrency links an account to a currency it may transact in.
type AccountCurrency struct {
	WorkplaceID string `json:"workplaceID"`
	AccountID   string `json:"accountID"`
	CurrencyID  string `json:"currencyID"`
	IsDefault   bool   `json:"isDefault"`
}

// AccountFilter narrows account listings. Nil fields are ignored.
type AccountFilter struct {
	AccountType     *AccountType
	TypeCode        *string
	SubType         *AccountSubType
	SubSystemID     *string
	ParentAccountID *string
	ActiveOnly      bool
}

// AccountDetails bundles an account with its currency links and balances.
type AccountDetails struct {
	Account
	Currencies []AccountCurrency `json:"currencies"`
	Balances   []AccountBalance  `json:"balances"`
}

// AllowsCurrency reports whether a line in currencyID may post to an account
// with the given links. An account without links accepts any currency.
func AllowsCurrency(links []AccountCurrency, currencyID string) bool {
	if len(links) == 0 {
		return true
	}
	for _, l := range links {
		if l.CurrencyID == currencyID {
			return true
		}
	}
	return false
}

// AccountLookup resolves an account by id; used when walking the hierarchy.
type AccountLookup func(accountID string) (*Account, error)

// CheckParentAcyclic reports whether placing accountID under newParentID keeps the
// hierarchy acyclic, by walking the ancestors of newParentID. A walk longer than
// maxDepth is treated as a cycle.
func CheckParentAcyclic(accountID, newParentID string, lookup AccountLookup, maxDepth int) (bool, error) {
	current := newParentID
	for depth := 0; current != ""; depth++ {
		if current == accountID {
			return false, nil
		}
		if depth >= maxDepth {
			return false, nil
		}
		parent, err := lookup(current)
		if err != nil {
			return false, err
		}
		if parent.ParentAccountID == nil {
			return true, nil
		}
		current = *parent.ParentAccountID
	}
	return true, nil
}
