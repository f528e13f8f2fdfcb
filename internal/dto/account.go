package dto

import (
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/utils/accounting"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Code             string                 `json:"code" binding:"required,max=50"`
	Name             string                 `json:"name" binding:"required"`
	NameEn           *string                `json:"nameEn"`
	AccountType      domain.AccountType     `json:"accountType" binding:"omitempty,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	TypeCode         *string                `json:"typeCode" binding:"omitempty,max=50"` // Catalog entry; defaults to accountType
	SubType          domain.AccountSubType  `json:"subType" binding:"omitempty,oneof=CASH BANK WALLET CUSTOMER SUPPLIER INTERMEDIARY GENERAL"`
	ParentAccountID  *string                `json:"parentAccountID"` // Optional, use pointer for nullability
	Level            int                    `json:"level" binding:"omitempty,min=1"`
	IsActive         *bool                  `json:"isActive"`
	AllowManualEntry *bool                  `json:"allowManualEntry"`
	SubSystemID      *string                `json:"subSystemID"`
	Description      *string                `json:"description"`
	Currencies       []AccountCurrencyInput `json:"currencies" binding:"omitempty,dive"`
}

// AccountCurrencyInput links a currency to an account.
type AccountCurrencyInput struct {
	CurrencyID string `json:"currencyID" binding:"required"`
	IsDefault  bool   `json:"isDefault"`
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateAccountRequest struct {
	Code             *string                `json:"code" binding:"omitempty,max=50"`
	Name             *string                `json:"name"`
	NameEn           *string                `json:"nameEn"`
	TypeCode         *string                `json:"typeCode" binding:"omitempty,max=50"`
	SubType          *domain.AccountSubType `json:"subType" binding:"omitempty,oneof=CASH BANK WALLET CUSTOMER SUPPLIER INTERMEDIARY GENERAL"`
	ParentAccountID  *string                `json:"parentAccountID"`
	DetachParent     bool                   `json:"detachParent"`
	Level            *int                   `json:"level" binding:"omitempty,min=1"`
	IsActive         *bool                  `json:"isActive"`
	AllowManualEntry *bool                  `json:"allowManualEntry"`
	SubSystemID      *string                `json:"subSystemID"`
	Description      *string                `json:"description"`
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	AccountType     *domain.AccountType    `form:"type" binding:"omitempty,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	TypeCode        *string                `form:"typeCode"`
	SubType         *domain.AccountSubType `form:"subType"`
	SubSystemID     *string                `form:"subSystemId"`
	ParentAccountID *string                `form:"parentId"`
	ActiveOnly      bool                   `form:"activeOnly"`
}

// ToFilter converts query parameters into a domain filter.
func (p ListAccountsParams) ToFilter() domain.AccountFilter {
	return domain.AccountFilter{
		AccountType:     p.AccountType,
		TypeCode:        p.TypeCode,
		SubType:         p.SubType,
		SubSystemID:     p.SubSystemID,
		ParentAccountID: p.ParentAccountID,
		ActiveOnly:      p.ActiveOnly,
	}
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID        string                `json:"accountID"`
	Code             string                `json:"code"`
	Name             string                `json:"name"`
	NameEn           *string               `json:"nameEn,omitempty"`
	AccountType      domain.AccountType    `json:"accountType"`
	TypeCode         string                `json:"typeCode"`
	SubType          domain.AccountSubType `json:"subType"`
	ParentAccountID  *string               `json:"parentAccountID,omitempty"`
	Level            int                   `json:"level"`
	IsActive         bool                  `json:"isActive"`
	AllowManualEntry bool                  `json:"allowManualEntry"`
	SubSystemID      *string               `json:"subSystemID,omitempty"`
	Description      *string               `json:"description,omitempty"`
	CreatedAt        time.Time             `json:"createdAt"`
	CreatedBy        string                `json:"createdBy"`
	LastUpdatedAt    time.Time             `json:"lastUpdatedAt"`
	LastUpdatedBy    string                `json:"lastUpdatedBy"`
}

// AccountDetailsResponse adds currency links and balances to an account.
type AccountDetailsResponse struct {
	AccountResponse
	Currencies []domain.AccountCurrency `json:"currencies"`
	Balances   []BalanceResponse        `json:"balances"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:        acc.AccountID,
		Code:             acc.Code,
		Name:             acc.Name,
		NameEn:           acc.NameEn,
		AccountType:      acc.AccountType,
		TypeCode:         acc.TypeCode,
		SubType:          acc.SubType,
		ParentAccountID:  acc.ParentAccountID,
		Level:            acc.Level,
		IsActive:         acc.IsActive,
		AllowManualEntry: acc.AllowManualEntry,
		SubSystemID:      acc.SubSystemID,
		Description:      acc.Description,
		CreatedAt:        acc.CreatedAt,
		CreatedBy:        acc.CreatedBy,
		LastUpdatedAt:    acc.LastUpdatedAt,
		LastUpdatedBy:    acc.LastUpdatedBy,
	}
}

// ToListAccountResponse converts a slice of domain.Account to a slice of AccountResponse DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return res
}

// ToAccountDetailsResponse converts domain.AccountDetails to its response DTO.
func ToAccountDetailsResponse(d *domain.AccountDetails) AccountDetailsResponse {
	currencies := d.Currencies
	if currencies == nil {
		currencies = []domain.AccountCurrency{}
	}
	balances := ToBalanceResponses(d.Balances)
	for i := range balances {
		natural, err := accounting.NaturalBalance(d.AccountType, balances[i].CurrentBalance)
		if err != nil {
			continue
		}
		naturalBase, _ := accounting.NaturalBalance(d.AccountType, balances[i].CurrentBalanceBase)
		balances[i].NaturalBalance = &natural
		balances[i].NaturalBalanceBase = &naturalBase
	}
	return AccountDetailsResponse{
		AccountResponse: ToAccountResponse(&d.Account),
		Currencies:      currencies,
		Balances:        balances,
	}
}
