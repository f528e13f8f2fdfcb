// Package seed loads reference data (currencies, exchange rates and a chart of
// accounts) from a YAML file through the ledger services.
package seed

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Currency is a currency definition in the seed file.
type Currency struct {
	Code         string           `yaml:"code"`
	Name         string           `yaml:"name"`
	NameEn       *string          `yaml:"name_en"`
	Symbol       *string          `yaml:"symbol"`
	IsBase       bool             `yaml:"is_base"`
	Precision    *int             `yaml:"precision"`
	DisplayOrder int              `yaml:"display_order"`
	CurrentRate  *decimal.Decimal `yaml:"current_rate"`
	MinRate      *decimal.Decimal `yaml:"min_rate"`
	MaxRate      *decimal.Decimal `yaml:"max_rate"`
}

// ExchangeRate is a rate record in the seed file. Currencies are referenced by code.
type ExchangeRate struct {
	From          string          `yaml:"from"`
	To            string          `yaml:"to"`
	Rate          decimal.Decimal `yaml:"rate"`
	EffectiveDate time.Time       `yaml:"effective_date"`
	ExpiryDate    *time.Time      `yaml:"expiry_date"`
	Source        *string         `yaml:"source"`
}

// Account is a node of the chart of accounts. Children inherit the account
// type of their parent when they do not set one.
type Account struct {
	Code             string    `yaml:"code"`
	Name             string    `yaml:"name"`
	NameEn           *string   `yaml:"name_en"`
	Type             string    `yaml:"type"`
	SubType          string    `yaml:"sub_type"`
	AllowManualEntry *bool     `yaml:"allow_manual_entry"`
	Description      *string   `yaml:"description"`
	Currencies       []string  `yaml:"currencies"`
	Children         []Account `yaml:"children"`
}

// File is the root of a seed document.
type File struct {
	Currencies    []Currency     `yaml:"currencies"`
	ExchangeRates []ExchangeRate `yaml:"exchange_rates"`
	Accounts      []Account      `yaml:"accounts"`
}

// Result counts what Apply created. Records that already exist are skipped.
type Result struct {
	Currencies    int
	ExchangeRates int
	Accounts      int
	Skipped       int
}

// LoadFile reads and parses a seed file.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a seed document. Unknown keys are rejected.
func Parse(data []byte) (*File, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse seed YAML: %w", err)
	}
	return &f, nil
}

// Apply creates the file's currencies, then its rates, then its accounts for
// one workplace. Existing currency and account codes and rate records with the
// same pair and effective date are left untouched, so Apply can be re-run.
func Apply(ctx context.Context, svc *portssvc.ServiceContainer, workplaceID, userID string, f *File) (*Result, error) {
	res := &Result{}

	existing, err := svc.Currency.ListCurrencies(ctx, workplaceID, false)
	if err != nil {
		return nil, err
	}
	currencyIDs := make(map[string]string, len(existing))
	for _, c := range existing {
		currencyIDs[c.Code] = c.CurrencyID
	}

	for _, c := range f.Currencies {
		code := strings.ToUpper(strings.TrimSpace(c.Code))
		if _, ok := currencyIDs[code]; ok {
			res.Skipped++
			continue
		}
		created, err := svc.Currency.CreateCurrency(ctx, workplaceID, dto.CreateCurrencyRequest{
			Code:         code,
			Name:         c.Name,
			NameEn:       c.NameEn,
			Symbol:       c.Symbol,
			IsBase:       c.IsBase,
			Precision:    c.Precision,
			DisplayOrder: c.DisplayOrder,
			CurrentRate:  c.CurrentRate,
			MinRate:      c.MinRate,
			MaxRate:      c.MaxRate,
		}, userID)
		if err != nil {
			return nil, fmt.Errorf("currency %s: %w", code, err)
		}
		currencyIDs[created.Code] = created.CurrencyID
		res.Currencies++
	}

	lookup := func(code string) (string, error) {
		id, ok := currencyIDs[strings.ToUpper(strings.TrimSpace(code))]
		if !ok {
			return "", fmt.Errorf("unknown currency code %q", code)
		}
		return id, nil
	}

	for _, r := range f.ExchangeRates {
		if err := applyRate(ctx, svc, workplaceID, userID, r, lookup, res); err != nil {
			return nil, fmt.Errorf("exchange rate %s/%s: %w", r.From, r.To, err)
		}
	}

	accounts, err := svc.Account.ListAccounts(ctx, workplaceID, domain.AccountFilter{})
	if err != nil {
		return nil, err
	}
	accountIDs := make(map[string]string, len(accounts))
	for _, a := range accounts {
		accountIDs[a.Code] = a.AccountID
	}
	for _, a := range f.Accounts {
		if err := applyAccount(ctx, svc, workplaceID, userID, a, nil, "", accountIDs, lookup, res); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func applyRate(ctx context.Context, svc *portssvc.ServiceContainer, workplaceID, userID string, r ExchangeRate, lookup func(string) (string, error), res *Result) error {
	fromID, err := lookup(r.From)
	if err != nil {
		return err
	}
	toID, err := lookup(r.To)
	if err != nil {
		return err
	}

	current, err := svc.ExchangeRate.ListExchangeRatesForCurrency(ctx, workplaceID, fromID)
	if err != nil {
		return err
	}
	for _, existing := range current {
		if existing.ToCurrencyID == toID && existing.EffectiveDate.Equal(r.EffectiveDate) {
			res.Skipped++
			return nil
		}
	}

	_, err = svc.ExchangeRate.CreateExchangeRate(ctx, workplaceID, dto.CreateExchangeRateRequest{
		FromCurrencyID: fromID,
		ToCurrencyID:   toID,
		Rate:           r.Rate,
		EffectiveDate:  r.EffectiveDate,
		ExpiryDate:     r.ExpiryDate,
		Source:         r.Source,
	}, userID)
	if err != nil {
		return err
	}
	res.ExchangeRates++
	return nil
}

func applyAccount(
	ctx context.Context,
	svc *portssvc.ServiceContainer,
	workplaceID, userID string,
	a Account,
	parentID *string,
	parentType domain.AccountType,
	accountIDs map[string]string,
	lookup func(string) (string, error),
	res *Result,
) error {
	accountType := domain.AccountType(strings.ToUpper(a.Type))
	if accountType == "" {
		accountType = parentType
	}

	id, ok := accountIDs[a.Code]
	if ok {
		res.Skipped++
	} else {
		links := make([]dto.AccountCurrencyInput, len(a.Currencies))
		for i, code := range a.Currencies {
			currencyID, err := lookup(code)
			if err != nil {
				return fmt.Errorf("account %s: %w", a.Code, err)
			}
			links[i] = dto.AccountCurrencyInput{CurrencyID: currencyID, IsDefault: i == 0}
		}
		created, err := svc.Account.CreateAccount(ctx, workplaceID, dto.CreateAccountRequest{
			Code:             a.Code,
			Name:             a.Name,
			NameEn:           a.NameEn,
			AccountType:      accountType,
			SubType:          domain.AccountSubType(strings.ToUpper(a.SubType)),
			ParentAccountID:  parentID,
			AllowManualEntry: a.AllowManualEntry,
			Description:      a.Description,
			Currencies:       links,
		}, userID)
		if err != nil {
			return fmt.Errorf("account %s: %w", a.Code, err)
		}
		id = created.AccountID
		accountIDs[a.Code] = id
		res.Accounts++
	}

	for _, child := range a.Children {
		if err := applyAccount(ctx, svc, workplaceID, userID, child, &id, accountType, accountIDs, lookup, res); err != nil {
			return err
		}
	}
	return nil
}
