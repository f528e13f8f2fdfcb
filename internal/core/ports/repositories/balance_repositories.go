package repositories

import (
	"context"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// BalanceReader defines read operations for the balance store
type BalanceReader interface {
	// FindBalance returns the row for one pair, or apperrors.ErrNotFound.
	FindBalance(ctx context.Context, workplaceID, accountID, currencyID string) (*domain.AccountBalance, error)

	// ListBalancesByAccount returns every currency row of an account.
	ListBalancesByAccount(ctx context.Context, workplaceID, accountID string) ([]domain.AccountBalance, error)

	// HasBalancesForAccount reports whether the account has any balance row.
	HasBalancesForAccount(ctx context.Context, workplaceID, accountID string) (bool, error)

	// HasBalance reports whether a row exists for the pair.
	HasBalance(ctx context.Context, workplaceID, accountID, currencyID string) (bool, error)
}

// BalanceWriter is used only by the journal engine.
type BalanceWriter interface {
	// ApplyBalanceDeltas adds each delta to its (account, currency) row, creating
	// zero rows where absent. Each row is changed by an atomic increment; callers
	// run it inside the unit of work of the entry being posted.
	ApplyBalanceDeltas(ctx context.Context, workplaceID string, deltas []domain.BalanceDelta) error
}

// BalanceRepositoryFacade combines all balance-related repository interfaces
type BalanceRepositoryFacade interface {
	BalanceReader
	BalanceWriter
}
