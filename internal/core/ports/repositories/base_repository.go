package repositories

import (
	"context"
)

// UnitOfWork scopes a group of repository calls in one atomic transaction.
// The transaction travels in the context handed to fn; repositories called with
// that context join it. A nested WithinTx call joins the outer transaction.
type UnitOfWork interface {
	// WithinTx runs fn in a transaction. The transaction commits when fn returns nil
	// and rolls back when fn returns an error or panics.
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
