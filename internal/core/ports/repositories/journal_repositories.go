package repositories

import (
	"context"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// JournalReader defines read operations for journal data
type JournalReader interface {
	// FindEntryByID retrieves an entry header (without lines).
	FindEntryByID(ctx context.Context, workplaceID, entryID string) (*domain.JournalEntry, error)

	// FindEntryByIDForUpdate retrieves an entry header and locks it until the surrounding
	// unit of work ends. Must be called inside UnitOfWork.WithinTx.
	FindEntryByIDForUpdate(ctx context.Context, workplaceID, entryID string) (*domain.JournalEntry, error)

	// EntryNumberExists reports whether the entry number is taken in the workplace,
	// ignoring exceptEntryID when non-empty.
	EntryNumberExists(ctx context.Context, workplaceID, entryNumber, exceptEntryID string) (bool, error)

	// ListEntries retrieves entries ordered by entry date desc then id desc.
	// It returns the entries and a token for the next page.
	ListEntries(ctx context.Context, workplaceID string, filter domain.JournalEntryFilter) ([]domain.JournalEntry, *string, error)
}

// JournalLineReader defines read operations for journal lines
type JournalLineReader interface {
	// FindLinesByEntryID retrieves an entry's lines ordered by line number.
	FindLinesByEntryID(ctx context.Context, workplaceID, entryID string) ([]domain.JournalLine, error)

	// FindLinesByEntryIDs retrieves lines for several entries grouped by entry id.
	FindLinesByEntryIDs(ctx context.Context, workplaceID string, entryIDs []string) (map[string][]domain.JournalLine, error)

	// SumPostedLines replays the lines of every entry that has affected balances
	// (posted or reversed) for one (account, currency) pair.
	SumPostedLines(ctx context.Context, workplaceID, accountID, currencyID string) (domain.BalanceDelta, error)
}

// JournalWriter defines write operations for journal data
type JournalWriter interface {
	// SaveEntry persists an entry header and its lines.
	SaveEntry(ctx context.Context, entry domain.JournalEntry) error

	// UpdateEntry overwrites the header fields of an entry.
	UpdateEntry(ctx context.Context, entry domain.JournalEntry) error

	// ReplaceLines deletes an entry's lines and inserts the given ones.
	ReplaceLines(ctx context.Context, workplaceID, entryID string, lines []domain.JournalLine) error

	// DeleteEntry removes an entry's lines, then the entry.
	DeleteEntry(ctx context.Context, workplaceID, entryID string) error
}

// JournalRepositoryFacade combines all journal-related repository interfaces
// This is a facade for clients that need access to all operations
type JournalRepositoryFacade interface {
	JournalReader
	JournalLineReader
	JournalWriter
}
