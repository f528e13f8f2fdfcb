package services

import (
	"context"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/dto"
)

// JournalReaderSvc defines read operations for journal data
type JournalReaderSvc interface {
	// GetJournalEntry retrieves an entry with its lines.
	GetJournalEntry(ctx context.Context, workplaceID, entryID string) (*domain.JournalEntry, error)

	// ListJournalEntries retrieves a page of entries and the token of the next page.
	ListJournalEntries(ctx context.Context, workplaceID string, filter domain.JournalEntryFilter) ([]domain.JournalEntry, *string, error)

	// ListRecentOperations retrieves the latest system-generated entries with their lines.
	ListRecentOperations(ctx context.Context, workplaceID string, limit int) ([]domain.JournalEntry, error)
}

// JournalWriterSvc defines write operations for journal data
type JournalWriterSvc interface {
	// CreateJournalEntry validates and persists a draft entry. Balances are untouched.
	CreateJournalEntry(ctx context.Context, workplaceID string, req dto.CreateJournalEntryRequest, userID string) (*domain.JournalEntry, error)

	// UpdateJournalEntry patches a draft entry.
	UpdateJournalEntry(ctx context.Context, workplaceID, entryID string, req dto.UpdateJournalEntryRequest, userID string) (*domain.JournalEntry, error)

	// PostJournalEntry posts a draft entry and applies its lines to the balance store.
	PostJournalEntry(ctx context.Context, workplaceID, entryID, userID string) (*domain.JournalEntry, error)

	// ReverseJournalEntry creates and posts the mirror of a posted entry and marks
	// the original reversed. It returns the reversal entry.
	ReverseJournalEntry(ctx context.Context, workplaceID, entryID string, req dto.ReverseJournalEntryRequest, userID string) (*domain.JournalEntry, error)

	// DeleteJournalEntry removes a draft entry.
	DeleteJournalEntry(ctx context.Context, workplaceID, entryID, userID string) error
}

// BalanceAuditSvc checks the balance store against the journal.
type BalanceAuditSvc interface {
	// ReconcileBalance replays the lines of one (account, currency) pair and
	// compares the result with the stored balance row.
	ReconcileBalance(ctx context.Context, workplaceID, accountID, currencyID string) (*domain.BalanceReconciliation, error)
}

// JournalSvcFacade combines all journal-related service interfaces
// This is a facade for clients that need access to all operations
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
	BalanceAuditSvc
}
