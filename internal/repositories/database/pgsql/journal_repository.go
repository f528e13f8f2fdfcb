package pgsql

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_engine/internal/models"
	"github.com/SscSPs/ledger_engine/internal/utils/mapping"
	"github.com/SscSPs/ledger_engine/internal/utils/pagination"
)

const journalEntryColumns = `entry_id, workplace_id, entry_number, entry_date, entry_type, description, notes,
	reference_type, reference_id, reference_number, sub_system_id, status,
	total_debit_base, total_credit_base, posted_at, posted_by, reversed_at, reversed_by,
	reversal_entry_id, reversed_entry_id,
	created_at, created_by, last_updated_at, last_updated_by`

const journalLineColumns = `line_id, workplace_id, entry_id, line_number, account_id, currency_id, description,
	debit_amount, credit_amount, exchange_rate, debit_amount_base, credit_amount_base`

const (
	queryInsertJournalEntry = `
		INSERT INTO journal_entries (` + journalEntryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
			$13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24);
	`
	queryInsertJournalLine = `
		INSERT INTO journal_lines (` + journalLineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
)

// PgxJournalRepository implements journal entry and line storage.
type PgxJournalRepository struct {
	BaseRepository
}

func newPgxJournalRepository(pool DBPool) *PgxJournalRepository {
	return &PgxJournalRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

func (r *PgxJournalRepository) findEntry(ctx context.Context, workplaceID, entryID, suffix string) (*domain.JournalEntry, error) {
	query := `SELECT ` + journalEntryColumns + ` FROM journal_entries
		WHERE workplace_id = $1 AND entry_id = $2` + suffix
	m, err := queryOne[models.JournalEntry](ctx, r.db(ctx), query, workplaceID, entryID)
	if err != nil {
		return nil, mapError(err, "journal entry", entryID)
	}
	entry := mapping.ToDomainJournalEntry(m)
	return &entry, nil
}

// FindEntryByID retrieves an entry header.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, workplaceID, entryID string) (*domain.JournalEntry, error) {
	return r.findEntry(ctx, workplaceID, entryID, ";")
}

// FindEntryByIDForUpdate locks the entry row, serialising concurrent post and reverse calls.
func (r *PgxJournalRepository) FindEntryByIDForUpdate(ctx context.Context, workplaceID, entryID string) (*domain.JournalEntry, error) {
	return r.findEntry(ctx, workplaceID, entryID, " FOR UPDATE;")
}

func (r *PgxJournalRepository) EntryNumberExists(ctx context.Context, workplaceID, entryNumber, exceptEntryID string) (bool, error) {
	return exists(ctx, r.db(ctx),
		`SELECT EXISTS (SELECT 1 FROM journal_entries WHERE workplace_id = $1 AND entry_number = $2 AND entry_id <> $3);`,
		workplaceID, entryNumber, exceptEntryID)
}

// ListEntries pages with a keyset on (entry_date, entry_id), both descending.
func (r *PgxJournalRepository) ListEntries(ctx context.Context, workplaceID string, filter domain.JournalEntryFilter) ([]domain.JournalEntry, *string, error) {
	b := psql.Select(journalEntryColumns).From("journal_entries").
		Where(sq.Eq{"workplace_id": workplaceID}).
		OrderBy("entry_date DESC", "entry_id DESC")
	if filter.Status != nil {
		b = b.Where(sq.Eq{"status": string(*filter.Status)})
	}
	if filter.EntryType != nil {
		b = b.Where(sq.Eq{"entry_type": string(*filter.EntryType)})
	}
	if filter.SubSystemID != nil {
		b = b.Where(sq.Eq{"sub_system_id": *filter.SubSystemID})
	}
	if filter.FromDate != nil {
		b = b.Where(sq.GtOrEq{"entry_date": *filter.FromDate})
	}
	if filter.ToDate != nil {
		b = b.Where(sq.LtOrEq{"entry_date": *filter.ToDate})
	}
	if filter.NextToken != nil && *filter.NextToken != "" {
		cursorDate, cursorID, err := pagination.DecodeEntryToken(*filter.NextToken)
		if err != nil {
			return nil, nil, apperrors.NewValidationError("%s", err)
		}
		b = b.Where(sq.Expr("(entry_date, entry_id) < (?, ?)", cursorDate, cursorID))
	}
	if filter.Limit > 0 {
		// One extra row tells whether another page exists.
		b = b.Limit(uint64(filter.Limit) + 1)
	}

	ms, err := queryBuilt[models.JournalEntry](ctx, r.db(ctx), b)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query journal entries: %w", err)
	}
	entries := mapping.ToDomainJournalEntrySlice(ms)

	var next *string
	if filter.Limit > 0 && len(entries) > filter.Limit {
		entries = entries[:filter.Limit]
		last := entries[len(entries)-1]
		token := pagination.EncodeEntryToken(last.EntryDate, last.EntryID)
		next = &token
	}
	return entries, next, nil
}

func (r *PgxJournalRepository) FindLinesByEntryID(ctx context.Context, workplaceID, entryID string) ([]domain.JournalLine, error) {
	byEntry, err := r.FindLinesByEntryIDs(ctx, workplaceID, []string{entryID})
	if err != nil {
		return nil, err
	}
	return byEntry[entryID], nil
}

func (r *PgxJournalRepository) FindLinesByEntryIDs(ctx context.Context, workplaceID string, entryIDs []string) (map[string][]domain.JournalLine, error) {
	out := make(map[string][]domain.JournalLine, len(entryIDs))
	if len(entryIDs) == 0 {
		return out, nil
	}
	b := psql.Select(journalLineColumns).From("journal_lines").
		Where(sq.Eq{"workplace_id": workplaceID, "entry_id": entryIDs}).
		OrderBy("entry_id", "line_number")
	ms, err := queryBuilt[models.JournalLine](ctx, r.db(ctx), b)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal lines: %w", err)
	}
	for _, m := range ms {
		out[m.EntryID] = append(out[m.EntryID], mapping.ToDomainJournalLine(m))
	}
	return out, nil
}

// SumPostedLines replays lines of posted and reversed entries for one pair.
func (r *PgxJournalRepository) SumPostedLines(ctx context.Context, workplaceID, accountID, currencyID string) (domain.BalanceDelta, error) {
	sum := domain.BalanceDelta{AccountID: accountID, CurrencyID: currencyID}
	query := `
		SELECT COALESCE(SUM(l.debit_amount), 0), COALESCE(SUM(l.credit_amount), 0),
			COALESCE(SUM(l.debit_amount_base), 0), COALESCE(SUM(l.credit_amount_base), 0)
		FROM journal_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE l.workplace_id = $1 AND l.account_id = $2 AND l.currency_id = $3
			AND e.status IN ($4, $5);
	`
	err := r.db(ctx).QueryRow(ctx, query, workplaceID, accountID, currencyID, string(domain.Posted), string(domain.Reversed)).
		Scan(&sum.Debit, &sum.Credit, &sum.DebitBase, &sum.CreditBase)
	if err != nil {
		return sum, fmt.Errorf("failed to replay lines of account %s in %s: %w", accountID, currencyID, err)
	}
	return sum, nil
}

func queueLines(batch *pgx.Batch, workplaceID string, lines []domain.JournalLine) {
	for _, l := range lines {
		m := mapping.ToModelJournalLine(workplaceID, l)
		batch.Queue(queryInsertJournalLine,
			m.LineID, m.WorkplaceID, m.EntryID, m.LineNumber, m.AccountID, m.CurrencyID, m.Description,
			m.DebitAmount, m.CreditAmount, m.ExchangeRate, m.DebitAmountBase, m.CreditAmountBase,
		)
	}
}

// runBatch sends the batch and reports the first failing statement.
func (r *PgxJournalRepository) runBatch(ctx context.Context, batch *pgx.Batch, entryID string) error {
	results := r.db(ctx).SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		if _, err := results.Exec(); err != nil {
			_ = results.Close()
			return mapError(err, "journal entry", entryID)
		}
	}
	return results.Close()
}

// SaveEntry inserts the header and its lines in one batch, which postgres runs
// as a single implicit transaction when no unit of work is active.
func (r *PgxJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry) error {
	m := mapping.ToModelJournalEntry(entry)
	batch := &pgx.Batch{}
	batch.Queue(queryInsertJournalEntry,
		m.EntryID, m.WorkplaceID, m.EntryNumber, m.EntryDate, m.EntryType, m.Description, m.Notes,
		m.ReferenceType, m.ReferenceID, m.ReferenceNumber, m.SubSystemID, m.Status,
		m.TotalDebitBase, m.TotalCreditBase, m.PostedAt, m.PostedBy, m.ReversedAt, m.ReversedBy,
		m.ReversalEntryID, m.ReversedEntryID,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	queueLines(batch, entry.WorkplaceID, entry.Lines)
	return r.runBatch(ctx, batch, entry.EntryID)
}

func (r *PgxJournalRepository) UpdateEntry(ctx context.Context, entry domain.JournalEntry) error {
	m := mapping.ToModelJournalEntry(entry)
	query := `
		UPDATE journal_entries SET
			entry_number = $3, entry_date = $4, description = $5, notes = $6,
			reference_type = $7, reference_id = $8, reference_number = $9, sub_system_id = $10,
			status = $11, total_debit_base = $12, total_credit_base = $13,
			posted_at = $14, posted_by = $15, reversed_at = $16, reversed_by = $17,
			reversal_entry_id = $18, reversed_entry_id = $19,
			last_updated_at = $20, last_updated_by = $21
		WHERE workplace_id = $1 AND entry_id = $2;
	`
	tag, err := r.db(ctx).Exec(ctx, query,
		m.WorkplaceID, m.EntryID, m.EntryNumber, m.EntryDate, m.Description, m.Notes,
		m.ReferenceType, m.ReferenceID, m.ReferenceNumber, m.SubSystemID,
		m.Status, m.TotalDebitBase, m.TotalCreditBase,
		m.PostedAt, m.PostedBy, m.ReversedAt, m.ReversedBy,
		m.ReversalEntryID, m.ReversedEntryID,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapError(err, "journal entry", m.EntryNumber)
	}
	return requireAffected(tag, "journal entry", m.EntryID)
}

func (r *PgxJournalRepository) ReplaceLines(ctx context.Context, workplaceID, entryID string, lines []domain.JournalLine) error {
	batch := &pgx.Batch{}
	batch.Queue(`DELETE FROM journal_lines WHERE workplace_id = $1 AND entry_id = $2;`, workplaceID, entryID)
	queueLines(batch, workplaceID, lines)
	return r.runBatch(ctx, batch, entryID)
}

// DeleteEntry relies on ON DELETE CASCADE to remove the lines.
func (r *PgxJournalRepository) DeleteEntry(ctx context.Context, workplaceID, entryID string) error {
	tag, err := r.db(ctx).Exec(ctx, `DELETE FROM journal_entries WHERE workplace_id = $1 AND entry_id = $2;`, workplaceID, entryID)
	if err != nil {
		return mapError(err, "journal entry", entryID)
	}
	return requireAffected(tag, "journal entry", entryID)
}
