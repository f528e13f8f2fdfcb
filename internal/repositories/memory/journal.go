package memory

import (
	"context"
	"sort"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/utils/pagination"
)

func (s *Store) FindEntryByID(ctx context.Context, workplaceID, entryID string) (*domain.JournalEntry, error) {
	var out *domain.JournalEntry
	err := s.read(ctx, func(st *state) error {
		e, ok := st.entries[entryID]
		if !ok || e.WorkplaceID != workplaceID {
			return apperrors.NewNotFoundError("journal entry", entryID)
		}
		out = &e
		return nil
	})
	return out, err
}

// FindEntryByIDForUpdate needs no row lock: units of work are already serialised.
func (s *Store) FindEntryByIDForUpdate(ctx context.Context, workplaceID, entryID string) (*domain.JournalEntry, error) {
	return s.FindEntryByID(ctx, workplaceID, entryID)
}

func (s *Store) EntryNumberExists(ctx context.Context, workplaceID, entryNumber, exceptEntryID string) (bool, error) {
	var exists bool
	err := s.read(ctx, func(st *state) error {
		for _, e := range st.entries {
			if e.WorkplaceID == workplaceID && e.EntryNumber == entryNumber && e.EntryID != exceptEntryID {
				exists = true
				return nil
			}
		}
		return nil
	})
	return exists, err
}

func matchesEntryFilter(e domain.JournalEntry, f domain.JournalEntryFilter) bool {
	if f.Status != nil && e.Status != *f.Status {
		return false
	}
	if f.EntryType != nil && e.EntryType != *f.EntryType {
		return false
	}
	if f.SubSystemID != nil && (e.SubSystemID == nil || *e.SubSystemID != *f.SubSystemID) {
		return false
	}
	if f.FromDate != nil && e.EntryDate.Before(*f.FromDate) {
		return false
	}
	if f.ToDate != nil && e.EntryDate.After(*f.ToDate) {
		return false
	}
	return true
}

func (s *Store) ListEntries(ctx context.Context, workplaceID string, filter domain.JournalEntryFilter) ([]domain.JournalEntry, *string, error) {
	var matched []domain.JournalEntry
	err := s.read(ctx, func(st *state) error {
		for _, e := range st.entries {
			if e.WorkplaceID == workplaceID && matchesEntryFilter(e, filter) {
				matched = append(matched, e)
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	sort.Slice(matched, func(i, j int) bool {
		return pagination.Before(matched[j].EntryDate, matched[j].EntryID, matched[i].EntryDate, matched[i].EntryID)
	})

	if filter.NextToken != nil && *filter.NextToken != "" {
		cursorDate, cursorID, err := pagination.DecodeEntryToken(*filter.NextToken)
		if err != nil {
			return nil, nil, apperrors.NewValidationError("%s", err)
		}
		start := len(matched)
		for i, e := range matched {
			if pagination.Before(e.EntryDate, e.EntryID, cursorDate, cursorID) {
				start = i
				break
			}
		}
		matched = matched[start:]
	}

	var next *string
	if filter.Limit > 0 && len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
		last := matched[len(matched)-1]
		token := pagination.EncodeEntryToken(last.EntryDate, last.EntryID)
		next = &token
	}
	return matched, next, nil
}

func (s *Store) FindLinesByEntryID(ctx context.Context, workplaceID, entryID string) ([]domain.JournalLine, error) {
	var out []domain.JournalLine
	err := s.read(ctx, func(st *state) error {
		e, ok := st.entries[entryID]
		if !ok || e.WorkplaceID != workplaceID {
			return apperrors.NewNotFoundError("journal entry", entryID)
		}
		out = append([]domain.JournalLine(nil), st.lines[entryID]...)
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].LineNumber < out[j].LineNumber })
	return out, err
}

func (s *Store) FindLinesByEntryIDs(ctx context.Context, workplaceID string, entryIDs []string) (map[string][]domain.JournalLine, error) {
	out := make(map[string][]domain.JournalLine, len(entryIDs))
	err := s.read(ctx, func(st *state) error {
		for _, id := range entryIDs {
			if e, ok := st.entries[id]; ok && e.WorkplaceID == workplaceID {
				out[id] = append([]domain.JournalLine(nil), st.lines[id]...)
			}
		}
		return nil
	})
	return out, err
}

func (s *Store) SumPostedLines(ctx context.Context, workplaceID, accountID, currencyID string) (domain.BalanceDelta, error) {
	sum := domain.BalanceDelta{AccountID: accountID, CurrencyID: currencyID}
	err := s.read(ctx, func(st *state) error {
		for entryID, lines := range st.lines {
			e := st.entries[entryID]
			if e.WorkplaceID != workplaceID || !e.Status.AffectsBalances() {
				continue
			}
			for _, l := range lines {
				if l.AccountID != accountID || l.CurrencyID != currencyID {
					continue
				}
				sum.Debit = sum.Debit.Add(l.DebitAmount)
				sum.Credit = sum.Credit.Add(l.CreditAmount)
				sum.DebitBase = sum.DebitBase.Add(l.DebitAmountBase)
				sum.CreditBase = sum.CreditBase.Add(l.CreditAmountBase)
			}
		}
		return nil
	})
	return sum, err
}

func (s *Store) SaveEntry(ctx context.Context, entry domain.JournalEntry) error {
	return s.write(ctx, func(st *state) error {
		if _, ok := st.entries[entry.EntryID]; ok {
			return apperrors.NewDuplicateError("journal entry %s already exists", entry.EntryID)
		}
		for _, e := range st.entries {
			if e.WorkplaceID == entry.WorkplaceID && e.EntryNumber == entry.EntryNumber {
				return apperrors.NewDuplicateError("entry number %s already exists", entry.EntryNumber)
			}
		}
		for _, l := range entry.Lines {
			if _, ok := st.accounts[l.AccountID]; !ok {
				return apperrors.NewIntegrityError("account %s does not exist", l.AccountID)
			}
		}
		lines := append([]domain.JournalLine(nil), entry.Lines...)
		entry.Lines = nil
		st.entries[entry.EntryID] = entry
		st.lines[entry.EntryID] = lines
		return nil
	})
}

func (s *Store) UpdateEntry(ctx context.Context, entry domain.JournalEntry) error {
	return s.write(ctx, func(st *state) error {
		existing, ok := st.entries[entry.EntryID]
		if !ok || existing.WorkplaceID != entry.WorkplaceID {
			return apperrors.NewNotFoundError("journal entry", entry.EntryID)
		}
		for _, e := range st.entries {
			if e.WorkplaceID == entry.WorkplaceID && e.EntryID != entry.EntryID && e.EntryNumber == entry.EntryNumber {
				return apperrors.NewDuplicateError("entry number %s already exists", entry.EntryNumber)
			}
		}
		entry.Lines = nil
		st.entries[entry.EntryID] = entry
		return nil
	})
}

func (s *Store) ReplaceLines(ctx context.Context, workplaceID, entryID string, lines []domain.JournalLine) error {
	return s.write(ctx, func(st *state) error {
		e, ok := st.entries[entryID]
		if !ok || e.WorkplaceID != workplaceID {
			return apperrors.NewNotFoundError("journal entry", entryID)
		}
		st.lines[entryID] = append([]domain.JournalLine(nil), lines...)
		return nil
	})
}

func (s *Store) DeleteEntry(ctx context.Context, workplaceID, entryID string) error {
	return s.write(ctx, func(st *state) error {
		e, ok := st.entries[entryID]
		if !ok || e.WorkplaceID != workplaceID {
			return apperrors.NewNotFoundError("journal entry", entryID)
		}
		delete(st.lines, entryID)
		delete(st.entries, entryID)
		return nil
	})
}
