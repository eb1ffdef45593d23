package memory

import (
	"context"
	"sort"

	"github.com/SscSPs/athena_ledger/internal/apperrors"
	"github.com/SscSPs/athena_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/athena_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/athena_ledger/internal/utils/pagination"
)

// JournalRepository is the in-memory journal_entries and journal_lines tables.
type JournalRepository struct {
	store *Store
}

var _ portsrepo.JournalRepositoryFacade = (*JournalRepository)(nil)

// withLines copies an entry header and attaches a copy of its lines. Callers hold the lock.
func (r *JournalRepository) withLines(header domain.JournalEntry) domain.JournalEntry {
	lines := r.store.lines[header.EntryID]
	header.Lines = make([]domain.JournalLine, len(lines))
	copy(header.Lines, lines)
	sort.Slice(header.Lines, func(i, j int) bool { return header.Lines[i].LineNo < header.Lines[j].LineNo })
	if header.Metadata != nil {
		header.Metadata = append([]byte(nil), header.Metadata...)
	}
	return header
}

func (r *JournalRepository) FindJournalByID(ctx context.Context, scope domain.Scope, entryID string) (*domain.JournalEntry, error) {
	var found domain.JournalEntry
	err := r.store.read(ctx, func() error {
		header, ok := r.store.entries[entryID]
		if !ok || !header.Scope.Equal(scope) {
			return apperrors.NotFoundf("journal entry %s", entryID)
		}
		found = r.withLines(header)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &found, nil
}

// FindJournalForUpdate reads the entry; the store lock already excludes other writers.
func (r *JournalRepository) FindJournalForUpdate(ctx context.Context, scope domain.Scope, entryID string) (*domain.JournalEntry, error) {
	return r.FindJournalByID(ctx, scope, entryID)
}

func (r *JournalRepository) ListJournals(ctx context.Context, scope domain.Scope, status *domain.JournalStatus, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	var cursor *pagination.Cursor
	if nextToken != nil && *nextToken != "" {
		c, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.Validationf("%s", err.Error())
		}
		cursor = &c
	}

	var matched []domain.JournalEntry
	err := r.store.read(ctx, func() error {
		for _, header := range r.store.entries {
			if !header.Scope.Equal(scope) {
				continue
			}
			if status != nil && header.Status != *status {
				continue
			}
			if cursor != nil && !cursor.After(header.EntryDate, header.CreatedAt, header.EntryID) {
				continue
			}
			matched = append(matched, r.withLines(header))
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if !a.EntryDate.Equal(b.EntryDate) {
			return a.EntryDate.After(b.EntryDate)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.EntryID > b.EntryID
	})

	if len(matched) <= limit {
		return matched, nil, nil
	}
	page := matched[:limit]
	last := page[len(page)-1]
	token := pagination.EncodeToken(pagination.Cursor{EntryDate: last.EntryDate, CreatedAt: last.CreatedAt, EntryID: last.EntryID})
	return page, &token, nil
}

func (r *JournalRepository) AccountHasLines(ctx context.Context, accountID string, statuses ...domain.JournalStatus) (bool, error) {
	wanted := make(map[domain.JournalStatus]bool, len(statuses))
	for _, st := range statuses {
		wanted[st] = true
	}
	found := false
	err := r.store.read(ctx, func() error {
		for entryID, lines := range r.store.lines {
			if !wanted[r.store.entries[entryID].Status] {
				continue
			}
			for _, l := range lines {
				if l.AccountID == accountID {
					found = true
					return nil
				}
			}
		}
		return nil
	})
	return found, err
}

func (r *JournalRepository) SaveJournal(ctx context.Context, entry domain.JournalEntry) error {
	return r.store.write(ctx, func() error {
		if _, exists := r.store.entries[entry.EntryID]; exists {
			return apperrors.Validationf("journal entry with ID %s already exists", entry.EntryID)
		}
		if err := r.checkLineAccounts(entry.Lines); err != nil {
			return err
		}
		lines := append([]domain.JournalLine(nil), entry.Lines...)
		entry.Lines = nil
		r.store.entries[entry.EntryID] = entry
		r.store.lines[entry.EntryID] = lines
		return nil
	})
}

func (r *JournalRepository) UpdateJournal(ctx context.Context, entry domain.JournalEntry, expectedStatus domain.JournalStatus, expectedVersion int64) error {
	return r.store.write(ctx, func() error {
		current, ok := r.store.entries[entry.EntryID]
		if !ok || !current.Scope.Equal(entry.Scope) || current.Status != expectedStatus || current.Version != expectedVersion {
			return apperrors.Conflictf("journal entry %s was modified concurrently", entry.EntryID)
		}
		entry.Lines = nil
		entry.CreatedAt = current.CreatedAt
		entry.CreatedBy = current.CreatedBy
		r.store.entries[entry.EntryID] = entry
		return nil
	})
}

func (r *JournalRepository) ReplaceJournalLines(ctx context.Context, entryID string, lines []domain.JournalLine) error {
	return r.store.write(ctx, func() error {
		if _, ok := r.store.entries[entryID]; !ok {
			return apperrors.NotFoundf("journal entry %s", entryID)
		}
		if err := r.checkLineAccounts(lines); err != nil {
			return err
		}
		r.store.lines[entryID] = append([]domain.JournalLine(nil), lines...)
		return nil
	})
}

// checkLineAccounts is the foreign key from journal_lines to ledger_accounts.
func (r *JournalRepository) checkLineAccounts(lines []domain.JournalLine) error {
	for _, l := range lines {
		if _, ok := r.store.accounts[l.AccountID]; !ok {
			return apperrors.Validationf("account %s does not exist", l.AccountID)
		}
	}
	return nil
}
