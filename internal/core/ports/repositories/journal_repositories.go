package repositories

import (
	"context"

	"github.com/SscSPs/athena_ledger/internal/core/domain"
)

// JournalReader defines read operations for journal data. Entries are
// always returned with their lines ordered by line number.
type JournalReader interface {
	// FindJournalByID retrieves an entry in scope; apperrors.ErrNotFound if absent or owned by another scope.
	FindJournalByID(ctx context.Context, scope domain.Scope, entryID string) (*domain.JournalEntry, error)

	// FindJournalForUpdate is FindJournalByID holding the entry row lock until the transaction ends.
	FindJournalForUpdate(ctx context.Context, scope domain.Scope, entryID string) (*domain.JournalEntry, error)

	// ListJournals retrieves a page of entries ordered by entry date, creation time and id, newest first.
	// It returns the entries, a token for the next page, and an error.
	ListJournals(ctx context.Context, scope domain.Scope, status *domain.JournalStatus, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)

	// AccountHasLines reports whether any line of an entry in one of statuses references the account.
	AccountHasLines(ctx context.Context, accountID string, statuses ...domain.JournalStatus) (bool, error)
}

// JournalWriter defines write operations for journal data.
type JournalWriter interface {
	// SaveJournal persists a new entry and its lines.
	SaveJournal(ctx context.Context, entry domain.JournalEntry) error

	// UpdateJournal writes the entry header if it is still in expectedStatus at expectedVersion.
	// When no row matches it returns apperrors.ErrConflict.
	UpdateJournal(ctx context.Context, entry domain.JournalEntry, expectedStatus domain.JournalStatus, expectedVersion int64) error

	// ReplaceJournalLines deletes the entry's lines and inserts lines in their place.
	ReplaceJournalLines(ctx context.Context, entryID string, lines []domain.JournalLine) error
}

// JournalRepositoryFacade combines all journal-related repository interfaces
// This is a facade for clients that need access to all operations
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
}
