package services

import (
	"context"

	"github.com/SscSPs/athena_ledger/internal/core/domain"
	"github.com/SscSPs/athena_ledger/internal/dto"
)

// JournalReaderSvc defines read operations for journal data
type JournalReaderSvc interface {
	// GetJournalByID retrieves a specific entry with its lines.
	GetJournalByID(ctx context.Context, scope domain.Scope, entryID string) (*domain.JournalEntry, error)

	// ListJournals retrieves a page of entries, newest entry date first.
	ListJournals(ctx context.Context, scope domain.Scope, params dto.ListJournalsParams) (*dto.ListJournalsResponse, error)
}

// JournalWriterSvc defines write operations for journal data
type JournalWriterSvc interface {
	// CreateJournal persists a new DRAFT entry with its lines.
	CreateJournal(ctx context.Context, scope domain.Scope, req dto.CreateJournalRequest, userID string) (*domain.JournalEntry, error)

	// UpdateJournal edits a DRAFT entry, optionally replacing its lines.
	UpdateJournal(ctx context.Context, scope domain.Scope, entryID string, req dto.UpdateJournalRequest, userID string) (*domain.JournalEntry, error)

	// CreateReversal creates a DRAFT entry that mirrors a POSTED one with debits and credits swapped.
	CreateReversal(ctx context.Context, scope domain.Scope, entryID string, userID string) (*domain.JournalEntry, error)
}

// JournalSvcFacade combines all journal-related service interfaces
// This is a facade for clients that need access to all operations
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
}
