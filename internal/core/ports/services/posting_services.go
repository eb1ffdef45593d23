package services

import (
	"context"

	"github.com/SscSPs/athena_ledger/internal/core/domain"
)

// PostingSvc owns the DRAFT -> POSTED -> VOID lifecycle of journal entries.
type PostingSvc interface {
	// PostJournal validates balance and moves a DRAFT entry to POSTED.
	PostJournal(ctx context.Context, scope domain.Scope, entryID string, expectedVersion *int64, userID string) (*domain.JournalEntry, error)

	// VoidJournal moves a POSTED entry to VOID. Lines are kept.
	VoidJournal(ctx context.Context, scope domain.Scope, entryID string, expectedVersion *int64, userID string) (*domain.JournalEntry, error)

	// CanTransition reports whether from -> to is a legal lifecycle step.
	CanTransition(from, to domain.JournalStatus) bool
}
