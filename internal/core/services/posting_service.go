package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/SscSPs/athena_ledger/internal/apperrors"
	"github.com/SscSPs/athena_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/athena_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/athena_ledger/internal/core/ports/services"
	"github.com/SscSPs/athena_ledger/internal/platform/metrics"
	"github.com/SscSPs/athena_ledger/internal/utils/accounting"
)

// lifecycle is the complete transition table of a journal entry, keyed by
// current status then target status. The value names the transition.
// VOID has no outgoing edges.
var lifecycle = map[domain.JournalStatus]map[domain.JournalStatus]string{
	domain.Draft:  {domain.Posted: "post"},
	domain.Posted: {domain.Void: "void"},
}

// postingService moves entries through DRAFT -> POSTED -> VOID.
type postingService struct {
	BaseService
	txManager   portsrepo.TransactionManager
	journalRepo portsrepo.JournalRepositoryFacade
	metrics     *metrics.Metrics
}

// NewPostingService creates the posting engine. m may be nil.
func NewPostingService(txManager portsrepo.TransactionManager, journalRepo portsrepo.JournalRepositoryFacade, m *metrics.Metrics, base BaseService) portssvc.PostingSvc {
	return &postingService{
		BaseService: base,
		txManager:   txManager,
		journalRepo: journalRepo,
		metrics:     m,
	}
}

var _ portssvc.PostingSvc = (*postingService)(nil)

func (s *postingService) CanTransition(from, to domain.JournalStatus) bool {
	_, ok := lifecycle[from][to]
	return ok
}

// PostJournal checks that the entry has lines and that debits equal credits
// exactly, then marks it POSTED. A failed check leaves the entry untouched.
func (s *postingService) PostJournal(ctx context.Context, scope domain.Scope, entryID string, expectedVersion *int64, userID string) (*domain.JournalEntry, error) {
	return s.transition(ctx, scope, entryID, expectedVersion, userID, domain.Posted, "post")
}

// VoidJournal marks a POSTED entry VOID. Its lines stay for the audit trail
// but no longer count towards any report.
func (s *postingService) VoidJournal(ctx context.Context, scope domain.Scope, entryID string, expectedVersion *int64, userID string) (*domain.JournalEntry, error) {
	return s.transition(ctx, scope, entryID, expectedVersion, userID, domain.Void, "void")
}

func (s *postingService) transition(ctx context.Context, scope domain.Scope, entryID string, expectedVersion *int64, userID string, to domain.JournalStatus, name string) (*domain.JournalEntry, error) {
	if err := scope.Validate(); err != nil {
		return nil, err
	}

	var result domain.JournalEntry
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		entry, err := s.journalRepo.FindJournalForUpdate(ctx, scope, entryID)
		if err != nil {
			return err
		}
		from := entry.Status
		if !s.CanTransition(from, to) {
			return apperrors.Conflictf("cannot %s journal entry %s in status %s", name, entry.EntryID, from)
		}
		if expectedVersion != nil && *expectedVersion != entry.Version {
			return apperrors.Conflictf("journal entry %s is at version %d, expected %d", entry.EntryID, entry.Version, *expectedVersion)
		}

		now := s.now()
		switch to {
		case domain.Posted:
			if len(entry.Lines) == 0 {
				return apperrors.Validationf("journal entry %s has no lines", entry.EntryID)
			}
			debit, credit, balanced := accounting.CheckBalanced(entry.Lines)
			if !balanced {
				return apperrors.Validationf("journal entry %s is unbalanced: debits %s, credits %s", entry.EntryID, debit, credit)
			}
			entry.PostedAt = &now
		case domain.Void:
			entry.VoidedAt = &now
		}

		previous := entry.Version
		entry.Status = to
		entry.Version++
		entry.LastUpdatedAt = now
		entry.LastUpdatedBy = userID
		if err := s.journalRepo.UpdateJournal(ctx, *entry, from, previous); err != nil {
			return err
		}
		result = *entry
		return nil
	})

	s.metrics.RecordTransition(name, outcomeOf(err))
	if err != nil {
		if !isExpected(err) {
			s.LogError(ctx, err, "Journal transition failed", slog.String("entry_id", entryID), slog.String("transition", name))
		} else {
			s.LogDebug(ctx, "Journal transition rejected", slog.String("entry_id", entryID), slog.String("transition", name), slog.String("reason", err.Error()))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Journal transition applied", slog.String("entry_id", entryID), slog.String("transition", name), slog.String("status", string(result.Status)))
	return &result, nil
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case errors.Is(err, apperrors.ErrConflict):
		return metrics.OutcomeConflict
	case errors.Is(err, apperrors.ErrValidation):
		return metrics.OutcomeValidation
	case errors.Is(err, apperrors.ErrNotFound):
		return metrics.OutcomeNotFound
	default:
		return metrics.OutcomeError
	}
}
