package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/athena_ledger/internal/apperrors"
	"github.com/SscSPs/athena_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/athena_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/athena_ledger/internal/core/ports/services"
	"github.com/SscSPs/athena_ledger/internal/dto"
	"github.com/SscSPs/athena_ledger/internal/platform/ids"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 200

	// ReversalReferencePrefix marks the reference of an entry created by CreateReversal.
	ReversalReferencePrefix = "REVERSAL:"
)

// journalService provides creation, editing and reading of journal entries.
// Lifecycle transitions live in the posting service.
type journalService struct {
	BaseService
	txManager   portsrepo.TransactionManager
	accountRepo portsrepo.AccountRepositoryFacade
	journalRepo portsrepo.JournalRepositoryFacade
}

// NewJournalService creates a new journal service.
func NewJournalService(txManager portsrepo.TransactionManager, accountRepo portsrepo.AccountRepositoryFacade, journalRepo portsrepo.JournalRepositoryFacade, base BaseService) portssvc.JournalSvcFacade {
	return &journalService{
		BaseService: base,
		txManager:   txManager,
		accountRepo: accountRepo,
		journalRepo: journalRepo,
	}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// normalizeMetadata accepts an absent value or a JSON object. Literal null clears it.
func normalizeMetadata(raw json.RawMessage) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	if trimmed[0] != '{' || !json.Valid(trimmed) {
		return nil, apperrors.Validationf("metadata must be a JSON object")
	}
	return json.RawMessage(trimmed), nil
}

func validateLines(lines []domain.JournalLine) error {
	for _, l := range lines {
		if err := l.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// resolveLineAccounts locks the accounts referenced by lines against deletion
// and structural change, and returns the entry's working currency.
func (s *journalService) resolveLineAccounts(ctx context.Context, scope domain.Scope, lines []domain.JournalLine) (string, error) {
	if len(lines) == 0 {
		return "", nil
	}
	seen := make(map[string]struct{}, len(lines))
	accountIDs := make([]string, 0, len(lines))
	for _, l := range lines {
		if _, ok := seen[l.AccountID]; !ok {
			seen[l.AccountID] = struct{}{}
			accountIDs = append(accountIDs, l.AccountID)
		}
	}

	accounts, err := s.accountRepo.LockAccountsForShare(ctx, scope, accountIDs)
	if err != nil {
		return "", fmt.Errorf("failed to lock accounts: %w", err)
	}

	currency := ""
	for _, l := range lines {
		acc, ok := accounts[l.AccountID]
		if !ok {
			return "", apperrors.Validationf("line %d: account %s not found", l.LineNo, l.AccountID)
		}
		if !acc.IsActive {
			return "", apperrors.Validationf("line %d: account %s is inactive", l.LineNo, l.AccountID)
		}
		if currency == "" {
			currency = acc.CurrencyCode
		} else if acc.CurrencyCode != currency {
			return "", apperrors.Validationf("line %d: account %s currency %s does not match entry currency %s", l.LineNo, l.AccountID, acc.CurrencyCode, currency)
		}
	}
	return currency, nil
}

func assignLineIDs(entryID string, lines []domain.JournalLine) {
	for i := range lines {
		lines[i].LineID = ids.New()
		lines[i].EntryID = entryID
		lines[i].LineNo = i + 1
	}
}

// CreateJournal validates and stores a new DRAFT entry.
func (s *journalService) CreateJournal(ctx context.Context, scope domain.Scope, req dto.CreateJournalRequest, userID string) (*domain.JournalEntry, error) {
	if err := scope.Validate(); err != nil {
		return nil, err
	}
	description := strings.TrimSpace(req.Description)
	if description == "" {
		return nil, apperrors.Validationf("journal description is required")
	}
	if len(req.Lines) == 0 {
		return nil, apperrors.Validationf("journal entry requires at least one line")
	}
	lines := dto.ToJournalLines(req.Lines)
	if err := validateLines(lines); err != nil {
		return nil, err
	}
	metadata, err := normalizeMetadata(req.Metadata)
	if err != nil {
		return nil, err
	}

	now := s.now()
	entryDate := now
	if req.EntryDate != nil {
		entryDate = req.EntryDate.UTC()
	}

	entry := domain.JournalEntry{
		EntryID:     ids.New(),
		Scope:       scope,
		Description: description,
		Reference:   trimmedOrNil(req.Reference),
		EntryDate:   entryDate,
		Status:      domain.Draft,
		Metadata:    metadata,
		Lines:       lines,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
			Version:       1,
		},
	}
	assignLineIDs(entry.EntryID, entry.Lines)

	err = s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		currency, err := s.resolveLineAccounts(ctx, scope, entry.Lines)
		if err != nil {
			return err
		}
		entry.CurrencyCode = currency
		return s.journalRepo.SaveJournal(ctx, entry)
	})
	if err != nil {
		if !isExpected(err) {
			s.LogError(ctx, err, "Failed to save journal entry", slog.String("scope", scope.String()))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Journal entry created", slog.String("entry_id", entry.EntryID), slog.Int("lines", len(entry.Lines)))
	return &entry, nil
}

// GetJournalByID retrieves an entry with its lines.
func (s *journalService) GetJournalByID(ctx context.Context, scope domain.Scope, entryID string) (*domain.JournalEntry, error) {
	if err := scope.Validate(); err != nil {
		return nil, err
	}
	entry, err := s.journalRepo.FindJournalByID(ctx, scope, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find journal entry", slog.String("entry_id", entryID))
		}
		return nil, err
	}
	return entry, nil
}

// ListJournals returns one page of entries, newest entry date first.
func (s *journalService) ListJournals(ctx context.Context, scope domain.Scope, params dto.ListJournalsParams) (*dto.ListJournalsResponse, error) {
	if err := scope.Validate(); err != nil {
		return nil, err
	}
	limit := params.Limit
	switch {
	case limit < 0:
		return nil, apperrors.Validationf("limit must not be negative")
	case limit == 0:
		limit = DefaultListLimit
	case limit > MaxListLimit:
		limit = MaxListLimit
	}
	if params.Status != nil && !params.Status.IsValid() {
		return nil, apperrors.Validationf("invalid status %q", *params.Status)
	}

	entries, nextToken, err := s.journalRepo.ListJournals(ctx, scope, params.Status, limit, params.NextToken)
	if err != nil {
		if !isExpected(err) {
			s.LogError(ctx, err, "Failed to list journal entries", slog.String("scope", scope.String()))
		}
		return nil, err
	}

	return &dto.ListJournalsResponse{
		Entries:   dto.ToJournalResponses(entries),
		NextToken: nextToken,
	}, nil
}

// UpdateJournal edits a DRAFT entry. Lines, when provided, replace the whole set.
func (s *journalService) UpdateJournal(ctx context.Context, scope domain.Scope, entryID string, req dto.UpdateJournalRequest, userID string) (*domain.JournalEntry, error) {
	if err := scope.Validate(); err != nil {
		return nil, err
	}

	var updated domain.JournalEntry
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		entry, err := s.journalRepo.FindJournalForUpdate(ctx, scope, entryID)
		if err != nil {
			return err
		}
		if !entry.IsEditable() {
			return apperrors.Conflictf("journal entry %s is %s and can no longer be edited", entry.EntryID, entry.Status)
		}
		if req.ExpectedVersion != nil && *req.ExpectedVersion != entry.Version {
			return apperrors.Conflictf("journal entry %s is at version %d, expected %d", entry.EntryID, entry.Version, *req.ExpectedVersion)
		}

		if req.Description != nil {
			description := strings.TrimSpace(*req.Description)
			if description == "" {
				return apperrors.Validationf("journal description is required")
			}
			entry.Description = description
		}
		if req.Reference != nil {
			entry.Reference = trimmedOrNil(req.Reference)
		}
		if req.EntryDate != nil {
			entry.EntryDate = req.EntryDate.UTC()
		}
		if req.Metadata != nil {
			metadata, err := normalizeMetadata(req.Metadata)
			if err != nil {
				return err
			}
			entry.Metadata = metadata
		}

		if req.Lines != nil {
			lines := dto.ToJournalLines(req.Lines)
			if err := validateLines(lines); err != nil {
				return err
			}
			currency, err := s.resolveLineAccounts(ctx, scope, lines)
			if err != nil {
				return err
			}
			assignLineIDs(entry.EntryID, lines)
			if err := s.journalRepo.ReplaceJournalLines(ctx, entry.EntryID, lines); err != nil {
				return err
			}
			entry.Lines = lines
			if currency != "" {
				entry.CurrencyCode = currency
			}
		}

		previous := entry.Version
		entry.Version++
		entry.LastUpdatedAt = s.now()
		entry.LastUpdatedBy = userID
		if err := s.journalRepo.UpdateJournal(ctx, *entry, domain.Draft, previous); err != nil {
			return err
		}
		updated = *entry
		return nil
	})
	if err != nil {
		if !isExpected(err) {
			s.LogError(ctx, err, "Failed to update journal entry", slog.String("entry_id", entryID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Journal entry updated", slog.String("entry_id", entryID), slog.Int64("version", updated.Version))
	return &updated, nil
}

// CreateReversal drafts a new entry that undoes a POSTED entry when posted.
// The original entry is left untouched.
func (s *journalService) CreateReversal(ctx context.Context, scope domain.Scope, entryID string, userID string) (*domain.JournalEntry, error) {
	if err := scope.Validate(); err != nil {
		return nil, err
	}

	var reversal domain.JournalEntry
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		original, err := s.journalRepo.FindJournalByID(ctx, scope, entryID)
		if err != nil {
			return err
		}
		if original.Status != domain.Posted {
			return apperrors.Conflictf("journal entry %s is %s; only posted entries can be reversed", original.EntryID, original.Status)
		}

		lines := make([]domain.JournalLine, len(original.Lines))
		for i, l := range original.Lines {
			lines[i] = l.Reversed()
		}
		currency, err := s.resolveLineAccounts(ctx, scope, lines)
		if err != nil {
			return err
		}

		metadata, err := json.Marshal(map[string]string{"reversesEntryId": original.EntryID})
		if err != nil {
			return err
		}
		reference := ReversalReferencePrefix + original.EntryID
		now := s.now()
		reversal = domain.JournalEntry{
			EntryID:      ids.New(),
			Scope:        scope,
			Description:  fmt.Sprintf("Reversal of: %s", original.Description),
			Reference:    &reference,
			EntryDate:    now,
			Status:       domain.Draft,
			CurrencyCode: currency,
			Metadata:     metadata,
			Lines:        lines,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
				Version:       1,
			},
		}
		assignLineIDs(reversal.EntryID, reversal.Lines)
		return s.journalRepo.SaveJournal(ctx, reversal)
	})
	if err != nil {
		if !isExpected(err) {
			s.LogError(ctx, err, "Failed to create reversal", slog.String("entry_id", entryID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Reversal drafted", slog.String("entry_id", reversal.EntryID), slog.String("reverses_entry_id", entryID))
	return &reversal, nil
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
