package mapping

import (
	"fmt"

	"github.com/SscSPs/athena_ledger/internal/core/domain"
	"github.com/SscSPs/athena_ledger/internal/models"
	"github.com/SscSPs/athena_ledger/internal/utils/money"
)

// ToModelJournalEntry converts a domain entry header to its row.
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	orgID, userID := ToModelScope(d.Scope)
	var metadata []byte
	if len(d.Metadata) > 0 {
		metadata = []byte(d.Metadata)
	}
	return models.JournalEntry{
		EntryID:        d.EntryID,
		OrganizationID: orgID,
		UserID:         userID,
		Description:    d.Description,
		Reference:      d.Reference,
		EntryDate:      d.EntryDate,
		Status:         models.JournalStatus(d.Status),
		CurrencyCode:   d.CurrencyCode,
		Metadata:       metadata,
		PostedAt:       d.PostedAt,
		VoidedAt:       d.VoidedAt,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntry converts an entry row and its line rows to the domain entry.
func ToDomainJournalEntry(m models.JournalEntry, lines []models.JournalLine) (domain.JournalEntry, error) {
	d := domain.JournalEntry{
		EntryID:      m.EntryID,
		Scope:        ToDomainScope(m.OrganizationID, m.UserID),
		Description:  m.Description,
		Reference:    m.Reference,
		EntryDate:    m.EntryDate,
		Status:       domain.JournalStatus(m.Status),
		CurrencyCode: m.CurrencyCode,
		PostedAt:     m.PostedAt,
		VoidedAt:     m.VoidedAt,
		Lines:        make([]domain.JournalLine, 0, len(lines)),
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
	if len(m.Metadata) > 0 {
		d.Metadata = append([]byte(nil), m.Metadata...)
	}
	for _, l := range lines {
		line, err := ToDomainJournalLine(l)
		if err != nil {
			return domain.JournalEntry{}, err
		}
		d.Lines = append(d.Lines, line)
	}
	return d, nil
}

// ToModelJournalLine converts a domain line to its row.
func ToModelJournalLine(d domain.JournalLine) models.JournalLine {
	return models.JournalLine{
		LineID:      d.LineID,
		EntryID:     d.EntryID,
		AccountID:   d.AccountID,
		Debit:       d.Debit.Decimal(),
		Credit:      d.Credit.Decimal(),
		Description: d.Description,
		LineNo:      d.LineNo,
	}
}

// ToDomainJournalLine converts a line row, checking its amounts convert exactly.
func ToDomainJournalLine(m models.JournalLine) (domain.JournalLine, error) {
	debit, err := money.FromDecimal(m.Debit)
	if err != nil {
		return domain.JournalLine{}, fmt.Errorf("line %s debit: %w", m.LineID, err)
	}
	credit, err := money.FromDecimal(m.Credit)
	if err != nil {
		return domain.JournalLine{}, fmt.Errorf("line %s credit: %w", m.LineID, err)
	}
	return domain.JournalLine{
		LineID:      m.LineID,
		EntryID:     m.EntryID,
		AccountID:   m.AccountID,
		Debit:       debit,
		Credit:      credit,
		Description: m.Description,
		LineNo:      m.LineNo,
	}, nil
}
