package domain

import (
	"encoding/json"
	"time"
)

// JournalStatus indicates the lifecycle state of a journal entry.
type JournalStatus string

const (
	Draft  JournalStatus = "DRAFT"
	Posted JournalStatus = "POSTED"
	Void   JournalStatus = "VOID"
)

// IsValid reports whether s is one of the three known states.
func (s JournalStatus) IsValid() bool {
	switch s {
	case Draft, Posted, Void:
		return true
	}
	return false
}

// JournalEntry is a dated business event made of balanced debit and credit lines.
type JournalEntry struct {
	EntryID      string          `json:"entryID"`
	Scope        Scope           `json:"scope"`
	Description  string          `json:"description"`
	Reference    *string         `json:"reference,omitempty"`
	EntryDate    time.Time       `json:"entryDate"`    // Business date, distinct from CreatedAt
	Status       JournalStatus   `json:"status"`       // Default: DRAFT
	CurrencyCode string          `json:"currencyCode"` // Working currency, taken from the first line's account
	Metadata     json.RawMessage `json:"metadata,omitempty"`
	PostedAt     *time.Time      `json:"postedAt,omitempty"`
	VoidedAt     *time.Time      `json:"voidedAt,omitempty"`
	Lines        []JournalLine   `json:"lines"`
	AuditFields
}

// IsEditable reports whether the entry's fields and lines may still change.
func (e *JournalEntry) IsEditable() bool {
	return e.Status == Draft
}
