package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalStatus mirrors the journal_entries.status CHECK constraint.
type JournalStatus string

// JournalEntry is a row of journal_entries.
type JournalEntry struct {
	EntryID        string        `db:"entry_id"`
	OrganizationID *string       `db:"organization_id"`
	UserID         *string       `db:"user_id"`
	Description    string        `db:"description"`
	Reference      *string       `db:"reference"`
	EntryDate      time.Time     `db:"entry_date"`
	Status         JournalStatus `db:"status"`
	CurrencyCode   string        `db:"currency_code"`
	Metadata       []byte        `db:"metadata"` // JSONB
	PostedAt       *time.Time    `db:"posted_at"`
	VoidedAt       *time.Time    `db:"voided_at"`
	AuditFields
}

// JournalLine is a row of journal_lines. Amounts are NUMERIC(20,2).
type JournalLine struct {
	LineID      string          `db:"line_id"`
	EntryID     string          `db:"entry_id"`
	AccountID   string          `db:"account_id"`
	Debit       decimal.Decimal `db:"debit"`
	Credit      decimal.Decimal `db:"credit"`
	Description *string         `db:"description"`
	LineNo      int             `db:"line_no"`
}
