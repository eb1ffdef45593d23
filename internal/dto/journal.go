package dto

import (
	"encoding/json"
	"time"

	"github.com/SscSPs/athena_ledger/internal/core/domain"
	"github.com/SscSPs/athena_ledger/internal/utils/money"
)

// JournalLineRequest is one debit or credit in a create/update request.
// Amounts are decimal strings (or JSON numbers) with at most two fractional digits.
type JournalLineRequest struct {
	AccountID   string       `json:"accountID" binding:"required"`
	Debit       money.Amount `json:"debit" swaggertype:"string" example:"100.00"`
	Credit      money.Amount `json:"credit" swaggertype:"string" example:"0.00"`
	Description *string      `json:"description"`
}

// CreateJournalRequest defines the data needed to create a DRAFT journal entry.
type CreateJournalRequest struct {
	Description string               `json:"description" binding:"required"`
	Reference   *string              `json:"reference"`
	EntryDate   *time.Time           `json:"entryDate"` // Defaults to now
	Metadata    json.RawMessage      `json:"metadata" swaggertype:"object"`
	Lines       []JournalLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// UpdateJournalRequest defines the changes allowed on a DRAFT entry.
// Lines, when present, replace the whole line set.
type UpdateJournalRequest struct {
	Description     *string              `json:"description"`
	Reference       *string              `json:"reference"`
	EntryDate       *time.Time           `json:"entryDate"`
	Metadata        json.RawMessage      `json:"metadata" swaggertype:"object"`
	Lines           []JournalLineRequest `json:"lines" binding:"omitempty,dive"`
	ExpectedVersion *int64               `json:"expectedVersion"`
}

// TransitionRequest is the optional body of post and void calls.
type TransitionRequest struct {
	ExpectedVersion *int64 `json:"expectedVersion"`
}

// ListJournalsParams defines query parameters for listing entries.
type ListJournalsParams struct {
	Status    *domain.JournalStatus `form:"status" binding:"omitempty,oneof=DRAFT POSTED VOID"`
	Limit     int                   `form:"limit"`
	NextToken *string               `form:"nextToken"`
}

// JournalLineResponse defines the data returned for a journal line.
type JournalLineResponse struct {
	LineID      string       `json:"lineID"`
	AccountID   string       `json:"accountID"`
	Debit       money.Amount `json:"debit" swaggertype:"string"`
	Credit      money.Amount `json:"credit" swaggertype:"string"`
	Description *string      `json:"description,omitempty"`
	LineNo      int          `json:"lineNo"`
}

// JournalResponse defines the data returned for a journal entry.
type JournalResponse struct {
	EntryID      string                `json:"entryID"`
	Description  string                `json:"description"`
	Reference    *string               `json:"reference,omitempty"`
	EntryDate    time.Time             `json:"entryDate"`
	Status       domain.JournalStatus  `json:"status"`
	CurrencyCode string                `json:"currencyCode"`
	Metadata     json.RawMessage       `json:"metadata,omitempty" swaggertype:"object"`
	PostedAt     *time.Time            `json:"postedAt,omitempty"`
	VoidedAt     *time.Time            `json:"voidedAt,omitempty"`
	Version      int64                 `json:"version"`
	Lines        []JournalLineResponse `json:"lines"`
	CreatedAt    time.Time             `json:"createdAt"`
	CreatedBy    string                `json:"createdBy"`
	UpdatedAt    time.Time             `json:"updatedAt"`
	UpdatedBy    string                `json:"updatedBy"`
}

// ListJournalsResponse wraps a page of entries.
type ListJournalsResponse struct {
	Entries   []JournalResponse `json:"entries"`
	NextToken *string           `json:"nextToken,omitempty"` // Absent on the last page
}

// ToJournalLines converts request lines into domain lines numbered from 1.
func ToJournalLines(reqs []JournalLineRequest) []domain.JournalLine {
	lines := make([]domain.JournalLine, len(reqs))
	for i, r := range reqs {
		lines[i] = domain.JournalLine{
			AccountID:   r.AccountID,
			Debit:       r.Debit,
			Credit:      r.Credit,
			Description: r.Description,
			LineNo:      i + 1,
		}
	}
	return lines
}

// ToJournalResponse converts a domain.JournalEntry to JournalResponse DTO.
func ToJournalResponse(e *domain.JournalEntry) JournalResponse {
	lines := make([]JournalLineResponse, len(e.Lines))
	for i, l := range e.Lines {
		lines[i] = JournalLineResponse{
			LineID:      l.LineID,
			AccountID:   l.AccountID,
			Debit:       l.Debit,
			Credit:      l.Credit,
			Description: l.Description,
			LineNo:      l.LineNo,
		}
	}
	return JournalResponse{
		EntryID:      e.EntryID,
		Description:  e.Description,
		Reference:    e.Reference,
		EntryDate:    e.EntryDate,
		Status:       e.Status,
		CurrencyCode: e.CurrencyCode,
		Metadata:     e.Metadata,
		PostedAt:     e.PostedAt,
		VoidedAt:     e.VoidedAt,
		Version:      e.Version,
		Lines:        lines,
		CreatedAt:    e.CreatedAt,
		CreatedBy:    e.CreatedBy,
		UpdatedAt:    e.LastUpdatedAt,
		UpdatedBy:    e.LastUpdatedBy,
	}
}

// ToJournalResponses converts a slice of entries.
func ToJournalResponses(entries []domain.JournalEntry) []JournalResponse {
	res := make([]JournalResponse, len(entries))
	for i := range entries {
		res[i] = ToJournalResponse(&entries[i])
	}
	return res
}
