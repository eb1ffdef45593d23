package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/athena_ledger/internal/core/domain"
)

// ReportingRepository defines operations for retrieving financial report data
type ReportingRepository interface {
	// SumPostedActivity totals debit and credit per account over lines of POSTED entries in scope,
	// optionally restricted to entries dated on or before asOf. Accounts without activity are omitted.
	SumPostedActivity(ctx context.Context, scope domain.Scope, asOf *time.Time) (map[string]domain.AccountActivity, error)
}
