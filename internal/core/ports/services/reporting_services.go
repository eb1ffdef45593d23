package services

import (
	"context"
	"time"

	"github.com/SscSPs/athena_ledger/internal/core/domain"
)

// ReportingService defines operations for generating financial reports
type ReportingService interface {
	// TrialBalance derives the trial balance from POSTED entries, optionally as of a date (inclusive).
	TrialBalance(ctx context.Context, scope domain.Scope, asOf *time.Time) (*domain.TrialBalanceReport, error)
}
