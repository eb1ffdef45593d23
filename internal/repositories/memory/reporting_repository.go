package memory

import (
	"context"
	"time"

	"github.com/SscSPs/athena_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/athena_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/athena_ledger/internal/utils/money"
)

// ReportingRepository aggregates posted lines of the in-memory store.
type ReportingRepository struct {
	store *Store
}

var _ portsrepo.ReportingRepository = (*ReportingRepository)(nil)

func (r *ReportingRepository) SumPostedActivity(ctx context.Context, scope domain.Scope, asOf *time.Time) (map[string]domain.AccountActivity, error) {
	out := make(map[string]domain.AccountActivity)
	err := r.store.read(ctx, func() error {
		for entryID, header := range r.store.entries {
			if header.Status != domain.Posted || !header.Scope.Equal(scope) {
				continue
			}
			if asOf != nil && header.EntryDate.After(*asOf) {
				continue
			}
			for _, l := range r.store.lines[entryID] {
				act, ok := out[l.AccountID]
				if !ok {
					act = domain.AccountActivity{AccountID: l.AccountID, TotalDebit: money.Zero(), TotalCredit: money.Zero()}
				}
				act.TotalDebit = act.TotalDebit.Add(l.Debit)
				act.TotalCredit = act.TotalCredit.Add(l.Credit)
				out[l.AccountID] = act
			}
		}
		return nil
	})
	return out, err
}
