package pgsql

import (
	"context"
	"time"

	"github.com/SscSPs/athena_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/athena_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/athena_ledger/internal/utils/money"
	"github.com/shopspring/decimal"
)

type reportingRepository struct {
	BaseRepository
}

func newReportingRepository(pool PgxPool) portsrepo.ReportingRepository {
	return &reportingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

func (r *reportingRepository) SumPostedActivity(ctx context.Context, scope domain.Scope, asOf *time.Time) (map[string]domain.AccountActivity, error) {
	scopeClause, owner := scopeFilter("e", scope, 1)
	query := `
		SELECT
			l.account_id,
			COALESCE(SUM(l.debit), 0) AS total_debit,
			COALESCE(SUM(l.credit), 0) AS total_credit
		FROM journal_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE e.status = 'POSTED'
			AND ` + scopeClause + `
			AND ($2::timestamptz IS NULL OR e.entry_date <= $2)
		GROUP BY l.account_id`

	rows, err := r.db(ctx).Query(ctx, query, owner, asOf)
	if err != nil {
		return nil, mapPgError(err, "sum posted activity")
	}
	defer rows.Close()

	out := make(map[string]domain.AccountActivity)
	for rows.Next() {
		var accountID string
		var debit, credit decimal.Decimal
		if err := rows.Scan(&accountID, &debit, &credit); err != nil {
			return nil, mapPgError(err, "scan account activity")
		}
		act := domain.AccountActivity{AccountID: accountID}
		if act.TotalDebit, err = money.FromDecimal(debit); err != nil {
			return nil, err
		}
		if act.TotalCredit, err = money.FromDecimal(credit); err != nil {
			return nil, err
		}
		out[accountID] = act
	}
	if err := rows.Err(); err != nil {
		return nil, mapPgError(err, "sum posted activity")
	}
	return out, nil
}
