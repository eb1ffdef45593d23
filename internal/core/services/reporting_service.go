package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/SscSPs/athena_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/athena_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/athena_ledger/internal/core/ports/services"
	"github.com/SscSPs/athena_ledger/internal/utils/accounting"
	"github.com/SscSPs/athena_ledger/internal/utils/money"
)

type reportingService struct {
	BaseService
	txManager     portsrepo.TransactionManager
	accountRepo   portsrepo.AccountReader
	reportingRepo portsrepo.ReportingRepository
}

// NewReportingService creates a new reporting service.
func NewReportingService(txManager portsrepo.TransactionManager, accountRepo portsrepo.AccountReader, reportingRepo portsrepo.ReportingRepository, base BaseService) portssvc.ReportingService {
	return &reportingService{
		BaseService:   base,
		txManager:     txManager,
		accountRepo:   accountRepo,
		reportingRepo: reportingRepo,
	}
}

var _ portssvc.ReportingService = (*reportingService)(nil)

// TrialBalance lists every account in scope with its POSTED debit and credit
// totals. Nothing is cached; each call reads the store.
func (s *reportingService) TrialBalance(ctx context.Context, scope domain.Scope, asOf *time.Time) (*domain.TrialBalanceReport, error) {
	if err := scope.Validate(); err != nil {
		return nil, err
	}

	var (
		accounts []domain.Account
		activity map[string]domain.AccountActivity
	)
	// One transaction so both reads see the same snapshot.
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		if accounts, err = s.accountRepo.ListAccounts(ctx, scope); err != nil {
			return err
		}
		activity, err = s.reportingRepo.SumPostedActivity(ctx, scope, asOf)
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to load trial balance data", slog.String("scope", scope.String()))
		return nil, fmt.Errorf("failed to load trial balance data: %w", err)
	}

	report := &domain.TrialBalanceReport{
		Scope:       scope,
		AsOf:        asOf,
		GeneratedAt: s.now(),
		Rows:        make([]domain.TrialBalanceRow, 0, len(accounts)),
		Currencies:  []domain.CurrencyTotals{},
		TotalDebit:  money.Zero(),
		TotalCredit: money.Zero(),
	}
	byCurrency := make(map[string]*domain.CurrencyTotals)
	for _, acc := range accounts {
		act, ok := activity[acc.AccountID]
		if !ok {
			act = domain.AccountActivity{AccountID: acc.AccountID, TotalDebit: money.Zero(), TotalCredit: money.Zero()}
		}
		balance, err := accounting.NaturalBalance(acc.AccountType, act.TotalDebit, act.TotalCredit)
		if err != nil {
			return nil, fmt.Errorf("account %s: %w", acc.AccountID, err)
		}
		report.Rows = append(report.Rows, domain.TrialBalanceRow{
			AccountID:    acc.AccountID,
			AccountName:  acc.Name,
			AccountCode:  acc.Code,
			AccountType:  acc.AccountType,
			CurrencyCode: acc.CurrencyCode,
			TotalDebit:   act.TotalDebit,
			TotalCredit:  act.TotalCredit,
			Balance:      balance,
		})

		totals, ok := byCurrency[acc.CurrencyCode]
		if !ok {
			totals = &domain.CurrencyTotals{CurrencyCode: acc.CurrencyCode, TotalDebit: money.Zero(), TotalCredit: money.Zero()}
			byCurrency[acc.CurrencyCode] = totals
		}
		totals.TotalDebit = totals.TotalDebit.Add(act.TotalDebit)
		totals.TotalCredit = totals.TotalCredit.Add(act.TotalCredit)
		report.TotalDebit = report.TotalDebit.Add(act.TotalDebit)
		report.TotalCredit = report.TotalCredit.Add(act.TotalCredit)
	}

	report.Balanced = true
	for _, totals := range byCurrency {
		totals.Balanced = totals.TotalDebit.Equal(totals.TotalCredit)
		report.Balanced = report.Balanced && totals.Balanced
		report.Currencies = append(report.Currencies, *totals)
	}
	sort.Slice(report.Currencies, func(i, j int) bool {
		return report.Currencies[i].CurrencyCode < report.Currencies[j].CurrencyCode
	})

	s.LogDebug(ctx, "Trial balance generated", slog.Int("rows", len(report.Rows)), slog.Bool("balanced", report.Balanced))
	return report, nil
}
