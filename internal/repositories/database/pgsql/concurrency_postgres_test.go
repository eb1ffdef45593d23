//go:build postgres

package pgsql_test

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"testing"

	"github.com/SscSPs/athena_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/athena_ledger/internal/core/ports/services"
	"github.com/SscSPs/athena_ledger/internal/core/services"
	"github.com/SscSPs/athena_ledger/internal/dto"
	"github.com/SscSPs/athena_ledger/internal/platform/config"
	"github.com/SscSPs/athena_ledger/internal/platform/ids"
	"github.com/SscSPs/athena_ledger/internal/repositories/database/pgsql"
	"github.com/SscSPs/athena_ledger/internal/utils/money"
	"github.com/SscSPs/athena_ledger/pkg/database"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// Run with: LEDGER_TEST_PGSQL_URL=postgres://... go test -tags postgres ./internal/repositories/database/pgsql/
const raceRounds = 40

func openLedger(t *testing.T) (*portssvc.ServiceContainer, *pgxpool.Pool) {
	t.Helper()
	url := os.Getenv("LEDGER_TEST_PGSQL_URL")
	if url == "" {
		t.Skip("LEDGER_TEST_PGSQL_URL is not set")
	}
	ctx := context.Background()

	db, err := database.OpenMigrationDB(ctx, url)
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(db, "file://../../../../migrations", slog.Default()))
	require.NoError(t, db.Close())

	pool, err := database.NewPgxPool(ctx, url, true)
	require.NoError(t, err)
	t.Cleanup(func() { database.ClosePgxPool(pool) })

	cfg := &config.Config{DefaultCurrency: "AUD", AllowedCurrencies: []string{"AUD", "USD"}}
	return services.NewServiceContainer(cfg, pgsql.NewRepositoryProvider(pool), nil), pool
}

type raceFixture struct {
	scope domain.Scope
	cash  string
	sales string
}

func newRaceFixture(t *testing.T, ledger *portssvc.ServiceContainer) raceFixture {
	t.Helper()
	ctx := context.Background()
	scope := domain.OrganizationScope("org_" + ids.New())
	cash, err := ledger.Account.CreateAccount(ctx, scope, dto.CreateAccountRequest{Name: "Cash", AccountType: domain.Asset}, "usr_1")
	require.NoError(t, err)
	sales, err := ledger.Account.CreateAccount(ctx, scope, dto.CreateAccountRequest{Name: "Sales", AccountType: domain.Revenue}, "usr_1")
	require.NoError(t, err)
	return raceFixture{scope: scope, cash: cash.AccountID, sales: sales.AccountID}
}

func (f raceFixture) createEntry(ledger *portssvc.ServiceContainer) error {
	_, err := ledger.Journal.CreateJournal(context.Background(), f.scope, dto.CreateJournalRequest{
		Description: "sale",
		Lines: []dto.JournalLineRequest{
			{AccountID: f.cash, Debit: money.MustParse("10.00")},
			{AccountID: f.sales, Credit: money.MustParse("10.00")},
		},
	}, "usr_1")
	return err
}

// race runs both functions at the same instant and returns their errors.
func race(a, b func() error) (errA, errB error) {
	var wg sync.WaitGroup
	start := make(chan struct{})
	wg.Add(2)
	go func() { defer wg.Done(); <-start; errA = a() }()
	go func() { defer wg.Done(); <-start; errB = b() }()
	close(start)
	wg.Wait()
	return errA, errB
}

func TestPostgres_DeleteAccountRacingNewEntry(t *testing.T) {
	ledger, pool := openLedger(t)
	ctx := context.Background()

	for i := 0; i < raceRounds; i++ {
		f := newRaceFixture(t, ledger)
		createErr, deleteErr := race(
			func() error { return f.createEntry(ledger) },
			func() error { return ledger.Account.DeleteAccount(ctx, f.scope, f.cash, "usr_1") },
		)
		if createErr == nil && deleteErr == nil {
			t.Fatalf("round %d: account deleted while a new entry references it", i)
		}

		var orphaned bool
		err := pool.QueryRow(ctx, `
			SELECT EXISTS (
				SELECT 1 FROM journal_lines l
				JOIN journal_entries e ON e.entry_id = l.entry_id
				JOIN ledger_accounts a ON a.account_id = l.account_id
				WHERE a.account_id = $1 AND a.deleted_at IS NOT NULL AND e.status IN ('DRAFT', 'POSTED')
			)`, f.cash).Scan(&orphaned)
		require.NoError(t, err)
		require.False(t, orphaned, "round %d", i)
	}
}

func TestPostgres_CurrencyChangeRacingNewEntry(t *testing.T) {
	ledger, _ := openLedger(t)
	ctx := context.Background()
	usd := "USD"

	for i := 0; i < raceRounds; i++ {
		f := newRaceFixture(t, ledger)
		createErr, updateErr := race(
			func() error { return f.createEntry(ledger) },
			func() error {
				_, err := ledger.Account.UpdateAccount(ctx, f.scope, f.cash, dto.UpdateAccountRequest{CurrencyCode: &usd}, "usr_1")
				return err
			},
		)
		if createErr == nil && updateErr == nil {
			t.Fatalf("round %d: currency changed while a new entry references the account", i)
		}
	}
}
