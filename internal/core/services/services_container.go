package services

import (
	portsrepo "github.com/SscSPs/athena_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/athena_ledger/internal/core/ports/services"
	"github.com/SscSPs/athena_ledger/internal/platform/config"
	"github.com/SscSPs/athena_ledger/internal/platform/metrics"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, m *metrics.Metrics) *portssvc.ServiceContainer {
	base := BaseService{}

	return &portssvc.ServiceContainer{
		Account: NewAccountService(
			repos.TxManager,
			repos.AccountRepo,
			repos.JournalRepo,
			WithAccountBase(base),
			WithCurrencies(cfg.DefaultCurrency, cfg.AllowedCurrencies),
		),
		Journal:   NewJournalService(repos.TxManager, repos.AccountRepo, repos.JournalRepo, base),
		Posting:   NewPostingService(repos.TxManager, repos.JournalRepo, m, base),
		Reporting: NewReportingService(repos.TxManager, repos.AccountRepo, repos.ReportingRepo, base),
	}
}
