package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/athena_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/athena_ledger/internal/core/ports/repositories"
	"github.com/stretchr/testify/mock"
)

// passthroughTx runs fn directly; the mocks do not model isolation.
type passthroughTx struct{}

func (passthroughTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, scope domain.Scope, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, scope, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, scope domain.Scope, code string) (*domain.Account, error) {
	args := m.Called(ctx, scope, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, scope domain.Scope, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, scope, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, scope domain.Scope) ([]domain.Account, error) {
	args := m.Called(ctx, scope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	return m.Called(ctx, account).Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	return m.Called(ctx, account).Error(0)
}

func (m *MockAccountRepository) SoftDeleteAccount(ctx context.Context, scope domain.Scope, accountID string, userID string, now time.Time) error {
	return m.Called(ctx, scope, accountID, userID, now).Error(0)
}

func (m *MockAccountRepository) LockAccountForUpdate(ctx context.Context, scope domain.Scope, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, scope, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) LockAccountsForShare(ctx context.Context, scope domain.Scope, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, scope, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

// --- Mock JournalRepository ---
type MockJournalRepository struct {
	mock.Mock
}

func (m *MockJournalRepository) FindJournalByID(ctx context.Context, scope domain.Scope, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, scope, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) FindJournalForUpdate(ctx context.Context, scope domain.Scope, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, scope, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) ListJournals(ctx context.Context, scope domain.Scope, status *domain.JournalStatus, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	args := m.Called(ctx, scope, status, limit, nextToken)
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	if args.Get(0) == nil {
		return nil, token, args.Error(2)
	}
	return args.Get(0).([]domain.JournalEntry), token, args.Error(2)
}

func (m *MockJournalRepository) AccountHasLines(ctx context.Context, accountID string, statuses ...domain.JournalStatus) (bool, error) {
	args := m.Called(ctx, accountID, statuses)
	return args.Bool(0), args.Error(1)
}

func (m *MockJournalRepository) SaveJournal(ctx context.Context, entry domain.JournalEntry) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *MockJournalRepository) UpdateJournal(ctx context.Context, entry domain.JournalEntry, expectedStatus domain.JournalStatus, expectedVersion int64) error {
	return m.Called(ctx, entry, expectedStatus, expectedVersion).Error(0)
}

func (m *MockJournalRepository) ReplaceJournalLines(ctx context.Context, entryID string, lines []domain.JournalLine) error {
	return m.Called(ctx, entryID, lines).Error(0)
}

var _ portsrepo.JournalRepositoryFacade = (*MockJournalRepository)(nil)

// --- Mock ReportingRepository ---
type MockReportingRepository struct {
	mock.Mock
}

func (m *MockReportingRepository) SumPostedActivity(ctx context.Context, scope domain.Scope, asOf *time.Time) (map[string]domain.AccountActivity, error) {
	args := m.Called(ctx, scope, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.AccountActivity), args.Error(1)
}

var _ portsrepo.ReportingRepository = (*MockReportingRepository)(nil)
