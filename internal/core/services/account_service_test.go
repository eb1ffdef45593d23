package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/athena_ledger/internal/apperrors"
	"github.com/SscSPs/athena_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/athena_ledger/internal/core/ports/services"
	"github.com/SscSPs/athena_ledger/internal/core/services"
	"github.com/SscSPs/athena_ledger/internal/dto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

var fixedNow = time.Date(2024, 3, 31, 9, 30, 0, 0, time.UTC)

type AccountServiceTestSuite struct {
	suite.Suite
	ctx         context.Context
	scope       domain.Scope
	accountRepo *MockAccountRepository
	journalRepo *MockJournalRepository
	svc         portssvc.AccountSvcFacade
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.scope = domain.OrganizationScope("org_1")
	suite.accountRepo = new(MockAccountRepository)
	suite.journalRepo = new(MockJournalRepository)
	suite.svc = services.NewAccountService(
		passthroughTx{},
		suite.accountRepo,
		suite.journalRepo,
		services.WithAccountBase(services.BaseService{Now: func() time.Time { return fixedNow }}),
		services.WithCurrencies("AUD", []string{"AUD", "USD"}),
	)
}

func (suite *AccountServiceTestSuite) TearDownTest() {
	suite.accountRepo.AssertExpectations(suite.T())
	suite.journalRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) existing(accountType domain.AccountType) *domain.Account {
	return &domain.Account{
		AccountID:    "acc_1",
		Scope:        suite.scope,
		Name:         "Cash",
		AccountType:  accountType,
		CurrencyCode: "AUD",
		IsActive:     true,
		AuditFields:  domain.AuditFields{Version: 3},
	}
}

func (suite *AccountServiceTestSuite) TestCreateAccount_DefaultsCurrency() {
	code := " 1000 "
	suite.accountRepo.On("FindAccountByCode", mock.Anything, suite.scope, "1000").
		Return(nil, apperrors.NotFoundf("account with code %q", "1000")).Once()
	suite.accountRepo.On("SaveAccount", mock.Anything, mock.MatchedBy(func(a domain.Account) bool {
		return a.CurrencyCode == "AUD" && *a.Code == "1000" && a.IsActive && a.Version == 1 && a.CreatedAt.Equal(fixedNow)
	})).Return(nil).Once()

	acc, err := suite.svc.CreateAccount(suite.ctx, suite.scope, dto.CreateAccountRequest{Name: " Cash ", AccountType: domain.Asset, Code: &code}, "usr_1")

	suite.Require().NoError(err)
	suite.Equal("Cash", acc.Name)
	suite.Equal("usr_1", acc.CreatedBy)
	suite.NotEmpty(acc.AccountID)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_RejectsCurrency() {
	for _, code := range []string{"usd", "US", "JPY"} {
		_, err := suite.svc.CreateAccount(suite.ctx, suite.scope, dto.CreateAccountRequest{Name: "X", AccountType: domain.Asset, CurrencyCode: code}, "usr_1")
		suite.ErrorIs(err, apperrors.ErrValidation, code)
	}
	suite.accountRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_DuplicateCode() {
	code := "1000"
	suite.accountRepo.On("FindAccountByCode", mock.Anything, suite.scope, code).Return(suite.existing(domain.Asset), nil).Once()

	_, err := suite.svc.CreateAccount(suite.ctx, suite.scope, dto.CreateAccountRequest{Name: "Cash 2", AccountType: domain.Asset, Code: &code}, "usr_1")

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "already exists")
}

func (suite *AccountServiceTestSuite) TestCreateAccount_InvalidInput() {
	blank := "  "
	tests := []struct {
		name  string
		scope domain.Scope
		req   dto.CreateAccountRequest
	}{
		{"no owner", domain.Scope{}, dto.CreateAccountRequest{Name: "Cash", AccountType: domain.Asset}},
		{"two owners", domain.Scope{OrganizationID: "org_1", UserID: "usr_1"}, dto.CreateAccountRequest{Name: "Cash", AccountType: domain.Asset}},
		{"blank name", suite.scope, dto.CreateAccountRequest{Name: " ", AccountType: domain.Asset}},
		{"bad type", suite.scope, dto.CreateAccountRequest{Name: "Cash", AccountType: "INCOME"}},
		{"blank code", suite.scope, dto.CreateAccountRequest{Name: "Cash", AccountType: domain.Asset, Code: &blank}},
	}
	for _, tt := range tests {
		_, err := suite.svc.CreateAccount(suite.ctx, tt.scope, tt.req, "usr_1")
		suite.ErrorIs(err, apperrors.ErrValidation, tt.name)
	}
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_RenameBumpsVersion() {
	name := "Cash at bank"
	suite.accountRepo.On("LockAccountForUpdate", mock.Anything, suite.scope, "acc_1").Return(suite.existing(domain.Asset), nil).Once()
	suite.accountRepo.On("UpdateAccount", mock.Anything, mock.MatchedBy(func(a domain.Account) bool {
		return a.Name == name && a.Version == 4 && a.LastUpdatedBy == "usr_2"
	})).Return(nil).Once()

	acc, err := suite.svc.UpdateAccount(suite.ctx, suite.scope, "acc_1", dto.UpdateAccountRequest{Name: &name}, "usr_2")

	suite.Require().NoError(err)
	suite.Equal(int64(4), acc.Version)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_TypeFrozenOnceUsed() {
	newType := domain.Liability
	suite.accountRepo.On("LockAccountForUpdate", mock.Anything, suite.scope, "acc_1").Return(suite.existing(domain.Asset), nil).Once()
	suite.journalRepo.On("AccountHasLines", mock.Anything, "acc_1", []domain.JournalStatus{domain.Draft, domain.Posted}).Return(true, nil).Once()

	_, err := suite.svc.UpdateAccount(suite.ctx, suite.scope, "acc_1", dto.UpdateAccountRequest{AccountType: &newType}, "usr_1")

	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.accountRepo.AssertNotCalled(suite.T(), "UpdateAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_CurrencyChangeWhenUnused() {
	usd := "USD"
	suite.accountRepo.On("LockAccountForUpdate", mock.Anything, suite.scope, "acc_1").Return(suite.existing(domain.Asset), nil).Once()
	suite.journalRepo.On("AccountHasLines", mock.Anything, "acc_1", []domain.JournalStatus{domain.Draft, domain.Posted}).Return(false, nil).Once()
	suite.accountRepo.On("UpdateAccount", mock.Anything, mock.MatchedBy(func(a domain.Account) bool { return a.CurrencyCode == usd })).Return(nil).Once()

	acc, err := suite.svc.UpdateAccount(suite.ctx, suite.scope, "acc_1", dto.UpdateAccountRequest{CurrencyCode: &usd}, "usr_1")

	suite.Require().NoError(err)
	suite.Equal(usd, acc.CurrencyCode)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_NotFound() {
	name := "x"
	suite.accountRepo.On("LockAccountForUpdate", mock.Anything, suite.scope, "missing").Return(nil, apperrors.NotFoundf("account %s", "missing")).Once()

	_, err := suite.svc.UpdateAccount(suite.ctx, suite.scope, "missing", dto.UpdateAccountRequest{Name: &name}, "usr_1")

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *AccountServiceTestSuite) TestDeleteAccount_InUse() {
	suite.accountRepo.On("LockAccountForUpdate", mock.Anything, suite.scope, "acc_1").Return(suite.existing(domain.Asset), nil).Once()
	suite.journalRepo.On("AccountHasLines", mock.Anything, "acc_1", []domain.JournalStatus{domain.Draft, domain.Posted}).Return(true, nil).Once()

	err := suite.svc.DeleteAccount(suite.ctx, suite.scope, "acc_1", "usr_1")

	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.accountRepo.AssertNotCalled(suite.T(), "SoftDeleteAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestDeleteAccount() {
	suite.accountRepo.On("LockAccountForUpdate", mock.Anything, suite.scope, "acc_1").Return(suite.existing(domain.Asset), nil).Once()
	suite.journalRepo.On("AccountHasLines", mock.Anything, "acc_1", []domain.JournalStatus{domain.Draft, domain.Posted}).Return(false, nil).Once()
	suite.accountRepo.On("SoftDeleteAccount", mock.Anything, suite.scope, "acc_1", "usr_1", fixedNow).Return(nil).Once()

	suite.NoError(suite.svc.DeleteAccount(suite.ctx, suite.scope, "acc_1", "usr_1"))
}

func (suite *AccountServiceTestSuite) TestListAccounts_EmptyIsNotNil() {
	suite.accountRepo.On("ListAccounts", mock.Anything, suite.scope).Return(nil, nil).Once()

	accounts, err := suite.svc.ListAccounts(suite.ctx, suite.scope)

	suite.Require().NoError(err)
	suite.NotNil(accounts)
	suite.Empty(accounts)
}

func TestAccountService(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
