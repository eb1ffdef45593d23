package services

import (
	"context"

	"github.com/SscSPs/athena_ledger/internal/core/domain"
	"github.com/SscSPs/athena_ledger/internal/dto"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account by its unique identifier.
	GetAccountByID(ctx context.Context, scope domain.Scope, accountID string) (*domain.Account, error)

	// ListAccounts retrieves every account of a scope in creation order.
	ListAccounts(ctx context.Context, scope domain.Scope) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for account data
type AccountWriterSvc interface {
	// CreateAccount persists a new account.
	CreateAccount(ctx context.Context, scope domain.Scope, req dto.CreateAccountRequest, userID string) (*domain.Account, error)

	// UpdateAccount updates an existing account's details.
	UpdateAccount(ctx context.Context, scope domain.Scope, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error)

	// DeleteAccount removes an account no DRAFT or POSTED line references.
	DeleteAccount(ctx context.Context, scope domain.Scope, accountID string, userID string) error
}

// AccountSvcFacade combines all account-related service interfaces
// This is a facade for clients that need access to all operations
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
