package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/athena_ledger/internal/core/domain"
)

// AccountReader defines read operations for account data.
// Soft-deleted accounts are invisible to every method.
type AccountReader interface {
	// FindAccountByID retrieves an account in scope; apperrors.ErrNotFound if absent or owned by another scope.
	FindAccountByID(ctx context.Context, scope domain.Scope, accountID string) (*domain.Account, error)

	// FindAccountByCode retrieves an account by its code within a scope.
	FindAccountByCode(ctx context.Context, scope domain.Scope, code string) (*domain.Account, error)

	// FindAccountsByIDs retrieves the accounts of the scope among accountIDs. Unknown ids are omitted.
	FindAccountsByIDs(ctx context.Context, scope domain.Scope, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves every account of a scope in creation order.
	ListAccounts(ctx context.Context, scope domain.Scope) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data.
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount overwrites the mutable fields of an existing account.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// SoftDeleteAccount hides an account from reads and frees its code.
	SoftDeleteAccount(ctx context.Context, scope domain.Scope, accountID string, userID string, now time.Time) error
}

// AccountLocker defines row locks taken inside a TransactionManager unit of work.
type AccountLocker interface {
	// LockAccountForUpdate locks one account exclusively (SELECT ... FOR UPDATE).
	LockAccountForUpdate(ctx context.Context, scope domain.Scope, accountID string) (*domain.Account, error)

	// LockAccountsForShare locks accounts against deletion and type changes (SELECT ... FOR SHARE).
	// Unknown ids are omitted from the result.
	LockAccountsForShare(ctx context.Context, scope domain.Scope, accountIDs []string) (map[string]domain.Account, error)
}

// AccountRepositoryFacade combines all account-related repository interfaces
// This is a facade for clients that need access to all operations
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountLocker
}
