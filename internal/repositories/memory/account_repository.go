package memory

import (
	"context"
	"sort"
	"time"

	"github.com/SscSPs/athena_ledger/internal/apperrors"
	"github.com/SscSPs/athena_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/athena_ledger/internal/core/ports/repositories"
)

// AccountRepository is the in-memory account table.
type AccountRepository struct {
	store *Store
}

var _ portsrepo.AccountRepositoryFacade = (*AccountRepository)(nil)

// live returns the account when it exists in scope and is not deleted. Callers hold the lock.
func (r *AccountRepository) live(scope domain.Scope, accountID string) (domain.Account, bool) {
	acc, ok := r.store.accounts[accountID]
	if !ok || acc.DeletedAt != nil || !acc.Scope.Equal(scope) {
		return domain.Account{}, false
	}
	return acc, true
}

func (r *AccountRepository) codeTaken(scope domain.Scope, code *string, selfID string) bool {
	if code == nil {
		return false
	}
	for _, acc := range r.store.accounts {
		if acc.AccountID != selfID && acc.DeletedAt == nil && acc.Scope.Equal(scope) && acc.Code != nil && *acc.Code == *code {
			return true
		}
	}
	return false
}

func (r *AccountRepository) FindAccountByID(ctx context.Context, scope domain.Scope, accountID string) (*domain.Account, error) {
	var found domain.Account
	err := r.store.read(ctx, func() error {
		acc, ok := r.live(scope, accountID)
		if !ok {
			return apperrors.NotFoundf("account %s", accountID)
		}
		found = acc
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &found, nil
}

func (r *AccountRepository) FindAccountByCode(ctx context.Context, scope domain.Scope, code string) (*domain.Account, error) {
	var found *domain.Account
	err := r.store.read(ctx, func() error {
		for _, acc := range r.store.accounts {
			if acc.DeletedAt == nil && acc.Scope.Equal(scope) && acc.Code != nil && *acc.Code == code {
				acc := acc
				found = &acc
				return nil
			}
		}
		return apperrors.NotFoundf("account with code %q", code)
	})
	return found, err
}

func (r *AccountRepository) FindAccountsByIDs(ctx context.Context, scope domain.Scope, accountIDs []string) (map[string]domain.Account, error) {
	out := make(map[string]domain.Account, len(accountIDs))
	err := r.store.read(ctx, func() error {
		for _, id := range accountIDs {
			if acc, ok := r.live(scope, id); ok {
				out[id] = acc
			}
		}
		return nil
	})
	return out, err
}

func (r *AccountRepository) ListAccounts(ctx context.Context, scope domain.Scope) ([]domain.Account, error) {
	var out []domain.Account
	err := r.store.read(ctx, func() error {
		for _, acc := range r.store.accounts {
			if acc.DeletedAt == nil && acc.Scope.Equal(scope) {
				out = append(out, acc)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].AccountID < out[j].AccountID
	})
	return out, err
}

func (r *AccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	return r.store.write(ctx, func() error {
		if _, exists := r.store.accounts[account.AccountID]; exists {
			return apperrors.Validationf("account with ID %s already exists", account.AccountID)
		}
		if r.codeTaken(account.Scope, account.Code, account.AccountID) {
			return apperrors.Validationf("account code %q already exists", *account.Code)
		}
		r.store.accounts[account.AccountID] = account
		return nil
	})
}

func (r *AccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	return r.store.write(ctx, func() error {
		current, ok := r.live(account.Scope, account.AccountID)
		if !ok {
			return apperrors.NotFoundf("account %s", account.AccountID)
		}
		if r.codeTaken(account.Scope, account.Code, account.AccountID) {
			return apperrors.Validationf("account code %q already exists", *account.Code)
		}
		account.CreatedAt = current.CreatedAt
		account.CreatedBy = current.CreatedBy
		r.store.accounts[account.AccountID] = account
		return nil
	})
}

func (r *AccountRepository) SoftDeleteAccount(ctx context.Context, scope domain.Scope, accountID string, userID string, now time.Time) error {
	return r.store.write(ctx, func() error {
		acc, ok := r.live(scope, accountID)
		if !ok {
			return apperrors.NotFoundf("account %s", accountID)
		}
		acc.DeletedAt = &now
		acc.IsActive = false
		acc.LastUpdatedAt = now
		acc.LastUpdatedBy = userID
		acc.Version++
		r.store.accounts[accountID] = acc
		return nil
	})
}

// LockAccountForUpdate reads the account; the store lock already excludes other writers.
func (r *AccountRepository) LockAccountForUpdate(ctx context.Context, scope domain.Scope, accountID string) (*domain.Account, error) {
	return r.FindAccountByID(ctx, scope, accountID)
}

// LockAccountsForShare reads the accounts; the store lock already excludes other writers.
func (r *AccountRepository) LockAccountsForShare(ctx context.Context, scope domain.Scope, accountIDs []string) (map[string]domain.Account, error) {
	return r.FindAccountsByIDs(ctx, scope, accountIDs)
}
