package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/athena_ledger/internal/apperrors"
	"github.com/SscSPs/athena_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/athena_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/athena_ledger/internal/core/ports/services"
	"github.com/SscSPs/athena_ledger/internal/dto"
	"github.com/SscSPs/athena_ledger/internal/platform/ids"
)

// DefaultCurrency is used when neither the request nor the configuration names one.
const DefaultCurrency = "AUD"

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	txManager         portsrepo.TransactionManager
	accountRepo       portsrepo.AccountRepositoryFacade
	journalRepo       portsrepo.JournalReader
	defaultCurrency   string
	allowedCurrencies map[string]struct{}
}

// AccountServiceOption is a functional option for configuring the account service
type AccountServiceOption func(*accountService)

// WithCurrencies sets the default currency and the allow-list new and updated accounts must use.
func WithCurrencies(defaultCurrency string, allowed []string) AccountServiceOption {
	return func(s *accountService) {
		s.defaultCurrency = defaultCurrency
		s.allowedCurrencies = make(map[string]struct{}, len(allowed))
		for _, c := range allowed {
			s.allowedCurrencies[c] = struct{}{}
		}
	}
}

// WithAccountBase sets the shared service helpers (clock, logging).
func WithAccountBase(base BaseService) AccountServiceOption {
	return func(s *accountService) {
		s.BaseService = base
	}
}

// NewAccountService creates a new account service with the provided options
func NewAccountService(txManager portsrepo.TransactionManager, accountRepo portsrepo.AccountRepositoryFacade, journalRepo portsrepo.JournalReader, options ...AccountServiceOption) portssvc.AccountSvcFacade {
	svc := &accountService{
		txManager:         txManager,
		accountRepo:       accountRepo,
		journalRepo:       journalRepo,
		defaultCurrency:   DefaultCurrency,
		allowedCurrencies: map[string]struct{}{DefaultCurrency: {}},
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) validateCurrency(code string) error {
	if !domain.IsCurrencyCode(code) {
		return apperrors.Validationf("currency code %q must be three uppercase letters", code)
	}
	if _, ok := s.allowedCurrencies[code]; !ok {
		return apperrors.Validationf("currency code %q is not supported", code)
	}
	return nil
}

// ensureCodeFree fails when another live account in scope already uses code.
func (s *accountService) ensureCodeFree(ctx context.Context, scope domain.Scope, code string, selfID string) error {
	existing, err := s.accountRepo.FindAccountByCode(ctx, scope, code)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if existing.AccountID != selfID {
		return apperrors.Validationf("account code %q already exists", code)
	}
	return nil
}

func normalizeCode(code *string) (*string, error) {
	if code == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*code)
	if trimmed == "" {
		return nil, apperrors.Validationf("account code cannot be blank")
	}
	return &trimmed, nil
}

func (s *accountService) CreateAccount(ctx context.Context, scope domain.Scope, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	if err := scope.Validate(); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.Validationf("account name is required")
	}
	if !req.AccountType.IsValid() {
		return nil, apperrors.Validationf("invalid account type %q", req.AccountType)
	}
	code, err := normalizeCode(req.Code)
	if err != nil {
		return nil, err
	}
	currency := strings.TrimSpace(req.CurrencyCode)
	if currency == "" {
		currency = s.defaultCurrency
	}
	if err := s.validateCurrency(currency); err != nil {
		return nil, err
	}

	now := s.now()
	account := domain.Account{
		AccountID:    ids.New(),
		Scope:        scope,
		Name:         name,
		Code:         code,
		AccountType:  req.AccountType,
		CurrencyCode: currency,
		Description:  strings.TrimSpace(req.Description),
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
			Version:       1,
		},
	}

	err = s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		if code != nil {
			if err := s.ensureCodeFree(ctx, scope, *code, ""); err != nil {
				return err
			}
		}
		return s.accountRepo.SaveAccount(ctx, account)
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to save account", slog.String("scope", scope.String()))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Account created", slog.String("account_id", account.AccountID), slog.String("account_type", string(account.AccountType)))
	return &account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, scope domain.Scope, accountID string) (*domain.Account, error) {
	if err := scope.Validate(); err != nil {
		return nil, err
	}
	account, err := s.accountRepo.FindAccountByID(ctx, scope, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account", slog.String("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

// ListAccounts retrieves every account of the scope in creation order.
func (s *accountService) ListAccounts(ctx context.Context, scope domain.Scope) ([]domain.Account, error) {
	if err := scope.Validate(); err != nil {
		return nil, err
	}
	accounts, err := s.accountRepo.ListAccounts(ctx, scope)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts", slog.String("scope", scope.String()))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}

// UpdateAccount applies the provided fields. Type and currency are frozen once
// a DRAFT or POSTED line references the account.
func (s *accountService) UpdateAccount(ctx context.Context, scope domain.Scope, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	if err := scope.Validate(); err != nil {
		return nil, err
	}

	var updated domain.Account
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		account, err := s.accountRepo.LockAccountForUpdate(ctx, scope, accountID)
		if err != nil {
			return err
		}

		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if name == "" {
				return apperrors.Validationf("account name cannot be blank")
			}
			account.Name = name
		}
		if req.Description != nil {
			account.Description = strings.TrimSpace(*req.Description)
		}
		if req.IsActive != nil {
			account.IsActive = *req.IsActive
		}
		if req.Code != nil {
			if strings.TrimSpace(*req.Code) == "" {
				account.Code = nil
			} else {
				code, _ := normalizeCode(req.Code)
				if err := s.ensureCodeFree(ctx, scope, *code, account.AccountID); err != nil {
					return err
				}
				account.Code = code
			}
		}

		structural := false
		if req.AccountType != nil && *req.AccountType != account.AccountType {
			if !req.AccountType.IsValid() {
				return apperrors.Validationf("invalid account type %q", *req.AccountType)
			}
			account.AccountType = *req.AccountType
			structural = true
		}
		if req.CurrencyCode != nil && *req.CurrencyCode != account.CurrencyCode {
			if err := s.validateCurrency(*req.CurrencyCode); err != nil {
				return err
			}
			account.CurrencyCode = *req.CurrencyCode
			structural = true
		}
		if structural {
			used, err := s.journalRepo.AccountHasLines(ctx, account.AccountID, domain.Draft, domain.Posted)
			if err != nil {
				return err
			}
			if used {
				return apperrors.Conflictf("account %s is referenced by journal entries; its type and currency can no longer change", account.AccountID)
			}
		}

		account.LastUpdatedAt = s.now()
		account.LastUpdatedBy = userID
		account.Version++
		if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
			return err
		}
		updated = *account
		return nil
	})
	if err != nil {
		if !isExpected(err) {
			s.LogError(ctx, err, "Failed to update account", slog.String("account_id", accountID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Account updated", slog.String("account_id", accountID))
	return &updated, nil
}

// DeleteAccount removes an account that no DRAFT or POSTED line references.
func (s *accountService) DeleteAccount(ctx context.Context, scope domain.Scope, accountID string, userID string) error {
	if err := scope.Validate(); err != nil {
		return err
	}

	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.accountRepo.LockAccountForUpdate(ctx, scope, accountID); err != nil {
			return err
		}
		used, err := s.journalRepo.AccountHasLines(ctx, accountID, domain.Draft, domain.Posted)
		if err != nil {
			return err
		}
		if used {
			return apperrors.Conflictf("account %s is referenced by draft or posted journal entries", accountID)
		}
		return s.accountRepo.SoftDeleteAccount(ctx, scope, accountID, userID, s.now())
	})
	if err != nil {
		if !isExpected(err) {
			s.LogError(ctx, err, "Failed to delete account", slog.String("account_id", accountID))
		}
		return err
	}

	s.LogInfo(ctx, "Account deleted", slog.String("account_id", accountID))
	return nil
}

// isExpected reports whether err is a caller-facing outcome rather than an infrastructure failure.
func isExpected(err error) bool {
	return errors.Is(err, apperrors.ErrValidation) || errors.Is(err, apperrors.ErrNotFound) || errors.Is(err, apperrors.ErrConflict)
}
