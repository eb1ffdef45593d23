package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/SscSPs/athena_ledger/internal/apperrors"
	"github.com/SscSPs/athena_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/athena_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/athena_ledger/internal/models"
	"github.com/SscSPs/athena_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

const accountColumns = `account_id, organization_id, user_id, name, code, account_type, currency_code,
	description, is_active, deleted_at, created_at, created_by, last_updated_at, last_updated_by, version`

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool PgxPool) *PgxAccountRepository {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

func scanAccount(row pgx.Row) (domain.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID, &m.OrganizationID, &m.UserID, &m.Name, &m.Code, &m.AccountType, &m.CurrencyCode,
		&m.Description, &m.IsActive, &m.DeletedAt,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy, &m.Version,
	)
	if err != nil {
		return domain.Account{}, err
	}
	return mapping.ToDomainAccount(m), nil
}

func (r *PgxAccountRepository) findOne(ctx context.Context, scope domain.Scope, where string, arg any, suffix string, notFound error) (*domain.Account, error) {
	scopeClause, owner := scopeFilter("", scope, 2)
	query := `SELECT ` + accountColumns + ` FROM ledger_accounts
		WHERE ` + where + ` = $1 AND ` + scopeClause + ` AND deleted_at IS NULL ` + suffix

	acc, err := scanAccount(r.db(ctx).QueryRow(ctx, query, arg, owner))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFound
		}
		return nil, mapPgError(err, "find account")
	}
	return &acc, nil
}

func (r *PgxAccountRepository) findMany(ctx context.Context, scope domain.Scope, accountIDs []string, suffix string) (map[string]domain.Account, error) {
	out := make(map[string]domain.Account, len(accountIDs))
	if len(accountIDs) == 0 {
		return out, nil
	}
	scopeClause, owner := scopeFilter("", scope, 2)
	query := `SELECT ` + accountColumns + ` FROM ledger_accounts
		WHERE account_id = ANY($1) AND ` + scopeClause + ` AND deleted_at IS NULL
		ORDER BY account_id ` + suffix

	rows, err := r.db(ctx).Query(ctx, query, accountIDs, owner)
	if err != nil {
		return nil, mapPgError(err, "find accounts")
	}
	defer rows.Close()
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, mapPgError(err, "scan account")
		}
		out[acc.AccountID] = acc
	}
	if err := rows.Err(); err != nil {
		return nil, mapPgError(err, "find accounts")
	}
	return out, nil
}

func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, scope domain.Scope, accountID string) (*domain.Account, error) {
	return r.findOne(ctx, scope, "account_id", accountID, "", apperrors.NotFoundf("account %s", accountID))
}

func (r *PgxAccountRepository) FindAccountByCode(ctx context.Context, scope domain.Scope, code string) (*domain.Account, error) {
	return r.findOne(ctx, scope, "code", code, "", apperrors.NotFoundf("account with code %q", code))
}

func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, scope domain.Scope, accountIDs []string) (map[string]domain.Account, error) {
	return r.findMany(ctx, scope, accountIDs, "")
}

// LockAccountForUpdate must run inside WithinTx.
func (r *PgxAccountRepository) LockAccountForUpdate(ctx context.Context, scope domain.Scope, accountID string) (*domain.Account, error) {
	return r.findOne(ctx, scope, "account_id", accountID, "FOR UPDATE", apperrors.NotFoundf("account %s", accountID))
}

// LockAccountsForShare must run inside WithinTx. Rows are locked in id order
// so concurrent entries touching the same accounts cannot deadlock.
func (r *PgxAccountRepository) LockAccountsForShare(ctx context.Context, scope domain.Scope, accountIDs []string) (map[string]domain.Account, error) {
	return r.findMany(ctx, scope, accountIDs, "FOR SHARE")
}

func (r *PgxAccountRepository) ListAccounts(ctx context.Context, scope domain.Scope) ([]domain.Account, error) {
	scopeClause, owner := scopeFilter("", scope, 1)
	query := `SELECT ` + accountColumns + ` FROM ledger_accounts
		WHERE ` + scopeClause + ` AND deleted_at IS NULL
		ORDER BY created_at, account_id`

	rows, err := r.db(ctx).Query(ctx, query, owner)
	if err != nil {
		return nil, mapPgError(err, "list accounts")
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, mapPgError(err, "scan account")
		}
		accounts = append(accounts, acc)
	}
	if err := rows.Err(); err != nil {
		return nil, mapPgError(err, "list accounts")
	}
	return accounts, nil
}

func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
		INSERT INTO ledger_accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	_, err := r.db(ctx).Exec(ctx, query,
		m.AccountID, m.OrganizationID, m.UserID, m.Name, m.Code, m.AccountType, m.CurrencyCode,
		m.Description, m.IsActive, m.DeletedAt,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy, m.Version,
	)
	return mapPgError(err, "save account")
}

func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
		UPDATE ledger_accounts
		SET name = $2, code = $3, account_type = $4, currency_code = $5, description = $6, is_active = $7,
			last_updated_at = $8, last_updated_by = $9, version = $10
		WHERE account_id = $1 AND deleted_at IS NULL`

	tag, err := r.db(ctx).Exec(ctx, query,
		m.AccountID, m.Name, m.Code, m.AccountType, m.CurrencyCode, m.Description, m.IsActive,
		m.LastUpdatedAt, m.LastUpdatedBy, m.Version,
	)
	if err != nil {
		return mapPgError(err, "update account")
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFoundf("account %s", account.AccountID)
	}
	return nil
}

func (r *PgxAccountRepository) SoftDeleteAccount(ctx context.Context, scope domain.Scope, accountID string, userID string, now time.Time) error {
	scopeClause, owner := scopeFilter("", scope, 4)
	query := `
		UPDATE ledger_accounts
		SET deleted_at = $2, is_active = FALSE, last_updated_at = $2, last_updated_by = $3, version = version + 1
		WHERE account_id = $1 AND ` + scopeClause + ` AND deleted_at IS NULL`

	tag, err := r.db(ctx).Exec(ctx, query, accountID, now, userID, owner)
	if err != nil {
		return mapPgError(err, "delete account")
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFoundf("account %s", accountID)
	}
	return nil
}
