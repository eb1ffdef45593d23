package pgsql

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/SscSPs/athena_ledger/internal/apperrors"
	"github.com/SscSPs/athena_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/athena_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres error codes the ledger reacts to.
const (
	pgUniqueViolation      = "23505"
	pgForeignKeyViolation  = "23503"
	pgCheckViolation       = "23514"
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
	pgLockNotAvailable     = "55P03"
)

type txCtxKey struct{}

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// PgxPool is the part of *pgxpool.Pool the repositories use.
type PgxPool interface {
	querier
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool PgxPool
}

var (
	_ PgxPool                      = (*pgxpool.Pool)(nil)
	_ portsrepo.TransactionManager = (*BaseRepository)(nil)
)

// db returns the transaction carried by ctx, or the pool outside a transaction.
func (r *BaseRepository) db(ctx context.Context) querier {
	if tx, ok := ctx.Value(txCtxKey{}).(pgx.Tx); ok {
		return tx
	}
	return r.Pool
}

// WithinTx runs fn in a SERIALIZABLE transaction carried by the context.
// Row locks taken inside fn are held until commit or rollback. A check that
// reads rows another transaction committed after our snapshot (an account
// delete racing a new line) fails with 40001 instead of acting on stale data.
func (r *BaseRepository) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txCtxKey{}).(pgx.Tx); ok {
		return fn(ctx)
	}

	tx, err := r.Pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to begin transaction", err)
	}
	defer func() {
		// No-op after a successful commit.
		_ = tx.Rollback(context.WithoutCancel(ctx))
	}()

	if err := fn(context.WithValue(ctx, txCtxKey{}, tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return mapPgError(err, "commit transaction")
	}
	return nil
}

// mapPgError converts constraint and concurrency failures into ledger errors.
// Serialization failures, deadlocks and lock timeouts are returned as
// conflicts for the caller to retry; they are never retried here.
func mapPgError(err error, op string) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return fmt.Errorf("%s: %w", op, err)
	}
	switch pgErr.Code {
	case pgUniqueViolation:
		switch pgErr.ConstraintName {
		case "ux_ledger_accounts_org_code", "ux_ledger_accounts_user_code":
			return apperrors.Validationf("account code already exists")
		}
		return apperrors.Validationf("%s: duplicate value violates %s", op, pgErr.ConstraintName)
	case pgForeignKeyViolation:
		return apperrors.Validationf("%s: referenced row does not exist (%s)", op, pgErr.ConstraintName)
	case pgCheckViolation:
		return apperrors.Validationf("%s: value violates %s", op, pgErr.ConstraintName)
	case pgSerializationFailure, pgDeadlockDetected, pgLockNotAvailable:
		return apperrors.Conflictf("%s: concurrent modification (%s), retry the request", op, pgErr.Code)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// scopeFilter returns a predicate on the owner column of alias, bound to placeholder $n.
func scopeFilter(alias string, scope domain.Scope, n int) (string, any) {
	col := "user_id"
	if scope.Kind() == domain.ScopeOrganization {
		col = "organization_id"
	}
	if alias != "" {
		col = alias + "." + col
	}
	return fmt.Sprintf("%s = $%d", col, n), scope.OwnerID()
}
