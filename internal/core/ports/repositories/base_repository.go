package repositories

import "context"

// TransactionManager runs a unit of work inside one store transaction.
//
// The transaction travels in the context passed to fn; every repository call
// made with that context joins it. If fn returns an error the transaction is
// rolled back and nothing it wrote is visible. Nested calls reuse the outer
// transaction.
type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
