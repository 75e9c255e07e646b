package repository

import (
	"context"

	"github.com/jackc/pgx/v4"
)

// TransactionManager executes a function within a database transaction,
// passing the underlying transaction handle via the repositories' tx argument.
// Approval is the one flow that spans two writes (insert phrase + delete
// suggestion) and uses it.
type TransactionManager interface {
	WithTx(ctx context.Context, txOpt pgx.TxOptions, fn func(ctx context.Context, tx Tx) error) error
}
