package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TransactionManager is implemented by stores that can group writes in a database transaction.
type TransactionManager interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Commit(ctx context.Context, tx pgx.Tx) error
	Rollback(ctx context.Context, tx pgx.Tx) error
}

// PersonRepositoryWithTx is the SQL-backed person store.
type PersonRepositoryWithTx interface {
	PersonRepositoryFacade
	TransactionManager
}
