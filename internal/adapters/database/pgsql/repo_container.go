package pgsql

import (
	"log/slog"

	portsrepo "github.com/SscSPs/demerit_registry/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires the PostgreSQL-backed repositories.
func NewRepositoryProvider(dbPool *pgxpool.Pool, logger *slog.Logger) portsrepo.RepositoryProvider {
	if logger == nil {
		logger = slog.Default()
	}
	return portsrepo.RepositoryProvider{
		PersonRepo: newPgxPersonRepository(dbPool, logger),
	}
}
