package pgsql

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/demerit_registry/internal/apperrors"
	"github.com/SscSPs/demerit_registry/internal/core/domain"
	portsrepo "github.com/SscSPs/demerit_registry/internal/core/ports/repositories"
	"github.com/SscSPs/demerit_registry/internal/models"
	"github.com/SscSPs/demerit_registry/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const pgUniqueViolation = "23505"

// schemaDDL is applied at startup. Audit rows follow the person's identifier
// through RewritePerson.
const schemaDDL = `
CREATE TABLE IF NOT EXISTS persons (
	seq        BIGSERIAL PRIMARY KEY,
	person_id  TEXT NOT NULL UNIQUE,
	first_name TEXT NOT NULL,
	last_name  TEXT NOT NULL,
	address    TEXT NOT NULL,
	birthdate  TEXT NOT NULL,
	extra      TEXT[] NOT NULL DEFAULT '{}'
);
CREATE TABLE IF NOT EXISTS demerit_audit (
	seq          BIGSERIAL PRIMARY KEY,
	person_id    TEXT NOT NULL,
	points       INT NOT NULL,
	offense_date TEXT NOT NULL,
	recorded_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS demerit_audit_person_idx ON demerit_audit (person_id, seq);
`

// PgxPersonRepository stores persons and the offense audit trail in PostgreSQL.
type PgxPersonRepository struct {
	BaseRepository
	logger *slog.Logger
}

func newPgxPersonRepository(pool *pgxpool.Pool, logger *slog.Logger) *PgxPersonRepository {
	return &PgxPersonRepository{
		BaseRepository: BaseRepository{Pool: pool},
		logger:         logger.With(slog.String("component", "pgsql")),
	}
}

var _ portsrepo.PersonRepositoryWithTx = (*PgxPersonRepository)(nil)

// EnsureSchema creates the tables if they do not exist.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schemaDDL); err != nil {
		return apperrors.NewAppError(500, "failed to bootstrap schema", errors.Join(apperrors.ErrIOFailure, err))
	}
	return nil
}

// mapWriteError converts driver errors into apperrors values.
func mapWriteError(err error, msg string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return apperrors.ErrDuplicateIdentifier
	}
	return apperrors.NewAppError(500, msg, errors.Join(apperrors.ErrIOFailure, err))
}

func (r *PgxPersonRepository) FindPersonByID(ctx context.Context, personID string) (*domain.Person, error) {
	query := `
		SELECT person_id, first_name, last_name, address, birthdate, extra
		FROM persons
		WHERE person_id = $1;
	`
	rows, err := r.Pool.Query(ctx, query, personID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query person "+personID, errors.Join(apperrors.ErrIOFailure, err))
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Person])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrRecordNotFound
	}
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan person "+personID, errors.Join(apperrors.ErrIOFailure, err))
	}
	return mapping.ToDomainPerson(m), nil
}

func (r *PgxPersonRepository) SavePerson(ctx context.Context, person domain.Person) error {
	m := mapping.ToModelPerson(person)
	query := `
		INSERT INTO persons (person_id, first_name, last_name, address, birthdate, extra)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := r.Pool.Exec(ctx, query, m.PersonID, m.FirstName, m.LastName, m.Address, m.Birthdate, m.Extra)
	if err != nil {
		return mapWriteError(err, "failed to save person "+person.PersonID)
	}
	r.logger.Debug("person inserted", slog.String("person_id", person.PersonID))
	return nil
}

func (r *PgxPersonRepository) AppendOffense(ctx context.Context, personID string, points int, date string) error {
	query := `INSERT INTO demerit_audit (person_id, points, offense_date) VALUES ($1, $2, $3);`
	if _, err := r.Pool.Exec(ctx, query, personID, points, date); err != nil {
		return apperrors.NewAppError(500, "failed to audit offense for "+personID, errors.Join(apperrors.ErrIOFailure, err))
	}
	return nil
}

// RewritePerson updates the row in one transaction. The stored extra columns are
// kept and an identifier change moves the audit rows with it.
func (r *PgxPersonRepository) RewritePerson(ctx context.Context, currentID string, person domain.Person) (err error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rbErr := r.Rollback(ctx, tx); rbErr != nil {
				r.logger.Error("rollback failed", slog.String("error", rbErr.Error()))
			}
		}
	}()

	var seq int64
	err = tx.QueryRow(ctx, `SELECT seq FROM persons WHERE person_id = $1 FOR UPDATE;`, currentID).Scan(&seq)
	if errors.Is(err, pgx.ErrNoRows) {
		err = apperrors.ErrRecordNotFound
		return err
	}
	if err != nil {
		err = apperrors.NewAppError(500, "failed to lock person "+currentID, errors.Join(apperrors.ErrIOFailure, err))
		return err
	}

	query := `
		UPDATE persons
		SET person_id = $2, first_name = $3, last_name = $4, address = $5, birthdate = $6
		WHERE seq = $1;
	`
	if _, err = tx.Exec(ctx, query, seq, person.PersonID, person.FirstName, person.LastName, person.Address, person.Birthdate); err != nil {
		err = mapWriteError(err, "failed to rewrite person "+currentID)
		return err
	}
	if person.PersonID != currentID {
		var tag pgconn.CommandTag
		tag, err = tx.Exec(ctx, `UPDATE demerit_audit SET person_id = $2 WHERE person_id = $1;`, currentID, person.PersonID)
		if err != nil {
			err = apperrors.NewAppError(500, "failed to move audit trail for "+currentID, errors.Join(apperrors.ErrIOFailure, err))
			return err
		}
		r.logger.Debug("audit trail moved", slog.String("person_id", currentID), slog.Int64("rows", tag.RowsAffected()))
	}
	if err = r.Commit(ctx, tx); err != nil {
		return err
	}
	r.logger.Info("person rewritten", slog.String("person_id", currentID), slog.String("new_person_id", person.PersonID))
	return nil
}

func (r *PgxPersonRepository) ListOffenses(ctx context.Context, personID string) ([]domain.OffenseRecord, error) {
	query := `
		SELECT person_id, points, offense_date, recorded_at
		FROM demerit_audit
		WHERE person_id = $1
		ORDER BY seq;
	`
	rows, err := r.Pool.Query(ctx, query, personID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list offenses for "+personID, errors.Join(apperrors.ErrIOFailure, err))
	}
	audits, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.OffenseAudit])
	if err != nil {
		return nil, fmt.Errorf("failed to scan offenses for %s: %w", personID, errors.Join(apperrors.ErrIOFailure, err))
	}
	return mapping.ToDomainOffenseRecords(audits), nil
}
