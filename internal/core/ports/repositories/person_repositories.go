package repositories

import (
	"context"

	"github.com/SscSPs/demerit_registry/internal/core/domain"
)

// PersonReader defines read operations for stored person records
type PersonReader interface {
	// FindPersonByID returns the first stored record with the identifier.
	// Offenses are not restored. Returns apperrors.ErrRecordNotFound when absent.
	FindPersonByID(ctx context.Context, personID string) (*domain.Person, error)
}

// PersonWriter defines write operations for person records
type PersonWriter interface {
	// SavePerson appends a new record.
	SavePerson(ctx context.Context, person domain.Person) error

	// RewritePerson replaces the record currently stored under currentID.
	// Stored columns past the five core fields and all other records are kept.
	// When the identifier changes, audit entries of currentID move to the new
	// identifier in the same write.
	RewritePerson(ctx context.Context, currentID string, person domain.Person) error
}

// OffenseAuditor defines the append-only offense audit trail
type OffenseAuditor interface {
	// AppendOffense records one accepted offense.
	AppendOffense(ctx context.Context, personID string, points int, date string) error

	// ListOffenses returns the audit entries for a person in insertion order.
	ListOffenses(ctx context.Context, personID string) ([]domain.OffenseRecord, error)
}

// PersonRepositoryFacade combines all person-related repository interfaces
type PersonRepositoryFacade interface {
	PersonReader
	PersonWriter
	OffenseAuditor
}
