package services

import (
	"context"

	"github.com/SscSPs/demerit_registry/internal/core/domain"
	"github.com/SscSPs/demerit_registry/internal/dto"
)

// PersonReaderSvc defines read operations for persons
type PersonReaderSvc interface {
	// GetPerson returns the session copy of a person, loading it from the store on first use.
	GetPerson(ctx context.Context, personID string) (*domain.Person, error)
}

// PersonWriterSvc defines write operations for persons
type PersonWriterSvc interface {
	// CreatePerson validates and stores a new person.
	CreatePerson(ctx context.Context, req dto.CreatePersonRequest) (*domain.Person, error)

	// UpdatePerson applies the update rules and rewrites the stored record.
	UpdatePerson(ctx context.Context, personID string, req dto.UpdatePersonRequest) (*domain.Person, error)
}

// DemeritSvc defines offense recording and suspension queries
type DemeritSvc interface {
	// AddDemeritPoints audits the offense and then records it on the session ledger.
	AddDemeritPoints(ctx context.Context, personID string, req dto.AddDemeritRequest) (*dto.SuspensionResponse, error)

	// GetSuspension reports the session ledger's suspension state.
	GetSuspension(ctx context.Context, personID string) (*dto.SuspensionResponse, error)

	// ListOffenseHistory returns the stored audit trail for a person.
	ListOffenseHistory(ctx context.Context, personID string) ([]domain.OffenseRecord, error)
}

// PersonSvcFacade combines all person-related service interfaces
type PersonSvcFacade interface {
	PersonReaderSvc
	PersonWriterSvc
	DemeritSvc
}
