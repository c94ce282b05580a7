package services

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/SscSPs/demerit_registry/internal/apperrors"
	"github.com/SscSPs/demerit_registry/internal/core/domain"
	portsrepo "github.com/SscSPs/demerit_registry/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/demerit_registry/internal/core/ports/services"
	"github.com/SscSPs/demerit_registry/internal/dto"
	"github.com/SscSPs/demerit_registry/internal/platform/metrics"
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultSessionCacheSize bounds the number of in-memory ledgers.
const DefaultSessionCacheSize = 1024

// personService keeps one in-memory Person per identifier for the session.
// Ledgers live only there; the store holds records and the audit trail.
type personService struct {
	BaseService
	repo        portsrepo.PersonRepositoryFacade
	sessions    *lru.Cache[string, *domain.Person]
	cacheSize   int
	replayAudit bool

	// mu serialises every operation so ledger mutation and store writes
	// happen in one order.
	mu sync.Mutex
}

// PersonServiceOption is a functional option for configuring the person service
type PersonServiceOption func(*personService)

// WithClock sets the time source used for age calculations.
func WithClock(clock Clock) PersonServiceOption {
	return func(s *personService) {
		s.Clock = clock
	}
}

// WithSessionCacheSize bounds the session cache. Non-positive sizes keep the default.
func WithSessionCacheSize(size int) PersonServiceOption {
	return func(s *personService) {
		if size > 0 {
			s.cacheSize = size
		}
	}
}

// WithAuditReplay rebuilds a person's ledger from stored audit lines whenever
// the person is loaded from the store into the session.
func WithAuditReplay(enabled bool) PersonServiceOption {
	return func(s *personService) {
		s.replayAudit = enabled
	}
}

// NewPersonService creates a new person service with the provided options
func NewPersonService(repo portsrepo.PersonRepositoryFacade, options ...PersonServiceOption) portssvc.PersonSvcFacade {
	svc := &personService{
		repo:      repo,
		cacheSize: DefaultSessionCacheSize,
	}
	for _, option := range options {
		option(svc)
	}

	// size is positive here, so construction cannot fail
	svc.sessions, _ = lru.NewWithEvict(svc.cacheSize, func(personID string, _ *domain.Person) {
		metrics.SessionCacheEvictions.Inc()
		slog.Debug("Session ledger dropped", slog.String("person_id", personID))
	})
	return svc
}

var _ portssvc.PersonSvcFacade = (*personService)(nil)

func (s *personService) CreatePerson(ctx context.Context, req dto.CreatePersonRequest) (*domain.Person, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	person := domain.NewPerson(req.PersonID, req.FirstName, req.LastName, req.Address, req.Birthdate)
	if err := person.Validate(); err != nil {
		return nil, s.Reject(ctx, "create", err, slog.String("person_id", req.PersonID))
	}

	if err := s.ensureIDFree(ctx, person.PersonID); err != nil {
		if errors.Is(err, apperrors.ErrDuplicateIdentifier) {
			return nil, s.Reject(ctx, "create", err, slog.String("person_id", person.PersonID))
		}
		return nil, err
	}

	if err := s.repo.SavePerson(ctx, *person); err != nil {
		if errors.Is(err, apperrors.ErrDuplicateIdentifier) || errors.Is(err, apperrors.ErrUnencodableField) {
			return nil, s.Reject(ctx, "create", err, slog.String("person_id", person.PersonID))
		}
		return nil, s.StoreFailure(ctx, "save_person", err, slog.String("person_id", person.PersonID))
	}

	s.sessions.Add(person.PersonID, person)
	metrics.PersonsCreated.Inc()
	s.LogInfo(ctx, "Person created", slog.String("person_id", person.PersonID))
	return person.Clone(), nil
}

func (s *personService) GetPerson(ctx context.Context, personID string) (*domain.Person, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	person, err := s.load(ctx, personID)
	if err != nil {
		return nil, err
	}
	return person.Clone(), nil
}

func (s *personService) UpdatePerson(ctx context.Context, personID string, req dto.UpdatePersonRequest) (*domain.Person, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.load(ctx, personID)
	if err != nil {
		return nil, err
	}

	change := req.ToPersonUpdate()
	if err := domain.CheckUpdate(*existing, change, s.Now()); err != nil {
		return nil, s.Reject(ctx, "update", err, slog.String("person_id", personID))
	}

	if change.PersonID != personID {
		if err := s.ensureIDFree(ctx, change.PersonID); err != nil {
			if errors.Is(err, apperrors.ErrDuplicateIdentifier) {
				return nil, s.Reject(ctx, "update", err, slog.String("person_id", personID), slog.String("new_person_id", change.PersonID))
			}
			return nil, err
		}
	}

	updated := change.Apply(*existing)
	if err := s.repo.RewritePerson(ctx, personID, updated); err != nil {
		if errors.Is(err, apperrors.ErrDuplicateIdentifier) || errors.Is(err, apperrors.ErrUnencodableField) {
			return nil, s.Reject(ctx, "update", err, slog.String("person_id", personID))
		}
		return nil, s.StoreFailure(ctx, "rewrite_person", err, slog.String("person_id", personID))
	}

	s.sessions.Remove(personID)
	s.sessions.Add(updated.PersonID, &updated)
	metrics.PersonsUpdated.Inc()
	s.LogInfo(ctx, "Person updated", slog.String("person_id", personID), slog.String("new_person_id", updated.PersonID))
	return updated.Clone(), nil
}

// AddDemeritPoints validates first, then writes the audit line, then mutates
// the ledger. A failed audit write leaves the ledger untouched.
func (s *personService) AddDemeritPoints(ctx context.Context, personID string, req dto.AddDemeritRequest) (*dto.SuspensionResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	person, err := s.load(ctx, personID)
	if err != nil {
		return nil, err
	}

	if _, err := domain.ValidateOffense(req.OffenseDate, req.Points); err != nil {
		return nil, s.Reject(ctx, "add_demerit", err, slog.String("person_id", personID))
	}

	if err := s.repo.AppendOffense(ctx, personID, req.Points, req.OffenseDate); err != nil {
		if errors.Is(err, apperrors.ErrUnencodableField) {
			return nil, s.Reject(ctx, "add_demerit", err, slog.String("person_id", personID))
		}
		return nil, s.StoreFailure(ctx, "append_offense", err, slog.String("person_id", personID))
	}

	now := s.Now()
	wasSuspended := person.IsSuspended()
	if err := person.AddDemeritPoints(req.OffenseDate, req.Points, now); err != nil {
		// validated above; only reachable if the rules diverge
		s.LogError(ctx, err, "Audited offense rejected by ledger", slog.String("person_id", personID))
		return nil, err
	}

	metrics.DemeritsRecorded.Inc()
	metrics.DemeritPoints.Observe(float64(req.Points))
	if !wasSuspended && person.IsSuspended() {
		metrics.Suspensions.Inc()
		s.LogInfo(ctx, "Person suspended",
			slog.String("person_id", personID),
			slog.Int("window_points", person.Offenses.MaxWindowPoints()))
	}

	s.LogDebug(ctx, "Offense recorded",
		slog.String("person_id", personID),
		slog.Int("points", req.Points),
		slog.String("date", req.OffenseDate))

	resp := dto.ToSuspensionResponse(person, person.Age(now))
	return &resp, nil
}

func (s *personService) GetSuspension(ctx context.Context, personID string) (*dto.SuspensionResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	person, err := s.load(ctx, personID)
	if err != nil {
		return nil, err
	}
	resp := dto.ToSuspensionResponse(person, person.Age(s.Now()))
	return &resp, nil
}

func (s *personService) ListOffenseHistory(ctx context.Context, personID string) ([]domain.OffenseRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.load(ctx, personID); err != nil {
		return nil, err
	}
	records, err := s.repo.ListOffenses(ctx, personID)
	if err != nil {
		return nil, s.StoreFailure(ctx, "list_offenses", err, slog.String("person_id", personID))
	}
	if records == nil {
		return []domain.OffenseRecord{}, nil
	}
	return records, nil
}

// load returns the session Person for personID, fetching it from the store on
// a miss. Callers hold s.mu.
func (s *personService) load(ctx context.Context, personID string) (*domain.Person, error) {
	if person, ok := s.sessions.Get(personID); ok {
		metrics.SessionCacheHits.Inc()
		return person, nil
	}
	metrics.SessionCacheMisses.Inc()

	person, err := s.repo.FindPersonByID(ctx, personID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogDebug(ctx, "Person not found", slog.String("person_id", personID))
			return nil, err
		}
		return nil, s.StoreFailure(ctx, "find_person", err, slog.String("person_id", personID))
	}
	if person.Offenses == nil {
		person.Offenses = domain.NewDemeritLedger()
	}

	if s.replayAudit {
		if err := s.replay(ctx, person); err != nil {
			return nil, err
		}
	}

	s.sessions.Add(personID, person)
	return person, nil
}

func (s *personService) replay(ctx context.Context, person *domain.Person) error {
	records, err := s.repo.ListOffenses(ctx, person.PersonID)
	if err != nil {
		return s.StoreFailure(ctx, "list_offenses", err, slog.String("person_id", person.PersonID))
	}
	now := s.Now()
	for _, rec := range records {
		if err := person.AddDemeritPoints(rec.Date, rec.Points, now); err != nil {
			s.LogInfo(ctx, "Skipping unreplayable audit line",
				slog.String("person_id", person.PersonID),
				slog.String("date", rec.Date),
				slog.Int("points", rec.Points),
				slog.String("error", err.Error()))
		}
	}
	s.LogDebug(ctx, "Ledger replayed from audit trail",
		slog.String("person_id", person.PersonID),
		slog.Int("records", len(records)))
	return nil
}

// ensureIDFree returns ErrDuplicateIdentifier when personID is in the session or the store.
func (s *personService) ensureIDFree(ctx context.Context, personID string) error {
	if s.sessions.Contains(personID) {
		return apperrors.ErrDuplicateIdentifier
	}
	_, err := s.repo.FindPersonByID(ctx, personID)
	switch {
	case err == nil:
		return apperrors.ErrDuplicateIdentifier
	case errors.Is(err, apperrors.ErrNotFound):
		return nil
	default:
		return s.StoreFailure(ctx, "find_person", err, slog.String("person_id", personID))
	}
}
