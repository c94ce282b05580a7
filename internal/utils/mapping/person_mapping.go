package mapping

import (
	"github.com/SscSPs/demerit_registry/internal/core/domain"
	"github.com/SscSPs/demerit_registry/internal/models"
)

// ToModelPerson converts a domain Person to a model Person.
// A nil Extra becomes an empty slice for the NOT NULL array column.
func ToModelPerson(p domain.Person) models.Person {
	extra := p.Extra
	if extra == nil {
		extra = []string{}
	}
	return models.Person{
		PersonID:  p.PersonID,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Address:   p.Address,
		Birthdate: p.Birthdate,
		Extra:     extra,
	}
}

// ToDomainPerson converts a model Person to a domain Person. The ledger is not part of the row.
func ToDomainPerson(m models.Person) *domain.Person {
	p := &domain.Person{
		PersonID:  m.PersonID,
		FirstName: m.FirstName,
		LastName:  m.LastName,
		Address:   m.Address,
		Birthdate: m.Birthdate,
	}
	if len(m.Extra) > 0 {
		p.Extra = m.Extra
	}
	return p
}

// ToDomainOffenseRecords converts audit rows to domain records.
func ToDomainOffenseRecords(audits []models.OffenseAudit) []domain.OffenseRecord {
	out := make([]domain.OffenseRecord, len(audits))
	for i, a := range audits {
		out[i] = domain.OffenseRecord{PersonID: a.PersonID, Points: a.Points, Date: a.OffenseDate}
	}
	return out
}
