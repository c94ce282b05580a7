package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/demerit_registry/internal/apperrors"
)

// Person is a driver identity record together with its in-session demerit ledger.
type Person struct {
	PersonID  string `json:"personID"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Address   string `json:"address"`   // number|street|city|state|country, see ValidateAddress
	Birthdate string `json:"birthdate"` // DD-MM-YYYY

	// Extra holds stored columns beyond the five core fields. Stores carry them
	// through rewrites unchanged.
	Extra []string `json:"-"`

	// Offenses is not restored when a record is read back from a store.
	Offenses *DemeritLedger `json:"-"`
}

// NewPerson builds a Person with an empty ledger. It does not validate.
func NewPerson(personID, firstName, lastName, address, birthdate string) *Person {
	return &Person{
		PersonID:  personID,
		FirstName: firstName,
		LastName:  lastName,
		Address:   address,
		Birthdate: birthdate,
		Offenses:  NewDemeritLedger(),
	}
}

// Validate checks the structural fields required before a Person can be stored.
func (p *Person) Validate() error {
	return validateFields(p.PersonID, p.Address, p.Birthdate)
}

// AddDemeritPoints records an offense on the person's ledger, creating the ledger if needed.
func (p *Person) AddDemeritPoints(date string, points int, now time.Time) error {
	if p.Offenses == nil {
		p.Offenses = NewDemeritLedger()
	}
	return p.Offenses.AddOffense(date, points, p.Birthdate, now)
}

// IsSuspended reports the ledger's last computed suspension state.
func (p *Person) IsSuspended() bool {
	return p.Offenses != nil && p.Offenses.IsSuspended()
}

// Age returns the person's age at now.
func (p *Person) Age(now time.Time) int {
	return Age(p.Birthdate, now)
}

// Clone returns a copy of p that shares no mutable state with it.
func (p *Person) Clone() *Person {
	c := *p
	if p.Extra != nil {
		c.Extra = append([]string(nil), p.Extra...)
	}
	if p.Offenses != nil {
		c.Offenses = p.Offenses.Clone()
	}
	return &c
}

// OffenseRecord is one audit line read back from a store.
type OffenseRecord struct {
	PersonID string `json:"personID"`
	Points   int    `json:"points"`
	Date     string `json:"date"`
}

func validateFields(personID, address, birthdate string) error {
	if !ValidatePersonID(personID) {
		return fmt.Errorf("%w: %q", apperrors.ErrInvalidIdentifier, personID)
	}
	if !ValidateAddress(address) {
		return fmt.Errorf("%w: %q", apperrors.ErrInvalidAddress, address)
	}
	if !ValidateDate(birthdate) {
		return fmt.Errorf("%w: %q", apperrors.ErrInvalidDate, birthdate)
	}
	return nil
}
