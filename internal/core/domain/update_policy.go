package domain

import (
	"time"

	"github.com/SscSPs/demerit_registry/internal/apperrors"
)

// MinAddressChangeAge is the age from which a person may change address.
const MinAddressChangeAge = 18

// PersonUpdate is the full replacement set of personal details for an update.
type PersonUpdate struct {
	PersonID  string
	FirstName string
	LastName  string
	Address   string
	Birthdate string
}

// CheckUpdate decides whether existing may be replaced by change. Rules, in order:
//   - the new identifier, address and birthdate must be structurally valid;
//   - a birthdate change must be the only change to names and address;
//   - under-18s (by the stored birthdate) cannot change address;
//   - an identifier whose first digit is even cannot change.
func CheckUpdate(existing Person, change PersonUpdate, now time.Time) error {
	if err := validateFields(change.PersonID, change.Address, change.Birthdate); err != nil {
		return err
	}

	birthdateChanging := existing.Birthdate != change.Birthdate
	if birthdateChanging && (existing.FirstName != change.FirstName ||
		existing.LastName != change.LastName ||
		existing.Address != change.Address) {
		return apperrors.ErrLockedFieldConflict
	}

	if Age(existing.Birthdate, now) < MinAddressChangeAge && existing.Address != change.Address {
		return apperrors.ErrMinorAddressLock
	}

	if change.PersonID != existing.PersonID && leadingDigitEven(existing.PersonID) {
		return apperrors.ErrIdentifierParityLock
	}

	return nil
}

// Apply returns a copy of p with the update's fields. Extra columns and the ledger are kept.
func (u PersonUpdate) Apply(p Person) Person {
	p.PersonID = u.PersonID
	p.FirstName = u.FirstName
	p.LastName = u.LastName
	p.Address = u.Address
	p.Birthdate = u.Birthdate
	return p
}

// leadingDigitEven is false for an empty identifier or a non-digit first character.
func leadingDigitEven(id string) bool {
	if id == "" || id[0] < '0' || id[0] > '9' {
		return false
	}
	return (id[0]-'0')%2 == 0
}
