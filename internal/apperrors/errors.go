package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrPolicyViolation indicates a structurally valid change that the update rules forbid.
var ErrPolicyViolation = errors.New("policy violation")

// ErrInvalidField groups the structural field failures raised during updates.
var ErrInvalidField = fmt.Errorf("%w: invalid field", ErrValidation)

// Field and value failures. Each one wraps ErrValidation.
var (
	ErrInvalidIdentifier = fmt.Errorf("%w: invalid person identifier", ErrInvalidField)
	ErrInvalidAddress    = fmt.Errorf("%w: invalid address", ErrInvalidField)
	ErrInvalidDate       = fmt.Errorf("%w: invalid date", ErrInvalidField)
	ErrInvalidPoints     = fmt.Errorf("%w: demerit points must be between 1 and 6", ErrValidation)
)

// ErrDuplicateIdentifier is returned when a person identifier is already stored.
var ErrDuplicateIdentifier = fmt.Errorf("%w: person identifier already stored", ErrDuplicate)

// ErrRecordNotFound is returned when no stored person matches an identifier.
var ErrRecordNotFound = fmt.Errorf("%w: person record", ErrNotFound)

// Update rule failures.
var (
	ErrLockedFieldConflict  = fmt.Errorf("%w: birthdate must be the only changed field", ErrPolicyViolation)
	ErrMinorAddressLock     = fmt.Errorf("%w: persons under 18 cannot change address", ErrPolicyViolation)
	ErrIdentifierParityLock = fmt.Errorf("%w: identifiers starting with an even digit cannot change", ErrPolicyViolation)
)

// ErrIOFailure wraps store read/write failures.
var ErrIOFailure = errors.New("record store i/o failure")

// ErrUnencodableField is returned when a value would break the comma-delimited line format.
var ErrUnencodableField = fmt.Errorf("%w: field contains a store delimiter", ErrValidation)

// AppError carries an HTTP-ish status code alongside an underlying cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError builds an AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}
