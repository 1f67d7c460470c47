package registration

import (
	"errors"
	"strings"
)

// Entities reported by NotFoundError
const (
	EntityPerson      = "person"
	EntityCaseNotOpen = "case_not_open"
	EntityLocation    = "location"
)

// ErrIDConflict is returned by a Store when an insert collides with an existing
// arrestID or chargeID. The registration is re-run with a fresh ID snapshot.
var ErrIDConflict = errors.New("generated id already exists")

// ValidationError lists the required input fields that were absent
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "Missing required fields: " + strings.Join(e.Fields, ", ")
}

// NotFoundError reports a referenced entity that does not exist or does not meet
// the required predicate
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	switch e.Entity {
	case EntityPerson:
		return "Person not found"
	case EntityCaseNotOpen:
		return "Case not found or not open"
	case EntityLocation:
		return "Location not found"
	}
	return e.Entity + " not found"
}

// TransactionError wraps any other failure that aborted the transaction
type TransactionError struct {
	Err error
}

func (e *TransactionError) Error() string {
	return "Transaction failed, no data saved"
}

func (e *TransactionError) Unwrap() error {
	return e.Err
}

// Details returns the underlying cause for diagnostics
func (e *TransactionError) Details() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

func classify(err error) error {
	var nf *NotFoundError
	if errors.As(err, &nf) {
		return nf
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve
	}
	return &TransactionError{Err: err}
}
