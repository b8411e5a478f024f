package domain

import (
	"errors"
	"fmt"
)

// InvalidInputError marks a malformed collection identifier. Fatal, no
// retry.
type InvalidInputError struct {
	URI    string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid collection URI %q: %s", e.URI, e.Reason)
}

// RemoteQueryError marks a SPARQL query or transport failure that
// survived the retry policy, or a malformed response.
type RemoteQueryError struct {
	Op  string
	Err error
}

func (e *RemoteQueryError) Error() string {
	return fmt.Sprintf("remote query %s: %v", e.Op, e.Err)
}

func (e *RemoteQueryError) Unwrap() error { return e.Err }

// StoreError marks a constraint violation or I/O failure on the local
// database.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// Error categories as reported to the operator.
const (
	CategoryInvalidInput = "invalid input"
	CategoryRemoteQuery  = "remote query"
	CategoryStore        = "database"
	CategoryUnclassified = "unclassified"
)

// Classify maps an error to its operator-facing category.
func Classify(err error) string {
	var ii *InvalidInputError
	if errors.As(err, &ii) {
		return CategoryInvalidInput
	}
	var rq *RemoteQueryError
	if errors.As(err, &rq) {
		return CategoryRemoteQuery
	}
	var se *StoreError
	if errors.As(err, &se) {
		return CategoryStore
	}
	return CategoryUnclassified
}
