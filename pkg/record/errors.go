package record

import (
	"errors"
	"fmt"
)

// Field operation errors. Every error returned by a Record wraps one of these;
// test with errors.Is.
var (
	ErrDuplicateField = errors.New("field already exists")
	ErrUnknownField   = errors.New("unknown field")
	ErrReadOnlyField  = errors.New("field is read-only")
	ErrValidation     = errors.New("validation failed")
	ErrNotRemovable   = errors.New("field is not removable")
	ErrInvalidName    = errors.New("invalid field name")
	ErrInvalidField   = errors.New("invalid field descriptor")
	ErrUnknownFormat  = errors.New("unknown serialization format")
)

// FieldError reports a failed operation on a single field.
type FieldError struct {
	Op     string // attach, get, set, remove
	Field  string
	Reason string // validator rejection reason; empty for other errors
	Err    error  // one of the sentinel errors above
}

func (e *FieldError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s %q: %s: %s", e.Op, e.Field, e.Err, e.Reason)
	}
	return fmt.Sprintf("%s %q: %s", e.Op, e.Field, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

// Reason returns the validator's rejection reason carried by err, or "" if
// err is not a validation failure.
func Reason(err error) string {
	var fe *FieldError
	if errors.As(err, &fe) && errors.Is(fe.Err, ErrValidation) {
		return fe.Reason
	}
	return ""
}

func fieldErr(op, name string, err error) error {
	return &FieldError{Op: op, Field: name, Err: err}
}
