package gateway

import (
	"errors"
	"fmt"
)

// Kind classifies a gateway failure so the presentation layer can decide how to surface it
type Kind int

const (
	KindDatabase Kind = iota
	KindDuplicate
	KindInvalidField
	KindInvalidValue
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindDuplicate:
		return "duplicate"
	case KindInvalidField:
		return "invalid field"
	case KindInvalidValue:
		return "invalid value"
	case KindNotFound:
		return "not found"
	}
	return "database"
}

var (
	ErrDuplicateRollNo = errors.New("a student with this roll number already exists")
	ErrInvalidField    = errors.New("invalid field")
	ErrInvalidValue    = errors.New("invalid value")
	ErrNotFound        = errors.New("no student with this roll number")
	ErrClosed          = errors.New("gateway is closed")
)

// Error is returned by every gateway operation that fails
type Error struct {
	Op   string
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of a gateway error, KindDatabase for anything else
func KindOf(err error) Kind {
	var ge *Error
	if errors.As(err, &ge) {
		return ge.Kind
	}
	return KindDatabase
}

func opError(op string, kind Kind, err error) error {
	return &Error{Op: op, Kind: kind, Err: err}
}
