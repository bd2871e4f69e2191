package types

import "errors"

// Error classes. Every domain error returned by the engines matches exactly one of them
// with errors.Is, in addition to the precise sentinel of the package that produced it.
var (
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrNotFound          = errors.New("not found")
	ErrTemporalViolation = errors.New("temporal violation")
	ErrAlreadyDone       = errors.New("already done")
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// ClassError is a sentinel error that belongs to one of the error classes.
type ClassError struct {
	class error
	msg   string
}

// NewError creates an error with msg that matches class.
func NewError(class error, msg string) *ClassError {
	return &ClassError{class: class, msg: msg}
}

func (e *ClassError) Error() string {
	return e.msg
}

// Class returns the class of the error.
func (e *ClassError) Class() error {
	return e.class
}

// Is matches the class of the error. Identity with the sentinel itself is handled by errors.Is.
func (e *ClassError) Is(target error) bool {
	return e.class != nil && target == e.class
}

// ClassOf returns the class of the first ClassError in the chain of err, or nil.
func ClassOf(err error) error {
	var cerr *ClassError
	if errors.As(err, &cerr) {
		return cerr.class
	}
	return nil
}
