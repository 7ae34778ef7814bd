package db

import (
	"fmt"
	"net/http"
)

// Error is a storage engine failure that knows the HTTP status it maps
// to, so the connection layer can hand it straight to clients.
type Error struct {
	msg    string
	status int
}

func NewError(status int, msg string) *Error { return &Error{msg: msg, status: status} }

func (e *Error) Error() string { return e.msg }
func (e *Error) Status() int   { return e.status }

func ErrTableNotFound(name string) *Error {
	return NewError(http.StatusNotFound, fmt.Sprintf("table %q not found", name))
}

func ErrTableAlreadyExists(name string) *Error {
	return NewError(http.StatusConflict, fmt.Sprintf("table %q already exists", name))
}

func ErrColumnNotFound(name string) *Error {
	return NewError(http.StatusNotFound, fmt.Sprintf("column %q not found", name))
}

func ErrDuplicateColumn(name string) *Error {
	return NewError(http.StatusConflict, fmt.Sprintf("column %q already exists", name))
}

func ErrConstraintViolation(msg string) *Error {
	return NewError(http.StatusBadRequest, msg)
}

func ErrRowArityExceeded(got, want int) *Error {
	return NewError(http.StatusBadRequest,
		fmt.Sprintf("row has %d values but table has %d columns", got, want))
}

func ErrNonNullViolation(key string) *Error {
	return NewError(http.StatusBadRequest,
		fmt.Sprintf("column %q is non-null and has no value", key))
}
