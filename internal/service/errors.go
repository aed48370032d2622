// Package service implements the booking, payment, auth and catalog
// workflows on top of the repositories.  Every failure leaves this package
// as an *Error whose Kind decides the HTTP status.
package service

import (
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
)

// Kind classifies service failures.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindConflict
	KindInvalidCredentials
	KindUnauthorized
	KindForbidden
	KindPersistence
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindInvalidCredentials:
		return "invalid_credentials"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindPersistence:
		return "persistence"
	}
	return "internal"
}

// Error is the error type returned by every service operation.  Message is
// safe to show to clients; Details carries the store's own message for
// persistence failures.
type Error struct {
	Kind    Kind
	Message string
	Details string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the Kind of err, or KindInternal when err is not an *Error.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindInternal
}

func validationError(msg string) *Error { return &Error{Kind: KindValidation, Message: msg} }

func notFound(msg string) *Error { return &Error{Kind: KindNotFound, Message: msg} }

func conflict(msg string) *Error { return &Error{Kind: KindConflict, Message: msg} }

func invalidCredentials(msg string) *Error {
	return &Error{Kind: KindInvalidCredentials, Message: msg}
}

// persistence wraps a store failure.  MySQL errors contribute their server
// message as Details.
func persistence(op string, err error) *Error {
	details := err.Error()
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		details = me.Message
	}
	return &Error{Kind: KindPersistence, Message: op, Details: details, Err: err}
}
