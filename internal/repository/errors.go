// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow the service layer to
// distinguish between different failure scenarios without inspecting
// driver errors. For example, ErrRoomUnavailable indicates that a room
// could not be flipped to booked because another booking already holds
// it, while ErrNotFound signals that the addressed row does not exist.
package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// ErrNotFound is returned when a lookup or delete addresses a row that
// does not exist.
var ErrNotFound = errors.New("not found")

// ErrRoomUnavailable is returned when a room exists but is already
// booked.
var ErrRoomUnavailable = errors.New("room unavailable")

// ErrEmailExists is returned when a user insert or update collides with
// the unique email index.
var ErrEmailExists = errors.New("email already exists")

// ErrInUse is returned when a delete is blocked by rows that reference
// the target, such as a user that still has bookings.
var ErrInUse = errors.New("referenced by other rows")

// MySQL server error numbers.
const (
	mysqlDuplicateEntry = 1062
	mysqlRowReferenced  = 1451
)

// isDuplicate reports whether err is a unique-key violation.
func isDuplicate(err error) bool {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number == mysqlDuplicateEntry
	}
	return false
}

// isReferenced reports whether err is a foreign key violation on delete.
func isReferenced(err error) bool {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number == mysqlRowReferenced
	}
	return false
}
