package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
)

func TestMySQLErrorClassification(t *testing.T) {
	dup := fmt.Errorf("insert: %w", &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})
	ref := &mysql.MySQLError{Number: 1451, Message: "Cannot delete or update a parent row"}

	if !isDuplicate(dup) {
		t.Error("wrapped 1062 not recognised as duplicate")
	}
	if isDuplicate(ref) {
		t.Error("1451 recognised as duplicate")
	}
	if !isReferenced(ref) {
		t.Error("1451 not recognised as referenced")
	}
	if isReferenced(errors.New("boom")) || isDuplicate(nil) {
		t.Error("plain errors must not classify")
	}
}
