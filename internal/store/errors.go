package store

import (
	"database/sql"
	"strings"

	"github.com/goliatone/go-errors"
)

// NewRecordNotFound builds the rich not-found error repositories return when
// a lookup misses.
func NewRecordNotFound() *errors.Error {
	return errors.New("record not found", errors.CategoryNotFound).
		WithCode(errors.CodeNotFound)
}

// IsRecordNotFound matches both the rich error and the raw sql sentinel bun
// surfaces on an empty scan.
func IsRecordNotFound(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, sql.ErrNoRows) {
		return true
	}
	return errors.IsNotFound(err)
}

// IsConflict reports whether the error is a unique-constraint violation.
// sqlite reports these as textual constraint errors; there is no portable
// sentinel to match against.
func IsConflict(err error) bool {
	if err == nil {
		return false
	}
	var richErr *errors.Error
	if errors.As(err, &richErr) && richErr.Category == errors.CategoryConflict {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
