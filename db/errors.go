package db

import (
	"database/sql"
	"strings"

	"github.com/ontovault/ontovault/errors"
)

// TranslateError maps a database/sql or sqlite driver error onto the
// ontovault error taxonomy. sql.ErrNoRows becomes ErrNotFound with the
// given context; everything else becomes a storage error.
//
// The string matching fallback is necessary because the underlying sqlite
// driver returns its own error types that we cannot wrap at the source.
func TranslateError(err error, context string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return errors.NewNotFoundError("%s", context)
	}
	return errors.WrapStorage(err, context)
}

// IsConstraintViolation reports whether err came from a sqlite UNIQUE,
// CHECK, or FOREIGN KEY constraint.
func IsConstraintViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "CHECK constraint failed") ||
		strings.Contains(msg, "FOREIGN KEY constraint failed")
}
