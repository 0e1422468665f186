package repository

import (
	"errors"
	"fmt"

	sqlite3 "github.com/mattn/go-sqlite3"
)

var (
	// ErrNotFound matches any NotFoundError via errors.Is.
	ErrNotFound = errors.New("not found")
	// ErrConstraint matches any ConstraintError via errors.Is.
	ErrConstraint = errors.New("constraint violation")
)

// NotFoundError reports an absent entity referenced by a lookup key,
// e.g. "Book not found with ISBN 0001".
type NotFoundError struct {
	Entity string
	Key    string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found with %s", e.Entity, e.Key)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// ConstraintError reports a uniqueness violation on insert.
type ConstraintError struct {
	Entity string
	Field  string
	Err    error
}

func (e *ConstraintError) Error() string {
	return fmt.Sprintf("%s: duplicate %s", e.Entity, e.Field)
}

func (e *ConstraintError) Is(target error) bool { return target == ErrConstraint }

func (e *ConstraintError) Unwrap() error { return e.Err }

// uniqueViolation reports whether err is a SQLite UNIQUE constraint failure.
func uniqueViolation(err error) bool {
	var se sqlite3.Error
	return errors.As(err, &se) && se.ExtendedCode == sqlite3.ErrConstraintUnique
}
