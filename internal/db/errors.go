package db

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
)

var (
	// ErrDuplicate is returned when a unique constraint is violated.
	ErrDuplicate = errors.New("duplicate key value")

	// ErrForeignKey is returned when a foreign key constraint is violated.
	ErrForeignKey = errors.New("foreign key violation")
)

// ConstraintError describes a constraint violation reported by the store.
// Detail carries the constraint name or the driver message, whichever the
// driver offers, so callers can tell which column collided.
type ConstraintError struct {
	Kind   error // ErrDuplicate or ErrForeignKey
	Detail string
	Err    error
}

func (e *ConstraintError) Error() string {
	return fmt.Sprintf("%v (%s): %v", e.Kind, e.Detail, e.Err)
}

// Unwrap exposes both the kind and the driver error to errors.Is/As.
func (e *ConstraintError) Unwrap() []error { return []error{e.Kind, e.Err} }

// Involves reports whether the violated constraint mentions the given column.
func (e *ConstraintError) Involves(column string) bool {
	return strings.Contains(strings.ToLower(e.Detail), strings.ToLower(column))
}

// Classify turns driver constraint errors into a *ConstraintError and returns
// every other error unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	var ce *ConstraintError
	if errors.As(err, &ce) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		detail := strings.TrimSpace(pgErr.ConstraintName + " " + pgErr.Detail)
		switch pgErr.Code {
		case "23505": // unique_violation
			return &ConstraintError{Kind: ErrDuplicate, Detail: detail, Err: err}
		case "23503": // foreign_key_violation
			return &ConstraintError{Kind: ErrForeignKey, Detail: detail, Err: err}
		}
		return err
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) && liteErr.Code == sqlite3.ErrConstraint {
		switch liteErr.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return &ConstraintError{Kind: ErrDuplicate, Detail: liteErr.Error(), Err: err}
		case sqlite3.ErrConstraintForeignKey:
			return &ConstraintError{Kind: ErrForeignKey, Detail: liteErr.Error(), Err: err}
		}
	}
	return err
}
