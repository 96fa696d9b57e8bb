// Package repository maps forms to stored properties and clients: business code
// assignment, create-or-update disambiguation and search.
package repository

import (
	"errors"
	"fmt"

	"github.com/diewo77/go-immobiliare/internal/db"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when no row has the requested code.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateEmail is returned when a client email is already used by another client.
	ErrDuplicateEmail = errors.New("email already in use")
)

// SaveResult tells the caller which row a save touched.
type SaveResult struct {
	Code    string
	Created bool
}

// storeError classifies err for callers. Duplicate emails become ErrDuplicateEmail.
func storeError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	err = db.Classify(err)
	var ce *db.ConstraintError
	if errors.As(err, &ce) && errors.Is(ce.Kind, db.ErrDuplicate) && ce.Involves("email") {
		return fmt.Errorf("%w: %w", ErrDuplicateEmail, err)
	}
	return err
}
