package repository

import (
	"context"
	"testing"

	"github.com/diewo77/go-immobiliare/internal/db"
	"github.com/diewo77/go-immobiliare/internal/dbtest"
	"github.com/diewo77/go-immobiliare/internal/forms"
	"github.com/diewo77/go-immobiliare/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setup(t *testing.T) (*PropertyRepository, *ClientRepository, *db.Provider) {
	t.Helper()
	p := dbtest.Open(t)
	return NewPropertyRepository(p), NewClientRepository(p), p
}

func strPtr(s string) *string { return &s }

// insertRaw stores rows bypassing code generation, as an external import would.
func insertRaw(t *testing.T, p *db.Provider, rows ...any) {
	t.Helper()
	err := p.With(context.Background(), func(tx *gorm.DB) error {
		for _, row := range rows {
			if err := tx.Omit("Client").Create(row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, err)
}

func propertyForm(address, city string) forms.PropertyForm {
	f := forms.NewPropertyForm()
	f.Address = address
	f.City = city
	return f
}

func clientForm(first, last, email string) forms.ClientForm {
	f := forms.NewClientForm()
	f.FirstName = first
	f.LastName = last
	f.Email = email
	return f
}

func countRows(t *testing.T, p *db.Provider, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, p.With(context.Background(), func(tx *gorm.DB) error {
		return tx.Model(model).Count(&n).Error
	}))
	return n
}

func codesOf(props []models.Property) []string {
	out := make([]string, len(props))
	for i, p := range props {
		out[i] = p.Code
	}
	return out
}
