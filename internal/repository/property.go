package repository

import (
	"context"
	"strings"

	"github.com/diewo77/go-immobiliare/internal/db"
	"github.com/diewo77/go-immobiliare/internal/forms"
	"github.com/diewo77/go-immobiliare/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// propertyOrder lists the newest codes first. Codes share a prefix, so ordering by
// length first keeps SI10000 above SI9999.
const propertyOrder = "LENGTH(immobili.codice) DESC, immobili.codice DESC"

var propertySearchColumns = []string{
	"immobili.codice",
	"immobili.indirizzo",
	"immobili.citta",
	"immobili.zona",
	"c.cognome",
	"c.nome",
}

type PropertyRepository struct {
	db *db.Provider
}

func NewPropertyRepository(p *db.Provider) *PropertyRepository {
	return &PropertyRepository{db: p}
}

// List returns every property, newest code first. A non-empty term keeps the
// properties whose code, address, city, zone or client name contains it,
// ignoring case.
func (r *PropertyRepository) List(ctx context.Context, term string) ([]models.Property, error) {
	var out []models.Property
	err := r.db.With(ctx, func(tx *gorm.DB) error {
		q := tx.Model(&models.Property{}).Select("immobili.*").Preload("Client")
		if term = strings.TrimSpace(term); term != "" {
			where, args := containsAny(term, propertySearchColumns...)
			q = q.Joins("LEFT JOIN clienti c ON c.codice = immobili.cliente_codice").Where(where, args...)
		}
		return q.Order(propertyOrder).Find(&out).Error
	})
	return out, storeError(err)
}

// ListByClient returns the properties linked to a client.
func (r *PropertyRepository) ListByClient(ctx context.Context, clientCode string) ([]models.Property, error) {
	var out []models.Property
	err := r.db.With(ctx, func(tx *gorm.DB) error {
		return tx.Where("cliente_codice = ?", clientCode).Order(propertyOrder).Find(&out).Error
	})
	return out, storeError(err)
}

// Get returns the property with the given code, or ErrNotFound.
func (r *PropertyRepository) Get(ctx context.Context, code string) (*models.Property, error) {
	var p models.Property
	err := r.db.With(ctx, func(tx *gorm.DB) error {
		return tx.Preload("Client").Where("codice = ?", code).First(&p).Error
	})
	if err != nil {
		return nil, storeError(err)
	}
	return &p, nil
}

// Save creates or updates a property. A form without identity (blank or the
// pending placeholder) creates a row under the next SI code; otherwise every
// mutable column of the identified row is replaced. Updating a code that does
// not exist returns ErrNotFound.
func (r *PropertyRepository) Save(ctx context.Context, f forms.PropertyForm) (SaveResult, error) {
	p, err := f.Property()
	if err != nil {
		return SaveResult{}, err
	}
	if f.HasIdentity() {
		err = r.db.With(ctx, func(tx *gorm.DB) error {
			res := tx.Model(&models.Property{}).Where("codice = ?", p.Code).Updates(p.UpdateColumns())
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return ErrNotFound
			}
			return nil
		})
		return SaveResult{Code: p.Code}, storeError(err)
	}

	err = r.db.With(ctx, func(tx *gorm.DB) error {
		return tx.Transaction(func(tx *gorm.DB) error {
			code, err := nextCode(tx, p.TableName(), models.PropertyCodePrefix)
			if err != nil {
				return err
			}
			p.Code = code
			return tx.Omit(clause.Associations).Create(&p).Error
		})
	})
	if err != nil {
		return SaveResult{}, storeError(err)
	}
	return SaveResult{Code: p.Code, Created: true}, nil
}

// Delete removes the property with the given code. A missing code is not an error.
func (r *PropertyRepository) Delete(ctx context.Context, code string) error {
	return storeError(r.db.With(ctx, func(tx *gorm.DB) error {
		return tx.Where("codice = ?", code).Delete(&models.Property{}).Error
	}))
}

// Count returns the number of properties.
func (r *PropertyRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.With(ctx, func(tx *gorm.DB) error {
		return tx.Model(&models.Property{}).Count(&n).Error
	})
	return n, storeError(err)
}

// CountAvailable returns the number of properties in an available status.
func (r *PropertyRepository) CountAvailable(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.With(ctx, func(tx *gorm.DB) error {
		return tx.Model(&models.Property{}).Where("stato IN ?", models.AvailableStatuses).Count(&n).Error
	})
	return n, storeError(err)
}
